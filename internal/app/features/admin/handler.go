// internal/app/features/admin/handler.go
package admin

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	adminstore "github.com/capstonehub/capstonehub/internal/app/store/admins"
	deadlinestore "github.com/capstonehub/capstonehub/internal/app/store/deadlines"
	extensionstore "github.com/capstonehub/capstonehub/internal/app/store/extensions"
	externalstore "github.com/capstonehub/capstonehub/internal/app/store/externals"
	groupstore "github.com/capstonehub/capstonehub/internal/app/store/groups"
	projectstore "github.com/capstonehub/capstonehub/internal/app/store/projects"
	studentstore "github.com/capstonehub/capstonehub/internal/app/store/students"
	supervisorstore "github.com/capstonehub/capstonehub/internal/app/store/supervisors"
	vivastore "github.com/capstonehub/capstonehub/internal/app/store/vivas"
)

// BcryptCost matches the cost used at login registration so imported
// temp passwords verify the same way.
const BcryptCost = 12

// Handler owns the admin endpoints: account management, bulk imports,
// deadlines, vivas, extensions, and oversight listings.
type Handler struct {
	DB          *mongo.Database
	Students    *studentstore.Store
	Supervisors *supervisorstore.Store
	Admins      *adminstore.Store
	Externals   *externalstore.Store
	Projects    *projectstore.Store
	Groups      *groupstore.Store
	Deadlines   *deadlinestore.Store
	Vivas       *vivastore.Store
	Extensions  *extensionstore.Store
	Log         *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:          db,
		Students:    studentstore.New(db),
		Supervisors: supervisorstore.New(db),
		Admins:      adminstore.New(db),
		Externals:   externalstore.New(db),
		Projects:    projectstore.New(db),
		Groups:      groupstore.New(db),
		Deadlines:   deadlinestore.New(db),
		Vivas:       vivastore.New(db),
		Extensions:  extensionstore.New(db),
		Log:         logger,
	}
}
