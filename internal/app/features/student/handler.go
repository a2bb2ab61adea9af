// Package student serves every endpoint mounted under /student. All
// routes require the student role; handlers resolve the acting student
// from the token context.
package student

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	deadlinestore "github.com/capstonehub/capstonehub/internal/app/store/deadlines"
	extensionstore "github.com/capstonehub/capstonehub/internal/app/store/extensions"
	groupstore "github.com/capstonehub/capstonehub/internal/app/store/groups"
	projectstore "github.com/capstonehub/capstonehub/internal/app/store/projects"
	studentstore "github.com/capstonehub/capstonehub/internal/app/store/students"
	supervisorstore "github.com/capstonehub/capstonehub/internal/app/store/supervisors"
	vivastore "github.com/capstonehub/capstonehub/internal/app/store/vivas"
	"github.com/capstonehub/capstonehub/internal/app/system/objstore"
)

type Handler struct {
	DB          *mongo.Database
	Students    *studentstore.Store
	Supervisors *supervisorstore.Store
	Projects    *projectstore.Store
	Groups      *groupstore.Store
	Deadlines   *deadlinestore.Store
	Vivas       *vivastore.Store
	Extensions  *extensionstore.Store
	Files       *objstore.Store
	Log         *zap.Logger
}

// NewHandler wires the student feature. files may be nil when object
// storage is not configured; submission uploads then return 503.
func NewHandler(db *mongo.Database, files *objstore.Store, logger *zap.Logger) *Handler {
	return &Handler{
		DB:          db,
		Students:    studentstore.New(db),
		Supervisors: supervisorstore.New(db),
		Projects:    projectstore.New(db),
		Groups:      groupstore.New(db),
		Deadlines:   deadlinestore.New(db),
		Vivas:       vivastore.New(db),
		Extensions:  extensionstore.New(db),
		Files:       files,
		Log:         logger,
	}
}
