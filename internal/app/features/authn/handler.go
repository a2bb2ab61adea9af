// Package authn serves the credential endpoints: login, logout, me and
// student self-registration. Login issues the stateless token cookie;
// everything else in the portal trusts that token.
package authn

import (
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	adminstore "github.com/capstonehub/capstonehub/internal/app/store/admins"
	studentstore "github.com/capstonehub/capstonehub/internal/app/store/students"
	supervisorstore "github.com/capstonehub/capstonehub/internal/app/store/supervisors"
	"github.com/capstonehub/capstonehub/internal/app/system/auth"
	"github.com/capstonehub/capstonehub/internal/app/system/ratelimit"
)

// BcryptCost is the work factor for password hashes.
const BcryptCost = 12

// loginAttemptLimit caps failed logins per client IP per window.
const (
	loginAttemptLimit  = 10
	loginAttemptWindow = 15 * time.Minute
)

type Handler struct {
	DB          *mongo.Database
	Tokens      *auth.TokenManager
	Students    *studentstore.Store
	Supervisors *supervisorstore.Store
	Admins      *adminstore.Store
	Limiter     *ratelimit.Limiter
	Log         *zap.Logger
}

func NewHandler(db *mongo.Database, tokens *auth.TokenManager, logger *zap.Logger) *Handler {
	return &Handler{
		DB:          db,
		Tokens:      tokens,
		Students:    studentstore.New(db),
		Supervisors: supervisorstore.New(db),
		Admins:      adminstore.New(db),
		Limiter:     ratelimit.New(loginAttemptLimit, loginAttemptWindow),
		Log:         logger,
	}
}
