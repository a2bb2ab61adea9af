// Package supervisor serves every endpoint mounted under /supervisor:
// the request inbox with the accept/reject workflow, group management,
// marking, doc reviews and project ideas.
package supervisor

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	groupstore "github.com/capstonehub/capstonehub/internal/app/store/groups"
	projectstore "github.com/capstonehub/capstonehub/internal/app/store/projects"
	studentstore "github.com/capstonehub/capstonehub/internal/app/store/students"
	supervisorstore "github.com/capstonehub/capstonehub/internal/app/store/supervisors"
)

type Handler struct {
	DB          *mongo.Database
	Students    *studentstore.Store
	Supervisors *supervisorstore.Store
	Projects    *projectstore.Store
	Groups      *groupstore.Store
	Log         *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		DB:          db,
		Students:    studentstore.New(db),
		Supervisors: supervisorstore.New(db),
		Projects:    projectstore.New(db),
		Groups:      groupstore.New(db),
		Log:         logger,
	}
}
