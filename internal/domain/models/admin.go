// internal/domain/models/admin.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Admin is a portal administrator. SuperAdmin accounts manage other
// admins and grant WritePermission; plain admins without
// WritePermission can only read.
type Admin struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName     string             `bson:"full_name" json:"full_name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash" json:"-"`

	SuperAdmin      bool `bson:"super_admin" json:"super_admin"`
	WritePermission bool `bson:"write_permission" json:"write_permission"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
