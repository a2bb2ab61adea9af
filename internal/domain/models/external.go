// internal/domain/models/external.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// External is an external examiner invited to conduct vivas.
type External struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName    string             `bson:"full_name" json:"full_name"`
	Email       string             `bson:"email" json:"email"`
	Affiliation string             `bson:"affiliation" json:"affiliation"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
