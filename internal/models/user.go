package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRole string

const (
	RolePilgrim   UserRole = "pilgrim"
	RoleVolunteer UserRole = "volunteer"
	RoleMedical   UserRole = "medical"
	RoleAdmin     UserRole = "admin"
)

type User struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Email     string             `json:"email" bson:"email" validate:"required,email"`
	Phone     string             `json:"phone" bson:"phone" validate:"required"`
	Password  string             `json:"-" bson:"password"`
	Role      UserRole           `json:"role" bson:"role" default:"pilgrim"`
	Location  *Location          `json:"location,omitempty" bson:"location,omitempty"`
	IsActive  bool               `json:"is_active" bson:"is_active" default:"true"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// ValidRole reports whether r is one of the four known roles.
func ValidRole(r UserRole) bool {
	switch r {
	case RolePilgrim, RoleVolunteer, RoleMedical, RoleAdmin:
		return true
	}
	return false
}
