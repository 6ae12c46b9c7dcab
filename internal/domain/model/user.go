// Package model defines user and access-control entities.
package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an account that can call the planning API.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email     string             `bson:"email" json:"email"`
	Username  string             `bson:"username" json:"username"`
	Password  string             `bson:"password" json:"-"` // bcrypt hash, never serialized
	Name      string             `bson:"name" json:"name"`
	Roles     []string           `bson:"roles" json:"roles"` // role IDs
	Active    bool               `bson:"active" json:"active"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// Role groups permissions under a name ("user", "agronomist", "admin").
type Role struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Permissions []string           `bson:"permissions" json:"permissions"` // permission IDs
	Active      bool               `bson:"active" json:"active"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// Permission is one resource/action grant, e.g. resource "price_book" with
// action "write".
type Permission struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Resource    string             `bson:"resource" json:"resource"` // "plans", "price_book", "users", "roles"
	Action      string             `bson:"action" json:"action"`     // "read", "write", "delete"
	Active      bool               `bson:"active" json:"active"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// HasPermission reports whether the user holds a permission through any of
// the given roles.
func (u *User) HasPermission(permissionID string, roles []Role) bool {
	for _, roleID := range u.Roles {
		for _, role := range roles {
			if role.ID.Hex() != roleID {
				continue
			}
			for _, permID := range role.Permissions {
				if permID == permissionID {
					return true
				}
			}
		}
	}
	return false
}
