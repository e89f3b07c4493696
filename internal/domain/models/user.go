// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdminUser represents an administrator account. Accounts exist only for
// emails on the configured allow-list; sign-in for any other email is
// rejected before credentials are checked.
type AdminUser struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email string             `bson:"email" json:"email"` // stored lowercase

	PasswordHash string `bson:"password_hash" json:"-"` // bcrypt hash (never in JSON)

	LastLoginAt *time.Time `bson:"last_login_at,omitempty" json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `bson:"updated_at" json:"updated_at"`
}

// User roles
const (
	RoleAdmin = "admin"
)
