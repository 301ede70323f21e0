package models

import "gorm.io/gorm"

// Roles known to the role gate.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is the credential record. The password column only ever holds a
// bcrypt hash and is excluded from serialisation.
type User struct {
	gorm.Model
	Username string `gorm:"uniqueIndex;size:255;not null" json:"username"`
	Email    string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"`
	Role     string `gorm:"size:50;not null;default:user" json:"role"`
}

// IsAdmin reports whether the user passes the admin role gate.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }
