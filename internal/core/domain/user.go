package domain

import (
	"strings"
	"time"
)

// User models a registered identity. PasswordHash is write-only: it is never
// serialized and is stripped by Public before an identity leaves the core.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"firstName,omitempty"`
	LastName     string    `json:"lastName,omitempty"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Public returns a copy of u without the password hash.
func (u *User) Public() *User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.PasswordHash = ""
	return &clone
}

// IsAdmin reports whether u holds the admin role.
func (u *User) IsAdmin() bool {
	switch u.Role {
	case RoleAdmin:
		return true
	case RoleUser:
		return false
	default:
		return false
	}
}

// NormalizeEmail trims and lower-cases an address. Every address is
// normalized before it is stored or looked up.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// UserChanges carries a partial profile update. Nil fields are left untouched.
type UserChanges struct {
	Email        *string
	FirstName    *string
	LastName     *string
	PasswordHash *string
}

// Empty reports whether the update would change nothing.
func (c UserChanges) Empty() bool {
	return c.Email == nil && c.FirstName == nil && c.LastName == nil && c.PasswordHash == nil
}
