// Package models defines the archive's persisted entities. JSON tags follow
// the stored document format.
package models

import (
	"fmt"
	"strings"
	"time"
)

// Role is a user's access tier.
type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleResearcher Role = "RESEARCHER"
	RoleReader     Role = "READER"
)

// Roles lists every role in display order.
var Roles = []Role{RoleAdmin, RoleResearcher, RoleReader}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleResearcher, RoleReader:
		return true
	}
	return false
}

// ParseRole accepts a role name in any letter case.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// User is a registered account. Credentials are kept apart from the record.
type User struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	Username      string    `json:"username"`
	Role          Role      `json:"role"`
	EmailVerified bool      `json:"emailVerified"`
	CreatedAt     time.Time `json:"createdAt"`
}

// IsAdmin returns true if the user has the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// CanReadContent reports whether the user may open objects and posts:
// admins always, everybody else once their email is verified.
func (u *User) CanReadContent() bool {
	return u != nil && (u.IsAdmin() || u.EmailVerified)
}
