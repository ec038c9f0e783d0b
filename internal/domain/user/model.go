package user

import (
	"fmt"
	"time"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is a registered account. PasswordHash is a bcrypt digest and never
// leaves the service.
type User struct {
	ID           string
	Email        string
	DisplayName  string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u User) Validate() error {
	if u.ID == "" {
		return fmt.Errorf("user id is required")
	}
	if u.Email == "" {
		return fmt.Errorf("user email is required")
	}
	if u.PasswordHash == "" {
		return fmt.Errorf("user password hash is required")
	}

	return nil
}

// Principal is the authenticated identity attached to a request context.
type Principal struct {
	UserID string
	Email  string
	Role   Role
}

func (p Principal) IsSiteAdmin() bool {
	return p.Role == RoleAdmin
}
