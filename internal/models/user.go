package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Role string

const (
	RoleCustomer  Role = "customer"
	RoleSales     Role = "sales"
	RoleInventory Role = "inventory"
	RoleAdmin     Role = "admin"
)

// User is the profile the backend reports for the logged in account.
type User struct {
	ID         int64     `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	DateJoined time.Time `json:"date_joined"`
	IsStaff    bool      `json:"is_staff"`
	Role       Role      `json:"role,omitempty"`
}

// HasRole reports whether the user holds any of the given roles. Admins hold every role.
func (u *User) HasRole(roles ...Role) bool {
	if u == nil {
		return false
	}

	if u.Role == RoleAdmin {
		return true
	}

	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}

	return false
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=150"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Success        bool   `json:"success"`
	User           *User  `json:"user,omitempty"`
	RemainingTries int    `json:"remaining_tries,omitempty"`
	RetryAfter     int    `json:"retry_after,omitempty"`
	Message        string `json:"message,omitempty"`
}

// SessionState is what the session mirror exposes to the UI.
type SessionState struct {
	IsAuthenticated bool  `json:"is_authenticated"`
	Loading         bool  `json:"loading"`
	User            *User `json:"user"`
}

// SessionClaims are carried by the signed browser cookie. The token ID is the session id.
type SessionClaims struct {
	jwt.RegisteredClaims
}
