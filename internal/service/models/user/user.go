package user

import (
	"database/sql/driver"
	"errors"
	"time"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidRole        = errors.New("invalid user role")
)

// Role represents the access level of a user.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleSeller   Role = "SELLER"
	RoleCustomer Role = "CUSTOMER"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) Value() (driver.Value, error) {
	return r.String(), nil
}

func ParseRole(s string) (Role, error) {
	switch s {
	case RoleAdmin.String():
		return RoleAdmin, nil
	case RoleSeller.String():
		return RoleSeller, nil
	case RoleCustomer.String():
		return RoleCustomer, nil
	default:
		return "", ErrInvalidRole
	}
}

// User represents a registered account. The password hash is never serialized.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	Avatar       string    `json:"avatar,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
