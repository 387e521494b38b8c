package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// ValidRole reports whether role is one of the closed set of roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleEmployee
}

var ErrUserNotFound = errors.New("user not found")
var ErrEmailExists = errors.New("email already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrAdminKeyRequired = errors.New("admin signup key required")
var ErrTooManyAttempts = errors.New("too many login attempts")

// User models an authenticated actor: an employee or an admin.
// EmployeeID is the sequential human-readable identifier (EMP-1000, ADM-5000)
// minted once at registration and never changed afterwards.
type User struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Role         string    `json:"role" bson:"role"`
	EmployeeID   string    `json:"employee_id" bson:"employee_id"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// Identity is the minimal user projection joined onto ledger listings.
type Identity struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	EmployeeID string `json:"employee_id"`
}

// Identity returns the display projection of the user.
func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, EmployeeID: u.EmployeeID}
}
