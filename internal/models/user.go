// Package models contains data models for the POS service.
package models

// Role is a staff role.
type Role string

// Roles known to the service.
const (
	RoleAdmin   Role = "admin"
	RoleCashier Role = "cashier"
)

// Status marks a record as active or inactive.
type Status string

// Record statuses.
const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// User is a staff account. Username is the unique key.
type User struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Role     Role   `json:"role" binding:"oneof=admin cashier"`
	Status   Status `json:"status" binding:"oneof=active inactive"`
}
