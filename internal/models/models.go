package models

import (
	"time"

	"github.com/google/uuid"
)

// Permission models

// PermissionRecord is the wire shape of one (user, model) grant. Field
// names follow the backend contract consumed by the clinic frontend.
type PermissionRecord struct {
	Modelo            string   `json:"modelo"`
	MetodosPermitidos []string `json:"metodos_permitidos"`
}

type PermissionsResponse struct {
	Success bool               `json:"success"`
	Data    []PermissionRecord `json:"data"`
}

type BulkUpdatePermissionsRequest struct {
	UserID   uuid.UUID          `json:"user_id" binding:"required"`
	Permisos []PermissionRecord `json:"permisos" binding:"required"`
}

type BulkUpdatePermissionsResponse struct {
	Success bool `json:"success"`
}

type VisibleModulesResponse struct {
	Success bool     `json:"success"`
	Modules []string `json:"modules"`
}

// Edit session models

type OpenSessionRequest struct {
	UserID uuid.UUID `json:"user_id" binding:"required"`
}

type ToggleMethodRequest struct {
	Modelo string `json:"modelo" binding:"required"`
	Metodo string `json:"metodo" binding:"required"`
}

type ClearRequest struct {
	// Modelo empty clears every known model.
	Modelo string `json:"modelo"`
}

type SessionStateResponse struct {
	UserID uuid.UUID          `json:"user_id"`
	Buffer []PermissionRecord `json:"buffer"`
	Dirty  bool               `json:"dirty"`
	Saving bool               `json:"saving"`
}

// User models

type User struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"` // Never return in JSON
	FullName     string     `json:"full_name"`
	Role         string     `json:"role"`
	Active       bool       `json:"active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
}

type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"full_name" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

type UpdateUserRequest struct {
	FullName *string `json:"full_name"`
	Role     *string `json:"role"`
	Active   *bool   `json:"active"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	ExpiresIn   int      `json:"expires_in"`
	User        *User    `json:"user"`
	Modules     []string `json:"modules"` // visible navigation modules
}

// Patient models

type Patient struct {
	ID             uuid.UUID  `json:"id"`
	DocumentNumber string     `json:"document_number"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	Phone          *string    `json:"phone,omitempty"`
	Email          *string    `json:"email,omitempty"`
	BirthDate      *time.Time `json:"birth_date,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty"`
}

type CreatePatientRequest struct {
	DocumentNumber string     `json:"document_number" binding:"required"`
	FirstName      string     `json:"first_name" binding:"required"`
	LastName       string     `json:"last_name" binding:"required"`
	Phone          *string    `json:"phone"`
	Email          *string    `json:"email"`
	BirthDate      *time.Time `json:"birth_date"`
}

type UpdatePatientRequest struct {
	DocumentNumber *string    `json:"document_number"`
	FirstName      *string    `json:"first_name"`
	LastName       *string    `json:"last_name"`
	Phone          *string    `json:"phone"`
	Email          *string    `json:"email"`
	BirthDate      *time.Time `json:"birth_date"`
}

// Common response models

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}
