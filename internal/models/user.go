package models

import (
	"time"
)

// User represents an account that logs in with email and password.
type User struct {
	UserID       string  `db:"user_id"`
	Email        string  `db:"email"`
	Name         string  `db:"name"`
	PasswordHash string  `db:"password_hash"`
	CompanyID    *string `db:"company_id"` // Nullable until the user registers or joins a company
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
