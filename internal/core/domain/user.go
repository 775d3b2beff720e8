package domain

import "time"

// User represents a user of the application in the domain.
type User struct {
	UserID       string  `json:"userID"` // Primary Key (e.g., UUID)
	Email        string  `json:"email"`
	Name         string  `json:"name"`
	PasswordHash string  `json:"-"`
	CompanyID    *string `json:"companyID,omitempty"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// Actor is the identity on whose behalf a service call runs.
type Actor struct {
	UserID          string
	UserName        string
	CompanyID       string // Empty when the user has not joined a company
	CompanyApproved bool
}

// HasCompany reports whether the actor belongs to a company.
func (a Actor) HasCompany() bool {
	return a.CompanyID != ""
}

// CanOperate reports whether the actor may act on company-owned resources.
func (a Actor) CanOperate() bool {
	return a.UserID != "" && a.HasCompany() && a.CompanyApproved
}
