package dto

import (
	"time"

	"github.com/SscSPs/b2b_inventory_app/internal/core/domain"
)

// RegisterCompanyRequest creates a company and attaches the caller to it.
type RegisterCompanyRequest struct {
	Name    string `json:"name" binding:"required,max=200"`
	NIP     string `json:"nip" binding:"required,nip"`
	Address string `json:"address" binding:"max=500"`
}

// CompanyResponse defines the company data returned by the API.
type CompanyResponse struct {
	CompanyID  string    `json:"companyID"`
	Name       string    `json:"name"`
	NIP        string    `json:"nip"`
	Address    string    `json:"address"`
	IsApproved bool      `json:"isApproved"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ToCompanyResponse converts a domain.Company to CompanyResponse DTO
func ToCompanyResponse(c *domain.Company) CompanyResponse {
	return CompanyResponse{
		CompanyID:  c.CompanyID,
		Name:       c.Name,
		NIP:        c.NIP,
		Address:    c.Address,
		IsApproved: c.IsApproved,
		CreatedAt:  c.CreatedAt,
	}
}
