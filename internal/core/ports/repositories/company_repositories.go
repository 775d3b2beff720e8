package repositories

import (
	"context"

	"github.com/SscSPs/b2b_inventory_app/internal/core/domain"
)

// CompanyReader defines read operations for company data
type CompanyReader interface {
	FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)
	// FindCompanyByNIP looks a company up by its tax identification number.
	FindCompanyByNIP(ctx context.Context, nip string) (*domain.Company, error)
}

// CompanyWriter defines write operations for company data
type CompanyWriter interface {
	// SaveCompany inserts the company and attaches ownerUserID to it in one transaction.
	SaveCompany(ctx context.Context, company domain.Company, ownerUserID string) error
}

// CompanyRepositoryFacade combines all company-related repository interfaces
type CompanyRepositoryFacade interface {
	CompanyReader
	CompanyWriter
}
