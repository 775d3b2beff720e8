package services

import (
	"context"

	"github.com/SscSPs/b2b_inventory_app/internal/core/domain"
	"github.com/SscSPs/b2b_inventory_app/internal/dto"
)

// CompanyReaderSvc defines read operations for company data
type CompanyReaderSvc interface {
	GetCompanyByNIP(ctx context.Context, nip string) (*domain.Company, error)
	GetMyCompany(ctx context.Context, actor domain.Actor) (*domain.Company, error)
}

// CompanyWriterSvc defines write operations for company data
type CompanyWriterSvc interface {
	// RegisterCompany creates a company and makes the actor its member.
	RegisterCompany(ctx context.Context, actor domain.Actor, req dto.RegisterCompanyRequest) (*domain.Company, error)
}

// CompanySvcFacade combines all company-related service interfaces
type CompanySvcFacade interface {
	CompanyReaderSvc
	CompanyWriterSvc
}
