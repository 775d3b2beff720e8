package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/b2b_inventory_app/internal/apperrors"
	"github.com/SscSPs/b2b_inventory_app/internal/core/domain"
	portsrepo "github.com/SscSPs/b2b_inventory_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/b2b_inventory_app/internal/core/ports/services"
	"github.com/SscSPs/b2b_inventory_app/internal/dto"
	"github.com/google/uuid"
)

type companyService struct {
	BaseService
	companyRepo portsrepo.CompanyRepositoryFacade
	autoApprove bool
}

// NewCompanyService creates the company service. autoApprove marks new companies approved immediately.
func NewCompanyService(companyRepo portsrepo.CompanyRepositoryFacade, autoApprove bool) portssvc.CompanySvcFacade {
	return &companyService{companyRepo: companyRepo, autoApprove: autoApprove}
}

var _ portssvc.CompanySvcFacade = (*companyService)(nil)

func (s *companyService) GetCompanyByNIP(ctx context.Context, nip string) (*domain.Company, error) {
	company, err := s.companyRepo.FindCompanyByNIP(ctx, strings.TrimSpace(nip))
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find company by NIP", slog.String("nip", nip))
		}
		return nil, err
	}
	return company, nil
}

func (s *companyService) GetMyCompany(ctx context.Context, actor domain.Actor) (*domain.Company, error) {
	if !actor.HasCompany() {
		return nil, apperrors.NewNotFoundError("user does not belong to a company")
	}
	return s.companyRepo.FindCompanyByID(ctx, actor.CompanyID)
}

// RegisterCompany creates a company owned by the actor. A user belongs to at most one company.
func (s *companyService) RegisterCompany(ctx context.Context, actor domain.Actor, req dto.RegisterCompanyRequest) (*domain.Company, error) {
	if actor.UserID == "" {
		return nil, apperrors.NewUnauthorizedError("authentication required")
	}
	if actor.HasCompany() {
		return nil, apperrors.NewConflictError("user already belongs to a company")
	}

	company := domain.Company{
		CompanyID:   uuid.NewString(),
		Name:        strings.TrimSpace(req.Name),
		NIP:         strings.TrimSpace(req.NIP),
		Address:     strings.TrimSpace(req.Address),
		IsApproved:  s.autoApprove,
		AuditFields: domain.NewAuditFields(actor.UserID, s.Now()),
	}
	if err := s.companyRepo.SaveCompany(ctx, company, actor.UserID); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: a company with NIP %s is already registered", apperrors.ErrDuplicate, company.NIP)
		}
		s.LogError(ctx, err, "Failed to save company", slog.String("nip", company.NIP))
		return nil, err
	}
	s.LogInfo(ctx, "Company registered",
		slog.String("company_id", company.CompanyID),
		slog.Bool("approved", company.IsApproved))
	return &company, nil
}
