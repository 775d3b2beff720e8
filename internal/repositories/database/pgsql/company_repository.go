package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/b2b_inventory_app/internal/apperrors"
	"github.com/SscSPs/b2b_inventory_app/internal/core/domain"
	portsrepo "github.com/SscSPs/b2b_inventory_app/internal/core/ports/repositories"
	"github.com/SscSPs/b2b_inventory_app/internal/models"
	"github.com/SscSPs/b2b_inventory_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const companyColumns = `company_id, name, nip, address, is_approved,
	created_at, created_by, last_updated_at, last_updated_by, version`

type PgxCompanyRepository struct {
	BaseRepository
}

func newPgxCompanyRepository(pool *pgxpool.Pool) *PgxCompanyRepository {
	return &PgxCompanyRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CompanyRepositoryFacade = (*PgxCompanyRepository)(nil)

func (r *PgxCompanyRepository) findOne(ctx context.Context, where string, arg any) (*domain.Company, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+companyColumns+` FROM companies WHERE `+where, arg)
	if err != nil {
		return nil, mapError(err, "failed to query company")
	}
	modelCompany, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Company])
	if err != nil {
		return nil, mapError(err, "company not found")
	}
	company := mapping.ToDomainCompany(modelCompany)
	return &company, nil
}

func (r *PgxCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	return r.findOne(ctx, "company_id = $1", companyID)
}

func (r *PgxCompanyRepository) FindCompanyByNIP(ctx context.Context, nip string) (*domain.Company, error) {
	return r.findOne(ctx, "nip = $1", nip)
}

// SaveCompany inserts the company and attaches its owner in one transaction.
func (r *PgxCompanyRepository) SaveCompany(ctx context.Context, company domain.Company, ownerUserID string) error {
	m := mapping.ToModelCompany(company)
	return r.inTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO companies (company_id, name, nip, address, is_approved,
				created_at, created_by, last_updated_at, last_updated_by, version)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			m.CompanyID, m.Name, m.NIP, m.Address, m.IsApproved,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy, m.Version,
		)
		if err != nil {
			return mapError(err, "failed to insert company")
		}

		tag, err := tx.Exec(ctx, `
			UPDATE users SET company_id = $1, last_updated_at = $2, last_updated_by = $3, version = version + 1
			WHERE user_id = $3 AND company_id IS NULL AND deleted_at IS NULL`,
			m.CompanyID, m.CreatedAt, ownerUserID,
		)
		if err != nil {
			return mapError(err, "failed to attach company owner")
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("user %s already belongs to a company: %w", ownerUserID, apperrors.ErrConflict)
		}
		return nil
	})
}
