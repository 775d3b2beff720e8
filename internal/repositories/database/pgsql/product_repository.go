package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/b2b_inventory_app/internal/apperrors"
	"github.com/SscSPs/b2b_inventory_app/internal/core/domain"
	portsrepo "github.com/SscSPs/b2b_inventory_app/internal/core/ports/repositories"
	"github.com/SscSPs/b2b_inventory_app/internal/models"
	"github.com/SscSPs/b2b_inventory_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	productColumns = `product_id, company_id, name, ean, description, price, currency_code, stock,
		is_available_for_order, is_deleted, deleted_at,
		created_at, created_by, last_updated_at, last_updated_by, version`

	activeProductsFilter = "is_deleted = false"
)

// PgxProductRepository reads and writes company_products. Deleted rows are invisible to every read.
type PgxProductRepository struct {
	BaseRepository
}

func newPgxProductRepository(pool *pgxpool.Pool) *PgxProductRepository {
	return &PgxProductRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ProductRepositoryWithTx = (*PgxProductRepository)(nil)

func collectProducts(rows pgx.Rows) ([]domain.CompanyProduct, error) {
	modelProducts, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.CompanyProduct])
	if err != nil {
		return nil, mapError(err, "failed to scan products")
	}
	return mapping.ToDomainProductSlice(modelProducts), nil
}

func (r *PgxProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.CompanyProduct, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+productColumns+` FROM company_products
		WHERE product_id = $1 AND `+activeProductsFilter, productID)
	if err != nil {
		return nil, mapError(err, "failed to query product")
	}
	modelProduct, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.CompanyProduct])
	if err != nil {
		return nil, mapError(err, fmt.Sprintf("product %s not found", productID))
	}
	product := mapping.ToDomainProduct(modelProduct)
	return &product, nil
}

func (r *PgxProductRepository) ListProductsByCompany(ctx context.Context, companyID string, availableOnly bool, limit, offset int) ([]domain.CompanyProduct, error) {
	query := `SELECT ` + productColumns + ` FROM company_products
		WHERE company_id = $1 AND ` + activeProductsFilter
	if availableOnly {
		query += ` AND is_available_for_order = true`
	}
	query += ` ORDER BY name, product_id LIMIT $2 OFFSET $3`

	rows, err := r.Pool.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, mapError(err, "failed to list products")
	}
	return collectProducts(rows)
}

func (r *PgxProductRepository) FindProductsByEANs(ctx context.Context, companyID string, eans []string) (map[string]domain.CompanyProduct, error) {
	result := make(map[string]domain.CompanyProduct, len(eans))
	if len(eans) == 0 {
		return result, nil
	}
	rows, err := r.Pool.Query(ctx, `SELECT `+productColumns+` FROM company_products
		WHERE company_id = $1 AND ean = ANY($2) AND `+activeProductsFilter, companyID, eans)
	if err != nil {
		return nil, mapError(err, "failed to query products by EAN")
	}
	products, err := collectProducts(rows)
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		result[p.EAN] = p
	}
	return result, nil
}

func (r *PgxProductRepository) FindProductsByIDs(ctx context.Context, productIDs []string) (map[string]domain.CompanyProduct, error) {
	result := make(map[string]domain.CompanyProduct, len(productIDs))
	if len(productIDs) == 0 {
		return result, nil
	}
	rows, err := r.Pool.Query(ctx, `SELECT `+productColumns+` FROM company_products
		WHERE product_id = ANY($1) AND `+activeProductsFilter, productIDs)
	if err != nil {
		return nil, mapError(err, "failed to query products by ID")
	}
	products, err := collectProducts(rows)
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		result[p.ProductID] = p
	}
	return result, nil
}

func (r *PgxProductRepository) SaveProduct(ctx context.Context, product domain.CompanyProduct) error {
	m := mapping.ToModelProduct(product)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO company_products (product_id, company_id, name, ean, description, price, currency_code,
			stock, is_available_for_order, is_deleted,
			created_at, created_by, last_updated_at, last_updated_by, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, false, $10, $11, $12, $13, $14)`,
		m.ProductID, m.CompanyID, m.Name, m.EAN, m.Description, m.Price, m.CurrencyCode,
		m.Stock, m.IsAvailableForOrder,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy, m.Version,
	)
	return mapError(err, fmt.Sprintf("failed to save product with EAN %s", m.EAN))
}

// UpdateProduct writes catalog fields when product.Version still matches the stored row.
func (r *PgxProductRepository) UpdateProduct(ctx context.Context, product domain.CompanyProduct) error {
	m := mapping.ToModelProduct(product)
	tag, err := r.Pool.Exec(ctx, `
		UPDATE company_products SET
			name = $1, ean = $2, description = $3, price = $4, currency_code = $5,
			is_available_for_order = $6, last_updated_at = $7, last_updated_by = $8,
			version = version + 1
		WHERE product_id = $9 AND version = $10 AND `+activeProductsFilter,
		m.Name, m.EAN, m.Description, m.Price, m.CurrencyCode,
		m.IsAvailableForOrder, m.LastUpdatedAt, m.LastUpdatedBy,
		m.ProductID, m.Version,
	)
	if err != nil {
		return mapError(err, "failed to update product")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product %s was modified concurrently: %w", m.ProductID, apperrors.ErrConflict)
	}
	return nil
}

func (r *PgxProductRepository) SoftDeleteProduct(ctx context.Context, productID string, deletedBy string, deletedAt time.Time) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE company_products SET
			is_deleted = true, deleted_at = $1, last_updated_at = $1, last_updated_by = $2,
			version = version + 1
		WHERE product_id = $3 AND `+activeProductsFilter,
		deletedAt, deletedBy, productID,
	)
	if err != nil {
		return mapError(err, "failed to delete product")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("product %s not found", productID))
	}
	return nil
}

// FindProductByIDForUpdate locks the row until tx ends.
func (r *PgxProductRepository) FindProductByIDForUpdate(ctx context.Context, tx pgx.Tx, productID string) (*domain.CompanyProduct, error) {
	rows, err := tx.Query(ctx, `SELECT `+productColumns+` FROM company_products
		WHERE product_id = $1 AND `+activeProductsFilter+` FOR UPDATE`, productID)
	if err != nil {
		return nil, mapError(err, "failed to lock product")
	}
	modelProduct, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.CompanyProduct])
	if err != nil {
		return nil, mapError(err, fmt.Sprintf("product %s not found", productID))
	}
	product := mapping.ToDomainProduct(modelProduct)
	return &product, nil
}

func (r *PgxProductRepository) UpdateStockInTx(ctx context.Context, tx pgx.Tx, productID string, stock int, userID string, now time.Time) error {
	tag, err := tx.Exec(ctx, `
		UPDATE company_products SET
			stock = $1, last_updated_at = $2, last_updated_by = $3, version = version + 1
		WHERE product_id = $4 AND `+activeProductsFilter,
		stock, now, userID, productID,
	)
	if err != nil {
		return mapError(err, "failed to update stock")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("product %s not found", productID))
	}
	return nil
}
