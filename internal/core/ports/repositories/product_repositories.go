package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/b2b_inventory_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// ProductReader defines read operations over non-deleted company products.
type ProductReader interface {
	FindProductByID(ctx context.Context, productID string) (*domain.CompanyProduct, error)

	// ListProductsByCompany returns a company's catalog, optionally only rows available for order.
	ListProductsByCompany(ctx context.Context, companyID string, availableOnly bool, limit, offset int) ([]domain.CompanyProduct, error)

	// FindProductsByEANs resolves EANs within one company's catalog. Missing EANs are absent from the map.
	FindProductsByEANs(ctx context.Context, companyID string, eans []string) (map[string]domain.CompanyProduct, error)

	// FindProductsByIDs resolves products by ID. Missing IDs are absent from the map.
	FindProductsByIDs(ctx context.Context, productIDs []string) (map[string]domain.CompanyProduct, error)
}

// ProductWriter defines catalog write operations. Stock is never written here.
type ProductWriter interface {
	SaveProduct(ctx context.Context, product domain.CompanyProduct) error
	// UpdateProduct writes catalog fields guarded by product.Version.
	UpdateProduct(ctx context.Context, product domain.CompanyProduct) error
	SoftDeleteProduct(ctx context.Context, productID string, deletedBy string, deletedAt time.Time) error
}

// ProductStockManager changes stock inside a caller-owned transaction.
type ProductStockManager interface {
	// FindProductByIDForUpdate locks the product row. Must be called within a transaction.
	FindProductByIDForUpdate(ctx context.Context, tx pgx.Tx, productID string) (*domain.CompanyProduct, error)

	UpdateStockInTx(ctx context.Context, tx pgx.Tx, productID string, stock int, userID string, now time.Time) error
}

// ProductRepositoryFacade combines all product-related repository interfaces
type ProductRepositoryFacade interface {
	ProductReader
	ProductWriter
}

// ProductRepositoryWithTx extends ProductRepositoryFacade with stock locking and transaction control
type ProductRepositoryWithTx interface {
	ProductRepositoryFacade
	ProductStockManager
	TransactionManager
}
