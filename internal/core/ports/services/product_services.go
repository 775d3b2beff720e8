package services

import (
	"context"

	"github.com/SscSPs/b2b_inventory_app/internal/core/domain"
	"github.com/SscSPs/b2b_inventory_app/internal/dto"
)

// ProductReaderSvc defines read operations over company catalogs
type ProductReaderSvc interface {
	GetProduct(ctx context.Context, actor domain.Actor, productID string) (*domain.CompanyProduct, error)
	ListProducts(ctx context.Context, actor domain.Actor, params dto.ListProductsParams) ([]domain.CompanyProduct, error)
	// ListSellerCatalog returns products another company offers for order.
	ListSellerCatalog(ctx context.Context, actor domain.Actor, sellerNIP string, params dto.ListProductsParams) ([]domain.CompanyProduct, error)
}

// ProductWriterSvc defines catalog write operations
type ProductWriterSvc interface {
	CreateProduct(ctx context.Context, actor domain.Actor, req dto.CreateProductRequest) (*domain.CompanyProduct, error)
	UpdateProduct(ctx context.Context, actor domain.Actor, productID string, req dto.UpdateProductRequest) (*domain.CompanyProduct, error)
	DeleteProduct(ctx context.Context, actor domain.Actor, productID string) error
}

// ProductSvcFacade combines all product-related service interfaces
type ProductSvcFacade interface {
	ProductReaderSvc
	ProductWriterSvc
}
