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
	"github.com/shopspring/decimal"
)

type productService struct {
	BaseService
	productRepo  portsrepo.ProductRepositoryFacade
	companyRepo  portsrepo.CompanyReader
	currencyRepo portsrepo.CurrencyReader
}

// NewProductService creates the catalog service. currencyRepo may be nil to skip currency checks.
func NewProductService(productRepo portsrepo.ProductRepositoryFacade, companyRepo portsrepo.CompanyReader, currencyRepo portsrepo.CurrencyReader) portssvc.ProductSvcFacade {
	return &productService{productRepo: productRepo, companyRepo: companyRepo, currencyRepo: currencyRepo}
}

var _ portssvc.ProductSvcFacade = (*productService)(nil)

func (s *productService) ownProduct(ctx context.Context, actor domain.Actor, productID string) (*domain.CompanyProduct, error) {
	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find product", slog.String("product_id", productID))
		}
		return nil, err
	}
	if product.CompanyID != actor.CompanyID {
		return nil, apperrors.NewForbiddenError("product belongs to another company")
	}
	return product, nil
}

// newPrice builds a positive price in a currency known to the catalog.
func (s *productService) newPrice(ctx context.Context, amount decimal.Decimal, code string) (domain.Money, error) {
	price, err := domain.NewMoney(amount, code)
	if err != nil {
		return domain.Money{}, fmt.Errorf("%w: invalid price %s %s: %w", apperrors.ErrValidation, amount.String(), code, err)
	}
	if s.currencyRepo == nil {
		return price, nil
	}
	if _, err := s.currencyRepo.FindCurrencyByCode(ctx, price.Currency()); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.Money{}, fmt.Errorf("%w: currency %s is not supported", apperrors.ErrValidation, price.Currency())
		}
		return domain.Money{}, fmt.Errorf("failed to validate currency: %w", err)
	}
	return price, nil
}

func (s *productService) GetProduct(ctx context.Context, actor domain.Actor, productID string) (*domain.CompanyProduct, error) {
	if !actor.HasCompany() {
		return nil, apperrors.NewUnauthorizedError("user must belong to a company")
	}
	return s.ownProduct(ctx, actor, productID)
}

func (s *productService) ListProducts(ctx context.Context, actor domain.Actor, params dto.ListProductsParams) ([]domain.CompanyProduct, error) {
	if !actor.HasCompany() {
		return nil, apperrors.NewUnauthorizedError("user must belong to a company")
	}
	products, err := s.productRepo.ListProductsByCompany(ctx, actor.CompanyID, false, params.Limit, params.Offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list products", slog.String("company_id", actor.CompanyID))
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	if products == nil {
		return []domain.CompanyProduct{}, nil
	}
	return products, nil
}

// ListSellerCatalog shows another company's products that are open for ordering.
func (s *productService) ListSellerCatalog(ctx context.Context, actor domain.Actor, sellerNIP string, params dto.ListProductsParams) ([]domain.CompanyProduct, error) {
	if !actor.CanOperate() {
		return nil, apperrors.NewUnauthorizedError("user must belong to an approved company")
	}
	seller, err := s.companyRepo.FindCompanyByNIP(ctx, strings.TrimSpace(sellerNIP))
	if err != nil {
		return nil, err
	}
	products, err := s.productRepo.ListProductsByCompany(ctx, seller.CompanyID, true, params.Limit, params.Offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list seller catalog", slog.String("seller_company_id", seller.CompanyID))
		return nil, fmt.Errorf("failed to list seller catalog: %w", err)
	}
	if products == nil {
		return []domain.CompanyProduct{}, nil
	}
	return products, nil
}

func (s *productService) CreateProduct(ctx context.Context, actor domain.Actor, req dto.CreateProductRequest) (*domain.CompanyProduct, error) {
	if !actor.CanOperate() {
		return nil, apperrors.NewUnauthorizedError("user must belong to an approved company")
	}
	price, err := s.newPrice(ctx, req.Price, req.CurrencyCode)
	if err != nil {
		return nil, err
	}

	product := domain.CompanyProduct{
		ProductID:           uuid.NewString(),
		CompanyID:           actor.CompanyID,
		Name:                strings.TrimSpace(req.Name),
		EAN:                 strings.TrimSpace(req.EAN),
		Description:         req.Description,
		Price:               price,
		Stock:               0,
		IsAvailableForOrder: req.IsAvailableForOrder,
		AuditFields:         domain.NewAuditFields(actor.UserID, s.Now()),
	}
	if err := s.productRepo.SaveProduct(ctx, product); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: EAN %s already exists in your catalog", apperrors.ErrDuplicate, product.EAN)
		}
		s.LogError(ctx, err, "Failed to save product", slog.String("ean", product.EAN))
		return nil, err
	}
	s.LogInfo(ctx, "Product created", slog.String("product_id", product.ProductID), slog.String("ean", product.EAN))
	return &product, nil
}

// UpdateProduct changes catalog fields. Stock only moves through inventory movements.
func (s *productService) UpdateProduct(ctx context.Context, actor domain.Actor, productID string, req dto.UpdateProductRequest) (*domain.CompanyProduct, error) {
	if !actor.CanOperate() {
		return nil, apperrors.NewUnauthorizedError("user must belong to an approved company")
	}
	product, err := s.ownProduct(ctx, actor, productID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.IsAvailableForOrder != nil {
		product.IsAvailableForOrder = *req.IsAvailableForOrder
	}
	if req.Price != nil || req.CurrencyCode != nil {
		amount := product.Price.Amount()
		if req.Price != nil {
			amount = *req.Price
		}
		code := product.Price.Currency()
		if req.CurrencyCode != nil {
			code = *req.CurrencyCode
		}
		price, err := s.newPrice(ctx, amount, code)
		if err != nil {
			return nil, err
		}
		product.Price = price
	}

	product.Touch(actor.UserID, s.Now())
	if err := s.productRepo.UpdateProduct(ctx, *product); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to update product", slog.String("product_id", productID))
		}
		return nil, err
	}
	product.Version++
	return product, nil
}

// DeleteProduct soft-deletes the product; it disappears from every catalog and order flow.
func (s *productService) DeleteProduct(ctx context.Context, actor domain.Actor, productID string) error {
	if !actor.CanOperate() {
		return apperrors.NewUnauthorizedError("user must belong to an approved company")
	}
	if _, err := s.ownProduct(ctx, actor, productID); err != nil {
		return err
	}
	if err := s.productRepo.SoftDeleteProduct(ctx, productID, actor.UserID, s.Now()); err != nil {
		s.LogError(ctx, err, "Failed to delete product", slog.String("product_id", productID))
		return err
	}
	s.LogInfo(ctx, "Product deleted", slog.String("product_id", productID))
	return nil
}
