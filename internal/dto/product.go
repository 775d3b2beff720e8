package dto

import (
	"time"

	"github.com/SscSPs/b2b_inventory_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateProductRequest adds a product to the caller's catalog. Stock starts at zero.
type CreateProductRequest struct {
	Name                string          `json:"name" binding:"required,max=200"`
	EAN                 string          `json:"ean" binding:"required,ean"`
	Description         string          `json:"description" binding:"max=2000"`
	Price               decimal.Decimal `json:"price" binding:"required"`
	CurrencyCode        string          `json:"currencyCode" binding:"required,len=3"`
	IsAvailableForOrder bool            `json:"isAvailableForOrder"`
}

// UpdateProductRequest changes catalog fields. Omitted fields stay as they are.
type UpdateProductRequest struct {
	Name                *string          `json:"name" binding:"omitempty,max=200"`
	Description         *string          `json:"description" binding:"omitempty,max=2000"`
	Price               *decimal.Decimal `json:"price"`
	CurrencyCode        *string          `json:"currencyCode" binding:"omitempty,len=3"`
	IsAvailableForOrder *bool            `json:"isAvailableForOrder"`
}

// ListProductsParams defines query parameters for listing products.
type ListProductsParams struct {
	Limit  int `form:"limit,default=50" binding:"min=1,max=200"`
	Offset int `form:"offset,default=0" binding:"min=0"`
}

// ProductResponse defines the product data returned by the API.
type ProductResponse struct {
	ProductID           string        `json:"productID"`
	CompanyID           string        `json:"companyID"`
	Name                string        `json:"name"`
	EAN                 string        `json:"ean"`
	Description         string        `json:"description"`
	Price               MoneyResponse `json:"price"`
	Stock               int           `json:"stock"`
	IsAvailableForOrder bool          `json:"isAvailableForOrder"`
	LastUpdatedAt       time.Time     `json:"lastUpdatedAt"`
}

// ToProductResponse converts a domain.CompanyProduct to ProductResponse DTO
func ToProductResponse(p *domain.CompanyProduct) ProductResponse {
	return ProductResponse{
		ProductID:           p.ProductID,
		CompanyID:           p.CompanyID,
		Name:                p.Name,
		EAN:                 p.EAN,
		Description:         p.Description,
		Price:               ToMoneyResponse(p.Price),
		Stock:               p.Stock,
		IsAvailableForOrder: p.IsAvailableForOrder,
		LastUpdatedAt:       p.LastUpdatedAt,
	}
}

// ToListProductResponse converts a slice of products.
func ToListProductResponse(products []domain.CompanyProduct) []ProductResponse {
	res := make([]ProductResponse, len(products))
	for i := range products {
		res[i] = ToProductResponse(&products[i])
	}
	return res
}
