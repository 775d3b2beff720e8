package mapping

import (
	"github.com/SscSPs/b2b_inventory_app/internal/core/domain"
	"github.com/SscSPs/b2b_inventory_app/internal/models"
)

// ToModelProduct converts a domain CompanyProduct to its row, splitting Money into price and currency columns.
func ToModelProduct(d domain.CompanyProduct) models.CompanyProduct {
	return models.CompanyProduct{
		ProductID:           d.ProductID,
		CompanyID:           d.CompanyID,
		Name:                d.Name,
		EAN:                 d.EAN,
		Description:         d.Description,
		Price:               d.Price.Amount(),
		CurrencyCode:        d.Price.Currency(),
		Stock:               d.Stock,
		IsAvailableForOrder: d.IsAvailableForOrder,
		IsDeleted:           d.IsDeleted,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainProduct converts a product row to the domain entity.
func ToDomainProduct(m models.CompanyProduct) domain.CompanyProduct {
	return domain.CompanyProduct{
		ProductID:           m.ProductID,
		CompanyID:           m.CompanyID,
		Name:                m.Name,
		EAN:                 m.EAN,
		Description:         m.Description,
		Price:               domain.RestoreMoney(m.Price, m.CurrencyCode),
		Stock:               m.Stock,
		IsAvailableForOrder: m.IsAvailableForOrder,
		IsDeleted:           m.IsDeleted,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainProductSlice converts a slice of product rows.
func ToDomainProductSlice(ms []models.CompanyProduct) []domain.CompanyProduct {
	ds := make([]domain.CompanyProduct, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainProduct(m)
	}
	return ds
}
