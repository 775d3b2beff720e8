package mapping

import (
	"github.com/SscSPs/b2b_inventory_app/internal/core/domain"
	"github.com/SscSPs/b2b_inventory_app/internal/models"
)

// ToModelOrder converts the order header. Lines are mapped separately.
func ToModelOrder(d domain.Order) models.Order {
	return models.Order{
		OrderID:              d.OrderID,
		SellerCompanyID:      d.SellerCompanyID,
		BuyerCompanyID:       d.BuyerCompanyID,
		Status:               string(d.Status),
		UserNameWhoMadeOrder: d.UserNameWhoMadeOrder,
		TotalPrice:           d.TotalPrice.Amount(),
		CurrencyCode:         d.TotalPrice.Currency(),
		AuditFields:          ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainOrder converts an order header row and its line rows.
func ToDomainOrder(m models.Order, lines []models.OrderLine) domain.Order {
	d := domain.Order{
		OrderID:              m.OrderID,
		SellerCompanyID:      m.SellerCompanyID,
		BuyerCompanyID:       m.BuyerCompanyID,
		Status:               domain.OrderStatus(m.Status),
		UserNameWhoMadeOrder: m.UserNameWhoMadeOrder,
		TotalPrice:           domain.RestoreMoney(m.TotalPrice, m.CurrencyCode),
		AuditFields:          ToDomainAuditFields(m.AuditFields),
	}
	if len(lines) > 0 {
		d.Lines = make([]domain.OrderLine, len(lines))
		for i, l := range lines {
			d.Lines[i] = ToDomainOrderLine(l)
		}
	}
	return d
}

func ToDomainOrderLine(m models.OrderLine) domain.OrderLine {
	return domain.OrderLine{
		OrderID:     m.OrderID,
		ProductID:   m.ProductID,
		Quantity:    m.Quantity,
		ProductName: m.ProductName,
		ProductEAN:  m.ProductEAN,
		UnitPrice:   domain.RestoreMoney(m.UnitPrice, m.PriceCurrency),
	}
}
