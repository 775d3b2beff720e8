package services

import (
	"context"
	"fmt"

	"github.com/SscSPs/b2b_inventory_app/internal/apperrors"
	"github.com/SscSPs/b2b_inventory_app/internal/core/domain"
	portssvc "github.com/SscSPs/b2b_inventory_app/internal/core/ports/services"
)

// priceLines converts each line's current unit price into currency and sums quantity times that price.
// Lines are annotated in place with product details and the converted unit price.
func priceLines(ctx context.Context, converter portssvc.CurrencyConverterSvc, lines []domain.OrderLine, products map[string]domain.CompanyProduct, currency string) (domain.Money, error) {
	total, err := domain.ZeroMoney(currency)
	if err != nil {
		return domain.Money{}, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}

	for i := range lines {
		product, ok := products[lines[i].ProductID]
		if !ok {
			return domain.Money{}, fmt.Errorf("product %s of order line not loaded", lines[i].ProductID)
		}
		unit, err := converter.Convert(ctx, product.Price, total.Currency())
		if err != nil {
			return domain.Money{}, err
		}
		unit = unit.Round2()

		lines[i].ProductName = product.Name
		lines[i].ProductEAN = product.EAN
		lines[i].UnitPrice = unit

		total, err = total.Add(unit.MulInt(lines[i].Quantity))
		if err != nil {
			return domain.Money{}, err
		}
	}
	return total, nil
}

// unitPricesUnchanged reports whether every line in after carries the unit price stored for it in before.
func unitPricesUnchanged(before, after []domain.OrderLine) bool {
	stored := make(map[string]domain.Money, len(before))
	for _, line := range before {
		stored[line.ProductID] = line.UnitPrice
	}
	for _, line := range after {
		price, ok := stored[line.ProductID]
		if !ok || !price.Equal(line.UnitPrice) {
			return false
		}
	}
	return true
}
