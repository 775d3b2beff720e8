package services_test

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/b2b_inventory_app/internal/apperrors"
	"github.com/SscSPs/b2b_inventory_app/internal/core/domain"
	portsrepo "github.com/SscSPs/b2b_inventory_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/b2b_inventory_app/internal/core/ports/services"
	"github.com/SscSPs/b2b_inventory_app/internal/core/services"
	"github.com/SscSPs/b2b_inventory_app/internal/dto"
	"github.com/cucumber/godog"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// --- in-memory adapters ---

type memProducts struct {
	byID   map[string]domain.CompanyProduct
	staged map[string]int
}

func (r *memProducts) Begin(context.Context) (pgx.Tx, error) {
	r.staged = map[string]int{}
	return &fakeTx{}, nil
}

func (r *memProducts) Commit(context.Context, pgx.Tx) error {
	for id, stock := range r.staged {
		p := r.byID[id]
		p.Stock = stock
		r.byID[id] = p
	}
	r.staged = nil
	return nil
}

func (r *memProducts) Rollback(context.Context, pgx.Tx) error {
	r.staged = nil
	return nil
}

func (r *memProducts) FindProductByID(_ context.Context, id string) (*domain.CompanyProduct, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("product not found")
	}
	return &p, nil
}

func (r *memProducts) FindProductByIDForUpdate(ctx context.Context, _ pgx.Tx, id string) (*domain.CompanyProduct, error) {
	return r.FindProductByID(ctx, id)
}

func (r *memProducts) UpdateStockInTx(_ context.Context, _ pgx.Tx, id string, stock int, _ string, _ time.Time) error {
	r.staged[id] = stock
	return nil
}

func (r *memProducts) ListProductsByCompany(_ context.Context, companyID string, availableOnly bool, _, _ int) ([]domain.CompanyProduct, error) {
	var out []domain.CompanyProduct
	for _, p := range r.byID {
		if p.CompanyID == companyID && (!availableOnly || p.IsAvailableForOrder) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memProducts) FindProductsByEANs(_ context.Context, companyID string, eans []string) (map[string]domain.CompanyProduct, error) {
	out := map[string]domain.CompanyProduct{}
	for _, p := range r.byID {
		for _, ean := range eans {
			if p.CompanyID == companyID && p.EAN == ean {
				out[ean] = p
			}
		}
	}
	return out, nil
}

func (r *memProducts) FindProductsByIDs(_ context.Context, ids []string) (map[string]domain.CompanyProduct, error) {
	out := map[string]domain.CompanyProduct{}
	for _, id := range ids {
		if p, ok := r.byID[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (r *memProducts) SaveProduct(_ context.Context, p domain.CompanyProduct) error {
	r.byID[p.ProductID] = p
	return nil
}

func (r *memProducts) UpdateProduct(_ context.Context, p domain.CompanyProduct) error {
	r.byID[p.ProductID] = p
	return nil
}

func (r *memProducts) SoftDeleteProduct(_ context.Context, id string, _ string, _ time.Time) error {
	delete(r.byID, id)
	return nil
}

type memMovements struct{ saved []domain.InventoryMovement }

func (r *memMovements) ListMovementsByProduct(context.Context, string, int, *portsrepo.MovementCursor) ([]domain.InventoryMovement, error) {
	return r.saved, nil
}

func (r *memMovements) SaveMovementInTx(_ context.Context, _ pgx.Tx, m domain.InventoryMovement) error {
	r.saved = append(r.saved, m)
	return nil
}

type memOrders struct {
	byID   map[string]domain.Order
	writes int
}

func (r *memOrders) FindOrderByID(_ context.Context, id string) (*domain.Order, error) {
	o, ok := r.byID[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("order not found")
	}
	o.Lines = append([]domain.OrderLine(nil), o.Lines...)
	return &o, nil
}

func (r *memOrders) ListOrdersByCompany(context.Context, portsrepo.OrderListFilter) ([]domain.Order, error) {
	return nil, nil
}

func (r *memOrders) SaveOrder(_ context.Context, o domain.Order) error {
	r.byID[o.OrderID] = o
	r.writes++
	return nil
}

func (r *memOrders) SaveOrderChanges(_ context.Context, o domain.Order, _ domain.LineChanges) error {
	if r.byID[o.OrderID].Version != o.Version {
		return fmt.Errorf("%w: stale order", apperrors.ErrConflict)
	}
	o.Version++
	r.byID[o.OrderID] = o
	r.writes++
	return nil
}

func (r *memOrders) UpdateOrderStatus(_ context.Context, id string, _, to domain.OrderStatus, _ int64, _ string, _ time.Time) error {
	o := r.byID[id]
	o.Status = to
	o.Version++
	r.byID[id] = o
	r.writes++
	return nil
}

func (r *memOrders) DeleteOrder(_ context.Context, id string, _ int64) error {
	delete(r.byID, id)
	r.writes++
	return nil
}

type memCompanies struct{}

func (memCompanies) FindCompanyByID(_ context.Context, id string) (*domain.Company, error) {
	return &domain.Company{CompanyID: id}, nil
}

func (memCompanies) FindCompanyByNIP(context.Context, string) (*domain.Company, error) {
	return &domain.Company{CompanyID: sellerCompanyID, NIP: sellerNIP}, nil
}

type memRates struct {
	rates   map[string]decimal.Decimal
	lookups int
}

func (r *memRates) GetRate(_ context.Context, from, to string) (decimal.Decimal, error) {
	r.lookups++
	rate, ok := r.rates[from+to]
	if !ok {
		return decimal.Zero, apperrors.NewNotFoundError("no rate")
	}
	return rate, nil
}

// --- scenario context ---

type inventoryFeature struct {
	products  *memProducts
	movements *memMovements
	orders    *memOrders
	rates     *memRates
	orderSvc  portssvc.OrderSvcFacade
	moveSvc   portssvc.InventoryMovementSvcFacade
	converter portssvc.CurrencyConverterSvc
	buyer     domain.Actor
	seller    domain.Actor
	converted domain.Money
	err       error
}

func (f *inventoryFeature) reset() {
	f.products = &memProducts{byID: map[string]domain.CompanyProduct{}}
	f.movements = &memMovements{}
	f.orders = &memOrders{byID: map[string]domain.Order{}}
	f.rates = &memRates{rates: map[string]decimal.Decimal{}}
	f.converter = services.NewCurrencyConverter(f.rates)
	f.orderSvc = services.NewOrderService(f.orders, f.products, memCompanies{}, f.converter)
	f.moveSvc = services.NewInventoryMovementService(f.products, f.movements)
	f.buyer = domain.Actor{UserID: "user-buyer", CompanyID: buyerCompanyID, CompanyApproved: true}
	f.seller = domain.Actor{UserID: "user-seller", CompanyID: sellerCompanyID, CompanyApproved: true}
	f.converted = domain.Money{}
	f.err = nil
}

func parseMoney(s string) (domain.Money, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return domain.Money{}, fmt.Errorf("money %q must be \"<amount> <currency>\"", s)
	}
	amount, err := decimal.NewFromString(fields[0])
	if err != nil {
		return domain.Money{}, err
	}
	return domain.RestoreMoney(amount, fields[1]), nil
}

func (f *inventoryFeature) productByEAN(ean string) (domain.CompanyProduct, error) {
	for _, p := range f.products.byID {
		if p.EAN == ean {
			return p, nil
		}
	}
	return domain.CompanyProduct{}, fmt.Errorf("no product with EAN %s in catalog", ean)
}

func (f *inventoryFeature) theSellerCatalog(table *godog.Table) error {
	for i, row := range table.Rows[1:] {
		price, err := decimal.NewFromString(row.Cells[2].Value)
		if err != nil {
			return err
		}
		money, err := domain.NewMoney(price, row.Cells[3].Value)
		if err != nil {
			return err
		}
		id := fmt.Sprintf("product-%d", i+1)
		f.products.byID[id] = domain.CompanyProduct{
			ProductID:           id,
			CompanyID:           sellerCompanyID,
			EAN:                 row.Cells[0].Value,
			Name:                row.Cells[1].Value,
			Price:               money,
			IsAvailableForOrder: row.Cells[4].Value == "true",
		}
	}
	return nil
}

func (f *inventoryFeature) orderLines(table *godog.Table) ([]domain.OrderLine, error) {
	lines := make([]domain.OrderLine, 0, len(table.Rows)-1)
	for _, row := range table.Rows[1:] {
		product, err := f.productByEAN(row.Cells[0].Value)
		if err != nil {
			return nil, err
		}
		qty, err := strconv.Atoi(row.Cells[1].Value)
		if err != nil {
			return nil, err
		}
		lines = append(lines, domain.OrderLine{OrderID: orderID, ProductID: product.ProductID, Quantity: qty})
	}
	return lines, nil
}

func (f *inventoryFeature) anOrderWithTotalAndLines(status domain.OrderStatus) func(string, *godog.Table) error {
	return func(total string, table *godog.Table) error {
		money, err := parseMoney(total)
		if err != nil {
			return err
		}
		lines, err := f.orderLines(table)
		if err != nil {
			return err
		}
		f.orders.byID[orderID] = domain.Order{
			OrderID:         orderID,
			SellerCompanyID: sellerCompanyID,
			BuyerCompanyID:  buyerCompanyID,
			Status:          status,
			TotalPrice:      money,
			Lines:           lines,
			AuditFields:     domain.AuditFields{Version: 1},
		}
		return nil
	}
}

func (f *inventoryFeature) theBuyerUpdatesTheOrderIn(currencyCode string, table *godog.Table) error {
	req := dto.UpdateOrderRequest{CurrencyCode: &currencyCode}
	for _, row := range table.Rows[1:] {
		qty, err := strconv.Atoi(row.Cells[1].Value)
		if err != nil {
			return err
		}
		req.Lines = append(req.Lines, dto.OrderLineRequest{EAN: row.Cells[0].Value, Quantity: qty})
	}
	_, f.err = f.orderSvc.UpdateOrder(context.Background(), f.buyer, orderID, req)
	return nil
}

func (f *inventoryFeature) theOrderLinesAre(table *godog.Table) error {
	want, err := f.orderLines(table)
	if err != nil {
		return err
	}
	got := f.orders.byID[orderID].Lines
	if len(got) != len(want) {
		return fmt.Errorf("expected %d lines, got %d", len(want), len(got))
	}
	sort.Slice(got, func(i, j int) bool { return got[i].ProductID < got[j].ProductID })
	sort.Slice(want, func(i, j int) bool { return want[i].ProductID < want[j].ProductID })
	for i := range want {
		if got[i].ProductID != want[i].ProductID || got[i].Quantity != want[i].Quantity {
			return fmt.Errorf("line %d: expected %s x%d, got %s x%d", i, want[i].ProductID, want[i].Quantity, got[i].ProductID, got[i].Quantity)
		}
	}
	return nil
}

func (f *inventoryFeature) theOrderTotalIs(total string) error {
	want, err := parseMoney(total)
	if err != nil {
		return err
	}
	if got := f.orders.byID[orderID].TotalPrice; !got.Equal(want) {
		return fmt.Errorf("expected total %s, got %s", want, got)
	}
	return nil
}

func (f *inventoryFeature) theOrderWasWritten(times int) error {
	if f.orders.writes != times {
		return fmt.Errorf("expected %d writes, got %d", times, f.orders.writes)
	}
	return nil
}

func (f *inventoryFeature) theRequestFailsWithStatus(status int) error {
	if f.err == nil {
		return fmt.Errorf("expected failure with status %d, got success", status)
	}
	if got := apperrors.StatusCode(f.err); got != status {
		return fmt.Errorf("expected status %d, got %d (%v)", status, got, f.err)
	}
	return nil
}

func (f *inventoryFeature) theExchangeRateIs(from, to, rate string) error {
	d, err := decimal.NewFromString(rate)
	if err != nil {
		return err
	}
	f.rates.rates[from+to] = d
	return nil
}

func (f *inventoryFeature) iConvert(amount, from, to string) error {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return err
	}
	source, err := domain.NewMoney(d, from)
	if err != nil {
		return err
	}
	f.converted, f.err = f.converter.Convert(context.Background(), source, to)
	return nil
}

func (f *inventoryFeature) theConvertedAmountIs(want string) error {
	if f.err != nil {
		return f.err
	}
	if got := f.converted.String(); got != want {
		return fmt.Errorf("expected %s, got %s", want, got)
	}
	return nil
}

func (f *inventoryFeature) noExchangeRateWasLookedUp() error {
	if f.rates.lookups != 0 {
		return fmt.Errorf("expected no rate lookups, got %d", f.rates.lookups)
	}
	return nil
}

func (f *inventoryFeature) aProductWithStock(stock int) error {
	p := productA()
	p.Stock = stock
	f.products.byID[p.ProductID] = p
	return nil
}

func (f *inventoryFeature) iApplyAMovementOf(movementType string, quantity int) error {
	_, f.err = f.moveSvc.ApplyMovement(context.Background(), f.seller, "product-a",
		dto.ApplyMovementRequest{Type: domain.MovementType(movementType), Quantity: quantity})
	return nil
}

func (f *inventoryFeature) theProductStockIs(stock int) error {
	if got := f.products.byID["product-a"].Stock; got != stock {
		return fmt.Errorf("expected stock %d, got %d", stock, got)
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	f := &inventoryFeature{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		f.reset()
		return ctx, nil
	})

	ctx.Step(`^the seller catalog:$`, f.theSellerCatalog)
	ctx.Step(`^a pending order with total "([^"]*)" and lines:$`, f.anOrderWithTotalAndLines(domain.OrderPending))
	ctx.Step(`^an accepted order with total "([^"]*)" and lines:$`, f.anOrderWithTotalAndLines(domain.OrderAccepted))
	ctx.Step(`^the exchange rate from "([^"]*)" to "([^"]*)" is "([^"]*)"$`, f.theExchangeRateIs)
	ctx.Step(`^a product with stock (\d+)$`, f.aProductWithStock)

	ctx.Step(`^the buyer updates the order in "([^"]*)" with:$`, f.theBuyerUpdatesTheOrderIn)
	ctx.Step(`^I convert "([^"]*)" "([^"]*)" to "([^"]*)"$`, f.iConvert)
	ctx.Step(`^I apply an? "([^"]*)" movement of (\d+)$`, f.iApplyAMovementOf)

	ctx.Step(`^the order lines are:$`, f.theOrderLinesAre)
	ctx.Step(`^the order total is "([^"]*)"$`, f.theOrderTotalIs)
	ctx.Step(`^the order was written (\d+) times?$`, f.theOrderWasWritten)
	ctx.Step(`^the request fails with status (\d+)$`, f.theRequestFailsWithStatus)
	ctx.Step(`^the converted amount is "([^"]*)"$`, f.theConvertedAmountIs)
	ctx.Step(`^no exchange rate was looked up$`, f.noExchangeRateWasLookedUp)
	ctx.Step(`^the product stock is (\d+)$`, f.theProductStockIs)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"testdata/features"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
