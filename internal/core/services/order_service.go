package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/b2b_inventory_app/internal/apperrors"
	"github.com/SscSPs/b2b_inventory_app/internal/core/domain"
	portsrepo "github.com/SscSPs/b2b_inventory_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/b2b_inventory_app/internal/core/ports/services"
	"github.com/SscSPs/b2b_inventory_app/internal/dto"
	"github.com/SscSPs/b2b_inventory_app/pkg/metrics"
	"github.com/google/uuid"
)

// orderService implements the OrderSvcFacade interface
type orderService struct {
	BaseService
	orderRepo       portsrepo.OrderRepositoryFacade
	productRepo     portsrepo.ProductReader
	companyRepo     portsrepo.CompanyReader
	converter       portssvc.CurrencyConverterSvc
	notifier        portssvc.Notifier
	metrics         *metrics.DomainMetrics
	defaultCurrency string
}

// OrderServiceOption is a functional option for configuring the order service
type OrderServiceOption func(*orderService)

// WithOrderNotifier publishes order events after each successful write.
func WithOrderNotifier(n portssvc.Notifier) OrderServiceOption {
	return func(s *orderService) {
		s.notifier = n
	}
}

// WithOrderMetrics adds domain counters.
func WithOrderMetrics(m *metrics.DomainMetrics) OrderServiceOption {
	return func(s *orderService) {
		s.metrics = m
	}
}

// WithDefaultCurrency overrides domain.DefaultCurrencyCode as the last pricing fallback.
func WithDefaultCurrency(code string) OrderServiceOption {
	return func(s *orderService) {
		if normalized, err := domain.NormalizeCurrencyCode(code); err == nil {
			s.defaultCurrency = normalized
		}
	}
}

// NewOrderService creates a new order service with the provided options
func NewOrderService(
	orderRepo portsrepo.OrderRepositoryFacade,
	productRepo portsrepo.ProductReader,
	companyRepo portsrepo.CompanyReader,
	converter portssvc.CurrencyConverterSvc,
	options ...OrderServiceOption,
) portssvc.OrderSvcFacade {
	svc := &orderService{
		orderRepo:       orderRepo,
		productRepo:     productRepo,
		companyRepo:     companyRepo,
		converter:       converter,
		defaultCurrency: domain.DefaultCurrencyCode,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.OrderSvcFacade = (*orderService)(nil)

// requestedLines is a validated request: quantities by EAN plus the EANs in request order.
type requestedLines struct {
	quantities map[string]int
	eans       []string
}

// parseRequestedLines rejects empty requests, negative quantities, blank and duplicate EANs.
// allowZero permits quantity 0, which removes a line on update.
func parseRequestedLines(lines []dto.OrderLineRequest, allowZero bool) (requestedLines, error) {
	if len(lines) == 0 {
		return requestedLines{}, apperrors.NewValidationError("at least one order line is required")
	}
	req := requestedLines{quantities: make(map[string]int, len(lines)), eans: make([]string, 0, len(lines))}
	var duplicates []string
	for _, line := range lines {
		ean := strings.TrimSpace(line.EAN)
		if ean == "" {
			return requestedLines{}, apperrors.NewValidationError("order line EAN is required")
		}
		if line.Quantity < 0 || (!allowZero && line.Quantity == 0) {
			return requestedLines{}, apperrors.NewValidationError(fmt.Sprintf("invalid quantity %d for EAN %s", line.Quantity, ean)).
				WithDetail("ean", ean)
		}
		if _, seen := req.quantities[ean]; seen {
			duplicates = append(duplicates, ean)
			continue
		}
		req.quantities[ean] = line.Quantity
		req.eans = append(req.eans, ean)
	}
	if len(duplicates) > 0 {
		return requestedLines{}, apperrors.NewValidationError("each EAN may appear only once per request").
			WithDetail("duplicateEans", duplicates)
	}
	return req, nil
}

// resolveCatalog maps requested EANs to seller products. Missing EANs fail with missingCode and
// unavailable products fail validation, each listing the offending EANs.
func (s *orderService) resolveCatalog(ctx context.Context, sellerCompanyID string, req requestedLines, missingCode int) (map[string]domain.CompanyProduct, error) {
	byEAN, err := s.productRepo.FindProductsByEANs(ctx, sellerCompanyID, req.eans)
	if err != nil {
		s.LogError(ctx, err, "Failed to resolve order EANs", slog.String("seller_company_id", sellerCompanyID))
		return nil, fmt.Errorf("failed to resolve products: %w", err)
	}

	var missing, unavailable []string
	for _, ean := range req.eans {
		product, ok := byEAN[ean]
		switch {
		case !ok:
			missing = append(missing, ean)
		case !product.IsAvailableForOrder:
			unavailable = append(unavailable, ean)
		}
	}
	if len(missing) > 0 {
		return nil, apperrors.NewAppError(missingCode, "some EANs are not in the seller's catalog", nil).
			WithDetail("missingEans", missing)
	}
	if len(unavailable) > 0 {
		return nil, apperrors.NewValidationError("some products are not available for order").
			WithDetail("unavailableEans", unavailable)
	}
	return byEAN, nil
}

// effectiveCurrency picks the explicit currency, then the order's current one, then the default.
func (s *orderService) effectiveCurrency(requested *string, current string) (string, error) {
	if requested != nil && strings.TrimSpace(*requested) != "" {
		code, err := domain.NormalizeCurrencyCode(*requested)
		if err != nil {
			return "", fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
		}
		return code, nil
	}
	if current != "" {
		return current, nil
	}
	return s.defaultCurrency, nil
}

func (s *orderService) GetOrder(ctx context.Context, actor domain.Actor, orderID string) (*domain.Order, error) {
	if !actor.HasCompany() {
		return nil, apperrors.NewUnauthorizedError("user must belong to a company")
	}
	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find order", slog.String("order_id", orderID))
		}
		return nil, err
	}
	if _, ok := order.PartyOf(actor.CompanyID); !ok {
		return nil, apperrors.NewForbiddenError("order belongs to other companies")
	}
	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context, actor domain.Actor, params dto.ListOrdersParams) ([]domain.Order, error) {
	if !actor.HasCompany() {
		return nil, apperrors.NewUnauthorizedError("user must belong to a company")
	}
	filter := portsrepo.OrderListFilter{
		CompanyID: actor.CompanyID,
		Party:     domain.PartyBuyer,
		Limit:     params.Limit,
		Offset:    params.Offset,
	}
	if strings.EqualFold(params.Role, "seller") {
		filter.Party = domain.PartySeller
	}
	if params.Status != "" {
		status := domain.OrderStatus(strings.ToUpper(params.Status))
		if !status.IsValid() {
			return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, params.Status)
		}
		filter.Status = &status
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	orders, err := s.orderRepo.ListOrdersByCompany(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list orders", slog.String("company_id", actor.CompanyID))
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	if orders == nil {
		return []domain.Order{}, nil
	}
	return orders, nil
}

// CreateOrder places a pending order from the actor's company against the seller identified by NIP.
func (s *orderService) CreateOrder(ctx context.Context, actor domain.Actor, req dto.CreateOrderRequest) (order *domain.Order, err error) {
	defer func() { s.observe("create", err) }()

	if !actor.CanOperate() {
		return nil, apperrors.NewUnauthorizedError("user must belong to an approved company")
	}
	seller, err := s.companyRepo.FindCompanyByNIP(ctx, strings.TrimSpace(req.SellerNIP))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("seller with NIP %s not found", req.SellerNIP))
		}
		s.LogError(ctx, err, "Failed to resolve seller", slog.String("seller_nip", req.SellerNIP))
		return nil, fmt.Errorf("failed to resolve seller: %w", err)
	}
	if seller.CompanyID == actor.CompanyID {
		return nil, apperrors.NewValidationError("a company cannot order from itself")
	}

	requested, err := parseRequestedLines(req.Lines, false)
	if err != nil {
		return nil, err
	}
	byEAN, err := s.resolveCatalog(ctx, seller.CompanyID, requested, http.StatusNotFound)
	if err != nil {
		return nil, err
	}
	currency, err := s.effectiveCurrency(&req.CurrencyCode, "")
	if err != nil {
		return nil, err
	}

	orderID := uuid.NewString()
	lines := make([]domain.OrderLine, 0, len(requested.eans))
	byID := make(map[string]domain.CompanyProduct, len(byEAN))
	for _, ean := range requested.eans {
		product := byEAN[ean]
		byID[product.ProductID] = product
		lines = append(lines, domain.OrderLine{OrderID: orderID, ProductID: product.ProductID, Quantity: requested.quantities[ean]})
	}
	total, err := priceLines(ctx, s.converter, lines, byID, currency)
	if err != nil {
		return nil, err
	}

	created := domain.Order{
		OrderID:              orderID,
		SellerCompanyID:      seller.CompanyID,
		BuyerCompanyID:       actor.CompanyID,
		Status:               domain.OrderPending,
		UserNameWhoMadeOrder: actor.UserName,
		TotalPrice:           total,
		Lines:                lines,
		AuditFields:          domain.NewAuditFields(actor.UserID, s.Now()),
	}
	if err := s.orderRepo.SaveOrder(ctx, created); err != nil {
		s.LogError(ctx, err, "Failed to save order", slog.String("order_id", orderID))
		return nil, err
	}

	s.LogInfo(ctx, "Order created",
		slog.String("order_id", orderID),
		slog.String("seller_company_id", seller.CompanyID),
		slog.String("total", total.String()))
	s.notify(ctx, domain.EventOrderCreated, created.OrderID, created.SellerCompanyID, created.BuyerCompanyID)
	return &created, nil
}

// UpdateOrder merges requested quantities into a pending order and reprices every resulting line.
// Checks run in a fixed order and the first failure wins.
func (s *orderService) UpdateOrder(ctx context.Context, actor domain.Actor, orderID string, req dto.UpdateOrderRequest) (result *domain.Order, err error) {
	defer func() { s.observe("update", err) }()

	requested, err := parseRequestedLines(req.Lines, true)
	if err != nil {
		return nil, err
	}
	if !actor.HasCompany() {
		return nil, apperrors.NewValidationError("user must belong to a company")
	}
	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load order for update", slog.String("order_id", orderID))
		}
		return nil, err
	}
	if order.BuyerCompanyID != actor.CompanyID {
		return nil, apperrors.NewForbiddenError("only the buying company can edit this order")
	}
	if !order.Status.IsEditable() {
		return nil, apperrors.NewConflictError("only Pending orders can be edited").WithDetail("status", order.Status)
	}
	byEAN, err := s.resolveCatalog(ctx, order.SellerCompanyID, requested, http.StatusBadRequest)
	if err != nil {
		return nil, err
	}
	currency, err := s.effectiveCurrency(req.CurrencyCode, order.TotalPrice.Currency())
	if err != nil {
		return nil, err
	}

	byProductID := make(map[string]int, len(byEAN))
	products := make(map[string]domain.CompanyProduct, len(byEAN)+len(order.Lines))
	for _, ean := range requested.eans {
		product := byEAN[ean]
		byProductID[product.ProductID] = requested.quantities[ean]
		products[product.ProductID] = product
	}

	changes := domain.ReconcileLines(order.OrderID, order.Lines, byProductID)
	if len(changes.Result) == 0 {
		return nil, apperrors.NewValidationError("an order must keep at least one line; delete the order instead")
	}
	if err := s.loadLineProducts(ctx, changes.Result, products); err != nil {
		return nil, err
	}

	total, err := priceLines(ctx, s.converter, changes.Result, products, currency)
	if err != nil {
		return nil, err
	}

	updated := *order
	updated.Lines = changes.Result
	updated.TotalPrice = total
	if changes.IsEmpty() && total.Equal(order.TotalPrice) && unitPricesUnchanged(order.Lines, updated.Lines) {
		s.LogDebug(ctx, "Order update changed nothing", slog.String("order_id", orderID))
		return &updated, nil
	}

	updated.Touch(actor.UserID, s.Now())
	if err := s.orderRepo.SaveOrderChanges(ctx, updated, changes); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to persist order changes", slog.String("order_id", orderID))
		}
		return nil, err
	}
	updated.Version++

	s.LogInfo(ctx, "Order updated",
		slog.String("order_id", orderID),
		slog.Int("upserts", len(changes.Upserts)),
		slog.Int("deletes", len(changes.Deletes)),
		slog.String("total", total.String()))
	s.notify(ctx, domain.EventOrderUpdated, updated.OrderID, updated.SellerCompanyID, updated.BuyerCompanyID)
	return &updated, nil
}

// loadLineProducts fetches products for lines the request did not mention.
func (s *orderService) loadLineProducts(ctx context.Context, lines []domain.OrderLine, products map[string]domain.CompanyProduct) error {
	var missing []string
	for _, line := range lines {
		if _, ok := products[line.ProductID]; !ok {
			missing = append(missing, line.ProductID)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	found, err := s.productRepo.FindProductsByIDs(ctx, missing)
	if err != nil {
		s.LogError(ctx, err, "Failed to load order line products")
		return fmt.Errorf("failed to load order line products: %w", err)
	}
	var gone []string
	for _, id := range missing {
		product, ok := found[id]
		if !ok {
			gone = append(gone, id)
			continue
		}
		products[id] = product
	}
	if len(gone) > 0 {
		return apperrors.NewValidationError("some order lines reference products that no longer exist").
			WithDetail("missingProductIds", gone)
	}
	return nil
}

func (s *orderService) ChangeOrderStatus(ctx context.Context, actor domain.Actor, orderID string, status domain.OrderStatus) (result *domain.Order, err error) {
	defer func() { s.observe("status", err) }()

	if !actor.CanOperate() {
		return nil, apperrors.NewUnauthorizedError("user must belong to an approved company")
	}
	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	party, ok := order.PartyOf(actor.CompanyID)
	if !ok {
		return nil, apperrors.NewForbiddenError("order belongs to other companies")
	}

	from := order.Status
	if err := order.TransitionTo(status, party); err != nil {
		switch {
		case errors.Is(err, domain.ErrWrongOrderParty):
			return nil, apperrors.NewAppError(http.StatusForbidden, "not allowed to change the order to this status", err)
		case errors.Is(err, domain.ErrUnknownOrderStatus):
			return nil, apperrors.NewAppError(http.StatusBadRequest, "unknown order status", err)
		default:
			return nil, apperrors.NewAppError(http.StatusConflict, "order cannot move to this status", err)
		}
	}

	now := s.Now()
	if err := s.orderRepo.UpdateOrderStatus(ctx, orderID, from, order.Status, order.Version, actor.UserID, now); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to update order status", slog.String("order_id", orderID))
		}
		return nil, err
	}
	order.Touch(actor.UserID, now)
	order.Version++

	s.LogInfo(ctx, "Order status changed",
		slog.String("order_id", orderID),
		slog.String("from", string(from)),
		slog.String("to", string(order.Status)))
	s.notify(ctx, domain.EventOrderStatusChanged, order.OrderID, string(order.Status))
	return order, nil
}

func (s *orderService) DeleteOrder(ctx context.Context, actor domain.Actor, orderID string) (err error) {
	defer func() { s.observe("delete", err) }()

	if !actor.CanOperate() {
		return apperrors.NewUnauthorizedError("user must belong to an approved company")
	}
	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order.BuyerCompanyID != actor.CompanyID {
		return apperrors.NewForbiddenError("only the buying company can delete this order")
	}
	if !order.Status.IsEditable() {
		return apperrors.NewConflictError("only Pending orders can be deleted")
	}
	if err := s.orderRepo.DeleteOrder(ctx, orderID, order.Version); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to delete order", slog.String("order_id", orderID))
		}
		return err
	}
	s.LogInfo(ctx, "Order deleted", slog.String("order_id", orderID))
	s.notify(ctx, domain.EventOrderDeleted, orderID, order.SellerCompanyID, order.BuyerCompanyID)
	return nil
}

func (s *orderService) notify(ctx context.Context, event string, args ...any) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(context.WithoutCancel(ctx), event, args...)
}

func (s *orderService) observe(operation string, err error) {
	if s.metrics == nil {
		return
	}
	s.metrics.Orders.WithLabelValues(operation, metrics.Result(err)).Inc()
}
