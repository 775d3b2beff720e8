package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/SscSPs/b2b_inventory_app/internal/apperrors"
	"github.com/SscSPs/b2b_inventory_app/internal/core/domain"
	portsrepo "github.com/SscSPs/b2b_inventory_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/b2b_inventory_app/internal/core/ports/services"
	"github.com/SscSPs/b2b_inventory_app/internal/dto"
	"github.com/SscSPs/b2b_inventory_app/internal/utils/pagination"
	"github.com/SscSPs/b2b_inventory_app/pkg/metrics"
	"github.com/google/uuid"
)

type inventoryMovementService struct {
	BaseService
	productRepo  portsrepo.ProductRepositoryWithTx
	movementRepo portsrepo.MovementRepositoryFacade
	notifier     portssvc.Notifier
	metrics      *metrics.DomainMetrics
}

// MovementServiceOption configures the inventory movement service
type MovementServiceOption func(*inventoryMovementService)

// WithMovementNotifier broadcasts stock changes after commit.
func WithMovementNotifier(n portssvc.Notifier) MovementServiceOption {
	return func(s *inventoryMovementService) {
		s.notifier = n
	}
}

// WithMovementMetrics adds domain counters.
func WithMovementMetrics(m *metrics.DomainMetrics) MovementServiceOption {
	return func(s *inventoryMovementService) {
		s.metrics = m
	}
}

// NewInventoryMovementService creates the service that owns every stock change.
func NewInventoryMovementService(productRepo portsrepo.ProductRepositoryWithTx, movementRepo portsrepo.MovementRepositoryFacade, options ...MovementServiceOption) portssvc.InventoryMovementSvcFacade {
	svc := &inventoryMovementService{productRepo: productRepo, movementRepo: movementRepo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.InventoryMovementSvcFacade = (*inventoryMovementService)(nil)

// ApplyMovement locks the product row, applies the movement, appends it to the ledger and
// writes the new stock in one transaction. The broadcast happens after commit.
func (s *inventoryMovementService) ApplyMovement(ctx context.Context, actor domain.Actor, productID string, req dto.ApplyMovementRequest) (movement *domain.InventoryMovement, err error) {
	defer func() {
		if s.metrics != nil {
			s.metrics.Movements.WithLabelValues(string(req.Type), metrics.Result(err)).Inc()
		}
	}()

	if !actor.CanOperate() {
		return nil, apperrors.NewUnauthorizedError("user must belong to an approved company")
	}
	if !req.Type.IsValid() {
		return nil, fmt.Errorf("%w: unknown movement type %q", apperrors.ErrValidation, req.Type)
	}

	tx, err := s.productRepo.Begin(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to begin movement transaction", slog.String("product_id", productID))
		return nil, err
	}
	defer func() {
		// No-op once committed.
		_ = s.productRepo.Rollback(ctx, tx)
	}()

	product, err := s.productRepo.FindProductByIDForUpdate(ctx, tx, productID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to lock product", slog.String("product_id", productID))
		}
		return nil, err
	}
	if product.CompanyID != actor.CompanyID {
		return nil, apperrors.NewForbiddenError("product belongs to another company")
	}

	if err := product.ApplyMovement(req.Type, req.Quantity); err != nil {
		return nil, apperrors.NewAppError(http.StatusBadRequest, err.Error(), err)
	}

	now := s.Now()
	applied := domain.InventoryMovement{
		MovementID: uuid.NewString(),
		ProductID:  product.ProductID,
		CompanyID:  product.CompanyID,
		Type:       req.Type,
		Quantity:   req.Quantity,
		StockAfter: product.Stock,
		Comment:    req.Comment,
		CreatedAt:  now,
		CreatedBy:  actor.UserID,
	}
	if err := s.movementRepo.SaveMovementInTx(ctx, tx, applied); err != nil {
		s.LogError(ctx, err, "Failed to save movement", slog.String("product_id", productID))
		return nil, err
	}
	if err := s.productRepo.UpdateStockInTx(ctx, tx, product.ProductID, product.Stock, actor.UserID, now); err != nil {
		s.LogError(ctx, err, "Failed to update stock", slog.String("product_id", productID))
		return nil, err
	}
	if err := s.productRepo.Commit(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to commit movement", slog.String("product_id", productID))
		return nil, err
	}

	s.LogInfo(ctx, "Inventory movement applied",
		slog.String("product_id", productID),
		slog.String("type", string(req.Type)),
		slog.Int("quantity", req.Quantity),
		slog.Int("stock", product.Stock))
	if s.notifier != nil {
		s.notifier.Notify(context.WithoutCancel(ctx), domain.EventStockUpdated, product.ProductID, product.Stock)
	}
	return &applied, nil
}

// ListMovements pages a product's ledger newest first.
func (s *inventoryMovementService) ListMovements(ctx context.Context, actor domain.Actor, productID string, params dto.ListMovementsParams) (*dto.ListMovementsResponse, error) {
	if !actor.HasCompany() {
		return nil, apperrors.NewUnauthorizedError("user must belong to a company")
	}
	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.CompanyID != actor.CompanyID {
		return nil, apperrors.NewForbiddenError("product belongs to another company")
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	var after *portsrepo.MovementCursor
	if params.NextToken != "" {
		at, id, err := pagination.DecodeCursor(params.NextToken)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid nextToken", apperrors.ErrValidation)
		}
		after = &portsrepo.MovementCursor{CreatedAt: at, MovementID: id}
	}

	// Fetch one extra row to know whether another page exists.
	movements, err := s.movementRepo.ListMovementsByProduct(ctx, productID, limit+1, after)
	if err != nil {
		s.LogError(ctx, err, "Failed to list movements", slog.String("product_id", productID))
		return nil, fmt.Errorf("failed to list movements: %w", err)
	}

	resp := &dto.ListMovementsResponse{Movements: make([]dto.MovementResponse, 0, limit)}
	if len(movements) > limit {
		last := movements[limit-1]
		token := pagination.EncodeCursor(last.CreatedAt, last.MovementID)
		resp.NextToken = &token
		movements = movements[:limit]
	}
	for i := range movements {
		resp.Movements = append(resp.Movements, dto.ToMovementResponse(&movements[i]))
	}
	return resp, nil
}
