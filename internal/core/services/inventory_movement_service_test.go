package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/SscSPs/b2b_inventory_app/internal/apperrors"
	"github.com/SscSPs/b2b_inventory_app/internal/core/domain"
	portsrepo "github.com/SscSPs/b2b_inventory_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/b2b_inventory_app/internal/core/ports/services"
	"github.com/SscSPs/b2b_inventory_app/internal/core/services"
	"github.com/SscSPs/b2b_inventory_app/internal/dto"
	"github.com/SscSPs/b2b_inventory_app/internal/utils/pagination"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type InventoryMovementServiceTestSuite struct {
	suite.Suite
	products  *MockProductRepository
	movements *MockMovementRepository
	notifier  *MockNotifier
	service   portssvc.InventoryMovementSvcFacade
	tx        *fakeTx
	ctx       context.Context
	actor     domain.Actor
}

func (suite *InventoryMovementServiceTestSuite) SetupTest() {
	suite.products = new(MockProductRepository)
	suite.movements = new(MockMovementRepository)
	suite.notifier = new(MockNotifier)
	suite.service = services.NewInventoryMovementService(suite.products, suite.movements,
		services.WithMovementNotifier(suite.notifier))
	suite.tx = &fakeTx{}
	suite.ctx = context.Background()
	suite.actor = domain.Actor{UserID: "user-seller", CompanyID: sellerCompanyID, CompanyApproved: true}
}

func stockedProduct(stock int) *domain.CompanyProduct {
	p := productA()
	p.Stock = stock
	return &p
}

// expectLocked stubs the transaction prologue and epilogue common to every ApplyMovement call.
func (suite *InventoryMovementServiceTestSuite) expectLocked(product *domain.CompanyProduct) {
	suite.products.On("Begin", suite.ctx).Return(suite.tx, nil).Once()
	suite.products.On("FindProductByIDForUpdate", suite.ctx, suite.tx, product.ProductID).Return(product, nil).Once()
	suite.products.On("Rollback", suite.ctx, suite.tx).Return(nil)
}

func (suite *InventoryMovementServiceTestSuite) TestApplyMovement_OutboundBeyondStockRejected() {
	product := stockedProduct(5)
	suite.expectLocked(product)

	movement, err := suite.service.ApplyMovement(suite.ctx, suite.actor, product.ProductID,
		dto.ApplyMovementRequest{Type: domain.MovementOutbound, Quantity: 10})

	suite.Require().Error(err)
	suite.Nil(movement)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorIs(err, domain.ErrStockBelowZero)
	suite.Equal(5, product.Stock)
	suite.movements.AssertNotCalled(suite.T(), "SaveMovementInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.products.AssertNotCalled(suite.T(), "UpdateStockInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.products.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
	suite.products.AssertCalled(suite.T(), "Rollback", suite.ctx, suite.tx)
	suite.notifier.AssertNumberOfCalls(suite.T(), "Notify", 0)
}

func (suite *InventoryMovementServiceTestSuite) TestApplyMovement_Adjustment() {
	product := stockedProduct(5)
	suite.expectLocked(product)
	suite.movements.On("SaveMovementInTx", suite.ctx, suite.tx, mock.MatchedBy(func(m domain.InventoryMovement) bool {
		return m.Type == domain.MovementAdjustment && m.Quantity == 3 && m.StockAfter == 3 && m.CreatedBy == "user-seller"
	})).Return(nil).Once()
	suite.products.On("UpdateStockInTx", suite.ctx, suite.tx, product.ProductID, 3, "user-seller", mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.products.On("Commit", suite.ctx, suite.tx).Return(nil).Once()
	suite.notifier.On("Notify", mock.Anything, domain.EventStockUpdated, product.ProductID, 3).Return().Once()

	movement, err := suite.service.ApplyMovement(suite.ctx, suite.actor, product.ProductID,
		dto.ApplyMovementRequest{Type: domain.MovementAdjustment, Quantity: 3})

	suite.Require().NoError(err)
	suite.Equal(3, movement.StockAfter)
	suite.NotEmpty(movement.MovementID)
	suite.products.AssertExpectations(suite.T())
	suite.movements.AssertExpectations(suite.T())
	suite.notifier.AssertExpectations(suite.T())
}

func (suite *InventoryMovementServiceTestSuite) TestApplyMovement_InboundAndOutbound() {
	tests := []struct {
		name      string
		start     int
		typ       domain.MovementType
		quantity  int
		wantStock int
	}{
		{"inbound adds", 5, domain.MovementInbound, 7, 12},
		{"outbound to zero", 5, domain.MovementOutbound, 5, 0},
		{"adjust to zero", 5, domain.MovementAdjustment, 0, 0},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.SetupTest()
			product := stockedProduct(tt.start)
			suite.expectLocked(product)
			suite.movements.On("SaveMovementInTx", suite.ctx, suite.tx, mock.Anything).Return(nil).Once()
			suite.products.On("UpdateStockInTx", suite.ctx, suite.tx, product.ProductID, tt.wantStock, mock.Anything, mock.Anything).Return(nil).Once()
			suite.products.On("Commit", suite.ctx, suite.tx).Return(nil).Once()
			suite.notifier.On("Notify", mock.Anything, domain.EventStockUpdated, product.ProductID, tt.wantStock).Return().Once()

			movement, err := suite.service.ApplyMovement(suite.ctx, suite.actor, product.ProductID,
				dto.ApplyMovementRequest{Type: tt.typ, Quantity: tt.quantity})

			suite.Require().NoError(err)
			suite.Equal(tt.wantStock, movement.StockAfter)
			suite.products.AssertExpectations(suite.T())
		})
	}
}

func (suite *InventoryMovementServiceTestSuite) TestApplyMovement_NonPositiveInboundRejected() {
	product := stockedProduct(5)
	suite.expectLocked(product)

	_, err := suite.service.ApplyMovement(suite.ctx, suite.actor, product.ProductID,
		dto.ApplyMovementRequest{Type: domain.MovementInbound, Quantity: 0})

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorIs(err, domain.ErrInvalidQuantity)
	suite.products.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func (suite *InventoryMovementServiceTestSuite) TestApplyMovement_InboundBeyondMaxStockRejected() {
	product := stockedProduct(5)
	suite.expectLocked(product)

	movement, err := suite.service.ApplyMovement(suite.ctx, suite.actor, product.ProductID,
		dto.ApplyMovementRequest{Type: domain.MovementInbound, Quantity: domain.MaxStock})

	suite.Require().Error(err)
	suite.Nil(movement)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.ErrorIs(err, domain.ErrInvalidQuantity)
	suite.Equal(400, apperrors.StatusCode(err))
	suite.Equal(5, product.Stock)
	suite.movements.AssertNotCalled(suite.T(), "SaveMovementInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.products.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func (suite *InventoryMovementServiceTestSuite) TestApplyMovement_MalformedProductIDIsNotFound() {
	suite.products.On("Begin", suite.ctx).Return(suite.tx, nil).Once()
	suite.products.On("FindProductByIDForUpdate", suite.ctx, suite.tx, "abc").
		Return(nil, fmt.Errorf("product abc not found: %w", apperrors.ErrNotFound)).Once()
	suite.products.On("Rollback", suite.ctx, suite.tx).Return(nil)

	_, err := suite.service.ApplyMovement(suite.ctx, suite.actor, "abc",
		dto.ApplyMovementRequest{Type: domain.MovementInbound, Quantity: 1})

	suite.Equal(404, apperrors.StatusCode(err))
}

func (suite *InventoryMovementServiceTestSuite) TestApplyMovement_RequiresApprovedCompany() {
	_, err := suite.service.ApplyMovement(suite.ctx, domain.Actor{UserID: "user-x"}, "product-a",
		dto.ApplyMovementRequest{Type: domain.MovementInbound, Quantity: 1})

	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.products.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *InventoryMovementServiceTestSuite) TestApplyMovement_UnknownType() {
	_, err := suite.service.ApplyMovement(suite.ctx, suite.actor, "product-a",
		dto.ApplyMovementRequest{Type: "TELEPORT", Quantity: 1})

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.products.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *InventoryMovementServiceTestSuite) TestApplyMovement_ProductNotFound() {
	suite.products.On("Begin", suite.ctx).Return(suite.tx, nil).Once()
	suite.products.On("FindProductByIDForUpdate", suite.ctx, suite.tx, "missing").Return(nil, apperrors.NewNotFoundError("product not found")).Once()
	suite.products.On("Rollback", suite.ctx, suite.tx).Return(nil).Once()

	_, err := suite.service.ApplyMovement(suite.ctx, suite.actor, "missing",
		dto.ApplyMovementRequest{Type: domain.MovementInbound, Quantity: 1})

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.products.AssertExpectations(suite.T())
}

func (suite *InventoryMovementServiceTestSuite) TestApplyMovement_OtherCompanysProduct() {
	product := stockedProduct(5)
	product.CompanyID = "company-other"
	suite.expectLocked(product)

	_, err := suite.service.ApplyMovement(suite.ctx, suite.actor, product.ProductID,
		dto.ApplyMovementRequest{Type: domain.MovementInbound, Quantity: 1})

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Equal(5, product.Stock)
	suite.movements.AssertNotCalled(suite.T(), "SaveMovementInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InventoryMovementServiceTestSuite) TestApplyMovement_CommitFailureSkipsNotification() {
	product := stockedProduct(5)
	suite.expectLocked(product)
	suite.movements.On("SaveMovementInTx", suite.ctx, suite.tx, mock.Anything).Return(nil).Once()
	suite.products.On("UpdateStockInTx", suite.ctx, suite.tx, product.ProductID, 6, mock.Anything, mock.Anything).Return(nil).Once()
	suite.products.On("Commit", suite.ctx, suite.tx).Return(apperrors.ErrConflict).Once()

	_, err := suite.service.ApplyMovement(suite.ctx, suite.actor, product.ProductID,
		dto.ApplyMovementRequest{Type: domain.MovementInbound, Quantity: 1})

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.notifier.AssertNumberOfCalls(suite.T(), "Notify", 0)
}

func (suite *InventoryMovementServiceTestSuite) TestListMovements_Pages() {
	product := stockedProduct(5)
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	page := []domain.InventoryMovement{
		{MovementID: "m3", ProductID: product.ProductID, CreatedAt: base.Add(3 * time.Minute)},
		{MovementID: "m2", ProductID: product.ProductID, CreatedAt: base.Add(2 * time.Minute)},
		{MovementID: "m1", ProductID: product.ProductID, CreatedAt: base.Add(time.Minute)},
	}
	suite.products.On("FindProductByID", suite.ctx, product.ProductID).Return(product, nil)
	suite.movements.On("ListMovementsByProduct", suite.ctx, product.ProductID, 3, (*portsrepo.MovementCursor)(nil)).Return(page, nil).Once()

	resp, err := suite.service.ListMovements(suite.ctx, suite.actor, product.ProductID, dto.ListMovementsParams{Limit: 2})

	suite.Require().NoError(err)
	suite.Require().Len(resp.Movements, 2)
	suite.Equal("m3", resp.Movements[0].MovementID)
	suite.Require().NotNil(resp.NextToken)

	at, id, err := pagination.DecodeCursor(*resp.NextToken)
	suite.Require().NoError(err)
	suite.Equal("m2", id)
	suite.True(at.Equal(base.Add(2 * time.Minute)))

	cursor := &portsrepo.MovementCursor{CreatedAt: at, MovementID: id}
	suite.movements.On("ListMovementsByProduct", suite.ctx, product.ProductID, 3, cursor).Return(page[2:], nil).Once()

	resp, err = suite.service.ListMovements(suite.ctx, suite.actor, product.ProductID,
		dto.ListMovementsParams{Limit: 2, NextToken: *resp.NextToken})

	suite.Require().NoError(err)
	suite.Len(resp.Movements, 1)
	suite.Nil(resp.NextToken)
}

func (suite *InventoryMovementServiceTestSuite) TestListMovements_InvalidToken() {
	suite.products.On("FindProductByID", suite.ctx, "product-a").Return(stockedProduct(1), nil)

	_, err := suite.service.ListMovements(suite.ctx, suite.actor, "product-a", dto.ListMovementsParams{NextToken: "%%%"})

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.movements.AssertNotCalled(suite.T(), "ListMovementsByProduct", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InventoryMovementServiceTestSuite) TestListMovements_OtherCompanyForbidden() {
	suite.products.On("FindProductByID", suite.ctx, "product-a").Return(stockedProduct(1), nil)

	_, err := suite.service.ListMovements(suite.ctx, domain.Actor{UserID: "u", CompanyID: buyerCompanyID}, "product-a", dto.ListMovementsParams{})

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func TestInventoryMovementService(t *testing.T) {
	suite.Run(t, new(InventoryMovementServiceTestSuite))
}
