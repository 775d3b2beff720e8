package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/b2b_inventory_app/internal/core/ports/services"
	"github.com/SscSPs/b2b_inventory_app/internal/dto"
	"github.com/SscSPs/b2b_inventory_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// orderHandler handles HTTP requests related to orders between companies.
type orderHandler struct {
	orderService portssvc.OrderSvcFacade
}

func newOrderHandler(os portssvc.OrderSvcFacade) *orderHandler {
	return &orderHandler{orderService: os}
}

// RegisterOrderRoutes registers order routes on rg. Exported for handler tests.
func RegisterOrderRoutes(rg *gin.RouterGroup, orderService portssvc.OrderSvcFacade) {
	h := newOrderHandler(orderService)

	orders := rg.Group("/orders")
	{
		orders.POST("", h.createOrder)
		orders.GET("", h.listOrders)
		orders.GET("/:orderID", h.getOrder)
		orders.PUT("/:orderID", h.updateOrder)
		orders.PATCH("/:orderID/status", h.changeOrderStatus)
		orders.DELETE("/:orderID", h.deleteOrder)
	}
}

// createOrder godoc
// @Summary Place an order
// @Description Orders products from the seller identified by NIP, priced in the requested currency
// @Tags orders
// @Accept  json
// @Produce  json
// @Param   order body dto.CreateOrderRequest true "Order"
// @Success 201 {object} dto.OrderResponse
// @Failure 400 {object} ErrorResponse "Invalid lines; details name the offending EANs"
// @Failure 401 {object} ErrorResponse "Caller has no approved company"
// @Failure 404 {object} ErrorResponse "Seller not found"
// @Failure 422 {object} ErrorResponse "No exchange rate for a line currency"
// @Security BearerAuth
// @Router /orders [post]
func (h *orderHandler) createOrder(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "request format")
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), actor, req)
	if err != nil {
		writeServiceError(c, err, "Failed to create order")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Order created",
		slog.String("order_id", order.OrderID),
		slog.String("total", order.TotalPrice.String()))
	c.JSON(http.StatusCreated, dto.ToOrderResponse(order))
}

// listOrders godoc
// @Summary List orders of the caller's company
// @Tags orders
// @Produce  json
// @Param   role query string false "buyer or seller" default(buyer)
// @Param   status query string false "Filter by status"
// @Param   limit query int false "Limit" default(20)
// @Param   offset query int false "Offset" default(0)
// @Success 200 {array} dto.OrderResponse
// @Security BearerAuth
// @Router /orders [get]
func (h *orderHandler) listOrders(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var params dto.ListOrdersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err, "query parameters")
		return
	}

	orders, err := h.orderService.ListOrders(c.Request.Context(), actor, params)
	if err != nil {
		writeServiceError(c, err, "Failed to list orders")
		return
	}
	c.JSON(http.StatusOK, dto.ToListOrderResponse(orders))
}

// getOrder godoc
// @Summary Get an order with its lines
// @Tags orders
// @Produce  json
// @Param   orderID path string true "Order ID"
// @Success 200 {object} dto.OrderResponse
// @Failure 403 {object} ErrorResponse "Caller is neither buyer nor seller"
// @Failure 404 {object} ErrorResponse "Order not found"
// @Security BearerAuth
// @Router /orders/{orderID} [get]
func (h *orderHandler) getOrder(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	order, err := h.orderService.GetOrder(c.Request.Context(), actor, c.Param("orderID"))
	if err != nil {
		writeServiceError(c, err, "Failed to retrieve order")
		return
	}
	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

// updateOrder godoc
// @Summary Update the lines of a pending order
// @Description Sparse merge by EAN: listed lines are upserted, quantity 0 removes a line, others are kept. The total is recomputed.
// @Tags orders
// @Accept  json
// @Produce  json
// @Param   orderID path string true "Order ID"
// @Param   order body dto.UpdateOrderRequest true "Line changes"
// @Success 200 {object} dto.OrderResponse
// @Failure 400 {object} ErrorResponse "Invalid lines; details name the offending EANs"
// @Failure 403 {object} ErrorResponse "Caller is not the buyer"
// @Failure 404 {object} ErrorResponse "Order not found"
// @Failure 409 {object} ErrorResponse "Order is no longer pending or was modified concurrently"
// @Failure 422 {object} ErrorResponse "No exchange rate for a line currency"
// @Security BearerAuth
// @Router /orders/{orderID} [put]
func (h *orderHandler) updateOrder(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "request format")
		return
	}

	order, err := h.orderService.UpdateOrder(c.Request.Context(), actor, c.Param("orderID"), req)
	if err != nil {
		writeServiceError(c, err, "Failed to update order")
		return
	}
	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

// changeOrderStatus godoc
// @Summary Move an order through its lifecycle
// @Description Sellers accept or reject pending orders; buyers cancel or complete accepted ones
// @Tags orders
// @Accept  json
// @Produce  json
// @Param   orderID path string true "Order ID"
// @Param   status body dto.ChangeOrderStatusRequest true "Target status"
// @Success 200 {object} dto.OrderResponse
// @Failure 400 {object} ErrorResponse "Invalid transition"
// @Failure 403 {object} ErrorResponse "Caller's side may not perform this transition"
// @Failure 409 {object} ErrorResponse "Order was modified concurrently"
// @Security BearerAuth
// @Router /orders/{orderID}/status [patch]
func (h *orderHandler) changeOrderStatus(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.ChangeOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "request format")
		return
	}

	order, err := h.orderService.ChangeOrderStatus(c.Request.Context(), actor, c.Param("orderID"), req.Status)
	if err != nil {
		writeServiceError(c, err, "Failed to change order status")
		return
	}
	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

// deleteOrder godoc
// @Summary Delete a pending order
// @Tags orders
// @Param   orderID path string true "Order ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse "Caller is not the buyer"
// @Failure 404 {object} ErrorResponse "Order not found"
// @Failure 409 {object} ErrorResponse "Order is no longer pending"
// @Security BearerAuth
// @Router /orders/{orderID} [delete]
func (h *orderHandler) deleteOrder(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	if err := h.orderService.DeleteOrder(c.Request.Context(), actor, c.Param("orderID")); err != nil {
		writeServiceError(c, err, "Failed to delete order")
		return
	}
	c.Status(http.StatusNoContent)
}
