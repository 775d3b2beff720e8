package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/b2b_inventory_app/internal/core/ports/services"
	"github.com/SscSPs/b2b_inventory_app/internal/dto"
	"github.com/SscSPs/b2b_inventory_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// productHandler handles the caller's own catalog and its stock ledger.
type productHandler struct {
	productService  portssvc.ProductSvcFacade
	movementService portssvc.InventoryMovementSvcFacade
}

func newProductHandler(ps portssvc.ProductSvcFacade, ms portssvc.InventoryMovementSvcFacade) *productHandler {
	return &productHandler{productService: ps, movementService: ms}
}

func registerProductRoutes(rg *gin.RouterGroup, ps portssvc.ProductSvcFacade, ms portssvc.InventoryMovementSvcFacade) {
	h := newProductHandler(ps, ms)

	products := rg.Group("/products")
	{
		products.POST("", h.createProduct)
		products.GET("", h.listProducts)
		products.GET("/:productID", h.getProduct)
		products.PUT("/:productID", h.updateProduct)
		products.DELETE("/:productID", h.deleteProduct)

		products.POST("/:productID/movements", h.applyMovement)
		products.GET("/:productID/movements", h.listMovements)
	}
}

// createProduct godoc
// @Summary Add a product to the caller's catalog
// @Tags products
// @Accept  json
// @Produce  json
// @Param   product body dto.CreateProductRequest true "Product details"
// @Success 201 {object} dto.ProductResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Caller has no approved company"
// @Failure 409 {object} ErrorResponse "EAN already in catalog"
// @Security BearerAuth
// @Router /products [post]
func (h *productHandler) createProduct(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "request format")
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), actor, req)
	if err != nil {
		writeServiceError(c, err, "Failed to create product")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Product created", slog.String("product_id", product.ProductID))
	c.JSON(http.StatusCreated, dto.ToProductResponse(product))
}

// listProducts godoc
// @Summary List the caller's catalog
// @Tags products
// @Produce  json
// @Param   limit query int false "Limit" default(50)
// @Param   offset query int false "Offset" default(0)
// @Success 200 {array} dto.ProductResponse
// @Security BearerAuth
// @Router /products [get]
func (h *productHandler) listProducts(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var params dto.ListProductsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err, "query parameters")
		return
	}

	products, err := h.productService.ListProducts(c.Request.Context(), actor, params)
	if err != nil {
		writeServiceError(c, err, "Failed to list products")
		return
	}
	c.JSON(http.StatusOK, dto.ToListProductResponse(products))
}

// getProduct godoc
// @Summary Get a product
// @Tags products
// @Produce  json
// @Param   productID path string true "Product ID"
// @Success 200 {object} dto.ProductResponse
// @Failure 403 {object} ErrorResponse "Product belongs to another company"
// @Failure 404 {object} ErrorResponse "Product not found"
// @Security BearerAuth
// @Router /products/{productID} [get]
func (h *productHandler) getProduct(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	product, err := h.productService.GetProduct(c.Request.Context(), actor, c.Param("productID"))
	if err != nil {
		writeServiceError(c, err, "Failed to retrieve product")
		return
	}
	c.JSON(http.StatusOK, dto.ToProductResponse(product))
}

// updateProduct godoc
// @Summary Update catalog fields of a product
// @Description Stock is not changed here; use movements
// @Tags products
// @Accept  json
// @Produce  json
// @Param   productID path string true "Product ID"
// @Param   product body dto.UpdateProductRequest true "Fields to change"
// @Success 200 {object} dto.ProductResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 403 {object} ErrorResponse "Product belongs to another company"
// @Failure 409 {object} ErrorResponse "Concurrent modification"
// @Security BearerAuth
// @Router /products/{productID} [put]
func (h *productHandler) updateProduct(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "request format")
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), actor, c.Param("productID"), req)
	if err != nil {
		writeServiceError(c, err, "Failed to update product")
		return
	}
	c.JSON(http.StatusOK, dto.ToProductResponse(product))
}

// deleteProduct godoc
// @Summary Soft-delete a product
// @Tags products
// @Param   productID path string true "Product ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse "Product belongs to another company"
// @Failure 404 {object} ErrorResponse "Product not found"
// @Security BearerAuth
// @Router /products/{productID} [delete]
func (h *productHandler) deleteProduct(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	if err := h.productService.DeleteProduct(c.Request.Context(), actor, c.Param("productID")); err != nil {
		writeServiceError(c, err, "Failed to delete product")
		return
	}
	c.Status(http.StatusNoContent)
}

// applyMovement godoc
// @Summary Record a stock movement
// @Description INBOUND adds, OUTBOUND subtracts, ADJUSTMENT sets the absolute stock level
// @Tags movements
// @Accept  json
// @Produce  json
// @Param   productID path string true "Product ID"
// @Param   movement body dto.ApplyMovementRequest true "Movement"
// @Success 201 {object} dto.MovementResponse
// @Failure 400 {object} ErrorResponse "Invalid quantity or stock would go below zero"
// @Failure 403 {object} ErrorResponse "Product belongs to another company"
// @Failure 404 {object} ErrorResponse "Product not found"
// @Security BearerAuth
// @Router /products/{productID}/movements [post]
func (h *productHandler) applyMovement(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.ApplyMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "request format")
		return
	}

	movement, err := h.movementService.ApplyMovement(c.Request.Context(), actor, c.Param("productID"), req)
	if err != nil {
		writeServiceError(c, err, "Failed to apply movement")
		return
	}
	c.JSON(http.StatusCreated, dto.ToMovementResponse(movement))
}

// listMovements godoc
// @Summary List stock movements of a product
// @Description Newest first, paged with an opaque nextToken
// @Tags movements
// @Produce  json
// @Param   productID path string true "Product ID"
// @Param   limit query int false "Limit" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListMovementsResponse
// @Failure 400 {object} ErrorResponse "Invalid token"
// @Security BearerAuth
// @Router /products/{productID}/movements [get]
func (h *productHandler) listMovements(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var params dto.ListMovementsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err, "query parameters")
		return
	}

	resp, err := h.movementService.ListMovements(c.Request.Context(), actor, c.Param("productID"), params)
	if err != nil {
		writeServiceError(c, err, "Failed to list movements")
		return
	}
	c.JSON(http.StatusOK, resp)
}
