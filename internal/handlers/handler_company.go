package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/b2b_inventory_app/internal/core/ports/services"
	"github.com/SscSPs/b2b_inventory_app/internal/dto"
	"github.com/SscSPs/b2b_inventory_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// companyHandler serves company registration and lookup, plus seller catalogs.
type companyHandler struct {
	companyService portssvc.CompanySvcFacade
	productService portssvc.ProductSvcFacade
}

func newCompanyHandler(cs portssvc.CompanySvcFacade, ps portssvc.ProductSvcFacade) *companyHandler {
	return &companyHandler{companyService: cs, productService: ps}
}

func registerCompanyRoutes(rg *gin.RouterGroup, cs portssvc.CompanySvcFacade, ps portssvc.ProductSvcFacade) {
	h := newCompanyHandler(cs, ps)

	companies := rg.Group("/companies")
	{
		companies.POST("", h.registerCompany)
		companies.GET("/me", h.getMyCompany)
		companies.GET("/:nip", h.getCompanyByNIP)
		companies.GET("/:nip/products", h.listSellerCatalog)
	}
}

// registerCompany godoc
// @Summary Register a company
// @Description Creates a company identified by its NIP and makes the caller its member
// @Tags companies
// @Accept  json
// @Produce  json
// @Param   company body dto.RegisterCompanyRequest true "Company details"
// @Success 201 {object} dto.CompanyResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 409 {object} ErrorResponse "NIP already registered or caller already has a company"
// @Security BearerAuth
// @Router /companies [post]
func (h *companyHandler) registerCompany(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req dto.RegisterCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "request format")
		return
	}

	company, err := h.companyService.RegisterCompany(c.Request.Context(), actor, req)
	if err != nil {
		writeServiceError(c, err, "Failed to register company")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Company registered", slog.String("company_id", company.CompanyID))
	c.JSON(http.StatusCreated, dto.ToCompanyResponse(company))
}

// getMyCompany godoc
// @Summary Get the caller's company
// @Tags companies
// @Produce  json
// @Success 200 {object} dto.CompanyResponse
// @Failure 404 {object} ErrorResponse "Caller has no company"
// @Security BearerAuth
// @Router /companies/me [get]
func (h *companyHandler) getMyCompany(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	company, err := h.companyService.GetMyCompany(c.Request.Context(), actor)
	if err != nil {
		writeServiceError(c, err, "Failed to retrieve company")
		return
	}
	c.JSON(http.StatusOK, dto.ToCompanyResponse(company))
}

// getCompanyByNIP godoc
// @Summary Look a company up by NIP
// @Tags companies
// @Produce  json
// @Param   nip path string true "Tax identification number"
// @Success 200 {object} dto.CompanyResponse
// @Failure 404 {object} ErrorResponse "Company not found"
// @Security BearerAuth
// @Router /companies/{nip} [get]
func (h *companyHandler) getCompanyByNIP(c *gin.Context) {
	company, err := h.companyService.GetCompanyByNIP(c.Request.Context(), c.Param("nip"))
	if err != nil {
		writeServiceError(c, err, "Failed to retrieve company")
		return
	}
	c.JSON(http.StatusOK, dto.ToCompanyResponse(company))
}

// listSellerCatalog godoc
// @Summary List a seller's orderable products
// @Description Returns products the company with the given NIP offers for order
// @Tags companies
// @Produce  json
// @Param   nip path string true "Seller NIP"
// @Param   limit query int false "Limit" default(50)
// @Param   offset query int false "Offset" default(0)
// @Success 200 {array} dto.ProductResponse
// @Failure 401 {object} ErrorResponse "Caller has no approved company"
// @Failure 404 {object} ErrorResponse "Seller not found"
// @Security BearerAuth
// @Router /companies/{nip}/products [get]
func (h *companyHandler) listSellerCatalog(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var params dto.ListProductsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err, "query parameters")
		return
	}

	products, err := h.productService.ListSellerCatalog(c.Request.Context(), actor, c.Param("nip"), params)
	if err != nil {
		writeServiceError(c, err, "Failed to list seller catalog")
		return
	}
	c.JSON(http.StatusOK, dto.ToListProductResponse(products))
}
