package handlers

import (
	"net/http"

	"github.com/SscSPs/b2b_inventory_app/cmd/docs"
	portssvc "github.com/SscSPs/b2b_inventory_app/internal/core/ports/services"
	"github.com/SscSPs/b2b_inventory_app/internal/middleware"
	"github.com/SscSPs/b2b_inventory_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// RouteDeps carries the non-service collaborators the router needs.
type RouteDeps struct {
	Events         EventSubscriber
	MetricsHandler http.Handler
	APILimiter     *limiter.Limiter
	LoginLimiter   *limiter.Limiter
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	deps RouteDeps,
) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	if deps.MetricsHandler != nil {
		r.GET("/metrics", gin.WrapH(deps.MetricsHandler))
	}

	// Public authentication routes
	registerAuthRoutes(r, services.User, services.Token, deps.LoginLimiter)

	setupAPIV1Routes(r, cfg, services, deps)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
	deps RouteDeps,
) {
	chain := []gin.HandlerFunc{
		middleware.AuthMiddleware(cfg.JWTSecret),
		middleware.ActorMiddleware(service.User),
	}
	if deps.APILimiter != nil {
		chain = append(chain, middleware.RateLimit(deps.APILimiter))
	}
	v1 := r.Group("/api/v1", chain...)
	// Same chain, but the token may also arrive as a query parameter.
	streams := r.Group("/api/v1", append([]gin.HandlerFunc{middleware.QueryTokenMiddleware()}, chain...)...)

	registerUserRoutes(v1, service.User)
	registerCompanyRoutes(v1, service.Company, service.Product)
	registerProductRoutes(v1, service.Product, service.Movement)
	RegisterOrderRoutes(v1, service.Order)
	registerCurrencyRoutes(v1, service.Currency, service.Converter)
	registerExchangeRateRoutes(v1, service.ExchangeRate)
	if deps.Events != nil {
		registerNotificationRoutes(streams, deps.Events)
	}
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
