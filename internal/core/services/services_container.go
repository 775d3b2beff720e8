package services

import (
	portsrepo "github.com/SscSPs/b2b_inventory_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/b2b_inventory_app/internal/core/ports/services"
	"github.com/SscSPs/b2b_inventory_app/internal/platform/config"
	"github.com/SscSPs/b2b_inventory_app/pkg/metrics"
)

// ContainerDeps carries the adapters the services depend on beyond repositories.
type ContainerDeps struct {
	RateSource     portssvc.RateSource
	RateSourceName string
	Notifier       portssvc.Notifier
	Metrics        *metrics.DomainMetrics
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, deps ContainerDeps) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Currency = NewCurrencyService(repos.CurrencyRepo)
	container.ExchangeRate = NewExchangeRateService(repos.ExchangeRateRepo, container.Currency)
	container.User = NewUserService(repos.UserRepo)
	container.Token = NewTokenService(cfg)
	container.Company = NewCompanyService(repos.CompanyRepo, cfg.AutoApproveCompanies)
	container.Product = NewProductService(repos.ProductRepo, repos.CompanyRepo, repos.CurrencyRepo)

	container.Converter = NewCurrencyConverter(deps.RateSource,
		WithConverterMetrics(deps.Metrics, deps.RateSourceName),
	)

	container.Movement = NewInventoryMovementService(repos.ProductRepo, repos.MovementRepo,
		WithMovementNotifier(deps.Notifier),
		WithMovementMetrics(deps.Metrics),
	)

	container.Order = NewOrderService(repos.OrderRepo, repos.ProductRepo, repos.CompanyRepo, container.Converter,
		WithOrderNotifier(deps.Notifier),
		WithOrderMetrics(deps.Metrics),
		WithDefaultCurrency(cfg.DefaultCurrency),
	)

	return container
}
