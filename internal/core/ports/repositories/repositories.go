package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	CompanyRepo      CompanyRepositoryFacade
	CurrencyRepo     CurrencyRepositoryFacade
	ExchangeRateRepo ExchangeRateRepositoryFacade
	MovementRepo     MovementRepositoryFacade
	OrderRepo        OrderRepositoryFacade
	ProductRepo      ProductRepositoryWithTx
	UserRepo         UserRepositoryFacade
}
