package pgsql

import (
	portsrepo "github.com/SscSPs/b2b_inventory_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CompanyRepo:      newPgxCompanyRepository(dbPool),
		CurrencyRepo:     newPgxCurrencyRepository(dbPool),
		ExchangeRateRepo: newPgxExchangeRateRepository(dbPool),
		MovementRepo:     newPgxMovementRepository(dbPool),
		OrderRepo:        newPgxOrderRepository(dbPool),
		ProductRepo:      newPgxProductRepository(dbPool),
		UserRepo:         newPgxUserRepository(dbPool),
	}
}
