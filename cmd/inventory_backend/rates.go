package main

import (
	"fmt"
	"time"

	"github.com/SscSPs/b2b_inventory_app/internal/core/services"
	"github.com/SscSPs/b2b_inventory_app/internal/dto"
	"github.com/SscSPs/b2b_inventory_app/internal/platform/config"
	"github.com/SscSPs/b2b_inventory_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/b2b_inventory_app/pkg/database"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

const cliUserID = "cli"

var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "Manage stored exchange rates",
}

var rateDate string

var ratesSetCmd = &cobra.Command{
	Use:   "set FROM TO RATE",
	Short: "Store the rate converting FROM into TO",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		rate, err := decimal.NewFromString(args[2])
		if err != nil {
			return fmt.Errorf("invalid rate %q: %w", args[2], err)
		}
		effective := time.Now().UTC()
		if rateDate != "" {
			if effective, err = time.Parse(time.DateOnly, rateDate); err != nil {
				return fmt.Errorf("invalid --date %q: %w", rateDate, err)
			}
		}

		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		pool, err := database.NewPgxPool(cmd.Context(), cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer database.ClosePgxPool(pool)

		repos := pgsql.NewRepositoryProvider(pool)
		svc := services.NewExchangeRateService(repos.ExchangeRateRepo, services.NewCurrencyService(repos.CurrencyRepo))
		saved, err := svc.CreateExchangeRate(cmd.Context(), dto.CreateExchangeRateRequest{
			FromCurrencyCode: args[0],
			ToCurrencyCode:   args[1],
			Rate:             rate,
			DateEffective:    effective,
		}, cliUserID)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s = %s (effective %s)\n",
			saved.FromCurrencyCode, saved.ToCurrencyCode, saved.Rate, saved.DateEffective.Format(time.DateOnly))
		return nil
	},
}

func init() {
	ratesSetCmd.Flags().StringVar(&rateDate, "date", "", "effective date (YYYY-MM-DD), defaults to today")
	ratesCmd.AddCommand(ratesSetCmd)
}
