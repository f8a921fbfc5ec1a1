// Package cmd - rates command
package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"proposal-cost/core/types"
	"proposal-cost/db"
	"proposal-cost/internal/config"
)

// ratesCmd represents the rates command
var ratesCmd = &cobra.Command{
	Use:   "rates [discipline]",
	Short: "List hourly rates from the configured rate database",
	Long: `Query the hourly-rate table, optionally narrowed to one discipline.

Examples:
  proposal-cost rates
  proposal-cost rates arch`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRates,
}

func runRates(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	if cfg.Rates.DatabaseURL == "" {
		return fmt.Errorf("no rate database configured (set rates.database_url)")
	}

	store, err := db.Open(cfg.Rates.DatabaseURL)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	var rows []types.HourlyRate
	if len(args) == 1 {
		rows, err = store.LoadRatesForDiscipline(ctx, args[0])
	} else {
		rows, err = store.LoadRates(ctx)
	}
	if err != nil {
		return err
	}

	if len(rows) == 0 {
		fmt.Println("no rates found")
		return nil
	}
	for _, r := range rows {
		fmt.Printf("%-20s %-20s %-15s %10s\n",
			r.Key.DisciplineID, r.Key.RoleID, r.Key.Designation, r.Rate.StringFixed(2))
	}
	return nil
}
