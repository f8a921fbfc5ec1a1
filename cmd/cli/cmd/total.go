// Package cmd - total command
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"proposal-cost/core/proposal"
	"proposal-cost/core/rollup"
	"proposal-cost/internal/logging"
)

var (
	outputFormat  string
	showBreakdown bool
)

// totalCmd represents the total command
var totalCmd = &cobra.Command{
	Use:   "total [file]",
	Short: "Roll up the fee totals of a proposal record",
	Long: `Load a persisted proposal record (the project_data JSON) and roll
fee totals up from subcomponents to the grand total.

Examples:
  proposal-cost total ./proposal.json
  proposal-cost total --format json ./proposal.json
  proposal-cost total --breakdown=false ./proposal.json`,
	Args: cobra.ExactArgs(1),
	RunE: runTotal,
}

func init() {
	totalCmd.Flags().StringVarP(&outputFormat, "format", "f", "cli", "output format (cli, json)")
	totalCmd.Flags().BoolVarP(&showBreakdown, "breakdown", "b", true, "show the per-category breakdown")
}

func runTotal(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read proposal: %w", err)
	}

	logging.Info("Rolling up proposal totals")
	p := proposal.Hydrate(data)

	if outputFormat == "json" {
		out := map[string]interface{}{
			"grand_total":  p.GrandTotal(),
			"categories":   p.CategoryTotals(),
			"construction": p.ConstructionTotals(),
		}
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(out)
	}

	if showBreakdown {
		for _, ct := range p.CategoryTotals() {
			name := ct.Name
			if name == "" {
				name = "(unnamed category)"
			}
			fmt.Printf("%-40s %15s\n", name, rollup.FormatAmount(ct.Total))
		}
		fmt.Println()
	}
	fmt.Printf("%-40s %15s\n", "Grand total", rollup.FormatAmount(p.GrandTotal()))
	return nil
}
