// Package cmd - structures command
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"proposal-cost/core/proposal"
	"proposal-cost/core/rollup"
)

// structuresCmd represents the structures command
var structuresCmd = &cobra.Command{
	Use:   "structures [file]",
	Short: "List a proposal's structure tree with duplicate lineage",
	Args:  cobra.ExactArgs(1),
	RunE:  runStructures,
}

func runStructures(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read proposal: %w", err)
	}

	p := proposal.Hydrate(data)
	for _, s := range p.Structures() {
		indent := ""
		if s.IsDuplicate {
			indent = "  "
		}
		fmt.Printf("%s%-44s levels=%-3d construction=%s (rate %s)\n",
			indent, s.Name, len(s.Levels),
			rollup.FormatAmount(s.ConstructionTotal()), s.DuplicateRate.String())
	}
	return nil
}
