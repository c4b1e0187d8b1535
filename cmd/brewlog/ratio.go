package main

import (
	"fmt"

	"github.com/rpggio/brewlog/internal/domain/pour"
	"github.com/rpggio/brewlog/internal/mcp"
	"github.com/spf13/cobra"
)

func newRatioCmd() *cobra.Command {
	var (
		coffee      float64
		addingWater float64
		schedule    string
	)

	cmd := &cobra.Command{
		Use:   "ratio",
		Short: "Compute the brew ratio of a pour schedule",
		Long:  "Computes total water and the coffee-to-water ratio without touching the database.",
		Example: "  brewlog ratio --coffee 20 --pour 40@0:00,60@0:30,60@1:00,60@1:30 --adding-water 80",
		RunE: func(cmd *cobra.Command, args []string) error {
			steps, err := parseSchedule(schedule)
			if err != nil {
				return err
			}
			if err := steps.Validate(); err != nil {
				return fmt.Errorf("pour schedule %w", err)
			}
			if addingWater < 0 {
				return fmt.Errorf("adding water must not be negative")
			}

			resp := mcp.NewRatio(steps, coffee, addingWater)
			out := cmd.OutOrStdout()
			if resp.Preview != "" {
				fmt.Fprintf(out, "Pours:        %s\n", resp.Preview)
			}
			fmt.Fprintf(out, "Poured:       %sg\n", pour.FormatGrams(resp.TotalPoured))
			fmt.Fprintf(out, "Total water:  %sg\n", pour.FormatGrams(resp.TotalWater))
			if resp.Ratio == nil {
				fmt.Fprintln(out, "Ratio:        - (coffee amount must be positive)")
				return nil
			}
			fmt.Fprintf(out, "Ratio:        %s\n", resp.RatioText)
			return nil
		},
	}

	cmd.Flags().Float64Var(&coffee, "coffee", mcp.DefaultCoffeeAmount, "coffee dose in grams")
	cmd.Flags().Float64Var(&addingWater, "adding-water", 0, "water added after the pours, in grams")
	cmd.Flags().StringVar(&schedule, "pour", "", "pour schedule, e.g. 40@0:00,60@0:30")
	return cmd
}
