package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/bundleplan/cmd/planctl/internal/render"
	"github.com/katalvlaran/bundleplan/planner"
)

func newPlanCmd() *cobra.Command {
	var graphFile string
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Run the planner against a JSON fixture asset graph and print a summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			if graphFile == "" {
				return cmdErr(fmt.Errorf("plan: --graph is required"), 2)
			}
			f, err := os.Open(graphFile)
			if err != nil {
				return cmdErr(fmt.Errorf("plan: %w", err), 1)
			}
			defer f.Close()

			inputGraph, err := loadFixtureGraph(f)
			if err != nil {
				return cmdErr(err, 1)
			}

			cfg := configFromContext(cmd)
			if cfg == nil {
				return cmdErr(fmt.Errorf("plan: no configuration resolved"), 1)
			}

			plan, err := planner.Plan(inputGraph, cfg)
			if err != nil {
				return cmdErr(fmt.Errorf("plan: %w", err), 1)
			}

			fmt.Println(render.PlanSummary(plan))
			return nil
		},
	}
	cmd.Flags().StringVar(&graphFile, "graph", "", "path to a JSON fixture asset graph")
	return cmd
}
