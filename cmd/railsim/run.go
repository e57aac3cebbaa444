package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/san-kum/railsim/internal/automation"
	"github.com/san-kum/railsim/internal/viz"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <scenario.yaml>",
		Short: "run a scripted sequence of shots and sweeps",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := automation.LoadScenario(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			results, err := automation.RunScenario(ctx, sc, slog.Default())
			for i, r := range results {
				fmt.Println(stepSummary(i+1, r))
			}
			return err
		},
	}
}

func stepSummary(n int, r automation.StepResult) string {
	title := fmt.Sprintf("step %d", n)
	if r.Step.Name != "" {
		title += ": " + r.Step.Name
	}

	switch {
	case r.Sweep != nil:
		return sweepSummary(r.Sweep)
	case r.Shot != nil:
		return shotSummary(r.Shot, r.Err)
	default:
		return viz.Summary(title, []viz.Row{{Label: "error", Value: viz.ErrorText.Render(r.Err.Error())}})
	}
}
