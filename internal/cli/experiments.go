package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/flotorch/console-client/internal/app"
	"github.com/flotorch/console-client/internal/payload"
)

func newExperimentsCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "experiments",
		Aliases: []string{"experiment", "exp"},
		Short:   "Inspect and create experiments of a project",
	}
	cmd.AddCommand(
		newExperimentsListCmd(rt),
		newExperimentsGetCmd(rt),
		newExperimentsValidCmd(rt),
		newExperimentsCreateCmd(rt),
		newExperimentsMetricsCmd(rt),
	)
	return cmd
}

func newExperimentsListCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "list <id>",
		Short: "List experiments of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.withConsole(cmd, func(ctx context.Context, c *app.Console) error {
				list, err := c.ListExperiments(ctx, args[0])
				if err != nil {
					return err
				}
				return rt.print(cmd, list)
			})
		},
	}
}

func newExperimentsGetCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id> <experiment-id>",
		Short: "Show one experiment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.withConsole(cmd, func(ctx context.Context, c *app.Console) error {
				exp, err := c.GetExperiment(ctx, args[0], args[1])
				if err != nil {
					return err
				}
				return rt.print(cmd, exp)
			})
		},
	}
}

func newExperimentsValidCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "valid <id>",
		Short: "List experiment candidates the backend accepts for a project",
		Long: `List valid experiment configurations with directional pricing.
The output can be edited and passed to "experiments create".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.withConsole(cmd, func(ctx context.Context, c *app.Console) error {
				list, err := c.ListValidExperiments(ctx, args[0])
				if err != nil {
					return err
				}
				return rt.print(cmd, list)
			})
		},
	}
}

func newExperimentsCreateCmd(rt *runtime) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "create <id>",
		Short: "Create experiments from a YAML or JSON list",
		Long: `Create experiments for a project. The list is sent to the API as is.

Examples:
  flotorch experiments valid 42 --output yaml > candidates.yaml
  flotorch experiments create 42 --file candidates.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := payload.LoadExperiments(file, cmd.InOrStdin())
			if err != nil {
				return err
			}
			return rt.withConsole(cmd, func(ctx context.Context, c *app.Console) error {
				ref, err := c.CreateExperiments(ctx, args[0], list)
				if err != nil {
					return err
				}
				return rt.print(cmd, ref)
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Experiments file (YAML or JSON list, - for stdin)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newExperimentsMetricsCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "metrics <id> <experiment-id>",
		Short: "Show per-question evaluation metrics of an experiment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.withConsole(cmd, func(ctx context.Context, c *app.Console) error {
				m, err := c.QuestionMetrics(ctx, args[0], args[1])
				if err != nil {
					return err
				}
				return rt.print(cmd, m)
			})
		},
	}
}
