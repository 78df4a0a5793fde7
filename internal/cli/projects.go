package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/flotorch/console-client/internal/app"
	"github.com/flotorch/console-client/internal/domain"
	"github.com/flotorch/console-client/internal/payload"
)

func newProjectsCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"project", "executions"},
		Short:   "List, inspect, create and run projects",
	}
	cmd.AddCommand(
		newProjectsListCmd(rt),
		newProjectsGetCmd(rt),
		newProjectsCreateCmd(rt),
		newProjectsExecuteCmd(rt),
		newProjectsOverviewCmd(rt),
	)
	return cmd
}

func newProjectsListCmd(rt *runtime) *cobra.Command {
	var q domain.ProjectsListQuery

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Long: `List projects, optionally filtered.

Examples:
  flotorch projects list
  flotorch projects list --status completed --limit 20
  flotorch projects list --filter region=us-east-1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return rt.withConsole(cmd, func(ctx context.Context, c *app.Console) error {
				var filter *domain.ProjectsListQuery
				if q.Status != "" || q.Name != "" || q.Limit > 0 || len(q.Extra) > 0 {
					filter = &q
				}
				list, err := c.ListProjects(ctx, filter)
				if err != nil {
					return err
				}
				return rt.print(cmd, list)
			})
		},
	}
	cmd.Flags().StringVar(&q.Status, "status", "", "Filter by status")
	cmd.Flags().StringVar(&q.Name, "name", "", "Filter by name")
	cmd.Flags().IntVar(&q.Limit, "limit", 0, "Maximum projects to return")
	cmd.Flags().StringToStringVar(&q.Extra, "filter", nil, "Additional query filter as key=value (repeatable)")
	return cmd
}

func newProjectsGetCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.withConsole(cmd, func(ctx context.Context, c *app.Console) error {
				p, err := c.GetProject(ctx, args[0])
				if err != nil {
					return err
				}
				return rt.print(cmd, p)
			})
		},
	}
}

func newProjectsCreateCmd(rt *runtime) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a project from a YAML or JSON body",
		Long: `Create a project. The body is sent to the API as is.

Examples:
  flotorch projects create --file project.yaml
  cat project.json | flotorch projects create --file -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			body, err := payload.LoadProject(file, cmd.InOrStdin())
			if err != nil {
				return err
			}
			return rt.withConsole(cmd, func(ctx context.Context, c *app.Console) error {
				ref, err := c.CreateProject(ctx, body)
				if err != nil {
					return err
				}
				return rt.print(cmd, ref)
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Body file (YAML or JSON, - for stdin)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newProjectsExecuteCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "execute <id>",
		Short: "Start running a project's experiments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.withConsole(cmd, func(ctx context.Context, c *app.Console) error {
				ref, err := c.ExecuteProject(ctx, args[0])
				if err != nil {
					return err
				}
				return rt.print(cmd, ref)
			})
		},
	}
}

func newProjectsOverviewCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "overview <id>",
		Short: "Show a project with its experiments and experiment candidates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return rt.withConsole(cmd, func(ctx context.Context, c *app.Console) error {
				ov, err := c.Overview(ctx, args[0])
				if err != nil {
					return err
				}
				return rt.print(cmd, ov)
			})
		},
	}
}
