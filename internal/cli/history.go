package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/flotorch/console-client/internal/app"
)

func newHistoryCmd(rt *runtime) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List executions launched from this machine",
		Long: `List the local launch journal, newest first. Entries expire after
JOURNAL_TTL_SECONDS.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return rt.withConsole(cmd, func(_ context.Context, c *app.Console) error {
				entries, err := c.History(limit)
				if err != nil {
					return err
				}
				return rt.print(cmd, entries)
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum entries to show (0 for all)")
	return cmd
}
