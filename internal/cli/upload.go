package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/flotorch/console-client/internal/app"
)

func newUploadCmd(rt *runtime) *cobra.Command {
	var kb, gt string

	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Upload knowledge-base and ground-truth files",
		Long: `Request presigned URLs and upload the files directly to storage.
Prints the storage paths to reference from a project body.

Examples:
  flotorch upload --kb manual.pdf --gt questions.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return rt.withConsole(cmd, func(ctx context.Context, c *app.Console) error {
				targets, err := c.Upload(ctx, kb, gt)
				if err != nil {
					return err
				}
				return rt.print(cmd, targets)
			})
		},
	}
	cmd.Flags().StringVar(&kb, "kb", "", "Knowledge-base file")
	cmd.Flags().StringVar(&gt, "gt", "", "Ground-truth file")
	cmd.MarkFlagsOneRequired("kb", "gt")
	return cmd
}
