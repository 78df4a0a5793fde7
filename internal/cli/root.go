package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/flotorch/console-client/internal/app"
	"github.com/flotorch/console-client/internal/config"
	"github.com/flotorch/console-client/internal/logger"
)

// Options carries the process-wide dependencies into the command tree.
type Options struct {
	Config *config.Config
	Logger logger.Logger
	Stdin  io.Reader
	Stdout io.Writer
}

// runtime holds global flag values and builds a Console per invocation.
type runtime struct {
	opts    Options
	baseURL string
	timeout time.Duration
	output  string
}

// NewRootCommand builds the flotorch command tree.
func NewRootCommand(opts Options) *cobra.Command {
	if opts.Logger == nil {
		opts.Logger = &logger.NopLogger{}
	}
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	rt := &runtime{opts: opts}

	root := &cobra.Command{
		Use:   "flotorch",
		Short: "Operate FloTorch executions from the command line",
		Long: `flotorch talks to the FloTorch execution API.

Create and run projects, inspect experiments and their per-question
metrics, and upload knowledge-base and ground-truth files.

Examples:
  flotorch projects list --status completed
  flotorch projects create --file project.yaml
  flotorch experiments valid 42 --output yaml > candidates.yaml
  flotorch experiments create 42 --file candidates.yaml`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(opts.Stdin)
	root.SetOut(opts.Stdout)

	root.PersistentFlags().StringVar(&rt.baseURL, "base-url", "", "API base URL (default: API_BASE_URL)")
	root.PersistentFlags().DurationVar(&rt.timeout, "timeout", 0, "Per-request timeout (default: API_TIMEOUT_SECONDS)")
	root.PersistentFlags().StringVarP(&rt.output, "output", "o", formatJSON, "Output format: json, yaml")

	root.AddCommand(
		newProjectsCmd(rt),
		newExperimentsCmd(rt),
		newUploadCmd(rt),
		newHistoryCmd(rt),
	)
	return root
}

// Execute runs the command tree with args taken from os.Args.
func Execute(ctx context.Context, opts Options) error {
	return NewRootCommand(opts).ExecuteContext(ctx)
}

// withConsole builds a Console honoring the global flags, runs fn and closes it.
func (rt *runtime) withConsole(cmd *cobra.Command, fn func(ctx context.Context, c *app.Console) error) error {
	if _, err := newPrinter(rt.output, io.Discard); err != nil {
		return err
	}
	if rt.opts.Config == nil {
		return fmt.Errorf("config must not be nil")
	}
	cfg, err := rt.opts.Config.WithOverrides(rt.baseURL, rt.timeout)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	console, err := app.NewConsole(ctx, cfg, rt.opts.Logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := console.Close(); err != nil {
			rt.opts.Logger.WarnObj("console close failed", "error", err.Error())
		}
	}()

	return fn(ctx, console)
}

// print writes v to stdout in the selected format.
func (rt *runtime) print(cmd *cobra.Command, v any) error {
	p, err := newPrinter(rt.output, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	return p.Print(v)
}
