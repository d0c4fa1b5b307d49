package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/vladimiradmaev/sugar-guidance/internal/bootstrap"
	"github.com/vladimiradmaev/sugar-guidance/internal/config"
	"github.com/vladimiradmaev/sugar-guidance/internal/logger"
)

// appOpener builds the application for one command run
type appOpener func(ctx context.Context) (*bootstrap.App, error)

// openApp loads the configuration from the environment. Logs go to stderr so
// they never mix with command output.
func openApp(ctx context.Context) (*bootstrap.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	output := cfg.Logger.OutputPath
	if output == "" || output == "stdout" {
		output = "stderr"
	}
	if err := logger.InitWithConfig(logger.Config{
		Level:      cfg.Logger.Level,
		OutputPath: output,
		Format:     cfg.Logger.Format,
	}); err != nil {
		return nil, err
	}

	return bootstrap.New(ctx, cfg)
}

func newRootCmd(open appOpener) *cobra.Command {
	root := &cobra.Command{
		Use:           "sugar",
		Short:         "Track blood sugar readings and get daily guidance",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newAddCmd(open),
		newHistoryCmd(open),
		newTrendCmd(open),
		newInsightCmd(open),
		newSummaryCmd(open),
		newContextsCmd(),
	)
	return root
}

// withApp opens the application, runs fn and closes it again
func withApp(cmd *cobra.Command, open appOpener, fn func(ctx context.Context, app *bootstrap.App, out io.Writer) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	app, err := open(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	return fn(ctx, app, cmd.OutOrStdout())
}
