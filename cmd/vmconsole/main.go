package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"voicemail-console/internal/app"
	"voicemail-console/internal/config"
	"voicemail-console/pkg/logger"

	"github.com/spf13/cobra"
)

func main() {
	// Root context that cancels on shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		slog.Error("vmconsole failed", "err", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "vmconsole",
		Short: "Operator console for voicemail projects",
		Long: `vmconsole keeps a local cache of settings, projects and voicemails
in sync with the voicemail service.

Available subcommands:
  serve     - Run the JSON console with background voicemail refresh
  projects  - List cached projects
  review    - List numbers that need an operator decision
  settings  - Show operator settings
  resolve   - Show which project receives a dialed number`,
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd(), newProjectsCmd(), newReviewCmd(), newSettingsCmd(), newResolveCmd())
	return root
}

// bootstrap loads config and builds an initialized App. Logs go to
// stderr so stdout carries only command output.
func bootstrap(ctx context.Context, logSink io.Writer) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := logger.NewTo(logSink, cfg.App.Env)
	a, err := app.New(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	if err := a.Init(ctx); err != nil {
		_ = a.Close()
		return nil, err
	}
	return a, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
