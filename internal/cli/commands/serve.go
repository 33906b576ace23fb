package commands

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapview/internal/engine"
	"github.com/leapstack-labs/leapview/internal/server"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the development server",
		Long: `Compile the project and serve the compiled scenario documents over
HTTP. With --watch, sources are recompiled on change and connected
clients are notified over server-sent events at /api/events.`,
		Example: `  # Serve on the default address
  leapview serve

  # Serve with live rebuilds
  leapview serve --watch --addr :9000`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			// Initial build so clients have something to fetch.
			result, err := cmdCtx.Engine.Build(ctx, engine.BuildOptions{Write: true})
			if err != nil {
				return err
			}
			if result.Failed() > 0 {
				cmdCtx.Logger.Warn("initial build finished with failures", "failed", result.Failed())
			}

			srv := server.New(server.Options{
				Config: cmdCtx.Config,
				Engine: cmdCtx.Engine,
				Store:  cmdCtx.Store,
				Logger: cmdCtx.Logger,
			})
			return srv.Serve(ctx)
		},
	}

	cmd.Flags().String("addr", "", "listen address (default :8517)")
	cmd.Flags().Bool("watch", false, "rebuild on source changes")
	return cmd
}
