package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/labelforge/labelforge/engine/infra/repo"
	"github.com/labelforge/labelforge/engine/infra/server"
	"github.com/labelforge/labelforge/pkg/config"
	"github.com/labelforge/labelforge/pkg/logger"
	"github.com/spf13/cobra"
)

// ServeCmd runs the HTTP server.
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the project creation form and the project APIs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			log := logger.FromContext(ctx)
			manager := config.ManagerFromContext(ctx)
			cfg := manager.Get()
			if cfg.Runtime.LogLevel != string(logger.DebugLevel) {
				gin.SetMode(gin.ReleaseMode)
			}
			manager.OnChange(func(next *config.Config) {
				applyLogger(next)
				log.Info("Runtime configuration updated", "log_level", next.Runtime.LogLevel)
			})
			if err := manager.Watch(ctx); err != nil {
				log.Warn("Configuration file watching disabled", "error", err)
			}
			defer manager.Close()
			store, err := repo.NewStore(ctx, &cfg.Storage)
			if err != nil {
				return err
			}
			defer func() {
				if err := store.Close(); err != nil {
					log.Warn("failed to close store", "error", err)
				}
			}()
			srv, err := server.NewServer(ctx, store)
			if err != nil {
				return err
			}
			return srv.Run(ctx)
		},
	}
	cmd.Flags().String("host", "0.0.0.0", "Host to listen on")
	cmd.Flags().Int("port", 8686, "Port to listen on")
	cmd.Flags().Bool("metrics", false, "Expose Prometheus metrics")
	return cmd
}
