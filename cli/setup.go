package cli

import (
	"context"
	"fmt"

	"github.com/labelforge/labelforge/pkg/config"
	"github.com/labelforge/labelforge/pkg/logger"
	"github.com/spf13/cobra"
)

// SetupGlobalConfig loads the env file, then configuration from defaults,
// the YAML file, the environment and changed flags, and stores the manager
// and logger in the command context.
func SetupGlobalConfig(cmd *cobra.Command) error {
	if _, err := loadEnvFile(cmd); err != nil {
		return err
	}
	configFile, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	var sources []config.Source
	if configFile != "" {
		sources = append(sources, config.NewYAMLProvider(configFile))
	}
	sources = append(sources, config.NewCLIProvider(extractCLIFlags(cmd)))
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	manager := config.NewManager(config.NewService())
	cfg, err := manager.Load(ctx, sources...)
	if err != nil {
		return err
	}
	applyLogger(cfg)
	ctx = config.ContextWithManager(ctx, manager)
	ctx = logger.ContextWithLogger(ctx, logger.GetDefault())
	cmd.SetContext(ctx)
	return nil
}

func applyLogger(cfg *config.Config) {
	logger.SetupLogger(logger.LogLevel(cfg.Runtime.LogLevel), cfg.Runtime.LogJSON, cfg.Runtime.LogSource)
}
