package cli

import (
	"github.com/spf13/cobra"
)

const (
	defaultConfigFile = "labelforge.yaml"
	defaultEnvFile    = ".env"
)

func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "labelforge",
		Short:         "Create and export annotation projects",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return SetupGlobalConfig(cmd)
		},
	}
	flags := root.PersistentFlags()
	flags.String("config", defaultConfigFile, "Path to the YAML configuration file")
	flags.String("env-file", defaultEnvFile, "Path to an environment file loaded before configuration")
	flags.String("log-level", "info", "Log level (debug, info, warn, error, disabled)")
	flags.Bool("log-json", false, "Write logs as JSON")
	flags.Bool("log-source", false, "Include source locations in logs")
	flags.String("storage-driver", "file", "Storage backend (memory, file, redis, sqlite, postgres)")
	flags.String("data-dir", "data", "Directory of the file storage backend")
	flags.String("redis-url", "", "Redis URL of the redis storage backend")
	flags.String("sqlite-path", "", "Database file of the sqlite storage backend")
	flags.String("postgres-dsn", "", "Connection string of the postgres storage backend")
	flags.Int("cache-size", 128, "Entries kept in the storage read cache (0 disables it)")

	root.AddCommand(
		CreateCmd(),
		ExportCmd(),
		ServeCmd(),
		VersionCmd(),
	)
	return root
}
