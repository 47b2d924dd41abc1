package cli

import (
	"fmt"

	"github.com/labelforge/labelforge/engine/infra/repo"
	projectuc "github.com/labelforge/labelforge/engine/project/uc"
	"github.com/labelforge/labelforge/engine/resources/exporter"
	"github.com/labelforge/labelforge/pkg/config"
	"github.com/labelforge/labelforge/pkg/logger"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// ExportCmd writes the items of a saved project in the exchange format.
func ExportCmd() *cobra.Command {
	var toStdout bool
	cmd := &cobra.Command{
		Use:   "export <project>",
		Short: "Export the labels of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			store, err := repo.NewStore(ctx, &cfg.Storage)
			if err != nil {
				return err
			}
			defer func() {
				if err := store.Close(); err != nil {
					logger.FromContext(ctx).Warn("failed to close store", "error", err)
				}
			}()
			in := &projectuc.ExportInput{Project: args[0], Format: exporter.Format(cfg.Export.Format)}
			export := projectuc.NewExport(store)
			if toStdout {
				out, err := export.Execute(ctx, in)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(out.Data)
				return err
			}
			path, err := export.ExecuteToFs(ctx, afero.NewOsFs(), cfg.Export.Dir, in)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	}
	cmd.Flags().String("format", "json", "Export format (json or yaml)")
	cmd.Flags().String("out", "export", "Directory the export file is written to")
	cmd.Flags().BoolVar(&toStdout, "stdout", false, "Write the export to stdout instead of a file")
	return cmd
}
