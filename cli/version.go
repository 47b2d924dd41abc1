package cli

import (
	"fmt"

	"github.com/labelforge/labelforge/pkg/version"
	"github.com/spf13/cobra"
)

func VersionCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := version.Get()
			return writeResult(cmd.OutOrStdout(), detectOutputFormat(output), info, func() string {
				return fmt.Sprintf("labelforge %s (commit %s, built %s)", info.Version, info.CommitHash, info.BuildDate)
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output format (text or json)")
	return cmd
}
