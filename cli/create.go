package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/labelforge/labelforge/engine/infra/repo"
	"github.com/labelforge/labelforge/engine/project"
	projectuc "github.com/labelforge/labelforge/engine/project/uc"
	"github.com/labelforge/labelforge/engine/resources/importer"
	"github.com/labelforge/labelforge/pkg/config"
	"github.com/labelforge/labelforge/pkg/logger"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

type createResult struct {
	Project string   `json:"project"`
	Items   int      `json:"items"`
	Tasks   []string `json:"tasks"`
}

// CreateCmd creates a project from local item, attribute and category files.
func CreateCmd() *cobra.Command {
	var (
		form      project.RawForm
		itemsPath string
		attrsPath string
		catsPath  string
		taskSize  int
		demoMode  bool
		output    string
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a project and its tasks from local files",
		Example: "  labelforge create --name intersections --item-type image --label-type box2d \\\n" +
			"    --task-size 5 --items items.yml",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			if cmd.Flags().Changed("task-size") {
				form.TaskSize = strconv.Itoa(taskSize)
			}
			form.DemoMode = strconv.FormatBool(demoMode)
			store, err := repo.NewStore(ctx, &cfg.Storage)
			if err != nil {
				return err
			}
			defer func() {
				if err := store.Close(); err != nil {
					logger.FromContext(ctx).Warn("failed to close store", "error", err)
				}
			}()
			fs := afero.NewOsFs()
			out, err := projectuc.NewCreate(store).Execute(ctx, &projectuc.CreateInput{
				Form: form,
				Files: importer.Files{
					Items:      fileSource(fs, itemsPath),
					Attributes: fileSource(fs, attrsPath),
					Categories: fileSource(fs, catsPath),
				},
			})
			if err != nil {
				return err
			}
			result := createResult{
				Project: out.Project.Config.ProjectName,
				Items:   len(out.Project.Items),
				Tasks:   out.TaskIDs,
			}
			return writeResult(cmd.OutOrStdout(), detectOutputFormat(output), result, func() string {
				return fmt.Sprintf("Created project %s with %d items in %d tasks: %s",
					result.Project, result.Items, len(result.Tasks), strings.Join(result.Tasks, ", "))
			})
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&form.ProjectName, "name", "", "Project name")
	flags.StringVar(&form.ItemType, "item-type", "", "Item type (image, video, pointcloud, pointcloudtracking, fusion)")
	flags.StringVar(&form.LabelType, "label-type", "", "Label type (tag, box2d, polygon2d, polyline2d, box3d)")
	flags.StringVar(&form.PageTitle, "page-title", "", "Title shown on the labeling page")
	flags.StringVar(&form.Instructions, "instructions", "", "URL of the labeling instructions")
	flags.IntVar(&taskSize, "task-size", 0, "Items per task (ignored for video)")
	flags.BoolVar(&demoMode, "demo-mode", false, "Mark the project as a demo")
	flags.StringVar(&itemsPath, "items", "", "Items file (YAML or JSON)")
	flags.StringVar(&attrsPath, "attributes", "", "Attributes file (YAML or JSON)")
	flags.StringVar(&catsPath, "categories", "", "Categories file (YAML or JSON)")
	flags.StringVarP(&output, "output", "o", "", "Output format (text or json); detected from the terminal when empty")
	return cmd
}

func fileSource(fs afero.Fs, path string) importer.Source {
	if path == "" {
		return nil
	}
	return importer.FileSource{Fs: fs, Path: path}
}
