package uc

import (
	"context"
	"strings"
	"time"

	"github.com/labelforge/labelforge/engine/project"
	"github.com/labelforge/labelforge/engine/resources/exporter"
	"github.com/labelforge/labelforge/engine/resources/metrics"
	"github.com/labelforge/labelforge/engine/state"
	"github.com/spf13/afero"
)

// ExportInput selects the project and encoding of an export.
type ExportInput struct {
	Project string
	Format  exporter.Format
}

// ExportOutput holds the encoded export.
type ExportOutput struct {
	Items    []state.ItemExport
	Data     []byte
	Format   exporter.Format
	FileName string
}

// Export reads the saved tasks of a project back into exchange records.
type Export struct {
	store project.Reader
}

// NewExport constructs an Export use case bound to store.
func NewExport(store project.Reader) *Export {
	return &Export{store: store}
}

// Execute loads the project tasks in id order and encodes their items.
func (uc *Export) Execute(ctx context.Context, in *ExportInput) (*ExportOutput, error) {
	items, format, err := uc.collect(ctx, in)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	data, err := exporter.Encode(items, format)
	if err != nil {
		return nil, err
	}
	metrics.RecordExport(ctx, string(format), len(items), time.Since(start))
	return &ExportOutput{
		Items:    items,
		Data:     data,
		Format:   format,
		FileName: exporter.FileName(in.Project, format),
	}, nil
}

// ExecuteToFs writes the export into dir on fs and returns the file path.
func (uc *Export) ExecuteToFs(ctx context.Context, fs afero.Fs, dir string, in *ExportInput) (string, error) {
	items, format, err := uc.collect(ctx, in)
	if err != nil {
		return "", err
	}
	start := time.Now()
	path, err := exporter.ExportToFs(ctx, fs, dir, in.Project, items, format)
	if err != nil {
		return "", err
	}
	metrics.RecordExport(ctx, string(format), len(items), time.Since(start))
	return path, nil
}

func (uc *Export) collect(ctx context.Context, in *ExportInput) ([]state.ItemExport, exporter.Format, error) {
	if in == nil {
		return nil, "", ErrInvalidInput
	}
	in.Project = strings.TrimSpace(in.Project)
	if in.Project == "" {
		return nil, "", ErrProjectMissing
	}
	format, err := exporter.ParseFormat(string(in.Format))
	if err != nil {
		return nil, "", err
	}
	if _, err := project.LoadProject(ctx, uc.store, in.Project); err != nil {
		return nil, "", err
	}
	tasks, err := project.LoadTasks(ctx, uc.store, in.Project)
	if err != nil {
		return nil, "", err
	}
	items, err := exporter.ConvertTasks(tasks)
	if err != nil {
		return nil, "", err
	}
	return items, format, nil
}
