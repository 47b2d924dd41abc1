package uc

import (
	"context"

	"github.com/labelforge/labelforge/engine/project"
	"github.com/labelforge/labelforge/engine/resources/importer"
	"github.com/labelforge/labelforge/engine/resources/metrics"
	"github.com/labelforge/labelforge/pkg/logger"
)

// Store is the storage a project is created in.
type Store interface {
	project.ExistsChecker
	project.Saver
}

// CreateInput carries the submitted creation form and its uploads.
type CreateInput struct {
	Form  project.RawForm
	Files importer.Files
}

// CreateOutput describes the stored project.
type CreateOutput struct {
	Project *project.Project
	TaskIDs []string
}

// Create validates a creation form, materializes its tasks and saves
// the project followed by every task.
type Create struct {
	store Store
}

// NewCreate constructs a Create use case bound to store.
func NewCreate(store Store) *Create {
	return &Create{store: store}
}

// Execute runs the whole creation pipeline. Nothing is written unless the
// form, the uploads and every task convert cleanly.
func (uc *Create) Execute(ctx context.Context, in *CreateInput) (*CreateOutput, error) {
	if in == nil {
		return nil, ErrInvalidInput
	}
	out, err := uc.execute(ctx, in)
	if err != nil {
		metrics.RecordImportError(ctx, errorKind(err))
		return nil, err
	}
	return out, nil
}

func (uc *Create) execute(ctx context.Context, in *CreateInput) (*CreateOutput, error) {
	log := logger.FromContext(ctx)
	form, err := project.ParseForm(ctx, in.Form, uc.store)
	if err != nil {
		return nil, err
	}
	data, err := importer.ParseFiles(ctx, form.LabelType, in.Files)
	if err != nil {
		return nil, err
	}
	p, err := project.CreateProject(form, data)
	if err != nil {
		return nil, err
	}
	tasks, err := project.CreateTasks(p)
	if err != nil {
		return nil, err
	}
	if err := project.SaveProject(ctx, uc.store, p); err != nil {
		return nil, err
	}
	if err := project.SaveTasks(ctx, uc.store, tasks); err != nil {
		return nil, err
	}
	metrics.RecordProjectCreated(ctx, string(form.ItemType))
	metrics.RecordImportItems(ctx, string(form.ItemType), len(p.Items))
	ids := make([]string, len(tasks))
	for i := range tasks {
		ids[i] = tasks[i].Config.TaskID
	}
	log.Info("project created", "project", form.ProjectName, "items", len(p.Items), "tasks", len(ids))
	return &CreateOutput{Project: p, TaskIDs: ids}, nil
}
