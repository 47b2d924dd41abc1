package uc

import (
	"context"
	"errors"
	"strings"

	"github.com/labelforge/labelforge/engine/project"
	"github.com/labelforge/labelforge/engine/resources"
	"github.com/labelforge/labelforge/engine/state"
)

// ErrTaskNotFound is returned when a task id has no saved document.
var ErrTaskNotFound = errors.New("task not found")

type GetTaskInput struct {
	Project string
	TaskID  string
}

// GetTask loads one saved task.
type GetTask struct {
	store project.Reader
}

func NewGetTask(store project.Reader) *GetTask {
	return &GetTask{store: store}
}

func (uc *GetTask) Execute(ctx context.Context, in *GetTaskInput) (*state.Task, error) {
	if in == nil {
		return nil, ErrInvalidInput
	}
	name := strings.TrimSpace(in.Project)
	if name == "" {
		return nil, ErrProjectMissing
	}
	id := strings.TrimSpace(in.TaskID)
	if id == "" {
		return nil, ErrTaskMissing
	}
	t, err := project.LoadTask(ctx, uc.store, name, id)
	if err != nil {
		if errors.Is(err, resources.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return t, nil
}
