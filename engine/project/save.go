package project

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/labelforge/labelforge/engine/resources"
	"github.com/labelforge/labelforge/engine/resources/metrics"
	"github.com/labelforge/labelforge/engine/state"
	"github.com/labelforge/labelforge/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// ErrProjectNotFound is returned when loading a project that was never saved.
var ErrProjectNotFound = errors.New("project not found")

// Saver is the write side of the storage collaborator.
type Saver interface {
	Save(ctx context.Context, key string, value []byte) error
}

// Reader is the read side of the storage collaborator.
type Reader interface {
	Load(ctx context.Context, key string) ([]byte, error)
	List(ctx context.Context, prefix string) ([]string, error)
}

func encodeDocument(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// SaveProject stores the project document.
func SaveProject(ctx context.Context, store Saver, p *Project) error {
	data, err := encodeDocument(p)
	if err != nil {
		return fmt.Errorf("encode project %s: %w", p.Config.ProjectName, err)
	}
	if err := store.Save(ctx, ProjectKey(p.Config.ProjectName), data); err != nil {
		return err
	}
	logger.FromContext(ctx).Info("project saved", "project", p.Config.ProjectName, "items", len(p.Items))
	return nil
}

// SaveTasks stores every task concurrently and returns the first error.
// Writes that succeeded are kept when another one fails.
func SaveTasks(ctx context.Context, store Saver, tasks []state.Task) error {
	log := logger.FromContext(ctx)
	var g errgroup.Group
	for i := range tasks {
		t := &tasks[i]
		g.Go(func() error {
			data, err := encodeDocument(t)
			if err == nil {
				err = store.Save(ctx, TaskKey(t.Config.ProjectName, t.Config.TaskID), data)
			}
			metrics.RecordTaskSaved(ctx, metrics.Outcome(err))
			if err != nil {
				log.Error("task save failed", "project", t.Config.ProjectName, "task", t.Config.TaskID, "error", err)
				return fmt.Errorf("save task %s: %w", t.Config.TaskID, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if len(tasks) > 0 {
		log.Info("tasks saved", "project", tasks[0].Config.ProjectName, "count", len(tasks))
	}
	return nil
}

// LoadProject reads a saved project document.
func LoadProject(ctx context.Context, store Reader, name string) (*Project, error) {
	if !ValidProjectName(name) {
		return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, name)
	}
	data, err := store.Load(ctx, ProjectKey(name))
	if err != nil {
		if errors.Is(err, resources.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, name)
		}
		return nil, err
	}
	var p Project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode project %s: %w", name, err)
	}
	return &p, nil
}

// LoadTask reads one saved task.
func LoadTask(ctx context.Context, store Reader, name, taskID string) (*state.Task, error) {
	data, err := store.Load(ctx, TaskKey(name, taskID))
	if err != nil {
		return nil, err
	}
	var t state.Task
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("decode task %s: %w", taskID, err)
	}
	return &t, nil
}

// LoadTasks reads all saved tasks of a project in task id order.
func LoadTasks(ctx context.Context, store Reader, name string) ([]state.Task, error) {
	keys, err := store.List(ctx, TasksPrefix(name))
	if err != nil {
		return nil, err
	}
	tasks := make([]state.Task, 0, len(keys))
	prefix := TasksPrefix(name)
	for _, key := range keys {
		taskID := strings.TrimPrefix(key, prefix)
		if taskID == "" || strings.Contains(taskID, "/") {
			continue
		}
		t, err := LoadTask(ctx, store, name, taskID)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, nil
}
