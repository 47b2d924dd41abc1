package project

import (
	"fmt"
	"slices"
	"strings"

	"github.com/labelforge/labelforge/engine/core"
	"github.com/labelforge/labelforge/engine/resources/importer"
	"github.com/labelforge/labelforge/engine/state"
	"github.com/labelforge/labelforge/engine/task"
)

// Project is the unpartitioned item list together with the shared config.
type Project struct {
	Config state.Config       `json:"config"`
	Items  []importer.RawItem `json:"items"`
}

// CreateProject builds the project for a validated form. Missing video
// names become "" and, for tracking projects, items are stable-sorted by
// video name.
func CreateProject(form *CreationForm, data *importer.FormFileData) (*Project, error) {
	if form == nil || data == nil {
		return nil, fmt.Errorf("create project: form and file data are required")
	}
	cfg := BuildConfig(form, data)
	items := make([]importer.RawItem, len(data.Items))
	for i, raw := range data.Items {
		name := raw.VideoNameOrEmpty()
		raw.VideoName = &name
		items[i] = raw
	}
	if cfg.Tracking {
		slices.SortStableFunc(items, func(a, b importer.RawItem) int {
			return strings.Compare(*a.VideoName, *b.VideoName)
		})
	}
	return &Project{Config: cfg, Items: items}, nil
}

// CreateTasks partitions the project items and converts each slice into a
// task. Item ids run across the whole project.
func CreateTasks(p *Project) ([]state.Task, error) {
	exports := make([]state.ItemExport, len(p.Items))
	for i := range p.Items {
		exports[i] = importer.FillItemDefaults(p.Items[i])
	}
	ordered, ranges, err := task.Partition(exports, p.Config.TaskSize, p.Config.Tracking,
		func(e state.ItemExport) string { return e.VideoName })
	if err != nil {
		return nil, fmt.Errorf("partition project %s: %w", p.Config.ProjectName, err)
	}
	conv := importer.NewConverter(&p.Config)
	tasks := make([]state.Task, 0, len(ranges))
	for _, r := range ranges {
		t, err := buildTask(&p.Config, conv, ordered[r.Start:r.End], r)
		if err != nil {
			return nil, fmt.Errorf("task %s: %w", core.IndexToString(r.Index), err)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func buildTask(base *state.Config, conv *importer.Converter, slice []state.ItemExport, r task.Range) (state.Task, error) {
	cfg, err := core.DeepCopy(*base)
	if err != nil {
		return state.Task{}, err
	}
	cfg.TaskSize = r.Len()
	cfg.TaskID = core.IndexToString(r.Index)
	maxExplicit, err := explicitMaxLabelID(slice)
	if err != nil {
		return state.Task{}, err
	}
	alloc := importer.NewIDAllocator(maxExplicit)
	items := make([]state.Item, 0, len(slice))
	status := state.NewTaskStatus()
	order := 0
	for i := range slice {
		item, err := conv.ConvertItem(&slice[i], importer.Position{ID: r.Start + i, Index: i, Order: order}, alloc)
		if err != nil {
			return state.Task{}, err
		}
		order += len(item.Labels)
		status = status.Merge(state.TaskStatus{
			MaxLabelID: state.MaxKey(item.Labels, status.MaxLabelID),
			MaxShapeID: state.MaxKey(item.Shapes, status.MaxShapeID),
			MaxOrder:   order,
			MaxTrackID: status.MaxTrackID,
		})
		items = append(items, item)
	}
	return state.Task{
		Config: cfg,
		Status: status,
		Items:  items,
		Tracks: map[int]state.Track{},
	}, nil
}

// explicitMaxLabelID returns the largest label id set in the upload and
// rejects ids used twice within the task.
func explicitMaxLabelID(slice []state.ItemExport) (int, error) {
	seen := make(map[int]struct{})
	maxID := -1
	for _, item := range slice {
		for _, l := range item.Labels {
			if l.ID == importer.UnassignedID {
				continue
			}
			if _, dup := seen[l.ID]; dup {
				return 0, fmt.Errorf("%w: %d", importer.ErrDuplicateLabelID, l.ID)
			}
			seen[l.ID] = struct{}{}
			maxID = max(maxID, l.ID)
		}
	}
	return maxID, nil
}
