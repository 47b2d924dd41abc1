package exporter

import (
	"errors"
	"fmt"
	"slices"

	"github.com/labelforge/labelforge/engine/state"
)

var (
	ErrUnexportableShape = errors.New("label type has no export shape")
	ErrShapeMismatch     = errors.New("shape does not match label type")
	ErrMissingShape      = errors.New("label references a missing shape")
	ErrCategoryIndex     = errors.New("category index out of range")
)

// ConvertItem builds the export record of item under cfg. Only the first
// shape of each label is exported.
func ConvertItem(cfg *state.Config, item *state.Item) (state.ItemExport, error) {
	out := state.ItemExport{
		Name:       item.URL,
		URL:        item.URL,
		VideoName:  item.VideoName,
		Attributes: map[string][]string{},
		Timestamp:  item.Timestamp,
		Index:      item.ID,
		Labels:     make([]state.LabelExport, 0, len(item.Labels)),
	}
	ids := make([]int, 0, len(item.Labels))
	for id := range item.Labels {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		label := item.Labels[id]
		le, err := convertLabel(cfg, item, &label)
		if err != nil {
			return state.ItemExport{}, fmt.Errorf("item %d: label %d: %w", item.ID, id, err)
		}
		out.Labels = append(out.Labels, le)
	}
	return out, nil
}

// ConvertTask exports every item of task in order.
func ConvertTask(task *state.Task) ([]state.ItemExport, error) {
	out := make([]state.ItemExport, 0, len(task.Items))
	for i := range task.Items {
		exp, err := ConvertItem(&task.Config, &task.Items[i])
		if err != nil {
			return nil, fmt.Errorf("task %s: %w", task.Config.TaskID, err)
		}
		out = append(out, exp)
	}
	return out, nil
}

// ConvertTasks concatenates the exports of tasks.
func ConvertTasks(tasks []state.Task) ([]state.ItemExport, error) {
	var out []state.ItemExport
	for i := range tasks {
		items, err := ConvertTask(&tasks[i])
		if err != nil {
			return nil, err
		}
		out = append(out, items...)
	}
	if out == nil {
		out = []state.ItemExport{}
	}
	return out, nil
}

func convertLabel(cfg *state.Config, item *state.Item, label *state.Label) (state.LabelExport, error) {
	category, err := CategoryNames(cfg.Categories, label.Category)
	if err != nil {
		return state.LabelExport{}, err
	}
	out := state.LabelExport{
		ID:          label.ID,
		Category:    category,
		Attributes:  AttributeValues(cfg.Attributes, label.Attributes),
		ManualShape: label.Manual,
	}
	if len(label.Shapes) == 0 {
		return out, nil
	}
	indexed, ok := item.Shapes[label.Shapes[0]]
	if !ok {
		return state.LabelExport{}, fmt.Errorf("%w: %d", ErrMissingShape, label.Shapes[0])
	}
	if err := setShape(&out, label.Type, indexed.Shape); err != nil {
		return state.LabelExport{}, err
	}
	return out, nil
}

// setShape stores shape in the export field that matches labelType.
func setShape(out *state.LabelExport, labelType state.LabelType, shape state.Shape) error {
	switch labelType {
	case state.LabelBox2D:
		rect, ok := shape.(state.Rect)
		if !ok {
			return mismatch(labelType, shape)
		}
		out.Box2D = &rect
	case state.LabelPolygon2D, state.LabelPolyline2D:
		poly, ok := shape.(state.Polygon)
		if !ok {
			return mismatch(labelType, shape)
		}
		out.Poly2D = &poly
	case state.LabelBox3D:
		cube, ok := shape.(state.Cube)
		if !ok {
			return mismatch(labelType, shape)
		}
		out.Box3D = &cube
	default:
		return fmt.Errorf("%w: %q", ErrUnexportableShape, labelType)
	}
	return nil
}

func mismatch(labelType state.LabelType, shape state.Shape) error {
	if shape == nil {
		return fmt.Errorf("%w: %q has no shape payload", ErrShapeMismatch, labelType)
	}
	return fmt.Errorf("%w: %q holds %q", ErrShapeMismatch, labelType, shape.ShapeType())
}

// CategoryNames maps an index path back to category names.
func CategoryNames(tree []state.Category, path []int) ([]string, error) {
	names := make([]string, 0, len(path))
	level := tree
	for depth, i := range path {
		if i < 0 || i >= len(level) {
			return nil, fmt.Errorf("%w: %d at depth %d", ErrCategoryIndex, i, depth)
		}
		names = append(names, level[i].Name)
		level = level[i].Subcategories
	}
	return names, nil
}

// AttributeValues maps indexed attribute selections back to names. List
// selections become value names, skipping indices outside the value list.
// Switches are on when their first selection is 1.
func AttributeValues(attrs []state.Attribute, selected map[int][]int) map[string]state.AttributeValue {
	out := make(map[string]state.AttributeValue, len(selected))
	for attrIndex, values := range selected {
		if attrIndex < 0 || attrIndex >= len(attrs) {
			continue
		}
		attr := attrs[attrIndex]
		if attr.ToolType == state.ToolSwitch {
			out[attr.Name] = state.SwitchValue(len(values) > 0 && values[0] == 1)
			continue
		}
		names := make([]string, 0, len(values))
		for _, vi := range values {
			if vi >= 0 && vi < len(attr.Values) {
				names = append(names, attr.Values[vi])
			}
		}
		out[attr.Name] = state.ListValue(names...)
	}
	return out
}
