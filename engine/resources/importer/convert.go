package importer

import (
	"fmt"
	"slices"

	"github.com/labelforge/labelforge/engine/state"
)

// Converter turns export records into internal items for one project
// config. It is safe to reuse across tasks of the same project.
type Converter struct {
	categories []state.Category
	attributes *state.AttributeIndex
	polyType   state.LabelType
}

// NewConverter prepares lookups for cfg's categories and attributes.
func NewConverter(cfg *state.Config) *Converter {
	polyType := state.LabelPolygon2D
	if slices.Contains(cfg.LabelTypes, state.LabelPolyline2D) {
		polyType = state.LabelPolyline2D
	}
	return &Converter{
		categories: cfg.Categories,
		attributes: state.NewAttributeIndex(cfg.Attributes),
		polyType:   polyType,
	}
}

// IDAllocator hands out label ids above the largest id already taken.
type IDAllocator struct {
	next int
}

func NewIDAllocator(taken int) *IDAllocator {
	return &IDAllocator{next: taken + 1}
}

func (a *IDAllocator) Next() int {
	id := a.next
	a.next++
	return id
}

// Position places an item inside its project and task.
type Position struct {
	// ID is the item id across the whole project.
	ID int
	// Index is the item position inside its task.
	Index int
	// Order is the order assigned to the item's first label.
	Order int
}

// ConvertItem builds the internal item for exp. Labels keep their ids and
// share them with their single shape; labels with UnassignedID draw one
// from alloc.
func (c *Converter) ConvertItem(exp *state.ItemExport, pos Position, alloc *IDAllocator) (state.Item, error) {
	item := state.Item{
		ID:        pos.ID,
		Index:     pos.Index,
		URL:       exp.URL,
		VideoName: exp.VideoName,
		Timestamp: exp.Timestamp,
		Labels:    make(map[int]state.Label, len(exp.Labels)),
		Shapes:    make(map[int]state.IndexedShape, len(exp.Labels)),
	}
	for i := range exp.Labels {
		le := &exp.Labels[i]
		id := le.ID
		if id == UnassignedID {
			id = alloc.Next()
		}
		if _, dup := item.Labels[id]; dup {
			return state.Item{}, fmt.Errorf("item %d: label %d: %w", pos.ID, id, ErrDuplicateLabelID)
		}
		label, shape, err := c.convertLabel(le, id, pos.Index)
		if err != nil {
			return state.Item{}, fmt.Errorf("item %d: label %d: %w", pos.ID, id, err)
		}
		label.Order = pos.Order + i
		item.Labels[id] = label
		if shape != nil {
			item.Shapes[shape.ID] = *shape
		}
	}
	return item, nil
}

func (c *Converter) convertLabel(le *state.LabelExport, id, itemIndex int) (state.Label, *state.IndexedShape, error) {
	category, err := c.ResolveCategory(le.Category)
	if err != nil {
		return state.Label{}, nil, err
	}
	attributes, err := c.ResolveAttributes(le.Attributes)
	if err != nil {
		return state.Label{}, nil, err
	}
	labelType, shape := c.importShape(le)
	label := state.NewLabel(id, itemIndex, labelType)
	label.Category = category
	label.Attributes = attributes
	label.Manual = le.ManualShape
	if shape == nil {
		return label, nil, nil
	}
	indexed := state.NewIndexedShape(id, []int{id}, shape)
	label.Shapes = []int{indexed.ID}
	return label, &indexed, nil
}

// importShape picks the label type and shape of le. When several shape
// fields are set box2d wins over poly2d, which wins over box3d.
func (c *Converter) importShape(le *state.LabelExport) (state.LabelType, state.Shape) {
	switch {
	case le.Box2D != nil:
		return state.LabelBox2D, *le.Box2D
	case le.Poly2D != nil:
		poly := *le.Poly2D
		if poly.Points == nil {
			poly.Points = []state.PathPoint{}
		}
		return c.polyType, poly
	case le.Box3D != nil:
		return state.LabelBox3D, *le.Box3D
	default:
		return state.LabelTag, nil
	}
}

// ResolveCategory walks the category tree level by level and returns the
// index path of names. A name missing at any level is an error.
func (c *Converter) ResolveCategory(names []string) ([]int, error) {
	path := make([]int, 0, len(names))
	level := c.categories
	for depth, name := range names {
		i := slices.IndexFunc(level, func(cat state.Category) bool { return cat.Name == name })
		if i < 0 {
			return nil, fmt.Errorf("%w: %q at depth %d", ErrUnknownCategory, name, depth)
		}
		path = append(path, i)
		level = level[i].Subcategories
	}
	return path, nil
}

// ResolveAttributes maps exported attribute values to value indices keyed
// by attribute index. A switch that is on becomes [1] and one that is off
// becomes [].
func (c *Converter) ResolveAttributes(values map[string]state.AttributeValue) (map[int][]int, error) {
	out := make(map[int][]int, len(values))
	for name, value := range values {
		attr, ok := c.attributes.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownAttribute, name)
		}
		switch {
		case attr.Attribute.ToolType == state.ToolSwitch:
			if !value.IsSwitch() {
				return nil, fmt.Errorf("%w: %q expects a boolean", ErrAttributeType, name)
			}
			if value.On() {
				out[attr.Index] = []int{1}
			} else {
				out[attr.Index] = []int{}
			}
		case attr.Attribute.ToolType.IsList():
			if value.IsSwitch() {
				return nil, fmt.Errorf("%w: %q expects a list", ErrAttributeType, name)
			}
			indices := make([]int, 0, len(value.List()))
			for _, v := range value.List() {
				vi, ok := c.attributes.ValueIndex(attr.Index, v)
				if !ok {
					return nil, fmt.Errorf("%w: %q for %q", ErrUnknownAttributeValue, v, name)
				}
				indices = append(indices, vi)
			}
			out[attr.Index] = indices
		default:
			return nil, fmt.Errorf("%w: %q has tool type %q", ErrAttributeType, name, attr.Attribute.ToolType)
		}
	}
	return out, nil
}
