package state

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ItemExport is the portable representation of an item. Field names are
// part of the exchange format and must not change.
type ItemExport struct {
	Name       string              `json:"name"       yaml:"name"`
	URL        string              `json:"url"        yaml:"url"`
	VideoName  string              `json:"videoName"  yaml:"videoName"`
	Attributes map[string][]string `json:"attributes" yaml:"attributes"`
	Timestamp  float64             `json:"timestamp"  yaml:"timestamp"`
	Index      int                 `json:"index"      yaml:"index"`
	Labels     []LabelExport       `json:"labels"     yaml:"labels"`
}

// LabelExport is the portable representation of a label. At most one of
// Box2D, Poly2D and Box3D is set.
type LabelExport struct {
	ID          int                       `json:"id"          yaml:"id"`
	Category    []string                  `json:"category"    yaml:"category"`
	Attributes  map[string]AttributeValue `json:"attributes"  yaml:"attributes"`
	ManualShape bool                      `json:"manualShape" yaml:"manualShape"`
	Box2D       *Rect                     `json:"box2d"       yaml:"box2d"`
	Poly2D      *Polygon                  `json:"poly2d"      yaml:"poly2d"`
	Box3D       *Cube                     `json:"box3d"       yaml:"box3d"`
}

// AttributeValue is either a list of selected value names or a switch.
type AttributeValue struct {
	list     []string
	on       bool
	isSwitch bool
}

func ListValue(values ...string) AttributeValue {
	if values == nil {
		values = []string{}
	}
	return AttributeValue{list: values}
}

func SwitchValue(on bool) AttributeValue {
	return AttributeValue{on: on, isSwitch: true}
}

func (v AttributeValue) IsSwitch() bool { return v.isSwitch }

// List returns the selected value names; nil for switches.
func (v AttributeValue) List() []string { return v.list }

// On returns the switch state; false for lists.
func (v AttributeValue) On() bool { return v.on }

func (v AttributeValue) MarshalJSON() ([]byte, error) {
	if v.isSwitch {
		return json.Marshal(v.on)
	}
	if v.list == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(v.list)
}

func (v *AttributeValue) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var list []string
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return fmt.Errorf("%w: %w", ErrAttributeValue, err)
		}
		*v = ListValue(list...)
		return nil
	}
	var on bool
	if err := json.Unmarshal(trimmed, &on); err != nil {
		return fmt.Errorf("%w: %s", ErrAttributeValue, string(trimmed))
	}
	*v = SwitchValue(on)
	return nil
}

func (v AttributeValue) MarshalYAML() (any, error) {
	if v.isSwitch {
		return v.on, nil
	}
	if v.list == nil {
		return []string{}, nil
	}
	return v.list, nil
}

func (v *AttributeValue) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return fmt.Errorf("%w: %w", ErrAttributeValue, err)
		}
		*v = ListValue(list...)
		return nil
	case yaml.ScalarNode:
		var on bool
		if err := node.Decode(&on); err != nil {
			return fmt.Errorf("%w: line %d: %q", ErrAttributeValue, node.Line, node.Value)
		}
		*v = SwitchValue(on)
		return nil
	default:
		return fmt.Errorf("%w: line %d", ErrAttributeValue, node.Line)
	}
}
