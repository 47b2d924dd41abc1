package state

import (
	"encoding/json"
	"fmt"
)

// ShapeType discriminates the payload stored in an IndexedShape.
type ShapeType string

const (
	ShapeRect      ShapeType = "rect"
	ShapePolygon2D ShapeType = "polygon2d"
	ShapeCube      ShapeType = "cube"
)

// Shape is the closed set of geometric payloads a label can reference.
// Only Rect, Polygon and Cube implement it.
type Shape interface {
	ShapeType() ShapeType
	isShape()
}

// Rect is an axis-aligned 2D box.
type Rect struct {
	X1 float64 `json:"x1" yaml:"x1"`
	Y1 float64 `json:"y1" yaml:"y1"`
	X2 float64 `json:"x2" yaml:"x2"`
	Y2 float64 `json:"y2" yaml:"y2"`
}

func (Rect) ShapeType() ShapeType { return ShapeRect }
func (Rect) isShape()             {}

// PathPoint is a polygon vertex or bezier control point.
type PathPoint struct {
	X    float64 `json:"x"    yaml:"x"`
	Y    float64 `json:"y"    yaml:"y"`
	Type string  `json:"type" yaml:"type"`
}

// Polygon is an ordered list of path points.
type Polygon struct {
	Points []PathPoint `json:"points" yaml:"points"`
}

func (Polygon) ShapeType() ShapeType { return ShapePolygon2D }
func (Polygon) isShape()             {}

type Vector3 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// Cube is an oriented 3D box.
type Cube struct {
	Center      Vector3 `json:"center"      yaml:"center"`
	Size        Vector3 `json:"size"        yaml:"size"`
	Orientation Vector3 `json:"orientation" yaml:"orientation"`
	AnchorIndex int     `json:"anchorIndex" yaml:"anchorIndex"`
	SurfaceID   int     `json:"surfaceId"   yaml:"surfaceId"`
}

func (Cube) ShapeType() ShapeType { return ShapeCube }
func (Cube) isShape()             {}

// IndexedShape is a shape stored in an item together with the labels using it.
type IndexedShape struct {
	ID    int
	Label []int
	Type  ShapeType
	Shape Shape
}

// NewIndexedShape wraps shape under id, deriving the type tag from the payload.
func NewIndexedShape(id int, labels []int, shape Shape) IndexedShape {
	if labels == nil {
		labels = []int{}
	}
	return IndexedShape{ID: id, Label: labels, Type: shape.ShapeType(), Shape: shape}
}

type indexedShapeJSON struct {
	ID    int             `json:"id"`
	Label []int           `json:"label"`
	Type  ShapeType       `json:"type"`
	Shape json.RawMessage `json:"shape"`
}

func (s IndexedShape) MarshalJSON() ([]byte, error) {
	if s.Shape == nil {
		return nil, fmt.Errorf("shape %d: %w", s.ID, ErrMissingShape)
	}
	if s.Shape.ShapeType() != s.Type {
		return nil, fmt.Errorf("shape %d tagged %q holds %q: %w", s.ID, s.Type, s.Shape.ShapeType(), ErrShapeMismatch)
	}
	payload, err := json.Marshal(s.Shape)
	if err != nil {
		return nil, err
	}
	labels := s.Label
	if labels == nil {
		labels = []int{}
	}
	return json.Marshal(indexedShapeJSON{ID: s.ID, Label: labels, Type: s.Type, Shape: payload})
}

func (s *IndexedShape) UnmarshalJSON(data []byte) error {
	var raw indexedShapeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	shape, err := DecodeShape(raw.Type, raw.Shape)
	if err != nil {
		return fmt.Errorf("shape %d: %w", raw.ID, err)
	}
	*s = IndexedShape{ID: raw.ID, Label: raw.Label, Type: raw.Type, Shape: shape}
	return nil
}

// DecodeShape decodes a JSON payload into the concrete shape named by typ.
func DecodeShape(typ ShapeType, payload []byte) (Shape, error) {
	switch typ {
	case ShapeRect:
		var r Rect
		if err := json.Unmarshal(payload, &r); err != nil {
			return nil, err
		}
		return r, nil
	case ShapePolygon2D:
		var p Polygon
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, err
		}
		return p, nil
	case ShapeCube:
		var c Cube
		if err := json.Unmarshal(payload, &c); err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownShapeType, typ)
	}
}
