package state

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

func TestIndexedShape_JSON(t *testing.T) {
	t.Run("Should tag the payload with its shape type", func(t *testing.T) {
		s := NewIndexedShape(4, []int{4}, Cube{Center: Vector3{X: 1}, AnchorIndex: 2, SurfaceID: -1})
		data, err := json.Marshal(s)
		require.NoError(t, err)
		assert.Equal(t, "cube", gjson.GetBytes(data, "type").String())
		assert.Equal(t, float64(1), gjson.GetBytes(data, "shape.center.x").Float())
		assert.Equal(t, int64(-1), gjson.GetBytes(data, "shape.surfaceId").Int())

		var back IndexedShape
		require.NoError(t, json.Unmarshal(data, &back))
		assert.Equal(t, s, back)
	})

	t.Run("Should decode polygons with their points", func(t *testing.T) {
		raw := `{"id":1,"label":[1],"type":"polygon2d","shape":{"points":[{"x":1,"y":2,"type":"vertex"}]}}`
		var s IndexedShape
		require.NoError(t, json.Unmarshal([]byte(raw), &s))
		poly, ok := s.Shape.(Polygon)
		require.True(t, ok)
		assert.Equal(t, []PathPoint{{X: 1, Y: 2, Type: "vertex"}}, poly.Points)
	})

	t.Run("Should reject unknown shape types", func(t *testing.T) {
		var s IndexedShape
		err := json.Unmarshal([]byte(`{"id":1,"label":[],"type":"plane3d","shape":{}}`), &s)
		assert.ErrorIs(t, err, ErrUnknownShapeType)
	})

	t.Run("Should refuse to encode a mistagged shape", func(t *testing.T) {
		s := IndexedShape{ID: 1, Type: ShapeRect, Shape: Cube{}}
		_, err := json.Marshal(s)
		assert.ErrorIs(t, err, ErrShapeMismatch)
	})
}

func TestAttributeValue(t *testing.T) {
	t.Run("Should encode switches as booleans and lists as arrays", func(t *testing.T) {
		data, err := json.Marshal(map[string]AttributeValue{
			"Occluded": SwitchValue(true),
			"Color":    ListValue("G"),
			"Empty":    {},
		})
		require.NoError(t, err)
		assert.JSONEq(t, `{"Occluded":true,"Color":["G"],"Empty":[]}`, string(data))
	})

	t.Run("Should decode both forms from YAML", func(t *testing.T) {
		var got map[string]AttributeValue
		require.NoError(t, yaml.Unmarshal([]byte("Occluded: false\nColor: [NA, R]\n"), &got))
		assert.True(t, got["Occluded"].IsSwitch())
		assert.False(t, got["Occluded"].On())
		assert.Equal(t, []string{"NA", "R"}, got["Color"].List())
	})

	t.Run("Should reject scalars that are not booleans", func(t *testing.T) {
		var got map[string]AttributeValue
		err := yaml.Unmarshal([]byte("Color: red\n"), &got)
		assert.ErrorIs(t, err, ErrAttributeValue)
		err = json.Unmarshal([]byte(`{"Color":"red"}`), &got)
		assert.ErrorIs(t, err, ErrAttributeValue)
	})
}

func TestDefaults(t *testing.T) {
	t.Run("Should pick categories by label type", func(t *testing.T) {
		assert.Len(t, DefaultCategories(LabelBox2D), 10)
		assert.Equal(t, DefaultBoxCategories(), DefaultCategories(LabelBox3D))
		assert.Equal(t, "road curb", DefaultCategories(LabelPolyline2D)[0].Name)
		assert.Empty(t, DefaultCategories(LabelPolygon2D))
	})
	t.Run("Should pick attributes by label type", func(t *testing.T) {
		assert.Len(t, DefaultAttributes(LabelBox2D), 3)
		assert.Equal(t, DummyAttributes(), DefaultAttributes(LabelBox3D))
	})
	t.Run("Should hand out independent copies", func(t *testing.T) {
		a := DefaultBoxCategories()
		a[0].Name = "changed"
		assert.Equal(t, "person", DefaultBoxCategories()[0].Name)
	})
}
