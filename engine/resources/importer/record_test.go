package importer

import (
	"testing"

	"github.com/labelforge/labelforge/engine/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestFillItemDefaults(t *testing.T) {
	t.Run("Should fill every missing field", func(t *testing.T) {
		url := "http://x/1.jpg"
		got := FillItemDefaults(RawItem{URL: &url, Labels: []RawLabel{{}}})
		assert.Equal(t, url, got.Name)
		assert.Equal(t, "", got.VideoName)
		assert.Equal(t, float64(-1), got.Timestamp)
		assert.Equal(t, -1, got.Index)
		assert.NotNil(t, got.Attributes)
		require.Len(t, got.Labels, 1)
		l := got.Labels[0]
		assert.Equal(t, UnassignedID, l.ID)
		assert.Equal(t, []string{}, l.Category)
		assert.NotNil(t, l.Attributes)
		assert.True(t, l.ManualShape)
		assert.Nil(t, l.Box2D)
	})

	t.Run("Should keep present zero values", func(t *testing.T) {
		var raw RawItem
		require.NoError(t, yaml.Unmarshal([]byte(`
url: u
videoName: ""
timestamp: 0
index: 0
labels:
  - id: 0
    manualShape: false
    category: [car]
`), &raw))
		got := FillItemDefaults(raw)
		assert.Equal(t, float64(0), got.Timestamp)
		assert.Equal(t, 0, got.Index)
		assert.Equal(t, 0, got.Labels[0].ID)
		assert.False(t, got.Labels[0].ManualShape)
		assert.Equal(t, []string{"car"}, got.Labels[0].Category)
	})

	t.Run("Should not share maps with the raw record", func(t *testing.T) {
		raw := RawItem{Attributes: map[string][]string{"weather": {"rain"}}}
		got := FillItemDefaults(raw)
		got.Attributes["weather"] = nil
		assert.Equal(t, []string{"rain"}, raw.Attributes["weather"])
	})

	t.Run("Should be deterministic", func(t *testing.T) {
		id := 3
		raw := RawItem{Labels: []RawLabel{{ID: &id, Box2D: &state.Rect{X2: 1}}}}
		assert.Equal(t, FillItemDefaults(raw), FillItemDefaults(raw))
	})
}
