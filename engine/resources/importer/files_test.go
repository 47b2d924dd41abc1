package importer

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/labelforge/labelforge/engine/state"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const itemsYAML = `
- url: http://frames/0001.jpg
  videoName: a
  timestamp: 10000
- url: http://frames/0002.jpg
  labels:
    - id: 0
      category: [car]
      box2d: {x1: 1, y1: 2, x2: 3, y2: 4}
`

type failingSource struct{}

func (failingSource) Open() (io.ReadCloser, error) { return nil, errors.New("disk gone") }

func memFile(t *testing.T, fs afero.Fs, path, content string) Source {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
	return FileSource{Fs: fs, Path: path}
}

func TestParseFiles(t *testing.T) {
	ctx := context.Background()

	t.Run("Should decode items and fall back to defaults", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		data, err := ParseFiles(ctx, state.LabelBox2D, Files{Items: memFile(t, fs, "/items.yml", itemsYAML)})
		require.NoError(t, err)
		require.Len(t, data.Items, 2)
		assert.Equal(t, "a", *data.Items[0].VideoName)
		assert.Nil(t, data.Items[1].VideoName)
		require.Len(t, data.Items[1].Labels, 1)
		assert.Equal(t, &state.Rect{X1: 1, Y1: 2, X2: 3, Y2: 4}, data.Items[1].Labels[0].Box2D)
		assert.Equal(t, state.DefaultBox2DAttributes(), data.Attributes)
		assert.Equal(t, state.DefaultBoxCategories(), data.Categories)
	})

	t.Run("Should accept JSON item files", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		src := memFile(t, fs, "/items.json", `[{"url":"u","videoName":"v","labels":[{"id":2,"attributes":{"Occluded":true}}]}]`)
		items, err := ParseItems(ctx, src)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.True(t, items[0].Labels[0].Attributes["Occluded"].On())
	})

	t.Run("Should read attribute and category files", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		files := Files{
			Items: memFile(t, fs, "/items.yml", itemsYAML),
			Attributes: memFile(t, fs, "/attributes.yml", `
- name: Weather
  toolType: list
  values: [clear, rain]
- name: Night
`),
			Categories: memFile(t, fs, "/categories.yml", `
- name: vehicle
  subcategories:
    - name: car
- name: person
`),
		}
		data, err := ParseFiles(ctx, state.LabelPolygon2D, files)
		require.NoError(t, err)
		require.Len(t, data.Attributes, 2)
		assert.Equal(t, state.ToolList, data.Attributes[0].ToolType)
		assert.Equal(t, state.ToolSwitch, data.Attributes[1].ToolType)
		assert.Equal(t, []string{}, data.Attributes[1].Values)
		assert.Equal(t, "car", data.Categories[0].Subcategories[0].Name)
		assert.Equal(t, []state.Category{}, data.Categories[1].Subcategories)
	})

	t.Run("Should require an item file", func(t *testing.T) {
		_, err := ParseFiles(ctx, state.LabelBox2D, Files{})
		require.ErrorIs(t, err, ErrNoItemFile)
		assert.Equal(t, "No item file.", err.Error())
	})

	t.Run("Should treat an empty upload as missing", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		_, err := ParseItems(ctx, memFile(t, fs, "/empty.yml", ""))
		assert.ErrorIs(t, err, ErrNoItemFile)
		cats, err := ParseCategories(ctx, memFile(t, fs, "/empty2.yml", ""), state.LabelPolyline2D)
		require.NoError(t, err)
		assert.Equal(t, state.DefaultPolyline2DCategories(), cats)
	})

	t.Run("Should report malformed items with a fixed message", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		_, err := ParseItems(ctx, memFile(t, fs, "/bad.yml", "- url: [unclosed\n"))
		require.ErrorIs(t, err, ErrImproperFormat)
		assert.Equal(t, "Improper formatting for items file", err.Error())
	})

	t.Run("Should reject binary uploads", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		png := "\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01"
		_, err := ParseAttributes(ctx, memFile(t, fs, "/attrs.png", png), state.LabelBox2D)
		require.ErrorIs(t, err, ErrImproperFormat)
		assert.Equal(t, "Improper formatting for attributes file", err.Error())
	})

	t.Run("Should surface read failures unchanged", func(t *testing.T) {
		_, err := ParseItems(ctx, failingSource{})
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrImproperFormat)
		assert.Contains(t, err.Error(), "disk gone")
	})
}
