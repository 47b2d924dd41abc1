package project

import (
	"testing"

	"github.com/labelforge/labelforge/engine/resources/importer"
	"github.com/labelforge/labelforge/engine/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProject(t *testing.T) {
	t.Run("Should keep upload order for non-tracking projects", func(t *testing.T) {
		items := sampleItems()
		items[0].VideoName = strPtr("z")
		p, err := CreateProject(imageForm(5), fileData(items, state.LabelBox2D))
		require.NoError(t, err)
		require.Len(t, p.Items, 10)
		assert.Equal(t, "z", *p.Items[0].VideoName)
	})

	t.Run("Should stable sort tracking items by video name", func(t *testing.T) {
		items := []importer.RawItem{
			{URL: strPtr("b0"), VideoName: strPtr("b")},
			{URL: strPtr("a0"), VideoName: strPtr("a")},
			{URL: strPtr("b1"), VideoName: strPtr("b")},
			{URL: strPtr("none")},
		}
		p, err := CreateProject(videoForm(), fileData(items, state.LabelBox2D))
		require.NoError(t, err)
		urls := make([]string, len(p.Items))
		for i, it := range p.Items {
			urls[i] = *it.URL
		}
		assert.Equal(t, []string{"none", "a0", "b0", "b1"}, urls)
		assert.Equal(t, "", *p.Items[0].VideoName)
	})

	t.Run("Should not mutate the uploaded items", func(t *testing.T) {
		items := []importer.RawItem{{URL: strPtr("x")}}
		_, err := CreateProject(imageForm(1), fileData(items, state.LabelBox2D))
		require.NoError(t, err)
		assert.Nil(t, items[0].VideoName)
	})
}

func TestCreateTasks(t *testing.T) {
	t.Run("Should cut image projects into fixed size tasks", func(t *testing.T) {
		p, err := CreateProject(imageForm(5), fileData(sampleItems(), state.LabelBox2D))
		require.NoError(t, err)
		tasks, err := CreateTasks(p)
		require.NoError(t, err)
		require.Len(t, tasks, 2)
		assert.Equal(t, "000000", tasks[0].Config.TaskID)
		assert.Equal(t, "000001", tasks[1].Config.TaskID)
		assert.Equal(t, 5, tasks[0].Config.TaskSize)
		assert.Equal(t, 5, tasks[1].Config.TaskSize)
		assert.Equal(t, 5, tasks[1].Items[0].ID)
		assert.Equal(t, 0, tasks[1].Items[0].Index)
		assert.Equal(t, 9, tasks[1].Items[4].ID)
		assert.Equal(t, "", p.Config.TaskID)
	})

	t.Run("Should keep the last task short", func(t *testing.T) {
		p, err := CreateProject(imageForm(4), fileData(sampleItems(), state.LabelBox2D))
		require.NoError(t, err)
		tasks, err := CreateTasks(p)
		require.NoError(t, err)
		require.Len(t, tasks, 3)
		assert.Equal(t, 2, tasks[2].Config.TaskSize)
		assert.Len(t, tasks[2].Items, 2)
	})

	t.Run("Should create one task per video", func(t *testing.T) {
		p, err := CreateProject(videoForm(), fileData(sampleItems(), state.LabelPolygon2D))
		require.NoError(t, err)
		tasks, err := CreateTasks(p)
		require.NoError(t, err)
		require.Len(t, tasks, 2)
		assert.Equal(t, 3, tasks[0].Config.TaskSize)
		assert.Equal(t, 7, tasks[1].Config.TaskSize)
		assert.Equal(t, 3, tasks[1].Items[0].ID)
		assert.Equal(t, "b", tasks[1].Items[0].VideoName)
		assert.Equal(t, state.HandlerInvalid, tasks[0].Config.HandlerURL)
		assert.Equal(t, state.BundleV1, tasks[0].Config.BundleFile)
		assert.Equal(t, state.ItemImage, tasks[0].Config.ItemType)
		assert.True(t, tasks[0].Config.Tracking)
	})

	t.Run("Should start empty tasks with fresh counters", func(t *testing.T) {
		p, err := CreateProject(imageForm(5), fileData(sampleItems(), state.LabelBox2D))
		require.NoError(t, err)
		tasks, err := CreateTasks(p)
		require.NoError(t, err)
		assert.Equal(t, state.NewTaskStatus(), tasks[0].Status)
		assert.Empty(t, tasks[0].Tracks)
		assert.NotNil(t, tasks[0].Tracks)
	})

	t.Run("Should convert labels and derive the status counters", func(t *testing.T) {
		items := []importer.RawItem{
			{
				URL: strPtr("0"),
				Labels: []importer.RawLabel{
					{ID: intPtr(4), Category: []string{"car"}, Box2D: &state.Rect{X1: 1, Y1: 2, X2: 3, Y2: 4}},
					{Category: []string{"person"}, Attributes: map[string]state.AttributeValue{"Occluded": state.SwitchValue(true)}},
				},
			},
			{
				URL:    strPtr("1"),
				Labels: []importer.RawLabel{{Category: []string{"bike"}}},
			},
		}
		p, err := CreateProject(imageForm(2), fileData(items, state.LabelBox2D))
		require.NoError(t, err)
		tasks, err := CreateTasks(p)
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		task := tasks[0]

		first := task.Items[0]
		require.Contains(t, first.Labels, 4)
		require.Contains(t, first.Labels, 5)
		assert.Equal(t, state.LabelBox2D, first.Labels[4].Type)
		assert.Equal(t, []int{2}, first.Labels[4].Category)
		assert.Equal(t, []int{4}, first.Labels[4].Shapes)
		assert.Contains(t, first.Shapes, 4)
		assert.Equal(t, state.LabelTag, first.Labels[5].Type)
		assert.Equal(t, map[int][]int{0: {1}}, first.Labels[5].Attributes)
		assert.Equal(t, 0, first.Labels[4].Order)
		assert.Equal(t, 1, first.Labels[5].Order)

		second := task.Items[1]
		require.Contains(t, second.Labels, 6)
		assert.Equal(t, 2, second.Labels[6].Order)
		assert.Equal(t, 1, second.Labels[6].Item)

		assert.Equal(t, 6, task.Status.MaxLabelID)
		assert.Equal(t, 4, task.Status.MaxShapeID)
		assert.Equal(t, 3, task.Status.MaxOrder)
		assert.Equal(t, -1, task.Status.MaxTrackID)
	})

	t.Run("Should reject duplicate label ids within a task", func(t *testing.T) {
		items := []importer.RawItem{
			{URL: strPtr("0"), Labels: []importer.RawLabel{{ID: intPtr(1), Category: []string{"car"}}}},
			{URL: strPtr("1"), Labels: []importer.RawLabel{{ID: intPtr(1), Category: []string{"car"}}}},
		}
		p, err := CreateProject(imageForm(2), fileData(items, state.LabelBox2D))
		require.NoError(t, err)
		_, err = CreateTasks(p)
		assert.ErrorIs(t, err, importer.ErrDuplicateLabelID)
	})

	t.Run("Should allow the same label id in different tasks", func(t *testing.T) {
		items := []importer.RawItem{
			{URL: strPtr("0"), Labels: []importer.RawLabel{{ID: intPtr(1), Category: []string{"car"}}}},
			{URL: strPtr("1"), Labels: []importer.RawLabel{{ID: intPtr(1), Category: []string{"car"}}}},
		}
		p, err := CreateProject(imageForm(1), fileData(items, state.LabelBox2D))
		require.NoError(t, err)
		tasks, err := CreateTasks(p)
		require.NoError(t, err)
		assert.Len(t, tasks, 2)
	})

	t.Run("Should fail on unknown categories", func(t *testing.T) {
		items := []importer.RawItem{
			{URL: strPtr("0"), Labels: []importer.RawLabel{{Category: []string{"unicorn"}}}},
		}
		p, err := CreateProject(imageForm(1), fileData(items, state.LabelBox2D))
		require.NoError(t, err)
		_, err = CreateTasks(p)
		assert.ErrorIs(t, err, importer.ErrUnknownCategory)
	})

	t.Run("Should reject a zero task size for image projects", func(t *testing.T) {
		p, err := CreateProject(imageForm(0), fileData(sampleItems(), state.LabelBox2D))
		require.NoError(t, err)
		_, err = CreateTasks(p)
		require.Error(t, err)
	})

	t.Run("Should not share config slices between tasks", func(t *testing.T) {
		p, err := CreateProject(imageForm(5), fileData(sampleItems(), state.LabelBox2D))
		require.NoError(t, err)
		tasks, err := CreateTasks(p)
		require.NoError(t, err)
		tasks[0].Config.Categories[0].Name = "changed"
		assert.Equal(t, "person", tasks[1].Config.Categories[0].Name)
		assert.Equal(t, "person", p.Config.Categories[0].Name)
	})
}
