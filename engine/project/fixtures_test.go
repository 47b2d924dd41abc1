package project

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/labelforge/labelforge/engine/resources/importer"
	"github.com/labelforge/labelforge/engine/state"
)

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

// sampleItems returns ten items, three of video "a" followed by seven of
// video "b".
func sampleItems() []importer.RawItem {
	items := make([]importer.RawItem, 0, 10)
	for i := range 10 {
		video := "a"
		if i >= 3 {
			video = "b"
		}
		items = append(items, importer.RawItem{
			URL:       strPtr(fmt.Sprintf("https://example.com/intersection-%07d.jpg", 102+i)),
			VideoName: strPtr(video),
		})
	}
	return items
}

func imageForm(taskSize int) *CreationForm {
	return &CreationForm{
		ProjectName: "demo",
		ItemType:    state.ItemImage,
		LabelType:   state.LabelBox2D,
		PageTitle:   "Demo",
		TaskSize:    taskSize,
	}
}

func videoForm() *CreationForm {
	return &CreationForm{
		ProjectName: "demo_video",
		ItemType:    state.ItemVideo,
		LabelType:   state.LabelPolygon2D,
		TaskSize:    1,
	}
}

func fileData(items []importer.RawItem, labelType state.LabelType) *importer.FormFileData {
	return &importer.FormFileData{
		Items:      items,
		Attributes: state.DefaultAttributes(labelType),
		Categories: state.DefaultCategories(labelType),
	}
}

type fakeStore struct {
	mu       sync.Mutex
	docs     map[string][]byte
	failKeys map[string]bool
	existErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{docs: map[string][]byte{}, failKeys: map[string]bool{}}
}

func (f *fakeStore) Exists(_ context.Context, key string) (bool, error) {
	if f.existErr != nil {
		return false, f.existErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.docs[key]
	return ok, nil
}

func (f *fakeStore) Save(_ context.Context, key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failKeys[key] {
		return errors.New("write refused")
	}
	f.docs[key] = value
	return nil
}

func (f *fakeStore) keys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.docs))
	for k := range f.docs {
		out = append(out, k)
	}
	return out
}
