package importer

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gabriel-vasile/mimetype"
	"github.com/labelforge/labelforge/engine/state"
	"github.com/labelforge/labelforge/pkg/logger"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

const (
	fileItems      = "items"
	fileAttributes = "attributes"
	fileCategories = "categories"
)

// Source is an uploaded file. A nil Source or an empty file counts as not
// uploaded.
type Source interface {
	Open() (io.ReadCloser, error)
}

// FileSource reads an upload from a filesystem.
type FileSource struct {
	Fs   afero.Fs
	Path string
}

func (s FileSource) Open() (io.ReadCloser, error) {
	return s.Fs.Open(s.Path)
}

// MultipartSource reads an upload from a multipart form.
type MultipartSource struct {
	Header *multipart.FileHeader
}

func (s MultipartSource) Open() (io.ReadCloser, error) {
	return s.Header.Open()
}

// Files groups the three uploads of the creation form.
type Files struct {
	Items      Source
	Attributes Source
	Categories Source
}

// FormFileData is the decoded content of the creation form uploads.
type FormFileData struct {
	Items      []RawItem
	Attributes []state.Attribute
	Categories []state.Category
}

// ParseFiles decodes all uploads. Attributes and categories fall back to the
// defaults of labelType; items are mandatory.
func ParseFiles(ctx context.Context, labelType state.LabelType, files Files) (*FormFileData, error) {
	items, err := ParseItems(ctx, files.Items)
	if err != nil {
		return nil, err
	}
	attributes, err := ParseAttributes(ctx, files.Attributes, labelType)
	if err != nil {
		return nil, err
	}
	categories, err := ParseCategories(ctx, files.Categories, labelType)
	if err != nil {
		return nil, err
	}
	return &FormFileData{Items: items, Attributes: attributes, Categories: categories}, nil
}

func ParseItems(ctx context.Context, src Source) ([]RawItem, error) {
	data, ok, err := readSource(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("read items file: %w", err)
	}
	if !ok {
		return nil, ErrNoItemFile
	}
	var items []RawItem
	if err := decode(data, fileItems, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []RawItem{}
	}
	logger.FromContext(ctx).Debug("parsed items file", "items", len(items))
	return items, nil
}

func ParseAttributes(ctx context.Context, src Source, labelType state.LabelType) ([]state.Attribute, error) {
	data, ok, err := readSource(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("read attributes file: %w", err)
	}
	if !ok {
		return state.DefaultAttributes(labelType), nil
	}
	var attributes []state.Attribute
	if err := decode(data, fileAttributes, &attributes); err != nil {
		return nil, err
	}
	for i := range attributes {
		normalizeAttribute(&attributes[i])
	}
	if attributes == nil {
		attributes = []state.Attribute{}
	}
	return attributes, nil
}

func ParseCategories(ctx context.Context, src Source, labelType state.LabelType) ([]state.Category, error) {
	data, ok, err := readSource(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("read categories file: %w", err)
	}
	if !ok {
		return state.DefaultCategories(labelType), nil
	}
	var categories []state.Category
	if err := decode(data, fileCategories, &categories); err != nil {
		return nil, err
	}
	return normalizeCategories(categories), nil
}

func readSource(ctx context.Context, src Source) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	if src == nil {
		return nil, false, nil
	}
	rc, err := src.Open()
	if err != nil {
		return nil, false, err
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, false, err
	}
	return data, len(data) > 0, nil
}

// decode rejects binary content before handing the bytes to the YAML
// decoder, which also accepts JSON.
func decode(data []byte, file string, out any) error {
	if !isText(data) {
		return &FormatError{File: file, Err: fmt.Errorf("unexpected content type %s", mimetype.Detect(data).String())}
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return &FormatError{File: file, Err: err}
	}
	return nil
}

func isText(data []byte) bool {
	ct := http.DetectContentType(data)
	if len(ct) >= 5 && ct[:5] == "text/" {
		return true
	}
	for m := mimetype.Detect(data); m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}

func normalizeAttribute(a *state.Attribute) {
	if a.ToolType == "" {
		a.ToolType = state.ToolSwitch
	}
	if a.Values == nil {
		a.Values = []string{}
	}
	if a.TagSuffixes == nil {
		a.TagSuffixes = []string{}
	}
	if a.ButtonColors == nil {
		a.ButtonColors = []string{}
	}
}

func normalizeCategories(cats []state.Category) []state.Category {
	if cats == nil {
		return []state.Category{}
	}
	for i := range cats {
		cats[i].Subcategories = normalizeCategories(cats[i].Subcategories)
	}
	return cats
}
