package exporter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/gosimple/slug"
	"github.com/labelforge/labelforge/engine/state"
	"github.com/labelforge/labelforge/pkg/logger"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Format selects the encoding of an export file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

const exportedFileMode os.FileMode = 0o644

// ErrUnsupportedFormat rejects export formats other than JSON and YAML.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// ParseFormat validates a user supplied format name. Empty means JSON.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnsupportedFormat, s)
	}
}

// Encode renders items in format. JSON keeps the exchange field order with a
// two space indent; YAML sorts mapping keys so output is stable.
func Encode(items []state.ItemExport, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(items, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML:
		node, err := buildYAMLNode(items)
		if err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(node); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("close yaml encoder: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnsupportedFormat, format)
	}
}

// ExportToFs writes the export of a project to dir and returns the path of
// the written file.
func ExportToFs(
	ctx context.Context,
	fs afero.Fs,
	dir string,
	project string,
	items []state.ItemExport,
	format Format,
) (string, error) {
	if project == "" {
		return "", fmt.Errorf("project is required")
	}
	if dir == "" {
		return "", fmt.Errorf("export directory is required")
	}
	data, err := Encode(items, format)
	if err != nil {
		return "", err
	}
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}
	filename := filepath.Join(dir, FileName(project, format))
	tmp := filename + ".tmp"
	if err := afero.WriteFile(fs, tmp, data, exportedFileMode); err != nil {
		return "", fmt.Errorf("write file %s: %w", tmp, err)
	}
	if err := fs.Rename(tmp, filename); err != nil {
		_ = fs.Remove(tmp)
		return "", fmt.Errorf("commit file %s: %w", filename, err)
	}
	logger.FromContext(ctx).Info("export written", "project", project, "items", len(items), "file", filename)
	return filename, nil
}

// FileName is the export file name of project.
func FileName(project string, format Format) string {
	return exportBaseName(project) + "_export." + string(format)
}

// buildYAMLNode marshals v to a yaml.Node with canonical mapping key order.
func buildYAMLNode(v any) (*yaml.Node, error) {
	b, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal yaml: %w", err)
	}
	var n yaml.Node
	if err := yaml.Unmarshal(b, &n); err != nil {
		return nil, fmt.Errorf("reparse yaml: %w", err)
	}
	canonicalizeYAML(&n)
	if n.Kind == yaml.DocumentNode && len(n.Content) > 0 {
		return n.Content[0], nil
	}
	return &n, nil
}

// canonicalizeYAML sorts mapping node keys lexicographically, recursively.
func canonicalizeYAML(n *yaml.Node) {
	if n == nil || len(n.Content) == 0 {
		return
	}
	switch n.Kind {
	case yaml.DocumentNode, yaml.SequenceNode:
		for _, c := range n.Content {
			canonicalizeYAML(c)
		}
	case yaml.MappingNode:
		type kv struct{ k, v *yaml.Node }
		pairs := make([]kv, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			pairs = append(pairs, kv{n.Content[i], n.Content[i+1]})
		}
		sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].k.Value < pairs[j].k.Value })
		n.Content = n.Content[:0]
		for _, p := range pairs {
			canonicalizeYAML(p.v)
			n.Content = append(n.Content, p.k, p.v)
		}
	}
}

// exportBaseName turns a project name into a file name stem.
func exportBaseName(project string) string {
	if name := slug.Make(project); name != "" {
		return name
	}
	return "project"
}
