package importer

import "github.com/labelforge/labelforge/engine/state"

// UnassignedID marks a label whose id was not present in the upload.
const UnassignedID = -1

// RawItem is an item as it appears in an items file. Every field may be
// missing; FillItemDefaults turns it into a complete export record.
type RawItem struct {
	Name       *string             `json:"name,omitempty"       yaml:"name,omitempty"`
	URL        *string             `json:"url,omitempty"        yaml:"url,omitempty"`
	VideoName  *string             `json:"videoName,omitempty"  yaml:"videoName,omitempty"`
	Attributes map[string][]string `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Timestamp  *float64            `json:"timestamp,omitempty"  yaml:"timestamp,omitempty"`
	Index      *int                `json:"index,omitempty"      yaml:"index,omitempty"`
	Labels     []RawLabel          `json:"labels,omitempty"     yaml:"labels,omitempty"`
}

// RawLabel is a label as it appears in an items file.
type RawLabel struct {
	ID          *int                            `json:"id,omitempty"          yaml:"id,omitempty"`
	Category    []string                        `json:"category,omitempty"    yaml:"category,omitempty"`
	Attributes  map[string]state.AttributeValue `json:"attributes,omitempty"  yaml:"attributes,omitempty"`
	ManualShape *bool                           `json:"manualShape,omitempty" yaml:"manualShape,omitempty"`
	Box2D       *state.Rect                     `json:"box2d,omitempty"       yaml:"box2d,omitempty"`
	Poly2D      *state.Polygon                  `json:"poly2d,omitempty"      yaml:"poly2d,omitempty"`
	Box3D       *state.Cube                     `json:"box3d,omitempty"       yaml:"box3d,omitempty"`
}

// VideoNameOrEmpty returns the video name, treating a missing one as "".
func (r RawItem) VideoNameOrEmpty() string {
	if r.VideoName == nil {
		return ""
	}
	return *r.VideoName
}

// FillItemDefaults returns the complete export record for raw. Missing
// fields get these values: videoName "", timestamp -1, index -1, empty
// attributes and labels. Labels without an id get UnassignedID and labels
// without manualShape are manual. Name falls back to the url.
func FillItemDefaults(raw RawItem) state.ItemExport {
	out := state.ItemExport{
		VideoName:  raw.VideoNameOrEmpty(),
		Attributes: map[string][]string{},
		Timestamp:  -1,
		Index:      -1,
		Labels:     make([]state.LabelExport, 0, len(raw.Labels)),
	}
	if raw.URL != nil {
		out.URL = *raw.URL
	}
	out.Name = out.URL
	if raw.Name != nil {
		out.Name = *raw.Name
	}
	if raw.Timestamp != nil {
		out.Timestamp = *raw.Timestamp
	}
	if raw.Index != nil {
		out.Index = *raw.Index
	}
	for k, v := range raw.Attributes {
		out.Attributes[k] = v
	}
	for _, l := range raw.Labels {
		out.Labels = append(out.Labels, fillLabelDefaults(l))
	}
	return out
}

func fillLabelDefaults(raw RawLabel) state.LabelExport {
	out := state.LabelExport{
		ID:          UnassignedID,
		Category:    []string{},
		Attributes:  map[string]state.AttributeValue{},
		ManualShape: true,
		Box2D:       raw.Box2D,
		Poly2D:      raw.Poly2D,
		Box3D:       raw.Box3D,
	}
	if raw.ID != nil {
		out.ID = *raw.ID
	}
	if raw.Category != nil {
		out.Category = raw.Category
	}
	for k, v := range raw.Attributes {
		out.Attributes[k] = v
	}
	if raw.ManualShape != nil {
		out.ManualShape = *raw.ManualShape
	}
	return out
}
