package state

var (
	boxCategoryNames = []string{
		"person", "rider", "car", "truck", "bus",
		"train", "motor", "bike", "traffic sign", "traffic light",
	}
	polyline2DCategoryNames = []string{
		"road curb", "double white", "double yellow", "double other",
		"single white", "single yellow", "single other", "crosswalk",
	}
)

func flatCategories(names []string) []Category {
	out := make([]Category, len(names))
	for i, n := range names {
		out[i] = Category{Name: n, Subcategories: []Category{}}
	}
	return out
}

// DefaultBoxCategories returns the category list used by box projects that
// upload no category file.
func DefaultBoxCategories() []Category {
	return flatCategories(boxCategoryNames)
}

func DefaultPolyline2DCategories() []Category {
	return flatCategories(polyline2DCategoryNames)
}

// DefaultBox2DAttributes returns the occlusion, truncation and traffic light
// attributes of 2D box projects.
func DefaultBox2DAttributes() []Attribute {
	return []Attribute{
		{
			ToolType: ToolSwitch, Name: "Occluded", TagText: "o",
			Values: []string{}, TagSuffixes: []string{}, ButtonColors: []string{},
		},
		{
			ToolType: ToolSwitch, Name: "Truncated", TagText: "t",
			Values: []string{}, TagSuffixes: []string{}, ButtonColors: []string{},
		},
		{
			ToolType:     ToolList,
			Name:         "Traffic Light Color",
			TagPrefix:    "t",
			TagSuffixes:  []string{"", "g", "y", "r"},
			Values:       []string{"NA", "G", "Y", "R"},
			ButtonColors: []string{"white", "green", "yellow", "red"},
		},
	}
}

// DummyAttributes is a single unnamed switch.
func DummyAttributes() []Attribute {
	return []Attribute{{
		ToolType:     ToolSwitch,
		Name:         "",
		Values:       []string{},
		TagSuffixes:  []string{},
		ButtonColors: []string{},
	}}
}

// DefaultCategories picks the fallback category tree for a label type.
func DefaultCategories(labelType LabelType) []Category {
	switch labelType {
	case LabelBox2D, LabelBox3D:
		return DefaultBoxCategories()
	case LabelPolyline2D:
		return DefaultPolyline2DCategories()
	default:
		return []Category{}
	}
}

// DefaultAttributes picks the fallback attribute list for a label type.
func DefaultAttributes(labelType LabelType) []Attribute {
	if labelType == LabelBox2D {
		return DefaultBox2DAttributes()
	}
	return DummyAttributes()
}
