package project

import (
	"github.com/labelforge/labelforge/engine/resources/importer"
	"github.com/labelforge/labelforge/engine/state"
)

// HandlerURLFor returns the page that serves tasks of the given item and
// label type, or state.HandlerInvalid when no page supports the pair.
func HandlerURLFor(itemType state.ItemType, labelType state.LabelType) state.HandlerURL {
	switch itemType {
	case state.ItemImage:
		return state.HandlerLabel
	case state.ItemVideo:
		if labelType == state.LabelBox2D {
			return state.HandlerLabel
		}
	case state.ItemPointCloud, state.ItemPointCloudTracking:
		if labelType == state.LabelBox3D {
			return state.HandlerLabel
		}
	}
	return state.HandlerInvalid
}

// BundleFileFor picks the frontend bundle for labelType.
func BundleFileFor(labelType state.LabelType) state.BundleFile {
	if labelType == state.LabelTag || labelType == state.LabelBox2D {
		return state.BundleV2
	}
	return state.BundleV1
}

// TrackingFor maps a form item type to the stored item type and whether
// its tasks track objects across items.
func TrackingFor(itemType state.ItemType) (state.ItemType, bool) {
	switch itemType {
	case state.ItemVideo:
		return state.ItemImage, true
	case state.ItemPointCloudTracking:
		return state.ItemPointCloud, true
	case state.ItemFusion:
		return state.ItemFusion, true
	default:
		return itemType, false
	}
}

// BuildConfig derives the project config from a validated form and its
// parsed uploads.
func BuildConfig(form *CreationForm, data *importer.FormFileData) state.Config {
	itemType, tracking := TrackingFor(form.ItemType)
	return state.Config{
		ProjectName:     form.ProjectName,
		ItemType:        itemType,
		LabelTypes:      []state.LabelType{form.LabelType},
		PolicyTypes:     []string{},
		TaskSize:        form.TaskSize,
		Tracking:        tracking,
		HandlerURL:      HandlerURLFor(form.ItemType, form.LabelType),
		PageTitle:       form.PageTitle,
		InstructionPage: form.InstructionURL,
		BundleFile:      BundleFileFor(form.LabelType),
		Categories:      data.Categories,
		Attributes:      data.Attributes,
		TaskID:          "",
		SubmitTime:      -1,
		DemoMode:        form.DemoMode,
		Submitted:       false,
		Autosave:        true,
	}
}
