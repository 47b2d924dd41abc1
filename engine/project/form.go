package project

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labelforge/labelforge/engine/state"
	"github.com/labelforge/labelforge/pkg/logger"
)

// Form field names as posted by the creation page.
const (
	FieldProjectName  = "project_name"
	FieldItemType     = "item_type"
	FieldLabelType    = "label_type"
	FieldPageTitle    = "page_title"
	FieldTaskSize     = "task_size"
	FieldInstructions = "instructions"
	FieldDemoMode     = "demo_mode"
)

// RawForm holds the creation form fields as submitted.
type RawForm struct {
	ProjectName  string `form:"project_name" validate:"required"`
	ItemType     string `form:"item_type"    validate:"required"`
	LabelType    string `form:"label_type"   validate:"required"`
	PageTitle    string `form:"page_title"`
	TaskSize     string `form:"task_size"    validate:"required_unless=ItemType video"`
	Instructions string `form:"instructions"`
	DemoMode     string `form:"demo_mode"`
}

// CreationForm is a validated creation form.
type CreationForm struct {
	ProjectName    string
	ItemType       state.ItemType
	LabelType      state.LabelType
	PageTitle      string
	TaskSize       int
	InstructionURL string
	DemoMode       bool
}

// ExistsChecker answers whether a storage key is taken.
type ExistsChecker interface {
	Exists(ctx context.Context, key string) (bool, error)
}

var formMessages = map[string]FormError{
	"ProjectName": {Field: FieldProjectName, Message: "Please create a project name"},
	"ItemType":    {Field: FieldItemType, Message: "Please choose an item type"},
	"LabelType":   {Field: FieldLabelType, Message: "Please choose a label type"},
	"TaskSize":    {Field: FieldTaskSize, Message: "Please specify a task size"},
}

var formValidator = validator.New()

// NormalizeProjectName trims name and replaces its spaces with underscores.
func NormalizeProjectName(name string) string {
	return strings.ReplaceAll(strings.TrimSpace(name), " ", "_")
}

// ValidProjectName reports whether name can be used as a single storage key
// segment: no path separators and not a dot segment.
func ValidProjectName(name string) bool {
	return !strings.ContainsAny(name, `/\`) && name != "." && name != ".."
}

// ParseForm validates raw and, when it is well formed, checks that the
// project name is free. Storage errors from checker are returned unchanged.
func ParseForm(ctx context.Context, raw RawForm, checker ExistsChecker) (*CreationForm, error) {
	raw.ProjectName = NormalizeProjectName(raw.ProjectName)
	raw.ItemType = strings.TrimSpace(raw.ItemType)
	raw.LabelType = strings.TrimSpace(raw.LabelType)
	raw.TaskSize = strings.TrimSpace(raw.TaskSize)
	if err := validateRaw(&raw); err != nil {
		return nil, err
	}
	if !ValidProjectName(raw.ProjectName) {
		return nil, &FormError{Field: FieldProjectName, Message: "Project name cannot contain slashes or be a dot segment"}
	}
	form := &CreationForm{
		ProjectName:    raw.ProjectName,
		ItemType:       state.ItemType(raw.ItemType),
		LabelType:      state.LabelType(raw.LabelType),
		PageTitle:      raw.PageTitle,
		TaskSize:       1,
		InstructionURL: raw.Instructions,
		DemoMode:       raw.DemoMode == "true",
	}
	if form.ItemType != state.ItemVideo {
		size, err := strconv.Atoi(raw.TaskSize)
		if err != nil || size < 1 {
			return nil, &FormError{Field: FieldTaskSize, Message: "Please specify a numeric task size"}
		}
		form.TaskSize = size
	}
	exists, err := checker.Exists(ctx, ProjectKey(form.ProjectName))
	if err != nil {
		return nil, err
	}
	if exists {
		logger.FromContext(ctx).Debug("project name taken", "project", form.ProjectName)
		return nil, ErrProjectExists
	}
	return form, nil
}

func validateRaw(raw *RawForm) error {
	err := formValidator.Struct(raw)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate form: %w", err)
	}
	for _, fe := range verrs {
		if msg, ok := formMessages[fe.StructField()]; ok {
			return &msg
		}
	}
	return &FormError{Field: verrs[0].Field(), Message: verrs[0].Error()}
}
