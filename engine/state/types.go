package state

import "encoding/json"

// Attribute describes a property labels can carry. Its identity is its
// position in the project's attribute list.
type Attribute struct {
	ToolType     ToolType `json:"toolType"     yaml:"toolType"`
	Name         string   `json:"name"         yaml:"name"`
	Values       []string `json:"values"       yaml:"values"`
	TagText      string   `json:"tagText"      yaml:"tagText"`
	TagPrefix    string   `json:"tagPrefix"    yaml:"tagPrefix"`
	TagSuffixes  []string `json:"tagSuffixes"  yaml:"tagSuffixes"`
	ButtonColors []string `json:"buttonColors" yaml:"buttonColors"`
}

// Category is a node in the category tree. A label's category is the path
// of indices from the root list down to the chosen node.
type Category struct {
	Name          string     `json:"name"          yaml:"name"`
	Subcategories []Category `json:"subcategories" yaml:"subcategories"`
}

// Config is shared by a project and all of its tasks; tasks only differ in
// TaskID and TaskSize.
type Config struct {
	ProjectName     string      `json:"projectName"`
	ItemType        ItemType    `json:"itemType"`
	LabelTypes      []LabelType `json:"labelTypes"`
	PolicyTypes     []string    `json:"policyTypes"`
	TaskSize        int         `json:"taskSize"`
	Tracking        bool        `json:"tracking"`
	HandlerURL      HandlerURL  `json:"handlerUrl"`
	PageTitle       string      `json:"pageTitle"`
	InstructionPage string      `json:"instructionPage"`
	BundleFile      BundleFile  `json:"bundleFile"`
	Categories      []Category  `json:"categories"`
	Attributes      []Attribute `json:"attributes"`
	TaskID          string      `json:"taskId"`
	SubmitTime      int64       `json:"submitTime"`
	DemoMode        bool        `json:"demoMode"`
	Submitted       bool        `json:"submitted"`
	Autosave        bool        `json:"autosave"`
}

// Label is one annotation inside an item.
type Label struct {
	ID         int           `json:"id"`
	Item       int           `json:"item"`
	Type       LabelType     `json:"type"`
	Category   []int         `json:"category"`
	Attributes map[int][]int `json:"attributes"`
	Parent     int           `json:"parent"`
	Children   []int         `json:"children"`
	Shapes     []int         `json:"shapes"`
	Track      int           `json:"track"`
	Order      int           `json:"order"`
	Manual     bool          `json:"manual"`
}

// NewLabel returns a detached, untracked label with empty collections.
func NewLabel(id, item int, typ LabelType) Label {
	return Label{
		ID:         id,
		Item:       item,
		Type:       typ,
		Category:   []int{},
		Attributes: map[int][]int{},
		Parent:     -1,
		Children:   []int{},
		Shapes:     []int{},
		Track:      -1,
		Manual:     true,
	}
}

// Item is one unit of media. ID is global within the project and Index is
// the position inside its task.
type Item struct {
	ID        int                  `json:"id"`
	Index     int                  `json:"index"`
	URL       string               `json:"url"`
	VideoName string               `json:"videoName"`
	Timestamp float64              `json:"timestamp"`
	Labels    map[int]Label        `json:"labels"`
	Shapes    map[int]IndexedShape `json:"shapes"`
}

// UnmarshalJSON decodes an item, treating an absent timestamp as -1.
func (it *Item) UnmarshalJSON(data []byte) error {
	type plain Item
	p := plain{Timestamp: -1}
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*it = Item(p)
	return nil
}

// Track links the labels of one object across items of a video.
type Track struct {
	ID     int         `json:"id"`
	Labels map[int]int `json:"labels"`
}

// Task is the persisted unit of annotation work.
type Task struct {
	Config Config        `json:"config"`
	Status TaskStatus    `json:"status"`
	Items  []Item        `json:"items"`
	Tracks map[int]Track `json:"tracks"`
}
