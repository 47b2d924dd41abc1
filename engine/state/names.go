package state

// ItemType names the kind of media a project annotates.
type ItemType string

const (
	ItemImage              ItemType = "image"
	ItemVideo              ItemType = "video"
	ItemPointCloud         ItemType = "pointcloud"
	ItemPointCloudTracking ItemType = "pointcloudtracking"
	ItemFusion             ItemType = "fusion"
)

// LabelType names the annotation primitive a label carries.
type LabelType string

const (
	LabelEmpty      LabelType = "empty"
	LabelTag        LabelType = "tag"
	LabelBox2D      LabelType = "box2d"
	LabelPolygon2D  LabelType = "polygon2d"
	LabelPolyline2D LabelType = "polyline2d"
	LabelCustom2D   LabelType = "custom2d"
	LabelBox3D      LabelType = "box3d"
	LabelPlane3D    LabelType = "plane3d"
)

// ToolType selects how an attribute is edited and encoded.
type ToolType string

const (
	ToolSwitch   ToolType = "switch"
	ToolList     ToolType = "list"
	ToolLongList ToolType = "longList"
)

// IsList reports whether values of the tool are selected from a value list.
func (t ToolType) IsList() bool {
	return t == ToolList || t == ToolLongList
}

// HandlerURL identifies the page that serves a task.
type HandlerURL string

const (
	HandlerInvalid HandlerURL = "NO_VALID_HANDLER"
	HandlerLabel   HandlerURL = "label"
)

// BundleFile is the frontend bundle a task loads.
type BundleFile string

const (
	BundleV1 BundleFile = "image.js"
	BundleV2 BundleFile = "image_v2.js"
)
