package state

// IndexedAttribute pairs an attribute with its position in the config.
type IndexedAttribute struct {
	Index     int
	Attribute Attribute
}

// AttributeIndex resolves attribute names and values to indices. It is
// built once per project and read by every item conversion.
//
// Value lookups are scoped to their attribute, so two list attributes that
// share a value string resolve independently.
type AttributeIndex struct {
	names  map[string]IndexedAttribute
	values map[int]map[string]int
}

// NewAttributeIndex indexes attrs. When two attributes share a name the
// later one wins.
func NewAttributeIndex(attrs []Attribute) *AttributeIndex {
	idx := &AttributeIndex{
		names:  make(map[string]IndexedAttribute, len(attrs)),
		values: make(map[int]map[string]int),
	}
	for i, attr := range attrs {
		idx.names[attr.Name] = IndexedAttribute{Index: i, Attribute: attr}
		if !attr.ToolType.IsList() {
			continue
		}
		values := make(map[string]int, len(attr.Values))
		for vi, v := range attr.Values {
			values[v] = vi
		}
		idx.values[i] = values
	}
	return idx
}

// Lookup returns the attribute registered under name.
func (x *AttributeIndex) Lookup(name string) (IndexedAttribute, bool) {
	a, ok := x.names[name]
	return a, ok
}

// ValueIndex returns the position of value inside the attribute at attr.
func (x *AttributeIndex) ValueIndex(attr int, value string) (int, bool) {
	values, ok := x.values[attr]
	if !ok {
		return 0, false
	}
	i, ok := values[value]
	return i, ok
}

// Len returns the number of distinct attribute names.
func (x *AttributeIndex) Len() int {
	return len(x.names)
}

// FlatValueIndex is the project-wide value map older task files were
// imported with: values of every "list" attribute share one namespace and a
// later attribute overwrites an earlier mapping of the same string.
// Imports resolve values with AttributeIndex instead.
func FlatValueIndex(attrs []Attribute) map[string]int {
	flat := make(map[string]int)
	for _, attr := range attrs {
		if attr.ToolType != ToolList {
			continue
		}
		for vi, v := range attr.Values {
			flat[v] = vi
		}
	}
	return flat
}
