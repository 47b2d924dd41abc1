package state

import "strconv"

// TaskStatus holds the running id counters of a task. Counters only grow.
type TaskStatus struct {
	MaxLabelID int `json:"maxLabelId"`
	MaxShapeID int `json:"maxShapeId"`
	MaxOrder   int `json:"maxOrder"`
	MaxTrackID int `json:"maxTrackId"`
}

// NewTaskStatus returns the counters of a task without labels.
func NewTaskStatus() TaskStatus {
	return TaskStatus{MaxLabelID: -1, MaxShapeID: -1, MaxOrder: 0, MaxTrackID: -1}
}

// Merge returns the element-wise maximum of both statuses.
func (s TaskStatus) Merge(other TaskStatus) TaskStatus {
	return TaskStatus{
		MaxLabelID: max(s.MaxLabelID, other.MaxLabelID),
		MaxShapeID: max(s.MaxShapeID, other.MaxShapeID),
		MaxOrder:   max(s.MaxOrder, other.MaxOrder),
		MaxTrackID: max(s.MaxTrackID, other.MaxTrackID),
	}
}

// GetMax returns the largest numeric value in values, or oldMax when that is
// larger. An empty list has maximum -1. Entries that are not integers are
// ignored.
func GetMax(values []string, oldMax int) int {
	best := -1
	for _, v := range values {
		n, err := strconv.Atoi(v)
		if err != nil {
			continue
		}
		best = max(best, n)
	}
	return max(best, oldMax)
}

// MaxKey is GetMax over the keys of an id-keyed map.
func MaxKey[V any](m map[int]V, oldMax int) int {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, strconv.Itoa(k))
	}
	return GetMax(keys, oldMax)
}
