// Package task splits a project's item sequence into task-sized ranges.
package task

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrInvalidTaskSize is returned when a task size below 1 is requested.
var ErrInvalidTaskSize = errors.New("task size must be at least 1")

// Range is the half-open interval [Start, End) of items assigned to the task
// at position Index.
type Range struct {
	Index int
	Start int
	End   int
}

// Len returns the number of items in the range.
func (r Range) Len() int { return r.End - r.Start }

// FixedSize cuts n items into consecutive ranges of size items. The last
// range may be shorter.
func FixedSize(n, size int) ([]Range, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidTaskSize, size)
	}
	ranges := make([]Range, 0, (n+size-1)/size)
	for start := 0; start < n; start += size {
		ranges = append(ranges, Range{Index: len(ranges), Start: start, End: min(start+size, n)})
	}
	return ranges, nil
}

// GroupByKey stable-sorts a copy of items by key and opens a new range
// whenever the key changes. Items sharing a key keep their relative order.
func GroupByKey[T any](items []T, key func(T) string) ([]T, []Range) {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b T) int {
		return strings.Compare(key(a), key(b))
	})
	var ranges []Range
	for i := range sorted {
		if i > 0 && key(sorted[i]) == key(sorted[i-1]) {
			continue
		}
		if len(ranges) > 0 {
			ranges[len(ranges)-1].End = i
		}
		ranges = append(ranges, Range{Index: len(ranges), Start: i})
	}
	if len(ranges) > 0 {
		ranges[len(ranges)-1].End = len(sorted)
	}
	return sorted, ranges
}

// Partition applies GroupByKey when tracking is set and FixedSize otherwise.
// The returned slice is the item order the ranges refer to.
func Partition[T any](items []T, size int, tracking bool, key func(T) string) ([]T, []Range, error) {
	if tracking {
		sorted, ranges := GroupByKey(items, key)
		return sorted, ranges, nil
	}
	ranges, err := FixedSize(len(items), size)
	if err != nil {
		return nil, nil, err
	}
	return items, ranges, nil
}
