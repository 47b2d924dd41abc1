package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestName(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		subsystem string
		metric    string
		expected  string
	}{
		{"joins subsystem and name", SubsystemStore, "operations_total", "labelforge_store_operations_total"},
		{"trims underscores", "_import_", "_items_total", "labelforge_import_items_total"},
		{"skips an empty name", SubsystemExport, "", "labelforge_export"},
		{"skips an empty subsystem", "", "uptime_seconds", "labelforge_uptime_seconds"},
		{"keeps prefixed names", SubsystemHTTP, "labelforge_existing", "labelforge_existing"},
	}
	for _, tt := range tests {
		t.Run("Should "+tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, Name(tt.subsystem, tt.metric))
		})
	}
}

func TestDurationBuckets(t *testing.T) {
	t.Run("Should be strictly increasing", func(t *testing.T) {
		for i := 1; i < len(DurationBuckets); i++ {
			assert.Less(t, DurationBuckets[i-1], DurationBuckets[i])
		}
	})
}
