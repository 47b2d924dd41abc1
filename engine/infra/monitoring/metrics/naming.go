package metrics

import "strings"

// Prefix is prepended to every metric the service exports.
const Prefix = "labelforge_"

// Subsystems group related instruments under one name segment.
const (
	SubsystemHTTP     = "http"
	SubsystemStore    = "store"
	SubsystemImport   = "import"
	SubsystemExport   = "export"
	SubsystemProjects = "projects"
)

// Name builds "labelforge_<subsystem>_<name>". Names that already carry the
// prefix are returned unchanged and empty segments are skipped.
func Name(subsystem, name string) string {
	if strings.HasPrefix(name, Prefix) {
		return name
	}
	parts := make([]string, 0, 2)
	for _, p := range []string{subsystem, name} {
		if p = strings.Trim(p, "_"); p != "" {
			parts = append(parts, p)
		}
	}
	return Prefix + strings.Join(parts, "_")
}

// DurationBuckets are latency buckets in seconds, shared by request and
// storage histograms.
var DurationBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}
