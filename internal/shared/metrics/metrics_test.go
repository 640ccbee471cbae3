package metrics

import (
	"strings"
	"testing"
)

func TestRenderContainsCounters(t *testing.T) {
	IncEnhancementStarted()
	IncEnhancementCompleted()
	out := Render()
	for _, name := range []string{
		"enhancement_started_total",
		"enhancement_completed_total",
		"enhancement_failed_total",
		"enhancement_parse_fallback_total",
		"enhancement_duration_ms_bucket",
	} {
		if !strings.Contains(out, name) {
			t.Fatalf("render missing %s:\n%s", name, out)
		}
	}
}

func TestHistogramBucketsAreCumulative(t *testing.T) {
	h := newHistogram([]float64{10, 100, 1000})
	h.Observe(5)
	h.Observe(50)
	h.Observe(5000)

	snap := h.Snapshot()
	if snap.count != 3 {
		t.Fatalf("count = %d", snap.count)
	}
	if snap.counts[0] != 1 || snap.counts[1] != 1 || snap.counts[2] != 0 {
		t.Fatalf("bucket counts = %v", snap.counts)
	}
	if snap.sum != 5055 {
		t.Fatalf("sum = %v", snap.sum)
	}
}
