package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorRecordsPerTool(t *testing.T) {
	c := NewCollector()

	c.Record("search.web", true, 100*time.Millisecond)
	c.Record("search.web", false, 300*time.Millisecond)
	c.Record("image.generate", true, 2*time.Second)

	snap := c.Snapshot()
	require.Len(t, snap.Tools, 2)

	// Sorted by name.
	assert.Equal(t, "image.generate", snap.Tools[0].Name)
	assert.Equal(t, int64(1), snap.Tools[0].Invocations)
	assert.Equal(t, int64(0), snap.Tools[0].Failures)
	assert.Equal(t, float64(2000), snap.Tools[0].AvgLatencyMs)

	assert.Equal(t, "search.web", snap.Tools[1].Name)
	assert.Equal(t, int64(2), snap.Tools[1].Invocations)
	assert.Equal(t, int64(1), snap.Tools[1].Failures)
	assert.Equal(t, float64(200), snap.Tools[1].AvgLatencyMs)
}

func TestSnapshotEmpty(t *testing.T) {
	snap := NewCollector().Snapshot()
	assert.Empty(t, snap.Tools)
	assert.Positive(t, snap.Goroutines)
	assert.NotEmpty(t, snap.Uptime)
}
