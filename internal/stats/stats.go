// Package stats provides runtime statistics tracking for the Alita proxy.
package stats

import (
	"runtime"
	"sort"
	"sync"
	"time"
)

// Collector tracks per-tool invocation counts and latency.
type Collector struct {
	mu        sync.Mutex
	startTime time.Time
	tools     map[string]*toolCounters
}

type toolCounters struct {
	invocations   int64
	failures      int64
	totalDuration time.Duration
}

// NewCollector creates a new stats collector.
func NewCollector() *Collector {
	return &Collector{
		startTime: time.Now(),
		tools:     make(map[string]*toolCounters),
	}
}

// Record adds one tool invocation. Failures include both rejected
// requests and upstream errors surfaced in the result.
func (c *Collector) Record(tool string, success bool, duration time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	tc, ok := c.tools[tool]
	if !ok {
		tc = &toolCounters{}
		c.tools[tool] = tc
	}
	tc.invocations++
	if !success {
		tc.failures++
	}
	tc.totalDuration += duration
}

// Stats represents proxy statistics at a point in time.
type Stats struct {
	Uptime     string `json:"uptime"`
	Goroutines int    `json:"goroutines"`

	HeapAllocMB float64 `json:"heap_alloc_mb"`
	NumGC       uint32  `json:"num_gc"`

	Tools []ToolStats `json:"tools"`
}

// ToolStats summarizes one tool's invocations.
type ToolStats struct {
	Name         string  `json:"name"`
	Invocations  int64   `json:"invocations"`
	Failures     int64   `json:"failures"`
	AvgLatencyMs float64 `json:"avg_latency_ms"`
}

// Snapshot returns current statistics.
func (c *Collector) Snapshot() *Stats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	c.mu.Lock()
	defer c.mu.Unlock()

	tools := make([]ToolStats, 0, len(c.tools))
	for name, tc := range c.tools {
		avg := float64(0)
		if tc.invocations > 0 {
			avg = float64(tc.totalDuration.Milliseconds()) / float64(tc.invocations)
		}
		tools = append(tools, ToolStats{
			Name:         name,
			Invocations:  tc.invocations,
			Failures:     tc.failures,
			AvgLatencyMs: avg,
		})
	}
	sort.Slice(tools, func(i, j int) bool { return tools[i].Name < tools[j].Name })

	return &Stats{
		Uptime:      time.Since(c.startTime).Round(time.Second).String(),
		Goroutines:  runtime.NumGoroutine(),
		HeapAllocMB: bytesToMB(int64(m.HeapAlloc)),
		NumGC:       m.NumGC,
		Tools:       tools,
	}
}

func bytesToMB(b int64) float64 {
	return float64(b) / (1024 * 1024)
}
