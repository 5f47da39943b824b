package observability

import (
	"sort"
	"strconv"
	"sync"
	"time"
)

// Metrics provides basic in-memory counters.
type Metrics struct {
	mu            sync.Mutex
	startedAt     time.Time
	requestCount  map[string]int64
	requestTime   map[string]time.Duration
	errorCount    map[string]int64
	contactEvents map[string]int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		startedAt:     time.Now(),
		requestCount:  make(map[string]int64),
		requestTime:   make(map[string]time.Duration),
		errorCount:    make(map[string]int64),
		contactEvents: make(map[string]int64),
	}
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := pathKey(path, method, status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
	m.requestTime[key] += duration
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + code
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// RecordContactEvent counts a contact lifecycle event by type.
func (m *Metrics) RecordContactEvent(eventType string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.contactEvents[eventType]++
}

// RequestStat aggregates one path|method|status bucket.
type RequestStat struct {
	Key        string  `json:"key"`
	Count      int64   `json:"count"`
	AvgLatency float64 `json:"avg_latency_ms"`
}

// Snapshot is a point-in-time copy of all counters.
type Snapshot struct {
	UptimeSeconds int64            `json:"uptime_seconds"`
	Requests      []RequestStat    `json:"requests"`
	Errors        map[string]int64 `json:"errors"`
	ContactEvents map[string]int64 `json:"contact_events"`
}

// Snapshot copies the current counters. Request buckets are sorted by key.
func (m *Metrics) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	requests := make([]RequestStat, 0, len(m.requestCount))
	for key, count := range m.requestCount {
		avg := float64(m.requestTime[key].Microseconds()) / float64(count) / 1000
		requests = append(requests, RequestStat{Key: key, Count: count, AvgLatency: avg})
	}
	sort.Slice(requests, func(i, j int) bool { return requests[i].Key < requests[j].Key })

	return Snapshot{
		UptimeSeconds: int64(time.Since(m.startedAt).Seconds()),
		Requests:      requests,
		Errors:        copyCounts(m.errorCount),
		ContactEvents: copyCounts(m.contactEvents),
	}
}

func copyCounts(src map[string]int64) map[string]int64 {
	dst := make(map[string]int64, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func pathKey(path, method string, status int) string {
	return path + "|" + method + "|" + strconv.Itoa(status)
}
