package observability

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Snapshot(t *testing.T) {
	m := NewMetrics()

	m.RecordRequest("/api/contacts", "GET", 200, 10*time.Millisecond)
	m.RecordRequest("/api/contacts", "GET", 200, 30*time.Millisecond)
	m.RecordRequest("/api/contacts", "POST", 201, time.Millisecond)
	m.RecordError("/api/contacts", "POST", "VALIDATION_FAILED")
	m.RecordContactEvent("contact.created")
	m.RecordContactEvent("contact.created")

	snap := m.Snapshot()

	require.Len(t, snap.Requests, 2)
	assert.Equal(t, "/api/contacts|GET|200", snap.Requests[0].Key)
	assert.Equal(t, int64(2), snap.Requests[0].Count)
	assert.InDelta(t, 20.0, snap.Requests[0].AvgLatency, 0.001)
	assert.Equal(t, int64(1), snap.Errors["/api/contacts|POST|VALIDATION_FAILED"])
	assert.Equal(t, int64(2), snap.ContactEvents["contact.created"])

	// The snapshot is a copy.
	snap.ContactEvents["contact.created"] = 99
	assert.Equal(t, int64(2), m.Snapshot().ContactEvents["contact.created"])
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordRequest("/", "GET", 200, time.Millisecond)
		m.RecordError("/", "GET", "X")
		m.RecordContactEvent("contact.deleted")
	})
}

func TestMetrics_ConcurrentRecording(t *testing.T) {
	m := NewMetrics()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.RecordContactEvent("contact.updated")
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(50), m.Snapshot().ContactEvents["contact.updated"])
}
