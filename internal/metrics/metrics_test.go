package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveSwept_CountsBothKinds(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveSwept(2, 5)
	m.ObserveSwept(0, 1)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Swept.WithLabelValues("session")))
	assert.Equal(t, 6.0, testutil.ToFloat64(m.Swept.WithLabelValues("view_state")))
}

func TestObserveUpstream_TransportFailure(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveUpstream("GET", "/admin/users", 0, 10*time.Millisecond)
	m.ObserveUpstream("GET", "/admin/users", 200, 10*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.UpstreamRequests.WithLabelValues("GET", "/admin/users", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.UpstreamRequests.WithLabelValues("GET", "/admin/users", "200")))
}
