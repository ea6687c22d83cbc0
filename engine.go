package kidgate

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lumikids/kidgate/gatetoken"
	"github.com/lumikids/kidgate/hashing"
	"github.com/lumikids/kidgate/internal/rate"
	"github.com/lumikids/kidgate/pin"
)

// Engine defines a public type used by kidgate APIs.
//
// Engine instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Engine struct {
	config      Config
	limiter     *rate.Limiter
	hasher      *hashing.Service
	passManager *gatetoken.Manager
	pinHasher   *pin.Hasher
	audit       *auditDispatcher
	metrics     *Metrics
	clock       func() time.Time
}

// Close describes the close operation and its observable behavior.
//
// Close does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.audit != nil {
		e.audit.Close()
	}
}

// AuditDropped describes the auditdropped operation and its observable behavior.
//
// AuditDropped does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) AuditDropped() uint64 {
	if e == nil || e.audit == nil {
		return 0
	}
	return e.audit.Dropped()
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
//
// MetricsSnapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return e.metrics.Snapshot()
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}

// auditEmit stamps the event with an ID and timestamp and hands it to the
// dispatcher. ctx may be nil for events emitted outside a request scope.
func (e *Engine) auditEmit(ctx context.Context, event AuditEvent) {
	if e == nil || e.audit == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	event.EventID = uuid.NewString()
	event.Timestamp = e.clock()
	e.audit.Emit(ctx, event)
}
