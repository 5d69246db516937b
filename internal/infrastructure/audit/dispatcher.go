// Package audit dispatches audit entries to recorders off the request path.
package audit

import (
	"context"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/draft-engine/internal/domain/audit"
	idgen "github.com/riskibarqy/draft-engine/internal/platform/id"
	"github.com/riskibarqy/draft-engine/internal/platform/logging"
)

const (
	defaultWorkerCount   = 4
	defaultRecordTimeout = 5 * time.Second
)

// Dispatcher fans audit entries out to recorders on a bounded worker pool.
// Emit never blocks the caller and recording failures are logged, not
// surfaced: audit loss must not fail the mutation that triggered it.
type Dispatcher struct {
	recorders []audit.Recorder
	pool      *ants.Pool
	idGen     idgen.Generator
	logger    *logging.Logger
	timeout   time.Duration
	now       func() time.Time
}

func NewDispatcher(recorders []audit.Recorder, workerCount int, idGen idgen.Generator, logger *logging.Logger) (*Dispatcher, error) {
	if workerCount < 1 {
		workerCount = defaultWorkerCount
	}
	if logger == nil {
		logger = logging.Default()
	}

	pool, err := ants.NewPool(workerCount, ants.WithNonblocking(true))
	if err != nil {
		return nil, err
	}

	return &Dispatcher{
		recorders: recorders,
		pool:      pool,
		idGen:     idGen,
		logger:    logger,
		timeout:   defaultRecordTimeout,
		now:       time.Now,
	}, nil
}

// Emit schedules the entry for recording. When the pool is saturated the
// entry is dropped with a warning rather than stalling the request.
func (d *Dispatcher) Emit(e audit.Entry) {
	if e.ID == "" {
		id, err := d.idGen.NewID()
		if err != nil {
			d.logger.Warn("audit entry dropped, id generation failed", "action", e.Action, "error", err)
			return
		}
		e.ID = id
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = d.now().UTC()
	}

	if err := d.pool.Submit(func() { d.record(e) }); err != nil {
		d.logger.Warn("audit entry dropped, worker pool saturated",
			"action", e.Action,
			"draft_id", e.DraftID,
			"error", err,
		)
	}
}

func (d *Dispatcher) record(e audit.Entry) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	for _, r := range d.recorders {
		if err := r.Record(ctx, e); err != nil {
			d.logger.Warn("audit record failed",
				"action", e.Action,
				"draft_id", e.DraftID,
				"error", err,
			)
		}
	}
}

// Close releases the worker pool. Pending submissions finish first.
func (d *Dispatcher) Close() {
	d.pool.Release()
}
