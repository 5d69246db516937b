package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/draft-engine/internal/domain/audit"
)

// AuditRecorder keeps audit entries in memory, capped so a long-lived local
// instance does not grow without bound.
type AuditRecorder struct {
	mu      sync.Mutex
	entries []audit.Entry
	max     int
}

func NewAuditRecorder(max int) *AuditRecorder {
	if max < 1 {
		max = 1000
	}
	return &AuditRecorder{max: max}
}

func (r *AuditRecorder) Record(_ context.Context, e audit.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, e)
	if len(r.entries) > r.max {
		r.entries = r.entries[len(r.entries)-r.max:]
	}

	return nil
}

// Entries returns a snapshot of the recorded log, oldest first.
func (r *AuditRecorder) Entries() []audit.Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]audit.Entry(nil), r.entries...)
}
