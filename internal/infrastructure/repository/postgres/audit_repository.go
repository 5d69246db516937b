package postgres

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/draft-engine/internal/domain/audit"
)

type AuditRepository struct {
	db *sqlx.DB
}

func NewAuditRepository(db *sqlx.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Record(ctx context.Context, e audit.Entry) error {
	metadata := []byte("{}")
	if len(e.Metadata) > 0 {
		encoded, err := sonic.Marshal(e.Metadata)
		if err != nil {
			return fmt.Errorf("encode audit metadata: %w", err)
		}
		metadata = encoded
	}

	const query = `
INSERT INTO audit_log (id, action, draft_id, actor_type, actor_id, metadata, source_addr, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.Action, e.DraftID, string(e.ActorType), e.ActorID, metadata, e.SourceAddr, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}

	return nil
}
