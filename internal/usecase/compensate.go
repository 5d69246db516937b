package usecase

import (
	"context"
	"errors"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/draft-engine/internal/domain/pick"
)

// Compensation helpers. The store offers no multi-table transaction, so every
// multi-step mutation carries a hand-written inverse sequence invoked when a
// later step fails. Compensation failures leave drifted state that needs
// manual reconciliation; they are logged at error level with full detail but
// never surface to the caller as a second failure.

func errorsIsDuplicatePick(err error) bool {
	return errors.Is(err, pick.ErrDuplicatePickNumber)
}

// compensatePickInsert reverses a lone pick-row insert.
func (s *PickService) compensatePickInsert(ctx context.Context, p pick.Pick) {
	if err := s.picks.Delete(ctx, p.ID); err != nil {
		s.logger.ErrorContext(ctx, "CRITICAL: compensation failed, orphaned pick row",
			"draft_id", p.DraftID,
			"pick_id", p.ID,
			"pick_number", p.PickNumber,
			"error", err,
		)
	}
}

// compensatePickAndPlayer reverses both the pick insert and the player mark.
func (s *PickService) compensatePickAndPlayer(ctx context.Context, p pick.Pick) {
	var failed error
	if err := s.picks.Delete(ctx, p.ID); err != nil {
		failed = crerr.Wrap(err, "delete pick")
	}
	if err := s.players.ResetPicked(ctx, p.PlayerID); err != nil {
		failed = crerr.CombineErrors(failed, crerr.Wrap(err, "reset player"))
	}
	if failed != nil {
		s.logger.ErrorContext(ctx, "CRITICAL: compensation failed, draft state drifted",
			"draft_id", p.DraftID,
			"pick_id", p.ID,
			"player_id", p.PlayerID,
			"pick_number", p.PickNumber,
			"error", failed,
		)
	}
}
