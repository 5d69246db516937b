package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/draft-engine/internal/usecase"
)

func (h *Handler) MakePick(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.MakePick")
	defer span.End()

	var req makePickRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	draftID, err := pathID(r, "draftID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	outcome, err := h.pickService.MakePick(ctx, usecase.MakePickInput{
		DraftID:       draftID,
		CaptainID:     req.CaptainID,
		PlayerID:      req.PlayerID,
		CaptainToken:  req.CaptainToken,
		OwnerIdentity: ownerIdentity(ctx),
		SourceAddr:    resolveClientIP(r),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "make pick failed", "draft_id", draftID, "captain_id", req.CaptainID, "error", err)
		writeError(ctx, w, err)
		return
	}

	if outcome.AlreadyPicked {
		writeSoftFailure(ctx, w, "alreadyPicked", "pick was already recorded for this turn", map[string]int{
			"current_pick_index": outcome.NextPickIndex,
		})
		return
	}

	writeSuccess(ctx, w, http.StatusOK, outcomeToDTO(outcome))
}

func (h *Handler) AutoPick(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AutoPick")
	defer span.End()

	req := autoPickRequest{}
	if r.ContentLength != 0 {
		decoder := sonic.ConfigDefault.NewDecoder(r.Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&req); err != nil {
			writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
			return
		}
		if err := h.validateRequest(ctx, req); err != nil {
			writeError(ctx, w, err)
			return
		}
	}

	draftID, err := pathID(r, "draftID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	outcome, err := h.autoPickService.AutoPick(ctx, usecase.AutoPickInput{
		DraftID:           draftID,
		ExpectedPickIndex: req.ExpectedPickIndex,
		CaptainToken:      req.CaptainToken,
		OwnerIdentity:     ownerIdentity(ctx),
		SourceAddr:        resolveClientIP(r),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "auto pick failed", "draft_id", draftID, "error", err)
		writeError(ctx, w, err)
		return
	}

	switch {
	case outcome.AlreadyPicked:
		writeSoftFailure(ctx, w, "alreadyPicked", "turn was already handled", map[string]int{
			"current_pick_index": outcome.NextPickIndex,
		})
	case outcome.TimerNotExpired:
		writeSoftFailure(ctx, w, "timerNotExpired", "turn timer has not expired yet", map[string]int{
			"current_pick_index": outcome.NextPickIndex,
		})
	default:
		writeSuccess(ctx, w, http.StatusOK, outcomeToDTO(outcome))
	}
}

func (h *Handler) SetAutoPick(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetAutoPick")
	defer span.End()

	var req setAutoPickRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	draftID, err := pathID(r, "draftID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	captainID, err := pathID(r, "captainID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	err = h.autoPickService.SetAutoPickEnabled(ctx, usecase.SetAutoPickInput{
		DraftID:       draftID,
		CaptainID:     captainID,
		Enabled:       req.Enabled,
		CaptainToken:  req.CaptainToken,
		OwnerIdentity: ownerIdentity(ctx),
		SourceAddr:    resolveClientIP(r),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "set auto pick failed", "draft_id", draftID, "captain_id", captainID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"enabled": req.Enabled})
}
