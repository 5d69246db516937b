package httpapi

import (
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/draft-engine/internal/usecase"
)

// captainTokenHeader carries the captain secret on GET requests, where a
// JSON body is not an option.
const captainTokenHeader = "X-Captain-Token"

func (h *Handler) QueueAction(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.QueueAction")
	defer span.End()

	var req queueActionRequest
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

	input := usecase.QueueInput{
		DraftID:       draftID,
		CaptainID:     req.CaptainID,
		CaptainToken:  req.CaptainToken,
		OwnerIdentity: ownerIdentity(ctx),
		SourceAddr:    resolveClientIP(r),
	}

	switch req.Action {
	case "add":
		if req.PlayerID == "" {
			writeError(ctx, w, fmt.Errorf("%w: player_id is required for add", usecase.ErrInvalidInput))
			return
		}
		entry, err := h.queueService.Add(ctx, input, req.PlayerID)
		if err != nil {
			h.logger.WarnContext(ctx, "queue add failed", "draft_id", input.DraftID, "captain_id", input.CaptainID, "error", err)
			writeError(ctx, w, err)
			return
		}
		writeSuccess(ctx, w, http.StatusOK, queueEntryToDTO(entry))

	case "remove":
		if req.EntryID == "" {
			writeError(ctx, w, fmt.Errorf("%w: entry_id is required for remove", usecase.ErrInvalidInput))
			return
		}
		if err := h.queueService.Remove(ctx, input, req.EntryID); err != nil {
			h.logger.WarnContext(ctx, "queue remove failed", "draft_id", input.DraftID, "captain_id", input.CaptainID, "error", err)
			writeError(ctx, w, err)
			return
		}
		writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "removed"})

	case "reorder":
		if len(req.EntryIDs) == 0 {
			writeError(ctx, w, fmt.Errorf("%w: entry_ids is required for reorder", usecase.ErrInvalidInput))
			return
		}
		if err := h.queueService.Reorder(ctx, input, req.EntryIDs); err != nil {
			h.logger.WarnContext(ctx, "queue reorder failed", "draft_id", input.DraftID, "captain_id", input.CaptainID, "error", err)
			writeError(ctx, w, err)
			return
		}
		writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "reordered"})

	default:
		writeError(ctx, w, fmt.Errorf("%w: unsupported action %q", usecase.ErrInvalidInput, req.Action))
	}
}

func (h *Handler) GetCaptainQueue(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCaptainQueue")
	defer span.End()

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

	input := usecase.QueueInput{
		DraftID:       draftID,
		CaptainID:     captainID,
		CaptainToken:  r.Header.Get(captainTokenHeader),
		OwnerIdentity: ownerIdentity(ctx),
		SourceAddr:    resolveClientIP(r),
	}

	entries, err := h.queueService.List(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "list queue failed", "draft_id", input.DraftID, "captain_id", input.CaptainID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]queueEntryDTO, 0, len(entries))
	for _, e := range entries {
		items = append(items, queueEntryToDTO(e))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
