package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/riskibarqy/draft-engine/internal/usecase"
)

// Admin endpoints authenticate through the platform session only; a captain
// token never grants lifecycle control.

func (h *Handler) StartDraft(w http.ResponseWriter, r *http.Request) {
	h.runAdminAction(w, r, "httpapi.Handler.StartDraft", "start draft", h.adminService.Start)
}

func (h *Handler) PauseDraft(w http.ResponseWriter, r *http.Request) {
	h.runAdminAction(w, r, "httpapi.Handler.PauseDraft", "pause draft", h.adminService.Pause)
}

func (h *Handler) ResumeDraft(w http.ResponseWriter, r *http.Request) {
	h.runAdminAction(w, r, "httpapi.Handler.ResumeDraft", "resume draft", h.adminService.Resume)
}

func (h *Handler) RestartDraft(w http.ResponseWriter, r *http.Request) {
	h.runAdminAction(w, r, "httpapi.Handler.RestartDraft", "restart draft", h.adminService.Restart)
}

func (h *Handler) UndoPick(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UndoPick")
	defer span.End()

	input, err := h.adminInput(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	undone, err := h.adminService.Undo(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "undo pick failed", "draft_id", input.DraftID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, pickToDTO(undone))
}

func (h *Handler) runAdminAction(w http.ResponseWriter, r *http.Request, spanName, actionName string, action func(ctx context.Context, input usecase.AdminInput) error) {
	ctx, span := startSpan(r.Context(), spanName)
	defer span.End()

	input, err := h.adminInput(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := action(ctx, input); err != nil {
		h.logger.WarnContext(ctx, actionName+" failed", "draft_id", input.DraftID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) adminInput(r *http.Request) (usecase.AdminInput, error) {
	identity := ownerIdentity(r.Context())
	if identity == "" {
		return usecase.AdminInput{}, fmt.Errorf("%w: owner session is required", usecase.ErrUnauthorized)
	}

	draftID, err := pathID(r, "draftID")
	if err != nil {
		return usecase.AdminInput{}, err
	}

	return usecase.AdminInput{
		DraftID:       draftID,
		OwnerIdentity: identity,
		SourceAddr:    resolveClientIP(r),
	}, nil
}
