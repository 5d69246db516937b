package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/draft-engine/internal/platform/logging"
	"github.com/riskibarqy/draft-engine/internal/usecase"
)

type Handler struct {
	pickService     *usecase.PickService
	autoPickService *usecase.AutoPickService
	queueService    *usecase.QueueService
	adminService    *usecase.DraftAdminService
	queryService    *usecase.DraftQueryService
	logger          *logging.Logger
	validator       *validator.Validate
}

func NewHandler(
	pickService *usecase.PickService,
	autoPickService *usecase.AutoPickService,
	queueService *usecase.QueueService,
	adminService *usecase.DraftAdminService,
	queryService *usecase.DraftQueryService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		pickService:     pickService,
		autoPickService: autoPickService,
		queueService:    queueService,
		adminService:    adminService,
		queryService:    queryService,
		logger:          logger,
		validator:       newRequestValidator(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) GetDraftState(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDraftState")
	defer span.End()

	draftID, err := pathID(r, "draftID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	state, err := h.queryService.GetState(ctx, draftID)
	if err != nil {
		h.logger.WarnContext(ctx, "get draft state failed", "draft_id", draftID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, stateToDTO(state))
}

func (h *Handler) ListAvailablePlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListAvailablePlayers")
	defer span.End()

	draftID, err := pathID(r, "draftID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	players, err := h.queryService.ListAvailablePlayers(ctx, draftID)
	if err != nil {
		h.logger.WarnContext(ctx, "list available players failed", "draft_id", draftID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerDTO, 0, len(players))
	for _, p := range players {
		items = append(items, playerToDTO(p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPicks")
	defer span.End()

	draftID, err := pathID(r, "draftID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	picks, err := h.queryService.ListPicks(ctx, draftID)
	if err != nil {
		h.logger.WarnContext(ctx, "list picks failed", "draft_id", draftID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]pickDTO, 0, len(picks))
	for _, p := range picks {
		items = append(items, pickToDTO(p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// ownerIdentity returns the verified platform user id when the request
// carried a valid bearer token. Empty otherwise; captain-token flows do not
// need one.
func ownerIdentity(ctx context.Context) string {
	principal, ok := principalFromContext(ctx)
	if !ok {
		return ""
	}
	return principal.UserID
}
