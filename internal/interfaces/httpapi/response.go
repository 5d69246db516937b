package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/draft-engine/internal/usecase"
)

// responseEnvelope carries a success discriminant rather than relying on the
// HTTP status alone. Expected races (duplicate pick number, stale index, early
// timer) return 200 with success=false so polling clients can treat them as
// benign without an error branch.
type responseEnvelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	ctx, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	ctx, span := startSpan(ctx, "httpapi.writeSuccess")
	defer span.End()

	writeJSON(ctx, w, status, responseEnvelope{
		Success: true,
		Data:    data,
	})
}

// writeSoftFailure reports a lost-but-legitimate race: HTTP 200, success
// false.
func writeSoftFailure(ctx context.Context, w http.ResponseWriter, reason, message string, data any) {
	ctx, span := startSpan(ctx, "httpapi.writeSoftFailure")
	defer span.End()

	writeJSON(ctx, w, http.StatusOK, responseEnvelope{
		Success: false,
		Data:    data,
		Error:   message,
		Reason:  reason,
	})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	mapped := mapError(err)
	writeJSON(ctx, w, mapped.HTTPStatus, responseEnvelope{
		Success: false,
		Error:   err.Error(),
		Reason:  mapped.Reason,
	})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	ctx, span := startSpan(ctx, "httpapi.writeInternalError")
	defer span.End()

	writeJSON(ctx, w, http.StatusInternalServerError, responseEnvelope{
		Success: false,
		Error:   "internal server error",
		Reason:  "internalError",
	})
}

func mapError(err error) mappedError {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return mappedError{HTTPStatus: http.StatusBadRequest, Reason: "invalidInput"}
	case errors.Is(err, usecase.ErrUnauthorized):
		return mappedError{HTTPStatus: http.StatusUnauthorized, Reason: "unauthorized"}
	case errors.Is(err, usecase.ErrNotFound):
		return mappedError{HTTPStatus: http.StatusNotFound, Reason: "notFound"}
	case errors.Is(err, usecase.ErrNotYourTurn):
		return mappedError{HTTPStatus: http.StatusConflict, Reason: "notYourTurn"}
	case errors.Is(err, usecase.ErrWrongDraftStatus):
		return mappedError{HTTPStatus: http.StatusConflict, Reason: "wrongDraftStatus"}
	case errors.Is(err, usecase.ErrPlayerUnavailable):
		return mappedError{HTTPStatus: http.StatusConflict, Reason: "playerUnavailable"}
	case errors.Is(err, usecase.ErrNoPlayersAvailable):
		return mappedError{HTTPStatus: http.StatusConflict, Reason: "noPlayersAvailable"}
	case errors.Is(err, usecase.ErrNoPicksToUndo):
		return mappedError{HTTPStatus: http.StatusConflict, Reason: "noPicksToUndo"}
	case errors.Is(err, usecase.ErrAlreadyUndone):
		return mappedError{HTTPStatus: http.StatusConflict, Reason: "alreadyUndone"}
	case errors.Is(err, usecase.ErrConflict):
		return mappedError{HTTPStatus: http.StatusConflict, Reason: "conflict"}
	case errors.Is(err, usecase.ErrRateLimited):
		return mappedError{HTTPStatus: http.StatusTooManyRequests, Reason: "rateLimited"}
	case errors.Is(err, usecase.ErrDependencyUnavailable):
		return mappedError{HTTPStatus: http.StatusServiceUnavailable, Reason: "dependencyUnavailable"}
	case errors.Is(err, usecase.ErrConcurrentUpdate):
		// Earlier writes were compensated; the caller may retry.
		return mappedError{HTTPStatus: http.StatusInternalServerError, Reason: "concurrentUpdate"}
	default:
		return mappedError{HTTPStatus: http.StatusInternalServerError, Reason: "internalError"}
	}
}
