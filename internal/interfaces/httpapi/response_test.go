package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/draft-engine/internal/usecase"
)

func TestWriteSuccess_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusOK, map[string]string{"status": "ok"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body responseEnvelope
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if !body.Success {
		t.Fatalf("expected success=true")
	}
	if body.Data == nil {
		t.Fatalf("expected data in success response")
	}
	if body.Error != "" {
		t.Fatalf("did not expect error in success response, got %q", body.Error)
	}
}

func TestWriteSoftFailure_Returns200WithSuccessFalse(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSoftFailure(context.Background(), rec, "alreadyPicked", "pick was already recorded", map[string]int{"current_pick_index": 3})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body responseEnvelope
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if body.Success {
		t.Fatalf("expected success=false")
	}
	if body.Reason != "alreadyPicked" {
		t.Fatalf("expected reason alreadyPicked, got %q", body.Reason)
	}
	if body.Data == nil {
		t.Fatalf("expected data with current pick index")
	}
}

func TestWriteError_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fmt.Errorf("%w: bad payload", usecase.ErrInvalidInput))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	var body responseEnvelope
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}

	if body.Success {
		t.Fatalf("expected success=false")
	}
	if body.Reason != "invalidInput" {
		t.Fatalf("expected reason invalidInput, got %q", body.Reason)
	}
}

func TestMapError_Statuses(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantReason string
	}{
		{"invalid input", usecase.ErrInvalidInput, http.StatusBadRequest, "invalidInput"},
		{"unauthorized", usecase.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
		{"not found", usecase.ErrNotFound, http.StatusNotFound, "notFound"},
		{"not your turn", usecase.ErrNotYourTurn, http.StatusConflict, "notYourTurn"},
		{"wrong draft status", usecase.ErrWrongDraftStatus, http.StatusConflict, "wrongDraftStatus"},
		{"player unavailable", usecase.ErrPlayerUnavailable, http.StatusConflict, "playerUnavailable"},
		{"no players available", usecase.ErrNoPlayersAvailable, http.StatusConflict, "noPlayersAvailable"},
		{"no picks to undo", usecase.ErrNoPicksToUndo, http.StatusConflict, "noPicksToUndo"},
		{"rate limited", usecase.ErrRateLimited, http.StatusTooManyRequests, "rateLimited"},
		{"dependency unavailable", usecase.ErrDependencyUnavailable, http.StatusServiceUnavailable, "dependencyUnavailable"},
		{"concurrent update", usecase.ErrConcurrentUpdate, http.StatusInternalServerError, "concurrentUpdate"},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError, "internalError"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mapped := mapError(fmt.Errorf("%w: wrapped", tc.err))
			if mapped.HTTPStatus != tc.wantStatus {
				t.Fatalf("expected status %d, got %d", tc.wantStatus, mapped.HTTPStatus)
			}
			if mapped.Reason != tc.wantReason {
				t.Fatalf("expected reason %q, got %q", tc.wantReason, mapped.Reason)
			}
		})
	}
}
