package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/riskibarqy/draft-engine/internal/domain/user"
	"github.com/riskibarqy/draft-engine/internal/platform/resilience"
	"github.com/riskibarqy/draft-engine/internal/usecase"
)

type fakeVerifier struct {
	principal user.Principal
	err       error
	calls     int
}

func (f *fakeVerifier) VerifyAccessToken(_ context.Context, token string) (user.Principal, error) {
	f.calls++
	if f.err != nil {
		return user.Principal{}, f.err
	}
	if token == "" {
		return user.Principal{}, usecase.ErrUnauthorized
	}
	return f.principal, nil
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	verifier := &fakeVerifier{}
	handler := RequireAuth(verifier, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/v1/drafts/d-1/start", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
	if verifier.calls != 0 {
		t.Fatalf("verifier should not be called without a header")
	}
}

func TestRequireAuth_AttachesPrincipal(t *testing.T) {
	verifier := &fakeVerifier{principal: user.Principal{UserID: "owner-1"}}

	var seen user.Principal
	handler := RequireAuth(verifier, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = principalFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/v1/drafts/d-1/start", nil)
	req.Header.Set("Authorization", "Bearer session-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if seen.UserID != "owner-1" {
		t.Fatalf("expected principal owner-1, got %q", seen.UserID)
	}
}

func TestOptionalAuth_PassesThroughWithoutHeader(t *testing.T) {
	verifier := &fakeVerifier{}
	handler := OptionalAuth(verifier, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := principalFromContext(r.Context()); ok {
			t.Fatalf("did not expect a principal without a header")
		}
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/v1/drafts/d-1/picks", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if verifier.calls != 0 {
		t.Fatalf("verifier should not be called without a header")
	}
}

func TestOptionalAuth_RejectsInvalidToken(t *testing.T) {
	verifier := &fakeVerifier{err: fmt.Errorf("%w: introspection denied", usecase.ErrUnauthorized)}
	handler := OptionalAuth(verifier, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Fatalf("next handler should not run with an invalid token")
	}))

	req := httptest.NewRequest(http.MethodPost, "/v1/drafts/d-1/picks", nil)
	req.Header.Set("Authorization", "Bearer revoked-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestRateLimit_RejectsAfterLimit(t *testing.T) {
	limiter := resilience.NewRateLimiter(2, time.Minute)
	handler := RateLimit(limiter, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/v1/drafts/d-1", nil)
		req.RemoteAddr = "10.0.0.5:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected status 200, got %d", i, rec.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/drafts/d-1", nil)
	req.RemoteAddr = "10.0.0.5:1234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected status 429, got %d", rec.Code)
	}
}

func TestRateLimit_NilLimiterDisabled(t *testing.T) {
	handler := RateLimit(nil, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 10; i++ {
		req := httptest.NewRequest(http.MethodGet, "/v1/drafts/d-1", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}
	}
}
