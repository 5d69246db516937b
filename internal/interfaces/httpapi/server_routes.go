package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

// Query routes are readable without a session, but a bearer token (when
// present) still resolves to a principal so the queue endpoint can
// authorize the owner.
func registerDraftQueryRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/drafts/{draftID}", OptionalAuth(verifier, http.HandlerFunc(handler.GetDraftState)))
	mux.Handle("GET /v1/drafts/{draftID}/players/available", OptionalAuth(verifier, http.HandlerFunc(handler.ListAvailablePlayers)))
	mux.Handle("GET /v1/drafts/{draftID}/picks", OptionalAuth(verifier, http.HandlerFunc(handler.ListPicks)))
	mux.Handle("GET /v1/drafts/{draftID}/captains/{captainID}/queue", OptionalAuth(verifier, http.HandlerFunc(handler.GetCaptainQueue)))
}

// Turn routes accept either a captain token in the request body or an owner
// session, so auth is optional at the transport layer and decided in the
// usecase.
func registerDraftTurnRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/drafts/{draftID}/picks", OptionalAuth(verifier, http.HandlerFunc(handler.MakePick)))
	mux.Handle("POST /v1/drafts/{draftID}/autopick", OptionalAuth(verifier, http.HandlerFunc(handler.AutoPick)))
	mux.Handle("POST /v1/drafts/{draftID}/queue", OptionalAuth(verifier, http.HandlerFunc(handler.QueueAction)))
	mux.Handle("POST /v1/drafts/{draftID}/captains/{captainID}/autopick", OptionalAuth(verifier, http.HandlerFunc(handler.SetAutoPick)))
}

func registerDraftAdminRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/drafts/{draftID}/start", RequireAuth(verifier, http.HandlerFunc(handler.StartDraft)))
	mux.Handle("POST /v1/drafts/{draftID}/pause", RequireAuth(verifier, http.HandlerFunc(handler.PauseDraft)))
	mux.Handle("POST /v1/drafts/{draftID}/resume", RequireAuth(verifier, http.HandlerFunc(handler.ResumeDraft)))
	mux.Handle("POST /v1/drafts/{draftID}/undo", RequireAuth(verifier, http.HandlerFunc(handler.UndoPick)))
	mux.Handle("POST /v1/drafts/{draftID}/restart", RequireAuth(verifier, http.HandlerFunc(handler.RestartDraft)))
}
