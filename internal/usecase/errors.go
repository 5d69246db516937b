package usecase

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized")

	// ErrDependencyUnavailable marks failures of external systems the request
	// cannot proceed without, such as the session introspection service.
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	ErrRateLimited = errors.New("rate limited")

	// Domain-phase errors: the request is well formed but the draft is not in
	// a state that allows it. No compensation is needed, nothing was written.
	ErrNotYourTurn        = errors.New("not your turn")
	ErrWrongDraftStatus   = errors.New("draft is not in the required status")
	ErrPlayerUnavailable  = errors.New("player is not available")
	ErrNoPlayersAvailable = errors.New("no players available")
	ErrNoPicksToUndo      = errors.New("no picks to undo")
	ErrAlreadyUndone      = errors.New("pick already undone")
	ErrConflict           = errors.New("conflict")

	// ErrConcurrentUpdate is returned after a conditional write hit zero rows
	// and the already-applied steps were compensated. Callers may retry.
	ErrConcurrentUpdate = errors.New("draft state changed concurrently")
)
