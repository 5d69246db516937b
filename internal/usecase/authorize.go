package usecase

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"

	"github.com/riskibarqy/draft-engine/internal/domain/audit"
	"github.com/riskibarqy/draft-engine/internal/domain/captain"
	"github.com/riskibarqy/draft-engine/internal/domain/draft"
)

// Actor identifies who a request acts as after authorization. Exactly one of
// the two credential paths produced it: a captain's per-participant secret or
// the draft owner's verified identity.
type Actor struct {
	Type      audit.ActorType
	CaptainID string
	OwnerID   string
}

func (a Actor) ID() string {
	if a.Type == audit.ActorOwner {
		return a.OwnerID
	}
	return a.CaptainID
}

// Credentials carries whatever the caller supplied. CaptainToken rides in the
// request body; OwnerIdentity is set by the transport layer after bearer-token
// verification.
type Credentials struct {
	CaptainID     string
	CaptainToken  string
	OwnerIdentity string
}

// Authorizer implements the two mutually exclusive credential paths. Identity
// ("may you call this") is checked here; whether it is actually the actor's
// turn is re-derived separately by the pick coordinator.
type Authorizer struct {
	captains captain.Repository
}

func NewAuthorizer(captains captain.Repository) *Authorizer {
	return &Authorizer{captains: captains}
}

// Authorize resolves an actor for the draft. The captain path wins when a
// token is supplied; otherwise the owner path is tried.
func (a *Authorizer) Authorize(ctx context.Context, d draft.Draft, creds Credentials) (Actor, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.Authorizer.Authorize")
	defer span.End()

	if strings.TrimSpace(creds.CaptainToken) != "" {
		return a.authorizeCaptain(ctx, d, creds.CaptainID, creds.CaptainToken)
	}

	return a.authorizeOwner(d, creds.OwnerIdentity)
}

func (a *Authorizer) authorizeCaptain(ctx context.Context, d draft.Draft, captainID, token string) (Actor, error) {
	if strings.TrimSpace(captainID) == "" {
		return Actor{}, fmt.Errorf("%w: captain id is required with a captain token", ErrUnauthorized)
	}

	cpt, exists, err := a.captains.GetByID(ctx, captainID)
	if err != nil {
		return Actor{}, fmt.Errorf("get captain: %w", err)
	}
	if !exists || cpt.DraftID != d.ID {
		return Actor{}, fmt.Errorf("%w: captain does not belong to draft", ErrUnauthorized)
	}

	// Constant-time comparison so response timing leaks nothing about how
	// much of the secret matched.
	if subtle.ConstantTimeCompare([]byte(cpt.AccessToken), []byte(token)) != 1 {
		return Actor{}, fmt.Errorf("%w: invalid captain token", ErrUnauthorized)
	}

	return Actor{Type: audit.ActorCaptain, CaptainID: cpt.ID}, nil
}

func (a *Authorizer) authorizeOwner(d draft.Draft, identity string) (Actor, error) {
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return Actor{}, fmt.Errorf("%w: no captain token and no verified identity", ErrUnauthorized)
	}
	if d.OwnerID != identity {
		return Actor{}, fmt.Errorf("%w: identity is not the draft owner", ErrUnauthorized)
	}

	return Actor{Type: audit.ActorOwner, OwnerID: identity}, nil
}

// AuthorizeOwner accepts only the owner path, for operations captains may
// never perform (undo, restart, lifecycle transitions).
func (a *Authorizer) AuthorizeOwner(d draft.Draft, identity string) (Actor, error) {
	return a.authorizeOwner(d, identity)
}
