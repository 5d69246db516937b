package usecase

import (
	"errors"
	"testing"

	"github.com/riskibarqy/draft-engine/internal/domain/audit"
	"github.com/riskibarqy/draft-engine/internal/domain/draft"
)

func TestAuthorizer_CaptainToken(t *testing.T) {
	fx := newDraftFixture(draft.StatusInProgress, timePtr(fixtureCreatedAt))
	authorizer := NewAuthorizer(fx.captains)

	d, _, err := fx.drafts.GetByID(t.Context(), fixtureDraftID)
	if err != nil {
		t.Fatalf("get draft: %v", err)
	}

	actor, err := authorizer.Authorize(t.Context(), d, Credentials{
		CaptainID:    captainAlphaID,
		CaptainToken: captainAlphaToken,
	})
	if err != nil {
		t.Fatalf("authorize captain: %v", err)
	}
	if actor.Type != audit.ActorCaptain || actor.CaptainID != captainAlphaID {
		t.Fatalf("unexpected actor: %+v", actor)
	}
	if actor.ID() != captainAlphaID {
		t.Fatalf("expected actor id %s, got %s", captainAlphaID, actor.ID())
	}
}

func TestAuthorizer_CaptainToken_Rejections(t *testing.T) {
	fx := newDraftFixture(draft.StatusInProgress, timePtr(fixtureCreatedAt))
	authorizer := NewAuthorizer(fx.captains)

	d, _, err := fx.drafts.GetByID(t.Context(), fixtureDraftID)
	if err != nil {
		t.Fatalf("get draft: %v", err)
	}

	cases := []struct {
		name  string
		creds Credentials
	}{
		{
			name:  "wrong token",
			creds: Credentials{CaptainID: captainAlphaID, CaptainToken: "not-the-token"},
		},
		{
			name:  "token of another captain",
			creds: Credentials{CaptainID: captainAlphaID, CaptainToken: captainBetaToken},
		},
		{
			name:  "token without captain id",
			creds: Credentials{CaptainToken: captainAlphaToken},
		},
		{
			name:  "unknown captain",
			creds: Credentials{CaptainID: "cap-ghost", CaptainToken: captainAlphaToken},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := authorizer.Authorize(t.Context(), d, tc.creds); !errors.Is(err, ErrUnauthorized) {
				t.Fatalf("expected ErrUnauthorized, got %v", err)
			}
		})
	}
}

func TestAuthorizer_CaptainFromOtherDraftRejected(t *testing.T) {
	fx := newDraftFixture(draft.StatusInProgress, timePtr(fixtureCreatedAt))
	authorizer := NewAuthorizer(fx.captains)

	other := draft.Draft{
		ID:      "draft-other",
		OwnerID: "owner-2",
		Type:    draft.TypeRoundRobin,
		Status:  draft.StatusInProgress,
	}

	_, err := authorizer.Authorize(t.Context(), other, Credentials{
		CaptainID:    captainAlphaID,
		CaptainToken: captainAlphaToken,
	})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAuthorizer_OwnerIdentity(t *testing.T) {
	fx := newDraftFixture(draft.StatusInProgress, timePtr(fixtureCreatedAt))
	authorizer := NewAuthorizer(fx.captains)

	d, _, err := fx.drafts.GetByID(t.Context(), fixtureDraftID)
	if err != nil {
		t.Fatalf("get draft: %v", err)
	}

	actor, err := authorizer.Authorize(t.Context(), d, Credentials{OwnerIdentity: fixtureOwnerID})
	if err != nil {
		t.Fatalf("authorize owner: %v", err)
	}
	if actor.Type != audit.ActorOwner || actor.OwnerID != fixtureOwnerID {
		t.Fatalf("unexpected actor: %+v", actor)
	}

	if _, err := authorizer.Authorize(t.Context(), d, Credentials{OwnerIdentity: "somebody-else"}); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for non-owner, got %v", err)
	}
	if _, err := authorizer.Authorize(t.Context(), d, Credentials{}); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized with no credentials, got %v", err)
	}
}

func TestAuthorizer_CaptainPathWinsOverOwner(t *testing.T) {
	fx := newDraftFixture(draft.StatusInProgress, timePtr(fixtureCreatedAt))
	authorizer := NewAuthorizer(fx.captains)

	d, _, err := fx.drafts.GetByID(t.Context(), fixtureDraftID)
	if err != nil {
		t.Fatalf("get draft: %v", err)
	}

	// Both credential kinds supplied: the captain token decides the actor.
	actor, err := authorizer.Authorize(t.Context(), d, Credentials{
		CaptainID:     captainBetaID,
		CaptainToken:  captainBetaToken,
		OwnerIdentity: fixtureOwnerID,
	})
	if err != nil {
		t.Fatalf("authorize: %v", err)
	}
	if actor.Type != audit.ActorCaptain || actor.CaptainID != captainBetaID {
		t.Fatalf("expected captain actor, got %+v", actor)
	}
}

func TestAuthorizer_AuthorizeOwnerOnly(t *testing.T) {
	fx := newDraftFixture(draft.StatusPaused, nil)
	authorizer := NewAuthorizer(fx.captains)

	d, _, err := fx.drafts.GetByID(t.Context(), fixtureDraftID)
	if err != nil {
		t.Fatalf("get draft: %v", err)
	}

	if _, err := authorizer.AuthorizeOwner(d, fixtureOwnerID); err != nil {
		t.Fatalf("authorize owner: %v", err)
	}
	if _, err := authorizer.AuthorizeOwner(d, ""); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for empty identity, got %v", err)
	}
	if _, err := authorizer.AuthorizeOwner(d, "somebody-else"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for stranger, got %v", err)
	}
}
