package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/favboard/favboard-api/internal/core/domain"
)

func newTestResolver(t *testing.T) (*Resolver, *stubIdentityRepo, string) {
	t.Helper()
	repo := newStubIdentityRepo()
	repo.users["u1"] = &domain.User{ID: "u1", Email: "a@x.com", PasswordHash: "hashed:pw", Role: domain.RoleUser}

	tokens := NewJWTTokenService("secret", time.Hour)
	token, err := tokens.Issue("u1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	return NewResolver(tokens, repo), repo, token
}

func TestResolver_Resolve(t *testing.T) {
	r, _, token := newTestResolver(t)

	user, err := r.Resolve(context.Background(), "Bearer "+token)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if user.ID != "u1" {
		t.Fatalf("unexpected identity %+v", user)
	}
	if user.PasswordHash != "" {
		t.Fatalf("resolved identity must not carry the hash")
	}
}

func TestResolver_Stages(t *testing.T) {
	r, _, token := newTestResolver(t)
	forged, _ := NewJWTTokenService("other", time.Hour).Issue("u1")
	orphan, _ := NewJWTTokenService("secret", time.Hour).Issue("deleted-user")

	cases := []struct {
		name   string
		header string
		stage  ResolutionStage
	}{
		{"missing", "", StageHeader},
		{"no scheme", token, StageHeader},
		{"wrong scheme", "Basic " + token, StageHeader},
		{"lowercase scheme", "bearer " + token, StageHeader},
		{"empty token", "Bearer ", StageHeader},
		{"blank token", "Bearer    ", StageHeader},
		{"forged", "Bearer " + forged, StageToken},
		{"garbage", "Bearer abc.def.ghi", StageToken},
		{"deleted identity", "Bearer " + orphan, StageIdentity},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := r.Resolve(context.Background(), tc.header)

			var resErr *ResolutionError
			if !errors.As(err, &resErr) {
				t.Fatalf("expected ResolutionError, got %v", err)
			}
			if resErr.Stage != tc.stage {
				t.Fatalf("stage = %s, want %s", resErr.Stage, tc.stage)
			}
			if !errors.Is(err, domain.ErrUnauthorized) {
				t.Fatalf("every stage must be unauthorized, got %v", err)
			}
		})
	}
}

func TestResolver_StorageFailureIsNotUnauthorized(t *testing.T) {
	r, repo, token := newTestResolver(t)
	repo.err = errors.New("connection refused")

	_, err := r.Resolve(context.Background(), "Bearer "+token)
	if err == nil {
		t.Fatalf("expected error")
	}
	if errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("storage failure must surface as internal, got %v", err)
	}
}

func TestResolutionStage_String(t *testing.T) {
	for stage, want := range map[ResolutionStage]string{
		StageHeader:   "header",
		StageToken:    "token",
		StageIdentity: "identity",
		0:             "unknown",
	} {
		if got := stage.String(); got != want {
			t.Fatalf("String() = %q, want %q", got, want)
		}
	}
}
