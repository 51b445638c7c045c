package handler

import (
	"errors"
	"testing"

	"github.com/favboard/favboard-api/internal/core/domain"
)

func TestValidator_FieldNamesFollowJSON(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&createPostRequest{Description: string(make([]byte, 1001))})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("ValidationError must match ErrInvalidInput")
	}

	got := map[string]string{}
	for _, f := range ve.Fields {
		got[f.Field] = f.Message
	}
	if got["url"] != "url is required" {
		t.Fatalf("unexpected url error %q", got["url"])
	}
	if got["description"] != "description must be at most 1000 characters" {
		t.Fatalf("unexpected description error %q", got["description"])
	}
}

func TestValidator_OptionalFields(t *testing.T) {
	v := NewValidator()
	if err := v.Validate(&updatePostRequest{}); err != nil {
		t.Fatalf("empty update must pass, got %v", err)
	}
	empty := ""
	if err := v.Validate(&updatePostRequest{URL: &empty}); err == nil {
		t.Fatalf("blank url must be rejected")
	}
}

func TestRegisterRequest_NormalizesEmail(t *testing.T) {
	req := &registerRequest{Email: "  Bob@Example.COM\t"}
	req.normalize()
	if req.Email != "bob@example.com" {
		t.Fatalf("Email = %q", req.Email)
	}
}
