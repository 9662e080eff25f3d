package utils

import (
	"context"
	"testing"
)

func TestContextIdentityRoundTrip(t *testing.T) {
	ctx := context.Background()
	ctx = SetTokenInContext(ctx, "tok-123")
	ctx = SetUsernameInContext(ctx, "kokoaung")
	ctx = SetUserIdInContext(ctx, 42)
	ctx = SetUserNameInContext(ctx, "Ko Ko Aung")
	ctx = SetUserRoleInContext(ctx, "Manager")
	ctx = SetCorrelationIdInContext(ctx, "cid-7")

	if got, ok := GetTokenFromContext(ctx); !ok || got != "tok-123" {
		t.Errorf("token: got %q ok=%v", got, ok)
	}
	if got, ok := GetUsernameFromContext(ctx); !ok || got != "kokoaung" {
		t.Errorf("username: got %q ok=%v", got, ok)
	}
	if got, ok := GetUserIdFromContext(ctx); !ok || got != 42 {
		t.Errorf("user id: got %d ok=%v", got, ok)
	}
	if got, ok := GetUserNameFromContext(ctx); !ok || got != "Ko Ko Aung" {
		t.Errorf("user name: got %q ok=%v", got, ok)
	}
	if got, ok := GetUserRoleFromContext(ctx); !ok || got != "Manager" {
		t.Errorf("user role: got %q ok=%v", got, ok)
	}
	if got, ok := GetCorrelationIdFromContext(ctx); !ok || got != "cid-7" {
		t.Errorf("correlation id: got %q ok=%v", got, ok)
	}
}

func TestContextMissingValues(t *testing.T) {
	ctx := context.Background()
	if _, ok := GetUserNameFromContext(ctx); ok {
		t.Error("expected no user name on empty context")
	}
	if _, ok := GetUserIdFromContext(ctx); ok {
		t.Error("expected no user id on empty context")
	}
}
