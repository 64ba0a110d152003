package identity

import (
	"net/http/httptest"
	"testing"
)

func TestFromRequest(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/appointments", nil)
	r.Header.Set("X-User-Id", "u-123")
	r.Header.Set("X-Role", "client")

	actor, ok := FromRequest(r)
	if !ok {
		t.Fatal("expected an actor")
	}
	if actor.UserID != "u-123" || actor.Role != RoleClient {
		t.Fatalf("unexpected actor: %+v", actor)
	}
	if actor.IsProvider() {
		t.Fatal("client must not be a provider")
	}
}

func TestFromRequest_MissingIdentity(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/appointments", nil)
	if _, ok := FromRequest(r); ok {
		t.Fatal("expected no actor without headers")
	}

	r.Header.Set("X-User-Id", "u-123")
	r.Header.Set("X-Role", "admin")
	if _, ok := FromRequest(r); ok {
		t.Fatal("expected no actor for an unknown role")
	}
}

func TestParseRole(t *testing.T) {
	if role, ok := ParseRole(" psychologist "); !ok || role != RoleProvider {
		t.Fatalf("ParseRole = %q, %v", role, ok)
	}
	if _, ok := ParseRole(""); ok {
		t.Fatal("empty role must not parse")
	}
}
