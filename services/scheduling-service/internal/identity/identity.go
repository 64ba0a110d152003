package identity

import (
	"net/http"
	"strings"
)

// Role is the caller's role as established by the gateway.
type Role string

const (
	RoleClient   Role = "client"
	RoleProvider Role = "psychologist"
)

func ParseRole(s string) (Role, bool) {
	switch Role(strings.TrimSpace(s)) {
	case RoleClient:
		return RoleClient, true
	case RoleProvider:
		return RoleProvider, true
	default:
		return "", false
	}
}

// Actor identifies the authenticated caller. The gateway verifies the
// token and forwards the subject and role as headers; services trust
// those headers inside the private network.
type Actor struct {
	UserID string
	Role   Role
	Email  string
}

func (a Actor) IsProvider() bool { return a.Role == RoleProvider }

// FromRequest extracts the caller identity from the gateway-set headers.
// The second return is false when the request carries no usable identity.
func FromRequest(r *http.Request) (Actor, bool) {
	userID := strings.TrimSpace(r.Header.Get("X-User-Id"))
	if userID == "" {
		return Actor{}, false
	}
	role, ok := ParseRole(r.Header.Get("X-Role"))
	if !ok {
		return Actor{}, false
	}
	return Actor{
		UserID: userID,
		Role:   role,
		Email:  strings.TrimSpace(r.Header.Get("X-User-Email")),
	}, true
}
