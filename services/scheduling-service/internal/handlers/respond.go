package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sofia-wellness/sofia/services/scheduling-service/internal/directory"
	"github.com/sofia-wellness/sofia/services/scheduling-service/internal/identity"
	"github.com/sofia-wellness/sofia/services/scheduling-service/internal/storage"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "failed to build response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// requireActor rejects requests without a gateway-established identity.
func requireActor(w http.ResponseWriter, r *http.Request) (identity.Actor, bool) {
	actor, ok := identity.FromRequest(r)
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return identity.Actor{}, false
	}
	return actor, true
}

// requireProviderProfile resolves the acting psychologist's directory
// profile. Non-providers and users without a profile get 403.
func requireProviderProfile(ctx context.Context, w http.ResponseWriter, r *http.Request, dir directory.Client) (directory.Profile, bool) {
	actor, ok := requireActor(w, r)
	if !ok {
		return directory.Profile{}, false
	}
	if !actor.IsProvider() {
		http.Error(w, "provider role required", http.StatusForbidden)
		return directory.Profile{}, false
	}
	profile, err := dir.ProfileByUser(ctx, actor.UserID)
	if err != nil {
		if storage.IsNotFound(err) {
			http.Error(w, "no provider profile for user", http.StatusForbidden)
			return directory.Profile{}, false
		}
		http.Error(w, "failed to resolve provider profile", http.StatusInternalServerError)
		return directory.Profile{}, false
	}
	return profile, true
}
