package api

import (
	"context"
	"errors"
	"net/http"

	"gorm.io/gorm"

	"lovetasks/internal/model"
	"lovetasks/internal/service"
)

// Identity is what the rest of the system hands the core: who is acting,
// their relationship and their partner. It is resolved once per request from
// the X-User-ID header.
type Identity struct {
	User         *model.User
	Relationship *model.Relationship // nil when unlinked
	PartnerID    string
}

type identityKey struct{}

// withIdentity resolves the caller before the mux runs. Requests without the
// header pass through so open endpoints (registration, search) keep working;
// handlers that need a caller use requireIdentity.
func withIdentity(users *service.UserService, relationships *service.RelationshipService, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get("X-User-ID")
		if userID == "" {
			next.ServeHTTP(w, r)
			return
		}

		user, err := users.Get(r.Context(), userID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(w, http.StatusUnauthorized, errors.New("unknown user"))
			return
		}
		if err != nil {
			respondError(w, err)
			return
		}

		ident := &Identity{User: user}
		rel, err := relationships.ActiveFor(r.Context(), userID)
		if err != nil {
			respondError(w, err)
			return
		}
		if rel != nil {
			ident.Relationship = rel
			ident.PartnerID = rel.PartnerOf(userID)
		}

		ctx := context.WithValue(r.Context(), identityKey{}, ident)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireIdentity pulls the resolved caller out of the request, or writes a
// 401 and returns nil.
func requireIdentity(w http.ResponseWriter, r *http.Request) *Identity {
	ident, _ := r.Context().Value(identityKey{}).(*Identity)
	if ident == nil {
		writeError(w, http.StatusUnauthorized, errors.New("X-User-ID header required"))
		return nil
	}
	return ident
}

// requireRelationship is requireIdentity plus the linked-partner check that
// most of the core needs.
func requireRelationship(w http.ResponseWriter, r *http.Request) *Identity {
	ident := requireIdentity(w, r)
	if ident == nil {
		return nil
	}
	if ident.Relationship == nil {
		respondError(w, service.ErrNoActiveRelationship)
		return nil
	}
	return ident
}
