package api

import (
	"net/http"

	"lovetasks/internal/service"
)

// RelationshipHandler exposes partner linking.
type RelationshipHandler struct {
	relationships *service.RelationshipService
}

func NewRelationshipHandler(relationships *service.RelationshipService) *RelationshipHandler {
	return &RelationshipHandler{relationships: relationships}
}

type sendRequestBody struct {
	ReceiverID string `json:"receiverId"`
	Message    string `json:"message"`
}

func (h *RelationshipHandler) Current(w http.ResponseWriter, r *http.Request) {
	ident := requireIdentity(w, r)
	if ident == nil {
		return
	}
	partner, err := h.relationships.Partner(r.Context(), ident.User.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"relationship": ident.Relationship,
		"partner":      partner,
	})
}

func (h *RelationshipHandler) SendRequest(w http.ResponseWriter, r *http.Request) {
	ident := requireIdentity(w, r)
	if ident == nil {
		return
	}
	var body sendRequestBody
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	req, err := h.relationships.SendRequest(r.Context(), ident.User.ID, body.ReceiverID, body.Message)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

func (h *RelationshipHandler) PendingRequests(w http.ResponseWriter, r *http.Request) {
	ident := requireIdentity(w, r)
	if ident == nil {
		return
	}
	reqs, err := h.relationships.PendingRequests(r.Context(), ident.User.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"requests": reqs})
}

func (h *RelationshipHandler) AcceptRequest(w http.ResponseWriter, r *http.Request) {
	ident := requireIdentity(w, r)
	if ident == nil {
		return
	}
	rel, err := h.relationships.AcceptRequest(r.Context(), ident.User.ID, r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rel)
}

func (h *RelationshipHandler) RejectRequest(w http.ResponseWriter, r *http.Request) {
	ident := requireIdentity(w, r)
	if ident == nil {
		return
	}
	if err := h.relationships.RejectRequest(r.Context(), ident.User.ID, r.PathValue("id")); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
