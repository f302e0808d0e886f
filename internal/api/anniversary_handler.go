package api

import (
	"net/http"
	"time"

	"lovetasks/internal/service"
)

// AnniversaryHandler exposes the couple's remembered dates.
type AnniversaryHandler struct {
	anniversaries *service.AnniversaryService
}

func NewAnniversaryHandler(anniversaries *service.AnniversaryService) *AnniversaryHandler {
	return &AnniversaryHandler{anniversaries: anniversaries}
}

type anniversaryBody struct {
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Date         time.Time `json:"date"`
	IsYearly     bool      `json:"isYearly"`
	ReminderDays int       `json:"reminderDays"`
}

func (h *AnniversaryHandler) Create(w http.ResponseWriter, r *http.Request) {
	ident := requireRelationship(w, r)
	if ident == nil {
		return
	}
	var body anniversaryBody
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	anniversary, err := h.anniversaries.Create(r.Context(), ident.User.ID, ident.Relationship.ID, service.AnniversaryInput{
		Title:        body.Title,
		Description:  body.Description,
		Date:         body.Date,
		IsYearly:     body.IsYearly,
		ReminderDays: body.ReminderDays,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, anniversary)
}

func (h *AnniversaryHandler) List(w http.ResponseWriter, r *http.Request) {
	ident := requireRelationship(w, r)
	if ident == nil {
		return
	}
	anniversaries, err := h.anniversaries.List(r.Context(), ident.User.ID, ident.Relationship.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"anniversaries": anniversaries})
}

func (h *AnniversaryHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	ident := requireRelationship(w, r)
	if ident == nil {
		return
	}
	anniversaries, err := h.anniversaries.Upcoming(r.Context(), ident.Relationship.ID, time.Now())
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"anniversaries": anniversaries})
}

func (h *AnniversaryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ident := requireIdentity(w, r)
	if ident == nil {
		return
	}
	if err := h.anniversaries.Delete(r.Context(), ident.User.ID, r.PathValue("id")); err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
