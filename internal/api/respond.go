package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"gorm.io/gorm"

	"lovetasks/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// respondError maps service failures onto HTTP status codes. Every
// precondition violation stays a 4xx with its message intact so the client
// can explain the denial.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, service.ErrNotCreator),
		errors.Is(err, service.ErrNotReviewer),
		errors.Is(err, service.ErrNotRelationshipMember),
		errors.Is(err, service.ErrNotOwner),
		errors.Is(err, service.ErrNotReceiver):
		writeError(w, http.StatusForbidden, err)
	case errors.Is(err, service.ErrInvalidState),
		errors.Is(err, service.ErrTaskUnderReview),
		errors.Is(err, service.ErrNotCompleted),
		errors.Is(err, service.ErrAlreadySent),
		errors.Is(err, service.ErrAlreadyLinked),
		errors.Is(err, service.ErrDuplicateRequest),
		errors.Is(err, service.ErrRequestClosed),
		errors.Is(err, service.ErrNoActiveRelationship):
		writeError(w, http.StatusConflict, err)
	case errors.Is(err, service.ErrInsufficientPoints):
		writeError(w, http.StatusPaymentRequired, err)
	case errors.Is(err, service.ErrTitleRequired),
		errors.Is(err, service.ErrMissingComment),
		errors.Is(err, service.ErrPointsOutOfRange),
		errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrSelfRequest),
		errors.Is(err, service.ErrNotPartner),
		errors.Is(err, service.ErrUsernameRequired),
		errors.Is(err, service.ErrEmailRequired),
		errors.Is(err, service.ErrDateRequired):
		writeError(w, http.StatusUnprocessableEntity, err)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}

func decodeBody(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}
