package api

import (
	"net/http"

	"lovetasks/internal/service"
)

// PointsHandler exposes ledger reads. Ledger writes only happen as side
// effects of task approval and gift redemption.
type PointsHandler struct {
	points *service.PointsService
}

func NewPointsHandler(points *service.PointsService) *PointsHandler {
	return &PointsHandler{points: points}
}

func (h *PointsHandler) Balance(w http.ResponseWriter, r *http.Request) {
	ident := requireIdentity(w, r)
	if ident == nil {
		return
	}
	balance, err := h.points.CurrentBalance(r.Context(), ident.User.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"balance": balance})
}

func (h *PointsHandler) History(w http.ResponseWriter, r *http.Request) {
	ident := requireIdentity(w, r)
	if ident == nil {
		return
	}
	history, err := h.points.History(r.Context(), ident.User.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"history": history})
}
