package api

import (
	"net/http"

	"lovetasks/internal/service"
)

// GiftHandler exposes the catalog, redemption and gift transfer.
type GiftHandler struct {
	gifts *service.GiftService
}

func NewGiftHandler(gifts *service.GiftService) *GiftHandler {
	return &GiftHandler{gifts: gifts}
}

func (h *GiftHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	gifts, err := h.gifts.Catalog(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"gifts": gifts})
}

func (h *GiftHandler) Redeem(w http.ResponseWriter, r *http.Request) {
	ident := requireRelationship(w, r)
	if ident == nil {
		return
	}
	redeemed, err := h.gifts.Redeem(r.Context(), ident.User.ID, ident.Relationship.ID, r.PathValue("id"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, redeemed)
}

func (h *GiftHandler) Send(w http.ResponseWriter, r *http.Request) {
	ident := requireRelationship(w, r)
	if ident == nil {
		return
	}
	redeemed, err := h.gifts.Transfer(r.Context(), r.PathValue("id"), ident.User.ID, ident.PartnerID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, redeemed)
}

func (h *GiftHandler) Unsent(w http.ResponseWriter, r *http.Request) {
	ident := requireRelationship(w, r)
	if ident == nil {
		return
	}
	redeemed, err := h.gifts.MyUnsentGifts(r.Context(), ident.User.ID, ident.Relationship.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"redeemedGifts": redeemed})
}

func (h *GiftHandler) Received(w http.ResponseWriter, r *http.Request) {
	ident := requireRelationship(w, r)
	if ident == nil {
		return
	}
	redeemed, err := h.gifts.GiftsReceivedBy(r.Context(), ident.User.ID, ident.Relationship.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"receivedGifts": redeemed})
}
