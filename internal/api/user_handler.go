package api

import (
	"net/http"

	"lovetasks/internal/service"
)

// UserHandler exposes the user registry.
type UserHandler struct {
	users *service.UserService
}

func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

type registerBody struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var body registerBody
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	user, err := h.users.Register(r.Context(), body.Username, body.Email, body.DisplayName)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (h *UserHandler) Search(w http.ResponseWriter, r *http.Request) {
	exclude := r.Header.Get("X-User-ID")
	users, err := h.users.Search(r.Context(), r.URL.Query().Get("q"), exclude)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"users": users})
}
