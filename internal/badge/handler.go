package badge

import (
	"net/http"

	"github.com/saulo-duarte/streaker/internal/apperror"
	"github.com/saulo-duarte/streaker/internal/auth"
	"github.com/saulo-duarte/streaker/internal/config"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) ListEarned(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		config.WithContext(r.Context()).Warn("User not authenticated")
		apperror.Write(w, r, err)
		return
	}

	badges, err := h.service.ListEarned(r.Context(), userID)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, badges)
}

func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	badges, err := h.service.ListAll(r.Context())
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	if badges == nil {
		badges = []Badge{}
	}
	config.JSON(w, http.StatusOK, badges)
}

func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		config.WithContext(r.Context()).Warn("User not authenticated")
		apperror.Write(w, r, err)
		return
	}

	resp, err := h.service.Check(r.Context(), userID)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, resp)
}
