package user

import (
	"net/http"

	"github.com/saulo-duarte/streaker/internal/apperror"
	"github.com/saulo-duarte/streaker/internal/auth"
	"github.com/saulo-duarte/streaker/internal/config"
)

type Handler struct {
	repo UserRepository
}

func NewHandler(repo UserRepository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		config.WithContext(r.Context()).Warn("User not authenticated")
		apperror.Write(w, r, err)
		return
	}

	u, err := h.repo.FindByID(r.Context(), userID)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	config.JSON(w, http.StatusOK, u)
}
