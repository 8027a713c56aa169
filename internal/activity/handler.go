package activity

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

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

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		log.Warn("User not authenticated")
		apperror.Write(w, r, err)
		return
	}

	var dto CreateActivityDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Warn("Invalid request body")
		apperror.Write(w, r, apperror.Validation("invalid request body"))
		return
	}

	a, err := h.service.LogActivity(r.Context(), userID, dto)
	apperror.WriteResult(w, r, http.StatusCreated, a, err)
}

func (h *Handler) ListRecent(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	days, err := intQuery(r, "days", DefaultRecentDays)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	activities, err := h.service.ListRecent(r.Context(), userID, days)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, activities)
}

func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	page, err := intQuery(r, "page", 1)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	limit, err := intQuery(r, "limit", DefaultPageLimit)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	resp, err := h.service.ListAll(r.Context(), userID, page, limit)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, resp)
}

func (h *Handler) EditItem(w http.ResponseWriter, r *http.Request) {
	userID, id, index, err := itemParams(r)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	var dto EditItemDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		config.WithContext(r.Context()).WithError(err).Warn("Invalid request body")
		apperror.Write(w, r, apperror.Validation("invalid request body"))
		return
	}

	a, err := h.service.EditItem(r.Context(), userID, id, index, dto)
	apperror.WriteResult(w, r, http.StatusOK, a, err)
}

func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	userID, id, index, err := itemParams(r)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	a, err := h.service.DeleteItem(r.Context(), userID, id, index)
	apperror.WriteResult(w, r, http.StatusOK, DeleteItemResponse{Activity: a, RecordDeleted: a == nil}, err)
}

func (h *Handler) ToggleItem(w http.ResponseWriter, r *http.Request) {
	userID, id, index, err := itemParams(r)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	a, err := h.service.ToggleItem(r.Context(), userID, id, index)
	apperror.WriteResult(w, r, http.StatusOK, a, err)
}

func (h *Handler) CurrentStreak(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	n, err := h.service.CurrentStreak(r.Context(), userID)
	apperror.WriteResult(w, r, http.StatusOK, StreakResponse{Streak: n}, err)
}

func (h *Handler) LongestStreak(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	n, err := h.service.LongestStreak(r.Context(), userID)
	apperror.WriteResult(w, r, http.StatusOK, StreakResponse{Streak: n}, err)
}

func (h *Handler) CategoryStats(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	stats, err := h.service.CategoryStats(r.Context(), userID)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, stats)
}

func (h *Handler) CategoryStreak(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	n, err := h.service.CategoryStreak(r.Context(), userID, r.URL.Query().Get("category"))
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, StreakResponse{Streak: n})
}

func itemParams(r *http.Request) (uuid.UUID, uuid.UUID, int, error) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		return uuid.Nil, uuid.Nil, 0, err
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, 0, apperror.Validation("invalid activity id")
	}
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		return uuid.Nil, uuid.Nil, 0, apperror.Validation("invalid item index")
	}
	return userID, id, index, nil
}

func intQuery(r *http.Request, key string, def int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperror.Validation("%s must be an integer", key)
	}
	return n, nil
}
