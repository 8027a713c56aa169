package goal

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

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

	var dto CreateGoalDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Warn("Invalid request body")
		apperror.Write(w, r, apperror.Validation("invalid request body"))
		return
	}

	g, err := h.service.Create(r.Context(), userID, dto)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusCreated, g)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	goals, err := h.service.List(r.Context(), userID, r.URL.Query().Get("status"))
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	if goals == nil {
		goals = []Goal{}
	}
	config.JSON(w, http.StatusOK, goals)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, id, err := goalParams(r)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	g, err := h.service.Get(r.Context(), userID, id)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, g)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID, id, err := goalParams(r)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	var dto UpdateGoalDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		config.WithContext(r.Context()).WithError(err).Warn("Invalid request body")
		apperror.Write(w, r, apperror.Validation("invalid request body"))
		return
	}

	g, err := h.service.Update(r.Context(), userID, id, dto)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, g)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, id, err := goalParams(r)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, MessageResponse{Message: "Goal deleted successfully"})
}

func (h *Handler) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	userID, id, err := goalParams(r)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	// An empty body means a single increment.
	var dto ProgressDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil && !errors.Is(err, io.EOF) {
		config.WithContext(r.Context()).WithError(err).Warn("Invalid request body")
		apperror.Write(w, r, apperror.Validation("invalid request body"))
		return
	}
	incrementBy := 1
	if dto.IncrementBy != nil {
		incrementBy = *dto.IncrementBy
	}

	g, err := h.service.IncrementProgress(r.Context(), userID, id, incrementBy)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, g)
}

func (h *Handler) Progress(w http.ResponseWriter, r *http.Request) {
	userID, id, err := goalParams(r)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	logs, err := h.service.ProgressHistory(r.Context(), userID, id)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	if logs == nil {
		logs = []ProgressLog{}
	}
	config.JSON(w, http.StatusOK, logs)
}

func (h *Handler) CheckStatus(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.CheckStatus)
}

func (h *Handler) Pause(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.Pause)
}

func (h *Handler) Resume(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.Resume)
}

func (h *Handler) transition(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, userID, id uuid.UUID) (*Goal, error)) {
	userID, id, err := goalParams(r)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}

	g, err := fn(r.Context(), userID, id)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusOK, g)
}

func (h *Handler) Templates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.service.Templates(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	if templates == nil {
		templates = []Template{}
	}
	config.JSON(w, http.StatusOK, templates)
}

func (h *Handler) CreateFromTemplate(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		log.Warn("User not authenticated")
		apperror.Write(w, r, err)
		return
	}

	var dto CreateFromTemplateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		log.WithError(err).Warn("Invalid request body")
		apperror.Write(w, r, apperror.Validation("invalid request body"))
		return
	}

	g, err := h.service.CreateFromTemplate(r.Context(), userID, dto)
	if err != nil {
		apperror.Write(w, r, err)
		return
	}
	config.JSON(w, http.StatusCreated, g)
}

func goalParams(r *http.Request) (uuid.UUID, uuid.UUID, error) {
	userID, err := auth.UserIDFromContext(r.Context())
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, apperror.Validation("invalid goal id")
	}
	return userID, id, nil
}
