package goal

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/templates", h.Templates)
	r.Post("/from-template", h.CreateFromTemplate)

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)

	r.Patch("/{id}/progress", h.UpdateProgress)
	r.Get("/{id}/progress", h.Progress)
	r.Post("/{id}/check-status", h.CheckStatus)
	r.Post("/{id}/pause", h.Pause)
	r.Post("/{id}/resume", h.Resume)

	return r
}
