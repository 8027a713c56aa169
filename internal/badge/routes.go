package badge

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.ListEarned)
	r.Get("/all", h.ListAll)
	r.Post("/check", h.Check)

	return r
}
