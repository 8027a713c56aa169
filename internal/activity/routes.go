package activity

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.ListRecent)
	r.Get("/all", h.ListAll)

	r.Get("/streak", h.CurrentStreak)
	r.Get("/longest-streak", h.LongestStreak)
	r.Get("/category-stats", h.CategoryStats)
	r.Get("/category-streak", h.CategoryStreak)

	r.Put("/{id}/items/{index}", h.EditItem)
	r.Delete("/{id}/items/{index}", h.DeleteItem)
	r.Patch("/{id}/items/{index}/toggle", h.ToggleItem)
	return r
}
