package activity_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saulo-duarte/streaker/internal/activity"
	"github.com/saulo-duarte/streaker/internal/apperror"
	"github.com/saulo-duarte/streaker/internal/auth"
	"github.com/saulo-duarte/streaker/internal/streak"
)

func serve(t *testing.T, svc activity.Service, userID uuid.UUID, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := auth.WithClaims(req.Context(), &auth.Claims{UserID: userID.String()})
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	r.Mount("/activities", activity.Routes(activity.NewHandler(svc)))

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandlerCreateAndStreak(t *testing.T) {
	userID := uuid.New()
	repo, _, svc := setup()

	rec := serve(t, svc, userID, http.MethodPost, "/activities", `{"date":"2024-01-03","description":"run","category":"Exercise"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created activity.Activity
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, []string{"run"}, []string(created.Description))

	rec = serve(t, svc, userID, http.MethodPatch, "/activities/"+created.ID.String()+"/items/0/toggle", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, repo.records[created.ID].Completed[0])

	rec = serve(t, svc, userID, http.MethodGet, "/activities/streak", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"streak":1}`, rec.Body.String())

	rec = serve(t, svc, userID, http.MethodGet, "/activities/longest-streak", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"streak":1}`, rec.Body.String())
}

func TestHandlerErrors(t *testing.T) {
	userID := uuid.New()
	repo, _, svc := setup()
	seeded := repo.seed(userID, day(2024, 1, 3), streak.Item{Description: "x", Category: "General"})

	tests := []struct {
		name   string
		method string
		target string
		body   string
		status int
	}{
		{"BadBody", http.MethodPost, "/activities", `{`, http.StatusBadRequest},
		{"EmptyDescription", http.MethodPost, "/activities", `{"description":""}`, http.StatusBadRequest},
		{"BadID", http.MethodDelete, "/activities/nope/items/0", "", http.StatusBadRequest},
		{"BadIndex", http.MethodDelete, "/activities/" + seeded.ID.String() + "/items/x", "", http.StatusBadRequest},
		{"IndexOutOfRange", http.MethodDelete, "/activities/" + seeded.ID.String() + "/items/3", "", http.StatusBadRequest},
		{"UnknownActivity", http.MethodPatch, "/activities/" + uuid.NewString() + "/items/0/toggle", "", http.StatusNotFound},
		{"MissingCategory", http.MethodGet, "/activities/category-streak", "", http.StatusBadRequest},
		{"BadLimit", http.MethodGet, "/activities/all?limit=abc", "", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, svc, userID, tt.method, tt.target, tt.body)
			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}

func TestHandlerDeleteLastItem(t *testing.T) {
	userID := uuid.New()
	repo, _, svc := setup()
	seeded := repo.seed(userID, day(2024, 1, 3), streak.Item{Description: "x", Category: "General"})

	rec := serve(t, svc, userID, http.MethodDelete, "/activities/"+seeded.ID.String()+"/items/0", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"activity":null,"recordDeleted":true}`, rec.Body.String())
}

func TestHandlerFlagsRecomputeFailure(t *testing.T) {
	userID := uuid.New()
	repo, streaks, svc := setup()
	seeded := repo.seed(userID, day(2024, 1, 3), streak.Item{Description: "x", Category: "General"})
	streaks.failing = true

	rec := serve(t, svc, userID, http.MethodPatch, "/activities/"+seeded.ID.String()+"/items/0/toggle", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "failed", rec.Header().Get(apperror.RecomputeHeader))
}

func TestHandlerCategoryStats(t *testing.T) {
	userID := uuid.New()
	repo, _, svc := setup()
	repo.seed(userID, day(2024, 1, 3), streak.Item{Description: "run", Completed: true, Category: "Exercise"})

	rec := serve(t, svc, userID, http.MethodGet, "/activities/category-stats", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var stats map[string]streak.CategoryStat
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, streak.CategoryStat{Count: 1, Completed: 1, Streak: 1}, stats["Exercise"])
	assert.Len(t, stats, len(streak.KnownCategories))
}
