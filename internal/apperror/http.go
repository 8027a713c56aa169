package apperror

import (
	"errors"
	"net/http"

	"github.com/saulo-duarte/streaker/internal/config"
)

// RecomputeHeader flags responses whose derived streak values are stale.
const RecomputeHeader = "X-Streak-Recompute"

// Status maps an error to the HTTP status it should be rendered with.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Write renders err as {"error": msg}. Internal failures are logged and
// hidden behind a generic message.
func Write(w http.ResponseWriter, r *http.Request, err error) {
	log := config.WithContext(r.Context())
	status := Status(err)

	msg := err.Error()
	switch {
	case status == http.StatusInternalServerError:
		log.WithError(err).Error("Request failed")
		msg = "internal server error"
	case status == http.StatusNotFound:
		log.WithError(err).Warn("Resource not found")
	default:
		log.WithError(err).Info("Request rejected")
	}

	config.JSON(w, status, map[string]string{"error": msg})
}

// WriteResult renders v with status when err is nil or only a RecomputeError.
// In the latter case the primary write succeeded, so the result is still
// returned and the failure is flagged in the X-Streak-Recompute header.
func WriteResult(w http.ResponseWriter, r *http.Request, status int, v any, err error) {
	var re *RecomputeError
	if err != nil && !errors.As(err, &re) {
		Write(w, r, err)
		return
	}
	if re != nil {
		w.Header().Set(RecomputeHeader, "failed")
	}
	config.JSON(w, status, v)
}
