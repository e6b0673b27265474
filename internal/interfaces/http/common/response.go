package common

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/sngm3741/delivery-availability/api/internal/availability"
)

// WriteJSON serializes payload to JSON with status and logs on failure.
func WriteJSON(logger *log.Logger, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Printf("json encode failed: %v", err)
	}
}

// WriteError maps service errors onto status codes. Validation errors carry the
// offending field; unexpected errors are logged with op and hidden from the client.
func WriteError(logger *log.Logger, w http.ResponseWriter, op string, err error) {
	var verr *availability.ValidationError
	switch {
	case errors.As(err, &verr):
		body := map[string]string{"error": verr.Message}
		if verr.Field != "" {
			body["field"] = verr.Field
		}
		WriteJSON(logger, w, http.StatusBadRequest, body)
	case errors.Is(err, availability.ErrValidation):
		WriteJSON(logger, w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, availability.ErrStoreNotFound):
		WriteJSON(logger, w, http.StatusNotFound, map[string]string{"error": "store not found"})
	default:
		if logger != nil {
			logger.Printf("%s failed: %v", op, err)
		}
		WriteJSON(logger, w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}
