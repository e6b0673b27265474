package common

import (
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StoreIDParam reads {id} from the route and rejects anything that is not an
// ObjectID hex string. It writes the 400 response itself when ok is false.
func StoreIDParam(logger *log.Logger, w http.ResponseWriter, r *http.Request) (string, bool) {
	idParam := strings.TrimSpace(chi.URLParam(r, "id"))
	if idParam == "" {
		WriteJSON(logger, w, http.StatusBadRequest, map[string]string{"error": "store id is required"})
		return "", false
	}
	objectID, err := primitive.ObjectIDFromHex(idParam)
	if err != nil {
		WriteJSON(logger, w, http.StatusBadRequest, map[string]string{"error": "invalid store id"})
		return "", false
	}
	return objectID.Hex(), true
}
