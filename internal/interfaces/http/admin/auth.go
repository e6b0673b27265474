package admin

import (
	"net/http"

	"github.com/sngm3741/delivery-availability/api/internal/interfaces/http/common"
)

// authVerifyHandler echoes the operator principal so the admin UI can check its token.
func (h *Handler) authVerifyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteJSON(h.logger, w, http.StatusUnauthorized, map[string]string{"error": "missing operator identity"})
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, map[string]any{
			"status": "ok",
			"user":   user,
		})
	}
}
