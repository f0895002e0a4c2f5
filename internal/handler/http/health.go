package http

import (
	"net/http"
)

// health reports service liveness. It requires no authentication, has no
// side effects, and always returns the success envelope.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	h.success(w, map[string]string{"status": "ok"})
}
