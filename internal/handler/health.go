package handler

import "net/http"

// Health handles GET /healthz. It reports liveness only; the store is not
// touched.
func (s *Server) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
