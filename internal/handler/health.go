package handler

import (
	"net/http"
)

// handleHealth returns a simple health check response. Served outside the
// envelope and the rate limiter so probes stay cheap.
// GET /healthz
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Service: "instock-widget",
		Version: ServiceVersion,
	})
}

type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}
