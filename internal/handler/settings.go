package handler

import (
	"net/http"

	"go.uber.org/zap"
)

// handleGetSettings returns the shop's resolved widget configuration.
// GET /api/v1/settings?shop=...
func (h *Handler) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.provider.Settings(r.Context(), r.URL.Query().Get("shop"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeData(w, r, http.StatusOK, cfg)
}

// handlePutSettings merges the request body's keys into the persisted blob
// and returns the re-resolved configuration. Keys the body does not mention,
// including ones this version does not know, stay untouched.
// PUT /api/v1/settings?shop=...
func (h *Handler) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	shop := r.URL.Query().Get("shop")

	var edits map[string]any
	if err := decodeJSON(r, &edits); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.logger.Info("saving widget settings",
		zap.String("shop", shop),
		zap.Int("keys", len(edits)),
	)

	cfg, err := h.provider.SaveSettings(ctx, shop, edits)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeData(w, r, http.StatusOK, cfg)
}
