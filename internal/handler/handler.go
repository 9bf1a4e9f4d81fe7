// Package handler serves the widget HTTP API, the CSV export, and the MCP
// tool surface. Every response body is the uniform envelope except the CSV
// export and the health probe.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"instock-widget/internal/availability"
	"instock-widget/internal/compat"
	"instock-widget/internal/middleware"
	"instock-widget/internal/model"
)

// ServiceVersion is reported by the health endpoint and the MCP server.
const ServiceVersion = "1.4.2"

// Handler holds dependencies for the HTTP and MCP surfaces.
type Handler struct {
	provider availability.Provider
	store    string
	logger   *zap.Logger
}

// New creates a Handler. store is the configured myshopify domain; the MCP
// tools act on it implicitly, while the HTTP routes validate it against the
// shop query parameter.
func New(provider availability.Provider, store string, logger *zap.Logger) *Handler {
	return &Handler{
		provider: provider,
		store:    store,
		logger:   logger,
	}
}

// RegisterRoutes registers all HTTP routes with the given ServeMux.
// Uses Go 1.22+ method routing patterns.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Storefront widget endpoints
	mux.HandleFunc("GET /api/v1/availability", h.handleAvailability)
	mux.HandleFunc("GET /api/v1/availability/export", h.handleAvailabilityExport)

	// Admin settings endpoints
	mux.HandleFunc("GET /api/v1/settings", h.handleGetSettings)
	mux.HandleFunc("PUT /api/v1/settings", h.handlePutSettings)

	// MCP transport - JSON-RPC endpoint using official MCP SDK
	mux.Handle("/mcp", h.NewMCPHandler())

	// Health check
	mux.HandleFunc("GET /healthz", h.handleHealth)
}

// === Response envelope ===

// envelope is the uniform response body: exactly one of Data or Error is
// set, and Meta always carries the request id when the middleware supplied
// one.
type envelope struct {
	OK    bool       `json:"ok"`
	Data  any        `json:"data,omitempty"`
	Error *errorBody `json:"error,omitempty"`
	Meta  meta       `json:"meta"`
}

type errorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type meta struct {
	RequestID    string `json:"requestId,omitempty"`
	Deprecated   bool   `json:"deprecated,omitempty"`
	MinSupported string `json:"minSupported,omitempty"`
}

// buildMeta collects per-request envelope metadata from the middleware
// context: the request id, and the deprecation flag when the compat gate
// classified the embed as older than the supported floor.
func buildMeta(r *http.Request) meta {
	m := meta{RequestID: middleware.RequestIDFrom(r.Context())}
	if cc := compat.FromContext(r.Context()); cc != nil && cc.Deprecated {
		m.Deprecated = true
		m.MinSupported = compat.MinSupportedVersion
	}
	return m
}

// writeData sends a success envelope with the given status code.
func (h *Handler) writeData(w http.ResponseWriter, r *http.Request, status int, data any) {
	h.writeJSON(w, status, envelope{OK: true, Data: data, Meta: buildMeta(r)})
}

// writeError sends an error envelope, extracting kind/status from APIError if
// present. Uses errors.As() to unwrap error chains (e.g. fmt.Errorf wrapping).
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		apiErr = model.NewInternalError(err)
		h.logger.Error("internal error", zap.Error(err))
	}

	h.writeJSON(w, apiErr.StatusCode, envelope{
		OK:    false,
		Error: &errorBody{Kind: apiErr.Kind, Message: apiErr.Message},
		Meta:  buildMeta(r),
	})
}

// writeJSON sends a JSON response with the given status code.
func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
	}
}

// MaxRequestBodySize limits JSON request bodies to 1MB to prevent DoS.
const MaxRequestBodySize = 1 << 20 // 1MB

// decodeJSON reads JSON from request body into v.
// Limits body size to MaxRequestBodySize to prevent memory exhaustion.
// Returns an APIError if decoding fails.
func decodeJSON(r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, MaxRequestBodySize)

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		// Don't expose internal error details to client
		return model.NewMissingInputError("body", "invalid JSON")
	}
	return nil
}
