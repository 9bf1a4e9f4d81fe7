package compat

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"instock-widget/internal/middleware"
	"instock-widget/internal/model"
)

// Middleware creates HTTP middleware that runs the compatibility gate on
// availability requests. The parsed Context is stored in the request context
// for handlers; every other route passes through untouched.
//
// Settings routes are deliberately not gated: they serve the shop admin UI,
// which ships with the app and is always current.
func Middleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !isGatedPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get(WidgetAgentHeader)
			if header == "" {
				// Embeds older than the header send nothing.
				next.ServeHTTP(w, r)
				return
			}

			agent, err := ParseWidgetAgent(header)
			if err != nil {
				logger.Warn("ignoring malformed Widget-Agent header",
					zap.String("header", header),
					zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			deprecated, err := CheckVersion(agent.Version)
			if err != nil {
				var apiErr *model.APIError
				if errors.As(err, &apiErr) {
					writeVersionError(w, r, apiErr)
					return
				}
				logger.Warn("ignoring non-semver Widget-Agent version",
					zap.String("version", agent.Version),
					zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			if deprecated {
				logger.Warn("serving deprecated embed",
					zap.String("embed", agent.Embed),
					zap.String("version", agent.Version),
					zap.String("min_supported", MinSupportedVersion))
			}

			ctx := NewContext(r.Context(), &Context{Agent: agent, Deprecated: deprecated})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// isGatedPath returns true for routes whose payload shape the embed renders.
func isGatedPath(path string) bool {
	return strings.HasPrefix(path, "/api/v1/availability")
}

// writeVersionError writes the standard error envelope. The gate rejects
// before the handler runs, so it cannot reuse the handler's writers.
func writeVersionError(w http.ResponseWriter, r *http.Request, apiErr *model.APIError) {
	resp := struct {
		OK    bool `json:"ok"`
		Error struct {
			Kind    string `json:"kind"`
			Message string `json:"message"`
		} `json:"error"`
		Meta map[string]string `json:"meta,omitempty"`
	}{}
	resp.Error.Kind = apiErr.Kind
	resp.Error.Message = apiErr.Message
	if id := middleware.RequestIDFrom(r.Context()); id != "" {
		resp.Meta = map[string]string{"requestId": id}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.StatusCode)
	json.NewEncoder(w).Encode(resp)
}
