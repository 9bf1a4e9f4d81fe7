// Package compat gates availability requests on the embed's declared
// payload schema version.
//
// Storefront embed scripts update on the shop's theme cadence, not ours, so
// any deployed service must expect embeds several versions behind. Each
// embed declares itself with a Widget-Agent header; the gate is tolerant
// where a negotiation protocol would be strict. Embeds that predate the
// header send nothing and get current-version behavior, and malformed
// headers are logged and ignored. Only an embed declaring a schema newer
// than this service speaks is refused, since it would render fields the
// payload does not carry.
package compat

import "context"

// WidgetAgentHeader is the RFC 8941 dictionary header embeds send:
//
//	Widget-Agent: embed="instock-widget", version="2.3.0"
const WidgetAgentHeader = "Widget-Agent"

// CurrentSchemaVersion is the availability payload schema this service
// produces.
const CurrentSchemaVersion = "2.4.0"

// MinSupportedVersion is the oldest embed schema the current payload still
// renders faithfully. Older embeds are served but flagged deprecated so shop
// owners see the upgrade nudge in the admin.
const MinSupportedVersion = "1.2.0"

// Agent identifies a parsed Widget-Agent header.
type Agent struct {
	// Embed is the embed script name, e.g. "instock-widget". Informational.
	Embed string

	// Version is the payload schema version the embed renders.
	Version string
}

// Context is the result of the compatibility check, stored in the request
// context for availability handlers. A nil Context means the embed sent no
// usable Widget-Agent header and gets current-version behavior.
type Context struct {
	Agent Agent

	// Deprecated is set when the embed's schema is older than
	// MinSupportedVersion. Handlers surface it in response metadata.
	Deprecated bool
}

// contextKey is the type for context values to avoid collisions.
type contextKey string

const compatContextKey contextKey = "widget.compat"

// NewContext returns a copy of ctx carrying the compatibility result.
func NewContext(ctx context.Context, c *Context) context.Context {
	return context.WithValue(ctx, compatContextKey, c)
}

// FromContext retrieves the compatibility result from the request context.
// Returns nil if the gate was skipped or the embed sent no header.
func FromContext(ctx context.Context) *Context {
	v := ctx.Value(compatContextKey)
	if v == nil {
		return nil
	}
	return v.(*Context)
}
