// Package availability defines the provider interface the HTTP and MCP
// surfaces are written against. The Shopify adapter implements it; tests use
// the Mock.
package availability

import (
	"context"

	"instock-widget/internal/model"
)

// Request identifies one availability lookup: the shop the widget is
// embedded on and the product variant being viewed. VariantID is the numeric
// id Liquid templates expose; the provider builds the platform gid from it.
type Request struct {
	Shop      string `json:"shop"`
	VariantID string `json:"variantId"`
}

// Provider abstracts the platform behind the widget operations.
//
// Errors returned are *model.APIError values classified per the service's
// taxonomy; surfaces map them onto the response envelope without inspecting
// platform details.
type Provider interface {
	// LocationAvailability runs the full pipeline for one variant: fetch
	// inventory, settings and the delivery graph, resolve, aggregate,
	// decorate and sort. A delivery-profile failure degrades capability
	// flags to empty; an inventory or settings failure fails the request.
	LocationAvailability(ctx context.Context, req *Request) (*model.AvailabilityPayload, error)

	// Settings returns the shop's resolved widget configuration.
	Settings(ctx context.Context, shop string) (*model.WidgetConfig, error)

	// SaveSettings merges the given edits into the persisted blob, writes it
	// back, and returns the re-resolved configuration. Keys the current app
	// version does not know stay in the blob untouched.
	SaveSettings(ctx context.Context, shop string, edits map[string]any) (*model.WidgetConfig, error)
}
