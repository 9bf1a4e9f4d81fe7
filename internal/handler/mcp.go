// MCP transport handler exposing the widget operations as tools, using the
// official MCP Go SDK. Intended for merchant-support agents: the tools act on
// the configured store, so none of them take a shop argument.
package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"instock-widget/internal/availability"
	"instock-widget/internal/model"
)

// === MCP Tool Input Types ===

// AvailabilityInput is the input schema for the get_location_availability
// tool.
type AvailabilityInput struct {
	VariantID string `json:"variantId" jsonschema:"numeric product variant id,required"`
}

// SettingsInput is the input schema for the get_widget_settings tool. The
// tool reads the configured store's settings and needs no arguments.
type SettingsInput struct{}

// UpdateSettingsInput is the input schema for the update_widget_settings
// tool.
type UpdateSettingsInput struct {
	Settings map[string]any `json:"settings" jsonschema:"settings keys to merge into the persisted configuration; omitted keys are left untouched,required"`
}

// NewMCPServer creates an MCP server with the widget tools registered.
// The server exposes the same operations as the REST API but via MCP protocol.
func (h *Handler) NewMCPServer() *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "instock-widget",
			Version: ServiceVersion,
		},
		&mcp.ServerOptions{
			Instructions: "In-stock widget backend for one Shopify store. " +
				"Use these tools to read per-location availability for a product variant " +
				"and to read or update the widget's merchant settings.",
		},
	)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_location_availability",
		Description: "Get per-location stock rows and the resolved widget configuration for a product variant.",
	}, h.mcpAvailability)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_widget_settings",
		Description: "Get the store's resolved widget settings.",
	}, h.mcpGetSettings)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_widget_settings",
		Description: "Merge the given keys into the store's widget settings and return the re-resolved configuration. Keys not mentioned are preserved.",
	}, h.mcpUpdateSettings)

	return server
}

// NewMCPHandler returns an HTTP handler for the MCP endpoint.
// Mount this at /mcp on your mux.
func (h *Handler) NewMCPHandler() http.Handler {
	server := h.NewMCPServer()
	return mcp.NewStreamableHTTPHandler(
		func(r *http.Request) *mcp.Server { return server },
		nil,
	)
}

// === Tool Handlers ===

func (h *Handler) mcpAvailability(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input AvailabilityInput,
) (*mcp.CallToolResult, *model.AvailabilityPayload, error) {
	payload, err := h.provider.LocationAvailability(ctx, &availability.Request{
		Shop:      h.store,
		VariantID: input.VariantID,
	})
	if err != nil {
		return nil, nil, h.mcpError(err)
	}

	return nil, payload, nil
}

func (h *Handler) mcpGetSettings(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input SettingsInput,
) (*mcp.CallToolResult, *model.WidgetConfig, error) {
	cfg, err := h.provider.Settings(ctx, h.store)
	if err != nil {
		return nil, nil, h.mcpError(err)
	}

	return nil, cfg, nil
}

func (h *Handler) mcpUpdateSettings(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input UpdateSettingsInput,
) (*mcp.CallToolResult, *model.WidgetConfig, error) {
	cfg, err := h.provider.SaveSettings(ctx, h.store, input.Settings)
	if err != nil {
		return nil, nil, h.mcpError(err)
	}

	return nil, cfg, nil
}

// mcpError converts provider errors to MCP-friendly errors, keeping the
// taxonomy kind as a prefix the agent can branch on.
func (h *Handler) mcpError(err error) error {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%s: %s", apiErr.Kind, apiErr.Message)
	}
	// Don't leak internal error details
	h.logger.Error("mcp internal error", zap.Error(err))
	return fmt.Errorf("internal error")
}
