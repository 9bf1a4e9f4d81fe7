package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"instock-widget/internal/model"
	"instock-widget/internal/transport"
)

// =============================================================================
// SHOPIFY ADMIN API CLIENT
// =============================================================================
//
// The widget talks to a single store's Admin GraphQL API:
//
//   POST https://{store}/admin/api/{version}/graphql.json
//   X-Shopify-Access-Token: {token}
//
// Error surfaces, in the order they appear:
//   1. Transport errors                       → UPSTREAM_ERROR
//   2. HTTP status >= 400 (401/403/404/429)   → parseError
//   3. HTTP 200 with a GraphQL errors array   → parseGraphQLErrors
//      (THROTTLED is the cost-based rate limit and maps to RATE_LIMITED)
//   4. Mutation userErrors                    → MISSING_INPUT
// =============================================================================

const (
	userAgent = "instock-widget/1.4"

	// deliveryProfilePageSize bounds the profiles fetch. Stores rarely have
	// more than a handful of profiles; 25 is the API's own default ceiling.
	deliveryProfilePageSize = 25
)

// Client is the Admin GraphQL API HTTP client for one store.
type Client struct {
	httpClient  *http.Client
	endpoint    string
	accessToken string
}

// NewClient creates an Admin API client.
// storeDomain is the myshopify domain, apiVersion the dated API version
// (e.g. "2026-01"), accessToken the offline Admin token.
func NewClient(storeDomain, apiVersion, accessToken string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport.NewUpstreamTransport(30 * time.Second),
		},
		endpoint:    fmt.Sprintf("https://%s/admin/api/%s/graphql.json", storeDomain, apiVersion),
		accessToken: accessToken,
	}
}

// VariantStock is the result of the combined availability query.
type VariantStock struct {
	// Snapshots are the variant's per-location inventory facts.
	Snapshots []model.InventorySnapshot

	// ShopID is the shop's global id, needed to address metafield writes.
	ShopID string

	// RawSettings is the untrusted settings blob, nil when the slot is unset.
	RawSettings []byte
}

// SettingsSlot is the shop settings metafield and its owner id.
type SettingsSlot struct {
	ShopID string
	Raw    []byte
}

// VariantAvailability fetches one variant's per-location inventory and the
// shop settings metafield in a single round trip.
func (c *Client) VariantAvailability(ctx context.Context, variantID string) (*VariantStock, error) {
	variables := map[string]any{
		"id":        variantGID(variantID),
		"namespace": metafieldNamespace,
		"key":       metafieldKey,
	}

	var data variantAvailabilityData
	if err := c.query(ctx, variantAvailabilityQuery, variables, &data); err != nil {
		return nil, err
	}

	if data.ProductVariant == nil {
		return nil, model.NewNotFoundError("variant")
	}

	return &VariantStock{
		Snapshots:   snapshotsFromLevels(data.ProductVariant.InventoryItem.InventoryLevels.List()),
		ShopID:      data.Shop.ID,
		RawSettings: rawSettings(data.Shop),
	}, nil
}

// DeliveryProfiles fetches the shipping configuration graph. Member location
// ids come back reduced to their numeric form.
func (c *Client) DeliveryProfiles(ctx context.Context) ([]model.DeliveryProfile, error) {
	variables := map[string]any{
		"first": deliveryProfilePageSize,
	}

	var data deliveryProfilesData
	if err := c.query(ctx, deliveryProfilesQuery, variables, &data); err != nil {
		return nil, err
	}

	profiles := data.DeliveryProfiles.List()
	normalizeProfileLocationIDs(profiles)
	return profiles, nil
}

// Settings fetches the settings metafield and the shop id that owns it.
func (c *Client) Settings(ctx context.Context) (*SettingsSlot, error) {
	variables := map[string]any{
		"namespace": metafieldNamespace,
		"key":       metafieldKey,
	}

	var data shopSettingsData
	if err := c.query(ctx, shopSettingsQuery, variables, &data); err != nil {
		return nil, err
	}

	return &SettingsSlot{ShopID: data.Shop.ID, Raw: rawSettings(data.Shop)}, nil
}

// SetSettingsMetafield writes the settings blob back to the shop's slot.
// Mutation userErrors surface as MISSING_INPUT since they mean the merged
// value was rejected, not that the platform failed.
func (c *Client) SetSettingsMetafield(ctx context.Context, shopID string, value []byte) error {
	variables := map[string]any{
		"metafields": []map[string]any{{
			"ownerId":   shopID,
			"namespace": metafieldNamespace,
			"key":       metafieldKey,
			"type":      "json",
			"value":     string(value),
		}},
	}

	var data setSettingsData
	if err := c.query(ctx, setSettingsMutation, variables, &data); err != nil {
		return err
	}

	if userErrs := data.MetafieldsSet.UserErrors; len(userErrs) > 0 {
		messages := make([]string, len(userErrs))
		for i, ue := range userErrs {
			messages[i] = ue.Message
		}
		return model.NewMissingInputError("settings", strings.Join(messages, "; "))
	}

	return nil
}

// === HTTP Helpers ===

// query executes one GraphQL document and decodes data into result.
func (c *Client) query(ctx context.Context, document string, variables map[string]any, result any) error {
	req, err := c.newRequest(ctx, document, variables)
	if err != nil {
		return fmt.Errorf("creating graphql request: %w", err)
	}
	return c.do(req, result)
}

// newRequest creates the POST request with access-token authentication.
func (c *Client) newRequest(ctx context.Context, document string, variables map[string]any) (*http.Request, error) {
	body, err := json.Marshal(&graphqlRequest{Query: document, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Shopify-Access-Token", c.accessToken)

	return req, nil
}

// do executes the request and decodes the response envelope.
func (c *Client) do(req *http.Request, result any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.NewUpstreamError("Shopify", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return c.parseError(resp.StatusCode, body)
	}

	var envelope graphqlResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}

	if len(envelope.Errors) > 0 {
		return c.parseGraphQLErrors(envelope.Errors)
	}

	if result != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, result); err != nil {
			return fmt.Errorf("parsing response data: %w", err)
		}
	}

	return nil
}

// parseError converts HTTP-level Admin API failures to model.APIError.
func (c *Client) parseError(statusCode int, body []byte) error {
	switch statusCode {
	case 401, 403:
		return model.NewUpstreamError("Shopify",
			fmt.Errorf("access token rejected (status %d)", statusCode))
	case 404:
		return model.NewUpstreamError("Shopify",
			fmt.Errorf("unknown store or API version (status %d)", statusCode))
	case 429:
		return model.NewRateLimitError("Shopify Admin API")
	default:
		return model.NewUpstreamError("Shopify",
			fmt.Errorf("status %d: %s", statusCode, snippet(body)))
	}
}

// parseGraphQLErrors converts GraphQL-level failures (HTTP 200) to
// model.APIError.
func (c *Client) parseGraphQLErrors(errs []graphqlError) error {
	messages := make([]string, 0, len(errs))
	for _, e := range errs {
		if e.Extensions.Code == "THROTTLED" {
			return model.NewRateLimitError("Shopify Admin API")
		}
		messages = append(messages, e.Message)
	}
	return model.NewUpstreamError("Shopify",
		fmt.Errorf("graphql: %s", strings.Join(messages, "; ")))
}

// snippet bounds an error body for logging. 4xx pages can be HTML.
func snippet(body []byte) string {
	const max = 200
	s := strings.TrimSpace(string(body))
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
