package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"instock-widget/internal/availability"
	"instock-widget/internal/capability"
	"instock-widget/internal/model"
	"instock-widget/internal/settings"
	"instock-widget/internal/stock"
)

// =============================================================================
// SHOPIFY PROVIDER
// =============================================================================
//
// Implements availability.Provider for one store.
//
// Availability flow:
//   1. Validate shop + variant id (reject before spending an upstream call)
//   2. Fetch concurrently:
//        a. variant inventory + settings metafield (one query)
//        b. delivery profile graph (TTL cached)
//   3. Resolve settings → aggregate capabilities → decorate → sort
//
// Key design decisions:
//   - A delivery graph failure degrades to rows without capability badges;
//     an inventory failure fails the request. Stock numbers are the product,
//     badges are trim.
//   - The shop parameter must match the configured store. This service is
//     deployed per store; a mismatch is indistinguishable from an unknown
//     shop, hence NOT_FOUND rather than a validation error.
// =============================================================================

// Config holds the provider configuration for one store.
type Config struct {
	// StoreDomain is the myshopify domain, e.g. "acme.myshopify.com".
	StoreDomain string

	// APIVersion is the dated Admin API version, e.g. "2026-01".
	APIVersion string

	// AccessToken is the offline Admin API token.
	AccessToken string

	// ProfileTTL overrides DefaultProfileTTL when positive.
	ProfileTTL time.Duration

	Logger *zap.Logger
}

// Adapter implements availability.Provider backed by the Admin GraphQL API.
type Adapter struct {
	client   *Client
	shop     string
	logger   *zap.Logger
	profiles *profileCache
}

var _ availability.Provider = (*Adapter)(nil)

// New creates a Shopify-backed provider.
func New(cfg Config) (*Adapter, error) {
	if cfg.StoreDomain == "" {
		return nil, fmt.Errorf("store domain is required")
	}
	if cfg.APIVersion == "" {
		return nil, fmt.Errorf("API version is required")
	}
	if cfg.AccessToken == "" {
		return nil, fmt.Errorf("access token is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Adapter{
		client:   NewClient(cfg.StoreDomain, cfg.APIVersion, cfg.AccessToken),
		shop:     strings.ToLower(strings.TrimSpace(cfg.StoreDomain)),
		logger:   logger,
		profiles: newProfileCache(cfg.ProfileTTL),
	}, nil
}

// LocationAvailability runs the full pipeline for one variant.
func (a *Adapter) LocationAvailability(ctx context.Context, req *availability.Request) (*model.AvailabilityPayload, error) {
	if err := a.checkShop(req.Shop); err != nil {
		return nil, err
	}

	variantID := strings.TrimSpace(req.VariantID)
	if variantID == "" {
		return nil, model.NewMissingInputError("variantId", "required")
	}
	if !isNumericID(variantID) {
		return nil, model.NewMissingInputError("variantId", "must be a numeric variant id")
	}

	var (
		inv      *VariantStock
		profiles []model.DeliveryProfile
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		data, err := a.client.VariantAvailability(gctx, variantID)
		if err != nil {
			return err
		}
		inv = data
		return nil
	})
	g.Go(func() error {
		// Never returns an error: a missing graph costs badges, not rows.
		profiles = a.deliveryProfiles(gctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return a.assemble(inv, profiles), nil
}

// Settings returns the shop's resolved widget configuration.
func (a *Adapter) Settings(ctx context.Context, shop string) (*model.WidgetConfig, error) {
	if err := a.checkShop(shop); err != nil {
		return nil, err
	}

	slot, err := a.client.Settings(ctx)
	if err != nil {
		return nil, err
	}

	return a.resolveRaw(slot.Raw), nil
}

// SaveSettings merges edits over the persisted blob, writes it back, and
// returns the re-resolved configuration. Keys this service version does not
// know survive the round trip untouched.
func (a *Adapter) SaveSettings(ctx context.Context, shop string, edits map[string]any) (*model.WidgetConfig, error) {
	if err := a.checkShop(shop); err != nil {
		return nil, err
	}
	if len(edits) == 0 {
		return nil, model.NewMissingInputError("settings", "no edits provided")
	}

	slot, err := a.client.Settings(ctx)
	if err != nil {
		return nil, err
	}

	existing, err := settings.ParseRaw(slot.Raw)
	if err != nil {
		// A corrupt slot must not brick the admin UI; the write replaces it.
		a.logger.Warn("existing settings unreadable, replacing",
			zap.Error(err))
		existing = nil
	}

	merged := settings.MergeRaw(existing, edits)
	value, err := json.Marshal(merged)
	if err != nil {
		return nil, model.NewInternalError(fmt.Errorf("encoding merged settings: %w", err))
	}

	if err := a.client.SetSettingsMetafield(ctx, slot.ShopID, value); err != nil {
		return nil, err
	}

	return settings.Resolve(merged), nil
}

// checkShop validates the shop parameter against the configured store.
func (a *Adapter) checkShop(shop string) error {
	shop = strings.TrimSpace(shop)
	if shop == "" {
		return model.NewMissingInputError("shop", "required")
	}
	if !strings.EqualFold(shop, a.shop) {
		return model.NewNotFoundError("shop")
	}
	return nil
}

// assemble runs the transform pipeline over fetched inputs.
func (a *Adapter) assemble(inv *VariantStock, profiles []model.DeliveryProfile) *model.AvailabilityPayload {
	cfg := a.resolveRaw(inv.RawSettings)
	caps := capability.Aggregate(profiles)

	rows := stock.Decorate(inv.Snapshots, cfg.Locations, caps, cfg.PinnedLocationID, cfg.RegionGroups)
	rows = stock.Sort(rows, model.ParseSortMode(cfg.Sort.Mode), cfg.PinnedLocationID, cfg.Thresholds)

	return &model.AvailabilityPayload{
		Config:    cfg,
		Locations: rows,
	}
}

// resolveRaw parses and resolves a settings blob, falling back to defaults
// when the blob is unreadable.
func (a *Adapter) resolveRaw(blob []byte) *model.WidgetConfig {
	raw, err := settings.ParseRaw(blob)
	if err != nil {
		a.logger.Warn("settings metafield unreadable, serving defaults",
			zap.Error(err))
		raw = nil
	}
	return settings.Resolve(raw)
}

// deliveryProfiles returns the delivery graph, serving from cache while
// fresh, then falling back to stale data, then to none.
func (a *Adapter) deliveryProfiles(ctx context.Context) []model.DeliveryProfile {
	now := time.Now()
	if profiles, ok := a.profiles.get(now); ok {
		hits, misses := a.profiles.stats()
		a.logger.Debug("delivery profile cache hit",
			zap.Int64("hits", hits),
			zap.Int64("misses", misses))
		return profiles
	}

	profiles, err := a.client.DeliveryProfiles(ctx)
	if err == nil {
		a.profiles.put(profiles, time.Now())
		return profiles
	}

	if ctx.Err() != nil {
		// The sibling fetch failed first; the request is being abandoned.
		return nil
	}

	if stale, ok := a.profiles.getStale(); ok {
		a.logger.Warn("delivery profile fetch failed, serving stale graph",
			zap.Error(err))
		return stale
	}

	a.logger.Warn("delivery profile fetch failed, serving without delivery capabilities",
		zap.Error(err))
	return nil
}
