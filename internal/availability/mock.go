package availability

import (
	"context"

	"instock-widget/internal/model"
	"instock-widget/internal/settings"
)

// Mock implements Provider for testing.
// Each method can be configured via function fields.
type Mock struct {
	LocationAvailabilityFunc func(ctx context.Context, req *Request) (*model.AvailabilityPayload, error)
	SettingsFunc             func(ctx context.Context, shop string) (*model.WidgetConfig, error)
	SaveSettingsFunc         func(ctx context.Context, shop string, edits map[string]any) (*model.WidgetConfig, error)
}

// LocationAvailability calls the configured func or returns an empty payload
// under default configuration.
func (m *Mock) LocationAvailability(ctx context.Context, req *Request) (*model.AvailabilityPayload, error) {
	if m.LocationAvailabilityFunc != nil {
		return m.LocationAvailabilityFunc(ctx, req)
	}
	return &model.AvailabilityPayload{
		Config:    settings.Defaults(),
		Locations: []model.StockRow{},
	}, nil
}

// Settings calls the configured func or returns the default configuration.
func (m *Mock) Settings(ctx context.Context, shop string) (*model.WidgetConfig, error) {
	if m.SettingsFunc != nil {
		return m.SettingsFunc(ctx, shop)
	}
	return settings.Defaults(), nil
}

// SaveSettings calls the configured func or returns an error.
func (m *Mock) SaveSettings(ctx context.Context, shop string, edits map[string]any) (*model.WidgetConfig, error) {
	if m.SaveSettingsFunc != nil {
		return m.SaveSettingsFunc(ctx, shop, edits)
	}
	return nil, model.NewInternalError(nil)
}

// Verify Mock implements Provider interface at compile time.
var _ Provider = (*Mock)(nil)
