package capability

import "testing"

func TestIsLocalDeliveryLabel(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"plain local delivery", "Local Delivery", true},
		{"standard shipping", "Standard Shipping", false},
		{"japanese local", "ローカル配送", true},
		{"empty string", "", false},
		{"uppercase", "LOCAL", true},
		{"embedded substring", "Downtown local courier", true},
		{"same-day hyphenated", "Same-Day Dispatch", true},
		{"same day spaced", "same day delivery", true},
		{"japanese same day", "当日配達", true},
		{"japanese radius", "半径5km", true},
		{"japanese short distance", "近距離エリア", true},
		{"japanese regional", "地域配達サービス", true},
		{"express", "Express", false},
		{"economy international", "Economy International", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsLocalDeliveryLabel(tt.text); got != tt.want {
				t.Errorf("IsLocalDeliveryLabel(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
