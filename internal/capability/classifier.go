// Package capability derives per-location fulfillment capability flags from
// the store's delivery profile graph.
package capability

import "strings"

// localDeliveryKeywords is the classification table for zone and method
// names. The platform exposes no explicit "local delivery" type on custom
// methods, so merchants signal it through naming; this table covers the
// phrasings seen across installed stores, including Japanese storefronts.
// Versioned with the code: extend the table here, never inline at call
// sites.
var localDeliveryKeywords = []string{
	"local",
	"local delivery",
	"same-day",
	"same day",
	"ローカル",
	"当日",
	"近距離",
	"半径",
	"地域配達",
}

// IsLocalDeliveryLabel reports whether a free-text zone or method name reads
// as local delivery. Case-insensitive substring match; empty input is never
// local.
func IsLocalDeliveryLabel(text string) bool {
	if text == "" {
		return false
	}
	lowered := strings.ToLower(text)
	for _, keyword := range localDeliveryKeywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}
