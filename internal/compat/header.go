package compat

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dunglas/httpsfv"
)

// ParseWidgetAgent extracts the embed identity from a Widget-Agent header.
// Format: embed="instock-widget", version="2.3.0" (RFC 8941 Dictionary).
//
// version is required; embed is informational and may be absent. Dictionary
// keys the embed does not set and parameters after a semicolon are ignored,
// so newer embeds can extend the header without breaking older services.
//
// Returns error if the header is empty, malformed, or missing the version key.
func ParseWidgetAgent(header string) (Agent, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return Agent{}, errors.New("empty Widget-Agent header")
	}

	dict, err := httpsfv.UnmarshalDictionary([]string{header})
	if err != nil {
		return Agent{}, fmt.Errorf("invalid Widget-Agent header: %w", err)
	}

	var agent Agent

	if member, ok := dict.Get("embed"); ok {
		if item, ok := member.(httpsfv.Item); ok {
			if name, ok := item.Value.(string); ok {
				agent.Embed = name
			}
		}
	}

	member, ok := dict.Get("version")
	if !ok {
		return Agent{}, errors.New("version key not found in Widget-Agent header")
	}

	item, ok := member.(httpsfv.Item)
	if !ok {
		return Agent{}, errors.New("version value must be an item")
	}

	version, ok := item.Value.(string)
	if !ok {
		return Agent{}, errors.New("version value must be a string")
	}

	version = strings.TrimSpace(version)
	if version == "" {
		return Agent{}, errors.New("version value is empty")
	}
	agent.Version = version

	return agent, nil
}
