package compat

import (
	"errors"
	"testing"

	"instock-widget/internal/model"
)

func TestCheckVersion(t *testing.T) {
	tests := []struct {
		name           string
		version        string
		wantDeprecated bool
		wantRejected   bool // *model.APIError returned
		wantErr        bool // any error returned
	}{
		{
			name:    "empty version serves current",
			version: "",
		},
		{
			name:    "current version",
			version: "2.4.0",
		},
		{
			name:    "between floor and current",
			version: "1.5.0",
		},
		{
			name:    "exactly the floor",
			version: "1.2.0",
		},
		{
			name:           "just below the floor",
			version:        "1.1.9",
			wantDeprecated: true,
		},
		{
			name:           "ancient embed",
			version:        "0.9.0",
			wantDeprecated: true,
		},
		{
			name:         "one patch ahead",
			version:      "2.4.1",
			wantRejected: true,
			wantErr:      true,
		},
		{
			name:         "next major",
			version:      "3.0.0",
			wantRejected: true,
			wantErr:      true,
		},
		{
			name:         "v-prefixed newer version",
			version:      "v2.5.0",
			wantRejected: true,
			wantErr:      true,
		},
		{
			name:           "v-prefixed old version",
			version:        "v1.0.0",
			wantDeprecated: true,
		},
		{
			name:    "major-only fills zeros",
			version: "2",
		},
		{
			name:           "major-only below floor",
			version:        "1",
			wantDeprecated: true,
		},
		{
			name:    "not a version at all",
			version: "latest",
			wantErr: true,
		},
		{
			name:    "garbage with digits",
			version: "2.x",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deprecated, err := CheckVersion(tt.version)

			if tt.wantErr && err == nil {
				t.Fatalf("CheckVersion(%q) expected error, got none", tt.version)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("CheckVersion(%q) unexpected error: %v", tt.version, err)
			}

			var apiErr *model.APIError
			if got := errors.As(err, &apiErr); got != tt.wantRejected {
				t.Errorf("CheckVersion(%q) rejected = %v, want %v", tt.version, got, tt.wantRejected)
			}
			if tt.wantRejected {
				if apiErr.Kind != "UNSUPPORTED_CLIENT" {
					t.Errorf("Kind = %q, want UNSUPPORTED_CLIENT", apiErr.Kind)
				}
				if !errors.Is(err, model.ErrUnsupportedClient) {
					t.Error("rejection should unwrap to ErrUnsupportedClient")
				}
			}
			if tt.wantErr && !tt.wantRejected && !errors.Is(err, errNotSemver) {
				t.Errorf("CheckVersion(%q) error = %v, want errNotSemver", tt.version, err)
			}

			if deprecated != tt.wantDeprecated {
				t.Errorf("CheckVersion(%q) deprecated = %v, want %v", tt.version, deprecated, tt.wantDeprecated)
			}
		})
	}
}

func TestNormalizeVersion(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "v0.0.0"},
		{"1.2.3", "v1.2.3"},
		{"v1.2.3", "v1.2.3"},
		{"2", "v2"},
	}

	for _, tt := range tests {
		if got := normalizeVersion(tt.in); got != tt.want {
			t.Errorf("normalizeVersion(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
