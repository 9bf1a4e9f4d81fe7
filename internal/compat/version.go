package compat

import (
	"errors"
	"fmt"

	"golang.org/x/mod/semver"

	"instock-widget/internal/model"
)

var errNotSemver = errors.New("not a semantic version")

// CheckVersion compares a declared embed schema version against the
// service's. A version newer than CurrentSchemaVersion returns a
// *model.APIError the caller should reject with; a version older than
// MinSupportedVersion is served with deprecated=true. An empty version means
// the embed declared nothing and gets current behavior.
func CheckVersion(version string) (deprecated bool, err error) {
	if version == "" {
		return false, nil
	}

	v := normalizeVersion(version)
	if !semver.IsValid(v) {
		return false, fmt.Errorf("%w: %q", errNotSemver, version)
	}

	if semver.Compare(v, normalizeVersion(CurrentSchemaVersion)) > 0 {
		return false, model.NewUnsupportedClientError(version)
	}
	if semver.Compare(v, normalizeVersion(MinSupportedVersion)) < 0 {
		return true, nil
	}
	return false, nil
}

// normalizeVersion adds "v" prefix if needed for semver parsing.
func normalizeVersion(v string) string {
	if v == "" {
		return "v0.0.0"
	}
	if v[0] != 'v' {
		return "v" + v
	}
	return v
}
