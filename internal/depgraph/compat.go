// Package depgraph builds the directed dependency graph over discovered
// plug-ins, performs the depth-first topological sort that yields a load
// order, and implements the plug-in host's semantic-version compatibility
// rule.
package depgraph

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// ParseVersion parses a semantic version string using the same library the
// teacher uses for constraint matching elsewhere in this module.
func ParseVersion(version string) (*semver.Version, error) {
	v, err := semver.NewVersion(version)
	if err != nil {
		return nil, fmt.Errorf("invalid version %q: %w", version, err)
	}
	return v, nil
}

// Compatible reports whether a host-side version "have" satisfies a
// requested version "want".
//
// This is not a generic semver range match: the host is compatible with a
// requested version iff they share the same major component and the host's
// minor.patch is greater than or equal to the requested minor.patch.
func Compatible(have, want *semver.Version) bool {
	if have.Major() != want.Major() {
		return false
	}
	if have.Minor() != want.Minor() {
		return have.Minor() > want.Minor()
	}
	return have.Patch() >= want.Patch()
}

// CompatibleStrings parses both versions and applies Compatible. Returns
// false (never an error) if either string fails to parse — callers treat an
// unparsable version the same as an incompatible one.
func CompatibleStrings(have, want string) bool {
	haveV, err := ParseVersion(have)
	if err != nil {
		return false
	}
	wantV, err := ParseVersion(want)
	if err != nil {
		return false
	}
	return Compatible(haveV, wantV)
}
