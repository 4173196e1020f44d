package pluginhost

import (
	"encoding/json"

	"github.com/hostkit/pluginhost/internal/depgraph"
)

// isValidIdentifier reports whether name is a valid plug-in identifier:
// letters, digits, and underscores only, and not starting with a digit.
func isValidIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
			continue
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
			continue
		default:
			return false
		}
	}
	return true
}

// Dependency is a named, version-constrained reference from one plug-in to
// another, declared in its metadata.
type Dependency struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Metadata is a plug-in's decoded, self-describing record. The zero value (empty Name) is the "invalid"
// sentinel the decoder returns for any malformed input.
type Metadata struct {
	API          string       `json:"api"`
	Name         string       `json:"name"`
	PrettyName   string       `json:"prettyName"`
	Version      string       `json:"version"`
	Author       string       `json:"author"`
	URL          string       `json:"url"`
	License      string       `json:"license"`
	Copyright    string       `json:"copyright"`
	Dependencies []Dependency `json:"dependencies"`
}

// Valid reports whether this metadata is the decoded, well-formed kind
// rather than the invalid sentinel.
func (m Metadata) Valid() bool {
	return m.Name != ""
}

// DecodeMetadata parses raw as the UTF-8 JSON metadata blob exported by a
// plug-in's `metadata` symbol and validates it against hostAPIVersion.
//
// Returns the invalid sentinel (Metadata{}) when:
//   - raw is not well-formed JSON;
//   - the api field is missing or not compatible with hostAPIVersion;
//   - any required string field is missing;
//   - dependencies is present but malformed.
//
// The decoder never returns an error across the public boundary; every
// failure folds to the invalid sentinel.
func DecodeMetadata(raw []byte, hostAPIVersion string) Metadata {
	var decoded struct {
		API          string        `json:"api"`
		Name         string        `json:"name"`
		PrettyName   string        `json:"prettyName"`
		Version      string        `json:"version"`
		Author       string        `json:"author"`
		URL          string        `json:"url"`
		License      string        `json:"license"`
		Copyright    string        `json:"copyright"`
		Dependencies *[]Dependency `json:"dependencies"`
	}

	if err := json.Unmarshal(raw, &decoded); err != nil {
		return Metadata{}
	}

	if decoded.API == "" || !depgraph.CompatibleStrings(hostAPIVersion, decoded.API) {
		return Metadata{}
	}

	if !isValidIdentifier(decoded.Name) {
		return Metadata{}
	}

	required := []string{
		decoded.Name, decoded.PrettyName, decoded.Version,
		decoded.Author, decoded.URL, decoded.License, decoded.Copyright,
	}
	for _, field := range required {
		if field == "" {
			return Metadata{}
		}
	}

	deps := []Dependency{}
	if decoded.Dependencies != nil {
		for _, d := range *decoded.Dependencies {
			if d.Version == "" || !isValidIdentifier(d.Name) {
				return Metadata{}
			}
			deps = append(deps, d)
		}
	}

	return Metadata{
		API:          decoded.API,
		Name:         decoded.Name,
		PrettyName:   decoded.PrettyName,
		Version:      decoded.Version,
		Author:       decoded.Author,
		URL:          decoded.URL,
		License:      decoded.License,
		Copyright:    decoded.Copyright,
		Dependencies: deps,
	}
}
