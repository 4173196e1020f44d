package errors

import (
	"strings"
)

// SuggestionEngine provides smart error suggestions based on patterns
type SuggestionEngine struct {
	patterns []ErrorPattern
}

// ErrorPattern matches error messages and provides suggestions
type ErrorPattern struct {
	Contains    []string  // Any of these strings trigger the pattern
	Type        ErrorType // Error type to assign
	Suggestions []string  // Suggestions to provide
}

// NewSuggestionEngine creates a new suggestion engine with default patterns
func NewSuggestionEngine() *SuggestionEngine {
	return &SuggestionEngine{
		patterns: defaultPatterns(),
	}
}

// GetSuggestions analyzes an error and returns relevant suggestions
func (se *SuggestionEngine) GetSuggestions(err error, context map[string]string) []string {
	if err == nil {
		return nil
	}

	errMsg := strings.ToLower(err.Error())
	suggestions := []string{}

	for _, pattern := range se.patterns {
		if pattern.Matches(errMsg) {
			suggestions = append(suggestions, pattern.Suggestions...)
		}
	}

	if context != nil {
		suggestions = append(suggestions, se.getContextSuggestions(context)...)
	}

	return uniqueStrings(suggestions)
}

// getContextSuggestions provides suggestions based on context
func (se *SuggestionEngine) getContextSuggestions(context map[string]string) []string {
	var suggestions []string

	if dependency, ok := context["dependency"]; ok {
		suggestions = append(suggestions,
			"Make sure the plug-in that provides \""+dependency+"\" is in a searched directory",
			"Check that the dependency's declared version is compatible",
		)
	}

	if path, ok := context["path"]; ok {
		if strings.Contains(path, ".so") || strings.Contains(path, ".dylib") || strings.Contains(path, ".dll") {
			suggestions = append(suggestions,
				"Confirm the shared object exports name, metadata, and createPlugin",
				"Check the shared object was built for this platform and architecture",
			)
		}
	}

	return suggestions
}

// Matches checks if a pattern matches an error message
func (p *ErrorPattern) Matches(errMsg string) bool {
	for _, substr := range p.Contains {
		if strings.Contains(errMsg, strings.ToLower(substr)) {
			return true
		}
	}
	return false
}

// defaultPatterns returns the default error patterns
func defaultPatterns() []ErrorPattern {
	return []ErrorPattern{
		{
			Contains: []string{"not found", "no such dependency", "missing dependency"},
			Type:     TypeDependency,
			Suggestions: []string{
				"Search the directory that contains the missing dependency before loading",
				"Check the dependency's declared name matches its exported name symbol exactly",
			},
		},
		{
			Contains: []string{"version", "incompatible", "bad version"},
			Type:     TypeDependency,
			Suggestions: []string{
				"The dependency's major version must match and its minor.patch must be at least the requested one",
				"Rebuild the dependency plug-in at a compatible version",
			},
		},
		{
			Contains: []string{"cycle", "cyclic"},
			Type:     TypeCycle,
			Suggestions: []string{
				"Break the dependency cycle by removing one of the mutual dependency declarations",
			},
		},
		{
			Contains: []string{"metadata", "malformed json", "invalid metadata"},
			Type:     TypeMetadata,
			Suggestions: []string{
				"Verify the metadata symbol holds well-formed JSON",
				"Check the api field matches a version compatible with this host",
			},
		},
		{
			Contains: []string{"permission denied", "access denied", "operation not permitted"},
			Type:     TypePermission,
			Suggestions: []string{
				"Check file permissions: ls -la",
				"Fix ownership: chown $(whoami) <plugin path>",
			},
		},
		{
			Contains: []string{"world-writable", "untrusted", "unrecognized binary", "not executable"},
			Type:     TypeValidation,
			Suggestions: []string{
				"Move the plug-in into a trusted, non-writable-by-others directory",
				"Ensure the file is executable and is a real shared object for this platform",
			},
		},
		{
			Contains: []string{"cannot load", "dlopen", "dlclose", "failed to open library"},
			Type:     TypeLibrary,
			Suggestions: []string{
				"Check the shared object's own link-time dependencies are resolvable",
				"Verify the file is not corrupted or built for a different architecture",
			},
		},
		{
			Contains: []string{"no such file", "file not found", "cannot find", "does not exist"},
			Type:     TypeFileNotFound,
			Suggestions: []string{
				"Check if the file exists: ls -la",
				"Verify the search directory is correct",
			},
		},
	}
}

// uniqueStrings removes duplicate strings from a slice
func uniqueStrings(strings []string) []string {
	seen := make(map[string]bool)
	result := []string{}

	for _, str := range strings {
		if !seen[str] {
			seen[str] = true
			result = append(result, str)
		}
	}

	return result
}

// AnalyzeError provides intelligent error analysis and suggestions
func AnalyzeError(err error) *HostError {
	if err == nil {
		return nil
	}

	if hostErr, ok := err.(*HostError); ok && hostErr.HasSuggestions() {
		return hostErr
	}

	engine := NewSuggestionEngine()
	suggestions := engine.GetSuggestions(err, nil)

	errType := TypeUnknown
	errMsg := strings.ToLower(err.Error())
	for _, pattern := range engine.patterns {
		if pattern.Matches(errMsg) {
			errType = pattern.Type
			break
		}
	}

	if hostErr, ok := err.(*HostError); ok {
		hostErr.Suggestions = append(hostErr.Suggestions, suggestions...)
		if hostErr.Type == TypeUnknown {
			hostErr.Type = errType
		}
		return hostErr
	}

	return New(errType, err.Error(),
		WithCause(err),
		WithSuggestions(suggestions...),
	)
}

// EnhanceError adds contextual suggestions to an error
func EnhanceError(err error, context map[string]string) *HostError {
	if err == nil {
		return nil
	}

	hostErr := AnalyzeError(err)

	for k, v := range context {
		hostErr.AddContext(k, v)
	}

	engine := NewSuggestionEngine()
	contextSuggestions := engine.getContextSuggestions(context)

	hostErr.Suggestions = uniqueStrings(append(hostErr.Suggestions, contextSuggestions...))

	return hostErr
}
