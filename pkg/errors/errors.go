package errors

import (
	"fmt"
)

// New creates a new HostError with the given type and message
func New(errType ErrorType, message string, opts ...ErrorOption) *HostError {
	e := &HostError{
		Type:    errType,
		Message: message,
		Code:    1, // Default exit code
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// NewPermissionError creates a permission-related error
func NewPermissionError(path, message string, opts ...ErrorOption) *HostError {
	defaultOpts := []ErrorOption{
		WithContext("path", path),
		WithExitCode(126), // Standard permission denied exit code
		WithSuggestions(
			fmt.Sprintf("Check permissions: ls -la %s", path),
			fmt.Sprintf("Fix permissions: chmod 755 %s", path),
		),
	}
	opts = append(defaultOpts, opts...)
	return New(TypePermission, message, opts...)
}

// NewFileNotFoundError creates a file not found error
func NewFileNotFoundError(path string, opts ...ErrorOption) *HostError {
	defaultOpts := []ErrorOption{
		WithContext("path", path),
		WithExitCode(127),
		WithSuggestions(
			"Check if the file exists",
			"Verify the path is correct",
		),
	}
	opts = append(defaultOpts, opts...)
	return New(TypeFileNotFound, fmt.Sprintf("file not found: %s", path), opts...)
}

// NewDependencyError creates a missing or incompatible plug-in dependency error
func NewDependencyError(dependency, message string, opts ...ErrorOption) *HostError {
	defaultOpts := []ErrorOption{
		WithContext("dependency", dependency),
		WithExitCode(127),
	}
	opts = append(defaultOpts, opts...)
	return New(TypeDependency, message, opts...)
}

// NewCycleError creates a dependency-cycle error
func NewCycleError(message string, opts ...ErrorOption) *HostError {
	defaultOpts := []ErrorOption{
		WithExitCode(1),
	}
	opts = append(defaultOpts, opts...)
	return New(TypeCycle, message, opts...)
}

// NewMetadataError creates an error for a plug-in whose metadata blob failed to decode
func NewMetadataError(path, message string, opts ...ErrorOption) *HostError {
	defaultOpts := []ErrorOption{
		WithContext("path", path),
		WithExitCode(1),
	}
	opts = append(defaultOpts, opts...)
	return New(TypeMetadata, message, opts...)
}

// NewLibraryError creates an error for a dynamic-library open/close failure
func NewLibraryError(path, message string, opts ...ErrorOption) *HostError {
	defaultOpts := []ErrorOption{
		WithContext("path", path),
		WithExitCode(1),
	}
	opts = append(defaultOpts, opts...)
	return New(TypeLibrary, message, opts...)
}

// NewValidationError creates a plug-in candidate validation error (security hygiene checks)
func NewValidationError(path, message string, opts ...ErrorOption) *HostError {
	defaultOpts := []ErrorOption{
		WithContext("path", path),
		WithExitCode(1),
	}
	opts = append(defaultOpts, opts...)
	return New(TypeValidation, message, opts...)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, opts ...ErrorOption) *HostError {
	defaultOpts := []ErrorOption{
		WithExitCode(78), // EX_CONFIG from sysexits.h
		WithSuggestions(
			"Check the host configuration file",
		),
	}
	opts = append(defaultOpts, opts...)
	return New(TypeConfig, message, opts...)
}

// NewCommandError creates a generic CLI command error
func NewCommandError(command string, exitCode int, opts ...ErrorOption) *HostError {
	defaultOpts := []ErrorOption{
		WithContext("command", command),
		WithExitCode(exitCode),
	}
	opts = append(defaultOpts, opts...)
	return New(TypeCommand, fmt.Sprintf("command failed: %s", command), opts...)
}

// NewRuntimeError creates a runtime error (memory, resource, etc)
func NewRuntimeError(message string, opts ...ErrorOption) *HostError {
	defaultOpts := []ErrorOption{
		WithExitCode(71), // EX_OSERR from sysexits.h
	}
	opts = append(defaultOpts, opts...)
	return New(TypeRuntime, message, opts...)
}

// Wrap wraps an existing error with additional context
func Wrap(err error, message string, opts ...ErrorOption) *HostError {
	if err == nil {
		return nil
	}

	// If it's already a HostError, preserve its properties
	if hostErr, ok := err.(*HostError); ok {
		wrapped := &HostError{
			Type:        hostErr.Type,
			Message:     message,
			Err:         hostErr,
			Suggestions: hostErr.Suggestions,
			Context:     hostErr.Context,
			Code:        hostErr.Code,
		}

		for _, opt := range opts {
			opt(wrapped)
		}

		return wrapped
	}

	return New(TypeUnknown, message, append(opts, WithCause(err))...)
}

// Is checks if an error is of a specific type
func Is(err error, errType ErrorType) bool {
	if err == nil {
		return false
	}

	hostErr, ok := err.(*HostError)
	if !ok {
		return false
	}

	return hostErr.Type == errType
}

// NewUserError creates an error caused by user input or configuration.
func NewUserError(message, suggestion string) *HostError {
	return New(TypeInvalid, message,
		WithSuggestions(suggestion),
		WithExitCode(64), // EX_USAGE from sysexits.h
	)
}

// NewSystemError creates an error for internal/infrastructure failures
// beyond user control.
func NewSystemError(message string, cause error) *HostError {
	return New(TypeRuntime, message,
		WithCause(cause),
		WithExitCode(71), // EX_OSERR from sysexits.h
	)
}

// NewPluginError creates an error attributed to a specific plug-in.
func NewPluginError(pluginName, message string, cause error) *HostError {
	opts := []ErrorOption{
		WithContext("plugin", pluginName),
		WithExitCode(1),
	}
	if cause != nil {
		opts = append(opts, WithCause(cause))
	}
	return New(TypeCommand, fmt.Sprintf("plugin %q: %s", pluginName, message), opts...)
}

// WithSuggestion is a convenience function to add a suggestion to any error.
func WithSuggestion(err error, suggestion string) *HostError {
	if err == nil {
		return nil
	}

	if hostErr, ok := err.(*HostError); ok {
		return hostErr.AddSuggestion(suggestion)
	}

	return Wrap(err, err.Error(), WithSuggestions(suggestion))
}
