// Package errors provides structured error handling for the pluginhost
// library and its CLI driver.
//
// This package defines error types, constructors, and utilities for creating
// user-friendly, actionable error messages. All errors include context,
// exit codes, and optional suggestions for resolution.
//
// # Error Types
//
// Errors are categorized by type for consistent handling:
//   - TypeDependency: missing or version-incompatible plug-in dependency
//   - TypeCycle: a dependency cycle aborted a load
//   - TypeMetadata: a plug-in's metadata blob failed to decode
//   - TypeLibrary: a dynamic-library open/close failure
//   - TypeValidation: a candidate failed a security hygiene check
//   - TypeConfig: host configuration errors
//   - TypePermission: file and directory permission errors
//   - TypeFileNotFound: missing file errors
//
// # Creating Errors
//
// Use typed constructors for common error scenarios:
//
//	// Missing dependency
//	err := errors.NewDependencyError("storage", "dependency not found")
//
//	// Metadata decode failure
//	err := errors.NewMetadataError(path, "malformed JSON metadata")
//
// # Error Options
//
// Customize errors with functional options:
//
//	err := errors.New(errors.TypeValidation, "invalid input",
//	    errors.WithExitCode(2),
//	    errors.WithContext("field", "username"),
//	    errors.WithCause(originalErr),
//	    errors.WithSuggestions(
//	        "Check the input format",
//	    ))
//
// # Error Handling
//
// Use the Handler for consistent error display:
//
//	handler := errors.DefaultHandler()
//	exitCode := handler.Handle(err)
//	os.Exit(exitCode)
//
// # Exit Codes
//
// Standard exit codes are used for different error types:
//   - 1: General errors
//   - 126: Permission errors
//   - 127: File not found / dependency errors
package errors
