package errors

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Handler manages error display and formatting
type Handler struct {
	Writer      io.Writer
	Verbose     bool
	NoColor     bool
	ShowContext bool
}

// DefaultHandler creates a handler with default settings
func DefaultHandler() *Handler {
	return &Handler{
		Writer:      os.Stderr,
		Verbose:     false,
		NoColor:     false,
		ShowContext: false,
	}
}

// Handle processes and displays an error
func (h *Handler) Handle(err error) int {
	if err == nil {
		return 0
	}

	hostErr, ok := err.(*HostError)
	if !ok {
		h.displayGenericError(err)
		return 1
	}

	h.displayError(hostErr)

	if hostErr.HasSuggestions() {
		h.displaySuggestions(hostErr.Suggestions)
	}

	if h.Verbose && len(hostErr.Context) > 0 {
		h.displayContext(hostErr.Context)
	}

	if hostErr.Code > 0 {
		return hostErr.Code
	}
	return 1
}

// displayError shows the main error message
func (h *Handler) displayError(err *HostError) {
	icon := h.getErrorIcon(err.Type)
	typeStr := h.getErrorTypeString(err.Type)

	var msg strings.Builder

	if h.NoColor {
		fmt.Fprintf(&msg, "%s %s: ", icon, typeStr)
	} else {
		fmt.Fprintf(&msg, "%s %s: ", icon, color.RedString(typeStr))
	}

	msg.WriteString(err.Message)

	fmt.Fprintln(h.Writer, msg.String())

	if h.Verbose && err.Err != nil {
		if h.NoColor {
			fmt.Fprintf(h.Writer, "  Underlying error: %v\n", err.Err)
		} else {
			fmt.Fprintf(h.Writer, "  %s: %v\n", color.HiBlackString("Underlying error"), err.Err)
		}
	}
}

// displayGenericError shows a non-HostError error
func (h *Handler) displayGenericError(err error) {
	if h.NoColor {
		fmt.Fprintf(h.Writer, "✗ Error: %v\n", err)
	} else {
		fmt.Fprintf(h.Writer, "%s %s: %v\n",
			color.RedString("✗"),
			color.RedString("Error"),
			err)
	}
}

// displaySuggestions shows helpful suggestions
func (h *Handler) displaySuggestions(suggestions []string) {
	if len(suggestions) == 0 {
		return
	}

	fmt.Fprintln(h.Writer)
	if h.NoColor {
		fmt.Fprintln(h.Writer, "Possible solutions:")
	} else {
		fmt.Fprintln(h.Writer, color.YellowString("Possible solutions:"))
	}

	for _, suggestion := range suggestions {
		if h.NoColor {
			fmt.Fprintf(h.Writer, "  • %s\n", suggestion)
		} else {
			fmt.Fprintf(h.Writer, "  • %s\n", color.YellowString(suggestion))
		}
	}
}

// displayContext shows additional context information
func (h *Handler) displayContext(context map[string]string) {
	fmt.Fprintln(h.Writer)
	if h.NoColor {
		fmt.Fprintln(h.Writer, "Context:")
	} else {
		fmt.Fprintln(h.Writer, color.HiBlackString("Context:"))
	}

	for key, value := range context {
		if h.NoColor {
			fmt.Fprintf(h.Writer, "  %s: %s\n", key, value)
		} else {
			fmt.Fprintf(h.Writer, "  %s: %s\n",
				color.HiBlackString(key),
				value)
		}
	}
}

// getErrorIcon returns an appropriate icon for the error type
func (h *Handler) getErrorIcon(errType ErrorType) string {
	switch errType {
	case TypePermission:
		return "🔒"
	case TypeFileNotFound:
		return "📁"
	case TypeDependency:
		return "📦"
	case TypeCycle:
		return "🔁"
	case TypeMetadata:
		return "📝"
	case TypeLibrary:
		return "🧩"
	case TypeValidation:
		return "🛡️"
	case TypeConfig:
		return "⚙️"
	case TypeCommand:
		return "💻"
	default:
		return "✗"
	}
}

// getErrorTypeString returns a human-readable error type
func (h *Handler) getErrorTypeString(errType ErrorType) string {
	switch errType {
	case TypePermission:
		return "Permission Error"
	case TypeFileNotFound:
		return "File Not Found"
	case TypeDependency:
		return "Dependency Error"
	case TypeCycle:
		return "Dependency Cycle"
	case TypeMetadata:
		return "Metadata Error"
	case TypeLibrary:
		return "Library Error"
	case TypeValidation:
		return "Validation Error"
	case TypeConfig:
		return "Configuration Error"
	case TypeCommand:
		return "Command Error"
	default:
		return "Error"
	}
}

// Print is a convenience function to handle an error with the default handler
func Print(err error) int {
	return DefaultHandler().Handle(err)
}

// PrintVerbose handles an error with verbose output
func PrintVerbose(err error) int {
	handler := DefaultHandler()
	handler.Verbose = true
	return handler.Handle(err)
}

// Exit handles an error and exits with the appropriate code
func Exit(err error) {
	os.Exit(Print(err))
}

// ExitVerbose handles an error verbosely and exits
func ExitVerbose(err error) {
	os.Exit(PrintVerbose(err))
}
