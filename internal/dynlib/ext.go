package dynlib

import "runtime"

// Extension returns the platform's dynamic-library file extension, without
// a leading dot: "so" on Linux, "dylib" on macOS, "dll" on Windows.
func Extension() string {
	switch runtime.GOOS {
	case "darwin":
		return "dylib"
	case "windows":
		return "dll"
	default:
		return "so"
	}
}
