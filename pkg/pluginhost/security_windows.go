//go:build windows

package pluginhost

import "os"

// validateOwnership is a no-op on Windows: there is no Unix-style UID
// ownership concept to check.
func validateOwnership(info os.FileInfo) error {
	return nil
}
