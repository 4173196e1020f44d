package pluginhost

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hostkit/pluginhost/pkg/appinfo"
	hosterrors "github.com/hostkit/pluginhost/pkg/errors"
	"github.com/hostkit/pluginhost/pkg/validation"
)

// Validator screens a candidate shared object before the manager attempts
// to dlopen it. This is a supplemental safeguard layered on top of the
// filesystem search; the search itself never rejects a file by content.
type Validator struct {
	strict           bool
	trustedPaths     []string
	allowedChecksums map[string]string
}

// NewValidator builds a validator seeded with the host's default plug-in
// directories as trusted locations.
func NewValidator(strict bool) *Validator {
	home, _ := os.UserHomeDir()
	return &Validator{
		strict: strict,
		trustedPaths: []string{
			appinfo.GetGlobalPluginDir(),
			filepath.Join(home, appinfo.GetPluginDirName(), "plugins"),
		},
		allowedChecksums: make(map[string]string),
	}
}

// Validate checks whether path is safe to hand to dynlib.Load. It sanitizes
// the path (rejecting traversal/null-byte tricks and escaping symlinks),
// confirms it exists and is not a directory, verifies a pinned checksum if
// one is set, and sniffs the shared-object magic bytes. Trusted-path
// containment, like the world-writable and ownership checks, is enforced
// only in strict mode; otherwise the file may live under any directory.
func (v *Validator) Validate(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return hosterrors.NewValidationError(path, "invalid plugin path", hosterrors.WithCause(err))
	}

	validatedPath, err := validation.ValidatePath(absPath, validation.PathValidationOptions{
		BaseDir:        filepath.Dir(absPath),
		AllowAbsolute:  true,
		FollowSymlinks: true,
		RequireExists:  true,
	})
	if err != nil {
		return hosterrors.NewValidationError(path, "invalid plugin path", hosterrors.WithCause(err))
	}
	path = validatedPath

	info, err := os.Stat(path)
	if err != nil {
		return hosterrors.NewFileNotFoundError(path, hosterrors.WithCause(err))
	}

	if info.IsDir() {
		return hosterrors.NewValidationError(path, "plugin path is a directory")
	}

	if v.strict {
		if info.Mode()&0022 != 0 {
			return hosterrors.NewPermissionError(path, "plugin must not be world-writable in strict mode")
		}
		if !v.isInTrustedPath(path) {
			return hosterrors.NewValidationError(path, "plugin is not in a trusted location",
				hosterrors.WithSuggestions(fmt.Sprintf("Add its directory as a trusted path: %s", filepath.Dir(path))))
		}
		if err := validateOwnership(info); err != nil {
			return hosterrors.NewPermissionError(path, "plugin ownership check failed", hosterrors.WithCause(err))
		}
	}

	if expectedChecksum, exists := v.allowedChecksums[path]; exists {
		actualChecksum, err := v.calculateChecksum(path)
		if err != nil {
			return hosterrors.NewValidationError(path, "failed to calculate checksum", hosterrors.WithCause(err))
		}
		if actualChecksum != expectedChecksum {
			return hosterrors.NewValidationError(path, "checksum verification failed",
				hosterrors.WithContext("expected", expectedChecksum),
				hosterrors.WithContext("actual", actualChecksum))
		}
	}

	if !v.isValidSharedObject(path) {
		return hosterrors.NewValidationError(path, "invalid shared object format")
	}

	return nil
}

// AddTrustedPath adds a directory to the trusted-paths list.
func (v *Validator) AddTrustedPath(path string) {
	v.trustedPaths = append(v.trustedPaths, path)
}

// SetChecksum pins the expected SHA-256 checksum for a specific plug-in
// path.
func (v *Validator) SetChecksum(pluginPath, checksum string) {
	v.allowedChecksums[pluginPath] = checksum
}

// SetStrict toggles strict mode (world-writable rejection, trusted-path
// enforcement).
func (v *Validator) SetStrict(strict bool) {
	v.strict = strict
}

func (v *Validator) isInTrustedPath(pluginPath string) bool {
	absPath, err := filepath.Abs(pluginPath)
	if err != nil {
		return false
	}

	for _, trustedPath := range v.trustedPaths {
		trustedAbs, err := filepath.Abs(trustedPath)
		if err != nil {
			continue
		}
		if strings.HasPrefix(absPath, trustedAbs) {
			return true
		}
	}
	return false
}

func (v *Validator) calculateChecksum(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", hasher.Sum(nil)), nil
}

// isValidSharedObject sniffs the leading bytes of path for a recognized
// shared-object container format: ELF, Mach-O (either byte order, 32 or
// 64-bit), or a Windows PE/COFF image.
func (v *Validator) isValidSharedObject(path string) bool {
	file, err := os.Open(path)
	if err != nil {
		return false
	}
	defer file.Close()

	header := make([]byte, 4)
	if _, err := io.ReadFull(file, header); err != nil {
		return false
	}

	if header[0] == 0x7f && header[1] == 'E' && header[2] == 'L' && header[3] == 'F' {
		return true
	}

	if (header[0] == 0xfe && header[1] == 0xed && header[2] == 0xfa && (header[3] == 0xce || header[3] == 0xcf)) ||
		(header[0] == 0xcf && header[1] == 0xfa && header[2] == 0xed && header[3] == 0xfe) ||
		(header[0] == 0xce && header[1] == 0xfa && header[2] == 0xed && header[3] == 0xfe) {
		return true
	}

	if header[0] == 'M' && header[1] == 'Z' {
		return true
	}

	return false
}
