package dynlib

import (
	"fmt"
	"sync"

	"github.com/ebitengine/purego"
)

// Library is a handle to a loaded shared object. It is single-owner and
// non-copyable: callers should hold a *Library, never copy the struct.
type Library struct {
	mu        sync.Mutex
	path      string
	handle    uintptr
	loaded    bool
	lastError string
}

// New returns an unloaded Library ready to have Load called on it.
func New() *Library {
	return &Library{}
}

// Load acquires a handle to the shared object at path. If a handle is
// already held, it is released first; a second Load call "replaces
// any existing handle" rule.
func (l *Library) Load(path string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.loaded {
		if _, err := l.unloadLocked(); err != nil {
			return err
		}
	}

	handle, err := purego.Dlopen(path, dlopenFlags())
	if err != nil {
		l.lastError = err.Error()
		return fmt.Errorf("library: failed to open %q: %w", path, err)
	}

	l.path = path
	l.handle = handle
	l.loaded = true
	l.lastError = ""
	return nil
}

// Loaded reports whether a handle is currently held.
func (l *Library) Loaded() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loaded
}

// HasSymbol reports whether name resolves in the loaded library. It does
// not alter any persistent error state visible to later calls.
func (l *Library) HasSymbol(name string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.loaded {
		return false
	}
	_, err := purego.Dlsym(l.handle, name)
	return err == nil
}

// Symbol returns the address of name, reinterpreted by the caller as
// whatever type the ABI contract for that symbol name agrees on.
func (l *Library) Symbol(name string) (uintptr, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.loaded {
		return 0, fmt.Errorf("library: %q is not loaded", name)
	}
	addr, err := purego.Dlsym(l.handle, name)
	if err != nil {
		l.lastError = err.Error()
		return 0, fmt.Errorf("library: symbol %q not found in %s: %w", name, l.path, err)
	}
	return addr, nil
}

// Unload releases the handle. The returned bool reports whether the OS
// actually freed it (purego's Dlclose does not distinguish "already freed
// by refcount" from "freed now", so a nil error is treated as freed).
func (l *Library) Unload() (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.unloadLocked()
}

func (l *Library) unloadLocked() (bool, error) {
	if !l.loaded {
		return true, nil
	}

	err := purego.Dlclose(l.handle)
	l.loaded = false
	l.handle = 0
	if err != nil {
		l.lastError = err.Error()
		return false, fmt.Errorf("library: failed to close %q: %w", l.path, err)
	}
	return true, nil
}

// LastError reports the platform error string from the most recent failed
// operation, or the empty string if none occurred.
func (l *Library) LastError() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastError
}

// Path returns the filesystem path this library was loaded from, or the
// empty string if Load has never succeeded.
func (l *Library) Path() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.path
}
