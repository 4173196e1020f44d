// Package dynlib implements the DynamicLibrary capability: load
// a shared object by path, test for a symbol, fetch a symbol address, and
// unload, without cgo, via github.com/ebitengine/purego.
package dynlib
