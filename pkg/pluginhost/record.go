package pluginhost

import "github.com/hostkit/pluginhost/internal/dynlib"

// DepVerdict is the three-valued memoized result of a dependency check.
// Unknown is the signal that a check has not yet run in the current load
// pass; it must be reset before every new load.
type DepVerdict int

const (
	// VerdictUnknown means the resolver has not yet evaluated this record
	// in the current pass.
	VerdictUnknown DepVerdict = iota
	// VerdictYes means every declared dependency, transitively, exists and
	// is version-compatible.
	VerdictYes
	// VerdictNo means at least one declared dependency is missing or
	// version-incompatible.
	VerdictNo
)

func (v DepVerdict) String() string {
	switch v {
	case VerdictYes:
		return "Yes"
	case VerdictNo:
		return "No"
	default:
		return "Unknown"
	}
}

// PluginState is a record's position in the per-plug-in state machine:
//
//	Discovered -> DepsChecked{Yes|No} -> Activated -> UnloadPending -> Released
type PluginState int

const (
	StateDiscovered PluginState = iota
	StateDepsCheckedYes
	StateDepsCheckedNo
	StateActivated
	StateUnloadPending
	StateReleased
)

func (s PluginState) String() string {
	switch s {
	case StateDiscovered:
		return "Discovered"
	case StateDepsCheckedYes:
		return "DepsChecked(Yes)"
	case StateDepsCheckedNo:
		return "DepsChecked(No)"
	case StateActivated:
		return "Activated"
	case StateUnloadPending:
		return "UnloadPending"
	case StateReleased:
		return "Released"
	default:
		return "Unknown"
	}
}

// PluginRecord is the manager's bookkeeping structure for one discovered
// plug-in. The manager exclusively owns and mutates records;
// plug-in code observes them only through the immutable snapshots the
// router returns.
type PluginRecord struct {
	// Name is the plug-in's identifier: unique across the process, an
	// ASCII identifier (letters, digits, underscore, not starting with a
	// digit).
	Name string

	// Path is the filesystem path of the shared object this record was
	// discovered from.
	Path string

	// Library is the owned DynamicLibrary handle. It may be loaded even
	// before Instance exists, because metadata symbols are read without
	// activating the instance.
	Library *dynlib.Library

	// Info is the decoded, validated metadata.
	Info Metadata

	// Instance is the live plug-in object; nil until activation.
	Instance Plugin

	// DepVerdict is the memoized three-valued dependency verdict.
	DepVerdict DepVerdict

	// GraphID is this record's index into the current dependency graph,
	// or -1 when the record is not included in it.
	GraphID int

	// State is this record's position in the per-plug-in state machine.
	State PluginState
}

// NewPluginRecord creates a record in the initial Discovered state with an
// unresolved dependency verdict and no graph membership.
func NewPluginRecord(name, path string, library *dynlib.Library, info Metadata) *PluginRecord {
	return &PluginRecord{
		Name:       name,
		Path:       path,
		Library:    library,
		Info:       info,
		DepVerdict: VerdictUnknown,
		GraphID:    -1,
		State:      StateDiscovered,
	}
}

// IsActivated reports whether this record's plug-in instance has been
// constructed.
func (r *PluginRecord) IsActivated() bool {
	return r.Instance != nil
}
