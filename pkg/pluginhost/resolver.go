package pluginhost

import "github.com/hostkit/pluginhost/internal/depgraph"

// RecordLookup resolves a plug-in name to its record, as currently known by
// the manager.
type RecordLookup func(name string) (*PluginRecord, bool)

// DependencyResolver evaluates and memoizes each record's three-valued
// dependency verdict.
type DependencyResolver struct {
	lookup RecordLookup
}

// NewDependencyResolver builds a resolver that consults lookup to find the
// record backing a declared dependency name.
func NewDependencyResolver(lookup RecordLookup) *DependencyResolver {
	return &DependencyResolver{lookup: lookup}
}

// Check evaluates record's dependency verdict, recursing into each declared
// dependency in order, and memoizes the result on record.DepVerdict.
//
// Returns Success, DependencyNotFound, or DependencyBadVersion. A verdict
// already set to something other than VerdictUnknown is returned without
// re-evaluation; on a memoized VerdictNo, the returned code is always
// DependencyNotFound even if the original failure was actually a
// DependencyBadVersion — the three-valued memo only remembers pass/fail,
// not which outcome caused the fail, so a re-visit cannot recover the
// original code.
//
// A record is marked VerdictYes optimistically before its dependencies are
// walked, not after: a dependency cycle is not detected at this layer, so a
// mutual reference must see its own in-progress check as already satisfied
// rather than recurse forever. The mark is demoted to VerdictNo if any link
// in the walk actually fails.
func (r *DependencyResolver) Check(record *PluginRecord) Outcome {
	switch record.DepVerdict {
	case VerdictYes:
		return Success
	case VerdictNo:
		return DependencyNotFound
	}

	record.DepVerdict = VerdictYes

	for _, dep := range record.Info.Dependencies {
		target, ok := r.lookup(dep.Name)
		if !ok {
			record.DepVerdict = VerdictNo
			return DependencyNotFound
		}

		if !depgraph.CompatibleStrings(target.Info.Version, dep.Version) {
			record.DepVerdict = VerdictNo
			return DependencyBadVersion
		}

		if outcome := r.Check(target); outcome != Success {
			record.DepVerdict = VerdictNo
			return outcome
		}
	}

	return Success
}
