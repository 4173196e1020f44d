package pluginhost

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/hashicorp/go-hclog"

	"github.com/hostkit/pluginhost/internal/depgraph"
	"github.com/hostkit/pluginhost/internal/dynlib"
	hosterrors "github.com/hostkit/pluginhost/pkg/errors"
	"github.com/hostkit/pluginhost/pkg/registry"
)

// Reporter receives per-plug-in faults that do not abort a phase on their
// own: a failing candidate or a dependency fault is reported
// and excluded, while the phase as a whole still returns Success.
type Reporter func(pluginName string, outcome Outcome, detail string)

// noopReporter discards every report; used when the caller passes nil.
func noopReporter(string, Outcome, string) {}

// Manager owns the registry of discovered plug-ins, the load order, the
// set of searched locations, and the optional main plug-in. A process
// normally owns exactly one Manager; NewManager is exported
// rather than enforced as a singleton so tests and multi-host embedders
// can each construct their own instance.
type Manager struct {
	mu sync.Mutex

	config ManagerConfig
	log    hclog.Logger

	records       *registry.Registry[*PluginRecord]
	discoverOrder []string // insertion order; registry.ListNames() sorts alphabetically and cannot serve this

	locations map[string]struct{}

	loadOrder []string // last successful topological order, oldest-dependency-first

	mainPluginName string

	validator *Validator
}

// NewManager builds a Manager from cfg. Its log sink writes to stderr until
// SetLogOutput redirects it.
func NewManager(cfg ManagerConfig) *Manager {
	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "pluginhost",
		Level:  hclogLevel(cfg.LogLevel),
		Output: os.Stderr,
	})

	return &Manager{
		config:    cfg,
		log:       logger,
		records:   registry.New[*PluginRecord](),
		locations: make(map[string]struct{}),
		validator: NewValidator(cfg.Strict),
	}
}

// SetLogOutput redirects the manager's log sink, matching the
// "configurable log-sink (stream + enable flag)" state the manager keeps. Passing a nil writer disables logging entirely.
func (m *Manager) SetLogOutput(w io.Writer, enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !enabled || w == nil {
		m.log = hclog.NewNullLogger()
		return
	}
	m.log = hclog.New(&hclog.LoggerOptions{
		Name:   "pluginhost",
		Level:  hclogLevel(m.config.LogLevel),
		Output: w,
	})
}

// RegisterMainPlugin designates name as the plug-in whose MainPluginExec
// hook runs once, after every activation in a Load call completes.
func (m *Manager) RegisterMainPlugin(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mainPluginName = name
}

// Search enumerates candidate shared objects under dir. Successive calls are cumulative: a second Search over a different
// directory adds to the existing registry rather than replacing it.
func (m *Manager) Search(dir string, recursive bool, reporter Reporter) Outcome {
	if reporter == nil {
		reporter = noopReporter
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	candidates, walkErr := m.collectCandidates(dir, recursive)
	installed := 0

	for _, path := range candidates {
		if m.installCandidate(path, reporter) {
			installed++
		}
	}

	if installed > 0 {
		m.locations[dir] = struct{}{}
	}

	if walkErr != nil && installed == 0 {
		reporter("", ListFilesError, walkErr.Error())
		return ListFilesError
	}

	if installed == 0 {
		return NothingFound
	}
	return Success
}

func (m *Manager) collectCandidates(dir string, recursive bool) ([]string, error) {
	ext := "." + dynlib.Extension()
	var candidates []string

	walkFn := func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if !recursive && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) == ext {
			candidates = append(candidates, path)
		}
		return nil
	}

	err := filepath.WalkDir(dir, walkFn)
	return candidates, err
}

// installCandidate loads path, checks for the three required ABI symbols,
// decodes its metadata, and installs a record. It returns true iff a
// record was installed.
func (m *Manager) installCandidate(path string, reporter Reporter) bool {
	lib := dynlib.New()
	if err := m.validator.Validate(path); err != nil {
		m.log.Debug("candidate failed validation", "path", path, "error", err)
		return false
	}
	if err := lib.Load(path); err != nil {
		m.log.Debug("candidate failed to load", "path", path, "error", err)
		return false
	}

	if !lib.HasSymbol("name") || !lib.HasSymbol("metadata") || !lib.HasSymbol("createPlugin") {
		_, _ = lib.Unload()
		return false
	}

	nameAddr, err := lib.Symbol("name")
	if err != nil {
		_, _ = lib.Unload()
		return false
	}
	name := dynlib.ReadCString(nameAddr)

	if !isValidIdentifier(name) {
		reporter(name, CannotParseMetadata, path)
		_, _ = lib.Unload()
		return false
	}

	if m.records.Has(name) {
		reporter(name, NameAlreadyExists, path)
		_, _ = lib.Unload()
		return false
	}

	metaAddr, err := lib.Symbol("metadata")
	if err != nil {
		_, _ = lib.Unload()
		return false
	}
	rawMetadata := dynlib.ReadCString(metaAddr)

	info := DecodeMetadata([]byte(rawMetadata), m.config.HostAPIVersion)
	if !info.Valid() {
		reporter(name, CannotParseMetadata, path)
		_, _ = lib.Unload()
		return false
	}

	record := NewPluginRecord(name, path, lib, info)
	if err := m.records.Register(name, record); err != nil {
		reporter(name, NameAlreadyExists, path)
		_, _ = lib.Unload()
		return false
	}
	m.discoverOrder = append(m.discoverOrder, name)

	return true
}

// Load runs dependency resolution, builds the dependency graph, topologically
// sorts it, and activates every record in order.
func (m *Manager) Load(tryToContinue bool, reporter Reporter) Outcome {
	if reporter == nil {
		reporter = noopReporter
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, name := range m.discoverOrder {
		record, _ := m.records.Get(name)
		record.GraphID = -1
		record.DepVerdict = VerdictUnknown
	}

	resolver := NewDependencyResolver(func(name string) (*PluginRecord, bool) {
		return m.records.Get(name)
	})

	for _, name := range m.discoverOrder {
		record, _ := m.records.Get(name)
		if outcome := resolver.Check(record); outcome != Success {
			record.State = StateDepsCheckedNo
			reporter(record.Name, outcome, record.Path)
			if !tryToContinue {
				return outcome
			}
			continue
		}
		record.State = StateDepsCheckedYes
	}

	graph := depgraph.New()
	for _, name := range m.discoverOrder {
		record, _ := m.records.Get(name)
		if record.DepVerdict == VerdictYes {
			record.GraphID = graph.AddNode(name)
		}
	}
	for _, name := range m.discoverOrder {
		record, _ := m.records.Get(name)
		if record.DepVerdict != VerdictYes {
			continue
		}
		for _, dep := range record.Info.Dependencies {
			graph.AddEdge(dep.Name, name)
		}
	}

	order, err := graph.Sort()
	if err != nil {
		reporter("", DependencyCycle, "")
		return DependencyCycle
	}

	router := NewRequestRouter(m)

	for _, name := range order {
		record, _ := m.records.Get(name)
		if record.IsActivated() {
			continue
		}
		if err := m.activate(record, router); err != nil {
			reporter(record.Name, UnknownError, err.Error())
			continue
		}
	}

	m.loadOrder = order

	if m.mainPluginName != "" {
		if record, ok := m.records.Get(m.mainPluginName); ok && record.IsActivated() {
			if main, ok := record.Instance.(MainPlugin); ok {
				main.MainPluginExec()
			}
		}
	}

	return Success
}

func (m *Manager) activate(record *PluginRecord, router *RequestRouter) error {
	deps := make([]Plugin, 0, len(record.Info.Dependencies))
	for _, dep := range record.Info.Dependencies {
		depRecord, ok := m.records.Get(dep.Name)
		if !ok || !depRecord.IsActivated() {
			return hosterrors.NewDependencyError(dep.Name,
				fmt.Sprintf("dependency %q not activated", dep.Name),
				hosterrors.WithContext("plugin", record.Name))
		}
		deps = append(deps, depRecord.Instance)
	}

	create, err := ResolveCreateFunc(record.Library)
	if err != nil {
		return hosterrors.NewLibraryError(record.Path, "failed to resolve plug-in entry points", hosterrors.WithCause(err))
	}

	requestFunc := RequestFunc(func(sender string, code uint32, data *uintptr, dataSize *uintptr) uint16 {
		return uint16(router.Route(sender, code, data, dataSize))
	})

	instance, err := create(requestFunc, deps)
	if err != nil {
		return hosterrors.NewPluginError(record.Name, "createPlugin failed", err)
	}

	if err := instance.Loaded(deps); err != nil {
		return hosterrors.NewPluginError(record.Name, "Loaded hook failed", err)
	}

	record.Instance = instance
	record.State = StateActivated
	return nil
}

// Unload releases every activated plug-in in reverse load order, then
// drains any record never included in that order. On full success the
// registry, discovery order, and searched-locations set are all emptied,
// leaving the manager indistinguishable from a freshly constructed one.
func (m *Manager) Unload(reporter Reporter) Outcome {
	if reporter == nil {
		reporter = noopReporter
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	releasedAll := true
	seen := make(map[string]struct{}, len(m.loadOrder))

	for i := len(m.loadOrder) - 1; i >= 0; i-- {
		name := m.loadOrder[i]
		seen[name] = struct{}{}
		record, ok := m.records.Get(name)
		if !ok {
			continue
		}
		if !m.releaseRecord(record, reporter) {
			releasedAll = false
		}
	}

	for _, name := range m.discoverOrder {
		if _, already := seen[name]; already {
			continue
		}
		record, ok := m.records.Get(name)
		if !ok {
			continue
		}
		if !m.releaseRecord(record, reporter) {
			releasedAll = false
		}
	}

	m.loadOrder = nil

	if !releasedAll {
		return UnloadNotAll
	}

	m.records.Clear()
	m.discoverOrder = nil
	m.locations = make(map[string]struct{})
	return Success
}

func (m *Manager) releaseRecord(record *PluginRecord, reporter Reporter) bool {
	if record.State == StateReleased {
		return true
	}

	if record.Instance != nil {
		record.State = StateUnloadPending
		record.Instance.AboutToBeUnloaded()
		record.Instance = nil
	}

	freed := true
	if record.Library != nil && record.Library.Loaded() {
		var err error
		freed, err = record.Library.Unload()
		if err != nil {
			reporter(record.Name, UnloadNotAll, err.Error())
		}
	}

	record.State = StateReleased
	return freed
}

// Count returns the number of discovered records.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.records.Count()
}

// List returns every discovered plug-in's name, in discovery order.
func (m *Manager) List() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.discoverOrder))
	copy(out, m.discoverOrder)
	return out
}

// Locations returns the directories installed at least one record during a
// Search call.
func (m *Manager) Locations() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.locations))
	for dir := range m.locations {
		out = append(out, dir)
	}
	return out
}

// Has reports whether name was discovered.
func (m *Manager) Has(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.records.Has(name)
}

// HasVersion reports whether name was discovered and its version is
// compatible with minVersion under the same-major/have>=want rule.
func (m *Manager) HasVersion(name, minVersion string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	record, ok := m.records.Get(name)
	if !ok {
		return false
	}
	return depgraph.CompatibleStrings(record.Info.Version, minVersion)
}

// IsLoaded reports whether name is present, its library loaded, and its
// instance activated.
func (m *Manager) IsLoaded(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	record, ok := m.records.Get(name)
	if !ok {
		return false
	}
	return record.Library != nil && record.Library.Loaded() && record.IsActivated()
}

// Info returns an immutable metadata snapshot for name.
func (m *Manager) Info(name string) (Metadata, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	record, ok := m.records.Get(name)
	if !ok {
		return Metadata{}, false
	}
	return record.Info, true
}

// PluginObject returns the activated instance for name, or nil if absent or
// not yet activated.
func (m *Manager) PluginObject(name string) Plugin {
	m.mu.Lock()
	defer m.mu.Unlock()
	record, ok := m.records.Get(name)
	if !ok {
		return nil
	}
	return record.Instance
}

// The following methods satisfy RouterHost, letting a RequestRouter answer
// manager-directed requests without holding the manager's lock itself
// (each call below takes it independently).

// AppDirectory implements RouterHost.
func (m *Manager) AppDirectory() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.config.AppDirectory
}

// HostAPIVersion implements RouterHost.
func (m *Manager) HostAPIVersion() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.config.HostAPIVersion
}

// RecordByName implements RouterHost.
func (m *Manager) RecordByName(name string) (*PluginRecord, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.records.Get(name)
}

// RecordCount implements RouterHost.
func (m *Manager) RecordCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.records.Count()
}

// DependsOn implements RouterHost: it reports whether sender declared
// receiver as a dependency in its metadata.
func (m *Manager) DependsOn(sender, receiver string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	record, ok := m.records.Get(sender)
	if !ok {
		return false
	}
	for _, dep := range record.Info.Dependencies {
		if dep.Name == receiver {
			return true
		}
	}
	return false
}
