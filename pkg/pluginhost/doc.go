// Package pluginhost implements a native, same-process plug-in lifecycle
// engine: discovery of dynamic shared objects, dependency resolution and
// ordering, activation and deactivation, and a request router that
// mediates every inter-plugin call.
//
// A host embeds one Manager, configures it with a ManagerConfig, and
// drives it through three phases: Search discovers candidate shared
// objects under a directory and installs a record for each one that
// exports a complete, parseable plug-in ABI; Load resolves dependencies,
// topologically orders the discovered plug-ins, and activates them in
// that order; Unload tears every activated plug-in back down, leaves
// before roots.
package pluginhost
