package pluginhost

import (
	"fmt"
	"unsafe"

	"github.com/ebitengine/purego"

	"github.com/hostkit/pluginhost/internal/dynlib"
)

// Per-instance lifecycle hooks, redesigned for a cgo-free host.
//
// The native ABI describes createPlugin returning an instance
// that "derives from the host's plug-in interface" — a C++-style
// polymorphic object whose loaded/aboutToBeUnloaded/handleRequest methods
// are virtual-dispatch calls through the instance pointer. Go cannot make
// such a call without cgo, and this host is deliberately cgo-free.
//
// Redesigning this convention for a different
// memory model, a plug-in built for this host additionally exports three
// flat, C-linkage functions taking the instance pointer as an explicit
// first argument, instead of vtable slots:
//
//	pluginLoaded(instance, depsArray, depsCount) int32
//	pluginAboutToBeUnloaded(instance)
//	pluginHandleRequest(instance, senderName, code, data, dataSize) uint16
//
// createPlugin itself keeps its native signature and returns only the
// opaque instance pointer; these three symbols are resolved once per
// library, not once per instance, and dispatch on the instance pointer
// passed explicitly by the manager.
const (
	symCreatePlugin          = "createPlugin"
	symPluginLoaded          = "pluginLoaded"
	symPluginAboutToBeUnload = "pluginAboutToBeUnloaded"
	symPluginHandleRequest   = "pluginHandleRequest"
	symPluginMainExec        = "mainPluginExec"
)

type nativeCreateFunc func(router uintptr, deps uintptr, count uintptr) uintptr
type nativeLoadedFunc func(instance uintptr, deps uintptr, count uintptr) int32
type nativeUnloadFunc func(instance uintptr)
type nativeRequestFunc func(instance uintptr, senderName uintptr, code uint32, data *uintptr, dataSize *uintptr) uint16
type nativeMainExecFunc func(instance uintptr) int32

// nativePlugin bridges a dlopen'd instance pointer to the Plugin interface.
type nativePlugin struct {
	instance uintptr

	loadedFn   nativeLoadedFunc
	unloadedFn nativeUnloadFunc
	requestFn  nativeRequestFunc
	mainExecFn nativeMainExecFunc
}

func (p *nativePlugin) Loaded(deps []Plugin) error {
	if p.loadedFn == nil {
		return nil
	}
	depsPtr, count := depsToNativeArray(deps)
	if code := p.loadedFn(p.instance, depsPtr, count); code != 0 {
		return fmt.Errorf("pluginhost: loaded hook returned code %d", code)
	}
	return nil
}

func (p *nativePlugin) AboutToBeUnloaded() {
	if p.unloadedFn != nil {
		p.unloadedFn(p.instance)
	}
}

func (p *nativePlugin) HandleRequest(senderName string, code uint32, data *uintptr, dataSize *uintptr) uint16 {
	if p.requestFn == nil {
		return uint16(ReplyUnknownRequest)
	}
	sender := senderName
	senderPtr := uintptr(unsafe.Pointer(&sender))
	return p.requestFn(p.instance, senderPtr, code, data, dataSize)
}

func (p *nativePlugin) MainPluginExec() int {
	if p.mainExecFn == nil {
		return 0
	}
	return int(p.mainExecFn(p.instance))
}

// depsToNativeArray lays out deps as a contiguous array of instance
// pointers understood by a plug-in's createPlugin/loaded hooks.
func depsToNativeArray(deps []Plugin) (uintptr, uintptr) {
	if len(deps) == 0 {
		return 0, 0
	}
	ptrs := make([]uintptr, len(deps))
	for i, dep := range deps {
		if native, ok := dep.(*nativePlugin); ok {
			ptrs[i] = native.instance
		}
	}
	return uintptr(unsafe.Pointer(&ptrs[0])), uintptr(len(ptrs))
}

// ResolveCreateFunc resolves a record's createPlugin symbol and the flat
// per-instance hook symbols from lib, returning a CreateFunc that invokes
// createPlugin and wraps the resulting instance as a Plugin.
func ResolveCreateFunc(lib *dynlib.Library) (CreateFunc, error) {
	createAddr, err := lib.Symbol(symCreatePlugin)
	if err != nil {
		return nil, fmt.Errorf("pluginhost: %w", err)
	}

	var create nativeCreateFunc
	purego.RegisterFunc(&create, createAddr)

	loadedFn := resolveOptionalLoaded(lib)
	unloadedFn := resolveOptionalUnload(lib)
	requestFn := resolveOptionalRequest(lib)
	mainExecFn := resolveOptionalMainExec(lib)

	return func(router RequestFunc, deps []Plugin) (Plugin, error) {
		routerPtr := purego.NewCallback(func(senderNamePtr uintptr, code uint32, data *uintptr, dataSize *uintptr) uint16 {
			sender := dynlib.ReadCString(senderNamePtr)
			return uint16(router(sender, code, data, dataSize))
		})

		depsPtr, count := depsToNativeArray(deps)
		instance := create(routerPtr, depsPtr, count)
		if instance == 0 {
			return nil, fmt.Errorf("pluginhost: createPlugin returned a null instance")
		}

		return &nativePlugin{
			instance:   instance,
			loadedFn:   loadedFn,
			unloadedFn: unloadedFn,
			requestFn:  requestFn,
			mainExecFn: mainExecFn,
		}, nil
	}, nil
}

func resolveOptionalLoaded(lib *dynlib.Library) nativeLoadedFunc {
	if !lib.HasSymbol(symPluginLoaded) {
		return nil
	}
	addr, err := lib.Symbol(symPluginLoaded)
	if err != nil {
		return nil
	}
	var fn nativeLoadedFunc
	purego.RegisterFunc(&fn, addr)
	return fn
}

func resolveOptionalUnload(lib *dynlib.Library) nativeUnloadFunc {
	if !lib.HasSymbol(symPluginAboutToBeUnload) {
		return nil
	}
	addr, err := lib.Symbol(symPluginAboutToBeUnload)
	if err != nil {
		return nil
	}
	var fn nativeUnloadFunc
	purego.RegisterFunc(&fn, addr)
	return fn
}

func resolveOptionalRequest(lib *dynlib.Library) nativeRequestFunc {
	if !lib.HasSymbol(symPluginHandleRequest) {
		return nil
	}
	addr, err := lib.Symbol(symPluginHandleRequest)
	if err != nil {
		return nil
	}
	var fn nativeRequestFunc
	purego.RegisterFunc(&fn, addr)
	return fn
}

func resolveOptionalMainExec(lib *dynlib.Library) nativeMainExecFunc {
	if !lib.HasSymbol(symPluginMainExec) {
		return nil
	}
	addr, err := lib.Symbol(symPluginMainExec)
	if err != nil {
		return nil
	}
	var fn nativeMainExecFunc
	purego.RegisterFunc(&fn, addr)
	return fn
}
