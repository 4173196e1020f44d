// Package pluginhosttest provides in-memory test doubles for exercising
// pluginhost.Manager and its collaborators without a real dlopen'd shared
// object: a fake Plugin implementation and builders for well-formed (or
// deliberately malformed) metadata documents.
package pluginhosttest

import (
	"encoding/json"
	"fmt"

	"github.com/hostkit/pluginhost/pkg/pluginhost"
)

// FakePlugin is a Plugin implementation a test can introspect: it records
// every hook call it receives and lets the test script canned responses.
type FakePlugin struct {
	Name string

	LoadedCalls      int
	LoadedDeps       []pluginhost.Plugin
	LoadedErr        error
	UnloadedCalls    int
	HandleRequestFn  func(sender string, code uint32, data *uintptr, dataSize *uintptr) uint16
	MainExecCalls    int
	MainExecResult   int
}

// NewFakePlugin returns a FakePlugin that accepts every hook call by
// default.
func NewFakePlugin(name string) *FakePlugin {
	return &FakePlugin{Name: name}
}

func (p *FakePlugin) Loaded(deps []pluginhost.Plugin) error {
	p.LoadedCalls++
	p.LoadedDeps = deps
	return p.LoadedErr
}

func (p *FakePlugin) AboutToBeUnloaded() {
	p.UnloadedCalls++
}

func (p *FakePlugin) HandleRequest(sender string, code uint32, data *uintptr, dataSize *uintptr) uint16 {
	if p.HandleRequestFn != nil {
		return p.HandleRequestFn(sender, code, data, dataSize)
	}
	return uint16(pluginhost.ReplySuccess)
}

// MainPluginExec satisfies pluginhost.MainPlugin.
func (p *FakePlugin) MainPluginExec() int {
	p.MainExecCalls++
	return p.MainExecResult
}

// MetadataBuilder assembles a JSON metadata document field by field, for
// tests that need to probe the decoder's validation rules one field at a
// time.
type MetadataBuilder struct {
	fields map[string]interface{}
}

// NewMetadataBuilder starts from a complete, valid metadata document for
// name/version, with no declared dependencies.
func NewMetadataBuilder(name, version string) *MetadataBuilder {
	return &MetadataBuilder{
		fields: map[string]interface{}{
			"api":          "1.0.0",
			"name":         name,
			"prettyName":   fmt.Sprintf("%s Plug-in", name),
			"version":      version,
			"author":       "test",
			"url":          "https://example.test/" + name,
			"license":      "MIT",
			"copyright":    "2026 test",
			"dependencies": []map[string]string{},
		},
	}
}

// WithDependency appends a declared dependency.
func (b *MetadataBuilder) WithDependency(name, version string) *MetadataBuilder {
	deps, _ := b.fields["dependencies"].([]map[string]string)
	deps = append(deps, map[string]string{"name": name, "version": version})
	b.fields["dependencies"] = deps
	return b
}

// WithoutField removes a required field, for negative decoding tests.
func (b *MetadataBuilder) WithoutField(name string) *MetadataBuilder {
	delete(b.fields, name)
	return b
}

// WithAPI overrides the declared host API version.
func (b *MetadataBuilder) WithAPI(api string) *MetadataBuilder {
	b.fields["api"] = api
	return b
}

// JSON renders the current field set as a JSON document.
func (b *MetadataBuilder) JSON() []byte {
	out, err := json.Marshal(b.fields)
	if err != nil {
		panic(err)
	}
	return out
}
