package pluginhost

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePlugin struct {
	loadedWith []Plugin
	handled    func(sender string, code uint32, data *uintptr, dataSize *uintptr) uint16
}

func (p *fakePlugin) Loaded(deps []Plugin) error {
	p.loadedWith = deps
	return nil
}

func (p *fakePlugin) AboutToBeUnloaded() {}

func (p *fakePlugin) HandleRequest(sender string, code uint32, data *uintptr, dataSize *uintptr) uint16 {
	if p.handled != nil {
		return p.handled(sender, code, data, dataSize)
	}
	return uint16(ReplySuccess)
}

type fakeRouterHost struct {
	appDir  string
	apiVer  string
	records map[string]*PluginRecord
	deps    map[string]map[string]bool
}

func (h *fakeRouterHost) AppDirectory() string    { return h.appDir }
func (h *fakeRouterHost) HostAPIVersion() string  { return h.apiVer }
func (h *fakeRouterHost) RecordCount() int        { return len(h.records) }
func (h *fakeRouterHost) RecordByName(name string) (*PluginRecord, bool) {
	r, ok := h.records[name]
	return r, ok
}
func (h *fakeRouterHost) DependsOn(sender, receiver string) bool {
	return h.deps[sender][receiver]
}

func newFakeHost() *fakeRouterHost {
	return &fakeRouterHost{
		appDir:  "/opt/app",
		apiVer:  "1.0.0",
		records: map[string]*PluginRecord{},
		deps:    map[string]map[string]bool{},
	}
}

func slotFor(s string) uintptr {
	v := s
	return uintptr(unsafe.Pointer(&v))
}

func TestRequestRouter_GetAppDirectory(t *testing.T) {
	host := newFakeHost()
	router := NewRequestRouter(host)

	var data uintptr
	var size uintptr
	code := router.Route("caller", uint32(GetAppDirectory), &data, &size)

	assert.Equal(t, ReplySuccess, code)
	assert.Equal(t, uintptr(len("/opt/app")), size)
}

func TestRequestRouter_GetAppDirectory_NullSize(t *testing.T) {
	host := newFakeHost()
	router := NewRequestRouter(host)

	var data uintptr
	code := router.Route("caller", uint32(GetAppDirectory), &data, nil)

	assert.Equal(t, ReplyDataSizeNull, code)
}

func TestRequestRouter_GetPluginsCount(t *testing.T) {
	host := newFakeHost()
	host.records["a"] = recordFor("a", "1.0.0")
	host.records["b"] = recordFor("b", "1.0.0")
	router := NewRequestRouter(host)

	var data uintptr
	var size uintptr
	code := router.Route("caller", uint32(GetPluginsCount), &data, &size)

	assert.Equal(t, ReplySuccess, code)
	assert.Equal(t, uintptr(2), data)
}

func TestRequestRouter_CheckPlugin(t *testing.T) {
	host := newFakeHost()
	host.records["a"] = recordFor("a", "1.0.0")
	router := NewRequestRouter(host)

	present := slotFor("a")
	absent := slotFor("ghost")

	assert.Equal(t, ReplyTrue, router.Route("caller", uint32(CheckPlugin), &present, nil))
	assert.Equal(t, ReplyFalse, router.Route("caller", uint32(CheckPlugin), &absent, nil))
}

func TestRequestRouter_CheckPluginLoaded(t *testing.T) {
	host := newFakeHost()
	activated := recordFor("a", "1.0.0")
	activated.Instance = &fakePlugin{}
	host.records["a"] = activated
	host.records["b"] = recordFor("b", "1.0.0")
	router := NewRequestRouter(host)

	loadedSlot := slotFor("a")
	notLoadedSlot := slotFor("b")

	assert.Equal(t, ReplyTrue, router.Route("caller", uint32(CheckPluginLoaded), &loadedSlot, nil))
	assert.Equal(t, ReplyFalse, router.Route("caller", uint32(CheckPluginLoaded), &notLoadedSlot, nil))
}

func TestRequestRouter_UnknownRequest(t *testing.T) {
	host := newFakeHost()
	router := NewRequestRouter(host)

	code := router.Route("caller", 99, nil, nil)
	assert.Equal(t, ReplyUnknownRequest, code)
}

func TestRequestRouter_PeerToPeer_NotADependency(t *testing.T) {
	host := newFakeHost()
	host.records["b"] = recordFor("b", "1.0.0")
	router := NewRequestRouter(host)

	receiver := slotFor("b")
	code := router.Route("a", 150, &receiver, nil)
	assert.Equal(t, ReplyNotADependency, code)
}

func TestRequestRouter_PeerToPeer_Dispatches(t *testing.T) {
	host := newFakeHost()
	target := recordFor("b", "1.0.0")
	called := false
	target.Instance = &fakePlugin{handled: func(sender string, code uint32, data, dataSize *uintptr) uint16 {
		called = true
		assert.Equal(t, "a", sender)
		return uint16(ReplySuccess)
	}}
	host.records["b"] = target
	host.deps["a"] = map[string]bool{"b": true}
	router := NewRequestRouter(host)

	receiver := slotFor("b")
	code := router.Route("a", 150, &receiver, nil)

	require.True(t, called)
	assert.Equal(t, ReplySuccess, code)
}

func TestRequestRouter_PeerToPeer_ReceiverNotActivated(t *testing.T) {
	host := newFakeHost()
	host.records["b"] = recordFor("b", "1.0.0")
	host.deps["a"] = map[string]bool{"b": true}
	router := NewRequestRouter(host)

	receiver := slotFor("b")
	code := router.Route("a", 150, &receiver, nil)
	assert.Equal(t, ReplyNotFound, code)
}
