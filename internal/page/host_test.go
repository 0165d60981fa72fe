package page

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Zachkp/devfolio/internal/content"
)

// fakeHost is an in-memory Host with hand-set geometry.
type fakeHost struct {
	viewport float64
	tops     map[string]float64

	scrolls   []string
	locked    bool
	lockCalls []bool
	renders   []State

	nextID    int
	scrollFns map[int]func(float64)
	keyFns    map[int]func(string)
}

func newFakeHost(ids ...string) *fakeHost {
	h := &fakeHost{
		viewport:  800,
		tops:      make(map[string]float64),
		scrollFns: make(map[int]func(float64)),
		keyFns:    make(map[int]func(string)),
	}
	for i, id := range ids {
		h.tops[id] = float64(i) * 1000
	}
	return h
}

func (h *fakeHost) ViewportHeight() float64 { return h.viewport }

func (h *fakeHost) SectionTop(id string) (float64, bool) {
	top, ok := h.tops[id]
	return top, ok
}

func (h *fakeHost) ScrollIntoView(id string) bool {
	if _, ok := h.tops[id]; !ok {
		return false
	}
	h.scrolls = append(h.scrolls, id)
	return true
}

func (h *fakeHost) LockScroll(locked bool) {
	h.locked = locked
	h.lockCalls = append(h.lockCalls, locked)
}

func (h *fakeHost) OnScroll(fn func(float64)) func() {
	id := h.nextID
	h.nextID++
	h.scrollFns[id] = fn
	return func() { delete(h.scrollFns, id) }
}

func (h *fakeHost) OnKey(fn func(string)) func() {
	id := h.nextID
	h.nextID++
	h.keyFns[id] = fn
	return func() { delete(h.keyFns, id) }
}

func (h *fakeHost) Render(s State) {
	h.renders = append(h.renders, s)
}

func (h *fakeHost) lastRender() State {
	if len(h.renders) == 0 {
		return State{}
	}
	return h.renders[len(h.renders)-1]
}

// scroll applies new section tops and fires the scroll listeners.
func (h *fakeHost) scroll(scrollTop float64, tops map[string]float64) {
	for id, top := range tops {
		h.tops[id] = top
	}
	for _, fn := range snapshot(h.scrollFns) {
		fn(scrollTop)
	}
}

func (h *fakeHost) press(key string) {
	for _, fn := range snapshot(h.keyFns) {
		fn(key)
	}
}

func (h *fakeHost) listeners() int {
	return len(h.scrollFns) + len(h.keyFns)
}

func snapshot[F any](m map[int]F) []F {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	out := make([]F, 0, len(keys))
	for _, k := range keys {
		out = append(out, m[k])
	}
	return out
}

// transitionHost defers every exit transition until finish is called.
type transitionHost struct {
	*fakeHost
	exits   []string
	pending []func()
}

func (h *transitionHost) Exit(overlay string, done func()) {
	h.exits = append(h.exits, overlay)
	h.pending = append(h.pending, done)
}

func (h *transitionHost) finish() {
	pending := h.pending
	h.pending = nil
	for _, done := range pending {
		done()
	}
}

var sectionIDs = []string{"home", "about", "skills", "projects", "contact"}

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	sections := make([]content.Section, 0, len(sectionIDs))
	for _, id := range sectionIDs {
		sections = append(sections, content.Section{ID: id, Name: id})
	}
	r, err := NewRegistry(sections)
	require.NoError(t, err)
	return r
}
