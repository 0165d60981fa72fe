//go:build js && wasm

package dom

import (
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"syscall/js"

	"github.com/Zachkp/devfolio/internal/content"
	"github.com/Zachkp/devfolio/internal/page"
)

// Host is a page.Host backed by the server-rendered document. Every callback
// it hands to JavaScript runs on the browser event loop.
type Host struct {
	win       js.Value
	doc       js.Value
	container js.Value
	nav       js.Value
}

var _ page.Host = (*Host)(nil)
var _ page.Transitioner = (*Host)(nil)

// New binds the scroll container matched by selector.
func New(selector string) (*Host, error) {
	win := js.Global()
	doc := win.Get("document")
	container := doc.Call("querySelector", selector)
	if container.IsNull() {
		return nil, fmt.Errorf("scroll container %q not found", selector)
	}
	return &Host{
		win:       win,
		doc:       doc,
		container: container,
		nav:       doc.Call("querySelector", "[data-nav-bar]"),
	}, nil
}

// ReadPortfolio decodes the page data the server embedded in the script
// element with the given id.
func ReadPortfolio(id string) (*content.Portfolio, error) {
	el := js.Global().Get("document").Call("getElementById", id)
	if el.IsNull() {
		return nil, fmt.Errorf("page data element %q not found", id)
	}
	var p content.Portfolio
	if err := json.Unmarshal([]byte(el.Get("textContent").String()), &p); err != nil {
		return nil, fmt.Errorf("decode page data: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

func (h *Host) ViewportHeight() float64 {
	return h.win.Get("innerHeight").Float()
}

func (h *Host) SectionTop(id string) (float64, bool) {
	el := h.doc.Call("getElementById", id)
	if el.IsNull() {
		return 0, false
	}
	return el.Call("getBoundingClientRect").Get("top").Float(), true
}

func (h *Host) ScrollIntoView(id string) bool {
	el := h.doc.Call("getElementById", id)
	if el.IsNull() {
		return false
	}
	el.Call("scrollIntoView", map[string]any{"behavior": "smooth", "block": "start"})
	return true
}

func (h *Host) LockScroll(locked bool) {
	overflow := ""
	if locked {
		overflow = "hidden"
	}
	h.container.Get("style").Set("overflow", overflow)
}

func (h *Host) OnScroll(fn func(scrollTop float64)) func() {
	return listen(h.container, "scroll", func(js.Value) {
		fn(h.container.Get("scrollTop").Float())
	}, map[string]any{"passive": true})
}

func (h *Host) OnKey(fn func(key string)) func() {
	return listen(h.doc, "keydown", func(ev js.Value) {
		fn(ev.Get("key").String())
	}, nil)
}

// OnPageHide runs fn once when the page is being unloaded.
func (h *Host) OnPageHide(fn func()) func() {
	return listen(h.win, "pagehide", func(js.Value) { fn() }, map[string]any{"once": true})
}

func (h *Host) Render(s page.State) {
	each(h.doc.Call("querySelectorAll", ".nav-link[data-nav]"), func(el js.Value) {
		el.Get("classList").Call("toggle", "active", dataset(el, "nav") == s.Active)
	})
	if !h.nav.IsNull() {
		h.nav.Get("classList").Call("toggle", "scrolled", s.Scrolled)
	}

	each(h.overlays(page.OverlayMenu), func(el js.Value) { show(el, s.MenuOpen) })
	each(h.overlays(page.OverlayResume), func(el js.Value) { show(el, s.ResumeOpen) })
	each(h.overlays(page.OverlayProject), func(el js.Value) {
		show(el, s.ProjectID != 0 && dataset(el, "project") == strconv.Itoa(s.ProjectID))
	})
}

// Exit waits for the fade-out of every element of the named overlay that
// Render marked as closing, then hides them and calls done. A timer derived
// from the computed transition-duration stands in for a transitionend event
// that never fires.
func (h *Host) Exit(overlay string, done func()) {
	var closing []js.Value
	each(h.overlays(overlay), func(el js.Value) {
		if dataset(el, "open") == "false" {
			closing = append(closing, el)
		}
	})
	if len(closing) == 0 {
		done()
		return
	}

	remaining := len(closing)
	for _, el := range closing {
		el := el
		var (
			release func()
			timer   js.Func
			timerID js.Value
		)
		finished := false
		finish := func() {
			if finished {
				return
			}
			finished = true
			release()
			h.win.Call("clearTimeout", timerID)
			timer.Release()
			// Reopened while fading out.
			if dataset(el, "open") == "false" {
				el.Set("hidden", true)
				el.Get("dataset").Delete("open")
			}
			remaining--
			if remaining == 0 {
				done()
			}
		}

		release = listen(el, "transitionend", func(ev js.Value) {
			if ev.Get("target").Equal(el) {
				finish()
			}
		}, nil)

		style := h.win.Call("getComputedStyle", el)
		wait := longestTransition(style.Get("transitionDuration").String()) + exitGrace
		timer = js.FuncOf(func(js.Value, []js.Value) any {
			finish()
			return nil
		})
		timerID = h.win.Call("setTimeout", timer, wait.Milliseconds())
	}
}

func (h *Host) overlays(name string) js.Value {
	return h.doc.Call("querySelectorAll", `[data-overlay="`+name+`"]`)
}

func show(el js.Value, open bool) {
	ds := el.Get("dataset")
	switch {
	case open:
		if el.Get("hidden").Bool() {
			el.Set("hidden", false)
			// Flush styles so the fade starts from the hidden state.
			el.Get("offsetWidth")
		}
		ds.Set("open", "true")
	case dataset(el, "open") == "true":
		ds.Set("open", "false")
	}
}

func dataset(el js.Value, key string) string {
	v := el.Get("dataset").Get(key)
	if v.IsUndefined() || v.IsNull() {
		return ""
	}
	return v.String()
}

func each(list js.Value, fn func(js.Value)) {
	n := list.Length()
	for i := 0; i < n; i++ {
		fn(list.Index(i))
	}
}

// listen adds an event listener and returns its release function.
func listen(target js.Value, event string, fn func(ev js.Value), opts map[string]any) func() {
	cb := js.FuncOf(func(_ js.Value, args []js.Value) any {
		var ev js.Value
		if len(args) > 0 {
			ev = args[0]
		}
		fn(ev)
		return nil
	})
	if opts != nil {
		target.Call("addEventListener", event, cb, opts)
	} else {
		target.Call("addEventListener", event, cb)
	}
	released := false
	return func() {
		if released {
			return
		}
		released = true
		target.Call("removeEventListener", event, cb)
		cb.Release()
	}
}

func logf(format string, args ...any) {
	log.Printf("[dom] "+format, args...)
}
