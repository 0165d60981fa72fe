// Package page tracks which section of the portfolio page is in focus,
// scrolls between sections and keeps overlay state.
//
// Nothing here touches a browser directly. A View is mounted into a Host
// (the DOM in the wasm build, a virtual screen in the terminal preview) and
// every read or write of geometry, scrolling and listeners goes through it.
// A View is driven from a single event loop and is not safe for concurrent
// use.
package page

// KeyEscape is the key name hosts report for the Escape key.
const KeyEscape = "Escape"

// Host is the surface a View is mounted into.
type Host interface {
	// ViewportHeight is the visible height of the scroll container.
	ViewportHeight() float64
	// SectionTop returns the top edge of the element with the given id,
	// relative to the top of the viewport. ok is false when the element
	// is not rendered.
	SectionTop(id string) (top float64, ok bool)
	// ScrollIntoView smooth-scrolls the element with the given id so its
	// top meets the viewport top. It reports false when there is no such
	// element.
	ScrollIntoView(id string) bool
	// LockScroll disables or re-enables scrolling of the container.
	LockScroll(locked bool)
	// OnScroll registers fn for scroll events of the container.
	OnScroll(fn func(scrollTop float64)) (release func())
	// OnKey registers fn for key presses.
	OnKey(fn func(key string)) (release func())
	// Render receives every state change.
	Render(State)
}

// Transitioner is implemented by hosts whose overlays animate out. Exit
// calls done once the named overlay's exit transition has finished; it may
// call done before returning.
type Transitioner interface {
	Exit(overlay string, done func())
}

// State is the snapshot handed to Host.Render.
type State struct {
	Active     string
	Scrolled   bool
	MenuOpen   bool
	ProjectID  int
	ResumeOpen bool
}
