package page

// closer is the part of an overlay the navigator needs.
type closer interface {
	Close() bool
	AfterClose(fn func())
}

// Navigator is the single entry point for "go to section" affordances.
type Navigator struct {
	host     Host
	overlays []closer
	// gen is bumped on every NavigateTo; a scroll only fires if no newer
	// navigation was requested while it waited on overlays.
	gen uint64
}

func newNavigator(host Host, overlays ...closer) *Navigator {
	return &Navigator{host: host, overlays: overlays}
}

// NavigateTo closes every open overlay, waits for their exit transitions
// and then smooth-scrolls to the element with the given id. Unknown ids are
// ignored. When called again before the scroll fires, only the latest call
// scrolls.
func (n *Navigator) NavigateTo(id string) {
	if n.host == nil {
		return
	}
	n.gen++
	gen := n.gen

	pending := 1
	fire := func() {
		pending--
		if pending > 0 || gen != n.gen || n.host == nil {
			return
		}
		n.host.ScrollIntoView(id)
	}
	// An overlay closed by an earlier navigation may still be animating
	// out, so wait on every overlay, not only the ones closed here.
	for _, o := range n.overlays {
		o.Close()
		pending++
		o.AfterClose(fire)
	}
	fire()
}

func (n *Navigator) detach() {
	n.host = nil
}
