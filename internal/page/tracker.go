package page

// DefaultScrollThreshold is the scroll offset past which the navigation bar
// switches to its opaque treatment.
const DefaultScrollThreshold = 50

// Tracker derives the active section and the scrolled flag from scroll
// events.
type Tracker struct {
	registry  *Registry
	host      Host
	threshold float64
	active    string
	scrolled  bool
}

func NewTracker(registry *Registry, threshold float64) *Tracker {
	return &Tracker{
		registry:  registry,
		threshold: threshold,
		active:    registry.First().ID,
	}
}

// Attach binds the tracker to a host. A detached tracker ignores scrolls.
func (t *Tracker) Attach(h Host) {
	t.host = h
}

func (t *Tracker) Detach() {
	t.host = nil
}

// Active is always a registered section id.
func (t *Tracker) Active() string {
	return t.active
}

func (t *Tracker) Scrolled() bool {
	return t.scrolled
}

// OnScroll updates the scrolled flag and picks the first section, in
// registry order, whose top lies in [-vh/2, vh/2). When no section is in
// that window the active section is kept. It reports whether anything
// changed.
func (t *Tracker) OnScroll(scrollTop float64) bool {
	if t.host == nil {
		return false
	}
	changed := false

	scrolled := scrollTop > t.threshold
	if scrolled != t.scrolled {
		t.scrolled = scrolled
		changed = true
	}

	half := t.host.ViewportHeight() / 2
	for _, s := range t.registry.sections {
		top, ok := t.host.SectionTop(s.ID)
		if !ok {
			continue
		}
		if top >= -half && top < half {
			if s.ID != t.active {
				t.active = s.ID
				changed = true
			}
			break
		}
	}
	return changed
}
