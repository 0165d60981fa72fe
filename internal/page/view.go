package page

import "github.com/Zachkp/devfolio/internal/content"

type options struct {
	threshold float64
}

type Option func(*options)

// WithScrollThreshold overrides DefaultScrollThreshold.
func WithScrollThreshold(px float64) Option {
	return func(o *options) {
		o.threshold = px
	}
}

// View is the page state for one mount of the page into a host: active
// section, scrolled flag and the three overlay families.
type View struct {
	host     Host
	registry *Registry
	tracker  *Tracker
	nav      *Navigator
	lock     *scrollLock

	Menu    *Overlay[struct{}]
	Project *Overlay[content.Project]
	Resume  *Overlay[struct{}]

	releaseScroll func()
}

// Mount attaches a new View to host, registers its scroll listener and
// renders the initial state.
func Mount(host Host, registry *Registry, opts ...Option) *View {
	o := options{threshold: DefaultScrollThreshold}
	for _, opt := range opts {
		opt(&o)
	}

	v := &View{
		host:     host,
		registry: registry,
		tracker:  NewTracker(registry, o.threshold),
		lock:     &scrollLock{host: host},
	}
	v.tracker.Attach(host)
	v.Menu = newOverlay[struct{}](OverlayMenu, false, host, v.lock, v.render)
	v.Project = newOverlay[content.Project](OverlayProject, true, host, v.lock, v.render)
	v.Resume = newOverlay[struct{}](OverlayResume, true, host, v.lock, v.render)
	v.nav = newNavigator(host, v.Menu, v.Project, v.Resume)

	v.releaseScroll = host.OnScroll(v.handleScroll)
	v.render()
	return v
}

// Unmount releases every listener the view holds and detaches it from the
// host. Every operation on an unmounted view is a no-op.
func (v *View) Unmount() {
	if v.host == nil {
		return
	}
	v.Menu.detach()
	v.Project.detach()
	v.Resume.detach()
	if v.releaseScroll != nil {
		v.releaseScroll()
		v.releaseScroll = nil
	}
	v.nav.detach()
	v.tracker.Detach()
	v.host = nil
}

func (v *View) Mounted() bool {
	return v.host != nil
}

func (v *View) Registry() *Registry {
	return v.registry
}

// NavigateTo is the handler for every navigation link and call to action.
func (v *View) NavigateTo(id string) {
	v.nav.NavigateTo(id)
}

// OnScroll feeds a scroll offset to the tracker. Hosts normally deliver
// scrolls through the listener registered on mount.
func (v *View) OnScroll(scrollTop float64) {
	v.handleScroll(scrollTop)
}

func (v *View) Active() string {
	return v.tracker.Active()
}

func (v *View) Scrolled() bool {
	return v.tracker.Scrolled()
}

// ScrollLocked reports whether a modal overlay currently blocks scrolling.
func (v *View) ScrollLocked() bool {
	return v.lock.held()
}

func (v *View) ToggleMenu() {
	v.Menu.Toggle(struct{}{})
}

func (v *View) OpenProject(p content.Project) {
	v.Project.Open(p)
}

func (v *View) OpenResume() {
	v.Resume.Open(struct{}{})
}

// CloseAll closes every open overlay and reports whether any was open.
func (v *View) CloseAll() bool {
	closed := v.Menu.Close()
	closed = v.Project.Close() || closed
	closed = v.Resume.Close() || closed
	return closed
}

// CloseOverlay closes the overlay called name, as a backdrop or close
// button does. It reports false for an unknown name or a closed overlay.
func (v *View) CloseOverlay(name string) bool {
	switch name {
	case OverlayMenu:
		return v.Menu.Close()
	case OverlayProject:
		return v.Project.Close()
	case OverlayResume:
		return v.Resume.Close()
	}
	return false
}

func (v *View) State() State {
	s := State{
		Active:     v.tracker.Active(),
		Scrolled:   v.tracker.Scrolled(),
		MenuOpen:   v.Menu.IsOpen(),
		ResumeOpen: v.Resume.IsOpen(),
	}
	if p, ok := v.Project.Payload(); ok {
		s.ProjectID = p.ID
	}
	return s
}

func (v *View) handleScroll(scrollTop float64) {
	if v.tracker.OnScroll(scrollTop) {
		v.render()
	}
}

func (v *View) render() {
	if v.host == nil {
		return
	}
	v.host.Render(v.State())
}
