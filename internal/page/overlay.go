package page

// Overlay names reported to Transitioner.Exit.
const (
	OverlayMenu    = "menu"
	OverlayProject = "project"
	OverlayResume  = "resume"
)

// Overlay is Closed or Open(payload). While open it holds an Escape key
// listener; modal overlays also hold the container scroll lock.
type Overlay[T any] struct {
	name     string
	modal    bool
	host     Host
	lock     *scrollLock
	onChange func()

	open       bool
	payload    T
	releaseKey func()

	// closeSeq identifies the latest close so a stale exit transition
	// cannot settle a newer one.
	closeSeq uint64
	settling bool
	waiters  []func()
}

func newOverlay[T any](name string, modal bool, host Host, lock *scrollLock, onChange func()) *Overlay[T] {
	return &Overlay[T]{
		name:     name,
		modal:    modal,
		host:     host,
		lock:     lock,
		onChange: onChange,
	}
}

func (o *Overlay[T]) IsOpen() bool {
	return o.open
}

// Payload returns the payload while open.
func (o *Overlay[T]) Payload() (T, bool) {
	return o.payload, o.open
}

// Open shows the overlay. Opening an open overlay swaps its payload.
func (o *Overlay[T]) Open(payload T) {
	if o.host == nil {
		return
	}
	o.payload = payload
	if !o.open {
		o.open = true
		o.releaseKey = o.host.OnKey(o.handleKey)
		if o.modal {
			o.lock.acquire()
		}
	}
	o.onChange()
}

// Close hides the overlay and starts its exit transition. It reports
// false when the overlay was already closed.
func (o *Overlay[T]) Close() bool {
	if o.host == nil || !o.open {
		return false
	}
	o.release()
	o.onChange()

	o.closeSeq++
	seq := o.closeSeq
	o.settling = true
	if tr, ok := o.host.(Transitioner); ok {
		tr.Exit(o.name, func() { o.settle(seq) })
	} else {
		o.settle(seq)
	}
	return true
}

// Toggle opens a closed overlay and closes an open one.
func (o *Overlay[T]) Toggle(payload T) {
	if o.open {
		o.Close()
		return
	}
	o.Open(payload)
}

// AfterClose runs fn once the current exit transition has finished, or
// right away when none is running.
func (o *Overlay[T]) AfterClose(fn func()) {
	if !o.settling {
		fn()
		return
	}
	o.waiters = append(o.waiters, fn)
}

func (o *Overlay[T]) handleKey(key string) {
	if key == KeyEscape {
		o.Close()
	}
}

func (o *Overlay[T]) settle(seq uint64) {
	if seq != o.closeSeq || !o.settling {
		return
	}
	o.settling = false
	waiters := o.waiters
	o.waiters = nil
	for _, fn := range waiters {
		fn()
	}
}

func (o *Overlay[T]) release() {
	var zero T
	o.open = false
	o.payload = zero
	if o.releaseKey != nil {
		o.releaseKey()
		o.releaseKey = nil
	}
	if o.modal {
		o.lock.release()
	}
}

// detach drops the overlay from its host without transitions or renders.
func (o *Overlay[T]) detach() {
	if o.open {
		o.release()
	}
	o.settling = false
	o.waiters = nil
	o.host = nil
}

// scrollLock keeps the container locked while any modal overlay is open.
type scrollLock struct {
	host  Host
	count int
}

func (l *scrollLock) acquire() {
	l.count++
	if l.count == 1 {
		l.host.LockScroll(true)
	}
}

func (l *scrollLock) release() {
	if l.count == 0 {
		return
	}
	l.count--
	if l.count == 0 {
		l.host.LockScroll(false)
	}
}

func (l *scrollLock) held() bool {
	return l.count > 0
}
