// Package preview renders the portfolio page in a terminal. It is a second
// page.Host: sections are blocks of lines, one line is one unit of scroll
// and overlay fades are timed ticks on the Bubble Tea event loop.
package preview

import (
	"maps"
	"slices"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Zachkp/devfolio/internal/page"
)

const (
	defaultFrameInterval = 16 * time.Millisecond
	defaultExitDelay     = 150 * time.Millisecond
)

type Option func(*Host)

// WithFrameInterval sets the delay between smooth-scroll frames.
func WithFrameInterval(d time.Duration) Option {
	return func(h *Host) { h.frame = d }
}

// WithExitDelay sets how long an overlay takes to fade out. Zero closes
// overlays instantly.
func WithExitDelay(d time.Duration) Option {
	return func(h *Host) { h.exitDelay = d }
}

type (
	scrollFrameMsg struct{ seq uint64 }
	exitDoneMsg    struct {
		overlay string
		done    func()
	}
)

type block struct {
	id    string
	start int
	lines []string
}

// Host is a virtual screen. It is only touched from Model.Update, so the
// callbacks it runs share the Bubble Tea goroutine with the page state.
type Host struct {
	width  int
	height int
	blocks []block
	total  int

	offset    int
	target    int
	animating bool
	animSeq   uint64
	locked    bool

	frame     time.Duration
	exitDelay time.Duration

	scrollFns listeners[float64]
	keyFns    listeners[string]

	state   page.State
	closing map[string]bool
	pending []tea.Cmd
}

var _ page.Host = (*Host)(nil)
var _ page.Transitioner = (*Host)(nil)

func newHost(opts ...Option) *Host {
	h := &Host{
		height:    1,
		frame:     defaultFrameInterval,
		exitDelay: defaultExitDelay,
		closing:   make(map[string]bool),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Host) ViewportHeight() float64 {
	return float64(h.height)
}

func (h *Host) SectionTop(id string) (float64, bool) {
	b, ok := h.block(id)
	if !ok {
		return 0, false
	}
	return float64(b.start - h.offset), true
}

func (h *Host) ScrollIntoView(id string) bool {
	b, ok := h.block(id)
	if !ok {
		return false
	}
	h.target = h.clamp(b.start)
	if h.target == h.offset {
		h.animating = false
		return true
	}
	h.animSeq++
	h.animating = true
	h.schedule(h.frameCmd())
	return true
}

func (h *Host) LockScroll(locked bool) {
	h.locked = locked
}

func (h *Host) OnScroll(fn func(scrollTop float64)) func() {
	return h.scrollFns.add(fn)
}

func (h *Host) OnKey(fn func(key string)) func() {
	return h.keyFns.add(fn)
}

func (h *Host) Render(s page.State) {
	h.state = s
}

// Exit keeps the overlay in its closing state for the exit delay.
func (h *Host) Exit(overlay string, done func()) {
	if h.exitDelay <= 0 {
		done()
		return
	}
	h.closing[overlay] = true
	h.schedule(tea.Tick(h.exitDelay, func(time.Time) tea.Msg {
		return exitDoneMsg{overlay: overlay, done: done}
	}))
}

func (h *Host) exited(msg exitDoneMsg) {
	delete(h.closing, msg.overlay)
	msg.done()
}

// Closing reports whether the named overlay is fading out.
func (h *Host) Closing(overlay string) bool {
	return h.closing[overlay]
}

func (h *Host) Offset() int {
	return h.offset
}

func (h *Host) Locked() bool {
	return h.locked
}

// resize sets the viewport size. Callers lay the blocks out again after.
func (h *Host) resize(width, height int) {
	h.width = width
	h.height = max(height, 1)
}

// layout places blocks top to bottom. The last block is padded to a full
// viewport so navigating to it can bring it to the top.
func (h *Host) layout(blocks []block) {
	start := 0
	for i := range blocks {
		blocks[i].start = start
		if i == len(blocks)-1 {
			for len(blocks[i].lines) < h.height {
				blocks[i].lines = append(blocks[i].lines, "")
			}
		}
		start += len(blocks[i].lines)
	}
	h.blocks = blocks
	h.total = start
	h.target = h.clamp(h.target)

	offset := h.clamp(h.offset)
	h.offset = offset
	h.scrollFns.emit(float64(offset))
}

// scrollBy is a user scroll. It is ignored while scrolling is locked and
// cancels any running smooth scroll.
func (h *Host) scrollBy(lines int) {
	h.scrollTo(h.offset + lines)
}

func (h *Host) scrollTo(offset int) {
	if h.locked {
		return
	}
	h.animating = false
	h.setOffset(offset)
	h.target = h.offset
}

func (h *Host) step(msg scrollFrameMsg) {
	if !h.animating || msg.seq != h.animSeq {
		return
	}
	d := h.target - h.offset
	s := d / 3
	if s == 0 {
		s = d
	}
	before := h.offset
	h.setOffset(h.offset + s)
	if h.offset == h.target || h.offset == before {
		h.animating = false
		return
	}
	h.schedule(h.frameCmd())
}

func (h *Host) setOffset(offset int) {
	offset = h.clamp(offset)
	if offset == h.offset {
		return
	}
	h.offset = offset
	h.scrollFns.emit(float64(offset))
}

func (h *Host) press(key string) {
	h.keyFns.emit(key)
}

func (h *Host) frameCmd() tea.Cmd {
	seq := h.animSeq
	return tea.Tick(h.frame, func(time.Time) tea.Msg {
		return scrollFrameMsg{seq: seq}
	})
}

func (h *Host) schedule(cmd tea.Cmd) {
	h.pending = append(h.pending, cmd)
}

// flush hands the commands queued by host callbacks back to Bubble Tea.
func (h *Host) flush() tea.Cmd {
	cmds := h.pending
	h.pending = nil
	return tea.Batch(cmds...)
}

func (h *Host) maxOffset() int {
	return max(h.total-h.height, 0)
}

func (h *Host) clamp(offset int) int {
	return min(max(offset, 0), h.maxOffset())
}

func (h *Host) block(id string) (block, bool) {
	for _, b := range h.blocks {
		if b.id == id {
			return b, true
		}
	}
	return block{}, false
}

// visible returns the lines currently inside the viewport.
func (h *Host) visible() []string {
	out := make([]string, 0, h.height)
	for _, b := range h.blocks {
		for i, line := range b.lines {
			n := b.start + i
			if n >= h.offset && n < h.offset+h.height {
				out = append(out, line)
			}
		}
	}
	for len(out) < h.height {
		out = append(out, "")
	}
	return out
}

// listeners calls registered callbacks in registration order. Callbacks
// may release themselves or others while an emit is running.
type listeners[T any] struct {
	next int
	fns  map[int]func(T)
}

func (l *listeners[T]) add(fn func(T)) func() {
	if l.fns == nil {
		l.fns = make(map[int]func(T))
	}
	id := l.next
	l.next++
	l.fns[id] = fn
	return func() { delete(l.fns, id) }
}

func (l *listeners[T]) emit(v T) {
	for _, id := range slices.Sorted(maps.Keys(l.fns)) {
		if fn, ok := l.fns[id]; ok {
			fn(v)
		}
	}
}

func (l *listeners[T]) len() int {
	return len(l.fns)
}
