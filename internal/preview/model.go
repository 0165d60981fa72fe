package preview

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Zachkp/devfolio/internal/content"
	"github.com/Zachkp/devfolio/internal/page"
)

// scrollThreshold is the scrolled-flag threshold in lines.
const scrollThreshold = 2

// chrome is the number of rows taken by the nav bar and the status line.
const chrome = 2

// Model is the Bubble Tea model driving a mounted page.View.
type Model struct {
	portfolio *content.Portfolio
	host      *Host
	view      *page.View

	cursor int
	width  int
	height int
	ready  bool
}

var _ tea.Model = (*Model)(nil)

// New mounts the page for p onto a terminal host.
func New(p *content.Portfolio, opts ...Option) (*Model, error) {
	registry, err := page.NewRegistry(p.Sections)
	if err != nil {
		return nil, err
	}
	h := newHost(opts...)
	return &Model{
		portfolio: p,
		host:      h,
		view:      page.Mount(h, registry, page.WithScrollThreshold(scrollThreshold)),
	}, nil
}

// Run shows the preview full screen until the user quits or ctx ends.
func Run(ctx context.Context, p *content.Portfolio, opts ...Option) error {
	m, err := New(p, opts...)
	if err != nil {
		return err
	}
	defer m.view.Unmount()

	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	return nil
}

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.host.resize(msg.Width, msg.Height-chrome)
		m.relayout()

	case tea.KeyMsg:
		if quit := m.handleKey(msg.String()); quit {
			return m, tea.Quit
		}

	case scrollFrameMsg:
		m.host.step(msg)

	case exitDoneMsg:
		m.host.exited(msg)
	}

	return m, m.host.flush()
}

func (m *Model) handleKey(key string) bool {
	if key == "esc" {
		m.host.press(page.KeyEscape)
		return false
	}
	m.host.press(key)

	sections := m.view.Registry().Sections()
	switch key {
	case "ctrl+c", "q":
		return true
	case "up", "k":
		m.host.scrollBy(-1)
	case "down", "j":
		m.host.scrollBy(1)
	case "pgup":
		m.host.scrollBy(-m.host.height)
	case "pgdown", " ":
		m.host.scrollBy(m.host.height)
	case "home", "g":
		m.host.scrollTo(0)
	case "end", "G":
		m.host.scrollTo(m.host.maxOffset())
	case "m":
		m.view.ToggleMenu()
	case "tab", "shift+tab":
		if n := len(m.portfolio.Projects); n > 0 && !m.overlayOpen() {
			step := 1
			if key == "shift+tab" {
				step = n - 1
			}
			m.cursor = (m.cursor + step) % n
			m.relayout()
		}
	case "enter", "p":
		if len(m.portfolio.Projects) > 0 {
			m.view.OpenProject(m.portfolio.Projects[m.cursor])
		}
	case "r":
		if m.portfolio.HasResume() {
			m.view.OpenResume()
		}
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if i := int(key[0] - '1'); i < len(sections) {
				m.view.NavigateTo(sections[i].ID)
			}
		}
	}
	return false
}

func (m *Model) overlayOpen() bool {
	s := m.view.State()
	return s.MenuOpen || s.ProjectID != 0 || s.ResumeOpen
}

func (m *Model) relayout() {
	sections := m.view.Registry().Sections()
	m.host.layout(renderBlocks(m.portfolio, sections, m.width, m.cursor))
}

func (m *Model) View() string {
	if !m.ready {
		return ""
	}
	s := m.host.state
	sections := m.view.Registry().Sections()

	nav := renderNav(m.portfolio, sections, s, m.width)
	body := strings.Join(m.host.visible(), "\n")
	bodyHeight := m.host.height

	paneWidth := min(m.width-4, 76)
	switch {
	case s.ProjectID != 0:
		if pr, ok := m.portfolio.Project(s.ProjectID); ok {
			body = lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center,
				renderProjectPane(pr, paneWidth))
		}
	case s.ResumeOpen:
		body = lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center,
			renderResumePane(m.portfolio, paneWidth))
	case s.MenuOpen:
		body = lipgloss.Place(m.width, bodyHeight, lipgloss.Right, lipgloss.Top,
			renderMenu(sections, s.Active))
	}

	status := fmt.Sprintf("1-%d jump · ↑/↓ scroll · m menu · r resume · q quit", len(sections))
	if m.host.locked {
		status = "esc close · q quit"
	}
	return lipgloss.JoinVertical(lipgloss.Left, nav, body, statusStyle.Render(status))
}

// State exposes the page state for tests and callers embedding the model.
func (m *Model) State() page.State {
	return m.view.State()
}
