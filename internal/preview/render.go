package preview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Zachkp/devfolio/internal/content"
	"github.com/Zachkp/devfolio/internal/page"
)

// renderBlocks renders one block per registered section, in page order.
func renderBlocks(p *content.Portfolio, sections []content.Section, width, cursor int) []block {
	width = max(width-2, 10)
	blocks := make([]block, 0, len(sections))
	for _, s := range sections {
		lines := []string{headingStyle.Render("── " + s.Name + " ──"), ""}
		switch s.ID {
		case "home":
			lines = append(lines, renderHome(p, width)...)
		case "about":
			lines = append(lines, renderAbout(p, width)...)
		case "skills":
			lines = append(lines, renderSkills(p, width)...)
		case "projects":
			lines = append(lines, renderProjects(p, width, cursor)...)
		case "contact":
			lines = append(lines, renderContact(p)...)
		}
		lines = append(lines, "")
		blocks = append(blocks, block{id: s.ID, lines: lines})
	}
	return blocks
}

func renderHome(p *content.Portfolio, width int) []string {
	var lines []string
	lines = append(lines, mutedStyle.Render(p.Profile.Greeting))
	lines = append(lines, lipgloss.NewStyle().Bold(true).Render(p.Profile.Headline))
	lines = append(lines, accentStyle.Render(p.Profile.Role), "")
	lines = append(lines, wrap(p.Profile.Intro, width)...)
	return lines
}

func renderAbout(p *content.Portfolio, width int) []string {
	var lines []string
	if p.Profile.Tagline != "" {
		lines = append(lines, accentStyle.Render(p.Profile.Tagline), "")
	}
	lines = append(lines, wrap(plain(p.Profile.About), width)...)
	if len(p.Profile.Stats) > 0 {
		stats := make([]string, 0, len(p.Profile.Stats))
		for _, st := range p.Profile.Stats {
			stats = append(stats, accentStyle.Render(st.Value)+" "+mutedStyle.Render(st.Label))
		}
		lines = append(lines, "", strings.Join(stats, "   "))
	}
	for _, e := range p.Experiences {
		lines = append(lines, "", lipgloss.NewStyle().Bold(true).Render(e.Role)+" · "+e.Company+" "+mutedStyle.Render(e.Period))
		for _, hl := range e.Highlights {
			lines = append(lines, wrap("• "+hl, width)...)
		}
	}
	if p.HasResume() {
		lines = append(lines, "", mutedStyle.Render("[r] Education & Certificates"))
	}
	return lines
}

func renderSkills(p *content.Portfolio, width int) []string {
	var lines []string
	for _, g := range p.Skills {
		lines = append(lines, lipgloss.NewStyle().Bold(true).Render(g.Title))
		lines = append(lines, wrap(tags(g.Skills), width)...)
		lines = append(lines, "")
	}
	return lines
}

func renderProjects(p *content.Portfolio, width, cursor int) []string {
	var lines []string
	for i, pr := range p.Projects {
		marker := "  "
		title := lipgloss.NewStyle().Bold(true).Render(pr.Title)
		if i == cursor {
			marker = cursorStyle.Render("▸ ")
			title = cursorStyle.Render(pr.Title)
		}
		lines = append(lines, marker+title+" "+mutedStyle.Render(pr.Period))
		for _, l := range wrap(pr.Summary, width-2) {
			lines = append(lines, "  "+l)
		}
		stack := tags(pr.CardStack())
		if n := pr.HiddenStack(); n > 0 {
			stack += " " + mutedStyle.Render(fmt.Sprintf("+%d", n))
		}
		lines = append(lines, "  "+stack, "")
	}
	if len(p.Projects) > 0 {
		lines = append(lines, mutedStyle.Render("[tab] select  [enter] details"))
	}
	return lines
}

func renderContact(p *content.Portfolio) []string {
	var lines []string
	for _, c := range p.Contacts {
		u, ok := c.URL.URL()
		if !ok {
			continue
		}
		lines = append(lines, lipgloss.NewStyle().Bold(true).Render(c.Label)+"  "+mutedStyle.Render(u))
	}
	if p.Footer != "" {
		lines = append(lines, "", mutedStyle.Render(p.Footer))
	}
	return lines
}

func renderNav(p *content.Portfolio, sections []content.Section, s page.State, width int) string {
	parts := []string{brandStyle.Render(p.Profile.Brand)}
	for i, sec := range sections {
		label := fmt.Sprintf("%d %s", i+1, sec.Name)
		if sec.ID == s.Active {
			parts = append(parts, navActiveStyle.Render(label))
		} else {
			parts = append(parts, navLinkStyle.Render(label))
		}
	}
	style := navStyle
	if s.Scrolled {
		style = navScrolledStyle
	}
	return style.Width(width).Render(strings.Join(parts, "  "))
}

func renderMenu(sections []content.Section, active string) string {
	lines := make([]string, 0, len(sections))
	for i, sec := range sections {
		label := fmt.Sprintf("%d  %s", i+1, sec.Name)
		if sec.ID == active {
			label = navActiveStyle.Render(label)
		}
		lines = append(lines, label)
	}
	return menuStyle.Render(strings.Join(lines, "\n"))
}

func renderProjectPane(pr content.Project, width int) string {
	inner := max(width-6, 10)
	var lines []string
	lines = append(lines, accentStyle.Render(pr.Title)+"  "+mutedStyle.Render(pr.Period), "")
	lines = append(lines, headingStyle.Render("Project Overview"))
	lines = append(lines, wrap(plain(pr.Details), inner)...)
	if len(pr.Features) > 0 {
		lines = append(lines, "", headingStyle.Render("Key Features"))
		for _, f := range pr.Features {
			lines = append(lines, wrap("• "+f, inner)...)
		}
	}
	lines = append(lines, "", headingStyle.Render("Tech Stack"))
	lines = append(lines, wrap(tags(pr.Stack), inner)...)
	lines = append(lines, "")
	if u, ok := pr.Repo.URL(); ok {
		lines = append(lines, "GitHub Repo  "+mutedStyle.Render(u))
	}
	if u, ok := pr.Demo.URL(); ok {
		lines = append(lines, "Live Demo    "+mutedStyle.Render(u))
	}
	lines = append(lines, "", mutedStyle.Render("[esc] close"))
	return paneStyle.Width(width).Render(strings.Join(lines, "\n"))
}

func renderResumePane(p *content.Portfolio, width int) string {
	inner := max(width-6, 10)
	var lines []string
	if len(p.Education) > 0 {
		lines = append(lines, headingStyle.Render("Education"))
		for _, e := range p.Education {
			lines = append(lines, lipgloss.NewStyle().Bold(true).Render(e.Degree)+", "+e.School+" "+mutedStyle.Render(e.Period))
			for _, n := range e.Notes {
				lines = append(lines, wrap("• "+n, inner)...)
			}
		}
		lines = append(lines, "")
	}
	if len(p.Certificates) > 0 {
		lines = append(lines, headingStyle.Render("Certificates"))
		for _, c := range p.Certificates {
			lines = append(lines, c.Name+", "+c.Issuer+" "+mutedStyle.Render(c.Date))
		}
		lines = append(lines, "")
	}
	if len(p.Awards) > 0 {
		lines = append(lines, headingStyle.Render("Awards"))
		for _, a := range p.Awards {
			lines = append(lines, a.Title+", "+a.Issuer+" "+mutedStyle.Render(a.Date))
			lines = append(lines, wrap(a.Description, inner)...)
		}
		lines = append(lines, "")
	}
	if len(p.Activities) > 0 {
		lines = append(lines, headingStyle.Render("Activities"))
		for _, a := range p.Activities {
			lines = append(lines, a.Title+" "+mutedStyle.Render(a.Period))
			lines = append(lines, wrap(a.Description, inner)...)
		}
		lines = append(lines, "")
	}
	lines = append(lines, mutedStyle.Render("[esc] close"))
	return paneStyle.Width(width).Render(strings.Join(lines, "\n"))
}

func tags(ts []string) string {
	out := make([]string, 0, len(ts))
	for _, t := range ts {
		out = append(out, tagStyle.Render(t))
	}
	return strings.Join(out, " · ")
}

func wrap(text string, width int) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return strings.Split(lipgloss.NewStyle().Width(width).Render(text), "\n")
}

// plain drops the inline markdown emphasis the page copy uses.
func plain(md string) string {
	return strings.NewReplacer("**", "", "__", "", "`", "").Replace(md)
}
