// Package content holds the static records the portfolio page is built from.
//
// Records are loaded once at startup, either from the compiled-in table or
// from a YAML override file, and are never mutated afterwards.
package content

// Section is a named, scroll-addressable region of the page.
type Section struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
}

type Stat struct {
	Value string `yaml:"value" json:"value"`
	Label string `yaml:"label" json:"label"`
}

// Profile is the hero and about copy. About is markdown.
type Profile struct {
	Name     string `yaml:"name" json:"name"`
	Brand    string `yaml:"brand" json:"brand"`
	Greeting string `yaml:"greeting" json:"greeting"`
	Headline string `yaml:"headline" json:"headline"`
	Role     string `yaml:"role" json:"role"`
	Intro    string `yaml:"intro" json:"intro"`
	Tagline  string `yaml:"tagline" json:"tagline"`
	About    string `yaml:"about" json:"about"`
	Stats    []Stat `yaml:"stats" json:"stats"`
}

type SkillGroup struct {
	Title  string   `yaml:"title" json:"title"`
	Accent string   `yaml:"accent" json:"accent"`
	Skills []string `yaml:"skills" json:"skills"`
}

type Experience struct {
	ID         int      `yaml:"id" json:"id"`
	Period     string   `yaml:"period" json:"period"`
	Role       string   `yaml:"role" json:"role"`
	Company    string   `yaml:"company" json:"company"`
	Highlights []string `yaml:"highlights" json:"highlights"`
}

type Education struct {
	School string   `yaml:"school" json:"school"`
	Degree string   `yaml:"degree" json:"degree"`
	Period string   `yaml:"period" json:"period"`
	Notes  []string `yaml:"notes" json:"notes"`
}

type Certificate struct {
	Name   string `yaml:"name" json:"name"`
	Issuer string `yaml:"issuer" json:"issuer"`
	Date   string `yaml:"date" json:"date"`
	Link   Link   `yaml:"link" json:"link"`
}

type Award struct {
	Title       string `yaml:"title" json:"title"`
	Issuer      string `yaml:"issuer" json:"issuer"`
	Date        string `yaml:"date" json:"date"`
	Description string `yaml:"description" json:"description"`
}

type Activity struct {
	Title       string `yaml:"title" json:"title"`
	Period      string `yaml:"period" json:"period"`
	Description string `yaml:"description" json:"description"`
	Link        Link   `yaml:"link" json:"link"`
}

// Project is a showcase entry. Details is markdown rendered in the detail
// overlay; Summary is the plain-text card blurb.
type Project struct {
	ID       int      `yaml:"id" json:"id"`
	Title    string   `yaml:"title" json:"title"`
	Period   string   `yaml:"period" json:"period"`
	Summary  string   `yaml:"summary" json:"summary"`
	Details  string   `yaml:"details" json:"details"`
	Stack    []string `yaml:"stack" json:"stack"`
	Features []string `yaml:"features" json:"features"`
	Repo     Link     `yaml:"repo" json:"repo"`
	Demo     Link     `yaml:"demo" json:"demo"`
	Image    Link     `yaml:"image" json:"image"`
}

// HasDemo reports whether the "Live Demo" affordance should be shown.
func (p Project) HasDemo() bool {
	return p.Demo.IsSet()
}

// cardStackLimit is how many stack tags a project card shows before "+N".
const cardStackLimit = 3

// CardStack returns the tags shown on the project card.
func (p Project) CardStack() []string {
	if len(p.Stack) <= cardStackLimit {
		return p.Stack
	}
	return p.Stack[:cardStackLimit]
}

// HiddenStack is the number of tags folded into the card's "+N" badge.
func (p Project) HiddenStack() int {
	if len(p.Stack) <= cardStackLimit {
		return 0
	}
	return len(p.Stack) - cardStackLimit
}

type ContactLink struct {
	Label string `yaml:"label" json:"label"`
	Kind  string `yaml:"kind" json:"kind"`
	URL   Link   `yaml:"url" json:"url"`
}

// Portfolio is the full static table.
type Portfolio struct {
	Profile      Profile       `yaml:"profile" json:"profile"`
	Sections     []Section     `yaml:"sections" json:"sections"`
	Skills       []SkillGroup  `yaml:"skills" json:"skills"`
	Experiences  []Experience  `yaml:"experiences" json:"experiences"`
	Education    []Education   `yaml:"education" json:"education"`
	Certificates []Certificate `yaml:"certificates" json:"certificates"`
	Awards       []Award       `yaml:"awards" json:"awards"`
	Activities   []Activity    `yaml:"activities" json:"activities"`
	Projects     []Project     `yaml:"projects" json:"projects"`
	Contacts     []ContactLink `yaml:"contacts" json:"contacts"`
	Footer       string        `yaml:"footer" json:"footer"`
}

// Project looks a project up by id.
func (p *Portfolio) Project(id int) (Project, bool) {
	for _, pr := range p.Projects {
		if pr.ID == id {
			return pr, true
		}
	}
	return Project{}, false
}

// HasResume reports whether there is anything to show in the resume panel.
func (p *Portfolio) HasResume() bool {
	return len(p.Education)+len(p.Certificates)+len(p.Awards)+len(p.Activities) > 0
}
