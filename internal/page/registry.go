package page

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Zachkp/devfolio/internal/content"
)

var ErrEmptyRegistry = errors.New("registry needs at least one section")

// Registry is the ordered, immutable list of page sections.
type Registry struct {
	sections []content.Section
	index    map[string]int
}

func NewRegistry(sections []content.Section) (*Registry, error) {
	if len(sections) == 0 {
		return nil, ErrEmptyRegistry
	}
	r := &Registry{
		sections: make([]content.Section, len(sections)),
		index:    make(map[string]int, len(sections)),
	}
	for i, s := range sections {
		if strings.TrimSpace(s.ID) == "" {
			return nil, fmt.Errorf("section %d has no id", i)
		}
		if _, dup := r.index[s.ID]; dup {
			return nil, fmt.Errorf("duplicate section id %q", s.ID)
		}
		r.sections[i] = s
		r.index[s.ID] = i
	}
	return r, nil
}

// Sections returns the sections in page order.
func (r *Registry) Sections() []content.Section {
	out := make([]content.Section, len(r.sections))
	copy(out, r.sections)
	return out
}

func (r *Registry) First() content.Section {
	return r.sections[0]
}

func (r *Registry) Lookup(id string) (content.Section, bool) {
	i, ok := r.index[id]
	if !ok {
		return content.Section{}, false
	}
	return r.sections[i], true
}

func (r *Registry) Len() int {
	return len(r.sections)
}
