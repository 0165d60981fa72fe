package content

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// ErrInvalid marks content that decoded but breaks a table invariant.
var ErrInvalid = errors.New("invalid content")

//go:embed portfolio.yaml
var defaultTable []byte

var loadDefault = sync.OnceValues(func() (*Portfolio, error) {
	return Decode(bytes.NewReader(defaultTable))
})

// Default returns the compiled-in portfolio. Callers must not mutate it.
func Default() (*Portfolio, error) {
	return loadDefault()
}

// Load returns the portfolio at path, or the compiled-in one when path is
// empty.
func Load(path string) (*Portfolio, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open content %s: %w", path, err)
	}
	defer f.Close()

	p, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("content %s: %w", path, err)
	}
	return p, nil
}

// Decode reads a YAML portfolio and validates it.
func Decode(r io.Reader) (*Portfolio, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var p Portfolio
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks the invariants the page relies on.
func (p *Portfolio) Validate() error {
	if len(p.Sections) == 0 {
		return fmt.Errorf("%w: at least one section is required", ErrInvalid)
	}
	seen := make(map[string]bool, len(p.Sections))
	for i, s := range p.Sections {
		id := s.ID
		if strings.TrimSpace(id) == "" {
			return fmt.Errorf("%w: section %d has no id", ErrInvalid, i)
		}
		if id != strings.TrimSpace(id) {
			return fmt.Errorf("%w: section id %q has surrounding whitespace", ErrInvalid, id)
		}
		if seen[id] {
			return fmt.Errorf("%w: duplicate section id %q", ErrInvalid, id)
		}
		seen[id] = true
	}

	projects := make(map[int]bool, len(p.Projects))
	for i, pr := range p.Projects {
		if pr.ID <= 0 {
			return fmt.Errorf("%w: project %d has non-positive id %d", ErrInvalid, i, pr.ID)
		}
		if projects[pr.ID] {
			return fmt.Errorf("%w: duplicate project id %d", ErrInvalid, pr.ID)
		}
		if strings.TrimSpace(pr.Title) == "" {
			return fmt.Errorf("%w: project %d has no title", ErrInvalid, pr.ID)
		}
		projects[pr.ID] = true
	}
	return nil
}
