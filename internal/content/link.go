package content

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// placeholderHref is what hand-written content uses for "no link yet".
const placeholderHref = "#"

// Link is an optional URL. The zero value is an absent link.
type Link struct {
	url string
}

// NewLink builds a Link from raw content. Blank strings and the "#"
// placeholder both produce an absent link.
func NewLink(raw string) Link {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == placeholderHref {
		return Link{}
	}
	return Link{url: raw}
}

// URL returns the target and whether the link is set.
func (l Link) URL() (string, bool) {
	return l.url, l.url != ""
}

// IsSet reports whether the link points anywhere.
func (l Link) IsSet() bool {
	return l.url != ""
}

func (l Link) String() string {
	return l.url
}

func (l *Link) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return fmt.Errorf("link at line %d: %w", node.Line, err)
	}
	*l = NewLink(raw)
	return nil
}

func (l Link) MarshalYAML() (any, error) {
	return l.url, nil
}

func (l Link) MarshalJSON() ([]byte, error) {
	if l.url == "" {
		return []byte("null"), nil
	}
	return json.Marshal(l.url)
}

func (l *Link) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*l = Link{}
		return nil
	}
	*l = NewLink(*raw)
	return nil
}
