// Package content reads site collections: Markdown files whose YAML
// front-matter describes a project or a post.
package content

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hammamikhairi/ottodough/internal/domain"
)

const delimiter = "---"

// Date accepts both bare YAML dates and quoted strings.
type Date struct {
	time.Time
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"January 2, 2006",
	"Jan 2, 2006",
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Date) UnmarshalYAML(n *yaml.Node) error {
	v := strings.TrimSpace(n.Value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("line %d: unrecognized date %q", n.Line, v)
}

// ProjectMeta is the front-matter of a projects entry.
type ProjectMeta struct {
	Order          *int     `yaml:"order"`
	Date           *Date    `yaml:"date" validate:"required"`
	Image          string   `yaml:"image"`
	Title          string   `yaml:"title" validate:"required"`
	Description    string   `yaml:"description" validate:"required"`
	Role           string   `yaml:"role"`
	Featured       *bool    `yaml:"featured" validate:"required"`
	Stack          []string `yaml:"stack"`
	AdditionalTech []string `yaml:"additionalTech"`
	Github         string   `yaml:"github" validate:"omitempty,url"`
	Live           string   `yaml:"live" validate:"omitempty,url"`
}

// PostMeta is the front-matter of a posts entry.
type PostMeta struct {
	Title       string `yaml:"title" validate:"required"`
	Description string `yaml:"description" validate:"required"`
	Date        *Date  `yaml:"date" validate:"required"`
	Image       string `yaml:"image"`
}

// SplitFrontMatter separates the YAML block from the body. The block must
// start on the first line and be closed by a line holding only "---".
func SplitFrontMatter(data []byte) (front, body []byte, err error) {
	data = bytes.TrimPrefix(data, []byte("\ufeff"))
	lines := bytes.SplitAfter(data, []byte("\n"))
	if len(lines) == 0 || string(bytes.TrimSpace(lines[0])) != delimiter {
		return nil, nil, fmt.Errorf("%w: missing front-matter", domain.ErrInvalidContent)
	}

	offset := len(lines[0])
	for _, l := range lines[1:] {
		if string(bytes.TrimSpace(l)) == delimiter {
			front = data[len(lines[0]):offset]
			body = data[offset+len(l):]
			return front, body, nil
		}
		offset += len(l)
	}
	return nil, nil, fmt.Errorf("%w: unterminated front-matter", domain.ErrInvalidContent)
}

// ParseFrontMatter decodes the front-matter of data into out and validates
// it. The remaining Markdown body is returned.
func ParseFrontMatter(data []byte, out any) ([]byte, error) {
	front, body, err := SplitFrontMatter(data)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(front, out); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidContent, err)
	}
	if err := validate.Struct(out); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidContent, err)
	}
	return body, nil
}
