package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/vango-dev/markup/internal/errors"
	"github.com/vango-dev/markup/pkg/content"
	"github.com/vango-dev/markup/pkg/document"
	"github.com/vango-dev/markup/pkg/element"
)

// sources names the files that fill the document slots.
type sources struct {
	head     string
	body     string
	sanitize bool
}

// merge fills empty fields of s from the config's document section.
func (s sources) merge(head, body string, sanitize bool) sources {
	if s.head == "" {
		s.head = head
	}
	if s.body == "" {
		s.body = body
	}
	s.sanitize = s.sanitize || sanitize
	return s
}

// paths returns the non-empty source paths.
func (s sources) paths() []string {
	var out []string
	for _, p := range []string{s.head, s.body} {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// buildDocument reads the sources and composes the document. Without a
// body source the head-only form is used. trailer, when not nil, is
// rendered after the body.
func buildDocument(s sources, trailer element.Element) (element.Element, error) {
	head, err := loadSource(s.head)
	if err != nil {
		return nil, err
	}
	start := document.StartWithHead(head)

	if s.body == "" && trailer == nil {
		return start, nil
	}

	body, err := loadSource(s.body)
	if err != nil {
		return nil, err
	}
	if s.sanitize {
		body = content.Sanitized(nil, body)
	}
	if trailer != nil {
		body = element.Sequence(body, trailer)
	}
	return start.WithBody(body), nil
}

// loadSource reads path into an element. Markdown files are converted;
// everything else is used verbatim. An empty path is element.None.
func loadSource(path string) (element.Element, error) {
	if path == "" {
		return element.None, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("E002").
			WithDetail("Could not read " + path + ".").
			Wrap(err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return content.Markdown(data), nil
	default:
		return content.Raw(data), nil
	}
}
