package content

import (
	"io"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"github.com/vango-dev/markup/pkg/element"
)

// MarkdownElement converts Markdown to HTML each time it renders.
type MarkdownElement struct {
	src   []byte
	flags html.Flags
}

// Markdown returns an element that renders src as HTML. Common Markdown
// extensions and automatic heading IDs are enabled.
func Markdown(src []byte) MarkdownElement {
	return MarkdownElement{src: src, flags: html.CommonFlags}
}

// WithFlags returns a copy using the given HTML renderer flags.
func (m MarkdownElement) WithFlags(flags html.Flags) MarkdownElement {
	m.flags = flags
	return m
}

// Render writes the converted HTML.
func (m MarkdownElement) Render(w io.Writer) error {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	r := html.NewRenderer(html.RendererOptions{Flags: m.flags})

	// The parser may rewrite its input; keep src untouched for the next render.
	src := append([]byte(nil), m.src...)
	_, err := w.Write(markdown.ToHTML(src, p, r))
	return err
}

// Raw returns file contents as an element rendered verbatim.
func Raw(b []byte) element.Bytes {
	return element.Bytes(b)
}
