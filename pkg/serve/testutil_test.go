package serve

import (
	"errors"
	"io"
	"strings"

	"github.com/vango-dev/markup/pkg/document"
	"github.com/vango-dev/markup/pkg/element"
)

var errRender = errors.New("render exploded")

// failAfter writes prefix and then fails.
type failAfter struct {
	prefix string
}

func (f failAfter) Render(w io.Writer) error {
	if f.prefix != "" {
		if _, err := io.WriteString(w, f.prefix); err != nil {
			return err
		}
	}
	return errRender
}

func testPage(body string) element.Element {
	return document.StartWithHead(element.Text("<head><title>t</title></head>")).
		WithBody(element.Text("<body>" + body + "</body>"))
}

func bigPage(n int) element.Element {
	return document.StartWithHead(element.None).WithBody(element.Text(strings.Repeat("x", n)))
}
