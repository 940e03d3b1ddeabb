package document

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/vango-dev/markup/pkg/element"
)

var (
	_ element.Named = HeadOnly[element.Text]{}
	_ element.Named = Document[element.Text, element.Absent]{}
)

var errSink = errors.New("sink closed")

type limitWriter struct {
	limit int
	buf   bytes.Buffer
}

func (w *limitWriter) Write(p []byte) (int, error) {
	if w.buf.Len()+len(p) > w.limit {
		return 0, errSink
	}
	return w.buf.Write(p)
}

func render(t *testing.T, e element.Element) string {
	t.Helper()

	got, err := element.String(e)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return got
}

func TestRenderBasicHTML(t *testing.T) {
	head := element.Text("<head></head>")
	body := element.Text("<body></body>")

	html := StartWithHead(head).WithBody(body)

	want := "<!DOCTYPE html><html><head></head><body></body></html>"
	if got := render(t, html); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderShape(t *testing.T) {
	tests := []struct {
		name string
		head element.Element
		body element.Element
	}{
		{name: "text slots", head: element.Text("<head><title>t</title></head>"), body: element.Text("<body>x</body>")},
		{name: "absent head", head: element.None, body: element.Text("<body></body>")},
		{name: "absent body", head: element.Text("<head></head>"), body: element.None},
		{name: "tag slots", head: element.Sequence(element.Open(element.Text("head")), element.Close(element.Text("head"))), body: element.Textf("<body>%d</body>", 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := "<!DOCTYPE html><html>" + render(t, tt.head) + render(t, tt.body) + "</html>"
			got := render(t, StartWithHead(tt.head).WithBody(tt.body))
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("render mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRenderHeadOnly(t *testing.T) {
	head := element.Text("<head></head>")

	got := render(t, StartWithHead(head))
	want := "<!DOCTYPE html><html><head></head></html>"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderAbsentHeadOnly(t *testing.T) {
	got := render(t, StartWithHead(element.None))
	if got != "<!DOCTYPE html><html></html>" {
		t.Errorf("got %q, want %q", got, "<!DOCTYPE html><html></html>")
	}
}

func TestWithBodyKeepsStaticType(t *testing.T) {
	d := WithBody(StartWithHead(element.Text("h")), element.Open(element.Text("main")))

	var body element.OpeningTag[element.Text] = d.Body()
	if got := render(t, body); got != "<main>" {
		t.Errorf("body = %q, want %q", got, "<main>")
	}
	if d.Head() != element.Text("h") {
		t.Errorf("head = %q, want %q", d.Head(), "h")
	}
}

func TestWithBodyReturnsNewValue(t *testing.T) {
	start := StartWithHead(element.Text("<head></head>"))
	a := start.WithBody(element.Text("A"))
	b := start.WithBody(element.Text("B"))

	if got := render(t, start); got != "<!DOCTYPE html><html><head></head></html>" {
		t.Errorf("head-only document changed: %q", got)
	}
	if got := render(t, a); !strings.Contains(got, "A</html>") {
		t.Errorf("a = %q", got)
	}
	if got := render(t, b); !strings.Contains(got, "B</html>") {
		t.Errorf("b = %q", got)
	}
}

func TestNilBodyRendersEmpty(t *testing.T) {
	got := render(t, StartWithHead(element.Text("h")).WithBody(nil))
	if got != "<!DOCTYPE html><html>h</html>" {
		t.Errorf("got %q", got)
	}
}

func TestElementName(t *testing.T) {
	if got := element.NameOf[HeadOnly[element.Text]](); got != "html" {
		t.Errorf("HeadOnly name = %q, want html", got)
	}
	if got := element.NameOf[Document[element.Text, element.Text]](); got != "html" {
		t.Errorf("Document name = %q, want html", got)
	}
}

func TestDocumentNestsAsElement(t *testing.T) {
	inner := StartWithHead(element.None)
	outer := element.Open(inner)

	if got := render(t, outer); got != "<<!DOCTYPE html><html></html>>" {
		t.Errorf("got %q", got)
	}
}

func TestRenderIsRepeatable(t *testing.T) {
	d := StartWithHead(element.Text("<head></head>")).WithBody(element.Textf("<body>%s</body>", "x"))

	first := render(t, d)
	second := render(t, d)
	if first != second {
		t.Errorf("render not repeatable: %q then %q", first, second)
	}
}

func TestConcurrentRender(t *testing.T) {
	d := StartWithHead(element.Text("<head></head>")).WithBody(element.Text("<body></body>"))
	want := render(t, d)

	var wg sync.WaitGroup
	results := make([]string, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var buf bytes.Buffer
			if err := d.Render(&buf); err == nil {
				results[i] = buf.String()
			}
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		if got != want {
			t.Errorf("goroutine %d: got %q, want %q", i, got, want)
		}
	}
}

func TestRenderPropagatesWriterError(t *testing.T) {
	d := StartWithHead(element.Text("<head></head>")).WithBody(element.Text("<body></body>"))
	full := render(t, d)

	for limit := 0; limit < len(full); limit++ {
		w := &limitWriter{limit: limit}
		err := d.Render(w)
		if err != errSink {
			t.Fatalf("limit %d: got error %v, want %v", limit, err, errSink)
		}
		if !strings.HasPrefix(full, w.buf.String()) {
			t.Errorf("limit %d: partial output %q is not a prefix of %q", limit, w.buf.String(), full)
		}
	}

	// A fresh sink renders the whole document again.
	if got := render(t, d); got != full {
		t.Errorf("re-render = %q, want %q", got, full)
	}
}
