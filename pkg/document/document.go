package document

import (
	"io"

	"github.com/vango-dev/markup/pkg/element"
)

// ElementName is the root element name of every document.
const ElementName = "html"

// Document is a document whose head and body slots are both set.
type Document[H, B element.Element] struct {
	head H
	body B
}

// HeadOnly is a document whose body has not been supplied. It renders with
// an empty body.
type HeadOnly[H element.Element] struct {
	doc Document[H, element.Absent]
}

// StartWithHead creates a document from its head. The body is element.None
// until WithBody is called.
func StartWithHead[H element.Element](head H) HeadOnly[H] {
	return HeadOnly[H]{doc: Document[H, element.Absent]{head: head, body: element.None}}
}

// WithBody returns a new document combining d's head with body, keeping the
// static type of body.
func WithBody[H, B element.Element](d HeadOnly[H], body B) Document[H, B] {
	return Document[H, B]{head: d.doc.head, body: body}
}

// WithBody returns a new document combining the head with body. Use the
// package-level WithBody to keep body's concrete type.
func (d HeadOnly[H]) WithBody(body element.Element) Document[H, element.Element] {
	return WithBody(d, body)
}

// Head returns the head slot.
func (d HeadOnly[H]) Head() H {
	return d.doc.head
}

// ElementName implements element.Named.
func (HeadOnly[H]) ElementName() string {
	return ElementName
}

// Render writes the document with an empty body.
func (d HeadOnly[H]) Render(w io.Writer) error {
	return d.doc.Render(w)
}

// Head returns the head slot.
func (d Document[H, B]) Head() H {
	return d.head
}

// Body returns the body slot.
func (d Document[H, B]) Body() B {
	return d.body
}

// ElementName implements element.Named.
func (Document[H, B]) ElementName() string {
	return ElementName
}

// Render writes <!DOCTYPE html><html>, the head, the body and </html>,
// with nothing in between. A writer error stops rendering and is returned
// unchanged.
func (d Document[H, B]) Render(w io.Writer) error {
	name := element.Text(d.ElementName())

	if err := element.Open(element.Textf("!DOCTYPE %s", name)).Render(w); err != nil {
		return err
	}
	if err := element.Open(name).Render(w); err != nil {
		return err
	}
	if err := renderSlot(w, d.head); err != nil {
		return err
	}
	if err := renderSlot(w, d.body); err != nil {
		return err
	}
	return element.Close(name).Render(w)
}

// renderSlot renders e, treating a nil interface slot as absent.
func renderSlot[E element.Element](w io.Writer, e E) error {
	if any(e) == nil {
		return nil
	}
	return e.Render(w)
}
