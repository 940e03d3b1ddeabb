package element

import (
	"fmt"
	"io"
	"strings"
)

// Element is any value that can write its textual form into a writer.
//
// Render must be repeatable: calling it twice on the same value writes the
// same bytes. The only error it may return is one produced by w, and that
// error must be returned as-is.
type Element interface {
	Render(w io.Writer) error
}

// Named is implemented by element types that declare an element name,
// such as "html". Composite elements use the name to emit matching
// opening and closing tags.
type Named interface {
	Element
	ElementName() string
}

// NameOf returns the element name declared by E, or "" when E does not
// implement Named. No value of E is needed.
func NameOf[E Element]() string {
	var zero E
	if named, ok := any(zero).(Named); ok {
		return named.ElementName()
	}
	return ""
}

// Absent is the element that renders nothing.
type Absent struct{}

// None is the canonical Absent value.
var None = Absent{}

// Render writes nothing.
func (Absent) Render(io.Writer) error {
	return nil
}

// Text renders its own content verbatim. It is not escaped.
type Text string

// Render writes the text.
func (t Text) Render(w io.Writer) error {
	_, err := io.WriteString(w, string(t))
	return err
}

// Bytes renders its own content verbatim. It is not escaped.
type Bytes []byte

// Render writes the bytes.
func (b Bytes) Render(w io.Writer) error {
	_, err := w.Write(b)
	return err
}

// Formatted is text produced by a format string. The formatting happens
// directly into the writer on every Render.
type Formatted struct {
	format string
	args   []any
}

// Textf returns an element that renders fmt.Sprintf(format, args...)
// without building the intermediate string.
func Textf(format string, args ...any) Formatted {
	return Formatted{format: format, args: args}
}

// Render formats into w.
func (f Formatted) Render(w io.Writer) error {
	_, err := fmt.Fprintf(w, f.format, f.args...)
	return err
}

// stringerElement adapts a fmt.Stringer.
type stringerElement struct {
	s fmt.Stringer
}

// Stringer returns an element that renders s.String().
func Stringer(s fmt.Stringer) Element {
	return stringerElement{s: s}
}

func (e stringerElement) Render(w io.Writer) error {
	_, err := io.WriteString(w, e.s.String())
	return err
}

// Group renders its elements one after another.
type Group []Element

// Sequence groups elements so they can fill a single slot.
func Sequence(elements ...Element) Group {
	return Group(elements)
}

// Render renders each element in order and stops at the first error.
func (g Group) Render(w io.Writer) error {
	for _, e := range g {
		if e == nil {
			continue
		}
		if err := e.Render(w); err != nil {
			return err
		}
	}
	return nil
}

// String renders e into a string.
func String(e Element) (string, error) {
	var sb strings.Builder
	if err := e.Render(&sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}
