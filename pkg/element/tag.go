package element

import "io"

// Opening is the role of a tag written as "<content>".
type Opening struct{}

func (Opening) prefix() string { return "<" }

// Closing is the role of a tag written as "</content>".
type Closing struct{}

func (Closing) prefix() string { return "</" }

// Role is the closed set of tag roles. It can only be used as a type
// constraint, and Opening and Closing are its only members.
type Role interface {
	Opening | Closing
	prefix() string
}

// Tag wraps content in tag brackets. The bracket style is fixed by R at
// compile time.
type Tag[C Element, R Role] struct {
	content C
}

// OpeningTag renders "<" + content + ">".
type OpeningTag[C Element] = Tag[C, Opening]

// ClosingTag renders "</" + content + ">".
type ClosingTag[C Element] = Tag[C, Closing]

// NewTag converts content into a tag with role R.
func NewTag[R Role, C Element](content C) Tag[C, R] {
	return Tag[C, R]{content: content}
}

// Open converts content into an opening tag.
func Open[C Element](content C) OpeningTag[C] {
	return NewTag[Opening](content)
}

// Close converts content into a closing tag.
func Close[C Element](content C) ClosingTag[C] {
	return NewTag[Closing](content)
}

// Content returns the wrapped element.
func (t Tag[C, R]) Content() C {
	return t.content
}

// Render writes the role's bracket, the content, then ">".
// The content is not escaped or validated.
func (t Tag[C, R]) Render(w io.Writer) error {
	var role R
	if _, err := io.WriteString(w, role.prefix()); err != nil {
		return err
	}
	if err := t.content.Render(w); err != nil {
		return err
	}
	_, err := io.WriteString(w, ">")
	return err
}
