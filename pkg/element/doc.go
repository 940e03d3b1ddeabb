// Package element defines the rendering contract shared by every piece of
// markup, together with the tag wrappers that decorate an element with
// bracket syntax.
//
// An Element writes its textual form into an io.Writer:
//
//	var sb strings.Builder
//	err := element.Open(element.Text("div")).Render(&sb)
//	// sb.String() == "<div>"
//
// # Tag Roles
//
// A Tag carries its role (opening or closing) as a type parameter rather
// than a field. Role is a sealed interface with exactly two
// implementations, Opening and Closing, so the wrapper's output is chosen
// by the compiler and an OpeningTag can never become a ClosingTag:
//
//	element.Open(element.Text("p"))  // OpeningTag[Text]  -> "<p>"
//	element.Close(element.Text("p")) // ClosingTag[Text]  -> "</p>"
//
// # Absent
//
// None is the element that renders nothing. It is the default for slots a
// caller has not filled yet. Wrapping it in a tag still yields "<>" or
// "</>"; filtering empty elements is left to higher layers.
//
// # Errors
//
// Render fails only when the writer fails. The writer's error is returned
// unchanged through every level of nesting.
package element
