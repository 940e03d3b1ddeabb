// Package document assembles a complete HTML document from a head element
// and a body element.
//
// Construction is stepwise and every step returns a new value:
//
//	page := document.StartWithHead(element.Text("<head></head>")).
//	    WithBody(element.Text("<body></body>"))
//	out, err := element.String(page)
//	// <!DOCTYPE html><html><head></head><body></body></html>
//
// StartWithHead returns a HeadOnly document whose body is element.None.
// HeadOnly is already renderable. Only HeadOnly offers WithBody, and the
// resulting Document offers neither WithBody nor a way to replace the head,
// so the slots can only be filled in order and only once.
//
// Both forms implement element.Element, so a document can itself be
// served, published or embedded like any other element.
package document
