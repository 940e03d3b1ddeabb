// Package content adapts external sources into elements: Markdown text,
// raw file contents and sanitized HTML.
//
// These adapters sit outside the rendering core. The core never escapes or
// validates content; callers that accept untrusted input wrap it here.
package content
