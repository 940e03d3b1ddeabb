package content

import (
	"bytes"
	"io"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/vango-dev/markup/pkg/element"
)

var (
	ugcPolicyOnce sync.Once
	ugcPolicy     *bluemonday.Policy
)

// defaultPolicy returns the shared user-generated-content policy.
func defaultPolicy() *bluemonday.Policy {
	ugcPolicyOnce.Do(func() {
		ugcPolicy = bluemonday.UGCPolicy()
	})
	return ugcPolicy
}

// SanitizedElement renders its inner element through an HTML sanitizer.
type SanitizedElement[E element.Element] struct {
	policy *bluemonday.Policy
	inner  E
}

// Sanitized wraps inner so that its output is cleaned by policy before it
// reaches the writer. A nil policy uses bluemonday's UGC policy.
func Sanitized[E element.Element](policy *bluemonday.Policy, inner E) SanitizedElement[E] {
	if policy == nil {
		policy = defaultPolicy()
	}
	return SanitizedElement[E]{policy: policy, inner: inner}
}

// Inner returns the wrapped element.
func (s SanitizedElement[E]) Inner() E {
	return s.inner
}

// Render renders the inner element into a buffer, sanitizes it and writes
// the result. An error from the inner element is returned unchanged.
func (s SanitizedElement[E]) Render(w io.Writer) error {
	var buf bytes.Buffer
	if err := s.inner.Render(&buf); err != nil {
		return err
	}
	_, err := w.Write(s.policy.SanitizeBytes(buf.Bytes()))
	return err
}
