// Package pages holds the templ components for every view. Components are
// written as plain Go (templ.ComponentFunc) so the rendered markup stays
// reviewable next to the handlers that feed it.
package pages

import (
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// esc is the HTML escape applied to every interpolated value.
func esc(s string) string { return templ.EscapeString(s) }

// htmlWriter accumulates the first write error so components read as straight
// markup emission.
type htmlWriter struct {
	w   io.Writer
	err error
}

func newHTMLWriter(w io.Writer) *htmlWriter {
	return &htmlWriter{w: w}
}

func (h *htmlWriter) raw(s string) {
	if h.err == nil {
		_, h.err = io.WriteString(h.w, s)
	}
}

// rawf formats markup; callers escape interpolated values themselves.
func (h *htmlWriter) rawf(format string, args ...any) {
	if h.err == nil {
		_, h.err = fmt.Fprintf(h.w, format, args...)
	}
}
