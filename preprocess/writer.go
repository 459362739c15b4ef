package preprocess

import (
	"fmt"
	"strings"
)

// lineWriter accumulates assembled output one line at a time.
type lineWriter struct {
	sb strings.Builder
}

// Raw writes s followed by a newline.
func (w *lineWriter) Raw(s string) {
	w.sb.WriteString(s)
	w.sb.WriteByte('\n')
}

// Marker writes a #line directive: the next line is line of file id.
func (w *lineWriter) Marker(line int, id uint32) {
	fmt.Fprintf(&w.sb, "#line %d %d\n", line, id)
}

// String returns the accumulated output.
func (w *lineWriter) String() string { return w.sb.String() }
