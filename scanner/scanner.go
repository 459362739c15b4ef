// Package scanner provides comment-aware line scanning for the glossy
// preprocessor. It tracks the one piece of state that survives a line
// boundary in GLSL source, an unterminated /* block comment */, so the
// preprocessor can classify every physical line without a grammar.
package scanner

import "strings"

const (
	blockOpen   = "/*"
	blockClose  = "*/"
	lineComment = "//"
)

// Line is the result of scanning one physical source line.
type Line struct {
	// Code is the line with all comment text removed.
	Code string
	// InComment is true when the whole line sat inside a block comment
	// that was opened on an earlier line and is still open.
	InComment bool
	// ClosesComment is true when the line started inside a block comment
	// that ends on it.
	ClosesComment bool
	// OpensComment is true when a block comment started on this line and
	// does not close before the end of it.
	OpensComment bool
}

// Blank reports whether the line carries no code once comments are gone.
func (l Line) Blank() bool { return strings.TrimSpace(l.Code) == "" }

// Comments scans lines one at a time, carrying block-comment state from
// one call of Scan to the next.
type Comments struct {
	inBlock bool
}

// NewComments creates a scanner positioned outside any comment.
func NewComments() *Comments {
	return &Comments{}
}

// InBlock reports whether the scanner is currently inside a block comment,
// i.e. whether the next line will start inside one.
func (c *Comments) InBlock() bool { return c.inBlock }

// Scan strips comments from line and updates the block-comment state.
func (c *Comments) Scan(line string) Line {
	rest := line
	closes := false
	if c.inBlock {
		idx := strings.Index(rest, blockClose)
		if idx < 0 {
			return Line{InComment: true}
		}
		c.inBlock = false
		closes = true
		rest = rest[idx+len(blockClose):]
	}

	var sb strings.Builder
	for {
		open := strings.Index(rest, blockOpen)
		slashes := strings.Index(rest, lineComment)
		if slashes >= 0 && (open < 0 || slashes < open) {
			sb.WriteString(rest[:slashes])
			return Line{Code: sb.String(), ClosesComment: closes}
		}
		if open < 0 {
			sb.WriteString(rest)
			return Line{Code: sb.String(), ClosesComment: closes}
		}
		sb.WriteString(rest[:open])
		after := rest[open+len(blockOpen):]
		end := strings.Index(after, blockClose)
		if end < 0 {
			c.inBlock = true
			return Line{Code: sb.String(), ClosesComment: closes, OpensComment: true}
		}
		rest = after[end+len(blockClose):]
	}
}

// SplitLines splits src into physical lines. A trailing newline does not
// produce a final empty line, and a carriage return before each newline is
// dropped.
func SplitLines(src string) []string {
	if src == "" {
		return nil
	}
	lines := strings.Split(src, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
