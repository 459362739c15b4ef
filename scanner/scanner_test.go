package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComments_Scan(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Line
		open  bool
	}{
		{"no comment", "float x = 1.0;", Line{Code: "float x = 1.0;"}, false},
		{"line comment", "float x; // trailing", Line{Code: "float x; "}, false},
		{"full line comment", "// only", Line{Code: ""}, false},
		{"closed block", "a /* b */ c", Line{Code: "a  c"}, false},
		{"two closed blocks", "a /* b */ c /* d */ e", Line{Code: "a  c  e"}, false},
		{"block then line comment", "a /* b */ c // d", Line{Code: "a  c "}, false},
		{"line comment hides opener", "a // b /* c", Line{Code: "a "}, false},
		{"opener without closer", "a /* b", Line{Code: "a ", OpensComment: true}, true},
		{"closed then open", "a /* b */ c /* d", Line{Code: "a  c ", OpensComment: true}, true},
		{"slash star slash is not closed", "a /*/ b", Line{Code: "a ", OpensComment: true}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewComments()
			got := c.Scan(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.open, c.InBlock())
		})
	}
}

func TestComments_StateSurvivesLines(t *testing.T) {
	c := NewComments()

	l := c.Scan("void f(); /* start")
	assert.Equal(t, "void f(); ", l.Code)
	assert.True(t, l.OpensComment)
	require.True(t, c.InBlock())

	l = c.Scan("still inside // not a line comment")
	assert.True(t, l.InComment)
	assert.True(t, l.Blank())
	require.True(t, c.InBlock())

	l = c.Scan("end */ float y; // tail")
	assert.False(t, l.InComment)
	assert.True(t, l.ClosesComment)
	assert.Equal(t, " float y; ", l.Code)
	assert.False(t, c.InBlock())

	l = c.Scan("*/ not a closer outside comments")
	assert.False(t, l.ClosesComment)
	assert.Equal(t, "*/ not a closer outside comments", l.Code)
}

func TestComments_CloseAndReopenOnOneLine(t *testing.T) {
	c := NewComments()
	c.Scan("/*")
	l := c.Scan("*/ x /* y")
	assert.Equal(t, " x ", l.Code)
	assert.True(t, l.ClosesComment)
	assert.True(t, l.OpensComment)
	assert.True(t, c.InBlock())
}

func TestSplitLines(t *testing.T) {
	assert.Nil(t, SplitLines(""))
	assert.Equal(t, []string{"a"}, SplitLines("a"))
	assert.Equal(t, []string{"a"}, SplitLines("a\n"))
	assert.Equal(t, []string{"a", ""}, SplitLines("a\n\n"))
	assert.Equal(t, []string{"a", "b"}, SplitLines("a\r\nb\r\n"))
	assert.Equal(t, []string{"", "b"}, SplitLines("\nb"))
}
