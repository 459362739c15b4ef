package preprocess

import (
	"fmt"
	"strings"
)

// Language is the GLSL dialect a build targets.
type Language int

const (
	OpenGL Language = iota
	OpenGLES20
	OpenGLES30
)

// DefaultVersion is the #version assumed for a source that declares none.
func (l Language) DefaultVersion() string {
	switch l {
	case OpenGLES20, OpenGLES30:
		return "100"
	default:
		return "110"
	}
}

// IsES reports whether l is an OpenGL ES dialect.
func (l Language) IsES() bool { return l == OpenGLES20 || l == OpenGLES30 }

func (l Language) String() string {
	switch l {
	case OpenGL:
		return "opengl"
	case OpenGLES20:
		return "es2"
	case OpenGLES30:
		return "es3"
	}
	return fmt.Sprintf("Language(%d)", int(l))
}

// ParseLanguage accepts the names printed by Language.String plus a few
// common spellings.
func ParseLanguage(s string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "opengl", "gl", "glsl":
		return OpenGL, nil
	case "es2", "gles2", "opengles20", "es20":
		return OpenGLES20, nil
	case "es3", "gles3", "opengles30", "es30":
		return OpenGLES30, nil
	}
	return OpenGL, fmt.Errorf("unknown language %q (available: opengl, es2, es3)", s)
}
