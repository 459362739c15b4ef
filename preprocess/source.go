package preprocess

import (
	"path/filepath"
	"strings"
)

// ShaderKind classifies a top-level source for the optimizer.
type ShaderKind int

const (
	KindUnknown ShaderKind = iota
	KindVertex
	KindFragment
)

func (k ShaderKind) String() string {
	switch k {
	case KindVertex:
		return "vertex"
	case KindFragment:
		return "fragment"
	}
	return "unknown"
}

// KindFromPath classifies a file by extension: .vert and .frag are vertex
// and fragment shaders, anything else is unknown.
func KindFromPath(path string) ShaderKind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".vert":
		return KindVertex
	case ".frag":
		return KindFragment
	}
	return KindUnknown
}

// ShaderSource is one top-level unit of a build.
type ShaderSource struct {
	// Name is the logical name, used for diagnostics and as the artifact
	// file name.
	Name string
	// Path is where the source text is read from.
	Path string
	Kind ShaderKind
}

// IncludeTable maps include names to raw source text. It is filled before
// processing starts and only read afterwards.
type IncludeTable map[string]string
