package preprocess

import (
	"fmt"
	"strings"
)

// CycleError reports an include that recurs on its own expansion path.
type CycleError struct {
	// Source is the file whose directive tried to re-include Target.
	Source string
	Target string
	// Path is the include chain ending with the repeated name.
	Path []string
}

func (e *CycleError) Error() string {
	msg := fmt.Sprintf("recursive inclusion of %q in shader file %q", e.Target, e.Source)
	if len(e.Path) > 0 {
		msg += " (" + strings.Join(e.Path, " -> ") + ")"
	}
	return msg
}

// MissingIncludeError reports an include directive naming a file that is
// not in the include table.
type MissingIncludeError struct {
	Source string
	Target string
}

func (e *MissingIncludeError) Error() string {
	return fmt.Sprintf("shader file %q includes non-existent file %q", e.Source, e.Target)
}

// VersionMismatchError reports an included file whose #version differs
// from the version of the tree it is included into.
type VersionMismatchError struct {
	Include   string
	Found     string
	Inherited string
}

func (e *VersionMismatchError) Error() string {
	return fmt.Sprintf("included file %q specifies version %s, but parent specifies %s", e.Include, e.Found, e.Inherited)
}
