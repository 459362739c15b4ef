// Package preprocess expands #include directives in GLSL source and
// re-anchors the result with #line markers, so compiler diagnostics for
// the assembled text still point at the original file and line.
//
// A Processor walks a source line by line with a comment-aware scanner,
// splices every included file in place (recursively), checks that the
// whole inclusion tree agrees on a single #version, and assigns each
// include a stable numeric id through a Registry shared by every source
// of a build session.
package preprocess

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"unicode"

	"github.com/rubiojr/glossy/scanner"
)

// Processor assembles shader sources. The zero value is not ready for use
// beyond the defaults: Language defaults to OpenGL and Registry is created
// on first use.
type Processor struct {
	// Language selects the default #version for sources without one.
	Language Language
	// Includes maps include names to their raw text.
	Includes IncludeTable
	// Registry assigns file ids to include names. Share one Registry
	// across every source of a build so ids stay unique.
	Registry *Registry
	// DiscardLineInfo drops comments and blank lines and stops
	// re-anchoring after includes.
	DiscardLineInfo bool
	// Logger receives a debug record per include expansion. Nil disables
	// logging.
	Logger *slog.Logger
}

// Result is the assembled text of one top-level source.
type Result struct {
	Name string
	// Source is the assembled text, starting with the #version line.
	Source string
	// Version is the version governing the whole inclusion tree.
	Version string
}

// TopLevelID is the file id every top-level source is tagged with.
const TopLevelID uint32 = 0

// Process assembles the top-level source called name whose content is
// text. Errors are *CycleError, *MissingIncludeError or
// *VersionMismatchError, possibly wrapped with the include path that led
// to them.
func (p *Processor) Process(name, text string) (*Result, error) {
	if p.Registry == nil {
		p.Registry = NewRegistry()
	}
	text = strings.TrimRightFunc(text, unicode.IsSpace)
	out, version, err := p.expand(name, text, nil, TopLevelID, "")
	if err != nil {
		return nil, err
	}
	return &Result{Name: name, Source: out, Version: version}, nil
}

func (p *Processor) preserve() bool { return !p.DiscardLineInfo }

// expand assembles one file. stack holds the include names on the path
// from the top-level source down to name; it is empty for the top level.
// inherited is the version of the enclosing tree, empty for the top level.
func (p *Processor) expand(name, text string, stack []string, id uint32, inherited string) (string, string, error) {
	var w lineWriter
	comments := scanner.NewComments()

	first := true
	version := ""
	firstLine := 1

	for num, raw := range scanner.SplitLines(text) {
		line := comments.Scan(raw)
		if line.InComment {
			if p.preserve() {
				w.Raw(raw)
			}
			continue
		}
		if line.Blank() {
			if p.preserve() {
				w.Raw(raw)
			}
			continue
		}

		d, isDirective := scanner.ParseDirective(line.Code)

		if first {
			first = false
			if v, ok := versionOf(d, isDirective); ok {
				if inherited != "" && v != inherited {
					return "", "", &VersionMismatchError{Include: name, Found: v, Inherited: inherited}
				}
				version = v
				// The #version line is hoisted to the top of the output.
				// When it was not the first physical line, or it opened a
				// comment, a stand-in line keeps the numbering aligned.
				if p.preserve() && (num > 0 || comments.InBlock()) {
					w.Raw(standIn(line))
				} else {
					firstLine = 2
				}
				continue
			}
			version = p.resolveVersion(inherited)
		}

		if !p.preserve() && len(stack) > 0 {
			if _, ok := versionOf(d, isDirective); ok {
				continue
			}
		}

		target, ok := includeOf(d, isDirective)
		if !ok {
			if p.preserve() {
				w.Raw(raw)
			} else {
				w.Raw(line.Code)
			}
			continue
		}

		content, ok := p.Includes[target]
		if !ok {
			return "", "", &MissingIncludeError{Source: name, Target: target}
		}
		if slices.Contains(stack, target) {
			return "", "", &CycleError{Source: name, Target: target, Path: append(slices.Clone(stack), target)}
		}

		childID := p.Registry.Resolve(target)
		if p.Logger != nil {
			p.Logger.Debug("expanding include", "source", name, "include", target, "id", childID, "line", num+1)
		}

		child := make([]string, len(stack), len(stack)+1)
		copy(child, stack)
		child = append(child, target)

		expanded, _, err := p.expand(target, content, child, childID, version)
		if err != nil {
			return "", "", fmt.Errorf("in include %q: %w", target, err)
		}
		if p.preserve() && line.ClosesComment {
			w.Raw("*/")
		}
		w.Raw(expanded)

		if p.preserve() {
			if comments.InBlock() {
				// The reopened comment takes the directive's own line.
				w.Marker(num+1, id)
				w.Raw("/*")
			} else {
				w.Marker(num+2, id)
			}
		}
	}

	if version == "" {
		version = p.resolveVersion(inherited)
	}
	if comments.InBlock() && len(stack) > 0 {
		if p.Logger != nil {
			p.Logger.Warn("include ends inside a block comment", "include", name)
		}
		if p.preserve() {
			w.Raw("*/")
		}
	}

	var head lineWriter
	if len(stack) == 0 {
		head.Raw("#version " + version)
	}
	head.Marker(firstLine, id)
	out := head.String() + strings.TrimRightFunc(w.String(), unicode.IsSpace)
	return strings.TrimRightFunc(out, unicode.IsSpace), version, nil
}

// standIn is the line left in place of a hoisted #version line. It keeps
// the comment delimiters the version line carried.
func standIn(line scanner.Line) string {
	switch {
	case line.ClosesComment && line.OpensComment:
		return "*/ /*"
	case line.ClosesComment:
		return "*/"
	case line.OpensComment:
		return "/*"
	}
	return ""
}

// resolveVersion is the version a file without its own #version runs at.
func (p *Processor) resolveVersion(inherited string) string {
	if inherited != "" {
		return inherited
	}
	return p.Language.DefaultVersion()
}

func versionOf(d scanner.Directive, ok bool) (string, bool) {
	if !ok {
		return "", false
	}
	return d.Version()
}

func includeOf(d scanner.Directive, ok bool) (string, bool) {
	if !ok {
		return "", false
	}
	return d.Include()
}
