package scanner

import "strings"

// Directive is a preprocessor line split into its command and argument.
// For "  #  include <common.glsl>" Name is "include" and Arg is
// "<common.glsl>".
type Directive struct {
	Name string
	Arg  string
	// spaced is true when at least one blank separates Name from Arg.
	spaced bool
}

// ParseDirective recognises a '#' directive in comment-free code. It
// returns false when code is not a directive.
func ParseDirective(code string) (Directive, bool) {
	s := trimBlank(code)
	if !strings.HasPrefix(s, "#") {
		return Directive{}, false
	}
	s = trimBlank(s[1:])
	end := 0
	for end < len(s) && isIdentPart(s[end]) {
		end++
	}
	if end == 0 {
		return Directive{}, false
	}
	rest := s[end:]
	return Directive{
		Name:   s[:end],
		Arg:    strings.TrimRight(trimBlank(rest), " \t\r\n\v\f"),
		spaced: rest != "" && isBlank(rest[0]),
	}, true
}

// Include returns the target of an #include "name" or #include <name>
// directive. The target must be one or more printable ASCII characters and
// nothing may follow the closing delimiter.
func (d Directive) Include() (string, bool) {
	if d.Name != "include" || !d.spaced || len(d.Arg) < 3 {
		return "", false
	}
	first, last := d.Arg[0], d.Arg[len(d.Arg)-1]
	if !(first == '"' && last == '"') && !(first == '<' && last == '>') {
		return "", false
	}
	target := d.Arg[1 : len(d.Arg)-1]
	for i := 0; i < len(target); i++ {
		if target[i] < 0x20 || target[i] > 0x7e {
			return "", false
		}
	}
	return target, true
}

// Version returns the version declared by a #version directive. The
// number is mandatory; an optional profile ("core", "es", ...) is kept and
// normalised to a single separating space, so "#version 300   es" yields
// "300 es". Anything after the profile is ignored.
func (d Directive) Version() (string, bool) {
	if d.Name != "version" || !d.spaced {
		return "", false
	}
	fields := strings.Fields(d.Arg)
	if len(fields) == 0 || !isDigits(fields[0]) {
		return "", false
	}
	if len(fields) > 1 && isProfile(fields[1]) {
		return fields[0] + " " + fields[1], true
	}
	return fields[0], true
}

// VersionNumber returns the numeric part of a version string produced by
// Directive.Version, dropping any profile.
func VersionNumber(version string) string {
	if i := strings.IndexByte(version, ' '); i >= 0 {
		return version[:i]
	}
	return version
}

func isProfile(s string) bool {
	switch s {
	case "core", "compatibility", "es":
		return true
	}
	return false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isBlank(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n' || b == '\v' || b == '\f'
}

func trimBlank(s string) string {
	i := 0
	for i < len(s) && isBlank(s[i]) {
		i++
	}
	return s[i:]
}

func isIdentPart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
