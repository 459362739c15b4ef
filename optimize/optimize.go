// Package optimize is the boundary between assembled shader text and an
// optional external optimizer. It decides whether a resolved #version is
// eligible for optimization and runs the optimizer when it is.
package optimize

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/rubiojr/glossy/preprocess"
	"github.com/rubiojr/glossy/scanner"
)

// Optimizer rewrites assembled shader source. Implementations return an
// *Error carrying the optimizer's log when the shader is rejected.
type Optimizer interface {
	Optimize(kind preprocess.ShaderKind, source string) (string, error)
}

// UnsupportedVersionError reports a version the optimizer is not known to
// handle for the target language. It disables optimization for that
// source; it is not a build failure.
type UnsupportedVersionError struct {
	Language preprocess.Language
	Version  string
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("version %s is not supported by the optimizer for %s", e.Version, e.Language)
}

// Error is an optimizer diagnostic for one shader.
type Error struct {
	Kind preprocess.ShaderKind
	Log  string
}

func (e *Error) Error() string {
	log := strings.TrimSpace(e.Log)
	if log == "" {
		return fmt.Sprintf("optimizer rejected %s shader", e.Kind)
	}
	return fmt.Sprintf("optimizer rejected %s shader: %s", e.Kind, log)
}

// CheckVersion returns nil when version can be optimized for lang, or an
// *UnsupportedVersionError. Desktop GL is tested with 110 and 120, GL ES
// with 100 and 300; allowUntested accepts anything.
func CheckVersion(lang preprocess.Language, version string, allowUntested bool) error {
	if allowUntested {
		return nil
	}
	n := scanner.VersionNumber(version)
	if lang.IsES() {
		if n == "100" || n == "300" {
			return nil
		}
	} else if n == "110" || n == "120" {
		return nil
	}
	return &UnsupportedVersionError{Language: lang, Version: version}
}

// Command runs an external optimizer executable once per shader. The
// assembled source is written to its stdin and the optimized source is
// read from its stdout. The shader kind and target language are passed in
// GLOSSY_SHADER_KIND and GLOSSY_LANGUAGE.
type Command struct {
	Path     string
	Args     []string
	Language preprocess.Language
}

// Optimize implements Optimizer. Unknown shader kinds are returned
// unchanged, the optimizer only understands vertex and fragment stages.
func (c *Command) Optimize(kind preprocess.ShaderKind, source string) (string, error) {
	if kind == preprocess.KindUnknown {
		return source, nil
	}
	cmd := exec.Command(c.Path, c.Args...)
	cmd.Env = append(os.Environ(),
		"GLOSSY_SHADER_KIND="+kind.String(),
		"GLOSSY_LANGUAGE="+c.Language.String(),
	)
	cmd.Stdin = strings.NewReader(source)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if _, ok := err.(*exec.ExitError); ok {
			return "", &Error{Kind: kind, Log: stderr.String()}
		}
		return "", fmt.Errorf("running optimizer %s: %w", c.Path, err)
	}
	return stdout.String(), nil
}

// ParseCommand splits a command line such as "glslopt --fast" into a
// Command.
func ParseCommand(line string, lang preprocess.Language) (*Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty optimizer command")
	}
	return &Command{Path: fields[0], Args: fields[1:], Language: lang}, nil
}
