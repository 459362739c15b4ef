// Package compiler runs a glossy build session: it discovers shader
// sources and include files, assembles every source in order with one
// shared file-id registry, optionally optimizes the results, and writes
// the artifacts together with a generated id-to-name lookup.
package compiler

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/rubiojr/glossy/optimize"
	"github.com/rubiojr/glossy/preprocess"
)

// DefaultPackage is the package name of the generated lookup file.
const DefaultPackage = "shaders"

// Config describes a build. Methods return the receiver so calls can be
// chained; the first discovery error is kept and reported by Process,
// Build and Emit.
type Config struct {
	lang          preprocess.Language
	sources       []source
	includes      preprocess.IncludeTable
	optimizer     optimize.Optimizer
	discardLines  bool
	allowUntested bool
	pkg           string
	logger        *slog.Logger
	err           error
}

// source is a top-level shader with its text already read.
type source struct {
	preprocess.ShaderSource
	text string
}

// New creates an empty configuration targeting lang.
func New(lang preprocess.Language) *Config {
	return &Config{
		lang:     lang,
		includes: preprocess.IncludeTable{},
		pkg:      DefaultPackage,
		logger:   newNopLogger(),
	}
}

// Vertex adds the files matching pattern as vertex shader sources.
func (c *Config) Vertex(pattern string) *Config {
	return c.addSources(pattern, func(string) preprocess.ShaderKind { return preprocess.KindVertex })
}

// Fragment adds the files matching pattern as fragment shader sources.
func (c *Config) Fragment(pattern string) *Config {
	return c.addSources(pattern, func(string) preprocess.ShaderKind { return preprocess.KindFragment })
}

// Source adds the files matching pattern, classifying each by extension:
// .vert and .frag are vertex and fragment shaders, anything else is a
// generic source the optimizer leaves alone.
func (c *Config) Source(pattern string) *Config {
	return c.addSources(pattern, preprocess.KindFromPath)
}

// Include adds the files matching pattern to the include table, keyed by
// base file name. A later file with the same name replaces an earlier one.
func (c *Config) Include(pattern string) *Config {
	paths, ok := c.glob(pattern)
	if !ok {
		return c
	}
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			c.fail(fmt.Errorf("reading include %s: %w", p, err))
			return c
		}
		name := filepath.Base(p)
		if _, dup := c.includes[name]; dup {
			c.logger.Warn("include replaced", "name", name, "path", p)
		}
		c.includes[name] = string(data)
	}
	return c
}

// AddSource adds a top-level source from memory.
func (c *Config) AddSource(name string, kind preprocess.ShaderKind, text string) *Config {
	if c.hasSource(name) {
		c.fail(fmt.Errorf("duplicate shader source name %q", name))
		return c
	}
	c.sources = append(c.sources, source{
		ShaderSource: preprocess.ShaderSource{Name: name, Kind: kind},
		text:         text,
	})
	return c
}

// AddInclude adds an include file from memory.
func (c *Config) AddInclude(name, text string) *Config {
	c.includes[name] = text
	return c
}

// Optimize runs every eligible source through opt. It implies
// DiscardLineInfo, since optimizers do not keep comments or line markers
// meaningful.
func (c *Config) Optimize(opt optimize.Optimizer) *Config {
	c.optimizer = opt
	c.discardLines = true
	return c
}

// DiscardLineInfo strips comments and blank lines and omits the markers
// that re-anchor line numbers after each include.
func (c *Config) DiscardLineInfo() *Config {
	c.discardLines = true
	return c
}

// AllowUntestedVersions lets the optimizer run on versions it is not known
// to support.
func (c *Config) AllowUntestedVersions() *Config {
	c.allowUntested = true
	return c
}

// Package sets the package name of the generated lookup file.
func (c *Config) Package(name string) *Config {
	c.pkg = name
	return c
}

// Logger sets the logger for the build. Nil restores the silent default.
func (c *Config) Logger(l *slog.Logger) *Config {
	if l == nil {
		l = newNopLogger()
	}
	c.logger = l
	return c
}

// Sources returns the configured top-level sources in processing order.
func (c *Config) Sources() []preprocess.ShaderSource {
	out := make([]preprocess.ShaderSource, len(c.sources))
	for i, s := range c.sources {
		out[i] = s.ShaderSource
	}
	return out
}

// Err returns the first discovery error, if any.
func (c *Config) Err() error { return c.err }

func (c *Config) addSources(pattern string, kind func(path string) preprocess.ShaderKind) *Config {
	paths, ok := c.glob(pattern)
	if !ok {
		return c
	}
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			c.fail(fmt.Errorf("reading %s: %w", p, err))
			return c
		}
		name := filepath.Base(p)
		if c.hasSource(name) {
			c.fail(fmt.Errorf("duplicate shader source name %q (%s)", name, p))
			return c
		}
		c.sources = append(c.sources, source{
			ShaderSource: preprocess.ShaderSource{Name: name, Path: p, Kind: kind(p)},
			text:         string(data),
		})
	}
	return c
}

// glob expands pattern into a sorted list of regular files.
func (c *Config) glob(pattern string) ([]string, bool) {
	if c.err != nil {
		return nil, false
	}
	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		c.fail(fmt.Errorf("bad pattern %q: %w", pattern, err))
		return nil, false
	}
	if len(matches) == 0 {
		c.logger.Warn("pattern matched no files", "pattern", pattern)
	}
	sort.Strings(matches)
	return matches, true
}

func (c *Config) hasSource(name string) bool {
	for _, s := range c.sources {
		if s.Name == name {
			return true
		}
	}
	return false
}

func (c *Config) fail(err error) {
	if c.err == nil {
		c.err = err
	}
}
