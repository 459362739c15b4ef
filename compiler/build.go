package compiler

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rubiojr/glossy/optimize"
	"github.com/rubiojr/glossy/preprocess"
)

// LookupFile is the name of the generated id-to-name lookup source.
const LookupFile = "glossy_files.go"

// Artifact is the processed form of one top-level source.
type Artifact struct {
	preprocess.ShaderSource
	// Text is the assembled, possibly optimized, shader source.
	Text    string
	Version string
	// Optimized is true when the optimizer ran on Text.
	Optimized bool
}

// Report is the outcome of a build session.
type Report struct {
	Artifacts []Artifact
	// Registry maps the file ids found in #line markers back to include
	// names.
	Registry *preprocess.Registry
}

// Artifact returns the artifact for the source called name.
func (r *Report) Artifact(name string) (*Artifact, bool) {
	for i := range r.Artifacts {
		if r.Artifacts[i].Name == name {
			return &r.Artifacts[i], true
		}
	}
	return nil, false
}

// Process assembles every configured source in order, in memory.
func (c *Config) Process() (*Report, error) {
	if c.err != nil {
		return nil, c.err
	}

	proc := &preprocess.Processor{
		Language:        c.lang,
		Includes:        c.includes,
		Registry:        preprocess.NewRegistry(),
		DiscardLineInfo: c.discardLines,
		Logger:          c.logger,
	}
	report := &Report{Registry: proc.Registry}

	for _, s := range c.sources {
		res, err := proc.Process(s.Name, s.text)
		if err != nil {
			return nil, fmt.Errorf("processing %q: %w", s.Name, err)
		}
		art := Artifact{ShaderSource: s.ShaderSource, Text: res.Source, Version: res.Version}
		if err := c.optimize(&art); err != nil {
			return nil, err
		}
		report.Artifacts = append(report.Artifacts, art)
	}
	return report, nil
}

// optimize runs the optimizer on art when one is configured and the
// artifact's version is eligible.
func (c *Config) optimize(art *Artifact) error {
	if c.optimizer == nil {
		return nil
	}
	err := optimize.CheckVersion(c.lang, art.Version, c.allowUntested)
	var unsupported *optimize.UnsupportedVersionError
	if errors.As(err, &unsupported) {
		c.logger.Info("skipping optimization", "source", art.Name, "reason", err)
		return nil
	}
	out, err := c.optimizer.Optimize(art.Kind, art.Text)
	if err != nil {
		return fmt.Errorf("optimization error for shader source %q: %w", art.Name, err)
	}
	art.Text = out
	art.Optimized = true
	return nil
}

// Build processes every source and writes one artifact per source into
// outDir, named after the source, plus the generated lookup file.
func (c *Config) Build(outDir string) (*Report, error) {
	report, err := c.Process()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}

	for _, art := range report.Artifacts {
		path := filepath.Join(outDir, art.Name)
		if err := os.WriteFile(path, []byte(art.Text), 0644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", path, err)
		}
		c.logger.Info("wrote shader", "source", art.Name, "path", path, "version", art.Version, "optimized", art.Optimized)
	}

	lookup, err := GenerateLookup(c.pkg, report.Registry.Names())
	if err != nil {
		return nil, err
	}
	path := filepath.Join(outDir, LookupFile)
	if err := os.WriteFile(path, lookup, 0644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", path, err)
	}
	c.logger.Info("wrote file id lookup", "path", path, "files", report.Registry.Len())
	return report, nil
}

// Emit processes the configured sources and returns the text of the one
// called name. All sources are processed so file ids match a full build.
func (c *Config) Emit(name string) (string, error) {
	report, err := c.Process()
	if err != nil {
		return "", err
	}
	art, ok := report.Artifact(name)
	if !ok {
		return "", fmt.Errorf("no shader source named %q", name)
	}
	return art.Text, nil
}
