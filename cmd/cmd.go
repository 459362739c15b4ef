package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/rubiojr/glossy/compiler"
	"github.com/rubiojr/glossy/optimize"
	"github.com/rubiojr/glossy/preprocess"
)

// Execute runs the glossy CLI with the given version string.
func Execute(version string) {
	cmd := newCommand(version)
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", errorPrefix(os.Stderr), err)
		os.Exit(1)
	}
}

const buildDescription = `Sources are processed in the order their --vertex, --fragment and
--source globs appear on the command line, and include file ids are
assigned in that processing order.`

func newCommand(version string) *cli.Command {
	return &cli.Command{
		Name:    "glossy",
		Usage:   "Resolve #include directives in GLSL shaders at build time",
		Version: version,
		Commands: []*cli.Command{
			{
				Name:  "build",
				Usage: "Process shader sources and write them to a directory",
				Flags: append(discoveryFlags(),
					&cli.StringFlag{
						Name:     "out",
						Aliases:  []string{"o"},
						Usage:    "Output directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "package",
						Usage: "Package name of the generated file id lookup",
						Value: compiler.DefaultPackage,
					},
				),
				Action:      buildAction,
				Description: buildDescription,
			},
			{
				Name:      "emit",
				Usage:     "Print one processed shader source",
				ArgsUsage: "<source name>",
				Flags:     discoveryFlags(),
				Action:    emitAction,
			},
			{
				Name:   "ids",
				Usage:  "Print the file id assigned to every include",
				Flags:  discoveryFlags(),
				Action: idsAction,
			},
		},
	}
}

// discoveryFlags returns the flags shared by every subcommand. The glob
// flags may be repeated and are applied in the order given.
func discoveryFlags() []cli.Flag {
	globs := &globList{}
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "lang",
			Aliases: []string{"l"},
			Usage:   "Target language: opengl, es2 or es3",
			Value:   "opengl",
		},
		&cli.GenericFlag{
			Name:  "vertex",
			Usage: "Glob of vertex shader sources",
			Value: &globValue{list: globs, flag: "vertex"},
		},
		&cli.GenericFlag{
			Name:  "fragment",
			Usage: "Glob of fragment shader sources",
			Value: &globValue{list: globs, flag: "fragment"},
		},
		&cli.GenericFlag{
			Name:    "source",
			Aliases: []string{"s"},
			Usage:   "Glob of shader sources, kind taken from the .vert/.frag extension",
			Value:   &globValue{list: globs, flag: "source"},
		},
		&cli.GenericFlag{
			Name:    "include",
			Aliases: []string{"I"},
			Usage:   "Glob of include files, referenced by base name",
			Value:   &globValue{list: globs, flag: "include"},
		},
		&cli.BoolFlag{
			Name:  "discard-line-info",
			Usage: "Strip comments, blank lines and #line re-anchoring",
		},
		&cli.StringFlag{
			Name:  "optimizer",
			Usage: "Optimizer command, reads a shader on stdin and writes it to stdout",
		},
		&cli.BoolFlag{
			Name:  "allow-untested",
			Usage: "Run the optimizer on versions it is not known to support",
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "Log every include expansion and written file",
		},
	}
}

// configFromFlags builds a compiler configuration. Glob patterns are
// applied in command-line order, so sources are processed, and file ids
// assigned, in the order the user listed them.
func configFromFlags(cmd *cli.Command) (*compiler.Config, error) {
	lang, err := preprocess.ParseLanguage(cmd.String("lang"))
	if err != nil {
		return nil, err
	}

	level := slog.LevelWarn
	if cmd.Bool("verbose") {
		level = slog.LevelDebug
	}
	cfg := compiler.New(lang).
		Logger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if globs, ok := cmd.Value("vertex").(*globList); ok {
		for _, g := range globs.args {
			switch g.flag {
			case "vertex":
				cfg.Vertex(g.pattern)
			case "fragment":
				cfg.Fragment(g.pattern)
			case "source":
				cfg.Source(g.pattern)
			case "include":
				cfg.Include(g.pattern)
			}
		}
	}

	if line := cmd.String("optimizer"); line != "" {
		opt, err := optimize.ParseCommand(line, lang)
		if err != nil {
			return nil, err
		}
		cfg.Optimize(opt)
	}
	if cmd.Bool("discard-line-info") {
		cfg.DiscardLineInfo()
	}
	if cmd.Bool("allow-untested") {
		cfg.AllowUntestedVersions()
	}
	return cfg, cfg.Err()
}

func buildAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := configFromFlags(cmd)
	if err != nil {
		return err
	}
	if len(cfg.Sources()) == 0 {
		return fmt.Errorf("no shader sources matched")
	}
	cfg.Package(cmd.String("package"))
	_, err = cfg.Build(cmd.String("out"))
	return err
}

func emitAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() < 1 {
		return fmt.Errorf("usage: glossy emit [flags] <source name>")
	}
	cfg, err := configFromFlags(cmd)
	if err != nil {
		return err
	}
	src, err := cfg.Emit(cmd.Args().First())
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout(cmd), src)
	return nil
}

func idsAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := configFromFlags(cmd)
	if err != nil {
		return err
	}
	report, err := cfg.Process()
	if err != nil {
		return err
	}
	w := stdout(cmd)
	for i, name := range report.Registry.Names() {
		fmt.Fprintf(w, "%d\t%s\n", i+1, name)
	}
	return nil
}

func stdout(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

// errorPrefix colours the prefix red when f is a terminal and NO_COLOR is
// unset.
func errorPrefix(f *os.File) string {
	if os.Getenv("NO_COLOR") == "" && term.IsTerminal(int(f.Fd())) {
		return "\033[31merror:\033[0m"
	}
	return "error:"
}
