// Package main implements the vela compiler front end.
package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/you-not-fish/vela/internal/codegen"
	"github.com/you-not-fish/vela/internal/syntax"
	"github.com/you-not-fish/vela/internal/types"
	"github.com/you-not-fish/vela/internal/types2"
	"gopkg.in/urfave/cli.v1"
)

// Version information
const Version = "0.1.0-dev"

var (
	inputFlag = cli.StringFlag{
		Name:  "input, i",
		Usage: "Program tree to check (YAML)",
	}
	outputFlag = cli.StringFlag{
		Name:  "output, o",
		Usage: "Output file (default: stdout)",
	}
	verboseFlag = cli.BoolFlag{
		Name:  "verbose, v",
		Usage: "Log every checked declaration",
	}
	configFileFlag = cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}
	emitFlag = cli.StringFlag{
		Name:  "emit",
		Usage: "Output kind: ll, tree or symbols",
		Value: "ll",
	}
	colorFlag = cli.StringFlag{
		Name:  "color",
		Usage: "Colour diagnostics: auto, always or never",
		Value: "auto",
	}
)

func init() {
	// -v is taken by --verbose
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print the version",
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = "velac"
	app.Usage = "check a vela program and emit its declarations"
	app.Version = Version
	app.Writer = stdout
	app.ErrWriter = stderr
	app.Flags = []cli.Flag{
		inputFlag,
		outputFlag,
		verboseFlag,
		configFileFlag,
		emitFlag,
		colorFlag,
	}
	app.Action = func(ctx *cli.Context) error {
		return run(ctx, stdout, stderr)
	}
	return app
}

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		os.Exit(1)
	}
}

// run loads the configuration, checks the input program and writes the
// requested output. Diagnostics go to stderr.
func run(ctx *cli.Context, stdout, stderr io.Writer) error {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return fail(stderr, "auto", err)
	}
	if ctx.String("input") == "" {
		return fail(stderr, cfg.Color, errors.New("no input file (use --input)"))
	}

	log := logrus.New()
	log.Out = stderr
	log.Formatter = &logrus.TextFormatter{DisableTimestamp: true}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fail(stderr, cfg.Color, errors.Wrap(err, "config"))
	}
	log.SetLevel(level)
	verbose := ctx.Bool("verbose")
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	filename := ctx.String("input")
	prog, err := load(filename)
	if err != nil {
		return fail(stderr, cfg.Color, err)
	}
	log.WithFields(logrus.Fields{"file": filename, "decls": len(prog)}).Debug("program loaded")

	var out bytes.Buffer
	switch cfg.Emit {
	case "ll":
		m := codegen.NewModule(&out, filename)
		if _, err := check(prog, m, log, verbose); err != nil {
			return fail(stderr, cfg.Color, err)
		}
		if err := m.Err(); err != nil {
			return fail(stderr, cfg.Color, errors.Wrap(err, "codegen"))
		}

	case "tree":
		syntax.Fprint(&out, prog)

	case "symbols":
		globals, err := check(prog, codegen.Discard, log, verbose)
		if err != nil {
			return fail(stderr, cfg.Color, err)
		}
		writeSymbols(&out, prog, globals)

	default:
		return fail(stderr, cfg.Color, errors.Errorf("unknown emit kind %q", cfg.Emit))
	}

	if err := writeOutput(cfg.Output, stdout, out.Bytes()); err != nil {
		return fail(stderr, cfg.Color, err)
	}
	return nil
}

// load decodes the program tree stored in filename.
func load(filename string) (syntax.Main, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "load")
	}
	defer f.Close()
	return syntax.Decode(filename, f)
}

// check runs the semantic checker with gen as backend. In verbose mode
// the declaration that failed is dumped to the log.
func check(prog syntax.Main, gen codegen.Codegen, log *logrus.Logger, verbose bool) (*types.Globals, error) {
	conf := &types2.Config{
		Codegen: gen,
		Logger:  log,
	}
	if verbose {
		conf.Error = func(err *types.Error) {
			if d := failingDecl(prog, err.Pos); d != nil {
				log.WithField("kind", err.Kind).Debugf("failing declaration:\n%s", spew.Sdump(d))
			}
		}
	}
	return types2.Check(prog, conf, nil)
}

// failingDecl returns the top-level statement that contains pos.
func failingDecl(prog syntax.Main, pos syntax.Pos) syntax.Decl {
	var found syntax.Decl
	for _, d := range prog {
		if pos.Before(d.Pos()) {
			break
		}
		found = d
	}
	return found
}

func writeOutput(filename string, stdout io.Writer, data []byte) error {
	if filename == "" || filename == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return errors.Wrap(err, "write output")
	}
	return nil
}

// fail prints err as a diagnostic and returns the error that makes the
// command exit with status 1.
func fail(stderr io.Writer, mode string, err error) error {
	c := diagColor(stderr, mode)
	c.Fprint(stderr, "velac: error: ")
	fmt.Fprintln(stderr, err)
	return cli.NewExitError("", 1)
}
