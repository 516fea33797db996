package driver

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"manipula/interpreter-go/pkg/ast"
	"manipula/interpreter-go/pkg/interpreter"
	"manipula/interpreter-go/pkg/parser"
	"manipula/interpreter-go/pkg/render"
	"manipula/interpreter-go/pkg/runtime"
	"manipula/interpreter-go/pkg/scanner"
)

// Driver runs source text through the scanner and parser and hands the
// program to the interpreter or the Python renderer.
type Driver struct {
	cfg    *Config
	logger *slog.Logger
	out    io.Writer
	cache  *parseCache
}

// Option customises a Driver.
type Option func(*Driver)

// WithLogger sets the logger used for pipeline tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Driver) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithOutput sets where PRINT output and rendered programs go. Defaults to
// os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(d *Driver) {
		if w != nil {
			d.out = w
		}
	}
}

// New returns a driver for cfg. A nil cfg means DefaultConfig.
func New(cfg *Config, opts ...Option) *Driver {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	d := &Driver{
		cfg:    cfg,
		logger: slog.New(slog.DiscardHandler),
		out:    os.Stdout,
		cache:  newParseCache(cfg.Cache.Size),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Config returns the configuration the driver was built with.
func (d *Driver) Config() *Config { return d.cfg }

// Compile scans and parses src. Both phases collect every diagnostic; if
// any was found the result is a *CompileError and no program.
func (d *Driver) Compile(src, name string) (*ast.Program, error) {
	key := cacheKey(src)
	if program, ok := d.cache.get(key); ok {
		d.logger.Debug("cache hit", slog.String("file", name))
		return program, nil
	}

	start := time.Now()
	sc := scanner.New(src)
	tokens, _ := sc.Scan()
	d.logger.Debug("scan", slog.String("file", name), slog.Int("tokens", len(tokens)), slog.Int("errors", len(sc.Errors())))

	p := parser.New(tokens)
	program, _ := p.Parse()
	d.logger.Debug("parse",
		slog.String("file", name),
		slog.Int("statements", len(program.Statements)),
		slog.Int("errors", len(p.Errors())),
		slog.Duration("duration", time.Since(start)),
	)

	if sc.HadError() || p.HadError() {
		return nil, &CompileError{Name: name, Scan: sc.Errors(), Parse: p.Errors()}
	}
	d.cache.put(key, program)
	return program, nil
}

// Run compiles and executes src in a fresh environment, which is returned
// even when execution stopped on a runtime error.
func (d *Driver) Run(src, name string) (*runtime.Environment, error) {
	program, err := d.Compile(src, name)
	if err != nil {
		return nil, err
	}
	env := runtime.NewEnvironment()
	start := time.Now()
	err = interpreter.New(d.out).Interpret(program, env)
	d.logger.Debug("execute",
		slog.String("file", name),
		slog.Int("bindings", len(env.Keys())),
		slog.Duration("duration", time.Since(start)),
	)
	if err != nil {
		return env, &RunError{Name: name, Err: err}
	}
	return env, nil
}

// Render compiles src and returns the equivalent Python program.
func (d *Driver) Render(src, name string) ([]byte, error) {
	program, err := d.Compile(src, name)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	out, err := render.Format(program, &render.Options{Indent: d.cfg.Render.Indent})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	d.logger.Debug("render", slog.String("file", name), slog.Int("bytes", len(out)), slog.Duration("duration", time.Since(start)))
	return out, nil
}

// Dump compiles src and returns its parenthesized AST form.
func (d *Driver) Dump(src, name string) (string, error) {
	program, err := d.Compile(src, name)
	if err != nil {
		return "", err
	}
	return render.Dump(program), nil
}

// Execute compiles src and acts on it according to the configured mode,
// writing results to the driver's output.
func (d *Driver) Execute(src, name string) error {
	switch d.cfg.Mode {
	case ModeInterpret, "":
		_, err := d.Run(src, name)
		return err
	case ModeRender:
		out, err := d.Render(src, name)
		if err != nil {
			return err
		}
		_, err = d.out.Write(out)
		return err
	case ModeAST:
		out, err := d.Dump(src, name)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(d.out, out)
		return err
	default:
		return fmt.Errorf("driver: unknown mode %q", d.cfg.Mode)
	}
}

// ExecuteSource runs a loaded Source.
func (d *Driver) ExecuteSource(src Source) error {
	return d.Execute(src.Text, src.Name)
}

// RunFile loads path and executes it.
func (d *Driver) RunFile(path string) (*runtime.Environment, error) {
	src, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return d.Run(src.Text, src.Name)
}

// RenderFile loads path and renders it to Python.
func (d *Driver) RenderFile(path string) ([]byte, error) {
	src, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return d.Render(src.Text, src.Name)
}

// Report writes err to w as diagnostics, coloured per the configuration.
func (d *Driver) Report(w io.Writer, err error) error {
	return WriteDiagnostics(w, err, d.cfg.Diagnostics.Color)
}
