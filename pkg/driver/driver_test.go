package driver

import (
	"bytes"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"manipula/interpreter-go/pkg/parser"
	"manipula/interpreter-go/pkg/runtime"
	"manipula/interpreter-go/pkg/scanner"
)

func newTestDriver(t *testing.T, mutate func(*Config)) (*Driver, *bytes.Buffer) {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Diagnostics.Color = ColorNever
	if mutate != nil {
		mutate(cfg)
	}
	var out bytes.Buffer
	return New(cfg, WithOutput(&out)), &out
}

func TestRunPrintsOutput(t *testing.T) {
	d, out := newTestDriver(t, nil)
	env, err := d.Run("VAR total = 0\nFOR i = 1 TO 3 DO total = total + i ENDDO\nPRINT total", "sum.mp")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.String() != "6\n" {
		t.Fatalf("expected 6, got %q", out.String())
	}
	val, err := env.Get("total")
	if err != nil || !runtime.Equal(val, runtime.NumberValue{Val: 6}) {
		t.Fatalf("expected total bound to 6, got %v (%v)", val, err)
	}
}

func TestCompileErrorCollectsEveryDiagnostic(t *testing.T) {
	d, out := newTestDriver(t, nil)
	_, err := d.Run("PRINT 1 @\nPRINT (1", "bad.mp")

	var compileErr *CompileError
	if !errors.As(err, &compileErr) {
		t.Fatalf("expected CompileError, got %v", err)
	}
	if compileErr.Name != "bad.mp" || len(compileErr.Scan) != 1 || len(compileErr.Parse) == 0 {
		t.Fatalf("unexpected compile error %+v", compileErr)
	}
	if !errors.Is(err, scanner.ErrUnexpectedCharacter) || !errors.Is(err, parser.ErrUnexpectedToken) {
		t.Fatalf("expected both sentinels to match, got %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("program with errors must not run, got output %q", out.String())
	}
}

func TestRuntimeErrorKeepsEarlierOutput(t *testing.T) {
	d, out := newTestDriver(t, nil)
	env, err := d.Run("PRINT 'before'\nPRINT y\nPRINT 'after'", "run.mp")
	if !errors.Is(err, runtime.ErrUndefinedVariable) {
		t.Fatalf("expected undefined variable, got %v", err)
	}
	var runErr *RunError
	if !errors.As(err, &runErr) || runErr.Name != "run.mp" {
		t.Fatalf("expected RunError naming the source, got %v", err)
	}
	if env == nil {
		t.Fatalf("expected the environment of the failed run")
	}
	if out.String() != "before\n" {
		t.Fatalf("expected only earlier output, got %q", out.String())
	}
}

func TestRunsDoNotShareEnvironment(t *testing.T) {
	d, _ := newTestDriver(t, nil)
	if _, err := d.Run("VAR x = 1", "a.mp"); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if _, err := d.Run("PRINT x", "b.mp"); !errors.Is(err, runtime.ErrUndefinedVariable) {
		t.Fatalf("expected x to be unbound in a new run, got %v", err)
	}
}

func TestRenderUsesConfiguredIndent(t *testing.T) {
	d, _ := newTestDriver(t, func(cfg *Config) { cfg.Render.Indent = "  " })
	out, err := d.Render("IF x > 0 THEN PRINT 1 ENDIF", "r.mp")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if want := "if x > 0:\n  print(1)\n"; string(out) != want {
		t.Fatalf("expected %q, got %q", want, out)
	}
	if _, err := d.Render("IF x THEN", "r.mp"); err == nil {
		t.Fatalf("expected compile error for unterminated IF")
	}
}

func TestExecuteDispatchesOnMode(t *testing.T) {
	src := "VAR x = 1 + 2\nPRINT x"
	cases := []struct {
		mode Mode
		want string
	}{
		{ModeInterpret, "3\n"},
		{ModeRender, "x = 1 + 2\nprint(x)\n"},
		{ModeAST, "(var x (+ 1 2))\n(print x)\n"},
	}
	for _, tc := range cases {
		t.Run(string(tc.mode), func(t *testing.T) {
			d, out := newTestDriver(t, func(cfg *Config) { cfg.Mode = tc.mode })
			if err := d.Execute(src, "m.mp"); err != nil {
				t.Fatalf("Execute: %v", err)
			}
			if out.String() != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, out.String())
			}
		})
	}

	d, _ := newTestDriver(t, func(cfg *Config) { cfg.Mode = "compile" })
	if err := d.Execute(src, "m.mp"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}

func TestCompileUsesCache(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	cfg := DefaultConfig()
	d := New(cfg, WithLogger(logger))

	first, err := d.Compile("PRINT 1", "c.mp")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	second, err := d.Compile("PRINT 1", "c.mp")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if first != second {
		t.Fatalf("expected the cached program to be reused")
	}
	if !strings.Contains(logs.String(), "cache hit") {
		t.Fatalf("expected cache hit to be logged, got %q", logs.String())
	}

	if _, err := d.Compile("PRINT (", "c.mp"); err == nil {
		t.Fatalf("expected compile error")
	}
	if d.cache.len() != 1 {
		t.Fatalf("failed compiles must not be cached, got %d entries", d.cache.len())
	}
}

func TestCompileWithoutCache(t *testing.T) {
	d, _ := newTestDriver(t, func(cfg *Config) { cfg.Cache.Size = 0 })
	first, _ := d.Compile("PRINT 1", "c.mp")
	second, _ := d.Compile("PRINT 1", "c.mp")
	if first == second {
		t.Fatalf("expected a fresh parse with the cache disabled")
	}
}

func TestRunFileAndRenderFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loop.mp")
	writeFile(t, path, "FOR x = [1, 2] DO PRINT x ENDDO")
	d, out := newTestDriver(t, nil)
	if _, err := d.RunFile(path); err != nil {
		t.Fatalf("RunFile: %v", err)
	}
	if out.String() != "1\n2\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
	rendered, err := d.RenderFile(path)
	if err != nil {
		t.Fatalf("RenderFile: %v", err)
	}
	if want := "for x in [1, 2]:\n    print(x)\n"; string(rendered) != want {
		t.Fatalf("expected %q, got %q", want, rendered)
	}
	if _, err := d.RunFile(filepath.Join(t.TempDir(), "missing.mp")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestExecuteGitSource(t *testing.T) {
	dir := t.TempDir()
	repo := initGitRepo(t, dir)
	commitFile(t, repo, dir, "hello.mp", "PRINT 'from git'")
	src, err := LoadGitSource(dir, "HEAD", "hello.mp")
	if err != nil {
		t.Fatalf("LoadGitSource: %v", err)
	}
	d, out := newTestDriver(t, nil)
	if err := d.ExecuteSource(src); err != nil {
		t.Fatalf("ExecuteSource: %v", err)
	}
	if out.String() != "from git\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestReportWritesDiagnostics(t *testing.T) {
	d, _ := newTestDriver(t, nil)

	_, err := d.Run("PRINT 1 @\nPRINT (1", "bad.mp")
	var buf bytes.Buffer
	if werr := d.Report(&buf, err); werr != nil {
		t.Fatalf("Report: %v", werr)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 diagnostics, got %q", buf.String())
	}
	if want := `bad.mp:1: scan error: unexpected character "@"`; lines[0] != want {
		t.Fatalf("expected %q, got %q", want, lines[0])
	}
	if !strings.HasPrefix(lines[1], "bad.mp:2: parse error: at end: ") {
		t.Fatalf("unexpected parse diagnostic %q", lines[1])
	}

	_, err = d.Run("PRINT y", "run.mp")
	buf.Reset()
	if werr := d.Report(&buf, err); werr != nil {
		t.Fatalf("Report: %v", werr)
	}
	if want := "run.mp:1: runtime error: at 'y': undefined variable 'y'\n"; buf.String() != want {
		t.Fatalf("expected %q, got %q", want, buf.String())
	}

	buf.Reset()
	if werr := WriteDiagnostics(&buf, errors.New("boom"), ColorNever); werr != nil || buf.String() != "error: boom\n" {
		t.Fatalf("unexpected generic diagnostic %q (%v)", buf.String(), werr)
	}
}

func TestReportColorsWhenForced(t *testing.T) {
	d, _ := newTestDriver(t, func(cfg *Config) { cfg.Diagnostics.Color = ColorAlways })
	_, err := d.Run("PRINT y", "run.mp")
	var buf bytes.Buffer
	if werr := d.Report(&buf, err); werr != nil {
		t.Fatalf("Report: %v", werr)
	}
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("expected ANSI escapes, got %q", buf.String())
	}
}
