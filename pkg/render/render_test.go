package render

import (
	"bytes"
	"errors"
	"testing"

	"manipula/interpreter-go/pkg/ast"
	"manipula/interpreter-go/pkg/parser"
)

func mustFormat(t *testing.T, src string, opt *Options) string {
	t.Helper()
	program, err := parser.ParseSource(src)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	out, err := Format(program, opt)
	if err != nil {
		t.Fatalf("format %q: %v", src, err)
	}
	return string(out)
}

func TestFormatStatements(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"print", "PRINT 'hi'", "print('hi')\n"},
		{"declaration", "VAR x = 1.5\ny = x * 2", "x = 1.5\ny = x * 2\n"},
		{"compound target", "a.b[0] = NULL", "a.b[0] = None\n"},
		{"literals", "PRINT [TRUE, FALSE, NULL, 3]", "print([True, False, None, 3])\n"},
		{"logic", "PRINT x > 1 AND NOT (y == 2) OR c", "print(x > 1 and (not (y == 2)) or c)\n"},
		{"not in comparison", "PRINT NOT TRUE == b", "print((not True) == b)\n"},
		{"not equal", "PRINT a <> b", "print(a != b)\n"},
		{"membership", "PRINT 2 IN [1, 2]", "print(2 in [1, 2])\n"},
		{"grouping", "PRINT -(1 + 2) / 4", "print(-(1 + 2) / 4)\n"},
		{"nested assign", "PRINT x = 5", "print((x := 5))\n"},
		{"grouped assign", "(x = 5)", "((x := 5))\n"},
		{"bare not", "PRINT NOT (a IN b)", "print(not (a in b))\n"},
		{"range value", "r = 1 TO n", "r = list(range(1, n + 1))\n"},
		{"range shorthand", "PRINT [1 .. 3]", "print([1, 2, 3])\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := mustFormat(t, tc.src, nil); got != tc.want {
				t.Fatalf("expected:\n%s\ngot:\n%s", tc.want, got)
			}
		})
	}
}

func TestFormatControlFlowIndentation(t *testing.T) {
	src := `VAR n = 0
IF n == 0 THEN
  PRINT 'zero'
ELSEIF n > 0 THEN
  WHILE (n < 3) DO
    n = n + 1
  ENDDO
ELSE
ENDIF
FOR i = 1 TO 3 DO
  FOR x = [10, 20] DO PRINT x * i ENDDO
ENDDO
FOR j = 0 TO n DO ENDDO`
	want := `n = 0
if n == 0:
    print('zero')
elif n > 0:
    while n < 3:
        n = n + 1
else:
    pass
for i in range(1, 4):
    for x in [10, 20]:
        print(x * i)
for j in range(0, n + 1):
    pass
`
	if got := mustFormat(t, src, nil); got != want {
		t.Fatalf("expected:\n%s\ngot:\n%s", want, got)
	}
}

func TestFormatParenthesizesChainedComparisons(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"PRINT 1 < 2 == TRUE", "print((1 < 2) == True)\n"},
		{"PRINT a == b == c", "print((a == b) == c)\n"},
		{"PRINT x IN [1] == TRUE", "print((x in [1]) == True)\n"},
		{"PRINT a <> (b < c)", "print(a != (b < c))\n"},
		{"PRINT a + 1 < b * 2", "print(a + 1 < b * 2)\n"},
	}
	for _, tc := range cases {
		if got := mustFormat(t, tc.src, nil); got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.src, tc.want, got)
		}
	}
}

const truthyPrelude = "def _truthy(x):\n    return x is not None and x is not False\n\n\n"

func TestFormatConditionsUseManipulaTruthiness(t *testing.T) {
	src := `IF 0 THEN
  PRINT 'zero is true'
ELSEIF '' THEN
  PRINT 'empty is true'
ENDIF
WHILE (items) DO ENDDO`
	want := truthyPrelude + `if _truthy(0):
    print('zero is true')
elif _truthy(''):
    print('empty is true')
while _truthy(items):
    pass
`
	if got := mustFormat(t, src, nil); got != want {
		t.Fatalf("expected:\n%s\ngot:\n%s", want, got)
	}

	if got := mustFormat(t, "IF n > 0 THEN PRINT NOT done ENDIF", &Options{Indent: "\t"}); got != "def _truthy(x):\n\treturn x is not None and x is not False\n\n\nif n > 0:\n\tprint(not _truthy(done))\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestFormatLogicalKeepsOperandValues(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"PRINT a OR 'b'", "print((_lhs if _truthy(_lhs := a) else 'b'))\n"},
		{"PRINT a AND b", "print((b if _truthy(_lhs := a) else _lhs))\n"},
		{"PRINT 0 AND 1", "print((1 if _truthy(_lhs := 0) else _lhs))\n"},
	}
	for _, tc := range cases {
		if got := mustFormat(t, tc.src, nil); got != truthyPrelude+tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.src, truthyPrelude+tc.want, got)
		}
	}
	if got := mustFormat(t, "PRINT a > 1 OR b", nil); got != "print(a > 1 or b)\n" {
		t.Fatalf("boolean left operand should stay plain, got %q", got)
	}
}

func TestFormatBuiltTree(t *testing.T) {
	program := ast.Prog(
		ast.Whl(ast.Or(ast.ID("a"), ast.Null()), ast.Blk()),
		ast.IfThen(ast.Un("NOT", ast.Grp(ast.And(ast.Bool(true), ast.ID("b")))), ast.Blk(
			ast.Prn(ast.Lst(ast.Un("-", ast.Num(1)))),
		)),
		ast.Prn(ast.Path(ast.IdentTok("cfg"), ast.DotTok(), ast.IdentTok("size"))),
	)
	out, err := Format(program, nil)
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	want := truthyPrelude + `while _truthy((_lhs if _truthy(_lhs := a) else None)):
    pass
if not _truthy((True and b)):
    print([-1])
print(cfg.size)
`
	if string(out) != want {
		t.Fatalf("expected:\n%s\ngot:\n%s", want, out)
	}
}

func TestFormatCustomIndent(t *testing.T) {
	got := mustFormat(t, "IF TRUE THEN IF FALSE THEN PRINT 1 ENDIF ENDIF", &Options{Indent: "\t"})
	want := "if True:\n\tif False:\n\t\tprint(1)\n"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestFormatQuotesStrings(t *testing.T) {
	program := ast.Prog(ast.Prn(ast.Str("a'b\\c\nd")))
	out, err := Format(program, nil)
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	if want := `print('a\'b\\c\nd')` + "\n"; string(out) != want {
		t.Fatalf("expected %q, got %q", want, out)
	}
}

type failingWriter struct{}

var errWrite = errors.New("write failed")

func (failingWriter) Write([]byte) (int, error) { return 0, errWrite }

func TestEncodeReportsWriteErrors(t *testing.T) {
	program := ast.Prog(ast.Prn(ast.Num(1)))
	if err := Encode(failingWriter{}, program, nil); !errors.Is(err, errWrite) {
		t.Fatalf("expected write error, got %v", err)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, program, nil); err != nil || buf.String() != "print(1)\n" {
		t.Fatalf("unexpected result %q, %v", buf.String(), err)
	}
}

func TestDump(t *testing.T) {
	src := "VAR x = 1 + 2 * 3\nIF x > 1 THEN PRINT -x ELSEIF x THEN PRINT [1, 'a'] ELSE x = (x) ENDIF\nFOR i = 1 TO 2 DO PRINT i OR NULL ENDDO\nWHILE (FALSE) DO ENDDO\nPRINT y = 2"
	program, err := parser.ParseSource(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := "(var x (+ 1 (* 2 3)))\n" +
		"(if (> x 1) (block (print (- x))) (elseif x (block (print (list 1 'a')))) (else (block (var x (group x)))))\n" +
		"(for (var i (TO 1 2)) (block (print (OR i NULL))))\n" +
		"(while FALSE (block))\n" +
		"(print (= y 2))"
	if got := Dump(program); got != want {
		t.Fatalf("expected:\n%s\ngot:\n%s", want, got)
	}
}
