package parser

import (
	"math"
	"testing"

	"github.com/cookable-lang/cookable/internal/ast"
	"github.com/cookable-lang/cookable/internal/errors"
	"github.com/cookable-lang/cookable/internal/lexer"
)

func parseProgram(t *testing.T, input string) []ast.Stmt {
	t.Helper()
	program, err := ParseSource(input, "test.cook")
	if err != nil {
		t.Fatalf("parser error for %q: %v", input, err)
	}
	return program
}

func TestParseFunction(t *testing.T) {
	program := parseProgram(t, "cookable mew() blud 1 + 2 slay")
	if len(program) != 1 {
		t.Fatalf("program has wrong number of statements. got=%d", len(program))
	}

	fn, ok := program[0].(*ast.Function)
	if !ok {
		t.Fatalf("program[0] is not *ast.Function. got=%T", program[0])
	}
	if fn.Name != "mew" {
		t.Errorf("fn.Name wrong. got=%q", fn.Name)
	}
	if len(fn.Body) != 1 {
		t.Fatalf("fn.Body has wrong length. got=%d", len(fn.Body))
	}
	ret, ok := fn.Body[0].(*ast.Return)
	if !ok {
		t.Fatalf("fn.Body[0] is not *ast.Return. got=%T", fn.Body[0])
	}
	if ret.Value.String() != "(1 + 2)" {
		t.Errorf("return value wrong. got=%q", ret.Value.String())
	}
}

func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"1 * 2 + 3", "((1 * 2) + 3)"},
		{"1 - 2 - 3", "((1 - 2) - 3)"},
		{"8 / 2 / 2", "((8 / 2) / 2)"},
		{"a == b + 1", "(a == (b + 1))"},
		{"a > b == sigma", "((a > b) == sigma)"},
		{"a < b + c", "((a < b) + c)"},
		{"1 rizz 1", "(1 == 1)"},
		{"-5 + 1", "(-5 + 1)"},
		{"a - -3", "(a - -3)"},
		{"obj.field * 2", "(obj.field * 2)"},
		{"a.b(1, 2).c", "a.b(1, 2).c"},
		{"f(1)(2)", "f(1)"},
		{"new Dog(1, \"x\")", "new Dog(1, \"x\")"},
		{"[1, [2], \"s\"]", "[1, [2], \"s\"]"},
		{"[1, 2,]", "[1, 2]"},
		{"[]", "[]"},
		{"cook f()", "f()"},
		{"yap(1 + 2, ohio)", "yap((1 + 2), ohio)"},
	}

	for i, tt := range tests {
		p, err := NewParser(newLexer("x is " + tt.input))
		if err != nil {
			t.Fatalf("tests[%d] - lexer error: %v", i, err)
		}
		stmt, err := p.parseStatement()
		if err != nil {
			t.Fatalf("tests[%d] - parser error for %q: %v", i, tt.input, err)
		}
		assign, ok := stmt.(*ast.VariableAssign)
		if !ok {
			t.Fatalf("tests[%d] - stmt is not *ast.VariableAssign. got=%T", i, stmt)
		}
		if got := assign.Value.String(); got != tt.expected {
			t.Errorf("tests[%d] - expected=%q, got=%q", i, tt.expected, got)
		}
	}
}

func TestStatements(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"x is 1", "x is 1"},
		{"self.name is \"a\"", "self.name is \"a\""},
		{"yap(1)", "yap(1)"},
		{"counter.tick()", "counter.tick()"},
		{"cook obj.run()", "obj.run()"},
		{"gyatt nerd", "gyatt nerd"},
		{"ghost", "ghost"},
		{"blud x * 2", "blud (x * 2)"},
		{"skibidi (i < 5) do i is i + 1 slay", "skibidi ((i < 5)) do i is (i + 1) slay"},
		{"goon (i in [1, 2]) do yap(i) slay", "goon (i in [1, 2]) do yap(i) slay"},
		{"suspect (x > 1) then yap(x) cap yap(0) slay", "suspect ((x > 1)) then yap(x) cap yap(0) slay"},
		{"suspect (x) then slay", "suspect (x) then slay"},
		{
			"pookie Dog() cookable __edge__() self.n is 0 slay cookable bark() yap(self.n) slay slay",
			"pookie Dog() cookable __edge__() self.n is 0 slay cookable bark() yap(self.n) slay slay",
		},
	}

	for i, tt := range tests {
		program := parseProgram(t, tt.input)
		if len(program) != 1 {
			t.Fatalf("tests[%d] - wrong number of statements. got=%d", i, len(program))
		}
		if got := program[0].String(); got != tt.expected {
			t.Errorf("tests[%d] - expected=%q, got=%q", i, tt.expected, got)
		}
	}
}

func TestIfElseBranches(t *testing.T) {
	program := parseProgram(t, "suspect (a) then yap(1) slay suspect (b) then cap slay")

	noElse := program[0].(*ast.If)
	if noElse.Else != nil {
		t.Errorf("expected nil else branch, got %v", noElse.Else)
	}

	emptyElse := program[1].(*ast.If)
	if emptyElse.Else == nil || len(emptyElse.Else) != 0 {
		t.Errorf("expected empty non-nil else branch, got %#v", emptyElse.Else)
	}
}

func TestNegativeLiteral(t *testing.T) {
	tests := []struct {
		input    string
		expected int64
	}{
		{"x is -42", -42},
		{"x is -0", 0},
		{"x is 9223372036854775807", math.MaxInt64},
		{"x is -9223372036854775808", math.MinInt64},
	}

	for _, tt := range tests {
		program := parseProgram(t, tt.input)
		num, ok := program[0].(*ast.VariableAssign).Value.(*ast.Number)
		if !ok {
			t.Fatalf("value is not *ast.Number. got=%T", program[0].(*ast.VariableAssign).Value)
		}
		if num.Value != tt.expected {
			t.Errorf("%q: num.Value wrong. got=%d, want=%d", tt.input, num.Value, tt.expected)
		}
	}
}

func TestClassMethods(t *testing.T) {
	input := `pookie Counter()
  cookable __edge__()
    self.count is 0
  slay
  cookable tick()
    self.count is self.count + 1
  slay
slay`
	program := parseProgram(t, input)

	class, ok := program[0].(*ast.Class)
	if !ok {
		t.Fatalf("program[0] is not *ast.Class. got=%T", program[0])
	}
	if class.Name != "Counter" {
		t.Errorf("class.Name wrong. got=%q", class.Name)
	}
	names := []string{"__edge__", "tick"}
	if len(class.Methods) != len(names) {
		t.Fatalf("wrong number of methods. got=%d", len(class.Methods))
	}
	for i, name := range names {
		if class.Methods[i].Name != name {
			t.Errorf("methods[%d] - expected=%q, got=%q", i, name, class.Methods[i].Name)
		}
	}
	if class.Methods[1].Line != 5 {
		t.Errorf("tick line wrong. got=%d", class.Methods[1].Line)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input string
		kind  errors.Kind
	}{
		{"x is -y", errors.KindGeneral},
		{"x is 9223372036854775808", errors.KindGeneral},
		{"x is -9223372036854775809", errors.KindGeneral},
		{"pookie Dog() cookable bark() slay slay", errors.KindGeneral},
		{"pookie () slay", errors.KindGeneral},
		{"x is a.", errors.KindGeneral},
		{"x is a.5", errors.KindGeneral},
		{"gyatt 5", errors.KindGeneral},
		{"goon (i in x) do slay", errors.KindGeneral},
		{"goon (i in [1] + [2]) do slay", errors.KindGeneral},
		{"cook 5", errors.KindGeneral},
		{"f() is 1", errors.KindGeneral},
		{"cookable mew() blud 1", errors.KindUnexpectedToken},
		{"cookable mew(x) slay", errors.KindUnexpectedToken},
		{"cook obj.field", errors.KindUnexpectedToken},
		{"pookie Dog() x is 1 slay", errors.KindUnexpectedToken},
		{"skibidi (x) yap(x) slay", errors.KindUnexpectedToken},
		{"slay", errors.KindUnknownUnexpectedToken},
		{"x is )", errors.KindUnknownUnexpectedToken},
		{"5 is x", errors.KindUnknownUnexpectedToken},
		{"x is (1)", errors.KindUnknownUnexpectedToken},
		{"x = 1", errors.KindUnexpectedChar},
	}

	for i, tt := range tests {
		_, err := ParseSource(tt.input, "test.cook")
		if err == nil {
			t.Errorf("tests[%d] - expected error for %q", i, tt.input)
			continue
		}
		if kind := errors.KindOf(err); kind != tt.kind {
			t.Errorf("tests[%d] - %q: expected kind %s, got %s (%v)", i, tt.input, tt.kind, kind, err)
		}
	}
}

func TestErrorLine(t *testing.T) {
	input := "cookable mew()\n  x is 1\n  blud\nslay"
	_, err := ParseSource(input, "test.cook")
	se, ok := errors.As(err)
	if !ok {
		t.Fatalf("expected ScriptError, got %v", err)
	}
	if se.Phase != errors.PhaseParse {
		t.Errorf("phase wrong. got=%s", se.Phase)
	}
	if se.Line != 4 {
		t.Errorf("line wrong. got=%d", se.Line)
	}
	if se.Get("found") != "SLAY" {
		t.Errorf("found wrong. got=%q", se.Get("found"))
	}
}

func TestMissingEndReportsEOF(t *testing.T) {
	_, err := ParseSource("skibidi (sigma) do\n  yap(1)\n", "test.cook")
	se, ok := errors.As(err)
	if !ok {
		t.Fatalf("expected ScriptError, got %v", err)
	}
	if se.Kind != errors.KindUnexpectedToken || se.Get("found") != "EOF" {
		t.Errorf("unexpected error: %v", se)
	}
}

func newLexer(input string) *lexer.Lexer {
	return lexer.New(input)
}
