package stdlib

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/cookable-lang/cookable/internal/errors"
	"github.com/cookable-lang/cookable/internal/interpreter"
	"github.com/cookable-lang/cookable/internal/parser"
)

func runScript(t *testing.T, registry *interpreter.Registry, seed int64, src string) (*interpreter.Interpreter, string, error) {
	t.Helper()
	program, err := parser.ParseSource(src, "test.cook")
	if err != nil {
		t.Fatalf("parser error: %v", err)
	}
	var out bytes.Buffer
	itp := interpreter.New(
		interpreter.WithStdout(&out),
		interpreter.WithStdin(strings.NewReader("")),
		interpreter.WithRegistry(registry),
		interpreter.WithLibraryOptions(interpreter.LibraryOptions{Seed: seed}),
	)
	err = itp.Interpret(program)
	return itp, out.String(), err
}

func TestStandardRegistry(t *testing.T) {
	names := Standard().Names()
	if strings.Join(names, ",") != "clock,nerd" {
		t.Errorf("registered libraries = %v", names)
	}
}

func TestNerdIsDeterministicWithSeed(t *testing.T) {
	src := `
gyatt nerd
goon (i in [1, 2, 3, 4, 5, 6, 7, 8]) do
  yap(nerd.randInt(1, 6))
slay
yap(nerd.getState())`

	_, first, err := runScript(t, Standard(), 42, src)
	if err != nil {
		t.Fatalf("runtime error: %v", err)
	}
	_, second, err := runScript(t, Standard(), 42, src)
	if err != nil {
		t.Fatalf("runtime error: %v", err)
	}
	if first != second {
		t.Errorf("same seed produced different output:\n%s\n%s", first, second)
	}

	lines := strings.Split(strings.TrimSpace(first), "\n")
	if len(lines) != 9 {
		t.Fatalf("expected 9 lines, got %d", len(lines))
	}
	for i, line := range lines[:8] {
		if len(line) != 1 || line[0] < '1' || line[0] > '6' {
			t.Errorf("lines[%d] - value %q out of range", i, line)
		}
	}
	if lines[8] != "8" {
		t.Errorf("getState = %s, want 8", lines[8])
	}
}

func TestNerdRandInt(t *testing.T) {
	itp, _, err := runScript(t, Standard(), 7, `
gyatt nerd
same is nerd.randInt(5, 5)
neg is nerd.randInt(-3, -3)
wide is nerd.randInt(-9223372036854775807, 9223372036854775807)`)
	if err != nil {
		t.Fatalf("runtime error: %v", err)
	}

	env := itp.Environment()
	if v, _ := env.Lookup("same"); v != interpreter.Integer(5) {
		t.Errorf("same = %v, want 5", v)
	}
	if v, _ := env.Lookup("neg"); v != interpreter.Integer(-3) {
		t.Errorf("neg = %v, want -3", v)
	}
	if _, ok := env.Lookup("wide"); !ok {
		t.Error("wide is not bound")
	}
}

func TestNativeErrors(t *testing.T) {
	tests := []struct {
		input string
		kind  errors.Kind
	}{
		{"gyatt nerd\nx is nerd.randInt(6, 1)", errors.KindGeneral},
		{"gyatt nerd\nx is nerd.randInt(1)", errors.KindArgumentMismatch},
		{"gyatt nerd\nx is nerd.randInt(\"1\", 2)", errors.KindTypeError},
		{"gyatt nerd\nx is nerd.getState(1)", errors.KindArgumentMismatch},
		{"gyatt nerd\nx is nerd.shuffle()", errors.KindUnknownFunction},
		{"gyatt clock\nclock.sleep(-1)", errors.KindGeneral},
		{"gyatt clock\nclock.sleep()", errors.KindArgumentMismatch},
		{"gyatt clock\nclock.millis(1)", errors.KindArgumentMismatch},
		{"x is nerd.randInt(1, 2)", errors.KindGeneral},
	}

	for i, tt := range tests {
		_, _, err := runScript(t, Standard(), 1, tt.input)
		if kind := errors.KindOf(err); kind != tt.kind {
			t.Errorf("tests[%d] - %q: expected kind %s, got %s (%v)", i, tt.input, tt.kind, kind, err)
		}
	}
}

type fakeClock struct {
	now   time.Time
	slept []time.Duration
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(d time.Duration) {
	c.slept = append(c.slept, d)
	c.now = c.now.Add(d)
}

func TestClock(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	registry := interpreter.NewRegistry()
	registry.Register(ClockName, NewClock(clock.Now, clock.Sleep))

	itp, _, err := runScript(t, registry, 0, `
gyatt clock
before is clock.millis()
clock.sleep(250)
clock.sleep(0)
after is clock.millis()`)
	if err != nil {
		t.Fatalf("runtime error: %v", err)
	}

	env := itp.Environment()
	if v, _ := env.Lookup("before"); v != interpreter.Integer(0) {
		t.Errorf("before = %v, want 0", v)
	}
	if v, _ := env.Lookup("after"); v != interpreter.Integer(250) {
		t.Errorf("after = %v, want 250", v)
	}
	if len(clock.slept) != 2 || clock.slept[0] != 250*time.Millisecond {
		t.Errorf("slept = %v", clock.slept)
	}
}
