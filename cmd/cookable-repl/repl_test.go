package main

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/cookable-lang/cookable/internal/cli"
)

func newTestREPL(t *testing.T, stdin string) (*REPL, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	cfg := cli.DefaultConfig()
	cfg.Seed = 1
	r, err := NewREPL(cfg, strings.NewReader(stdin), &out, &errOut)
	if err != nil {
		t.Fatalf("NewREPL error: %v", err)
	}
	return r, &out, &errOut
}

func session(t *testing.T, input string) (string, string) {
	t.Helper()
	r, out, errOut := newTestREPL(t, "")
	r.Run(&plainReader{r: bufio.NewReader(strings.NewReader(input))})
	return out.String(), errOut.String()
}

func TestSessionEchoesValues(t *testing.T) {
	out, errOut := session(t, "x is 4\nx * 10\nyap(\"hi\")\nx + 1\n")
	if errOut != "" {
		t.Fatalf("unexpected errors: %q", errOut)
	}
	if out != "40\nhi\n5\n\n" {
		t.Errorf("output = %q", out)
	}
}

func TestSessionContinuesIncompleteInput(t *testing.T) {
	input := `cookable double()
  blud n * 2
slay
pookie Box()
  cookable __edge__()
    self.v is 1
  slay
slay
n is 21
double()
`
	out, errOut := session(t, input)
	if errOut != "" {
		t.Fatalf("unexpected errors: %q", errOut)
	}
	if out != "42\n\n" {
		t.Errorf("output = %q", out)
	}
}

func TestSessionReportsErrorsAndKeepsGoing(t *testing.T) {
	out, errOut := session(t, "x is 1 / 0\nslay\nnum(2)\n")
	if !strings.Contains(errOut, "DivisionByZero") {
		t.Errorf("missing runtime error: %q", errOut)
	}
	if !strings.Contains(errOut, "UnknownUnexpectedToken") {
		t.Errorf("missing parse error: %q", errOut)
	}
	if !strings.HasPrefix(out, "2\n") {
		t.Errorf("output = %q", out)
	}
}

func TestCommands(t *testing.T) {
	out, _ := session(t, "b is 2\na is \"x\"\n:vars\ngyatt nerd\n:libs\n:reset\n:vars\n:bogus\n:quit\nyap(\"unreachable\")\n")

	for _, want := range []string{
		"a = x\nb = 2\n",
		"imported: nerd\n",
		"available: clock, nerd\n",
		"environment reset\n",
		"unknown command :bogus",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "unreachable") {
		t.Error("input after :quit was evaluated")
	}
	if strings.Count(out, "b = 2") != 1 {
		t.Error(":reset did not clear variables")
	}
}

func TestIsIncomplete(t *testing.T) {
	tests := []struct {
		src        string
		incomplete bool
	}{
		{"cookable f()", true},
		{"skibidi (x > 0) do", true},
		{"pookie A()", true},
		{"suspect (x) then yap(1) cap", true},
		{"x is", true},
		{"x is 1", false},
		{"slay", false},
		{"x is )", false},
	}

	for i, tt := range tests {
		_, err := tryParse(tt.src)
		if got := err != nil && isIncomplete(err); got != tt.incomplete {
			t.Errorf("tests[%d] - %q: incomplete=%v, want %v (%v)", i, tt.src, got, tt.incomplete, err)
		}
	}
}

// scriptedReader replays lines; a nil entry stands for Ctrl-C.
type scriptedReader struct {
	lines   []*string
	prompts []string
}

func (r *scriptedReader) Prompt(prompt string) (string, error) {
	r.prompts = append(r.prompts, prompt)
	if len(r.lines) == 0 {
		return "", io.EOF
	}
	line := r.lines[0]
	r.lines = r.lines[1:]
	if line == nil {
		return "", errAborted
	}
	return *line, nil
}

func lines(entries ...string) []*string {
	out := make([]*string, len(entries))
	for i := range entries {
		if entries[i] != "^C" {
			out[i] = &entries[i]
		}
	}
	return out
}

func TestAbortDiscardsPendingInput(t *testing.T) {
	tests := []struct {
		name    string
		lines   []*string
		src     string
		prompts []string
	}{
		{
			name:    "abandon unfinished function",
			lines:   lines("cookable f()", "  yap(1)", "^C", "x is 2"),
			src:     "x is 2",
			prompts: []string{promptMain, promptCont, promptCont, promptMain},
		},
		{
			name:    "abort on empty prompt",
			lines:   lines("^C", "x is 3"),
			src:     "x is 3",
			prompts: []string{promptMain, promptMain},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := &scriptedReader{lines: tt.lines}
			src, ok := readCompleteInput(in, promptMain, promptCont)
			if !ok || src != tt.src {
				t.Fatalf("readCompleteInput = %q, %v; want %q", src, ok, tt.src)
			}
			if strings.Join(in.prompts, "|") != strings.Join(tt.prompts, "|") {
				t.Errorf("prompts = %q, want %q", in.prompts, tt.prompts)
			}
		})
	}
}

func TestAbortedFunctionIsNotDefined(t *testing.T) {
	r, out, errOut := newTestREPL(t, "")
	r.Run(&scriptedReader{lines: lines("cookable f()", "^C", "x is 2", "x")})

	if !strings.Contains(out.String(), "2") {
		t.Errorf("expected x to echo, got %q", out.String())
	}
	if errOut.Len() != 0 {
		t.Errorf("unexpected errors: %q", errOut.String())
	}
	if r.itp.HasFunction("f") {
		t.Error("aborted definition should not be registered")
	}
}
