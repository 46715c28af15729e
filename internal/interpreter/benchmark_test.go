package interpreter

import (
	"io"
	"strings"
	"testing"

	"github.com/cookable-lang/cookable/internal/lexer"
	"github.com/cookable-lang/cookable/internal/parser"
)

const benchmarkProgram = `
pookie Acc()
  cookable __edge__()
    self.total is 0
  slay
  cookable add()
    self.total is self.total + step
  slay
slay

cookable mew()
  acc is new Acc()
  step is 0
  skibidi (step < 200) do
    step is step + 1
    suspect (step / 2 * 2 == step) then
      ghost
    slay
    acc.add()
  slay
  blud acc.total
slay
`

func BenchmarkLexer(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := lexer.Tokenize(benchmarkProgram); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParser(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := parser.ParseSource(benchmarkProgram, "bench.cook"); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkInterpreter(b *testing.B) {
	program, err := parser.ParseSource(benchmarkProgram, "bench.cook")
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		itp := New(WithStdout(io.Discard), WithStdin(strings.NewReader("")))
		if err := itp.Interpret(program); err != nil {
			b.Fatal(err)
		}
		v, err := itp.CallFunction("mew")
		if err != nil {
			b.Fatal(err)
		}
		if v != Integer(10000) {
			b.Fatalf("mew() = %v, want 10000", v)
		}
	}
}
