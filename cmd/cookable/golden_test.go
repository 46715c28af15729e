package main

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cookable-lang/cookable/internal/errors"
)

var update = flag.Bool("update", false, "rewrite golden files")

const examplesDir = "../../examples"

// TestGoldenExamples runs the bundled example scripts and compares their
// output with the .golden file next to each one.
func TestGoldenExamples(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
	}{
		{name: "hello"},
		{name: "counter"},
		{name: "greet", stdin: "Ana\n30\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			script := filepath.Join(examplesDir, tt.name+".cook")
			golden := filepath.Join(examplesDir, tt.name+".golden")

			code, stdout, stderr := runCommand([]string{script}, tt.stdin)
			if code != errors.ExitOK {
				t.Fatalf("exit code = %d, stderr %q", code, stderr)
			}

			if *update {
				if err := os.WriteFile(golden, []byte(stdout), 0644); err != nil {
					t.Fatal(err)
				}
				return
			}

			want, err := os.ReadFile(golden)
			if err != nil {
				t.Fatalf("failed to read golden file: %v", err)
			}
			if stdout != string(want) {
				t.Errorf("output mismatch\n got: %q\nwant: %q", stdout, string(want))
			}
		})
	}
}

func TestDiceExampleWithConfig(t *testing.T) {
	args := []string{"--config", filepath.Join(examplesDir, "cookable.yaml"), filepath.Join(examplesDir, "dice.cook")}

	code, first, stderr := runCommand(args, "")
	if code != errors.ExitOK {
		t.Fatalf("exit code = %d, stderr %q", code, stderr)
	}
	if !strings.HasPrefix(first, "rolled 3 dice, total ") {
		t.Errorf("output = %q", first)
	}

	_, second, _ := runCommand(args, "")
	if first != second {
		t.Errorf("seeded runs differ: %q vs %q", first, second)
	}
}
