package term

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRegularFileIsNotTerminal(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if IsTerminal(f.Fd()) {
		t.Error("regular file reported as terminal")
	}
}

func TestPalette(t *testing.T) {
	tests := []struct {
		enabled  bool
		expected string
	}{
		{true, "\x1b[31merror\x1b[0m"},
		{false, "error"},
	}

	for i, tt := range tests {
		if got := (Palette{Enabled: tt.enabled}).Red("error"); got != tt.expected {
			t.Errorf("tests[%d] - expected=%q, got=%q", i, tt.expected, got)
		}
	}
}
