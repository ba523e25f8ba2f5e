package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestConfigError(t *testing.T) {
	err := &ConfigError{
		Field:   "audit.backend",
		Message: "unsupported backend",
	}

	expected := "config error in audit.backend: unsupported backend"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}

	bare := NewConfigError("", "file not found")
	if got := bare.Error(); got != "config error: file not found" {
		t.Errorf("Error() = %q, want %q", got, "config error: file not found")
	}
}

func TestCommandErrorUnwrap(t *testing.T) {
	underlying := errors.New("store unavailable")
	err := NewCommandError("audit list", underlying)

	expected := "command audit list failed: store unavailable"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
	if !errors.Is(err, underlying) {
		t.Error("errors.Is() should match the wrapped error")
	}
}

func TestTextFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(FormatText)
	if err := f.FormatTo(&buf, "hello"); err != nil {
		t.Fatalf("FormatTo() error = %v", err)
	}
	if buf.String() != "hello\n" {
		t.Errorf("output = %q, want %q", buf.String(), "hello\n")
	}
}

func TestJSONFormatter(t *testing.T) {
	f := NewFormatter(FormatJSON)
	out, err := f.Format(map[string]int{"count": 3})
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var decoded map[string]int
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded["count"] != 3 {
		t.Errorf("count = %d, want 3", decoded["count"])
	}
}

type testTable struct{}

func (testTable) Header() []string { return []string{"method", "outcome"} }
func (testTable) Rows() [][]string {
	return [][]string{
		{"Greet", "success"},
		{"Explode", "error"},
	}
}

func TestCSVFormatter(t *testing.T) {
	f := NewFormatter(FormatCSV)
	out, err := f.Format(testTable{})
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) != 3 {
		t.Fatalf("len(lines) = %d, want 3", len(lines))
	}
	if lines[0] != "method,outcome" {
		t.Errorf("header = %q, want %q", lines[0], "method,outcome")
	}
	if lines[2] != "Explode,error" {
		t.Errorf("last row = %q, want %q", lines[2], "Explode,error")
	}
}

func TestCSVFormatterRejectsNonTabular(t *testing.T) {
	f := &CSVFormatter{}
	if _, err := f.Format("scalar"); err == nil {
		t.Error("Format() should reject non-tabular data")
	}
}
