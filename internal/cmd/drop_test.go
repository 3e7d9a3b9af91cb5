package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dlisz/coldrop/internal/config"
)

const sampleCSV = "A,B,C\n1,2,3\n4,5,6\n"

// runApp executes the CLI with captured output and an isolated config path.
func runApp(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	restore := config.SetConfigPathFunc(func() (string, error) { return cfgPath, nil })
	t.Cleanup(func() { config.SetConfigPathFunc(restore) })

	var outBuf, errBuf bytes.Buffer
	app := NewApp()
	app.Stdout = &outBuf
	app.Stderr = &errBuf

	err = app.Execute(context.Background(), args)
	return outBuf.String(), errBuf.String(), err
}

// writeSample writes content to a fresh temp file and returns its path.
func writeSample(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "in.csv")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDrop_FirstColumn(t *testing.T) {
	src := writeSample(t, sampleCSV)
	dest := filepath.Join(t.TempDir(), "out.csv")

	stdout, _, err := runApp(t, "drop", src, dest)
	if err != nil {
		t.Fatalf("drop failed: %v", err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	want := "B,C\n2,3\n5,6\n"
	if string(data) != want {
		t.Errorf("output file = %q, want %q", data, want)
	}

	// The confirmation line names the literal destination path.
	if !strings.Contains(stdout, dest) {
		t.Errorf("confirmation %q does not name the destination", stdout)
	}
	if lines := strings.Count(strings.TrimRight(stdout, "\n"), "\n") + 1; lines != 1 {
		t.Errorf("expected a single confirmation line, got %d: %q", lines, stdout)
	}
}

func TestDrop_IndexAndCount(t *testing.T) {
	src := writeSample(t, "A,B,C,D\n1,2,3,4\n")
	dest := filepath.Join(t.TempDir(), "out.csv")

	if _, _, err := runApp(t, "drop", src, dest, "--index", "1", "--count", "2"); err != nil {
		t.Fatalf("drop failed: %v", err)
	}

	data, _ := os.ReadFile(dest)
	if string(data) != "A,D\n1,4\n" {
		t.Errorf("output file = %q, want %q", data, "A,D\n1,4\n")
	}
}

func TestDrop_Stream(t *testing.T) {
	src := writeSample(t, sampleCSV)
	dest := filepath.Join(t.TempDir(), "out.csv")

	stdout, _, err := runApp(t, "drop", src, dest, "--stream")
	if err != nil {
		t.Fatalf("drop --stream failed: %v", err)
	}

	data, _ := os.ReadFile(dest)
	if string(data) != "B,C\n2,3\n5,6\n" {
		t.Errorf("output file = %q", data)
	}
	if !strings.Contains(stdout, dest) {
		t.Errorf("confirmation %q does not name the destination", stdout)
	}
}

func TestDrop_JSONReport(t *testing.T) {
	src := writeSample(t, sampleCSV)
	dest := filepath.Join(t.TempDir(), "out.csv")

	stdout, _, err := runApp(t, "drop", src, dest, "-o", "json")
	if err != nil {
		t.Fatalf("drop failed: %v", err)
	}

	var report map[string]any
	if err := json.Unmarshal([]byte(stdout), &report); err != nil {
		t.Fatalf("stdout is not JSON: %v\n%s", err, stdout)
	}
	if report["dest"] != dest || report["rows"] != float64(2) {
		t.Errorf("report = %v", report)
	}
	if report["columns_before"] != float64(3) || report["columns_after"] != float64(2) {
		t.Errorf("column counts = %v", report)
	}
	dropped, _ := report["dropped"].([]any)
	if len(dropped) != 1 || dropped[0] != "A" {
		t.Errorf("dropped = %v, want [A]", report["dropped"])
	}
}

func TestDrop_ToStdout(t *testing.T) {
	src := writeSample(t, sampleCSV)

	stdout, stderr, err := runApp(t, "drop", src, "-")
	if err != nil {
		t.Fatalf("drop failed: %v", err)
	}
	if stdout != "B,C\n2,3\n5,6\n" {
		t.Errorf("stdout = %q, want clean table data", stdout)
	}
	// Confirmation moves to stderr so the data stream stays parseable.
	if !strings.Contains(stderr, "wrote 2 row(s)") {
		t.Errorf("stderr = %q, want confirmation", stderr)
	}
}

func TestDrop_Quiet(t *testing.T) {
	src := writeSample(t, sampleCSV)
	dest := filepath.Join(t.TempDir(), "out.csv")

	stdout, _, err := runApp(t, "drop", src, dest, "--quiet")
	if err != nil {
		t.Fatalf("drop failed: %v", err)
	}
	if stdout != "" {
		t.Errorf("stdout = %q, want empty with --quiet", stdout)
	}
}

func TestDrop_Delimiter(t *testing.T) {
	src := writeSample(t, "A;B;C\n1;2;3\n")
	dest := filepath.Join(t.TempDir(), "out.csv")

	if _, _, err := runApp(t, "drop", src, dest, "--delimiter", ";"); err != nil {
		t.Fatalf("drop failed: %v", err)
	}

	data, _ := os.ReadFile(dest)
	if string(data) != "B;C\n2;3\n" {
		t.Errorf("output file = %q", data)
	}
}

func TestDrop_MissingSource(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "absent.csv")
	dest := filepath.Join(dir, "out.csv")

	_, _, err := runApp(t, "drop", src, dest)
	if err == nil {
		t.Fatal("drop should fail for a missing source")
	}
	if got := ExitCode(err); got != ExitNotFound {
		t.Errorf("ExitCode() = %d, want %d", got, ExitNotFound)
	}
	// No destination file may be created on failure.
	if _, statErr := os.Stat(dest); !os.IsNotExist(statErr) {
		t.Error("destination file should not exist after a failed run")
	}
}

func TestDrop_SingleColumnRejected(t *testing.T) {
	src := writeSample(t, "A\n1\n4\n")
	dest := filepath.Join(t.TempDir(), "out.csv")

	_, stderr, err := runApp(t, "drop", src, dest)
	if err == nil {
		t.Fatal("drop should reject emptying the table")
	}
	if got := ExitCode(err); got != ExitUser {
		t.Errorf("ExitCode() = %d, want %d", got, ExitUser)
	}
	if !strings.Contains(stderr, "no columns") {
		t.Errorf("stderr = %q, want the rejection reason", stderr)
	}
	if _, statErr := os.Stat(dest); !os.IsNotExist(statErr) {
		t.Error("destination file should not exist after a rejected run")
	}
}

func TestDrop_MalformedInput(t *testing.T) {
	src := writeSample(t, "A,B\n1,2\n3\n")
	dest := filepath.Join(t.TempDir(), "out.csv")

	_, stderr, err := runApp(t, "drop", src, dest)
	if err == nil {
		t.Fatal("drop should fail on inconsistent field counts")
	}
	if got := ExitCode(err); got != ExitUser {
		t.Errorf("ExitCode() = %d, want %d", got, ExitUser)
	}
	if !strings.Contains(stderr, "parse error") {
		t.Errorf("stderr = %q, want a parse error", stderr)
	}
}

func TestDrop_InvalidFlags(t *testing.T) {
	src := writeSample(t, sampleCSV)
	dest := filepath.Join(t.TempDir(), "out.csv")

	tests := []struct {
		name string
		args []string
	}{
		{name: "negative index", args: []string{"drop", src, dest, "--index", "-1"}},
		{name: "zero count", args: []string{"drop", src, dest, "--count", "0"}},
		{name: "bad delimiter", args: []string{"drop", src, dest, "--delimiter", "abc"}},
		{name: "bad output format", args: []string{"drop", src, dest, "-o", "xml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := runApp(t, tt.args...); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestDrop_PositionalNotNameBased(t *testing.T) {
	// Applying the transform twice drops A then B: the operation is tied to
	// position, not to any particular column name.
	src := writeSample(t, sampleCSV)
	mid := filepath.Join(t.TempDir(), "mid.csv")
	dest := filepath.Join(t.TempDir(), "out.csv")

	if _, _, err := runApp(t, "drop", src, mid); err != nil {
		t.Fatal(err)
	}
	if _, _, err := runApp(t, "drop", mid, dest); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(dest)
	if string(data) != "C\n3\n6\n" {
		t.Errorf("double drop = %q, want %q", data, "C\n3\n6\n")
	}
}

func TestDrop_ConfigDefaultDelimiter(t *testing.T) {
	cfgDir := t.TempDir()
	cfgPath := filepath.Join(cfgDir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("delimiter: \";\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	restore := config.SetConfigPathFunc(func() (string, error) { return cfgPath, nil })
	t.Cleanup(func() { config.SetConfigPathFunc(restore) })

	src := filepath.Join(t.TempDir(), "in.csv")
	if err := os.WriteFile(src, []byte("A;B\n1;2\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	dest := filepath.Join(t.TempDir(), "out.csv")

	var outBuf, errBuf bytes.Buffer
	app := NewApp()
	app.Stdout = &outBuf
	app.Stderr = &errBuf
	if err := app.Execute(context.Background(), []string{"drop", src, dest}); err != nil {
		t.Fatalf("drop failed: %v", err)
	}

	data, _ := os.ReadFile(dest)
	if string(data) != "B\n2\n" {
		t.Errorf("output file = %q, want %q", data, "B\n2\n")
	}
}
