package output

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

type report struct {
	Source string `json:"source"`
	Dest   string `json:"dest"`
	Rows   int    `json:"rows"`
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "", want: FormatText},
		{in: "text", want: FormatText},
		{in: "JSON", want: FormatJSON},
		{in: "ndjson", want: FormatNDJSON},
		{in: "jsonl", want: FormatNDJSON},
		{in: "table", want: FormatTable},
		{in: "yaml", want: FormatYAML},
		{in: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, FormatJSON)

	if err := p.Print(context.Background(), report{Source: "in.csv", Dest: "out.csv", Rows: 2}); err != nil {
		t.Fatalf("Print() error = %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if got["dest"] != "out.csv" || got["rows"] != float64(2) {
		t.Errorf("Print() = %v", got)
	}
}

func TestPrintNDJSON_SlicePerLine(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, FormatNDJSON)

	data := []report{{Dest: "a"}, {Dest: "b"}}
	if err := p.Print(context.Background(), data); err != nil {
		t.Fatalf("Print() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), buf.String())
	}
	for _, line := range lines {
		var v map[string]any
		if err := json.Unmarshal([]byte(line), &v); err != nil {
			t.Errorf("line %q is not JSON: %v", line, err)
		}
	}
}

func TestPrintYAML(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, FormatYAML)

	if err := p.Print(context.Background(), map[string]any{"rows": 3}); err != nil {
		t.Fatalf("Print() error = %v", err)
	}
	if !strings.Contains(buf.String(), "rows: 3") {
		t.Errorf("Print() = %q", buf.String())
	}
}

func TestPrintText(t *testing.T) {
	t.Run("map sorted key-value", func(t *testing.T) {
		var buf bytes.Buffer
		p := NewPrinter(&buf, FormatText)

		err := p.Print(context.Background(), map[string]any{"b": 2, "a": "one"})
		if err != nil {
			t.Fatalf("Print() error = %v", err)
		}
		want := "a: one\nb: 2\n"
		if buf.String() != want {
			t.Errorf("Print() = %q, want %q", buf.String(), want)
		}
	})

	t.Run("scalar", func(t *testing.T) {
		var buf bytes.Buffer
		p := NewPrinter(&buf, FormatText)
		if err := p.Print(context.Background(), "done"); err != nil {
			t.Fatalf("Print() error = %v", err)
		}
		if buf.String() != "done\n" {
			t.Errorf("Print() = %q", buf.String())
		}
	})

	t.Run("slice of maps renders as table", func(t *testing.T) {
		var buf bytes.Buffer
		p := NewPrinter(&buf, FormatText)

		data := []map[string]any{{"name": "A", "index": 0}, {"name": "B", "index": 1}}
		if err := p.Print(context.Background(), data); err != nil {
			t.Fatalf("Print() error = %v", err)
		}
		out := buf.String()
		if !strings.Contains(out, "index") || !strings.Contains(out, "name") {
			t.Errorf("missing headers: %q", out)
		}
		if !strings.Contains(out, "A") || !strings.Contains(out, "B") {
			t.Errorf("missing rows: %q", out)
		}
	})
}

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, FormatTable)

	tbl := Table{Headers: []string{"B", "C"}, Rows: [][]string{{"2", "3"}, {"5", "6"}}}
	if err := p.Print(context.Background(), tbl); err != nil {
		t.Fatalf("Print() error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3: %q", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "B") {
		t.Errorf("header line = %q", lines[0])
	}
}

func TestPrintTable_RejectsScalar(t *testing.T) {
	p := NewPrinter(&bytes.Buffer{}, FormatTable)
	if err := p.Print(context.Background(), 42); err == nil {
		t.Error("Print() should reject non-slice data for table format")
	}
}

func TestPrint_WithQuery(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, FormatJSON)

	ctx := WithQuery(context.Background(), ".rows")
	if err := p.Print(ctx, report{Dest: "out.csv", Rows: 7}); err != nil {
		t.Fatalf("Print() error = %v", err)
	}
	if strings.TrimSpace(buf.String()) != "7" {
		t.Errorf("Print() with query = %q, want 7", buf.String())
	}
}

func TestPrint_WithInvalidQuery(t *testing.T) {
	p := NewPrinter(&bytes.Buffer{}, FormatJSON)
	ctx := WithQuery(context.Background(), ".rows | ")
	if err := p.Print(ctx, report{}); err == nil {
		t.Error("Print() should fail on an invalid jq expression")
	}
}

func TestPrint_WithFields(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, FormatJSON)

	ctx := WithFields(context.Background(), "n=rows,dest")
	if err := p.Print(ctx, report{Dest: "out.csv", Rows: 7}); err != nil {
		t.Fatalf("Print() error = %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if got["n"] != float64(7) || got["dest"] != "out.csv" {
		t.Errorf("projection = %v", got)
	}
	if _, ok := got["source"]; ok {
		t.Error("projection should drop unselected fields")
	}
}

func TestValidateFields(t *testing.T) {
	if err := ValidateFields(""); err != nil {
		t.Errorf("ValidateFields(\"\") = %v", err)
	}
	if err := ValidateFields("a,b=c.d"); err != nil {
		t.Errorf("ValidateFields() = %v", err)
	}
	if err := ValidateFields("="); err == nil {
		t.Error("ValidateFields(\"=\") should fail")
	}
}
