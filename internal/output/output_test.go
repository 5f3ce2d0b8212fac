package output

import (
	"bytes"
	"strings"
	"testing"
)

type item struct {
	Name  string `json:"name" yaml:"name"`
	Score int    `json:"score" yaml:"score"`
}

func TestNewWriter_UnsupportedFormat(t *testing.T) {
	if _, err := NewWriter(&bytes.Buffer{}, Format("xml")); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestJSONWriter_SingleItemIsBareObject(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, FormatJSON, WithCompact())
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if err := w.Write(item{Name: "a", Score: 1}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	got := strings.TrimSpace(buf.String())
	if got != `{"name":"a","score":1}` {
		t.Errorf("output = %s, want bare object", got)
	}
}

func TestJSONWriter_MultipleItemsAreArray(t *testing.T) {
	var buf bytes.Buffer
	w, _ := NewWriter(&buf, FormatJSON, WithCompact())
	w.Write(item{Name: "a"})
	w.Write(item{Name: "b"})
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	got := strings.TrimSpace(buf.String())
	if !strings.HasPrefix(got, "[") || !strings.HasSuffix(got, "]") {
		t.Errorf("output = %s, want array", got)
	}
}

func TestJSONWriter_PrettyIndent(t *testing.T) {
	var buf bytes.Buffer
	w, _ := NewWriter(&buf, FormatJSON, WithIndent("    "))
	w.Write(item{Name: "a", Score: 1})
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if !strings.Contains(buf.String(), "\n    \"name\"") {
		t.Errorf("output not indented as configured:\n%s", buf.String())
	}
}

func TestJSONLWriter_OneLinePerItem(t *testing.T) {
	var buf bytes.Buffer
	w, _ := NewWriter(&buf, FormatJSONL)
	w.Write(item{Name: "a", Score: 1})
	w.Write(item{Name: "b", Score: 2})
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0] != `{"name":"a","score":1}` {
		t.Errorf("line 0 = %s", lines[0])
	}
}

func TestYAMLWriter(t *testing.T) {
	var buf bytes.Buffer
	w, _ := NewWriter(&buf, FormatYAML)
	w.Write(item{Name: "a", Score: 1})
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "name: a") || !strings.Contains(out, "score: 1") {
		t.Errorf("yaml output:\n%s", out)
	}
}
