package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestRead(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.log")

	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		expectedAll = append(expectedAll, line)
	}

	if err := os.WriteFile(logPath, []byte(content.String()), 0644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{name: "read all (0)", maxLines: 0, expected: expectedAll},
		{name: "read all (negative)", maxLines: -1, expected: expectedAll},
		{name: "read partial (5)", maxLines: 5, expected: expectedAll[5:]},
		{name: "read exactly all (10)", maxLines: 10, expected: expectedAll},
		{name: "read more than exists (20)", maxLines: 20, expected: expectedAll},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "nope.log"), 10)
	if err != nil || got != nil {
		t.Fatalf("Read(missing) = %v, %v; want nil, nil", got, err)
	}
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		level   string
		message string
		attrs   []Attr
	}{
		{
			name:    "order placed",
			input:   `time=2026-03-04T05:06:07.000Z level=INFO msg="order placed" order_id=5f1c lines=2 total=$33.49`,
			level:   "INFO",
			message: "order placed",
			attrs:   []Attr{{"order_id", "5f1c"}, {"lines", "2"}, {"total", "$33.49"}},
		},
		{
			name:    "escaped quotes",
			input:   `time=2026-03-04T05:06:07Z level=WARN msg="save failed" key=cart error="open \"kv\": locked"`,
			level:   "WARN",
			message: "save failed",
			attrs:   []Attr{{"key", "cart"}, {"error", `open "kv": locked`}},
		},
		{
			name:    "plain text",
			input:   "panic: something broke",
			message: "panic: something broke",
		},
		{
			name:    "unterminated quote",
			input:   `level=INFO msg="oops`,
			message: `level=INFO msg="oops`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := ParseLine(tt.input)
			if e.Level != tt.level || e.Message != tt.message {
				t.Fatalf("ParseLine = level %q msg %q, want %q %q", e.Level, e.Message, tt.level, tt.message)
			}
			if !reflect.DeepEqual(e.Attrs, tt.attrs) {
				t.Fatalf("Attrs = %#v, want %#v", e.Attrs, tt.attrs)
			}
			if e.Raw != tt.input {
				t.Fatalf("Raw = %q", e.Raw)
			}
		})
	}
}

func TestParseLine_Time(t *testing.T) {
	e := ParseLine(`time=2026-03-04T05:06:07.250Z level=debug msg=hydrated`)
	want := time.Date(2026, 3, 4, 5, 6, 7, 250*int(time.Millisecond), time.UTC)
	if !e.Time.Equal(want) {
		t.Fatalf("Time = %v, want %v", e.Time, want)
	}
	if e.Level != "DEBUG" || e.Message != "hydrated" {
		t.Fatalf("entry = %+v", e)
	}
	if v, ok := e.Attr("missing"); ok || v != "" {
		t.Fatalf("Attr(missing) = %q, %v", v, ok)
	}
}

func TestTail_SkipsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storefront.log")
	body := "level=INFO msg=one\n\nlevel=INFO msg=two\nlevel=ERROR msg=three\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	entries, err := Tail(path, 3)
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}
	if len(entries) != 2 || entries[0].Message != "two" || entries[1].Level != "ERROR" {
		t.Fatalf("entries = %+v", entries)
	}
}
