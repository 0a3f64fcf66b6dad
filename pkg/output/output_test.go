package output

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/RicardoYam/Meet/pkg/config"
)

func capture(t *testing.T, format string) *bytes.Buffer {
	t.Helper()
	if err := config.Init(filepath.Join(t.TempDir(), "config.toml")); err != nil {
		t.Fatalf("config init: %v", err)
	}
	config.Set(config.KeyOutputFormat, format)

	var buf bytes.Buffer
	prev := Out
	Out = &buf
	t.Cleanup(func() { Out = prev })
	return &buf
}

func TestGetOutputFormat(t *testing.T) {
	capture(t, "table")
	if got := GetOutputFormat(); got != FormatTable {
		t.Errorf("expected table, got %v", got)
	}
	config.Set(config.KeyOutputFormat, "bogus")
	if got := GetOutputFormat(); got != FormatText {
		t.Errorf("unknown format should fall back to text, got %v", got)
	}
}

func TestValidateOutputFormat(t *testing.T) {
	tests := []struct {
		format  string
		isValid bool
	}{
		{"json", true},
		{"text", true},
		{"table", true},
		{"invalid", false},
	}

	for _, tt := range tests {
		result := ValidateOutputFormat(tt.format)
		if result != tt.isValid {
			t.Errorf("ValidateOutputFormat(%s): got %v, want %v", tt.format, result, tt.isValid)
		}
	}
}

func TestPrintListTable(t *testing.T) {
	buf := capture(t, "text")

	rows := [][]string{{"1", "Hello"}, {"2", "World"}}
	if err := PrintList("Posts", nil, []string{"ID", "TITLE"}, rows); err != nil {
		t.Fatalf("PrintList: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Posts:", "ID", "TITLE", "Hello", "World"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in %q", want, out)
		}
	}
}

func TestPrintListJSON(t *testing.T) {
	buf := capture(t, "json")

	items := []map[string]interface{}{{"id": 1, "title": "Hello"}}
	if err := PrintList("Posts", items, []string{"ID"}, [][]string{{"1"}}); err != nil {
		t.Fatalf("PrintList: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, `"title": "Hello"`) {
		t.Errorf("expected JSON item, got %q", out)
	}
	if strings.Contains(out, "Posts:") {
		t.Errorf("JSON output should not carry a text title, got %q", out)
	}
}

func TestPrintRecordSortedKeys(t *testing.T) {
	buf := capture(t, "text")

	PrintRecord("Profile", map[string]interface{}{"username": "ana", "bio": "hi", "posts": 3})

	out := buf.String()
	bio, posts, user := strings.Index(out, "bio"), strings.Index(out, "posts"), strings.Index(out, "username")
	if bio < 0 || posts < 0 || user < 0 || !(bio < posts && posts < user) {
		t.Errorf("expected sorted keys, got %q", out)
	}
}

func TestPrintMessages(t *testing.T) {
	buf := capture(t, "text")

	PrintSuccess("Posted comment %d", 7)
	PrintError("boom")
	PrintWarning("careful")
	PrintInfo("fyi")

	out := buf.String()
	for _, want := range []string{"Posted comment 7", "Error: boom", "Warning: careful", "fyi"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in %q", want, out)
		}
	}
}

func TestPlainText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"<p>Hello <b>world</b></p>", "Hello world"},
		{"<p>one</p><p>two</p>", "one\ntwo"},
		{"a<br>b", "a\nb"},
		{"<script>alert(1)</script>safe", "safe"},
		{"Tom &amp; Jerry", "Tom & Jerry"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := PlainText(tt.in); got != tt.want {
			t.Errorf("PlainText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExcerpt(t *testing.T) {
	if got := Excerpt("<p>short</p>", 20); got != "short" {
		t.Errorf("got %q", got)
	}
	if got := Excerpt("<p>one</p><p>two three four</p>", 9); got != "one two…" {
		t.Errorf("got %q", got)
	}
}

func TestAgo(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	if got := Ago(now.Add(-3*time.Hour), now); got != "3 hours ago" {
		t.Errorf("got %q", got)
	}
	if got := Ago(time.Time{}, now); got != "-" {
		t.Errorf("got %q", got)
	}
}
