package prompter

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func scripted(input string) (*Prompter, *bytes.Buffer) {
	var out bytes.Buffer
	return New(strings.NewReader(input), &out), &out
}

func TestString(t *testing.T) {
	p, out := scripted("  ana  \n")
	got, err := p.String("Username: ")
	if err != nil {
		t.Fatalf("String: %v", err)
	}
	if got != "ana" {
		t.Errorf("got %q", got)
	}
	if out.String() != "Username: " {
		t.Errorf("label not written, got %q", out.String())
	}
}

func TestStringWithoutTrailingNewline(t *testing.T) {
	p, _ := scripted("last")
	got, err := p.String("> ")
	if err != nil || got != "last" {
		t.Errorf("got %q, %v", got, err)
	}
}

func TestStringEOF(t *testing.T) {
	p, _ := scripted("")
	if _, err := p.String("> "); !errors.Is(err, io.EOF) {
		t.Errorf("expected EOF, got %v", err)
	}
}

func TestStringDefault(t *testing.T) {
	p, out := scripted("\nnewest\n")
	got, err := p.StringDefault("Sort ", "oldest")
	if err != nil || got != "oldest" {
		t.Errorf("got %q, %v", got, err)
	}
	if !strings.Contains(out.String(), "[oldest]") {
		t.Errorf("default not shown, got %q", out.String())
	}
	got, _ = p.StringDefault("Sort ", "oldest")
	if got != "newest" {
		t.Errorf("got %q", got)
	}
}

func TestPasswordFromNonTerminal(t *testing.T) {
	p, _ := scripted("s3cret\n")
	got, err := p.Password("Password: ")
	if err != nil || got != "s3cret" {
		t.Errorf("got %q, %v", got, err)
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
	}
	for _, tt := range tests {
		p, _ := scripted(tt.input)
		got, err := p.Confirm("Delete?")
		if err != nil {
			t.Fatalf("Confirm(%q): %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("Confirm(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestSelect(t *testing.T) {
	p, out := scripted("2\n")
	idx, err := p.Select("Sort by", []string{"newest", "oldest", "most-liked"})
	if err != nil || idx != 1 {
		t.Errorf("got %d, %v", idx, err)
	}
	if !strings.Contains(out.String(), "3) most-liked") {
		t.Errorf("options not listed, got %q", out.String())
	}

	for _, bad := range []string{"0\n", "4\n", "x\n"} {
		p, _ := scripted(bad)
		if _, err := p.Select("Sort by", []string{"a", "b", "c"}); !errors.Is(err, ErrInvalidSelection) {
			t.Errorf("Select(%q): expected ErrInvalidSelection, got %v", bad, err)
		}
	}
}

func TestMultiline(t *testing.T) {
	p, _ := scripted("first line\n  indented\n\nignored\n")
	got, err := p.Multiline("Content", 10)
	if err != nil {
		t.Fatalf("Multiline: %v", err)
	}
	if got != "first line\n  indented" {
		t.Errorf("got %q", got)
	}

	p, _ = scripted("a\nb\nc\n")
	got, _ = p.Multiline("Content", 2)
	if got != "a\nb" {
		t.Errorf("maxLines not honored, got %q", got)
	}

	p, _ = scripted("until eof")
	got, _ = p.Multiline("Content", 0)
	if got != "until eof" {
		t.Errorf("got %q", got)
	}
}

func TestSplitList(t *testing.T) {
	got := SplitList(" go, rust ,, web ")
	want := []string{"go", "rust", "web"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("got %v", got)
	}
	if SplitList("  ") != nil {
		t.Errorf("expected nil for blank input")
	}
}
