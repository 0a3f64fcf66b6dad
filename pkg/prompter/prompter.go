package prompter

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrInvalidSelection is returned when a menu answer is out of range
var ErrInvalidSelection = errors.New("invalid selection")

// Prompter reads answers from in and writes labels to out
type Prompter struct {
	in       *bufio.Reader
	out      io.Writer
	password func() ([]byte, error)
}

// New returns a prompter over arbitrary streams. Passwords are read as ordinary lines.
func New(in io.Reader, out io.Writer) *Prompter {
	p := &Prompter{in: bufio.NewReader(in), out: out}
	p.password = func() ([]byte, error) {
		line, err := p.readLine()
		return []byte(line), err
	}
	return p
}

var std *Prompter

// Default returns the prompter bound to the terminal
func Default() *Prompter {
	if std == nil {
		std = New(os.Stdin, os.Stdout)
		fd := int(os.Stdin.Fd())
		if term.IsTerminal(fd) {
			std.password = func() ([]byte, error) { return term.ReadPassword(fd) }
		}
	}
	return std
}

func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// String prompts for a single line
func (p *Prompter) String(label string) (string, error) {
	fmt.Fprint(p.out, label)
	line, err := p.readLine()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// StringDefault prompts for a line, returning def when the answer is empty
func (p *Prompter) StringDefault(label, def string) (string, error) {
	if def != "" {
		label = fmt.Sprintf("%s[%s] ", label, def)
	}
	s, err := p.String(label)
	if err != nil || s != "" {
		return s, err
	}
	return def, nil
}

// Password prompts for a password without echo when attached to a terminal
func (p *Prompter) Password(label string) (string, error) {
	fmt.Fprint(p.out, label)
	b, err := p.password()
	if err != nil {
		return "", err
	}
	fmt.Fprintln(p.out)
	return string(b), nil
}

// Confirm prompts for yes/no confirmation
func (p *Prompter) Confirm(label string) (bool, error) {
	s, err := p.String(label + " (y/n) ")
	if err != nil {
		return false, err
	}
	s = strings.ToLower(s)
	return s == "y" || s == "yes", nil
}

// Select prompts for one of options and returns its index
func (p *Prompter) Select(label string, options []string) (int, error) {
	fmt.Fprintln(p.out, label)
	for i, opt := range options {
		fmt.Fprintf(p.out, "%d) %s\n", i+1, opt)
	}

	s, err := p.String("Select option: ")
	if err != nil {
		return -1, err
	}

	var selection int
	if _, err := fmt.Sscanf(s, "%d", &selection); err != nil {
		return -1, ErrInvalidSelection
	}
	if selection < 1 || selection > len(options) {
		return -1, ErrInvalidSelection
	}
	return selection - 1, nil
}

// Multiline reads lines until an empty line, EOF or maxLines
func (p *Prompter) Multiline(label string, maxLines int) (string, error) {
	fmt.Fprintf(p.out, "%s (finish with an empty line):\n", label)

	var lines []string
	for i := 0; maxLines <= 0 || i < maxLines; i++ {
		line, err := p.readLine()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(line) == "" {
			break
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n"), nil
}

// List reads a comma separated line into trimmed, non-empty values
func (p *Prompter) List(label string) ([]string, error) {
	s, err := p.String(label)
	if err != nil {
		return nil, err
	}
	return SplitList(s), nil
}

// SplitList splits a comma separated value
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// PromptString prompts user for a string input
func PromptString(label string) (string, error) {
	return Default().String(label)
}

// PromptPassword prompts user for a password (hidden input)
func PromptPassword(label string) (string, error) {
	return Default().Password(label)
}

// PromptConfirm prompts user for yes/no confirmation
func PromptConfirm(label string) (bool, error) {
	return Default().Confirm(label)
}

// Interactive reports whether stdin is a terminal someone can answer prompts on
func Interactive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
