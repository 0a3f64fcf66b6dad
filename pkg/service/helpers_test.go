package service

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/RicardoYam/Meet/internal/blogtest"
	"github.com/RicardoYam/Meet/pkg/config"
	"github.com/RicardoYam/Meet/pkg/output"
	"github.com/RicardoYam/Meet/pkg/prompter"
	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

// setup isolates config and credentials in a temp dir, captures output and starts a fake backend
func setup(t *testing.T) (*blogtest.Server, *bytes.Buffer) {
	t.Helper()
	require.NoError(t, config.Init(filepath.Join(t.TempDir(), "config.toml")))

	var buf bytes.Buffer
	prevOut, prevNow, prevColor := output.Out, now, color.NoColor
	output.Out = &buf
	now = func() time.Time { return fixedNow }
	color.NoColor = true
	t.Cleanup(func() {
		output.Out = prevOut
		now = prevNow
		color.NoColor = prevColor
	})

	return blogtest.Start(t), &buf
}

func answers(lines ...string) *prompter.Prompter {
	return prompter.New(strings.NewReader(strings.Join(lines, "\n")+"\n"), &bytes.Buffer{})
}

func ptr(id int64) *int64 { return &id }

type fakeViewport struct {
	offset int
	sets   []int
}

func (v *fakeViewport) Offset() int { return v.offset }

func (v *fakeViewport) SetOffset(o int) {
	v.offset = o
	v.sets = append(v.sets, o)
}
