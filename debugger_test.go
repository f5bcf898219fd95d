package deflog

import (
	"bytes"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
)

func TestDebuggerStdout(t *testing.T) {
	var buf bytes.Buffer

	output, noColor := color.Output, color.NoColor
	color.Output, color.NoColor = &buf, true
	defer func() { color.Output, color.NoColor = output, noColor }()

	d := DebuggerStdout()
	d.Error(errors.New("disk 100%d full"))
	d.Notice("dropped %d frames", 3)

	require.Equal(t, "disk 100%d full\ndropped 3 frames\n", buf.String())
}
