package clipboard

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// clipboard commands probed in order; the first one on PATH wins.
var commandCandidates = [][]string{
	{"wl-copy"},
	{"xclip", "-selection", "clipboard", "-in"},
	{"xsel", "--clipboard", "--input"},
	{"pbcopy"},
}

// CommandWriter pipes text into an external clipboard command. This is the
// primary path: it owns the real system clipboard when a command exists.
type CommandWriter struct {
	path string
	args []string
}

// NewCommandWriter probes for a clipboard command. The returned writer
// reports unavailable when none was found.
func NewCommandWriter() *CommandWriter {
	for _, candidate := range commandCandidates {
		if path, err := exec.LookPath(candidate[0]); err == nil {
			return &CommandWriter{path: path, args: candidate[1:]}
		}
	}
	return &CommandWriter{}
}

func (w *CommandWriter) Available() bool {
	return w.path != ""
}

func (w *CommandWriter) WriteText(ctx context.Context, text string) error {
	if w.path == "" {
		return fmt.Errorf("no clipboard command on PATH")
	}

	cmd := exec.CommandContext(ctx, w.path, w.args...)
	cmd.Stdin = strings.NewReader(text)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w (%s)", w.path, err, strings.TrimSpace(string(out)))
	}
	return nil
}
