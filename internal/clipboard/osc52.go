package clipboard

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
)

// OSC52Writer asks the terminal emulator itself to set the clipboard via
// the OSC 52 escape sequence. It needs no external command, only a
// terminal that honors the sequence, which makes it the fallback path.
type OSC52Writer struct {
	out io.Writer
}

func NewOSC52Writer(out io.Writer) *OSC52Writer {
	return &OSC52Writer{out: out}
}

func (w *OSC52Writer) Available() bool {
	return w.out != nil
}

func (w *OSC52Writer) WriteText(_ context.Context, text string) error {
	if w.out == nil {
		return fmt.Errorf("no terminal writer")
	}
	encoded := base64.StdEncoding.EncodeToString([]byte(text))
	if _, err := fmt.Fprintf(w.out, "\x1b]52;c;%s\x07", encoded); err != nil {
		return fmt.Errorf("write osc52 sequence: %w", err)
	}
	return nil
}
