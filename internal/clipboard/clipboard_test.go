package clipboard

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockWriter struct {
	mu        sync.Mutex
	available bool
	err       error
	written   []string
	calls     int
}

func (m *mockWriter) Available() bool {
	return m.available
}

func (m *mockWriter) WriteText(_ context.Context, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return m.err
	}
	m.written = append(m.written, text)
	return nil
}

func TestBridge_PrimarySucceeds(t *testing.T) {
	primary := &mockWriter{available: true}
	fallback := &mockWriter{available: true}
	b := NewBridge(primary, fallback)

	require.NoError(t, b.Copy(context.Background(), "order text"))
	assert.Equal(t, []string{"order text"}, primary.written)
	assert.Zero(t, fallback.calls)
}

func TestBridge_FallbackEngagesOnPrimaryFailure(t *testing.T) {
	primary := &mockWriter{available: true, err: fmt.Errorf("xclip exploded")}
	fallback := &mockWriter{available: true}
	b := NewBridge(primary, fallback)

	require.NoError(t, b.Copy(context.Background(), "order text"))
	assert.Equal(t, []string{"order text"}, fallback.written)
}

func TestBridge_UnavailablePrimarySkipped(t *testing.T) {
	primary := &mockWriter{available: false}
	fallback := &mockWriter{available: true}
	b := NewBridge(primary, fallback)

	require.NoError(t, b.Copy(context.Background(), "order text"))
	assert.Zero(t, primary.calls)
	assert.Equal(t, 1, fallback.calls)
}

func TestBridge_BothPathsFail(t *testing.T) {
	primary := &mockWriter{available: true, err: fmt.Errorf("primary down")}
	fallback := &mockWriter{available: true, err: fmt.Errorf("fallback down")}
	b := NewBridge(primary, fallback)

	err := b.Copy(context.Background(), "order text")
	var cerr *Error
	require.ErrorAs(t, err, &cerr)
}

func TestBridge_NoPathAvailable(t *testing.T) {
	b := NewBridge(&mockWriter{}, &mockWriter{})
	err := b.Copy(context.Background(), "order text")
	var cerr *Error
	require.ErrorAs(t, err, &cerr)
}

func TestBridge_BreakerStopsRetryingBrokenPrimary(t *testing.T) {
	primary := &mockWriter{available: true, err: fmt.Errorf("primary down")}
	fallback := &mockWriter{available: true}
	b := NewBridge(primary, fallback)

	for i := 0; i < 5; i++ {
		require.NoError(t, b.Copy(context.Background(), "order text"))
	}

	// Three consecutive failures trip the breaker; later copies go straight
	// to the fallback without invoking the primary again.
	assert.Equal(t, 3, primary.calls)
	assert.Equal(t, 5, len(fallback.written))
}

func TestOSC52Writer_EncodesPayload(t *testing.T) {
	var buf bytes.Buffer
	w := NewOSC52Writer(&buf)
	require.True(t, w.Available())

	require.NoError(t, w.WriteText(context.Background(), "order text"))
	expected := "\x1b]52;c;" + base64.StdEncoding.EncodeToString([]byte("order text")) + "\x07"
	assert.Equal(t, expected, buf.String())
}

func TestCommandWriter_UnavailableWithoutCommand(t *testing.T) {
	w := &CommandWriter{}
	assert.False(t, w.Available())
	assert.Error(t, w.WriteText(context.Background(), "x"))
}
