package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer provides thread-safe access to a bytes.Buffer.
type syncBuffer struct {
	buf bytes.Buffer
	mu  sync.Mutex
}

func (s *syncBuffer) Write(p []byte) (n int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

func TestNewInterruptHandler(t *testing.T) {
	tests := []struct {
		writer io.Writer
		name   string
	}{
		{name: "with custom writer", writer: &bytes.Buffer{}},
		{name: "with nil writer", writer: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewInterruptHandler(tt.writer)
			assert.NotNil(t, handler.writer)
			assert.False(t, handler.WasInterrupted())
		})
	}
}

func TestInterruptHandler_Signal(t *testing.T) {
	output := &syncBuffer{}
	handler := NewInterruptHandler(output)

	sigChan := make(chan os.Signal, 1)
	stopped := make(chan struct{})
	ctx := handler.watch(context.Background(), sigChan, func() { close(stopped) })

	select {
	case <-ctx.Done():
		t.Fatal("Context should not be canceled initially")
	default:
	}

	sigChan <- os.Interrupt

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("Context was not canceled after interrupt")
	}
	<-stopped

	assert.True(t, handler.WasInterrupted())
	assert.Contains(t, output.String(), "Review interrupted!")
	assert.Contains(t, output.String(), "already saved")
}

func TestInterruptHandler_ParentCancel(t *testing.T) {
	output := &syncBuffer{}
	handler := NewInterruptHandler(output)

	parent, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	ctx := handler.watch(parent, make(chan os.Signal), func() { close(stopped) })

	cancel()
	<-ctx.Done()
	<-stopped

	require.ErrorIs(t, ctx.Err(), context.Canceled)
	assert.False(t, handler.WasInterrupted())
	assert.Empty(t, output.String())
}
