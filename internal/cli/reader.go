package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

// ErrInputCanceled is returned when a read is abandoned because its context ended.
var ErrInputCanceled = errors.New("input canceled")

type line struct {
	err  error
	text string
}

// LineReader reads terminal input line by line without holding callers past
// their context. One goroutine owns the underlying reader, so a line typed
// after a canceled read is delivered to the next ReadLine.
type LineReader struct {
	src   io.Reader
	lines chan line
	start sync.Once
}

// NewLineReader wraps src. Nothing is read until the first ReadLine.
func NewLineReader(src io.Reader) *LineReader {
	return &LineReader{src: src, lines: make(chan line)}
}

func (r *LineReader) scan() {
	defer close(r.lines)

	scanner := bufio.NewScanner(r.src)
	for scanner.Scan() {
		r.lines <- line{text: scanner.Text()}
	}
	if err := scanner.Err(); err != nil {
		r.lines <- line{err: err}
	}
}

// ReadLine returns the next line with surrounding whitespace trimmed, or
// io.EOF once input is exhausted.
func (r *LineReader) ReadLine(ctx context.Context) (string, error) {
	if ctx.Err() != nil {
		return "", ErrInputCanceled
	}
	r.start.Do(func() { go r.scan() })

	select {
	case <-ctx.Done():
		return "", ErrInputCanceled
	case l, ok := <-r.lines:
		if !ok {
			return "", io.EOF
		}
		if l.err != nil {
			return "", fmt.Errorf("failed to read input: %w", l.err)
		}
		return strings.TrimSpace(l.text), nil
	}
}
