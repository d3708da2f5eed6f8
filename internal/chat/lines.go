package chat

import (
	"bufio"
	"io"
)

// LineReader yields lines from an input source lazily until EOF. It exists
// so the conversation loop iterates over "the next line, if any" without
// knowing whether the source is a terminal, a pipe, or a test buffer.
type LineReader struct {
	scanner *bufio.Scanner
}

func NewLineReader(r io.Reader) *LineReader {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &LineReader{scanner: s}
}

// Next returns the next line without its terminator, and false once the
// source is exhausted.
func (l *LineReader) Next() (string, bool) {
	if !l.scanner.Scan() {
		return "", false
	}
	return l.scanner.Text(), true
}

// Err reports a read failure other than EOF.
func (l *LineReader) Err() error {
	return l.scanner.Err()
}
