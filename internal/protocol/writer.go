package protocol

import (
	"bufio"
	"io"
)

// Writer serializes server responses with the protocol terminator.
type Writer struct {
	w *bufio.Writer
}

// NewWriter wraps the server side of a client stream.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// Send writes one response frame and flushes it.
func (w *Writer) Send(resp Response) error {
	if _, err := w.w.WriteString(string(resp)); err != nil {
		return err
	}
	if _, err := w.w.WriteString(Terminator); err != nil {
		return err
	}
	return w.w.Flush()
}
