package protocol

import (
	"bufio"
	"fmt"
	"io"
)

// Terminator delimits every protocol message in both directions.
const Terminator = "\a\b"

// Framer reads terminator-delimited requests from the client stream one
// byte at a time, so a terminator straddling two reads is still found.
type Framer struct {
	r *bufio.Reader
}

// NewFramer wraps a client stream.
func NewFramer(r io.Reader) *Framer {
	return &Framer{r: bufio.NewReader(r)}
}

// Next reads one frame and returns its payload with the terminator
// stripped. limit is the maximum frame length including the terminator;
// reaching it without a complete terminator is a syntax error. A lone \a
// does not terminate a frame. Read failures, including deadline expiry
// and EOF, pass through untranslated.
func (f *Framer) Next(limit int) (string, error) {
	buf := make([]byte, 0, limit)
	for {
		b, err := f.r.ReadByte()
		if err != nil {
			return "", err
		}
		buf = append(buf, b)
		if len(buf) >= 2 && buf[len(buf)-2] == '\a' && buf[len(buf)-1] == '\b' {
			return string(buf[:len(buf)-2]), nil
		}
		if len(buf) >= limit {
			return "", fmt.Errorf("frame exceeded %d bytes without terminator: %w", limit, ErrSyntax)
		}
	}
}
