package hotsauce

import (
	"bufio"
	"io"
)

// ByteSource is the minimal capability the engine needs from a byte
// iterator: produce the next byte, or report exhaustion. Implementations may
// block in NextByte (network reads, lazy generators); the engine treats the
// call as opaque. A source that returned ok == false must keep returning
// ok == false.
type ByteSource interface {
	NextByte() (b byte, ok bool)
}

// Bytes returns a ByteSource over a byte slice. The slice must not be
// mutated while the source is in use.
func Bytes(p []byte) ByteSource {
	return &sliceSource{p: p}
}

// String returns a ByteSource over the raw bytes of s.
func String(s string) ByteSource {
	return &stringSource{s: s}
}

type sliceSource struct {
	p []byte
	i int
}

func (s *sliceSource) NextByte() (byte, bool) {
	if s.i >= len(s.p) {
		return 0, false
	}
	b := s.p[s.i]
	s.i++
	return b, true
}

type stringSource struct {
	s string
	i int
}

func (s *stringSource) NextByte() (byte, bool) {
	if s.i >= len(s.s) {
		return 0, false
	}
	b := s.s[s.i]
	s.i++
	return b, true
}

// Reader adapts an io.Reader into a ByteSource. Reads are buffered
// internally.
//
// The ByteSource contract is "has a next byte or does not": a read error is
// reported as exhaustion, and the error itself is parked behind Err for
// callers that need to distinguish a failed stream from a finished one.
func Reader(r io.Reader) *ReaderSource {
	return &ReaderSource{br: bufio.NewReader(r)}
}

// ReaderSource is the ByteSource returned by Reader.
type ReaderSource struct {
	br  *bufio.Reader
	err error
}

// NextByte implements ByteSource.
func (r *ReaderSource) NextByte() (byte, bool) {
	if r.err != nil {
		return 0, false
	}
	b, err := r.br.ReadByte()
	if err != nil {
		r.err = err
		return 0, false
	}
	return b, true
}

// Err returns the error that terminated the stream, if any. io.EOF is
// reported as nil: running out of bytes is the normal end of a source.
func (r *ReaderSource) Err() error {
	if r.err == io.EOF {
		return nil
	}
	return r.err
}
