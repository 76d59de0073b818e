package sink

import (
	"os"

	"github.com/wippyai/binstream"
	"github.com/wippyai/binstream/errors"
)

// File adapts an *os.File into a positional Sink and Source. It keeps its
// own position and uses WriteAt/ReadAt, so it never disturbs the file's
// seek offset and tolerates other readers of the same handle.
type File struct {
	f   *os.File
	pos int64
}

var (
	_ binstream.Sink   = (*File)(nil)
	_ binstream.Source = (*File)(nil)
)

// NewFile wraps f. The caller retains ownership and must close f.
func NewFile(f *os.File) (*File, error) {
	if f == nil {
		return nil, errors.InvalidArgument(errors.PhaseWrite, "nil file")
	}
	return &File{f: f}, nil
}

// WriteBytes writes p at the current position.
func (s *File) WriteBytes(p []byte) (int, error) {
	n, err := s.f.WriteAt(p, s.pos)
	s.pos += int64(n)
	return n, err
}

// ReadBytes reads up to len(p) bytes from the current position.
func (s *File) ReadBytes(p []byte) (int, error) {
	n, err := s.f.ReadAt(p, s.pos)
	s.pos += int64(n)
	return n, err
}

// Position returns the current read/write position.
func (s *File) Position() int64 { return s.pos }

// SetPosition moves the read/write position.
func (s *File) SetPosition(pos int64) error {
	if pos < 0 {
		return errors.InvalidArgument(errors.PhaseWrite, "negative position")
	}
	s.pos = pos
	return nil
}
