package sink

import (
	"github.com/wippyai/binstream"
	"github.com/wippyai/binstream/errors"
)

// Discard is a Sink that throws bytes away while tracking position. It
// lets tests drive multi-gigabyte writes without allocating the output.
type Discard struct {
	pos int64
}

var _ binstream.Sink = (*Discard)(nil)

// WriteBytes accepts and discards p.
func (d *Discard) WriteBytes(p []byte) (int, error) {
	d.pos += int64(len(p))
	return len(p), nil
}

// Position returns the count of bytes accepted so far.
func (d *Discard) Position() int64 { return d.pos }

// SetPosition moves the position without touching any data.
func (d *Discard) SetPosition(pos int64) error {
	if pos < 0 {
		return errors.InvalidArgument(errors.PhaseWrite, "negative position")
	}
	d.pos = pos
	return nil
}
