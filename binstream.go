package binstream

// Sink is the output side of a binary stream. WriteBytes appends at the
// current position and advances it by the number of bytes written. Errors
// from a Sink propagate to callers unchanged.
type Sink interface {
	WriteBytes(p []byte) (int, error)
	Position() int64
	SetPosition(pos int64) error
}

// Source is the input side of a binary stream. ReadBytes fills p from the
// current position and advances it by the number of bytes read.
type Source interface {
	ReadBytes(p []byte) (int, error)
	Position() int64
	SetPosition(pos int64) error
}
