package sink

import (
	"bytes"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/wippyai/binstream/errors"
)

func TestBufferWriteRead(t *testing.T) {
	b := NewBuffer(8)

	n, err := b.WriteBytes([]byte("hello"))
	if err != nil || n != 5 {
		t.Fatalf("WriteBytes = (%d, %v), want (5, nil)", n, err)
	}
	if b.Position() != 5 {
		t.Errorf("Position = %d, want 5", b.Position())
	}
	if b.Len() != 5 {
		t.Errorf("Len = %d, want 5", b.Len())
	}

	if err := b.SetPosition(0); err != nil {
		t.Fatalf("SetPosition failed: %v", err)
	}
	p := make([]byte, 3)
	n, err = b.ReadBytes(p)
	if err != nil || n != 3 {
		t.Fatalf("ReadBytes = (%d, %v), want (3, nil)", n, err)
	}
	if string(p) != "hel" {
		t.Errorf("read %q, want %q", p, "hel")
	}
	if b.Position() != 3 {
		t.Errorf("Position = %d, want 3", b.Position())
	}
}

func TestBufferReadPastEnd(t *testing.T) {
	b := NewBuffer(0)
	b.WriteBytes([]byte("ab"))
	b.SetPosition(2)
	if _, err := b.ReadBytes(make([]byte, 1)); err != io.EOF {
		t.Errorf("error = %v, want io.EOF", err)
	}
}

func TestBufferOverwrite(t *testing.T) {
	b := NewBuffer(0)
	b.WriteBytes([]byte("abcdef"))
	b.SetPosition(2)
	b.WriteBytes([]byte("XY"))
	if !bytes.Equal(b.Bytes(), []byte("abXYef")) {
		t.Errorf("bytes = %q, want %q", b.Bytes(), "abXYef")
	}
	if b.Len() != 6 {
		t.Errorf("Len = %d, want 6", b.Len())
	}
}

func TestBufferGapZeroFill(t *testing.T) {
	b := NewBuffer(0)
	b.WriteBytes([]byte("ab"))
	b.SetPosition(5)
	b.WriteBytes([]byte("z"))
	want := []byte{'a', 'b', 0, 0, 0, 'z'}
	if !bytes.Equal(b.Bytes(), want) {
		t.Errorf("bytes = % x, want % x", b.Bytes(), want)
	}
}

func TestBufferGapZeroFillAfterReset(t *testing.T) {
	// The gap must zero-fill even when the write reuses capacity that held
	// data before a Reset.
	b := NewBuffer(0)
	b.WriteBytes([]byte("abcdef"))
	b.Reset()
	b.SetPosition(3)
	b.WriteBytes([]byte("z"))
	want := []byte{0, 0, 0, 'z'}
	if !bytes.Equal(b.Bytes(), want) {
		t.Errorf("bytes = % x, want % x", b.Bytes(), want)
	}
}

func TestBufferNegativePosition(t *testing.T) {
	b := NewBuffer(0)
	err := b.SetPosition(-1)
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Kind != errors.KindInvalidArgument {
		t.Errorf("error = %v, want invalid_argument", err)
	}
}

func TestBufferReset(t *testing.T) {
	b := NewBuffer(0)
	b.WriteBytes([]byte("data"))
	b.Reset()
	if b.Len() != 0 || b.Position() != 0 {
		t.Errorf("after Reset: Len=%d Position=%d, want 0 0", b.Len(), b.Position())
	}
}

func TestBufferGrowth(t *testing.T) {
	b := NewBuffer(2)
	payload := bytes.Repeat([]byte("x"), 10000)
	if _, err := b.WriteBytes(payload); err != nil {
		t.Fatalf("WriteBytes failed: %v", err)
	}
	if !bytes.Equal(b.Bytes(), payload) {
		t.Errorf("contents differ after growth")
	}
}

func TestDiscard(t *testing.T) {
	var d Discard
	n, err := d.WriteBytes(make([]byte, 100))
	if err != nil || n != 100 {
		t.Fatalf("WriteBytes = (%d, %v), want (100, nil)", n, err)
	}
	if d.Position() != 100 {
		t.Errorf("Position = %d, want 100", d.Position())
	}
	if err := d.SetPosition(0); err != nil {
		t.Fatalf("SetPosition failed: %v", err)
	}
	if err := d.SetPosition(-1); err == nil {
		t.Error("SetPosition(-1) should fail")
	}
}

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.bin")
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer f.Close()

	s, err := NewFile(f)
	if err != nil {
		t.Fatalf("NewFile failed: %v", err)
	}

	if _, err := s.WriteBytes([]byte("hello world")); err != nil {
		t.Fatalf("WriteBytes failed: %v", err)
	}
	if s.Position() != 11 {
		t.Errorf("Position = %d, want 11", s.Position())
	}

	// Overwrite in place
	if err := s.SetPosition(6); err != nil {
		t.Fatalf("SetPosition failed: %v", err)
	}
	if _, err := s.WriteBytes([]byte("earth")); err != nil {
		t.Fatalf("WriteBytes failed: %v", err)
	}

	if err := s.SetPosition(0); err != nil {
		t.Fatalf("SetPosition failed: %v", err)
	}
	p := make([]byte, 11)
	if _, err := s.ReadBytes(p); err != nil && err != io.EOF {
		t.Fatalf("ReadBytes failed: %v", err)
	}
	if string(p) != "hello earth" {
		t.Errorf("read %q, want %q", p, "hello earth")
	}
}

func TestFileNil(t *testing.T) {
	_, err := NewFile(nil)
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Kind != errors.KindInvalidArgument {
		t.Errorf("error = %v, want invalid_argument", err)
	}
}
