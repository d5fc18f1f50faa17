package stream

import (
	"bytes"
	"io"
	"testing"

	"os8util/device"
	"os8util/directory"
	"os8util/engine"
	"os8util/sixbit"
)

// memDevice is a fixed-size in-memory io.ReadWriteSeeker standing in for a
// host image file, sized to exactly hold newTestImage's geometry.
type memDevice struct {
	buf []byte
	pos int64
}

func newMemDevice(totalBlocks int) *memDevice {
	return &memDevice{buf: make([]byte, totalBlocks*hostBytesPerBlock)}
}

func (m *memDevice) Read(p []byte) (int, error) {
	if m.pos >= int64(len(m.buf)) {
		return 0, io.EOF
	}
	n := copy(p, m.buf[m.pos:])
	m.pos += int64(n)
	return n, nil
}

func (m *memDevice) Write(p []byte) (int, error) {
	n := copy(m.buf[m.pos:], p)
	m.pos += int64(n)
	return n, nil
}

func (m *memDevice) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		m.pos = offset
	case io.SeekCurrent:
		m.pos += offset
	case io.SeekEnd:
		m.pos = int64(len(m.buf)) + offset
	}
	return m.pos, nil
}

func newTestImage(t *testing.T) (*device.Device, *directory.Directory) {
	t.Helper()
	g := device.Geometry{
		Name: "test", TotalBlocks: 20, FirstDirBlock: 1, SegmentCount: 6,
		FirstDataBlock: 7, Packing: 0, // TwoBytePerWord
	}
	dev := device.New(newMemDevice(g.TotalBlocks), g)
	d := directory.New()
	engine.Create(d, g)
	return dev, d
}

func TestCopyToImageAndFromImageRoundTrip(t *testing.T) {
	dev, d := newTestImage(t)
	name, _ := sixbit.Encode("FOO.BIN")

	data := bytes.Repeat([]byte{0xAB, 0xCD}, 300) // spans more than one 512-byte block
	entry, err := CopyToImage(dev, d, data, name)
	if err != nil {
		t.Fatalf("CopyToImage: %v", err)
	}

	got, err := CopyFromImage(dev, entry)
	if err != nil {
		t.Fatalf("CopyFromImage: %v", err)
	}
	if !bytes.HasPrefix(got, data) {
		t.Errorf("round trip prefix mismatch: got %d bytes, want to start with the original %d bytes", len(got), len(data))
	}
}

func TestCopyToImageReplacesExistingFile(t *testing.T) {
	dev, d := newTestImage(t)
	name, _ := sixbit.Encode("FOO.BIN")

	if _, err := CopyToImage(dev, d, []byte("first"), name); err != nil {
		t.Fatalf("first CopyToImage: %v", err)
	}
	entry, err := CopyToImage(dev, d, []byte("second version"), name)
	if err != nil {
		t.Fatalf("second CopyToImage: %v", err)
	}

	got, err := CopyFromImage(dev, entry)
	if err != nil {
		t.Fatalf("CopyFromImage: %v", err)
	}
	if !bytes.HasPrefix(got, []byte("second version")) {
		t.Errorf("expected replaced contents, got %q", got)
	}

	matches := 0
	c := directory.NewCursor(d)
	for c.Valid() {
		e := c.Read()
		if !e.Empty && e.Name == name {
			matches++
		}
	}
	if matches != 1 {
		t.Fatalf("expected exactly one entry named %s after replace, found %d", name.String(), matches)
	}
}

func TestCopyTextToImageAndFromImageRoundTrip(t *testing.T) {
	dev, d := newTestImage(t)
	name, _ := sixbit.Encode("FOO.TX")

	src := []byte("foo\nbar\n")
	entry, err := CopyTextToImage(dev, d, src, name)
	if err != nil {
		t.Fatalf("CopyTextToImage: %v", err)
	}

	got, err := CopyTextFromImage(dev, entry)
	if err != nil {
		t.Fatalf("CopyTextFromImage: %v", err)
	}
	if !bytes.Equal(got, src) {
		t.Errorf("text round trip = %q, want %q", got, src)
	}
}
