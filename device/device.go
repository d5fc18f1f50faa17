// Package device provides positioned block I/O against an OS/8 disk or
// tape image, parameterized by a word-packing discipline and a device
// geometry. It exposes no buffering beyond one block at a time; all
// caching lives in the directory and stream packages above it.
package device

import (
	"io"

	"github.com/pkg/errors"

	"os8util/internal/oserrs"
	"os8util/word"
)

// Geometry describes the fixed layout of an OS/8 device.
type Geometry struct {
	// Name identifies the geometry for diagnostics (e.g. "dectape", "dsk", "rk05a").
	Name string

	// TotalBlocks is the number of logical 256-word blocks on the device.
	TotalBlocks int

	// FirstDirBlock is the index of the first directory segment block. Always 1.
	FirstDirBlock int

	// SegmentCount is the number of directory segments. Always 6.
	SegmentCount int

	// FirstDataBlock is the index of the first data block. Always 7.
	FirstDataBlock int

	// Packing selects the word codec used for this geometry.
	Packing word.Packing

	// SubFilesystemOffset is added to every block index before I/O; used
	// by RK05 filesystem B, which begins at block offset 3248.
	SubFilesystemOffset int
}

// DECtape is the geometry of a 1474-block DECtape image using the
// 129-word physical block packing.
var DECtape = Geometry{
	Name: "dectape", TotalBlocks: 1474, FirstDirBlock: 1, SegmentCount: 6,
	FirstDataBlock: 7, Packing: word.DECtape129Word,
}

// Disk is the geometry of a 1474-block image using two-byte-per-word packing.
var Disk = Geometry{
	Name: "dsk", TotalBlocks: 1474, FirstDirBlock: 1, SegmentCount: 6,
	FirstDataBlock: 7, Packing: word.TwoBytePerWord,
}

// RK05BlockCount is the number of logical blocks in a single RK05 filesystem.
const RK05BlockCount = 3248

// RK05A is RK05 filesystem A, beginning at block 0.
var RK05A = Geometry{
	Name: "rk05a", TotalBlocks: RK05BlockCount, FirstDirBlock: 1, SegmentCount: 6,
	FirstDataBlock: 7, Packing: word.ThreeBytePerTwoWord, SubFilesystemOffset: 0,
}

// RK05B is RK05 filesystem B, beginning at block offset 3248 in the same image.
var RK05B = Geometry{
	Name: "rk05b", TotalBlocks: RK05BlockCount, FirstDirBlock: 1, SegmentCount: 6,
	FirstDataBlock: 7, Packing: word.ThreeBytePerTwoWord, SubFilesystemOffset: RK05BlockCount,
}

// Device performs positioned block reads and writes against a host image.
type Device struct {
	rw io.ReadWriteSeeker
	g  Geometry
}

// New constructs a Device over rw using geometry g.
func New(rw io.ReadWriteSeeker, g Geometry) *Device {
	return &Device{rw: rw, g: g}
}

// Geometry returns the device's geometry.
func (d *Device) Geometry() Geometry {
	return d.g
}

func (d *Device) offset(n int) int64 {
	return int64(n+d.g.SubFilesystemOffset) * int64(word.BytesPerBlock(d.g.Packing))
}

// ReadBlock reads absolute block n, decoding it according to the device's packing.
func (d *Device) ReadBlock(n int) (word.Block, error) {
	var b word.Block

	size := word.BytesPerBlock(d.g.Packing)
	raw := make([]byte, size)

	if _, err := d.rw.Seek(d.offset(n), io.SeekStart); err != nil {
		return b, errors.Wrapf(oserrs.IoError, "seek to block %d: %v", n, err)
	}
	if _, err := io.ReadFull(d.rw, raw); err != nil {
		return b, errors.Wrapf(oserrs.IoError, "read block %d: %v", n, err)
	}

	b, err := word.Decode(raw, d.g.Packing)
	if err != nil {
		return b, errors.Wrapf(err, "decode block %d", n)
	}
	return b, nil
}

// WriteBlock writes b to absolute block n, encoding it according to the
// device's packing.
func (d *Device) WriteBlock(n int, b word.Block) error {
	raw, err := word.Encode(b, d.g.Packing)
	if err != nil {
		return errors.Wrapf(err, "encode block %d", n)
	}

	if _, err := d.rw.Seek(d.offset(n), io.SeekStart); err != nil {
		return errors.Wrapf(oserrs.IoError, "seek to block %d: %v", n, err)
	}
	if nn, err := d.rw.Write(raw); err != nil || nn != len(raw) {
		return errors.Wrapf(oserrs.IoError, "write block %d: %v", n, err)
	}
	return nil
}
