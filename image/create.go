package image

import (
	"os"

	"github.com/pkg/errors"

	"os8util/device"
	"os8util/directory"
	"os8util/engine"
	"os8util/internal/imagelock"
	"os8util/internal/oserrs"
	"os8util/word"
)

// CreateNew formats a brand new image at path with geometry g: a
// full-length, zero-filled host file sized to g's block count (plus
// SubFilesystemOffset, for an RK05 filesystem B image sharing a file with
// filesystem A), a single segment 1 with one empty entry spanning the
// whole data range, and blank (all-zero) slots for segments 2..6.
// allowExisting permits truncating a pre-existing file at path; otherwise
// CreateNew fails if path already exists.
func CreateNew(path string, g device.Geometry, allowExisting bool) (*Image, error) {
	flags := os.O_RDWR | os.O_CREATE
	if allowExisting {
		flags |= os.O_TRUNC
	} else {
		flags |= os.O_EXCL
	}

	f, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		return nil, errors.Wrapf(oserrs.IoError, "creating %s: %v", path, err)
	}

	release, err := imagelock.Acquire(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	totalBlocks := g.SubFilesystemOffset + g.TotalBlocks
	totalBytes := int64(totalBlocks) * int64(word.BytesPerBlock(g.Packing))
	if err := f.Truncate(totalBytes); err != nil {
		release()
		f.Close()
		return nil, errors.Wrapf(oserrs.IoError, "sizing %s: %v", path, err)
	}

	dev := device.New(f, g)
	dir := directory.New()
	engine.Create(dir, g)

	if err := directory.CommitAll(dev, g, dir); err != nil {
		release()
		f.Close()
		return nil, err
	}

	return &Image{Path: path, Geometry: g, Dev: dev, Directory: dir, file: f, release: release}, nil
}
