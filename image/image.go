package image

import (
	"os"

	"github.com/pkg/errors"

	"os8util/device"
	"os8util/directory"
	"os8util/engine"
	"os8util/internal/imagelock"
	"os8util/internal/oserrs"
	"os8util/sixbit"
	"os8util/stream"
	"os8util/word"
)

// Image is the single handle the front end operates on: a locked host
// file, the block device built over its detected geometry, and the
// directory loaded from it.
type Image struct {
	Path      string
	Geometry  device.Geometry
	Dev       *device.Device
	Directory *directory.Directory

	file    *os.File
	release func() error
}

// Open locks, detects the geometry of, and loads the directory of the
// image at path. formatOverride and rk05Sub are passed to Detect verbatim;
// pass the empty string for either to rely on extension/length sniffing.
func Open(path, formatOverride, rk05Sub string) (*Image, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, errors.Wrapf(oserrs.IoError, "opening %s: %v", path, err)
	}

	release, err := imagelock.Acquire(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		release()
		f.Close()
		return nil, errors.Wrapf(oserrs.IoError, "stat %s: %v", path, err)
	}

	g, err := Detect(path, info.Size(), formatOverride, rk05Sub)
	if err != nil {
		release()
		f.Close()
		return nil, err
	}

	dev := device.New(f, g)
	dir, err := directory.Load(dev, g)
	if err != nil {
		release()
		f.Close()
		return nil, err
	}

	return &Image{Path: path, Geometry: g, Dev: dev, Directory: dir, file: f, release: release}, nil
}

// Close commits every dirty segment, releases the advisory lock, and
// closes the underlying file, in that order per spec.md §5's ordering
// guarantee.
func (img *Image) Close() error {
	if err := directory.Commit(img.Dev, img.Geometry, img.Directory); err != nil {
		return err
	}
	if img.release != nil {
		if err := img.release(); err != nil {
			return errors.Wrap(err, "releasing image lock")
		}
	}
	if err := img.file.Close(); err != nil {
		return errors.Wrapf(oserrs.IoError, "closing %s: %v", img.Path, err)
	}
	return nil
}

// FileInfo is one directory listing row: a present file, or (when empties
// are requested) an empty entry's extent.
type FileInfo struct {
	Name   string
	Length int
	Date   directory.Date
	Empty  bool
}

// Summary is the directory listing's trailing accounting line.
type Summary struct {
	FileCount  int
	UsedBlocks int
	FreeBlocks int
}

// Dir walks the whole directory and returns every present file (and, if
// includeEmpties is set, every empty entry too) in on-disk order, along
// with the "N Files In M Blocks - K Free Blocks" summary counters.
func (img *Image) Dir(includeEmpties bool) ([]FileInfo, Summary) {
	var files []FileInfo
	var sum Summary

	c := directory.NewCursor(img.Directory)
	for c.Valid() {
		e := c.Read()
		if e.Empty {
			sum.FreeBlocks += e.Length
			if includeEmpties {
				files = append(files, FileInfo{Length: e.Length, Empty: true})
			}
			continue
		}
		sum.FileCount++
		sum.UsedBlocks += e.Length
		d, _ := e.Date()
		files = append(files, FileInfo{Name: e.Name.String(), Length: e.Length, Date: d})
	}
	return files, sum
}

// Delete walks the directory once per pattern (so an earlier pattern's
// deletions never affect a later pattern's match set, matching
// os8pip.c's delete_os8_files), removing every present entry that
// matches and for which confirm (when non-nil) returns true, then
// consolidates once at the end. It reports the number of files actually
// deleted and returns NotFound only if no pattern matched anything.
func (img *Image) Delete(patterns []sixbit.Pattern, confirm func(name string) bool) (int, error) {
	count := 0
	matched := false

	for _, pattern := range patterns {
		c := directory.NewCursor(img.Directory)
		for c.Valid() {
			e := c.Peek()
			if e.Empty || e.Length == 0 || !pattern.MatchesName(e.Name) {
				c.Read()
				continue
			}
			matched = true

			doDelete := confirm == nil || confirm(e.Name.String())
			if doDelete {
				engine.Delete(img.Directory, e)
				count++
			}
			c.Read()
		}
	}

	engine.Consolidate(img.Directory)

	if !matched {
		return 0, errors.Wrap(oserrs.NotFound, "no matching file")
	}
	return count, nil
}

// LookupAll returns the names of every present entry matching pattern, in
// on-disk order. Used by copy-from-image to expand a wildcarded source
// into its matching files.
func (img *Image) LookupAll(pattern sixbit.Pattern) ([]sixbit.Name, error) {
	var names []sixbit.Name
	c := directory.NewCursor(img.Directory)
	for c.Valid() {
		e := c.Read()
		if e.Empty || e.Length == 0 {
			continue
		}
		if pattern.MatchesName(e.Name) {
			names = append(names, e.Name)
		}
	}
	if len(names) == 0 {
		return nil, errors.Wrap(oserrs.NotFound, "no matching file")
	}
	return names, nil
}

// Zero reformats the image to a single empty file spanning the entire
// data area, in place, preserving the existing first_file_block and
// additional_words convention of segment 1.
func (img *Image) Zero() error {
	engine.Zero(img.Directory, img.Geometry)
	return nil
}

// CopyIn writes data (or, if asText, packs it as OS/8 text) as a new file
// named name, replacing any existing file of that name.
func (img *Image) CopyIn(data []byte, name sixbit.Name, asText bool) (directory.Entry, error) {
	if asText {
		return stream.CopyTextToImage(img.Dev, img.Directory, data, name)
	}
	return stream.CopyToImage(img.Dev, img.Directory, data, name)
}

// CopyOut looks up name and returns its contents, unpacked as text if
// asText is set or read verbatim otherwise.
func (img *Image) CopyOut(name sixbit.Name, asText bool) ([]byte, error) {
	e, found := engine.Lookup(img.Directory, sixbit.ExactPattern(name))
	if !found {
		return nil, errors.Wrapf(oserrs.NotFound, "%s: no such file", name.String())
	}
	if asText {
		return stream.CopyTextFromImage(img.Dev, e)
	}
	return stream.CopyFromImage(img.Dev, e)
}

// PrintText looks up name and returns its unpacked text contents; a thin
// alias of CopyOut(name, true) for the print-text command.
func (img *Image) PrintText(name sixbit.Name) ([]byte, error) {
	return img.CopyOut(name, true)
}

// ReadRawBlocks returns the raw host bytes of absolute blocks [start, end),
// bypassing the directory entirely. This is the ".BLOCKs-e" pseudo-file
// addressing original_source/os8pip.c supports for read; there is no
// corresponding write path.
func (img *Image) ReadRawBlocks(start, end int) ([]byte, error) {
	if start < 0 || end <= start || end > img.Geometry.TotalBlocks {
		return nil, errors.Wrapf(oserrs.UsageError, "invalid block range %d-%d", start, end)
	}
	out := make([]byte, 0, (end-start)*word.BytesPerBlock(img.Geometry.Packing))
	for n := start; n < end; n++ {
		blk, err := img.Dev.ReadBlock(n)
		if err != nil {
			return nil, err
		}
		raw, err := word.Encode(blk, img.Geometry.Packing)
		if err != nil {
			return nil, err
		}
		out = append(out, raw...)
	}
	return out, nil
}
