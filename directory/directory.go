package directory

import (
	"sort"

	"github.com/pkg/errors"

	"os8util/device"
	"os8util/internal/oserrs"
	"os8util/word"
)

// Directory holds up to MaxSegments segments entirely in memory. Only the
// segments reachable from segment 1 are meaningful. Load leaves the other
// slots nil; the engine's Zero cuts the chain without clearing the slots it
// makes unreachable.
type Directory struct {
	Segments [MaxSegments]*Segment
}

// New returns an empty directory with no segments materialized.
func New() *Directory {
	return &Directory{}
}

// SegmentAt returns the segment at 0-based index i, or nil if unallocated.
func (d *Directory) SegmentAt(i int) *Segment {
	if i < 0 || i >= MaxSegments {
		return nil
	}
	return d.Segments[i]
}

// Load reads every segment reachable from segment 1 via next_segment links,
// validating the invariants of spec.md §3 as it goes.
func Load(dev *device.Device, g device.Geometry) (*Directory, error) {
	d := New()

	visited := make(map[int]bool)
	segIdx := 0
	next := 1 // segment 1 is always the chain's start

	for next != 0 {
		if segIdx >= MaxSegments {
			return nil, errors.Wrapf(oserrs.InvalidDirectory, "segment chain exceeds %d segments", MaxSegments)
		}
		if visited[next] {
			return nil, errors.Wrapf(oserrs.InvalidDirectory, "cyclic segment chain at segment %d", next)
		}
		visited[next] = true

		absBlock := g.FirstDirBlock + (next - 1)
		blk, err := dev.ReadBlock(absBlock)
		if err != nil {
			return nil, errors.Wrapf(err, "reading directory segment %d", next)
		}

		seg := &Segment{}
		copy(seg.Words[:], blk[:])
		d.Segments[next-1] = seg

		if err := validateSegment(seg, next-1, g); err != nil {
			return nil, err
		}

		nextSeg := seg.NextSegment()
		if nextSeg < 0 || nextSeg > MaxSegments {
			return nil, errors.Wrapf(oserrs.InvalidDirectory, "segment %d: next_segment out of range: %d", next, nextSeg)
		}

		segIdx++
		next = nextSeg
	}

	return d, nil
}

func validateSegment(seg *Segment, segIdx int, g device.Geometry) error {
	n := seg.NumberFiles()
	if n < 1 || n > 99 {
		return errors.Wrapf(oserrs.InvalidDirectory, "segment %d: number_files out of range: %d", segIdx+1, n)
	}
	a := seg.AdditionalWords()
	if a < 0 || a > 9 {
		return errors.Wrapf(oserrs.InvalidDirectory, "segment %d: additional_words out of range: %d", segIdx+1, a)
	}
	f := seg.FlagWord()
	if f != 0 && (f < 01400 || f > 01777) {
		return errors.Wrapf(oserrs.InvalidDirectory, "segment %d: flag_word out of range: %#o", segIdx+1, f)
	}
	if segIdx == 0 && seg.FirstFileBlock() != g.FirstDataBlock {
		return errors.Wrapf(oserrs.InvalidDirectory, "segment 1: first_file_block %d != device first data block %d", seg.FirstFileBlock(), g.FirstDataBlock)
	}
	return nil
}

// PutEntry writes e's words back into its owning segment at e.Offset and
// marks that segment dirty. The engine uses this after decoding an entry via
// a Cursor or ReadEntryAt and mutating its fields in place.
func (d *Directory) PutEntry(e Entry) {
	encodeEntryAt(d.Segments[e.SegmentIndex], e)
}

// reachableSegments returns the 0-based indices of segments reachable from
// segment 1, in chain order.
func (d *Directory) reachableSegments() []int {
	var out []int
	visited := make(map[int]bool)
	idx := 0
	for {
		seg := d.Segments[idx]
		if seg == nil || visited[idx] {
			break
		}
		visited[idx] = true
		out = append(out, idx)
		next := seg.NextSegment()
		if next == 0 {
			break
		}
		idx = next - 1
	}
	return out
}

// Commit writes every dirty, reachable segment back to dev in ascending
// index order, then clears the dirty flag of each segment it wrote.
func Commit(dev *device.Device, g device.Geometry, d *Directory) error {
	idxs := d.reachableSegments()
	sort.Ints(idxs)
	for _, idx := range idxs {
		seg := d.Segments[idx]
		if !seg.Dirty {
			continue
		}

		var blk word.Block
		copy(blk[:], seg.Words[:])

		absBlock := g.FirstDirBlock + idx
		if err := dev.WriteBlock(absBlock, blk); err != nil {
			return errors.Wrapf(err, "writing directory segment %d", idx+1)
		}
		seg.Dirty = false
	}
	return nil
}

// CommitAll writes every one of the six segment slots unconditionally,
// materializing blank segments where none exist. It bypasses the
// reachable-from-segment-1 walk Commit uses, for the one operation (Create)
// that must format the whole segment area of a brand new image regardless
// of which slots the fresh segment 1 chains to.
func CommitAll(dev *device.Device, g device.Geometry, d *Directory) error {
	for idx := 0; idx < MaxSegments; idx++ {
		seg := d.Segments[idx]
		if seg == nil {
			seg = &Segment{}
			d.Segments[idx] = seg
		}

		var blk word.Block
		copy(blk[:], seg.Words[:])

		absBlock := g.FirstDirBlock + idx
		if err := dev.WriteBlock(absBlock, blk); err != nil {
			return errors.Wrapf(err, "writing directory segment %d", idx+1)
		}
		seg.Dirty = false
	}
	return nil
}
