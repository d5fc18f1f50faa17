package engine

import (
	"github.com/pkg/errors"

	"os8util/directory"
	"os8util/internal/oserrs"
	"os8util/sixbit"
	"os8util/word"
)

// Enter inserts a present entry named name, spanning length data blocks,
// into the slot previously returned by GetEmptyEntry as empty. length must
// not exceed empty.Length; the caller is responsible for having already
// written the file's data into empty's blocks.
//
// If the empty entry's own segment lacks room for the new entry plus a
// residual empty marker, Enter walks the segment chain forward looking for
// the first downstream segment with room, relocating that segment's
// immediate predecessor's last entry to the front of it; this cascades
// room backward toward the empty entry's segment over successive
// iterations. If the chain is exhausted, a new segment is appended at the
// lowest unused index. If none remains, Enter fails with DirectoryFull.
func Enter(d *directory.Directory, name sixbit.Name, length int, empty directory.Entry) (directory.Entry, error) {
	segIdx := empty.SegmentIndex
	seg := d.Segments[segIdx]

	additional := seg.AdditionalWords()
	newEntryWords := directory.EntryWords(additional)
	minFree := newEntryWords + directory.EmptyEntryWords

	for !hasRoom(segIdx, seg, minFree) {
		if err := makeRoom(d, segIdx, seg, minFree, &empty, &segIdx, &seg); err != nil {
			return directory.Entry{}, err
		}
	}

	usedEnd := segmentUsedEnd(segIdx, seg)
	fixSegmentUp(seg, empty.Offset, newEntryWords, usedEnd)
	seg.SetNumberFiles(seg.NumberFiles() + 1)

	newEntry := directory.Entry{
		Empty:        false,
		Name:         name,
		FileBlock:    empty.FileBlock,
		Length:       length,
		Additional:   make([]word.Word, additional),
		SegmentIndex: segIdx,
		FileNumber:   empty.FileNumber,
		Offset:       empty.Offset,
	}
	d.PutEntry(newEntry)

	shrunkOffset := empty.Offset + newEntryWords
	shrunk := directory.ReadEntryAt(seg, segIdx, empty.FileNumber+1, empty.FileBlock+length, shrunkOffset)
	shrunk.Length -= length
	d.PutEntry(shrunk)

	Consolidate(d)

	return newEntry, nil
}

// makeRoom performs one outer-loop iteration of the cascading rebalance:
// walk forward from seg looking for a downstream segment with room, move an
// entry into it to free room one segment closer to seg, or append a new
// segment if the chain is exhausted. *empty/*retargetSeg/*retargetIdx are
// updated in place if the moved entry was the caller's own empty slot.
func makeRoom(d *directory.Directory, startIdx int, start *directory.Segment, minFree int, empty *directory.Entry, retargetIdx *int, retargetSeg **directory.Segment) error {
	curIdx, cur := startIdx, start
	moved := false

	for {
		next := cur.NextSegment()
		if next == 0 {
			break
		}
		nextIdx := next - 1
		nextSeg := d.Segments[nextIdx]

		if hasRoom(nextIdx, nextSeg, minFree) {
			last := lastEntryInSegment(curIdx, cur)
			moveEmpty := directory.SameEntry(last, *empty)

			nextUsedEnd := segmentUsedEnd(nextIdx, nextSeg)

			cur.SetNumberFiles(cur.NumberFiles() - 1)
			nextSeg.SetNumberFiles(nextSeg.NumberFiles() + 1)
			nextSeg.SetFirstFileBlock(nextSeg.FirstFileBlock() - last.Length)

			last.SegmentIndex = nextIdx
			last.FileNumber = 1
			last.FileBlock = nextSeg.FirstFileBlock()
			last.Offset = directory.DataOffset

			fixSegmentUp(nextSeg, directory.DataOffset, last.Words(), nextUsedEnd)
			d.PutEntry(last)

			if moveEmpty {
				*empty = last
				*retargetIdx = nextIdx
				*retargetSeg = nextSeg
			}

			moved = true
			break
		}

		curIdx, cur = nextIdx, nextSeg
	}

	if moved {
		return nil
	}

	newIdx := -1
	for i := 0; i < directory.MaxSegments; i++ {
		if d.Segments[i] == nil {
			newIdx = i
			break
		}
	}
	if newIdx < 0 {
		return errors.Wrap(oserrs.DirectoryFull, "no free directory segment to extend the chain")
	}

	last := lastEntryInSegment(curIdx, cur)

	ns := &directory.Segment{}
	ns.SetNumberFiles(1)
	ns.SetFirstFileBlock(last.FileBlock + last.Length)
	ns.SetNextSegment(0)
	ns.SetFlagWord(0)
	ns.SetAdditionalWords(cur.AdditionalWords())
	ns.Words[directory.DataOffset] = 0
	ns.Words[directory.DataOffset+1] = word.Word(directory.Negate(0))
	ns.Dirty = true

	cur.SetNextSegment(newIdx + 1)
	d.Segments[newIdx] = ns

	return nil
}
