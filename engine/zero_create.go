package engine

import (
	"os8util/device"
	"os8util/directory"
	"os8util/word"
)

// Zero rewrites segment 1 as a single empty entry spanning the device's
// entire data area and cuts the chain there (next_segment = 0). Segment 1's
// first_file_block is left untouched so reserved system blocks stay
// reserved. The other five segments are left exactly as loaded: no longer
// reachable, and so never dirtied or written back.
func Zero(d *directory.Directory, g device.Geometry) {
	seg1 := d.Segments[0]
	if seg1 == nil {
		seg1 = &directory.Segment{}
		d.Segments[0] = seg1
	}

	firstFileBlock := seg1.FirstFileBlock()
	additional := seg1.AdditionalWords()

	*seg1 = directory.Segment{}
	seg1.SetNumberFiles(1)
	seg1.SetFirstFileBlock(firstFileBlock)
	seg1.SetNextSegment(0)
	seg1.SetFlagWord(0)
	seg1.SetAdditionalWords(additional)

	dataBlocks := g.TotalBlocks - firstFileBlock
	seg1.Words[directory.DataOffset] = 0
	seg1.Words[directory.DataOffset+1] = word.Word(directory.Negate(dataBlocks))
}

// Create formats a brand new directory: all six segment slots are blanked,
// and segment 1 is set up with one empty entry spanning the whole data
// range starting at the device's first data block, with a single
// additional metadata word per entry (the creation-date convention).
//
// Create only shapes the in-memory model; the caller still must use
// directory.CommitAll (not the ordinary Commit, since no segment past 1 is
// chain-reachable) to format every segment block on disk, plus write the
// reserved pre-directory blocks and the device's final block to extend a
// freshly allocated host file to full size.
func Create(d *directory.Directory, g device.Geometry) {
	for i := range d.Segments {
		d.Segments[i] = nil
	}

	seg1 := &directory.Segment{}
	d.Segments[0] = seg1

	seg1.SetNumberFiles(1)
	seg1.SetFirstFileBlock(g.FirstDataBlock)
	seg1.SetNextSegment(0)
	seg1.SetFlagWord(0)
	seg1.SetAdditionalWords(1)

	dataBlocks := g.TotalBlocks - g.FirstDataBlock
	seg1.Words[directory.DataOffset] = 0
	seg1.Words[directory.DataOffset+1] = word.Word(directory.Negate(dataBlocks))
}
