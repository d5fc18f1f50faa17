package engine

import "os8util/directory"

// Consolidate sweeps the directory once, dropping zero-length empty entries
// and merging pairs of empty entries adjacent within the same segment.
//
// This deliberately mirrors the reference's single forward pass rather than
// fully normalizing the directory: it never merges empties that straddle a
// segment boundary, and a removal can leave the cursor positioned past an
// entry that a second pass would have folded in too (Enter and the image
// package's Delete each end with a Consolidate call, so a later operation's
// pass catches that leftover case).
func Consolidate(d *directory.Directory) {
	c := directory.NewCursor(d)

	for c.Valid() {
		entry := c.Read()
		if !entry.Empty {
			continue
		}

		seg := d.Segments[entry.SegmentIndex]

		if entry.Length == 0 {
			fixSegmentDown(seg, entry.Offset, entry.Words(), 0)
			seg.SetNumberFiles(seg.NumberFiles() - 1)
			continue
		}

		if c.Overflowed() {
			continue
		}

		next := c.Peek()
		if !next.Empty {
			continue
		}

		entry.Length += next.Length
		d.PutEntry(entry)

		fixSegmentDown(seg, next.Offset, next.Words(), 0)
		seg.SetNumberFiles(seg.NumberFiles() - 1)

		c.Restore(entry)
	}
}
