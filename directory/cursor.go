package directory

// Cursor walks file entries across a directory's segment chain, following
// next_segment links transparently. It never itself performs I/O; it only
// ever looks at segments already materialized in the Directory.
type Cursor struct {
	dir        *Directory
	segIndex   int
	offset     int
	fileNumber int
	fileBlock  int
}

// NewCursor returns a cursor positioned before the first entry of segment 1.
func NewCursor(d *Directory) *Cursor {
	c := &Cursor{dir: d}
	c.resetToSegment(0)
	return c
}

func (c *Cursor) resetToSegment(segIndex int) {
	c.segIndex = segIndex
	c.offset = DataOffset
	c.fileNumber = 1
	if seg := c.dir.SegmentAt(segIndex); seg != nil {
		c.fileBlock = seg.FirstFileBlock()
	}
}

// Valid reports whether the cursor currently addresses an entry. If the
// current segment is exhausted and links to another, it jumps there first.
func (c *Cursor) Valid() bool {
	seg := c.dir.SegmentAt(c.segIndex)
	if seg == nil {
		return false
	}
	if c.fileNumber > seg.NumberFiles() {
		next := seg.NextSegment()
		if next == 0 {
			return false
		}
		c.resetToSegment(next - 1)
		return c.dir.SegmentAt(c.segIndex) != nil
	}
	return true
}

// Peek materializes the entry at the cursor's current position without
// moving it.
func (c *Cursor) Peek() Entry {
	seg := c.dir.SegmentAt(c.segIndex)
	return decodeEntryAt(seg, c.segIndex, c.offset, c.fileNumber, c.fileBlock)
}

// Read peeks the current entry, then advances past it.
func (c *Cursor) Read() Entry {
	e := c.Peek()
	c.offset += e.Words()
	c.fileBlock += e.Length
	c.fileNumber++
	return e
}

// Restore repositions the cursor to immediately before e, so a subsequent
// Read observes e's current on-disk contents again. Required after engine
// operations shuffle segment words and must rewind to re-examine an entry.
func (c *Cursor) Restore(e Entry) {
	c.segIndex = e.SegmentIndex
	c.offset = e.Offset
	c.fileNumber = e.FileNumber
	c.fileBlock = e.FileBlock
}

// Overflowed reports whether the cursor's current segment has already been
// fully walked (file number beyond the segment's count), without following
// a next_segment link. Guards code that must not peek past a segment
// boundary, such as consolidate's same-segment adjacency check.
func (c *Cursor) Overflowed() bool {
	seg := c.dir.SegmentAt(c.segIndex)
	if seg == nil {
		return true
	}
	return c.fileNumber > seg.NumberFiles()
}

// SameEntry reports whether a and b identify the same directory slot, by
// (segment, file number) identity as spec.md §4.4's exclusion rule requires.
func SameEntry(a, b Entry) bool {
	return a.SegmentIndex == b.SegmentIndex && a.FileNumber == b.FileNumber
}
