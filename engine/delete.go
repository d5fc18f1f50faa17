package engine

import "os8util/directory"

// Delete turns a present entry into an empty marker in place: its name and
// additional words are overwritten by a single zero flag word, the segment
// is shrunk by the words regained, and its length (the data blocks it
// spans) is preserved as the new empty entry's length. The segment's file
// count and first_file_block are unchanged — the file's blocks simply
// become part of the empty entry where it stood.
func Delete(d *directory.Directory, e directory.Entry) {
	seg := d.Segments[e.SegmentIndex]

	fixSegmentDown(seg, e.Offset, e.Words(), directory.EmptyEntryWords)

	d.PutEntry(directory.Entry{
		Empty:        true,
		Length:       e.Length,
		FileBlock:    e.FileBlock,
		SegmentIndex: e.SegmentIndex,
		FileNumber:   e.FileNumber,
		Offset:       e.Offset,
	})
}
