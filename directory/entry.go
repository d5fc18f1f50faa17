package directory

import (
	"fmt"

	"os8util/sixbit"
	"os8util/word"
)

// Entry is a single file entry: either present (name + metadata + length)
// or empty (zero flag + length). It carries enough position information
// (segment index, word offset, file number, data block) that a cursor can
// be restored to it after the owning segment's words have been shuffled.
type Entry struct {
	Empty      bool
	Name       sixbit.Name
	FileBlock  int // absolute data block where this entry's extent starts
	Length     int // length in blocks
	Additional []word.Word

	SegmentIndex int // 0-based index into Directory.Segments
	FileNumber   int // 1-based file number within the segment
	Offset       int // word offset of the entry's first word within the segment
}

// Words returns the on-segment word length of the entry.
func (e Entry) Words() int {
	if e.Empty {
		return EmptyEntryWords
	}
	return EntryWords(len(e.Additional))
}

// Date is a PDP-8 OS/8 creation-date stamp, packed MMMMDDDDDYYY with the
// year offset from 1970. A zero date means "no date".
type Date word.Word

var months = [...]string{
	"M0",
	"JAN", "FEB", "MAR", "APR", "MAY", "JUN", "JUL", "AUG", "SEP", "OCT", "NOV", "DEC",
	"M13", "M14", "M15",
}

// String renders a Date as "DD-MON-YY", or the empty string for a zero date.
func (d Date) String() string {
	if d == 0 {
		return ""
	}
	month := int(d>>8) & 0xF
	day := int(d>>3) & 0x1F
	year := int(d & 07)
	return fmt.Sprintf("%02d-%s-%d", day, months[month], year+1970)
}

// Date decodes the entry's first additional word as a creation date, when
// the segment's additional-word convention carries one (commonly -1, a
// single date word). The second return value is false when the entry has
// no additional words to decode.
func (e Entry) Date() (Date, bool) {
	if len(e.Additional) == 0 {
		return 0, false
	}
	return Date(e.Additional[0]), true
}

// ReadEntryAt materializes the entry at word offset off within seg, tagging
// it with segIndex/fileNumber/fileBlock. Used by the engine to decode an
// entry it has located by its own local walk (e.g. a segment's last entry)
// rather than by a Cursor's forward scan.
func ReadEntryAt(seg *Segment, segIndex, fileNumber, fileBlock, off int) Entry {
	return decodeEntryAt(seg, segIndex, off, fileNumber, fileBlock)
}

// decodeEntryAt materializes the entry starting at word offset off within
// seg, using seg's current AdditionalWords count for present entries.
func decodeEntryAt(seg *Segment, segIndex, off, fileNumber, fileBlock int) Entry {
	if seg.Words[off] == 0 {
		length := negate(int(seg.Words[off+1]))
		return Entry{
			Empty: true, Length: length, FileBlock: fileBlock,
			SegmentIndex: segIndex, FileNumber: fileNumber, Offset: off,
		}
	}

	var name sixbit.Name
	copy(name[:], seg.Words[off:off+4])

	additionalCount := seg.AdditionalWords()
	additional := make([]word.Word, additionalCount)
	copy(additional, seg.Words[off+4:off+4+additionalCount])

	lengthOff := off + 4 + additionalCount
	length := negate(int(seg.Words[lengthOff]))

	return Entry{
		Empty: false, Name: name, Additional: additional, Length: length, FileBlock: fileBlock,
		SegmentIndex: segIndex, FileNumber: fileNumber, Offset: off,
	}
}

// encodeEntryAt writes e's name/additional/length words back into its
// segment at e.Offset and marks the segment dirty.
func encodeEntryAt(seg *Segment, e Entry) {
	if e.Empty {
		seg.Words[e.Offset] = 0
		seg.Words[e.Offset+1] = word.Word(negate(e.Length))
		seg.Dirty = true
		return
	}
	copy(seg.Words[e.Offset:e.Offset+4], e.Name[:])
	copy(seg.Words[e.Offset+4:], e.Additional)
	seg.Words[e.Offset+4+len(e.Additional)] = word.Word(negate(e.Length))
	seg.Dirty = true
}
