// Package directory implements the in-memory OS/8 directory model: fixed
// capacity of six segments, the cursor that walks file entries across
// segment links, and the low-level two's-complement header accessors the
// directory engine builds on (spec.md §3, §4.3).
package directory

import "os8util/word"

// SegmentWords is the number of 12-bit words in one directory segment block.
const SegmentWords = word.BlockSize

// HeaderWords is the number of header words preceding the packed entry data.
const HeaderWords = 5

// DataOffset is the word offset of the first entry in a segment's Words array.
const DataOffset = HeaderWords

// MaxSegments is the fixed capacity of a directory: up to six segments.
const MaxSegments = 6

// EmptyEntryWords is the on-segment size of an empty entry: a zero flag
// word plus one length word.
const EmptyEntryWords = 2

// negate performs OS/8's two's-complement 12-bit negation:
// negate(x) = (4096 - x) mod 4096. It is its own inverse over 0..4095.
func negate(x int) int {
	return (4096 - x) % 4096
}

// Negate exports the two's-complement negation for packages building raw
// header/length words (the engine, when formatting fresh segments).
func Negate(x int) int {
	return negate(x)
}

// Segment is one 256-word directory block: a 5-word header followed by
// packed file entries.
type Segment struct {
	Words [SegmentWords]word.Word
	Dirty bool
}

// NumberFiles returns the (positive) count of file entries in the segment.
func (s *Segment) NumberFiles() int { return negate(int(s.Words[0])) }

// SetNumberFiles stores n as the segment's two's-complement file count.
func (s *Segment) SetNumberFiles(n int) {
	s.Words[0] = word.Word(negate(n))
	s.Dirty = true
}

// FirstFileBlock returns the absolute data block where this segment's first
// file begins.
func (s *Segment) FirstFileBlock() int { return int(s.Words[1]) }

// SetFirstFileBlock sets the segment's first data block.
func (s *Segment) SetFirstFileBlock(b int) {
	s.Words[1] = word.Word(b)
	s.Dirty = true
}

// NextSegment returns the 1-based index of the next segment in the chain,
// or 0 if this segment terminates it.
func (s *Segment) NextSegment() int { return int(s.Words[2]) }

// SetNextSegment sets the next-segment link.
func (s *Segment) SetNextSegment(n int) {
	s.Words[2] = word.Word(n)
	s.Dirty = true
}

// FlagWord returns the tentative-entry marker: 0 for none, or a value in
// 01400..01777 (octal) interpreted as an offset into the data area.
func (s *Segment) FlagWord() int { return int(s.Words[3]) }

// SetFlagWord sets the tentative-entry marker.
func (s *Segment) SetFlagWord(f int) {
	s.Words[3] = word.Word(f)
	s.Dirty = true
}

// AdditionalWords returns the count of extra per-entry metadata words
// (commonly 1, for a creation-date word).
func (s *Segment) AdditionalWords() int { return negate(int(s.Words[4])) }

// SetAdditionalWords sets the per-entry metadata word count.
func (s *Segment) SetAdditionalWords(n int) {
	s.Words[4] = word.Word(negate(n))
	s.Dirty = true
}

// EntryWords returns the on-segment word length of a present entry carrying
// additional metadata words: 4 name words + additional + 1 length word.
func EntryWords(additional int) int {
	return 4 + additional + 1
}
