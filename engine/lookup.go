package engine

import (
	"os8util/directory"
	"os8util/sixbit"
)

// Lookup walks forward from the start of the directory, skipping empty
// entries and zero-length entries, and returns the first present entry
// whose name satisfies pattern.
func Lookup(d *directory.Directory, pattern sixbit.Pattern) (directory.Entry, bool) {
	c := directory.NewCursor(d)
	return LookupFrom(c, pattern)
}

// LookupFrom resumes a lookup from an existing cursor position, so wildcard
// expansion can enumerate successive matches across repeated calls.
func LookupFrom(c *directory.Cursor, pattern sixbit.Pattern) (directory.Entry, bool) {
	for c.Valid() {
		e := c.Read()
		if e.Empty || e.Length == 0 {
			continue
		}
		if pattern.MatchesName(e.Name) {
			return e, true
		}
	}
	return directory.Entry{}, false
}
