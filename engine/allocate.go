package engine

import "os8util/directory"

// GetEmptyEntry finds the best empty slot for a request of length blocks,
// excluding exclude by (segment, file number) identity so a just-deleted
// entry cannot be reused to hold the data that replaces it.
//
// length == 0 requests the largest empty entry available; otherwise the
// smallest empty entry with length >= the request (best fit).
func GetEmptyEntry(d *directory.Directory, exclude directory.Entry, length int) (directory.Entry, bool) {
	var best directory.Entry

	c := directory.NewCursor(d)
	for c.Valid() {
		e := c.Read()

		if directory.SameEntry(e, exclude) {
			continue
		}
		if !e.Empty || e.Length < length {
			continue
		}

		switch {
		case best.Length == 0:
			best = e
		case length == 0 && e.Length > best.Length:
			best = e
		case length != 0 && e.Length < best.Length:
			best = e
		}
	}

	return best, best.Length != 0
}
