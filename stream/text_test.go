package stream

import (
	"bytes"
	"testing"
)

func TestPackUnpackTextRoundTrip(t *testing.T) {
	cases := [][]byte{
		[]byte("foo\nbar\n"),
		[]byte("no newline"),
		[]byte(""),
		[]byte("a\nb\nc\n"),
	}
	for _, src := range cases {
		words := packText(src)
		got := unpackText(words)
		if !bytes.Equal(got, src) {
			t.Errorf("round trip of %q = %q, want %q", src, got, src)
		}
	}
}

func TestPackTextMarksLineFeedWithCarriageReturn(t *testing.T) {
	words := packText([]byte("a\nb"))
	// "a", CR, LF form the first three-character group; the CR is its
	// second character, held in the low byte of the group's second word.
	if len(words) < 2 || words[1]&0xFF != cr|0x80 {
		t.Errorf("packed words = %v, want a marked CR before the line feed", words)
	}
	got := unpackText(words)
	// cr is silenced on unpack, so it must not reappear, but the lf must.
	if !bytes.Contains(got, []byte("a\nb")) {
		t.Errorf("unpacked = %q, want it to contain %q", got, "a\nb")
	}
}

func TestPackTextAppendsControlZOnce(t *testing.T) {
	// Five characters plus one control-Z fill exactly two groups, so a
	// second control-Z would add a third group (two more words).
	withCtrlZ := append([]byte("done."), ctrlZ)
	words1 := packText(withCtrlZ)
	words2 := packText([]byte("done."))
	if len(words1) != len(words2) {
		t.Errorf("packText should not append a second control-Z: len(with) = %d, len(without) = %d", len(words1), len(words2))
	}
}

func TestIsTextExtension(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{"FOO.TX", true},
		{"foo.tx", true},
		{"FOO.MA", true},
		{"FOO.BIN", false},
		{"FOO.SV", false},
		{"NOEXTENSION", false},
	}
	for _, c := range cases {
		if got := IsTextExtension(c.name); got != c.want {
			t.Errorf("IsTextExtension(%q) = %v, want %v", c.name, got, c.want)
		}
	}
}
