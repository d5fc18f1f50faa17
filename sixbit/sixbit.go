// Package sixbit implements OS/8's six-bit file name encoding and the
// wildcard pattern matching built on top of it (spec.md §3, §4.4).
//
// A name is four 12-bit words: three words for up to six name characters,
// and a fourth word for up to two extension characters. Each word packs
// two six-bit codes, upper six bits first.
package sixbit

import (
	"strings"

	"github.com/pkg/errors"

	"os8util/internal/oserrs"
	"os8util/word"
)

// Name is the four-word six-bit encoding of an OS/8 file name and extension.
type Name [4]word.Word

const (
	maxNameChars = 6
	maxExtChars  = 2
)

// encodeChar converts a host character to its six-bit OS/8 code: lowercase
// it, then if the result is >= 0x60 subtract 0x60. Digits and punctuation
// below 0x60 pass through unchanged.
func encodeChar(c byte) word.Word {
	lc := c
	if lc >= 'A' && lc <= 'Z' {
		lc = lc - 'A' + 'a'
	}
	if lc >= 0x60 {
		lc -= 0x60
	}
	return word.Word(lc & 0x3F)
}

// decodeChar converts a six-bit OS/8 code back to a host (uppercase) ASCII
// character. Codes below 32 map to 64..95; codes 32..63 map to themselves.
func decodeChar(code word.Word) byte {
	c := byte(code & 0x3F)
	if c < 32 {
		c += 64
	}
	return c
}

func isNameChar(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
}

// splitNameExt splits "NAME.EXT" into its halves without validating length
// or alphabet; at most one '.' is permitted.
func splitNameExt(s string) (name, ext string, err error) {
	parts := strings.SplitN(s, ".", 2)
	name = parts[0]
	if len(parts) == 2 {
		ext = parts[1]
	}
	if strings.Contains(ext, ".") {
		return "", "", errors.Wrapf(oserrs.NameSyntax, "too many '.' in %q", s)
	}
	return name, ext, nil
}

// Encode converts a host-supplied "NAME.EXT" string (any case) into its
// six-bit Name, validating it against the OS/8 name grammar: up to six
// alphanumeric name characters, optional '.', up to two alphanumeric
// extension characters.
func Encode(s string) (Name, error) {
	var n Name

	name, ext, err := splitNameExt(s)
	if err != nil {
		return n, err
	}
	if len(name) == 0 || len(name) > maxNameChars {
		return n, errors.Wrapf(oserrs.NameSyntax, "name length out of range: %q", s)
	}
	if len(ext) > maxExtChars {
		return n, errors.Wrapf(oserrs.NameSyntax, "extension length out of range: %q", s)
	}
	for i := 0; i < len(name); i++ {
		if !isNameChar(name[i]) {
			return n, errors.Wrapf(oserrs.NameSyntax, "invalid name character %q in %q", name[i], s)
		}
	}
	for i := 0; i < len(ext); i++ {
		if !isNameChar(ext[i]) {
			return n, errors.Wrapf(oserrs.NameSyntax, "invalid extension character %q in %q", ext[i], s)
		}
	}

	var nameCodes [maxNameChars]word.Word
	for i := 0; i < len(name); i++ {
		nameCodes[i] = encodeChar(name[i])
	}
	var extCodes [maxExtChars]word.Word
	for i := 0; i < len(ext); i++ {
		extCodes[i] = encodeChar(ext[i])
	}

	n[0] = nameCodes[0]<<6 | nameCodes[1]
	n[1] = nameCodes[2]<<6 | nameCodes[3]
	n[2] = nameCodes[4]<<6 | nameCodes[5]
	n[3] = extCodes[0]<<6 | extCodes[1]

	return n, nil
}

// String renders a Name back to a host "NAME.EXT" string. A zero six-bit
// code terminates a half early; a zero fourth word means no extension.
func (n Name) String() string {
	var sb strings.Builder

	codes := [6]word.Word{
		(n[0] >> 6) & 0x3F, n[0] & 0x3F,
		(n[1] >> 6) & 0x3F, n[1] & 0x3F,
		(n[2] >> 6) & 0x3F, n[2] & 0x3F,
	}
	for _, c := range codes {
		if c == 0 {
			break
		}
		sb.WriteByte(decodeChar(c))
	}

	if n[3] != 0 {
		sb.WriteByte('.')
		extCodes := [2]word.Word{(n[3] >> 6) & 0x3F, n[3] & 0x3F}
		for _, c := range extCodes {
			if c == 0 {
				break
			}
			sb.WriteByte(decodeChar(c))
		}
	}

	return sb.String()
}
