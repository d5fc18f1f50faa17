package sixbit

import (
	"strings"

	"github.com/pkg/errors"

	"os8util/internal/oserrs"
	"os8util/word"
)

// fullMask is the six-bit "equality required" mask value.
const fullMask word.Word = 0x3F

// Pattern is a (match, mask) pair used to test names under wildcards. For
// every half i, a name matches when (name[i] XOR match[i]) AND mask[i] == 0.
type Pattern struct {
	Match Name
	Mask  Name
}

// ExactPattern builds a pattern that matches only name itself: every
// sub-field's mask requires equality. Used where the engine needs a plain
// (non-wildcard) lookup, such as replacing a same-named file before a copy.
func ExactPattern(name Name) Pattern {
	return Pattern{
		Match: name,
		Mask:  Name{fullMask<<6 | fullMask, fullMask<<6 | fullMask, fullMask<<6 | fullMask, fullMask<<6 | fullMask},
	}
}

// ParsePattern parses the host wildcard syntax: up to six name characters
// optionally followed by a trailing '*', then an optional '.' and up to two
// extension characters optionally followed by a trailing '*'. No other
// wildcard forms are permitted.
func ParsePattern(s string) (Pattern, error) {
	var p Pattern

	namePart, extPart, err := splitNameExt(s)
	if err != nil {
		return p, err
	}

	nameChars, nameWild, err := splitWildcard(namePart, maxNameChars, s)
	if err != nil {
		return p, err
	}
	extChars, extWild, err := splitWildcard(extPart, maxExtChars, s)
	if err != nil {
		return p, err
	}

	var nameCodes, nameMasks [maxNameChars]word.Word
	for i := range nameCodes {
		nameMasks[i] = fullMask
	}
	for i := 0; i < len(nameChars); i++ {
		nameCodes[i] = encodeChar(nameChars[i])
	}
	if nameWild {
		for i := len(nameChars); i < maxNameChars; i++ {
			nameMasks[i] = 0
		}
	}

	var extCodes, extMasks [maxExtChars]word.Word
	for i := range extCodes {
		extMasks[i] = fullMask
	}
	for i := 0; i < len(extChars); i++ {
		extCodes[i] = encodeChar(extChars[i])
	}
	if extWild {
		for i := len(extChars); i < maxExtChars; i++ {
			extMasks[i] = 0
		}
	}

	p.Match[0] = nameCodes[0]<<6 | nameCodes[1]
	p.Match[1] = nameCodes[2]<<6 | nameCodes[3]
	p.Match[2] = nameCodes[4]<<6 | nameCodes[5]
	p.Match[3] = extCodes[0]<<6 | extCodes[1]

	p.Mask[0] = nameMasks[0]<<6 | nameMasks[1]
	p.Mask[1] = nameMasks[2]<<6 | nameMasks[3]
	p.Mask[2] = nameMasks[4]<<6 | nameMasks[5]
	p.Mask[3] = extMasks[0]<<6 | extMasks[1]

	return p, nil
}

// splitWildcard strips at most one trailing '*' from half, validates its
// remaining characters and length against max, and reports whether a
// wildcard was present.
func splitWildcard(half string, max int, original string) (chars string, wildcard bool, err error) {
	if strings.Contains(half, "*") {
		if !strings.HasSuffix(half, "*") || strings.Count(half, "*") > 1 {
			return "", false, errors.Wrapf(oserrs.NameSyntax, "'*' must trail its half in %q", original)
		}
		half = strings.TrimSuffix(half, "*")
		wildcard = true
	}
	if len(half) > max {
		return "", false, errors.Wrapf(oserrs.NameSyntax, "pattern half too long in %q", original)
	}
	for i := 0; i < len(half); i++ {
		if !isNameChar(half[i]) {
			return "", false, errors.Wrapf(oserrs.NameSyntax, "invalid pattern character %q in %q", half[i], original)
		}
	}
	return half, wildcard, nil
}

// MatchesName reports whether name satisfies the pattern.
func (p Pattern) MatchesName(name Name) bool {
	for i := 0; i < 4; i++ {
		if (name[i]^p.Match[i])&p.Mask[i] != 0 {
			return false
		}
	}
	return true
}
