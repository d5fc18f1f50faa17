// Package namepath implements the path-name boundary rules of spec.md §6:
// recognizing an "os8:" prefixed argument and classifying a command's
// argument list into the inferred copy/print-text shape. It is the one
// piece of the out-of-scope command-line front end (spec.md §1) pulled
// in-tree, so its own tests can exercise it directly as the contract
// boundary between the front end and the core.
package namepath

import (
	"strings"

	"github.com/pkg/errors"

	"os8util/internal/oserrs"
)

const prefix = "os8:"

// SplitOS8Path reports whether arg is "os8:"-prefixed and, if so, the
// remainder after the prefix (possibly empty, for the bare "os8:"
// destination-directory form).
func SplitOS8Path(arg string) (isOS8 bool, rest string) {
	if !strings.HasPrefix(arg, prefix) {
		return false, arg
	}
	return true, strings.TrimPrefix(arg, prefix)
}

// CopyMode identifies which inferred command a copy invocation's argument
// list selects.
type CopyMode int

const (
	// CopyToImage is selected when the last argument is "os8:"-prefixed
	// and every prior argument is a bare host path.
	CopyToImage CopyMode = iota
	// CopyFromImage is selected when every leading argument is
	// "os8:"-prefixed and the last argument is a bare host path.
	CopyFromImage
	// PrintText is selected when there is exactly one "os8:"-prefixed
	// argument, it names no wildcard, and there is no host path argument.
	PrintText
)

// ClassifyArgs classifies args per spec.md §6's inferred-command rules.
// It returns UsageError if args is empty, mixes directions, or contains no
// "os8:" argument at all.
func ClassifyArgs(args []string) (CopyMode, error) {
	if len(args) == 0 {
		return 0, errors.Wrap(oserrs.UsageError, "no arguments given")
	}

	isOS8 := make([]bool, len(args))
	os8Count := 0
	for i, a := range args {
		os8, _ := SplitOS8Path(a)
		isOS8[i] = os8
		if os8 {
			os8Count++
		}
	}

	if os8Count == 0 {
		return 0, errors.Wrap(oserrs.UsageError, "no os8: argument given")
	}

	last := len(args) - 1

	if os8Count == 1 && isOS8[last] && !strings.Contains(args[last], "*") {
		if len(args) == 1 {
			return PrintText, nil
		}
	}

	if isOS8[last] {
		for i := 0; i < last; i++ {
			if isOS8[i] {
				return 0, errors.Wrap(oserrs.UsageError, "cannot mix os8: and host arguments as copy sources and destination")
			}
		}
		return CopyToImage, nil
	}

	for i := 0; i < last; i++ {
		if !isOS8[i] {
			return 0, errors.Wrap(oserrs.UsageError, "cannot mix os8: and host arguments as copy sources and destination")
		}
	}
	return CopyFromImage, nil
}
