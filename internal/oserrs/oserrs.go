// Package oserrs defines the sentinel error kinds shared across the OS/8
// image core (spec.md §7). Every layer — word codec, block device,
// directory model, directory engine, file streamer — wraps one of these
// with github.com/pkg/errors at the point it is raised, so a caller can
// test the kind with errors.Is regardless of how deep the wrap chain is.
package oserrs

import "github.com/pkg/errors"

var (
	// IoError is a host I/O failure: a block read/write failed or returned
	// a short count, or the image file could not be locked or opened.
	IoError = errors.New("i/o error")

	// FormatError is an image length inconsistent with its declared
	// geometry, or an unrecognized file extension with no override.
	FormatError = errors.New("format error")

	// CorruptBlock is a decoded (or, symmetrically, about-to-be-encoded)
	// word outside the 12-bit range 0..4095.
	CorruptBlock = errors.New("corrupt block")

	// InvalidDirectory is a directory that fails the sanity checks of
	// spec.md §3 on read.
	InvalidDirectory = errors.New("invalid directory")

	// DirectoryFull is returned when no segment has room for an insertion
	// and no segment slot (1..6) remains to allocate a new one.
	DirectoryFull = errors.New("directory full")

	// AllocationFailed is returned when no empty entry satisfies a
	// requested size.
	AllocationFailed = errors.New("allocation failed")

	// NameSyntax is a host-supplied OS/8 name that violates the name grammar.
	NameSyntax = errors.New("invalid OS/8 name")

	// UsageError covers mutually exclusive flags, missing arguments, or
	// other illegal CLI combinations.
	UsageError = errors.New("usage error")

	// NotFound is a lookup that yielded no matches for an operation
	// requiring one.
	NotFound = errors.New("not found")
)
