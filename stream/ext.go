// Package stream implements the file streamer of spec.md §4.5: binary and
// text copies between the host and an OS/8 image, built over the engine,
// directory and device packages.
package stream

import "strings"

// textExtensions is the fixed allow-list of host extensions treated as
// OS/8 text files for copy direction and packing purposes.
var textExtensions = map[string]bool{
	".ba": true, // BASIC source
	".bi": true, // BATCH input
	".fc": true, // FOCAL source
	".ft": true, // FORTRAN source
	".he": true, // HELP
	".hl": true, // HELP
	".ls": true, // listing
	".ma": true, // MACRO source
	".pa": true, // PAL source
	".ps": true, // Pascal source
	".ra": true, // RALF source
	".ro": true, // Runoff source
	".sb": true, // SABR source
	".sl": true, // SABR source
	".te": true, // TECO file
	".tx": true, // text file
}

// IsTextExtension reports whether name's extension (the last ".xx" suffix,
// matched case-insensitively) identifies a known OS/8 text file type.
func IsTextExtension(name string) bool {
	dot := strings.LastIndexByte(name, '.')
	if dot < 0 {
		return false
	}
	return textExtensions[strings.ToLower(name[dot:])]
}
