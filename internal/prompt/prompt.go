// Package prompt asks the user a yes/no question on stdin/stdout, for the
// confirmation prompts spec.md §7 requires before zero, non-quiet delete,
// and create --exists. Only a literal "y" or "Y" answer confirms.
package prompt

import (
	"bufio"
	"fmt"
	"io"
)

// Confirm writes question followed by " [y/N] " to out, reads a line from
// in, and reports whether it was exactly "y" or "Y".
func Confirm(out io.Writer, in io.Reader, question string) bool {
	fmt.Fprintf(out, "%s [y/N] ", question)

	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		return false
	}
	answer := scanner.Text()
	return answer == "y" || answer == "Y"
}
