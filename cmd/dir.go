package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"os8util/image"
)

// defaultDirColumns mirrors os8pip's own default column count for a
// directory listing.
const defaultDirColumns = 2

var (
	dirColumns int
	dirEmpties bool
)

var dirCmd = &cobra.Command{
	Use:   "dir",
	Short: "List the files on the image",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		override, rk05Sub := resolveFormat()
		img, err := image.Open(os8Path, override, rk05Sub)
		if err != nil {
			return err
		}
		defer img.Close()

		files, summary := img.Dir(dirEmpties)
		printDirectoryListing(os.Stdout, files, summary, dirColumns)
		return nil
	},
}

// printDirectoryListing renders files in os8pip's own column layout:
// "NAME.EXT" left-justified in 11 characters, followed by a 5-wide length
// field, columns entries per line, ending with the files/used/free summary.
func printDirectoryListing(out io.Writer, files []image.FileInfo, summary image.Summary, columns int) {
	column := 0
	for _, f := range files {
		name := "<empty>"
		if !f.Empty {
			name = f.Name
		}
		fmt.Fprintf(out, "%-11s%5d", name, f.Length)

		column++
		if column%columns != 0 {
			fmt.Fprintf(out, "%10s", " ")
		} else {
			fmt.Fprintln(out)
		}
	}
	if column%columns != 0 {
		fmt.Fprintln(out)
	}
	fmt.Fprintf(out, "\n  %d Files In %d Blocks - %d Free Blocks\n", summary.FileCount, summary.UsedBlocks, summary.FreeBlocks)
}

func init() {
	dirCmd.Flags().IntVar(&dirColumns, "columns", defaultDirColumns, "Number of files per listing row")
	dirCmd.Flags().BoolVar(&dirEmpties, "empties", false, "Show empty directory slots")
	registerFormatFlags(dirCmd)
	rootCmd.AddCommand(dirCmd)
}
