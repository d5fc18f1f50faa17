package cmd

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"os8util/image"
	"os8util/internal/namepath"
	"os8util/internal/oserrs"
	"os8util/internal/prompt"
	"os8util/sixbit"
)

var deleteQuiet bool

var deleteCmd = &cobra.Command{
	Use:   "delete OS8:PATTERN...",
	Short: "Delete files from the image",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		patterns := make([]sixbit.Pattern, 0, len(args))
		for _, arg := range args {
			isOS8, rest := namepath.SplitOS8Path(arg)
			if !isOS8 {
				return errors.Wrapf(oserrs.UsageError, "%s: delete arguments must be os8: paths", arg)
			}
			p, err := sixbit.ParsePattern(rest)
			if err != nil {
				return err
			}
			patterns = append(patterns, p)
		}

		override, rk05Sub := resolveFormat()
		img, err := image.Open(os8Path, override, rk05Sub)
		if err != nil {
			return err
		}
		defer img.Close()

		var confirm func(string) bool
		if !deleteQuiet {
			confirm = func(name string) bool {
				return prompt.Confirm(os.Stdout, os.Stdin, fmt.Sprintf("Delete file %s?", name))
			}
		}

		n, err := img.Delete(patterns, confirm)
		if err != nil {
			return err
		}
		fmt.Printf("%d files deleted\n", n)
		return nil
	},
}

func init() {
	deleteCmd.Flags().BoolVar(&deleteQuiet, "quiet", false, "Skip per-file delete confirmation")
	registerFormatFlags(deleteCmd)
	rootCmd.AddCommand(deleteCmd)
}
