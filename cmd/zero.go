package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"os8util/image"
	"os8util/internal/prompt"
)

var zeroCmd = &cobra.Command{
	Use:   "zero",
	Short: "Erase every file on the image, leaving one empty extent",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ok := prompt.Confirm(os.Stdout, os.Stdin, fmt.Sprintf("Zero all files on %s?", os8Path))
		if !ok {
			return nil
		}

		override, rk05Sub := resolveFormat()
		img, err := image.Open(os8Path, override, rk05Sub)
		if err != nil {
			return err
		}
		defer img.Close()

		return img.Zero()
	},
}

func init() {
	registerFormatFlags(zeroCmd)
	rootCmd.AddCommand(zeroCmd)
}
