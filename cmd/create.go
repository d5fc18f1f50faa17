package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"os8util/image"
	"os8util/internal/prompt"
)

var createExists bool

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Format a new OS/8 image",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		override, rk05Sub := resolveFormat()
		g, err := image.DetectForCreate(os8Path, override, rk05Sub)
		if err != nil {
			return err
		}

		if createExists {
			if _, statErr := os.Stat(os8Path); statErr == nil {
				ok := prompt.Confirm(os.Stdout, os.Stdin, fmt.Sprintf("%s already exists, overwrite?", os8Path))
				if !ok {
					return nil
				}
			}
		}

		img, err := image.CreateNew(os8Path, g, createExists)
		if err != nil {
			return err
		}
		return img.Close()
	},
}

func init() {
	createCmd.Flags().BoolVar(&createExists, "exists", false, "Permit overwriting an existing host file")
	registerFormatFlags(createCmd)
	rootCmd.AddCommand(createCmd)
}
