package cmd

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"os8util/image"
	"os8util/internal/namepath"
	"os8util/internal/oserrs"
	"os8util/sixbit"
)

var printCmd = &cobra.Command{
	Use:   "print OS8:NAME",
	Short: "Print a single OS/8 text file to stdout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		isOS8, rest := namepath.SplitOS8Path(args[0])
		if !isOS8 {
			return errors.Wrapf(oserrs.UsageError, "%s: print requires an os8: path", args[0])
		}
		if strings.Contains(rest, "*") {
			return errors.Wrap(oserrs.UsageError, "print does not accept a wildcarded name")
		}

		name, err := sixbit.Encode(rest)
		if err != nil {
			return err
		}

		override, rk05Sub := resolveFormat()
		img, err := image.Open(os8Path, override, rk05Sub)
		if err != nil {
			return err
		}
		defer img.Close()

		data, err := img.PrintText(name)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		if err != nil {
			return errors.Wrap(oserrs.IoError, "writing to stdout")
		}
		return nil
	},
}

func init() {
	registerFormatFlags(printCmd)
	rootCmd.AddCommand(printCmd)
}
