package cmd

import (
	"github.com/spf13/cobra"

	"os8util/image"
)

var (
	formatRK05 bool
	formatTU56 bool
	formatDT8  bool
	formatDSK  bool
	formatRKA  bool
	formatRKB  bool
)

// registerFormatFlags attaches the shared --rk05/--tu56/--dt8/--dsk/--rka/--rkb
// flag set to cmd. Every os8util subcommand accepts the same format
// override set, so it is registered once here rather than per-command, the
// way the teacher's amstrad/commodore/spectrum commands each register
// their own local "--media" flag.
func registerFormatFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&formatRK05, "rk05", false, "Treat the image as RK05 (three-byte-per-two-word packing)")
	cmd.Flags().BoolVar(&formatTU56, "tu56", false, "Treat the image as a DECtape (129-word physical blocks)")
	cmd.Flags().BoolVar(&formatDT8, "dt8", false, "Treat the image as a DECtape (129-word physical blocks)")
	cmd.Flags().BoolVar(&formatDSK, "dsk", false, "Treat the image as a disk (two-byte-per-word packing)")
	cmd.Flags().BoolVar(&formatRKA, "rka", false, "Select RK05 filesystem A (default)")
	cmd.Flags().BoolVar(&formatRKB, "rkb", false, "Select RK05 filesystem B")
}

// resolveFormat converts the parsed format flags into image.Detect's
// override/rk05Sub arguments, in the spirit of the teacher's
// mediaType(override, filename string) string helper: an explicit flag
// always wins over extension/length sniffing.
func resolveFormat() (override, rk05Sub string) {
	switch {
	case formatRK05:
		override = image.FormatRK05
	case formatTU56:
		override = image.FormatDECtape
	case formatDT8:
		override = image.FormatDT8
	case formatDSK:
		override = image.FormatDisk
	}
	if formatRKB {
		rk05Sub = "rkb"
	} else {
		rk05Sub = "rka"
	}
	return override, rk05Sub
}
