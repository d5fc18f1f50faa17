package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"os8util/image"
	"os8util/internal/namepath"
	"os8util/internal/oserrs"
	"os8util/sixbit"
	"os8util/stream"
)

var (
	copyAsText  bool
	copyAsImage bool
)

var copyCmd = &cobra.Command{
	Use:   "copy ARGS...",
	Short: "Copy files to or from the image (direction inferred from argument shape)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := namepath.ClassifyArgs(args)
		if err != nil {
			return err
		}

		override, rk05Sub := resolveFormat()
		img, err := image.Open(os8Path, override, rk05Sub)
		if err != nil {
			return err
		}
		defer img.Close()

		switch mode {
		case namepath.CopyToImage:
			return runCopyToImage(img, args)
		case namepath.CopyFromImage:
			return runCopyFromImage(img, args)
		case namepath.PrintText:
			return errors.Wrap(oserrs.UsageError, `a single "os8:" argument names a file to print, not copy; use the print command`)
		default:
			return errors.Wrap(oserrs.UsageError, "unrecognized argument shape for copy")
		}
	},
}

func textOverride(name string) bool {
	switch {
	case copyAsText:
		return true
	case copyAsImage:
		return false
	default:
		return stream.IsTextExtension(name)
	}
}

// runCopyToImage mirrors os8pip.c's copy_host_files: multiple sources may
// only target the bare "os8:" device name; a single source may instead
// target an explicit "os8:NAME.EXT" to rename on copy.
func runCopyToImage(img *image.Image, args []string) error {
	sources, dest := args[:len(args)-1], args[len(args)-1]
	_, destRest := namepath.SplitOS8Path(dest)

	if len(sources) > 1 && destRest != "" {
		return errors.Wrap(oserrs.UsageError, `copying multiple files requires a bare "os8:" destination`)
	}

	for _, src := range sources {
		data, err := os.ReadFile(src)
		if err != nil {
			return errors.Wrapf(oserrs.IoError, "reading %s: %v", src, err)
		}

		outputName := filepath.Base(src)
		if len(sources) == 1 && destRest != "" {
			outputName = destRest
		}

		name, err := sixbit.Encode(outputName)
		if err != nil {
			return errors.Wrapf(err, "%q is not a legal OS/8 filename", outputName)
		}

		if _, err := img.CopyIn(data, name, textOverride(outputName)); err != nil {
			return errors.Wrapf(err, "copying host file %s to OS/8 file %s", src, name.String())
		}
		fmt.Printf("%s -> os8:%s\n", src, name.String())
	}
	return nil
}

// runCopyFromImage mirrors os8pip.c's copy_os8_files: copying more than one
// file, or a single wildcarded pattern, requires an existing host
// directory destination; a single non-wildcarded source may instead name
// an exact output file path.
func runCopyFromImage(img *image.Image, args []string) error {
	sources, dest := args[:len(args)-1], args[len(args)-1]

	destInfo, statErr := os.Stat(dest)
	destIsDir := statErr == nil && destInfo.IsDir()

	multiple := len(sources) > 1 || (len(sources) == 1 && strings.Contains(sources[0], "*"))
	if multiple && !destIsDir {
		return errors.Wrap(oserrs.UsageError, "output file must be an existing host directory")
	}

	for _, src := range sources {
		_, rest := namepath.SplitOS8Path(src)
		pattern, err := sixbit.ParsePattern(rest)
		if err != nil {
			return err
		}

		entries, err := img.LookupAll(pattern)
		if err != nil {
			return err
		}

		for _, name := range entries {
			data, err := img.CopyOut(name, textOverride(name.String()))
			if err != nil {
				return errors.Wrapf(err, "copying OS/8 file %s", name.String())
			}

			outputPath := dest
			if destIsDir {
				outputPath = filepath.Join(dest, name.String())
			}
			if err := os.WriteFile(outputPath, data, 0644); err != nil {
				return errors.Wrapf(oserrs.IoError, "writing %s: %v", outputPath, err)
			}
			fmt.Printf("os8:%s -> %s\n", name.String(), outputPath)
		}
	}
	return nil
}

func init() {
	copyCmd.Flags().BoolVar(&copyAsText, "text", false, "Force text-file copy semantics")
	copyCmd.Flags().BoolVar(&copyAsImage, "image", false, "Force binary copy semantics")
	registerFormatFlags(copyCmd)
	rootCmd.AddCommand(copyCmd)
}
