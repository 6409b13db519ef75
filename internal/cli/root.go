// Package cli implements the pkginfo command line.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/git-pkgs/pkginfo/internal/logging"
)

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "pkginfo",
		Short: "Inspect metadata of Python distributions",
		Long: `pkginfo reads PKG-INFO and METADATA from source distributions,
wheels and eggs without building or installing them.

Supported files:
  .tar .tar.gz .tgz .tar.bz2 .tbz .tar.xz .txz .tar.lzma .tar.zst .zip
  .whl
  .egg

Exit Codes:
  0 - Success
  1 - At least one file could not be read`,
		SilenceUsage: true,
	}

	root.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")

	root.AddCommand(newShowCommand())
	root.AddCommand(newVersionCommand())
	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}

// loggerFor returns a logger on the command's stderr honouring --verbose.
func loggerFor(cmd *cobra.Command) logging.Logger {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose = false
	}
	return logging.NewWriterLogger(cmd.ErrOrStderr(), verbose)
}
