// Package cli is the terminal front-end for the download form.
package cli

import (
	"errors"
	"io"

	"github.com/fatih/color"
	"github.com/k0kubun/go-ansi"
	"github.com/spf13/cobra"
)

// errReported marks failures already shown to the user
var errReported = errors.New("reported")

var (
	errorBanner = color.New(color.FgRed, color.Bold)
	okMark      = color.New(color.FgGreen)
	notice      = color.New(color.FgBlue)
	heading     = color.New(color.Bold)
)

// NewRootCmd builds the audiodl command tree writing to out and errOut
func NewRootCmd(out, errOut io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "audiodl",
		Short:         "Audio downloader for YouTube & SoundCloud",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.SetErr(errOut)

	root.AddCommand(
		newDownloadCmd(),
		newValidateCmd(),
		newFAQCmd(),
	)
	return root
}

// Execute runs the command tree against the process arguments and returns
// the exit code
func Execute() int {
	root := NewRootCmd(ansi.NewAnsiStdout(), ansi.NewAnsiStderr())
	if err := root.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			errorBanner.Fprintf(root.ErrOrStderr(), "Error: %v\n", err)
		}
		return 1
	}
	return 0
}
