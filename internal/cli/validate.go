package cli

import (
	"github.com/jaki95/audio-downloader/internal/media"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate URL...",
		Short: "Check whether URLs are supported YouTube or SoundCloud URLs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			invalid := 0
			for _, url := range args {
				source := media.DetectSource(url)
				if source == media.SourceUnknown {
					invalid++
					errorBanner.Fprintf(cmd.OutOrStdout(), "✖ %s\n", url)
					continue
				}
				okMark.Fprintf(cmd.OutOrStdout(), "✔ %s (%s)\n", url, source)
			}
			if invalid > 0 {
				errorBanner.Fprintln(cmd.ErrOrStderr(), media.InvalidURLMessage)
				return errReported
			}
			return nil
		},
	}
}
