package cli

import (
	"fmt"

	"github.com/jaki95/audio-downloader/internal/faq"
	"github.com/spf13/cobra"
)

func newFAQCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "faq",
		Short: "Show frequently asked questions",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			heading.Fprintln(out, "Frequently Asked Questions")
			for _, entry := range faq.Entries {
				fmt.Fprintln(out)
				heading.Fprintln(out, entry.Question)
				fmt.Fprintln(out, entry.Answer)
			}
		},
	}
}
