package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jaki95/audio-downloader/internal/faq"
	"github.com/jaki95/audio-downloader/internal/form"
	"github.com/jaki95/audio-downloader/internal/media"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

const spinnerInterval = 100 * time.Millisecond

type downloadOptions struct {
	url     string
	format  string
	bitrate int
	delay   time.Duration
}

func newDownloadCmd() *cobra.Command {
	opts := &downloadOptions{}

	cmd := &cobra.Command{
		Use:   "download",
		Short: "Request audio from a YouTube or SoundCloud URL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDownload(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.url, "url", "u", "", "YouTube or SoundCloud URL")
	cmd.Flags().StringVarP(&opts.format, "format", "f", string(media.DefaultFormat), "output format (mp3, aac, wav)")
	cmd.Flags().IntVarP(&opts.bitrate, "bitrate", "b", int(media.DefaultBitrate), "bitrate in kbps (128, 256, 320)")
	cmd.Flags().DurationVar(&opts.delay, "delay", form.DefaultDelay, "duration of the simulated request")
	_ = cmd.Flags().MarkHidden("delay")

	return cmd
}

func runDownload(cmd *cobra.Command, opts *downloadOptions) error {
	format, err := media.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	bitrate, err := media.ParseBitrate(fmt.Sprint(opts.bitrate))
	if err != nil {
		return err
	}

	f := form.New(form.WithDelay(opts.delay))
	f.SetURL(opts.url)
	f.SetFormat(format)
	f.SetBitrate(bitrate)

	out := cmd.OutOrStdout()
	if err := f.Submit(); err != nil {
		if errors.Is(err, media.ErrInvalidURL) {
			errorBanner.Fprintf(cmd.ErrOrStderr(), "✖ %s\n", f.State().Error)
			return errReported
		}
		return err
	}

	state := f.State()
	heading.Fprintf(out, "%s · %s · %s\n", state.URL, state.Format.Label(), state.Bitrate.Label())

	if err := spin(cmd.Context(), f, out); err != nil {
		return err
	}

	notice.Fprintf(out, "⚠ %s\n", faq.CopyrightNotice)
	return nil
}

// spin shows a spinner until the form leaves the loading state
func spin(ctx context.Context, f *form.Controller, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	bar := progressbar.NewOptions(
		-1,
		progressbar.OptionSetWriter(out),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetDescription("[cyan]Processing...[reset]"),
		progressbar.OptionClearOnFinish(),
	)

	done := make(chan error, 1)
	go func() {
		done <- f.Wait(ctx)
	}()

	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()
	for {
		select {
		case err := <-done:
			_ = bar.Finish()
			return err
		case <-ticker.C:
			_ = bar.Add(1)
		}
	}
}
