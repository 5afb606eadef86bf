package media

import (
	"fmt"
	"strconv"
)

// Format is the requested output container/codec.
type Format string

const (
	FormatMP3 Format = "mp3"
	FormatAAC Format = "aac"
	FormatWAV Format = "wav"
)

// DefaultFormat is selected when a form is first created.
const DefaultFormat = FormatMP3

// Formats lists the selectable formats in display order.
var Formats = []Format{FormatMP3, FormatAAC, FormatWAV}

// Label returns the name shown in the format selector.
func (f Format) Label() string {
	switch f {
	case FormatMP3:
		return "MP3"
	case FormatAAC:
		return "AAC"
	case FormatWAV:
		return "WAV"
	}
	return string(f)
}

// ParseFormat converts a selector value into a Format.
func ParseFormat(value string) (Format, error) {
	for _, f := range Formats {
		if string(f) == value {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, value)
}

// Bitrate is the requested output bitrate in kbps.
type Bitrate int

const (
	Bitrate128 Bitrate = 128
	Bitrate256 Bitrate = 256
	Bitrate320 Bitrate = 320
)

// DefaultBitrate is selected when a form is first created.
const DefaultBitrate = Bitrate320

// Bitrates lists the selectable bitrates in display order.
var Bitrates = []Bitrate{Bitrate128, Bitrate256, Bitrate320}

// Value returns the selector value, e.g. "320".
func (b Bitrate) Value() string {
	return strconv.Itoa(int(b))
}

// Label returns the text shown in the bitrate selector, e.g. "320 kbps".
func (b Bitrate) Label() string {
	return fmt.Sprintf("%d kbps", int(b))
}

// ParseBitrate converts a selector value into a Bitrate.
func ParseBitrate(value string) (Bitrate, error) {
	for _, b := range Bitrates {
		if b.Value() == value {
			return b, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownBitrate, value)
}
