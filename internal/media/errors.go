package media

import "errors"

var (
	ErrInvalidURL     = errors.New("invalid media url")
	ErrUnknownFormat  = errors.New("unknown audio format")
	ErrUnknownBitrate = errors.New("unknown bitrate")
)

// InvalidURLMessage is shown to the user whenever a URL fails validation.
const InvalidURLMessage = "Please enter a valid YouTube or SoundCloud URL"

// InvalidURLError reports a URL rejected by ValidateURL. Malformed URLs and
// unsupported hosts are reported identically.
type InvalidURLError struct {
	URL string
}

func (e *InvalidURLError) Error() string {
	return InvalidURLMessage
}

func (e *InvalidURLError) Unwrap() error {
	return ErrInvalidURL
}
