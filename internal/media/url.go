package media

import (
	"regexp"
	"strings"
)

// Source identifies the platform a URL points at.
type Source string

const (
	SourceYouTube    Source = "youtube"
	SourceSoundCloud Source = "soundcloud"
	SourceUnknown    Source = "unknown"
)

var (
	youtubeRegex    = regexp.MustCompile(`^(https?://)?(www\.)?(youtube\.com|youtu\.be)/.+$`)
	soundcloudRegex = regexp.MustCompile(`^(https?://)?(www\.)?soundcloud\.com/.+$`)
)

// ValidateURL reports whether the trimmed url matches one of the supported
// host patterns. Matching is case sensitive and does not check that the
// resource exists.
func ValidateURL(url string) bool {
	return DetectSource(url) != SourceUnknown
}

// DetectSource returns the platform whose pattern matches url.
func DetectSource(url string) Source {
	url = strings.TrimSpace(url)
	switch {
	case youtubeRegex.MatchString(url):
		return SourceYouTube
	case soundcloudRegex.MatchString(url):
		return SourceSoundCloud
	default:
		return SourceUnknown
	}
}

// CheckURL returns an *InvalidURLError when url fails ValidateURL.
func CheckURL(url string) error {
	if !ValidateURL(url) {
		return &InvalidURLError{URL: url}
	}
	return nil
}
