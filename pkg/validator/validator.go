package validator

import (
	"net/url"
	"strings"
)

// ValidateURL checks that a string is a usable redirect target. Note that
// validation is the only inspection the URL ever gets: the value is stored
// and matched byte-exact, with no case folding, trailing-slash stripping, or
// scheme defaulting.
func ValidateURL(urlStr string) error {
	if strings.TrimSpace(urlStr) == "" {
		return ErrEmptyURL
	}

	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return ErrInvalidURL
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return ErrInvalidScheme
	}

	if parsedURL.Host == "" {
		return ErrInvalidHost
	}

	return nil
}
