package validation

import (
	"fmt"
	"net/url"
	"path"
	"strings"
)

// ValidateMediaURL checks that raw is a usable media URL within the given
// length bounds.
func ValidateMediaURL(raw string, minLen, maxLen int) error {
	raw = strings.TrimSpace(raw)
	if len(raw) < minLen {
		return fmt.Errorf("URL too short: %d characters, minimum %d", len(raw), minLen)
	}
	if len(raw) > maxLen {
		return fmt.Errorf("URL too long: %d characters, maximum %d", len(raw), maxLen)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL must use http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("URL has no host")
	}

	return nil
}

// HasMediaExtension reports whether the URL path ends in one of the known
// media extensions. Streaming URLs without an extension are common, so this
// is advisory, not a hard gate.
func HasMediaExtension(raw string, extensions []string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}

	ext := strings.ToLower(path.Ext(u.Path))
	if ext == "" {
		return false
	}

	for _, e := range extensions {
		if ext == strings.ToLower(e) {
			return true
		}
	}
	return false
}

// ValidateSplitParams checks CLI-supplied threshold parameters before any
// cryptographic work happens.
func ValidateSplitParams(threshold, shares int) error {
	if shares < 2 || shares > 255 {
		return fmt.Errorf("shares must be between 2 and 255 (got %d)", shares)
	}
	if threshold < 2 || threshold > shares {
		return fmt.Errorf("threshold must be between 2 and %d (got %d)", shares, threshold)
	}
	return nil
}
