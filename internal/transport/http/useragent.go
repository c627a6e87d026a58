package httptransport

import (
	"strings"

	"github.com/mssola/useragent"
)

// ParseUserAgent returns a short "Browser on OS" description for session
// logs, or "Unknown Device" for an empty header.
func ParseUserAgent(ua string) string {
	if strings.TrimSpace(ua) == "" {
		return "Unknown Device"
	}
	parsed := useragent.New(ua)
	browser, _ := parsed.Browser()
	if browser == "" {
		browser = "Unknown Browser"
	}
	platform := parsed.OS()
	if platform == "" {
		platform = "Unknown OS"
	}
	return browser + " on " + platform
}
