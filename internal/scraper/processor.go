package scraper

import (
	"crypto/sha256"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// trackingParams is the set of URL query parameters commonly used for tracking
// that should be stripped during canonicalization.
var trackingParams = map[string]bool{
	"utm_source":   true,
	"utm_medium":   true,
	"utm_campaign": true,
	"utm_term":     true,
	"utm_content":  true,
	"utm_id":       true,
	"fbclid":       true,
	"gclid":        true,
	"gclsrc":       true,
	"dclid":        true,
	"msclkid":      true,
	"twclid":       true,
	"mc_cid":       true,
	"mc_eid":       true,
	"ref":          true,
	"_ga":          true,
	"_gl":          true,
}

// reBlockTag matches closing block-level tags and line breaks, which become
// newlines so paragraph structure survives tag stripping.
var reBlockTag = regexp.MustCompile(`(?i)</(?:p|div|li|h[1-6]|tr|blockquote)>|<br\s*/?>`)

// reHTMLTag matches HTML tags.
var reHTMLTag = regexp.MustCompile(`<[^>]*>`)

// reWhitespace matches sequences of whitespace (spaces, tabs, newlines).
var reWhitespace = regexp.MustCompile(`\s+`)

// reBlankLines matches multiple consecutive newlines (after initial cleanup).
var reBlankLines = regexp.MustCompile(`\n{3,}`)

// CleanText strips HTML tags from the input and normalizes whitespace. It
// preserves paragraph boundaries as single newlines. The detect normalizer
// does its own markup stripping; this cleaner is for human-readable stored
// text and feed snippets.
func CleanText(html string) string {
	if html == "" {
		return ""
	}

	// Replace block-level elements with newlines to preserve paragraph structure.
	text := reBlockTag.ReplaceAllString(html, "\n")

	// Strip all remaining HTML tags.
	text = reHTMLTag.ReplaceAllString(text, "")

	// Decode common HTML entities.
	text = strings.ReplaceAll(text, "&amp;", "&")
	text = strings.ReplaceAll(text, "&lt;", "<")
	text = strings.ReplaceAll(text, "&gt;", ">")
	text = strings.ReplaceAll(text, "&quot;", `"`)
	text = strings.ReplaceAll(text, "&#39;", "'")
	text = strings.ReplaceAll(text, "&apos;", "'")
	text = strings.ReplaceAll(text, "&nbsp;", " ")

	// Normalize whitespace within lines.
	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(reWhitespace.ReplaceAllString(line, " "))
		if trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}

	result := strings.Join(cleaned, "\n")

	// Collapse excessive blank lines.
	result = reBlankLines.ReplaceAllString(result, "\n\n")

	return strings.TrimSpace(result)
}

// CanonicalizeURL normalizes a URL by lowercasing the scheme and host, removing
// tracking parameters (utm_*, fbclid, etc.), removing fragments, and sorting
// query parameters.
func CanonicalizeURL(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return ""
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL // Return as-is if unparseable.
	}

	// Lowercase scheme and host.
	parsed.Scheme = strings.ToLower(parsed.Scheme)
	parsed.Host = strings.ToLower(parsed.Host)

	// Remove fragment.
	parsed.Fragment = ""
	parsed.RawFragment = ""

	// Remove trailing slash from path (unless path is just "/").
	if len(parsed.Path) > 1 {
		parsed.Path = strings.TrimRight(parsed.Path, "/")
	}

	// Filter out tracking query parameters.
	query := parsed.Query()
	for key := range query {
		if trackingParams[strings.ToLower(key)] {
			query.Del(key)
		}
	}

	parsed.RawQuery = query.Encode()

	return parsed.String()
}

// HashContent returns the hex-encoded SHA-256 hash of the given content string.
func HashContent(content string) string {
	h := sha256.Sum256([]byte(content))
	return fmt.Sprintf("%x", h)
}

// HashURL returns the hex-encoded SHA-256 hash of the canonicalized form of the
// given URL.
func HashURL(rawURL string) string {
	canonical := CanonicalizeURL(rawURL)
	return HashContent(canonical)
}

// parseDate tries several common date formats found on article pages.
func parseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}

	formats := []string{
		time.RFC1123Z, // Mon, 02 Jan 2006 15:04:05 -0700
		time.RFC1123,  // Mon, 02 Jan 2006 15:04:05 MST
		time.RFC3339,  // 2006-01-02T15:04:05Z07:00
		time.RFC3339Nano,
		"2006-01-02T15:04:05Z",
		"2006-01-02T15:04:05",
		"2006-01-02",
		"Mon, 2 Jan 2006 15:04:05 -0700",
		"Mon, 2 Jan 2006 15:04:05 MST",
		"02 Jan 2006 15:04:05 -0700",
		"02 Jan 2006 15:04:05 MST",
	}

	for _, f := range formats {
		t, err := time.Parse(f, s)
		if err == nil {
			return t
		}
	}

	return time.Time{}
}
