package collect

import (
	"regexp"
	"strings"
)

// IsNoise returns true if the URL/title/snippet indicate NSFW, clickbait, or
// otherwise unusable content. Applied before items enter the pipeline.
func IsNoise(url, title, snippet string) bool {
	lower := strings.ToLower(title + " " + snippet + " " + url)

	// Reddit subreddit homepages and listings (not actual posts)
	if isRedditListing(url) {
		return true
	}

	// Generic homepages / aggregator fronts
	if isGenericHomepage(url) {
		return true
	}

	for _, pat := range nsfwPatterns {
		if strings.Contains(lower, pat) {
			return true
		}
	}

	for _, pat := range spamPatterns {
		if strings.Contains(lower, pat) {
			return true
		}
	}

	return false
}

// redditPostRe matches actual Reddit post URLs: /r/sub/comments/id/...
var redditPostRe = regexp.MustCompile(`/r/[^/]+/comments/`)

// isRedditListing returns true for Reddit subreddit home pages and non-post URLs.
func isRedditListing(rawURL string) bool {
	lower := strings.ToLower(rawURL)
	if !strings.Contains(lower, "reddit.com") {
		return false
	}
	// Actual posts have /r/{sub}/comments/{id}/ — anything else is a listing
	return !redditPostRe.MatchString(lower)
}

// isGenericHomepage detects site front pages with no specific article path.
func isGenericHomepage(rawURL string) bool {
	lower := strings.ToLower(rawURL)
	for _, prefix := range []string{"https://", "http://", "www."} {
		lower = strings.TrimPrefix(lower, prefix)
	}
	parts := strings.SplitN(lower, "/", 2)
	if len(parts) < 2 || parts[1] == "" || parts[1] == "/" {
		return true
	}
	return false
}

// nsfwPatterns catch pornographic, adult, and NSFW content.
var nsfwPatterns = []string{
	"onlyfans", "onlyfan", "fansly", "chaturbate", "manyvids",
	"porn", "nsfw", "xxx", "nude", "nudes", "leaks",
	"gonewild", "rule34", "hentai", "milf", "fetish",
}

// spamPatterns catch clickbait and low-quality content.
var spamPatterns = []string{
	"blind bags", "mystery box", "unboxing haul",
	"free v-bucks", "free robux",
	"crypto pump", "bitcoin millionaire",
	"weight loss secret", "diet pill",
	"you won't believe", "number 7 will shock",
	"astrology prediction", "horoscope today",
	"news.google.com/stories",
}
