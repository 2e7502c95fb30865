package detect

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// reTag matches HTML tags.
var reTag = regexp.MustCompile(`<[^>]*>`)

// entityReplacer decodes the HTML entities that commonly survive in feed
// snippets and scraped article bodies.
var entityReplacer = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
	"&apos;", "'",
	"&nbsp;", " ",
)

// Normalize turns raw article/post text into a lowercase token sequence. It
// strips markup, decodes common entities, lowercases, splits on
// non-alphanumeric boundaries (Unicode-aware, so Devanagari and Arabic-script
// terms tokenize too), and drops empty tokens. The function is pure: the same
// input always yields the same tokens. Input that is not valid UTF-8 returns
// ErrBadEncoding.
func Normalize(raw string) ([]string, error) {
	if !utf8.ValidString(raw) {
		return nil, ErrBadEncoding
	}
	if raw == "" {
		return nil, nil
	}

	text := reTag.ReplaceAllString(raw, " ")
	text = entityReplacer.Replace(text)
	text = strings.ToLower(text)

	tokens := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return tokens, nil
}
