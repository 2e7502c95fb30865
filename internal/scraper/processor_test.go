package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "strips tags and keeps paragraphs",
			in:   "<p>First paragraph.</p><p>Second &amp; last.</p>",
			want: "First paragraph.\nSecond & last.",
		},
		{
			name: "collapses whitespace",
			in:   "some   \t spaced \n\n\n\n text",
			want: "some spaced\ntext",
		},
		{
			name: "empty",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.in))
		})
	}
}

func TestCanonicalizeURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "strips tracking params and fragment",
			in:   "HTTPS://Example.com/Article/?utm_source=x&fbclid=abc&id=7#frag",
			want: "https://example.com/Article?id=7",
		},
		{
			name: "removes trailing slash",
			in:   "https://example.com/news/story/",
			want: "https://example.com/news/story",
		},
		{
			name: "unparseable returned as-is",
			in:   "://not a url",
			want: "://not a url",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanonicalizeURL(tt.in))
		})
	}
}

func TestHashURL(t *testing.T) {
	// Tracking params must not change the hash.
	a := HashURL("https://example.com/story?utm_source=tw")
	b := HashURL("https://example.com/story")
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)

	assert.NotEqual(t, HashURL("https://example.com/story"), HashURL("https://example.com/other"))
}
