package collect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNoise(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		title   string
		snippet string
		want    bool
	}{
		{
			name:  "normal article",
			url:   "https://example.com/news/protest-coverage-2026",
			title: "Coordinated posts target election coverage",
			want:  false,
		},
		{
			name: "reddit listing page",
			url:  "https://www.reddit.com/r/worldnews/",
			want: true,
		},
		{
			name:  "reddit post",
			url:   "https://www.reddit.com/r/worldnews/comments/abc123/some_post/",
			title: "Discussion of campaign activity",
			want:  false,
		},
		{
			name: "site homepage",
			url:  "https://example.com",
			want: true,
		},
		{
			name: "homepage with trailing slash",
			url:  "https://example.com/",
			want: true,
		},
		{
			name:  "nsfw title",
			url:   "https://example.com/post/1",
			title: "NSFW leaks compilation",
			want:  true,
		},
		{
			name:    "clickbait snippet",
			url:     "https://example.com/post/2",
			snippet: "This weight loss secret doctors hate",
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsNoise(tt.url, tt.title, tt.snippet))
		})
	}
}

func TestIsRedditListing(t *testing.T) {
	assert.True(t, isRedditListing("https://www.reddit.com/r/india/"))
	assert.False(t, isRedditListing("https://www.reddit.com/r/india/comments/xyz/title/"))
	assert.False(t, isRedditListing("https://example.com/r/india/"))
}
