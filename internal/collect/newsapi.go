package collect

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const newsAPIBase = "https://newsapi.org/v2"

// NewsAPI is an HTTP client for the newsapi.org /v2/everything endpoint.
// A client with an empty API key is disabled and collects nothing.
type NewsAPI struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewNewsAPI creates a NewsAPI collector. An empty apiKey disables it.
func NewNewsAPI(apiKey string) *NewsAPI {
	return &NewsAPI{
		apiKey:  apiKey,
		baseURL: newsAPIBase,
		httpClient: &http.Client{
			Timeout: collectTimeout,
		},
	}
}

func (*NewsAPI) Name() string { return "newsapi" }

// newsAPIResponse is the JSON response from GET /v2/everything.
type newsAPIResponse struct {
	Status   string           `json:"status"`
	Code     string           `json:"code"`
	Message  string           `json:"message"`
	Articles []newsAPIArticle `json:"articles"`
}

type newsAPIArticle struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Content     string `json:"content"`
	PublishedAt string `json:"publishedAt"`
}

func (c *NewsAPI) Collect(ctx context.Context, queries []string, limit int) ([]Item, error) {
	if c.apiKey == "" {
		return nil, nil
	}

	var out []Item
	for _, query := range queries {
		if len(out) >= limit || ctx.Err() != nil {
			break
		}

		articles, err := c.everything(ctx, query)
		if err != nil {
			return out, fmt.Errorf("collect/newsapi: query %q: %w", query, err)
		}

		for _, a := range articles {
			if len(out) >= limit {
				break
			}
			if a.URL == "" {
				continue
			}
			if IsNoise(a.URL, a.Title, a.Description) {
				continue
			}

			snippet := a.Content
			if snippet == "" {
				snippet = a.Description
			}

			var published time.Time
			if t, err := time.Parse(time.RFC3339, a.PublishedAt); err == nil {
				published = t
			}

			out = append(out, Item{
				Source:    c.Name(),
				Title:     a.Title,
				URL:       a.URL,
				Snippet:   truncateStr(snippet, 500),
				Published: published,
			})
		}
	}

	return out, ctx.Err()
}

// everything performs a GET to /v2/everything for one query, newest first.
func (c *NewsAPI) everything(ctx context.Context, query string) ([]newsAPIArticle, error) {
	ctx, cancel := context.WithTimeout(ctx, collectTimeout)
	defer cancel()

	params := url.Values{}
	params.Set("q", query)
	params.Set("language", "en")
	params.Set("sortBy", "publishedAt")
	params.Set("pageSize", "50")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/everything?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, string(respBody))
	}

	var result newsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if result.Status != "ok" {
		return nil, fmt.Errorf("api error %s: %s", result.Code, result.Message)
	}

	return result.Articles, nil
}
