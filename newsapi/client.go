// Package newsapi implements newsgenie.NewsService against newsapi.org.
package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/newsgenie"
	"github.com/tidwall/gjson"
)

// DefaultBaseURL is the newsapi.org v2 endpoint.
const DefaultBaseURL = "https://newsapi.org/v2"

// PageSize is the number of articles requested per call.
const PageSize = 20

// Ensure Client implements newsgenie.NewsService at compile time.
var _ newsgenie.NewsService = (*Client)(nil)

// Client queries newsapi.org.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides DefaultBaseURL.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// NewClient creates a new Client authenticating with apiKey.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TopHeadlines returns English top headlines, optionally for one category.
func (c *Client) TopHeadlines(ctx context.Context, category string) (*newsgenie.ArticleList, error) {
	if !newsgenie.ValidCategory(category) {
		return nil, newsgenie.Errorf(newsgenie.EINVALID, "unknown category %q", category)
	}

	q := url.Values{}
	q.Set("language", "en")
	if category != "" {
		q.Set("category", category)
	}
	return c.get(ctx, "/top-headlines", q)
}

// Search returns articles matching query.
func (c *Client) Search(ctx context.Context, query string) (*newsgenie.ArticleList, error) {
	if strings.TrimSpace(query) == "" {
		return nil, newsgenie.Errorf(newsgenie.EINVALID, "Missing q")
	}

	q := url.Values{}
	q.Set("q", query)
	return c.get(ctx, "/everything", q)
}

func (c *Client) get(ctx context.Context, path string, q url.Values) (*newsgenie.ArticleList, error) {
	q.Set("pageSize", strconv.Itoa(PageSize))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, newsgenie.Errorf(newsgenie.EUNAVAILABLE, "NewsAPI request failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, fmt.Errorf("read newsapi response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := gjson.GetBytes(body, "message").String()
		if msg == "" {
			msg = strings.TrimSpace(string(body))
		}
		if resp.StatusCode == http.StatusTooManyRequests {
			return nil, newsgenie.Errorf(newsgenie.ERATELIMIT, "NewsAPI error: %s", msg)
		}
		return nil, newsgenie.Errorf(newsgenie.EUNAVAILABLE, "NewsAPI error: %s", msg)
	}

	var list newsgenie.ArticleList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("decode newsapi response: %w", err)
	}
	if list.Articles == nil {
		list.Articles = []*newsgenie.Article{}
	}
	return &list, nil
}
