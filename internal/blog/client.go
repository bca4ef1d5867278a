// Package blog adapts the author's Medium feed, served through rss2json,
// into display-ready posts.
package blog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/daaffalbari/portfolio/internal/metrics"
)

const (
	DefaultAPIURL = "https://api.rss2json.com/v1/api.json"

	// slugSearchDepth is how many recent posts PostBySlug looks through.
	slugSearchDepth = 20

	feedCacheKey = "feed"
)

var ErrPostNotFound = errors.New("post not found")

// Client fetches and caches the feed.
type Client struct {
	feedURL    string
	httpClient *http.Client
	cache      *cache.Cache
}

type Option func(*clientOptions)

type clientOptions struct {
	apiURL     string
	httpClient *http.Client
	ttl        time.Duration
}

// WithAPIURL overrides the rss2json endpoint.
func WithAPIURL(u string) Option {
	return func(o *clientOptions) { o.apiURL = u }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(o *clientOptions) { o.httpClient = hc }
}

// WithCacheTTL sets how long a fetched feed is reused. Zero disables caching.
func WithCacheTTL(ttl time.Duration) Option {
	return func(o *clientOptions) { o.ttl = ttl }
}

// NewClient creates a client for the Medium user.
func NewClient(user string, opts ...Option) *Client {
	o := clientOptions{
		apiURL:     DefaultAPIURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		ttl:        time.Hour,
	}
	for _, opt := range opts {
		opt(&o)
	}

	c := &Client{
		feedURL:    o.apiURL + "?" + url.Values{"rss_url": {"https://medium.com/feed/@" + user}}.Encode(),
		httpClient: o.httpClient,
	}
	if o.ttl > 0 {
		c.cache = cache.New(o.ttl, 10*time.Minute)
	}
	return c
}

// ProfileURL returns the public Medium profile of user.
func ProfileURL(user string) string {
	return "https://medium.com/@" + user
}

// Posts returns up to limit of the newest posts.
func (c *Client) Posts(ctx context.Context, limit int) ([]Post, error) {
	posts, err := c.feed(ctx)
	if err != nil {
		return nil, err
	}
	if limit >= 0 && limit < len(posts) {
		posts = posts[:limit]
	}
	return append([]Post(nil), posts...), nil
}

// PostBySlug finds a recent post by its slug.
func (c *Client) PostBySlug(ctx context.Context, slug string) (*Post, error) {
	posts, err := c.Posts(ctx, slugSearchDepth)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		if posts[i].Slug == slug {
			return &posts[i], nil
		}
	}
	return nil, ErrPostNotFound
}

func (c *Client) feed(ctx context.Context) ([]Post, error) {
	if c.cache != nil {
		if x, found := c.cache.Get(feedCacheKey); found {
			metrics.BlogFeedFetchesTotal.WithLabelValues("cached").Inc()
			return x.([]Post), nil
		}
	}

	posts, err := c.fetch(ctx)
	if err != nil {
		metrics.BlogFeedFetchesTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.BlogFeedFetchesTotal.WithLabelValues("ok").Inc()

	if c.cache != nil {
		c.cache.Set(feedCacheKey, posts, cache.DefaultExpiration)
	}
	return posts, nil
}

func (c *Client) fetch(ctx context.Context) ([]Post, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating feed request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("fetching feed: unexpected status %d", resp.StatusCode)
	}

	var feed feedResponse
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("decoding feed: %w", err)
	}
	if feed.Status != "ok" {
		return nil, fmt.Errorf("feed status %q", feed.Status)
	}

	posts := make([]Post, 0, len(feed.Items))
	for _, it := range feed.Items {
		posts = append(posts, toPost(it))
	}
	return posts, nil
}
