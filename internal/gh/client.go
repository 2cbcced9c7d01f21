// Package gh is a minimal GitHub REST client covering the three resources
// the aggregator needs: file contents, recursive tree listings, and paginated
// collections. Every response is cached on disk keyed by the request URL, so
// a repeated fetch of the same resource makes no network call.
package gh

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/martinmagala/repo2prompt/internal/cache"
	"github.com/martinmagala/repo2prompt/internal/logging"
)

const (
	// DefaultBaseURL is the hosted GitHub API endpoint.
	DefaultBaseURL = "https://api.github.com"
	// DefaultBranch is the branch used for tree lookups when none is given.
	// There is no discovery of the repository's actual default branch.
	DefaultBranch = "main"
	// DefaultPerPage is the page size for paginated collection fetches.
	DefaultPerPage = 100
)

// StatusError is returned for any non-success HTTP response. There are no
// automatic retries; the caller re-invokes and the cache skips what already
// succeeded.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s returned %d", e.URL, e.StatusCode)
}

// Client fetches GitHub API resources through an on-disk cache.
// The aggregation flow uses the single-object operations (Contents, Tree);
// FetchPaged is the retrieval path for collection endpoints, which paginate.
// HTTPClient may be nil to use a default client with a request timeout.
type Client struct {
	BaseURL    string
	Token      string // optional bearer token
	PerPage    int
	HTTPClient *http.Client
	Cache      *cache.Dir
}

// NewClient returns a client writing through the given cache directory.
func NewClient(token string, dir *cache.Dir) *Client {
	return &Client{
		BaseURL:    DefaultBaseURL,
		Token:      token,
		PerPage:    DefaultPerPage,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		Cache:      dir,
	}
}

// TreeEntry is a single entry of a recursive tree listing.
type TreeEntry struct {
	Path string `json:"path"`
	Type string `json:"type"` // "blob" for files, "tree" for directories
}

// Tree is one snapshot of a repository's full recursive file listing at a
// fixed branch. Two trees are equivalent iff their SHA fields match.
type Tree struct {
	SHA     string      `json:"sha"`
	Entries []TreeEntry `json:"tree"`
}

// Tree fetches the recursive tree descriptor for ref at branch.
func (c *Client) Tree(ctx context.Context, ref Ref, branch string) (*Tree, error) {
	if branch == "" {
		branch = DefaultBranch
	}
	u := fmt.Sprintf("%s/repos/%s/%s/git/trees/%s?recursive=1", c.BaseURL, ref.Owner, ref.Name, branch)
	var tree Tree
	if err := c.fetchObject(ctx, u, &tree); err != nil {
		return nil, err
	}
	return &tree, nil
}

// Contents fetches a single file through the contents API and decodes its
// base64 body.
func (c *Client) Contents(ctx context.Context, ref Ref, path string) (string, error) {
	u := fmt.Sprintf("%s/repos/%s/%s/contents/%s", c.BaseURL, ref.Owner, ref.Name, path)
	var raw struct {
		Content  string `json:"content"`
		Encoding string `json:"encoding"`
	}
	if err := c.fetchObject(ctx, u, &raw); err != nil {
		return "", err
	}
	// The API wraps base64 bodies with newlines.
	decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(raw.Content, "\n", ""))
	if err != nil {
		return "", fmt.Errorf("decode base64 content for %s: %w", path, err)
	}
	return string(decoded), nil
}

// FetchPaged retrieves a collection resource page by page (page=1,2,…),
// strictly sequentially, until a page returns fewer items than the page
// size. The assembled collection is cached under the base URL, without page
// parameters, so a repeat call makes no requests at all.
func (c *Client) FetchPaged(ctx context.Context, baseURL string) ([]json.RawMessage, error) {
	key := cache.Key(baseURL)
	var items []json.RawMessage
	if hit, err := c.Cache.Load(key, &items); err != nil {
		return nil, err
	} else if hit {
		logging.New("gh").Debug("cache hit", "url", baseURL)
		return items, nil
	}

	perPage := c.PerPage
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	page := 1
	for {
		u := fmt.Sprintf("%s?per_page=%d&page=%d", baseURL, perPage, page)
		var pageItems []json.RawMessage
		if err := c.getJSON(ctx, u, &pageItems); err != nil {
			return nil, err
		}
		items = append(items, pageItems...)
		if len(pageItems) < perPage {
			break
		}
		page++
	}

	if err := c.Cache.Store(key, items); err != nil {
		return nil, err
	}
	return items, nil
}

// fetchObject retrieves a single JSON resource through the cache into v.
func (c *Client) fetchObject(ctx context.Context, url string, v any) error {
	key := cache.Key(url)
	if hit, err := c.Cache.Load(key, v); err != nil {
		return err
	} else if hit {
		logging.New("gh").Debug("cache hit", "url", url)
		return nil
	}
	if err := c.getJSON(ctx, url, v); err != nil {
		return err
	}
	return c.Cache.Store(key, v)
}

func (c *Client) getJSON(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{URL: url, StatusCode: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response from %s: %w", url, err)
	}
	return nil
}
