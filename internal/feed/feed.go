// ABOUTME: Fetcher contract and Mastodon-compatible client returning recent posts
// ABOUTME: Looks up the account id, then pages statuses newest-first via max_id

package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mailru/easyjson"
	"github.com/rs/zerolog/log"

	pdhttp "github.com/mauromedda/postdash/internal/http"
)

// ErrHTTPStatus is wrapped when the server answers with a non-200 status.
var ErrHTTPStatus = errors.New("unexpected HTTP status")

// MaxPageSize is the largest page the statuses endpoint returns.
const MaxPageSize = 40

// maxBody caps a single response body.
const maxBody = 5 * 1024 * 1024

// Post is one fetched status.
type Post struct {
	Date time.Time
	Text string
}

// Fetcher returns up to limit posts for handle, newest first.
type Fetcher interface {
	FetchPosts(ctx context.Context, handle string, limit int) ([]Post, error)
}

// FormatPost renders a post as a single display row: "YYYY-MM-DD,<text>".
func FormatPost(p Post) string {
	return p.Date.UTC().Format("2006-01-02") + "," + p.Text
}

// StatusClient implements Fetcher against the Mastodon REST API.
type StatusClient struct {
	BaseURL   string
	UserAgent string
	HTTP      *http.Client
}

// NewStatusClient creates a client for baseURL with the given request timeout.
func NewStatusClient(baseURL, userAgent string, timeout time.Duration) *StatusClient {
	return &StatusClient{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		UserAgent: userAgent,
		HTTP:      pdhttp.NewClient(timeout),
	}
}

// FetchPosts resolves handle to an account id and collects its statuses.
func (c *StatusClient) FetchPosts(ctx context.Context, handle string, limit int) ([]Post, error) {
	handle = strings.TrimPrefix(handle, "@")
	if handle == "" {
		return nil, errors.New("empty handle")
	}
	if limit <= 0 {
		return nil, nil
	}

	var acct accountRef
	q := url.Values{"acct": {handle}}
	if err := c.get(ctx, "/api/v1/accounts/lookup?"+q.Encode(), &acct); err != nil {
		return nil, fmt.Errorf("looking up %s: %w", handle, err)
	}
	if acct.ID == "" {
		return nil, fmt.Errorf("looking up %s: no account id", handle)
	}

	posts := make([]Post, 0, min(limit, MaxPageSize))
	maxID := ""
	for len(posts) < limit {
		page := min(limit-len(posts), MaxPageSize)
		q := url.Values{"limit": {strconv.Itoa(page)}}
		if maxID != "" {
			q.Set("max_id", maxID)
		}

		var list statusList
		path := "/api/v1/accounts/" + url.PathEscape(acct.ID) + "/statuses?" + q.Encode()
		if err := c.get(ctx, path, &list); err != nil {
			return nil, fmt.Errorf("fetching statuses for %s: %w", handle, err)
		}
		if len(list) == 0 {
			break
		}
		for _, s := range list {
			if len(posts) == limit {
				break
			}
			p, err := toPost(s)
			if err != nil {
				log.Debug().Err(err).Str("handle", handle).Str("id", s.ID).Msg("skipping status")
				continue
			}
			posts = append(posts, p)
		}
		// A server that ignores max_id would hand back the same page forever.
		next := list[len(list)-1].ID
		if next == "" || next == maxID {
			break
		}
		maxID = next
	}
	return posts, nil
}

func toPost(s status) (Post, error) {
	body := s.Content
	if body == "" && s.Reblog != nil {
		body = s.Reblog.Content
	}
	date, err := time.Parse(time.RFC3339, s.CreatedAt)
	if err != nil {
		return Post{}, fmt.Errorf("parsing created_at: %w", err)
	}
	return Post{Date: date, Text: PlainText(body)}, nil
}

func (c *StatusClient) get(ctx context.Context, path string, v easyjson.Unmarshaler) error {
	u := c.BaseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w %d from %s", ErrHTTPStatus, resp.StatusCode, u)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if err := easyjson.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
