// Package scrapbox fetches page lines from the Scrapbox REST API.
package scrapbox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/MijinkoSD/sbcode/internal/codeblock"
)

const defaultBaseURL = "https://scrapbox.io"

// ErrNotFound is returned (wrapped) when the requested page does not exist,
// so callers can tell a missing page from a page without code blocks.
var ErrNotFound = errors.New("page not found")

// Client talks to the Scrapbox page API. The zero value is usable and
// targets scrapbox.io anonymously.
type Client struct {
	// BaseURL overrides the API host, e.g. for self-hosted instances.
	BaseURL string
	// SessionID is the connect.sid cookie value for private projects.
	SessionID string
	// HTTPClient defaults to a client with a 30s timeout.
	HTTPClient *http.Client
}

// New returns a Client for the given base URL (empty means scrapbox.io)
// authenticated with sessionID (empty means anonymous).
func New(baseURL, sessionID string) *Client {
	return &Client{BaseURL: baseURL, SessionID: sessionID}
}

// Page is the subset of the page API response this tool reads.
type Page struct {
	ID      string           `json:"id"`
	Title   string           `json:"title"`
	Created int64            `json:"created"`
	Updated int64            `json:"updated"`
	Persist bool             `json:"persistent"`
	Lines   []codeblock.Line `json:"lines"`
}

// apiError is the JSON body Scrapbox returns for failed requests.
type apiError struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

// Page fetches a page by project and title. A 404 wraps ErrNotFound.
func (c *Client) Page(ctx context.Context, project, title string) (*Page, error) {
	endpoint := fmt.Sprintf("%s/api/pages/%s/%s?followRename=true",
		c.baseURL(), url.PathEscape(project), url.PathEscape(title))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	if c.SessionID != "" {
		req.AddCookie(&http.Cookie{Name: "connect.sid", Value: c.SessionID})
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s/%s: %w", project, title, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.statusError(resp, project, title)
	}

	var page Page

	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("decode page %s/%s: %w", project, title, err)
	}

	return &page, nil
}

func (c *Client) statusError(resp *http.Response, project, title string) error {
	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s/%s: %w", project, title, ErrNotFound)
	}

	var body apiError

	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Message != "" {
		return fmt.Errorf("fetch %s/%s: %s (%s)", project, title, body.Message, resp.Status)
	}

	return fmt.Errorf("fetch %s/%s: unexpected status %s", project, title, resp.Status)
}

func (c *Client) baseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}

	return defaultBaseURL
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}

	return &http.Client{Timeout: 30 * time.Second}
}

// PageRef is the by-title supply mode: a page identified by project and
// title, fetched when Lines is called. It implements codeblock.Source.
type PageRef struct {
	Client  *Client
	Project string
	Title   string
}

// Lines fetches the referenced page and returns its lines.
func (r PageRef) Lines(ctx context.Context) ([]codeblock.Line, error) {
	page, err := r.Client.Page(ctx, r.Project, r.Title)
	if err != nil {
		return nil, err
	}

	return page.Lines, nil
}
