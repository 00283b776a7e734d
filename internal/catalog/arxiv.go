// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/mmcdole/gofeed"
	"github.com/rs/zerolog"

	"github.com/pdiddy/arxiv-digest/internal/httputil"
	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// arxivAPIBase is the default arXiv search endpoint.
var arxivAPIBase = "https://export.arxiv.org/api/query"

// arxivMaxResults is the largest page the arXiv API serves in one request.
const arxivMaxResults = 2000

// arxivWindowLayout is the submittedDate range format: YYYYMMDDHHMM.
const arxivWindowLayout = "200601021504"

// ArxivCatalog queries the arXiv Atom API.
type ArxivCatalog struct {
	Client *http.Client
	Config types.HTTPConfig
	Log    zerolog.Logger
}

// NewArxivCatalog returns an ArxivCatalog using client for transport.
func NewArxivCatalog(client *http.Client, cfg types.HTTPConfig, log zerolog.Logger) *ArxivCatalog {
	return &ArxivCatalog{Client: client, Config: cfg, Log: log}
}

// Search queries arXiv for keyword, newest submissions first, optionally
// restricted to window. Every failure is returned as *Error.
func (c *ArxivCatalog) Search(ctx context.Context, keyword string, window *types.DateRange, maxResults int) ([]types.Item, error) {
	fail := func(err error) error {
		return &Error{Keyword: keyword, Window: window, Err: err}
	}

	q := buildArxivQuery(keyword, window)
	if q == "" {
		return nil, fail(fmt.Errorf("empty arXiv query"))
	}

	if maxResults <= 0 {
		maxResults = 1
	}
	if maxResults > arxivMaxResults {
		maxResults = arxivMaxResults
	}

	params := url.Values{}
	params.Set("search_query", q)
	params.Set("start", "0")
	params.Set("max_results", strconv.Itoa(maxResults))
	params.Set("sortBy", "submittedDate")
	params.Set("sortOrder", "descending")

	base := arxivAPIBase
	if c.Config.BaseURL != "" {
		base = c.Config.BaseURL
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fail(fmt.Errorf("creating request: %w", err))
	}
	if c.Config.UserAgent != "" {
		req.Header.Set("User-Agent", c.Config.UserAgent)
	}
	req.Header.Set("Accept", "application/atom+xml")

	c.Log.Debug().Str("search_query", q).Int("max_results", maxResults).Msg("querying arXiv")

	resp, err := httputil.DoWithRetry(ctx, c.Client, req, c.Config.MaxRetries, c.Log)
	if err != nil {
		return nil, fail(fmt.Errorf("arXiv API request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fail(fmt.Errorf("arXiv API returned HTTP %d", resp.StatusCode))
	}

	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fail(fmt.Errorf("parsing arXiv response: %w", err))
	}

	items := make([]types.Item, 0, len(feed.Items))
	for _, entry := range feed.Items {
		if msg, ok := arxivErrorEntry(entry); ok {
			return nil, fail(fmt.Errorf("arXiv API error: %s", msg))
		}
		item, ok := toItem(entry)
		if !ok {
			c.Log.Debug().Str("guid", entry.GUID).Msg("skipping entry without arXiv id")
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// buildArxivQuery constructs the search_query parameter. Each keyword term
// must match some field; a window adds a submittedDate range.
func buildArxivQuery(keyword string, window *types.DateRange) string {
	terms := strings.Fields(keyword)
	if len(terms) == 0 {
		return ""
	}

	parts := make([]string, 0, len(terms)+1)
	for _, term := range terms {
		parts = append(parts, "all:"+term)
	}
	if window != nil {
		parts = append(parts, fmt.Sprintf("submittedDate:[%s TO %s]",
			window.From.UTC().Format(arxivWindowLayout),
			window.To.UTC().Format(arxivWindowLayout)))
	}
	return strings.Join(parts, " AND ")
}

// arxivErrorEntry reports whether entry is the error document arXiv returns
// for malformed queries, and its message.
func arxivErrorEntry(entry *gofeed.Item) (string, bool) {
	if !strings.Contains(entry.GUID, "/api/errors") {
		return "", false
	}
	msg := collapseSpace(entry.Description)
	if msg == "" {
		msg = entry.GUID
	}
	return msg, true
}

// toItem converts an Atom entry into a typed Item. Entries without an
// arXiv identifier are rejected.
func toItem(entry *gofeed.Item) (types.Item, bool) {
	id := extractArxivID(entry.GUID)
	if id == "" {
		id = extractArxivID(entry.Link)
	}
	if id == "" {
		return types.Item{}, false
	}

	item := types.Item{
		ID:         id,
		Title:      collapseSpace(entry.Title),
		Summary:    collapseSpace(entry.Description),
		URL:        entry.Link,
		Categories: entry.Categories,
	}
	if item.URL == "" {
		item.URL = entry.GUID
	}
	for _, a := range entry.Authors {
		if a == nil {
			continue
		}
		if name := strings.TrimSpace(a.Name); name != "" {
			item.Authors = append(item.Authors, name)
		}
	}
	if entry.PublishedParsed != nil {
		item.Published = entry.PublishedParsed.UTC()
	} else if entry.UpdatedParsed != nil {
		item.Published = entry.UpdatedParsed.UTC()
	}
	return item, true
}

// extractArxivID pulls the arXiv ID from an abs URL
// (e.g. "http://arxiv.org/abs/2301.07041v1" -> "2301.07041").
// Old-style identifiers keep their archive prefix ("hep-th/9901001").
func extractArxivID(idURL string) string {
	const prefix = "/abs/"
	idx := strings.Index(idURL, prefix)
	if idx < 0 {
		return ""
	}
	id := strings.TrimSuffix(idURL[idx+len(prefix):], "/")

	// Strip version suffix (e.g. "v1", "v2").
	if vIdx := strings.LastIndex(id, "v"); vIdx > 0 {
		if _, err := strconv.Atoi(id[vIdx+1:]); err == nil {
			id = id[:vIdx]
		}
	}
	return id
}

// collapseSpace joins the fields of s with single spaces. arXiv wraps
// titles and abstracts across lines.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
