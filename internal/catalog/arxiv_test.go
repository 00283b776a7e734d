// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

const sampleArxivFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>ArXiv Query</title>
  <id>http://arxiv.org/api/abc</id>
  <updated>2023-01-03T00:00:00-05:00</updated>
  <entry>
    <id>http://arxiv.org/abs/2301.00003v2</id>
    <updated>2023-01-03T10:00:00Z</updated>
    <published>2023-01-02T18:00:00Z</published>
    <title>Sparse Attention
      for Long Documents</title>
    <summary>  We study sparse
  attention.  </summary>
    <author><name>Ada Lovelace</name></author>
    <author><name> Alan Turing </name></author>
    <link href="http://arxiv.org/abs/2301.00003v2" rel="alternate" type="text/html"/>
    <link title="pdf" href="http://arxiv.org/pdf/2301.00003v2" rel="related" type="application/pdf"/>
    <category term="cs.CL" scheme="http://arxiv.org/schemas/atom"/>
  </entry>
  <entry>
    <id>http://arxiv.org/abs/2301.00002v1</id>
    <updated>2023-01-01T10:00:00Z</updated>
    <published>2023-01-01T09:00:00Z</published>
    <title>Dense Retrieval</title>
    <summary>Retrieval with dense vectors.</summary>
    <author><name>Grace Hopper</name></author>
    <link href="http://arxiv.org/abs/2301.00002v1" rel="alternate" type="text/html"/>
  </entry>
  <entry>
    <id>urn:example:no-arxiv-id</id>
    <updated>2023-01-01T10:00:00Z</updated>
    <title>Not an arXiv entry</title>
  </entry>
</feed>`

const errorArxivFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>ArXiv Query</title>
  <id>http://arxiv.org/api/err</id>
  <updated>2023-01-03T00:00:00-05:00</updated>
  <entry>
    <id>http://arxiv.org/api/errors#max_results_must_be_an_integer</id>
    <title>Error</title>
    <summary>max_results must be an integer</summary>
    <updated>2023-01-03T00:00:00-05:00</updated>
  </entry>
</feed>`

const emptyArxivFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>ArXiv Query</title>
  <id>http://arxiv.org/api/empty</id>
  <updated>2023-01-03T00:00:00-05:00</updated>
</feed>`

// serveArxiv points a catalog at a test server and records each query.
func serveArxiv(t *testing.T, handler http.HandlerFunc) (*ArxivCatalog, func() []url.Values) {
	t.Helper()
	var (
		mu      sync.Mutex
		queries []url.Values
	)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		queries = append(queries, r.URL.Query())
		mu.Unlock()
		handler(w, r)
	}))
	t.Cleanup(ts.Close)

	cfg := types.HTTPConfig{Timeout: 5 * time.Second, UserAgent: "test/0.1", BaseURL: ts.URL}
	return NewArxivCatalog(ts.Client(), cfg, zerolog.Nop()), func() []url.Values {
		mu.Lock()
		defer mu.Unlock()
		return append([]url.Values(nil), queries...)
	}
}

func TestArxivSearchParsesEntries(t *testing.T) {
	c, _ := serveArxiv(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/atom+xml")
		fmt.Fprint(w, sampleArxivFeed)
	})

	items, err := c.Search(context.Background(), "attention", nil, 10)
	require.NoError(t, err)
	require.Len(t, items, 2, "entry without an arXiv id is dropped")

	first := items[0]
	assert.Equal(t, "2301.00003", first.ID)
	assert.Equal(t, "Sparse Attention for Long Documents", first.Title)
	assert.Equal(t, "We study sparse attention.", first.Summary)
	assert.Equal(t, []string{"Ada Lovelace", "Alan Turing"}, first.Authors)
	assert.Equal(t, "http://arxiv.org/abs/2301.00003v2", first.URL)
	assert.Equal(t, "2023-01-02", first.PublishedDate())
	assert.Equal(t, []string{"cs.CL"}, first.Categories)

	assert.Equal(t, "2301.00002", items[1].ID)
}

func TestArxivSearchQueryParameters(t *testing.T) {
	c, queries := serveArxiv(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, emptyArxivFeed)
	})

	window := types.DayWindow(time.Date(2023, 1, 2, 15, 0, 0, 0, time.UTC))
	items, err := c.Search(context.Background(), "graph  neural", &window, 50)
	require.NoError(t, err)
	assert.Empty(t, items)

	require.Len(t, queries(), 1)
	q := queries()[0]
	assert.Equal(t, "all:graph AND all:neural AND submittedDate:[202301020000 TO 202301022359]", q.Get("search_query"))
	assert.Equal(t, "50", q.Get("max_results"))
	assert.Equal(t, "submittedDate", q.Get("sortBy"))
	assert.Equal(t, "descending", q.Get("sortOrder"))
}

func TestArxivSearchClampsMaxResults(t *testing.T) {
	c, queries := serveArxiv(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, emptyArxivFeed)
	})

	_, err := c.Search(context.Background(), "x", nil, 1_000_000)
	require.NoError(t, err)
	_, err = c.Search(context.Background(), "x", nil, 0)
	require.NoError(t, err)

	got := queries()
	require.Len(t, got, 2)
	assert.Equal(t, "2000", got[0].Get("max_results"))
	assert.Equal(t, "1", got[1].Get("max_results"))
}

func TestArxivSearchFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantMsg string
	}{
		{
			name: "http status",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
			},
			wantMsg: "HTTP 503",
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				fmt.Fprint(w, "<<<not xml")
			},
			wantMsg: "parsing arXiv response",
		},
		{
			name: "arXiv error entry",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				fmt.Fprint(w, errorArxivFeed)
			},
			wantMsg: "max_results must be an integer",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := serveArxiv(t, tt.handler)
			window := types.DayWindow(time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC))

			_, err := c.Search(context.Background(), "attention", &window, 10)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)

			var ce *Error
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, "attention", ce.Keyword)
			require.NotNil(t, ce.Window)
			assert.Contains(t, ce.Error(), "2023-01-02")
		})
	}
}

func TestArxivSearchEmptyKeyword(t *testing.T) {
	c, queries := serveArxiv(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, emptyArxivFeed)
	})

	_, err := c.Search(context.Background(), "   ", nil, 10)
	require.Error(t, err)
	assert.Empty(t, queries(), "no request for an empty query")
}

func TestExtractArxivID(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"http://arxiv.org/abs/2301.07041v1", "2301.07041"},
		{"http://arxiv.org/abs/2301.07041v12", "2301.07041"},
		{"http://arxiv.org/abs/2301.07041", "2301.07041"},
		{"http://arxiv.org/abs/hep-th/9901001v1", "hep-th/9901001"},
		{"http://arxiv.org/abs/solv-int/9901001", "solv-int/9901001"},
		{"http://arxiv.org/api/errors#x", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, extractArxivID(tt.in), "extractArxivID(%q)", tt.in)
	}
}

func TestBuildArxivQuery(t *testing.T) {
	assert.Equal(t, "", buildArxivQuery("  ", nil))
	assert.Equal(t, "all:transformer", buildArxivQuery("transformer", nil))
	assert.Equal(t, "all:a AND all:b", buildArxivQuery(" a\tb ", nil))
}
