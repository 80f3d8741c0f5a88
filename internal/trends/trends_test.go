package trends

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/sharifianco/XToofan/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func docFromHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestParseTrendsFromTrendLinks(t *testing.T) {
	html := `<html><body>
		<a href="/iran/trend/a">#First</a>
		<a href="/iran/trend/b">#Second</a>
		<a href="/iran/trend/a-again">#First</a>
		<a href="/about">not a trend</a>
	</body></html>`

	got := parseTrends(docFromHTML(t, html))
	require.Len(t, got, 2, "duplicates and non-trend links are skipped")
	assert.Equal(t, "#First", got[0].Name)
	assert.Equal(t, 1, got[0].Rank)
	assert.Equal(t, "#Second", got[1].Name)
	assert.Equal(t, 2, got[1].Rank)
}

func TestParseTrendsFallsBackToSpans(t *testing.T) {
	html := `<html><body>
		<span class="trend-name">#Alpha</span>
		<span class="trend-name">#Beta</span>
	</body></html>`

	got := parseTrends(docFromHTML(t, html))
	require.Len(t, got, 2)
	assert.Equal(t, "#Alpha", got[0].Name)
}

func TestParseTrendsFallsBackToListItems(t *testing.T) {
	html := `<html><body><ul>
		<li><a href="#">#Gamma</a></li>
		<li><a href="#">x</a></li>
		<li><a href="#">#Delta</a></li>
	</ul></body></html>`

	got := parseTrends(docFromHTML(t, html))
	require.Len(t, got, 2, "single-character entries are skipped")
	assert.Equal(t, "#Gamma", got[0].Name)
	assert.Equal(t, "#Delta", got[1].Name)
}

func TestParseTrendsCapsAtTen(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("<html><body>")
	for i := 0; i < 15; i++ {
		sb.WriteString(`<a href="/x/trend/t` + string(rune('a'+i)) + `">#Tag` + string(rune('a'+i)) + `</a>`)
	}
	sb.WriteString("</body></html>")

	got := parseTrends(docFromHTML(t, sb.String()))
	assert.Len(t, got, 10)
}

func TestFetchLive(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>
			<a href="/here/trend/one">#One</a>
			<a href="/here/trend/two">#Two</a>
		</body></html>`))
	}))
	defer server.Close()

	f := NewFetcher()
	f.baseURL = server.URL

	result := f.Fetch(context.Background())
	assert.Equal(t, types.TrendsLive, result.Outcome)
	assert.Equal(t, "trends24.in", result.Source)
	require.Len(t, result.Trends, len(Countries))
	assert.Equal(t, "#One", result.Trends["IR"][0].Name)
}

func TestFetchPartial(t *testing.T) {
	var served int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "iran") {
			w.Write([]byte(`<a href="/iran/trend/x">#OnlyIran</a>`))
			served++
			return
		}
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	f := NewFetcher()
	f.baseURL = server.URL

	result := f.Fetch(context.Background())
	assert.Equal(t, types.TrendsPartial, result.Outcome)
	require.Contains(t, result.Trends, "IR")
	assert.NotContains(t, result.Trends, "US")
}

func TestFetchFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer server.Close()

	f := NewFetcher()
	f.baseURL = server.URL

	result := f.Fetch(context.Background())
	assert.Equal(t, types.TrendsFallback, result.Outcome)
	assert.Equal(t, "static", result.Source)
	require.Len(t, result.Trends, len(Countries))
	for code, list := range result.Trends {
		assert.Len(t, list, 10, "static table for %s", code)
	}
}
