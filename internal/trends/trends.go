package trends

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sharifianco/XToofan/internal/types"
	"github.com/sharifianco/XToofan/internal/utils"
	"go.uber.org/zap"
)

// Country is one trend region with its trends24.in slug.
type Country struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Slug string `json:"slug"`
	Flag string `json:"flag"`
}

// Countries is the fixed region list the feed rotates through.
var Countries = []Country{
	{Code: "IR", Name: "ایران", Slug: "iran", Flag: "🇮🇷"},
	{Code: "US", Name: "آمریکا", Slug: "united-states", Flag: "🇺🇸"},
	{Code: "GB", Name: "انگلستان", Slug: "united-kingdom", Flag: "🇬🇧"},
	{Code: "DE", Name: "آلمان", Slug: "germany", Flag: "🇩🇪"},
	{Code: "FR", Name: "فرانسه", Slug: "france", Flag: "🇫🇷"},
	{Code: "CA", Name: "کانادا", Slug: "canada", Flag: "🇨🇦"},
	{Code: "TR", Name: "ترکیه", Slug: "turkey", Flag: "🇹🇷"},
	{Code: "AE", Name: "امارات", Slug: "united-arab-emirates", Flag: "🇦🇪"},
}

const maxTrendsPerCountry = 10

// Result is a trends lookup with the outcome surfaced: live when every
// country scraped, partial when only some did, fallback when none did and the
// static table was served instead.
type Result struct {
	Trends  map[string][]types.Trend
	Outcome types.TrendOutcome
	Source  string
}

// Fetcher scrapes 24-hour trends per country, best-effort.
type Fetcher struct {
	client  *http.Client
	baseURL string
}

func NewFetcher() *Fetcher {
	return &Fetcher{
		client:  &http.Client{Timeout: 15 * time.Second},
		baseURL: "https://trends24.in",
	}
}

// Fetch scrapes all countries concurrently and reports the combined outcome.
// It never fails: when nothing could be scraped it serves the static table.
func (f *Fetcher) Fetch(ctx context.Context) Result {
	trends := make(map[string][]types.Trend)
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, country := range Countries {
		wg.Add(1)
		go func(country Country) {
			defer wg.Done()
			list, err := f.fetchCountry(ctx, country)
			if err != nil {
				utils.Zlog.Warn("Failed to fetch trends",
					zap.String("country", country.Code),
					zap.Error(err))
				return
			}
			if len(list) > 0 {
				mu.Lock()
				trends[country.Code] = list
				mu.Unlock()
			}
		}(country)
	}
	wg.Wait()

	switch {
	case len(trends) == len(Countries):
		return Result{Trends: trends, Outcome: types.TrendsLive, Source: "trends24.in"}
	case len(trends) > 0:
		return Result{Trends: trends, Outcome: types.TrendsPartial, Source: "trends24.in"}
	default:
		return Result{Trends: sampleTrends(), Outcome: types.TrendsFallback, Source: "static"}
	}
}

func (f *Fetcher) fetchCountry(ctx context.Context, country Country) ([]types.Trend, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/%s/", f.baseURL, country.Slug), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("trends page returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}
	return parseTrends(doc), nil
}

// parseTrends extracts up to ten trend names, trying the page's trend links
// first and falling back to looser selectors when the markup has changed.
func parseTrends(doc *goquery.Document) []types.Trend {
	var list []types.Trend
	seen := map[string]bool{}

	add := func(name string) {
		name = strings.TrimSpace(name)
		if name == "" || len(list) >= maxTrendsPerCountry || seen[name] {
			return
		}
		seen[name] = true
		list = append(list, types.Trend{Name: name, Rank: len(list) + 1})
	}

	doc.Find(`a[href*="/trend/"]`).Each(func(_ int, sel *goquery.Selection) {
		add(sel.Text())
	})

	if len(list) < 5 {
		doc.Find("span.trend-name").Each(func(_ int, sel *goquery.Selection) {
			add(sel.Text())
		})
	}

	if len(list) < 5 {
		doc.Find("li a").Each(func(_ int, sel *goquery.Selection) {
			name := strings.TrimSpace(sel.Text())
			if len([]rune(name)) > 1 {
				add(name)
			}
		})
	}

	return list
}
