package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"concierge/internal/domain"
	"concierge/internal/domain/models"

	"github.com/samber/lo"
)

const (
	DefaultTavilyEndpoint = "https://api.tavily.com/search"
	defaultSearchTimeout  = 8 * time.Second
	tavilySourceTag       = "tavily"
	offlineSourceTag      = "offline"
)

// ErrProviderUnavailable is reported when no search credential is configured.
var ErrProviderUnavailable = errors.New("search provider unavailable: no credential configured")

// SearchProvider retrieves raw context items. Results are never nil; the
// error only describes why the set is empty and must not abort the caller.
type SearchProvider interface {
	Search(ctx context.Context, query string, maxResults int) ([]models.RawResult, error)
}

// maxResultsByContext bounds how many raw items each context type requests.
var maxResultsByContext = map[domain.ContextType]int{
	domain.ContextWeather:     3,
	domain.ContextEvents:      6,
	domain.ContextPOI:         8,
	domain.ContextRestaurants: 6,
}

// BuildQuery renders the fixed query template of a context type.
func BuildQuery(ct domain.ContextType, trip models.TripRequest) string {
	loc := strings.TrimSpace(trip.Location)
	switch ct {
	case domain.ContextWeather:
		return fmt.Sprintf("weather forecast in %s this week", loc)
	case domain.ContextEvents:
		return fmt.Sprintf("upcoming events and festivals in %s", loc)
	case domain.ContextPOI:
		return fmt.Sprintf("top attractions and points of interest in %s", loc)
	case domain.ContextRestaurants:
		if len(trip.Dietary) > 0 {
			return fmt.Sprintf("best %s restaurants in %s", trip.Dietary[0], loc)
		}
		return fmt.Sprintf("best family-friendly restaurants in %s", loc)
	}
	return loc
}

// TavilyClient calls the Tavily search API once per query.
type TavilyClient struct {
	APIKey               string
	Endpoint             string
	Timeout              time.Duration
	HTTPClient           *http.Client
	AllowOfflineFallback bool
	OfflineFile          string
}

type tavilyRequest struct {
	APIKey      string `json:"api_key"`
	Query       string `json:"query"`
	MaxResults  int    `json:"max_results"`
	SearchDepth string `json:"search_depth"`
}

type tavilyResponse struct {
	Results []struct {
		Title   string `json:"title"`
		URL     string `json:"url"`
		Content string `json:"content"`
	} `json:"results"`
}

// Search never returns a nil slice.
func (c TavilyClient) Search(ctx context.Context, query string, maxResults int) ([]models.RawResult, error) {
	if strings.TrimSpace(c.APIKey) == "" {
		if c.AllowOfflineFallback {
			return c.offlineResults(query, maxResults)
		}
		return []models.RawResult{}, ErrProviderUnavailable
	}
	results, err := c.search(ctx, query, maxResults)
	if err != nil {
		return []models.RawResult{}, err
	}
	return results, nil
}

func (c TavilyClient) search(ctx context.Context, query string, maxResults int) ([]models.RawResult, error) {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = defaultSearchTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	body, err := json.Marshal(tavilyRequest{
		APIKey:      c.APIKey,
		Query:       query,
		MaxResults:  maxResults,
		SearchDepth: "basic",
	})
	if err != nil {
		return nil, err
	}

	endpoint := c.Endpoint
	if endpoint == "" {
		endpoint = DefaultTavilyEndpoint
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	client := c.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("search provider error: %s %s", resp.Status, strings.TrimSpace(string(snippet)))
	}

	var payload tavilyResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("search provider returned malformed response: %w", err)
	}

	out := make([]models.RawResult, 0, len(payload.Results))
	for _, r := range payload.Results {
		if strings.TrimSpace(r.Title) == "" && strings.TrimSpace(r.Content) == "" {
			continue
		}
		out = append(out, models.RawResult{
			Title:     strings.TrimSpace(r.Title),
			BodyText:  strings.TrimSpace(r.Content),
			URL:       strings.TrimSpace(r.URL),
			SourceTag: tavilySourceTag,
		})
		if maxResults > 0 && len(out) >= maxResults {
			break
		}
	}
	return out, nil
}

// offlineResults serves canned items from a JSON file when explicitly allowed.
// The file maps a query keyword (e.g. "weather", "restaurants") to items; the
// first key, in sorted order, contained in the query wins.
func (c TavilyClient) offlineResults(query string, maxResults int) ([]models.RawResult, error) {
	if strings.TrimSpace(c.OfflineFile) == "" {
		return []models.RawResult{}, ErrProviderUnavailable
	}
	data, err := os.ReadFile(c.OfflineFile)
	if err != nil {
		return []models.RawResult{}, fmt.Errorf("offline results: %w", err)
	}
	var fixture map[string][]models.RawResult
	if err := json.Unmarshal(data, &fixture); err != nil {
		return []models.RawResult{}, fmt.Errorf("offline results malformed: %w", err)
	}

	lower := strings.ToLower(query)
	keys := lo.Keys(fixture)
	sort.Strings(keys)
	items := []models.RawResult{}
	for _, key := range keys {
		if key != "" && strings.Contains(lower, strings.ToLower(key)) {
			items = append(items, fixture[key]...)
			break
		}
	}
	if maxResults > 0 && len(items) > maxResults {
		items = items[:maxResults]
	}
	for i := range items {
		if items[i].SourceTag == "" {
			items[i].SourceTag = offlineSourceTag
		}
	}
	return items, nil
}
