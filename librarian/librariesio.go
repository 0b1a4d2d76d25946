package librarian

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/pkg/errors"
)

const (
	defaultLibrariesIOBaseURL = "https://libraries.io"
	librariesIOSource         = "libraries.io"
	maxLibrariesIOResults     = 10
)

// librariesIOPlatformFilters maps our platform identifiers to the libraries.io
// package manager and language filters that best match it
var librariesIOPlatformFilters = map[string]struct {
	packageManagers []string
	languages       []string
}{
	"ios":     {packageManagers: []string{"CocoaPods"}, languages: []string{"Swift"}},
	"android": {packageManagers: []string{"Maven"}, languages: []string{"Java", "Kotlin"}},
}

// LibrariesIOProvider searches the libraries.io package index for a single
// platform
type LibrariesIOProvider struct {
	platform   string
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// LibrariesIOOption customizes a LibrariesIOProvider
type LibrariesIOOption func(p *LibrariesIOProvider)

// WithLibrariesIOBaseURL overrides the api base url. Used in tests to point
// the provider at a local server
func WithLibrariesIOBaseURL(baseURL string) LibrariesIOOption {
	return func(p *LibrariesIOProvider) {
		p.baseURL = baseURL
	}
}

// WithLibrariesIOHTTPClient overrides the http client
func WithLibrariesIOHTTPClient(client *http.Client) LibrariesIOOption {
	return func(p *LibrariesIOProvider) {
		p.httpClient = client
	}
}

// NewLibrariesIOProvider creates a libraries.io provider for the given
// platform ("ios" or "android")
func NewLibrariesIOProvider(platform string, apiKey string, opts ...LibrariesIOOption) (p *LibrariesIOProvider, err error) {
	if _, supported := librariesIOPlatformFilters[platform]; !supported {
		return nil, fmt.Errorf("unsupported platform [%s]", platform)
	}

	p = &LibrariesIOProvider{
		platform:   platform,
		apiKey:     apiKey,
		baseURL:    defaultLibrariesIOBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}

	for _, opt := range opts {
		opt(p)
	}

	return p, nil
}

// Platform implements Provider
func (p *LibrariesIOProvider) Platform() string {
	return p.platform
}

type librariesIOResult struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	RepositoryURL string `json:"repository_url"`
	HomepageURL   string `json:"homepage"`
	Stars         int    `json:"stars"`
	Platform      string `json:"platform"`
}

// Search implements Provider. Results come back sorted by stars, truncated to
// the top 10
func (p *LibrariesIOProvider) Search(ctx context.Context, query string) (libraries []Library, err error) {
	filters := librariesIOPlatformFilters[p.platform]

	params := url.Values{}
	params.Set("q", query)
	for _, pm := range filters.packageManagers {
		params.Add("platforms", pm)
	}
	for _, lang := range filters.languages {
		params.Add("languages", lang)
	}
	if p.apiKey != "" {
		params.Set("api_key", p.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/api/search?"+params.Encode(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build libraries.io search request")
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "libraries.io search failed for query [%s]", query)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("libraries.io search for query [%s] returned status [%d]", query, resp.StatusCode)
	}

	var results []librariesIOResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, errors.Wrap(err, "failed to decode libraries.io search results")
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Stars > results[j].Stars
	})

	if len(results) > maxLibrariesIOResults {
		results = results[:maxLibrariesIOResults]
	}

	libraries = make([]Library, 0, len(results))
	for _, r := range results {
		link := r.RepositoryURL
		if link == "" {
			link = r.HomepageURL
		}

		libraries = append(libraries, Library{
			Title:          r.Name,
			Link:           link,
			Description:    r.Description,
			Stars:          r.Stars,
			PackageManager: r.Platform,
			Source:         librariesIOSource,
		})
	}

	return libraries, nil
}
