// Package librarian searches mobile library indexes and aggregates results
// across providers
package librarian

import (
	"context"
	"fmt"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Library is a single search result, normalized across providers
type Library struct {
	Title          string
	Link           string
	Description    string
	Stars          int
	PackageManager string
	Source         string
	Category       string
}

// Provider is a single searchable library index
type Provider interface {
	// Platform returns the platform this provider serves ("ios" or "android")
	Platform() string

	// Search returns libraries matching the query, most relevant first
	Search(ctx context.Context, query string) (libraries []Library, err error)
}

// Logger is the small logging surface the librarian needs
type Logger interface {
	Printf(format string, v ...interface{})
	Debugf(format string, v ...interface{})
}

// Librarian fans a search out to every provider serving the requested
// platform and merges the results, deduplicated by link. Results are cached
// per platform and query
type Librarian struct {
	providers []Provider
	cache     *lru.ARCCache
	log       Logger
}

// New creates a Librarian over the given providers with a result cache of
// cacheSize entries
func New(logger Logger, cacheSize int, providers ...Provider) (l *Librarian, err error) {
	cache, err := lru.NewARC(cacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create library search cache")
	}

	return &Librarian{providers: providers, cache: cache, log: logger}, nil
}

// GetLibraries returns libraries matching the query on the platform. Provider
// searches run concurrently; a provider failure fails the whole search so
// callers never see a silently partial result
func (l *Librarian) GetLibraries(ctx context.Context, platform string, query string) (libraries []Library, err error) {
	cacheKey := platform + "\x1f" + strings.ToLower(query)
	if cached, ok := l.cache.Get(cacheKey); ok {
		l.log.Debugf("Returning cached library results for platform [%s] and query [%s]", platform, query)
		return cached.([]Library), nil
	}

	results := make([][]Library, len(l.providers))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for i, p := range l.providers {
		if p.Platform() != platform {
			continue
		}

		i, p := i, p
		g.Go(func() (err error) {
			found, err := p.Search(gctx, query)
			if err != nil {
				return err
			}

			mu.Lock()
			results[i] = found
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	libraries = mergeByLink(results)
	l.cache.Add(cacheKey, libraries)

	l.log.Debugf("Found [%d] libraries for platform [%s] and query [%s]", len(libraries), platform, query)

	return libraries, nil
}

// mergeByLink concatenates provider results in provider order, keeping only
// the first result seen for each link
func mergeByLink(results [][]Library) (merged []Library) {
	merged = make([]Library, 0)
	seen := make(map[string]bool)

	for _, providerResults := range results {
		for _, library := range providerResults {
			if library.Link != "" && seen[library.Link] {
				continue
			}

			seen[library.Link] = true
			merged = append(merged, library)
		}
	}

	return merged
}

// FormattedPlatform renders a platform identifier for display
func FormattedPlatform(platform string) string {
	switch platform {
	case "ios":
		return "iOS"
	case "android":
		return "Android"
	default:
		if platform == "" {
			return platform
		}

		return fmt.Sprintf("%s%s", strings.ToUpper(platform[:1]), platform[1:])
	}
}
