// Package geocode resolves free-text street addresses to coordinates via the
// US Census Bureau one-line address geocoder.
package geocode

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/sells-group/hotspot/internal/resilience"
)

// Client geocodes addresses.
type Client interface {
	// Geocode resolves a single one-line address. An address the service
	// cannot match yields Matched=false and a nil error.
	Geocode(ctx context.Context, address string) (*Result, error)
}

// Result holds the geocoding output for an address.
type Result struct {
	MatchedAddress string  `json:"matched_address,omitempty" yaml:"matched_address,omitempty"`
	Latitude       float64 `json:"lat" yaml:"lat"`
	Longitude      float64 `json:"lon" yaml:"lon"`
	Matched        bool    `json:"matched" yaml:"matched"`
}

// Option configures the geocoder.
type Option func(*geocoder)

// WithBaseURL overrides the one-line address endpoint.
func WithBaseURL(u string) Option {
	return func(g *geocoder) {
		if u != "" {
			g.baseURL = u
		}
	}
}

// WithBenchmark sets the Census benchmark (address vintage) to match against.
func WithBenchmark(b string) Option {
	return func(g *geocoder) {
		if b != "" {
			g.benchmark = b
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(g *geocoder) {
		g.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(g *geocoder) {
		if d > 0 {
			g.httpClient = &http.Client{Timeout: d}
		}
	}
}

// WithRateLimit sets the requests-per-second rate limit. Values <= 0 disable limiting.
func WithRateLimit(rps float64) Option {
	return func(g *geocoder) {
		if rps <= 0 {
			g.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		burst := int(rps)
		if burst < 1 {
			burst = 1
		}
		g.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithCache memoises results per normalised address for the client's lifetime.
func WithCache() Option {
	return func(g *geocoder) {
		g.cache = newMemoryCache()
	}
}

// WithRetry retries transient failures (timeouts, 429 and 5xx responses)
// according to p.
func WithRetry(p resilience.Policy) Option {
	return func(g *geocoder) {
		g.retry = p
	}
}

type geocoder struct {
	httpClient *http.Client
	baseURL    string
	benchmark  string
	limiter    *rate.Limiter
	cache      *memoryCache
	retry      resilience.Policy
}

// NewClient creates a new geocoding Client with the given options.
func NewClient(opts ...Option) Client {
	g := &geocoder{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    DefaultBaseURL,
		benchmark:  DefaultBenchmark,
		limiter:    rate.NewLimiter(10, 10),
		retry:      resilience.Policy{Attempts: 1},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Geocode resolves address, consulting the cache first when enabled.
func (g *geocoder) Geocode(ctx context.Context, address string) (*Result, error) {
	oneLine := normalizeAddress(address)
	if oneLine == "" {
		return &Result{Matched: false}, nil
	}

	if g.cache == nil {
		return g.lookup(ctx, oneLine)
	}

	key := cacheKey(oneLine)
	if r, ok := g.cache.get(key); ok {
		return r, nil
	}
	r, err := g.lookup(ctx, oneLine)
	if err != nil {
		return nil, err
	}
	g.cache.put(key, r)
	return r, nil
}

func (g *geocoder) lookup(ctx context.Context, oneLine string) (*Result, error) {
	return resilience.Retry(ctx, g.retry, "geocode", func(ctx context.Context) (*Result, error) {
		return g.geocodeCensus(ctx, oneLine)
	})
}
