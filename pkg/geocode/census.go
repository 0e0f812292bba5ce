package geocode

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/hotspot/internal/resilience"
)

// Census geocoder defaults.
const (
	DefaultBaseURL   = "https://geocoding.geo.census.gov/geocoder/locations/onelineaddress"
	DefaultBenchmark = "Public_AR_Current"
)

// censusOneLineResponse is the JSON response from the Census single-address API.
type censusOneLineResponse struct {
	Result struct {
		AddressMatches []censusAddressMatch `json:"addressMatches"`
	} `json:"result"`
}

type censusAddressMatch struct {
	Coordinates struct {
		X float64 `json:"x"` // longitude
		Y float64 `json:"y"` // latitude
	} `json:"coordinates"`
	MatchedAddress string `json:"matchedAddress"`
}

// geocodeCensus geocodes a single address using the Census one-line API.
func (g *geocoder) geocodeCensus(ctx context.Context, oneLine string) (*Result, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "geocode: census rate limit")
	}

	params := url.Values{
		"address":   {oneLine},
		"benchmark": {g.benchmark},
		"format":    {"json"},
	}

	reqURL := g.baseURL + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: census build request")
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: census request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, resilience.NewStatusError(resp.StatusCode,
			eris.Errorf("geocode: census returned status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "geocode: census read body")
	}

	var censusResp censusOneLineResponse
	if err := json.Unmarshal(body, &censusResp); err != nil {
		return nil, eris.Wrap(err, "geocode: census parse response")
	}

	if len(censusResp.Result.AddressMatches) == 0 {
		zap.L().Debug("geocode: no census match", zap.String("address", oneLine))
		return &Result{Matched: false}, nil
	}

	match := censusResp.Result.AddressMatches[0]
	return &Result{
		MatchedAddress: match.MatchedAddress,
		Latitude:       match.Coordinates.Y,
		Longitude:      match.Coordinates.X,
		Matched:        true,
	}, nil
}

// normalizeAddress collapses runs of whitespace so equivalent inputs share a
// request and a cache entry.
func normalizeAddress(address string) string {
	return strings.Join(strings.Fields(address), " ")
}
