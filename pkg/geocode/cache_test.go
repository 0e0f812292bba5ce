package geocode

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheKey(t *testing.T) {
	assert.Equal(t, cacheKey("1 Main St"), cacheKey("1 MAIN ST"))
	assert.NotEqual(t, cacheKey("1 Main St"), cacheKey("2 Main St"))
	assert.Len(t, cacheKey("x"), 64)
}

func TestGeocode_CacheHit(t *testing.T) {
	srv, hits, _ := newTestServer(t, http.StatusOK, whiteHouseResponse)
	c := newTestClient(srv, WithCache())

	first, err := c.Geocode(context.Background(), "1600 Pennsylvania Ave NW")
	require.NoError(t, err)
	second, err := c.Geocode(context.Background(), "1600  pennsylvania ave nw")
	require.NoError(t, err)

	assert.Equal(t, int32(1), hits.Load())
	assert.Equal(t, first, second)
}

func TestGeocode_CachesNonMatches(t *testing.T) {
	srv, hits, _ := newTestServer(t, http.StatusOK, `{"result": {"addressMatches": []}}`)
	c := newTestClient(srv, WithCache())

	for range 3 {
		r, err := c.Geocode(context.Background(), "nowhere")
		require.NoError(t, err)
		assert.False(t, r.Matched)
	}
	assert.Equal(t, int32(1), hits.Load())
}

func TestGeocode_ErrorsNotCached(t *testing.T) {
	srv, hits, _ := newTestServer(t, http.StatusBadGateway, "")
	c := newTestClient(srv, WithCache())

	_, err := c.Geocode(context.Background(), "1 Main St")
	require.Error(t, err)
	_, err = c.Geocode(context.Background(), "1 Main St")
	require.Error(t, err)
	assert.Equal(t, int32(2), hits.Load())
}

func TestGeocode_NoCacheByDefault(t *testing.T) {
	srv, hits, _ := newTestServer(t, http.StatusOK, whiteHouseResponse)
	c := newTestClient(srv)

	for range 2 {
		_, err := c.Geocode(context.Background(), "1 Main St")
		require.NoError(t, err)
	}
	assert.Equal(t, int32(2), hits.Load())
}

func TestMemoryCache_ReturnsCopies(t *testing.T) {
	c := newMemoryCache()
	r := &Result{Latitude: 1, Matched: true}
	c.put("abcdefabcdefabcdef", r)
	r.Latitude = 99

	got, ok := c.get("abcdefabcdefabcdef")
	require.True(t, ok)
	assert.Equal(t, 1.0, got.Latitude)

	_, ok = c.get("missing")
	assert.False(t, ok)
}
