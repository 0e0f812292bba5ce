package geocode

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

// newTestServer serves body with status for every request and counts hits.
// The most recent request is stored in last.
func newTestServer(t *testing.T, status int, body string) (*httptest.Server, *atomic.Int32, *atomic.Pointer[http.Request]) {
	t.Helper()
	var hits atomic.Int32
	var last atomic.Pointer[http.Request]
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		last.Store(r)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits, &last
}

// newTestClient points a rate-unlimited client at srv.
func newTestClient(srv *httptest.Server, opts ...Option) Client {
	base := []Option{
		WithBaseURL(srv.URL),
		WithHTTPClient(srv.Client()),
		WithRateLimit(0),
	}
	return NewClient(append(base, opts...)...)
}
