package scrapingbee

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch_PassesProxyParams(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte("<html>sold $10.00</html>"))
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))
	body, err := c.Fetch(context.Background(), "https://www.ebay.com/sch/i.html?_nkw=x", Params{
		RenderJS:     true,
		PremiumProxy: true,
		WaitMs:       1500,
	})
	require.NoError(t, err)
	assert.Contains(t, body, "sold $10.00")

	assert.Equal(t, "test-key", gotQuery["api_key"][0])
	assert.Equal(t, "https://www.ebay.com/sch/i.html?_nkw=x", gotQuery["url"][0])
	assert.Equal(t, "true", gotQuery["render_js"][0])
	assert.Equal(t, "true", gotQuery["premium_proxy"][0])
	assert.Equal(t, "1500", gotQuery["wait"][0])
}

func TestFetch_OmitsDefaultParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.NotContains(t, q, "render_js")
		assert.NotContains(t, q, "premium_proxy")
		assert.NotContains(t, q, "wait")
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c := NewClient("k", WithBaseURL(srv.URL))
	_, err := c.Fetch(context.Background(), "https://example.com", Params{})
	require.NoError(t, err)
}

func TestFetch_MissingKey(t *testing.T) {
	c := NewClient("")
	_, err := c.Fetch(context.Background(), "https://example.com", Params{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingKey))
}

func TestFetch_RetriesTransientStatus(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("recovered"))
	}))
	defer srv.Close()

	c := NewClient("k", WithBaseURL(srv.URL))
	body, err := c.Fetch(context.Background(), "https://example.com", Params{})
	require.NoError(t, err)
	assert.Equal(t, "recovered", body)
	assert.Equal(t, int32(2), calls.Load())
}

func TestFetch_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad request", http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewClient("k", WithBaseURL(srv.URL))
	_, err := c.Fetch(context.Background(), "https://example.com", Params{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 400")
}
