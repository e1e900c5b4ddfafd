package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectFetcher_Success(t *testing.T) {
	page := "<html><body>" + strings.Repeat("sold listing $10.00 ", 20) + "</body></html>"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("User-Agent"), "CompsBot")
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	d := NewDirectFetcher()
	body, err := d.Fetch(context.Background(), srv.URL, Options{})
	require.NoError(t, err)
	assert.Equal(t, page, body)
}

func TestDirectFetcher_RejectsProxyOptions(t *testing.T) {
	d := NewDirectFetcher()
	_, err := d.Fetch(context.Background(), "https://example.com", Options{RenderJS: true})
	require.Error(t, err)

	_, err = d.Fetch(context.Background(), "https://example.com", Options{PremiumProxy: true})
	require.Error(t, err)
}

func TestDirectFetcher_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, strings.Repeat("not found ", 20), http.StatusNotFound)
	}))
	defer srv.Close()

	d := NewDirectFetcher()
	_, err := d.Fetch(context.Background(), srv.URL, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestDirectFetcher_BlockedPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>Checking your browser before accessing ebay.com " + strings.Repeat("x", 100) + "</html>"))
	}))
	defer srv.Close()

	d := NewDirectFetcher()
	_, err := d.Fetch(context.Background(), srv.URL, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "blocked")
}

func TestDirectFetcher_EmptyPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("tiny"))
	}))
	defer srv.Close()

	d := NewDirectFetcher()
	_, err := d.Fetch(context.Background(), srv.URL, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty page")
}

func TestDetectBlock(t *testing.T) {
	tests := []struct {
		name  string
		resp  *http.Response
		body  string
		block BlockType
	}{
		{
			name:  "cloudflare header",
			resp:  &http.Response{StatusCode: 403, Header: http.Header{"Cf-Ray": []string{"abc"}}},
			block: BlockCloudflare,
		},
		{
			name:  "captcha marker",
			resp:  &http.Response{StatusCode: 200, Header: http.Header{}},
			body:  "please solve this reCAPTCHA to continue",
			block: BlockCaptcha,
		},
		{
			name:  "js shell",
			resp:  &http.Response{StatusCode: 200, Header: http.Header{}},
			body:  "<noscript>enable JavaScript</noscript>",
			block: BlockJSShell,
		},
		{
			name:  "clean page",
			resp:  &http.Response{StatusCode: 200, Header: http.Header{}},
			body:  "<html><body>sold $10.00</body></html>",
			block: BlockNone,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocked, bt := DetectBlock(tt.resp, []byte(tt.body))
			assert.Equal(t, tt.block, bt)
			assert.Equal(t, tt.block != BlockNone, blocked)
		})
	}
}
