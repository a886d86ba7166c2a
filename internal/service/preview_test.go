package service_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuvrajsharma97/loyalty-saas-sub001/internal/service"
)

func TestPreviewService_Fetch(t *testing.T) {
	t.Run("Should prefer OpenGraph tags over the plain title", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(`<!doctype html>
<html><head>
<title>Corner Cafe | Home</title>
<meta property="og:title" content="Corner Cafe">
<meta name="description" content="plain description">
<meta property="og:description" content="Coffee and cake on the high street">
<meta property="og:image" content="https://corner.example/hero.jpg">
</head><body></body></html>`))
		}))
		defer srv.Close()

		svc := service.NewPreviewService()
		preview, err := svc.Fetch(context.Background(), srv.URL)
		require.NoError(t, err)

		assert.Equal(t, "Corner Cafe", preview.Title)
		assert.Equal(t, "Coffee and cake on the high street", preview.Description)
		assert.Equal(t, "https://corner.example/hero.jpg", preview.ImageURL)
		assert.Equal(t, srv.URL, preview.URL)
	})

	t.Run("Should fall back to the title tag when OpenGraph is absent", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(`<html><head><title>  Plain Page  </title></head><body></body></html>`))
		}))
		defer srv.Close()

		svc := service.NewPreviewService()
		preview, err := svc.Fetch(context.Background(), srv.URL)
		require.NoError(t, err)

		assert.Equal(t, "Plain Page", preview.Title)
		assert.Empty(t, preview.Description)
		assert.Empty(t, preview.ImageURL)
	})

	t.Run("Should reject non-http schemes", func(t *testing.T) {
		svc := service.NewPreviewService()
		_, err := svc.Fetch(context.Background(), "file:///etc/passwd")
		assert.Error(t, err)
	})

	t.Run("Should surface upstream error statuses", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		svc := service.NewPreviewService()
		_, err := svc.Fetch(context.Background(), srv.URL)
		assert.Error(t, err)
	})
}
