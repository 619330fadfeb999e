package rss

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/feeds"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anzhiyu-c/anheyu-posts/pkg/constant"
	"github.com/anzhiyu-c/anheyu-posts/pkg/service/rss"
)

type stubRSSService struct {
	gotOpts   *rss.RSSOptions
	gotFormat rss.Format
	err       error
}

func (s *stubRSSService) GenerateFeed(ctx context.Context, opts *rss.RSSOptions) (*rss.Feed, error) {
	s.gotOpts = opts
	if s.err != nil {
		return nil, s.err
	}
	return &rss.Feed{Feed: &feeds.Feed{Title: "feed"}}, nil
}

func (s *stubRSSService) Render(feed *rss.Feed, format rss.Format) (string, error) {
	s.gotFormat = format
	return fmt.Sprintf("<%s>%s</%s>", format, feed.Title, format), nil
}

func (s *stubRSSService) WarmCache(ctx context.Context, tag string) error { return nil }

func (s *stubRSSService) InvalidateCache(ctx context.Context) error { return nil }

func serve(h *Handler, target string, headers map[string]string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/rss.xml", h.GetRSSFeed)
	engine.GET("/atom.xml", h.GetAtomFeed)
	engine.GET("/feed.json", h.GetJSONFeed)

	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestGetRSSFeed(t *testing.T) {
	svc := &stubRSSService{}
	w := serve(NewHandler(svc, "https://blog.example.com/"), "/rss.xml?tag=go", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/rss+xml; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "<rss>feed</rss>", w.Body.String())
	assert.Equal(t, "go", svc.gotOpts.Tag)
	assert.Equal(t, "https://blog.example.com", svc.gotOpts.BaseURL)
}

func TestFeedFormats(t *testing.T) {
	tests := []struct {
		target      string
		format      rss.Format
		contentType string
	}{
		{"/atom.xml", rss.FormatAtom, "application/atom+xml; charset=utf-8"},
		{"/feed.json", rss.FormatJSON, "application/feed+json; charset=utf-8"},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			svc := &stubRSSService{}
			w := serve(NewHandler(svc, "https://blog.example.com"), tt.target, nil)
			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.format, svc.gotFormat)
			assert.Equal(t, tt.contentType, w.Header().Get("Content-Type"))
		})
	}
}

func TestGetRSSFeed_InfersSiteURL(t *testing.T) {
	svc := &stubRSSService{}
	w := serve(NewHandler(svc, ""), "/rss.xml", map[string]string{"X-Forwarded-Proto": "https"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://example.com", svc.gotOpts.BaseURL)
}

func TestGetRSSFeed_IgnoresUnknownForwardedProto(t *testing.T) {
	svc := &stubRSSService{}
	w := serve(NewHandler(svc, ""), "/rss.xml", map[string]string{"X-Forwarded-Proto": "javascript"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://example.com", svc.gotOpts.BaseURL)
}

func TestGetRSSFeed_Errors(t *testing.T) {
	w := serve(NewHandler(&stubRSSService{err: fmt.Errorf("x: %w", constant.ErrCMSUnavailable)}, ""), "/rss.xml", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)

	w = serve(NewHandler(&stubRSSService{err: fmt.Errorf("boom")}, ""), "/rss.xml", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
