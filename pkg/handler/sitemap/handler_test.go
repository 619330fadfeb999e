package sitemap

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	smap "github.com/snabb/sitemap"
	"github.com/stretchr/testify/assert"

	"github.com/anzhiyu-c/anheyu-posts/pkg/constant"
	"github.com/anzhiyu-c/anheyu-posts/pkg/service/sitemap"
)

var _ sitemap.Service = (*stubSitemapService)(nil)

type stubSitemapService struct {
	gotBaseURL string
	err        error
}

func (s *stubSitemapService) GenerateSitemap(ctx context.Context, baseURL string) (*smap.Sitemap, error) {
	s.gotBaseURL = baseURL
	if s.err != nil {
		return nil, s.err
	}
	sm := smap.New()
	sm.Add(&smap.URL{Loc: baseURL + "/posts"})
	return sm, nil
}

func (s *stubSitemapService) GenerateXML(sm *smap.Sitemap) (string, error) {
	return "<urlset>" + sm.URLs[0].Loc + "</urlset>", nil
}

func (s *stubSitemapService) GenerateRobots(baseURL string) string {
	return "Sitemap: " + baseURL + "/sitemap.xml"
}

func serve(h *Handler, target string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/sitemap.xml", h.GetSitemap)
	engine.GET("/robots.txt", h.GetRobots)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestGetSitemap(t *testing.T) {
	svc := &stubSitemapService{}
	w := serve(NewHandler(svc, "https://blog.example.com/"), "/sitemap.xml")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://blog.example.com", svc.gotBaseURL)
	assert.Equal(t, "<urlset>https://blog.example.com/posts</urlset>", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "text/xml")
}

func TestGetSitemap_Errors(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("wrap: %w", constant.ErrCMSUnavailable), http.StatusBadGateway},
		{fmt.Errorf("other"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		w := serve(NewHandler(&stubSitemapService{err: tt.err}, ""), "/sitemap.xml")
		assert.Equal(t, tt.want, w.Code)
	}
}

func TestGetRobots(t *testing.T) {
	w := serve(NewHandler(&stubSitemapService{}, ""), "/robots.txt")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Sitemap: http://example.com/sitemap.xml", w.Body.String())
}
