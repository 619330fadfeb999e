package posts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anzhiyu-c/anheyu-posts/assets"
	"github.com/anzhiyu-c/anheyu-posts/pkg/constant"
	"github.com/anzhiyu-c/anheyu-posts/pkg/domain/model"
	"github.com/anzhiyu-c/anheyu-posts/pkg/response"
)

type stubPostService struct {
	page    *model.PostsPage
	tags    []model.TagSummary
	err     error
	gotTag  string
	gotTags string
}

func (s *stubPostService) GetPostsPage(ctx context.Context, tag string) (*model.PostsPage, error) {
	s.gotTag = tag
	return s.page, s.err
}

func (s *stubPostService) ListTags(ctx context.Context, activeTag string) ([]model.TagSummary, error) {
	s.gotTags = activeTag
	return s.tags, s.err
}

func samplePage() *model.PostsPage {
	posts := &model.PostConnectionResult{
		Data: model.PostConnectionData{PostConnection: &model.PostConnection{
			TotalCount: 1,
			Edges:      []model.PostEdge{{Node: &model.Post{ID: "a", Title: "</script><b>Hello</b>", Tags: []string{"go"}}}},
		}},
		Query:     "query postConnection",
		Variables: map[string]interface{}{"filter": map[string]interface{}{"tags": map[string]interface{}{"eq": "go"}}},
	}
	return &model.PostsPage{
		ActiveTag: "go",
		AllTags:   []string{"go", "web"},
		Posts:     posts,
		Cards: []model.PostCard{{
			ID: "a", Title: "</script><b>Hello</b>", Link: "/posts/a", Tags: []string{"go"}, ExcerptHTML: "<p>intro</p>",
			DisplayDate: "2026-09-01",
		}},
	}
}

func newTestEngine(t *testing.T, svc *stubPostService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tmpl, err := assets.LoadTemplates()
	require.NoError(t, err)

	engine := gin.New()
	engine.SetHTMLTemplate(tmpl)

	h := NewHandler(svc, SiteInfo{Name: "半亩方糖", Description: "desc"})
	engine.GET("/posts", h.PostsPage)
	engine.GET("/api/posts", h.ListPosts)
	engine.GET("/api/tags", h.ListTags)
	return engine
}

func doGet(engine *gin.Engine, target string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestPostsPage_RendersLayoutAndProps(t *testing.T) {
	svc := &stubPostService{page: samplePage()}
	engine := newTestEngine(t, svc)

	w := doGet(engine, "/posts?tag=go", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "go", svc.gotTag)
	assert.NotEmpty(t, w.Header().Get("ETag"))

	body := w.Body.String()
	assert.Contains(t, body, "<title>go - 半亩方糖</title>")
	assert.Contains(t, body, `href="/rss.xml?tag=go"`)
	assert.Contains(t, body, "&lt;/script&gt;&lt;b&gt;Hello&lt;/b&gt;")
	assert.Contains(t, body, "<p>intro</p>")
	assert.Contains(t, body, `id="__RAW_PAGE_DATA__"`)
	assert.Contains(t, body, `"postConnection":{"totalCount":1`)
	assert.Contains(t, body, `"query":"query postConnection"`)
	assert.Contains(t, body, `"variables":{"filter":{"tags":{"eq":"go"}}}`)
	assert.NotContains(t, body, `"</script>`, "JSON payload must not close the script tag")
}

func TestPostsPage_TagIsPassedLiterally(t *testing.T) {
	tests := []struct {
		target string
		want   string
	}{
		{"/posts", ""},
		{"/posts?tag=", ""},
		{"/posts?tag=%20", " "},
		{"/posts?tag=%20go", " go"},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			svc := &stubPostService{page: samplePage()}
			engine := newTestEngine(t, svc)

			w := doGet(engine, tt.target, nil)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.want, svc.gotTag)
		})
	}
}

func TestPostsPage_NilPageIsNoContent(t *testing.T) {
	engine := newTestEngine(t, &stubPostService{})

	w := doGet(engine, "/posts", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = doGet(engine, "/api/posts", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestPostsPage_NotModified(t *testing.T) {
	engine := newTestEngine(t, &stubPostService{page: samplePage()})

	first := doGet(engine, "/posts?tag=go", nil)
	require.Equal(t, http.StatusOK, first.Code)
	etag := first.Header().Get("ETag")

	second := doGet(engine, "/posts?tag=go", map[string]string{"If-None-Match": etag})
	assert.Equal(t, http.StatusNotModified, second.Code)
	assert.Empty(t, second.Body.String())
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"cms unavailable", fmt.Errorf("wrap: %w", constant.ErrCMSUnavailable), http.StatusBadGateway},
		{"cms response", fmt.Errorf("wrap: %w", constant.ErrCMSResponse), http.StatusBadGateway},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := newTestEngine(t, &stubPostService{err: tt.err})
			for _, path := range []string{"/posts", "/api/posts", "/api/tags"} {
				w := doGet(engine, path, nil)
				assert.Equal(t, tt.want, w.Code, path)
			}
		})
	}
}

func TestListPosts_JSON(t *testing.T) {
	engine := newTestEngine(t, &stubPostService{page: samplePage()})

	w := doGet(engine, "/api/posts?tag=go", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		response.Response
		Data model.PostsPage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "go", resp.Data.ActiveTag)
	assert.Equal(t, []string{"go", "web"}, resp.Data.AllTags)
	require.NotNil(t, resp.Data.Posts)
	assert.Equal(t, 1, resp.Data.Posts.Connection().TotalCount)
	require.Len(t, resp.Data.Cards, 1)
	assert.Equal(t, "2026-09-01", resp.Data.Cards[0].DisplayDate)
	assert.Equal(t, "/posts/a", resp.Data.Cards[0].Link)
	assert.Contains(t, w.Body.String(), `"display_date":"2026-09-01"`)
}

func TestListTags_JSON(t *testing.T) {
	svc := &stubPostService{tags: []model.TagSummary{{Name: "go", Count: 2, Active: true}}}
	engine := newTestEngine(t, svc)

	w := doGet(engine, "/api/tags?tag=go", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "go", svc.gotTags)
	assert.Contains(t, w.Body.String(), `"name":"go","count":2,"active":true`)
}
