package webhook

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anzhiyu-c/anheyu-posts/internal/pkg/auth"
	"github.com/anzhiyu-c/anheyu-posts/internal/pkg/event"
)

type recordingBus struct {
	full     bool
	topics   []event.Topic
	payloads []interface{}
}

func (b *recordingBus) Publish(topic event.Topic, payload interface{}) bool {
	if b.full {
		return false
	}
	b.topics = append(b.topics, topic)
	b.payloads = append(b.payloads, payload)
	return true
}

func serve(bus Publisher, claims *auth.WebhookClaims, body string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.POST("/api/cms/webhook", func(c *gin.Context) {
		if claims != nil {
			c.Set(auth.ClaimsKey, claims)
		}
		c.Next()
	}, NewHandler(bus).Notify)

	req := httptest.NewRequest(http.MethodPost, "/api/cms/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestNotify_PublishesContentUpdated(t *testing.T) {
	bus := &recordingBus{}
	w := serve(bus, &auth.WebhookClaims{Collection: "theme"}, `{"collection":"post","reason":"publish"}`)

	require.Equal(t, http.StatusAccepted, w.Code)
	require.Len(t, bus.topics, 1)
	assert.Equal(t, event.ContentUpdated, bus.topics[0])
	assert.Equal(t, event.ContentUpdatedPayload{Collection: "theme", Reason: "publish"}, bus.payloads[0])
}

func TestNotify_EmptyBodyDefaultsReason(t *testing.T) {
	bus := &recordingBus{}
	w := serve(bus, nil, "")

	require.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, event.ContentUpdatedPayload{Reason: "webhook"}, bus.payloads[0])
}

func TestNotify_Errors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, serve(&recordingBus{}, nil, `{bad`).Code)
	assert.Equal(t, http.StatusServiceUnavailable, serve(&recordingBus{full: true}, nil, `{}`).Code)
}
