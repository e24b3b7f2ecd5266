package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedEvent struct {
	distinctID string
	event      string
	props      map[string]any
}

type recordingSink struct {
	events []capturedEvent
}

func (s *recordingSink) Enqueue(distinctID, event string, props map[string]any) {
	s.events = append(s.events, capturedEvent{distinctID, event, props})
}

func newAnalyticsRouter(sink EventSink, authenticated bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	v1 := r.Group("/api/v1", func(c *gin.Context) {
		if authenticated {
			c.Set(string(userIDKey), "u1")
		}
	}, PosthogMiddleware(sink))
	v1.POST("/reimbursements/:id/pay", func(c *gin.Context) { c.Status(http.StatusOK) })
	v1.GET("/invoices", func(c *gin.Context) { c.Status(http.StatusOK) })
	v1.DELETE("/clients/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	v1.POST("/invoices", func(c *gin.Context) { c.Status(http.StatusBadRequest) })
	return r
}

func serve(r *gin.Engine, method, path string) {
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(method, path, nil))
}

func TestPosthogMiddleware_TracksNamedEvent(t *testing.T) {
	sink := &recordingSink{}
	serve(newAnalyticsRouter(sink, true), http.MethodPost, "/api/v1/reimbursements/r1/pay")

	require.Len(t, sink.events, 1)
	assert.Equal(t, "u1", sink.events[0].distinctID)
	assert.Equal(t, "reimbursement_paid", sink.events[0].event)
	assert.Equal(t, "r1", sink.events[0].props["resource_id"])
}

func TestPosthogMiddleware_FallbackNameForOtherWrites(t *testing.T) {
	sink := &recordingSink{}
	serve(newAnalyticsRouter(sink, true), http.MethodDelete, "/api/v1/clients/c1")

	require.Len(t, sink.events, 1)
	assert.Equal(t, "api_v1_clients_:id_delete", sink.events[0].event)
}

func TestPosthogMiddleware_SkipsReadsFailuresAndAnonymous(t *testing.T) {
	sink := &recordingSink{}
	r := newAnalyticsRouter(sink, true)
	serve(r, http.MethodGet, "/api/v1/invoices")
	serve(r, http.MethodPost, "/api/v1/invoices")
	serve(newAnalyticsRouter(sink, false), http.MethodPost, "/api/v1/reimbursements/r1/pay")

	assert.Empty(t, sink.events)
}

func TestPosthogMiddleware_NilSink(t *testing.T) {
	assert.NotPanics(t, func() {
		serve(newAnalyticsRouter(nil, true), http.MethodPost, "/api/v1/reimbursements/r1/pay")
	})
}
