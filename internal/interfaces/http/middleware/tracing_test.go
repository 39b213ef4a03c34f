package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	apptrash "github.com/erp/papelera/internal/application/trash"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newTracedRouter(t *testing.T, status int) (*gin.Engine, *tracetest.SpanRecorder) {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(t.Context()) })

	router := gin.New()
	router.Use(
		RequestID(),
		Tracing(TracingConfig{ServiceName: "papelera", Enabled: true, TracerProvider: tp}),
		func(c *gin.Context) {
			c.Set(PrincipalKey, apptrash.Principal{UserID: "9", Username: "gerente"})
			c.Next()
		},
		SpanAttributes(),
	)
	router.POST("/api/v1/:categoria/:id/restaurar/", func(c *gin.Context) {
		c.Status(status)
	})
	return router, sr
}

func spanAttrs(s sdktrace.ReadOnlySpan) map[attribute.Key]string {
	out := map[attribute.Key]string{}
	for _, kv := range s.Attributes() {
		out[kv.Key] = kv.Value.Emit()
	}
	return out
}

func TestTracing_TagsSpan(t *testing.T) {
	router, sr := newTracedRouter(t, http.StatusOK)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/productos/7/restaurar/", nil)
	req.Header.Set(RequestIDHeader, "req-77")
	router.ServeHTTP(httptest.NewRecorder(), req)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Contains(t, spans[0].Name(), "/api/v1/:categoria/:id/restaurar/")
	attrs := spanAttrs(spans[0])
	assert.Equal(t, "req-77", attrs["request_id"])
	assert.Equal(t, "9", attrs["enduser.id"])
	assert.Equal(t, "gerente", attrs["enduser.name"])
	assert.NotEqual(t, codes.Error, spans[0].Status().Code)
}

func TestTracing_MarksClientErrors(t *testing.T) {
	router, sr := newTracedRouter(t, http.StatusConflict)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/v1/productos/7/restaurar/", nil))

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "Conflict", spans[0].Status().Description)
}

func TestTracing_Disabled(t *testing.T) {
	router := gin.New()
	router.Use(Tracing(TracingConfig{Enabled: false}), SpanAttributes())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
