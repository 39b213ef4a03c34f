package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/erp/papelera/internal/infrastructure/auth"
	"github.com/erp/papelera/internal/infrastructure/config"
	"github.com/erp/papelera/internal/interfaces/http/handler"
	"github.com/erp/papelera/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

type whoami struct{}

func (whoami) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/whoami/", func(c *gin.Context) {
		c.String(http.StatusOK, middleware.GetPrincipal(c).Username)
	})
}

func newTestRouter(t *testing.T, swagger bool) (*gin.Engine, *auth.JWTService) {
	t.Helper()
	tokens := auth.NewJWTService(config.JWTConfig{
		Secret:                "router-test-secret-at-least-32-chars",
		Issuer:                "papelera",
		AccessTokenExpiration: time.Hour,
	})
	engine, err := NewRouter(Config{
		ServiceName:    "papelera",
		HTTP:           config.HTTPConfig{MaxBodySize: 1 << 20, CORSAllowOrigins: []string{"http://localhost:5173"}},
		SwaggerEnabled: swagger,
		Tokens:         tokens,
		System:         handler.NewSystemHandler(okPinger{}, "test"),
	}).Register(whoami{}).Setup()
	require.NoError(t, err)
	return engine, tokens
}

func serve(engine http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestRouter_HealthIsPublic(t *testing.T) {
	engine, _ := newTestRouter(t, false)

	w := serve(engine, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
}

func TestRouter_APIRequiresToken(t *testing.T) {
	engine, tokens := newTestRouter(t, false)

	w := serve(engine, httptest.NewRequest(http.MethodGet, "/api/v1/whoami/", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, _, err := tokens.GenerateAccessToken(auth.TokenInput{UserID: "4", Username: "gerente", Roles: []string{"Gerente"}})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/whoami/", nil)
	req.Header.Set(middleware.AuthHeaderKey, middleware.BearerPrefix+token)
	w = serve(engine, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "gerente", w.Body.String())
}

func TestRouter_UnknownRoute(t *testing.T) {
	engine, _ := newTestRouter(t, false)

	w := serve(engine, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"NOT_FOUND"`)
}

func TestRouter_Swagger(t *testing.T) {
	enabled, _ := newTestRouter(t, true)
	w := serve(enabled, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/conflictos/{id}/resolver/")

	disabled, _ := newTestRouter(t, false)
	w = serve(disabled, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_WithAPIVersion(t *testing.T) {
	r := NewRouter(Config{}, WithAPIVersion("v2"))
	assert.Equal(t, "v2", r.apiVersion)
}
