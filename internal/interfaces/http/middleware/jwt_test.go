package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/erp/papelera/internal/infrastructure/auth"
	"github.com/erp/papelera/internal/infrastructure/config"
	"github.com/erp/papelera/internal/infrastructure/logger"
	"github.com/erp/papelera/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-at-least-32-chars!!"

func newTestJWTService(expiration time.Duration) *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                testSecret,
		Issuer:                "papelera-test",
		AccessTokenExpiration: expiration,
	})
}

func issue(t *testing.T, svc *auth.JWTService, in auth.TokenInput) string {
	t.Helper()
	token, _, err := svc.GenerateAccessToken(in)
	require.NoError(t, err)
	return token
}

func newAuthRouter(svc *auth.JWTService) *gin.Engine {
	router := gin.New()
	router.Use(RequestID(), JWTAuth(AuthConfig{Validator: svc, SkipPaths: []string{"/health"}}))
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/whoami", func(c *gin.Context) {
		p := GetPrincipal(c)
		actor, _ := logger.ActorFrom(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{
			"user_id":   p.UserID,
			"username":  p.Username,
			"roles":     p.Roles,
			"superuser": p.Superuser,
			"actor":     actor.Username,
		})
	})
	return router
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorInfo {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.False(t, resp.Success)
	return *resp.Error
}

func TestJWTAuth_ValidToken(t *testing.T) {
	svc := newTestJWTService(time.Hour)
	token := issue(t, svc, auth.TokenInput{UserID: "12", Username: "gerente", Roles: []string{"Gerente"}})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+token)
	w := httptest.NewRecorder()
	newAuthRouter(svc).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "12", body["user_id"])
	assert.Equal(t, "gerente", body["username"])
	assert.Equal(t, []any{"Gerente"}, body["roles"])
	assert.Equal(t, false, body["superuser"])
	assert.Equal(t, "gerente", body["actor"])
}

func TestJWTAuth_Rejections(t *testing.T) {
	svc := newTestJWTService(time.Hour)
	expired := issue(t, newTestJWTService(-time.Minute), auth.TokenInput{UserID: "1", Username: "ana"})
	foreign := issue(t, auth.NewJWTService(config.JWTConfig{
		Secret:                "another-secret-key-at-least-32-chars",
		Issuer:                "papelera-test",
		AccessTokenExpiration: time.Hour,
	}), auth.TokenInput{UserID: "1", Username: "ana"})

	tests := []struct {
		name   string
		header string
		code   string
	}{
		{"missing header", "", dto.ErrCodeUnauthorized},
		{"not bearer", "Basic Zm9vOmJhcg==", dto.ErrCodeUnauthorized},
		{"empty bearer", "Bearer ", dto.ErrCodeUnauthorized},
		{"garbage", "Bearer not-a-jwt", dto.ErrCodeTokenInvalid},
		{"wrong secret", "Bearer " + foreign, dto.ErrCodeTokenInvalid},
		{"expired", "Bearer " + expired, dto.ErrCodeTokenExpired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set(AuthHeaderKey, tt.header)
			}
			w := httptest.NewRecorder()
			newAuthRouter(svc).ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			info := decodeError(t, w)
			assert.Equal(t, tt.code, info.Code)
			assert.Equal(t, w.Header().Get(RequestIDHeader), info.RequestID)
		})
	}
}

func TestJWTAuth_SkipPaths(t *testing.T) {
	w := httptest.NewRecorder()
	newAuthRouter(newTestJWTService(time.Hour)).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetPrincipal_Anonymous(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	assert.Empty(t, GetPrincipal(c).UserID)
	assert.Nil(t, GetJWTClaims(c))
}
