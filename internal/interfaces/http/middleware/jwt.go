package middleware

import (
	"errors"
	"strings"

	apptrash "github.com/erp/papelera/internal/application/trash"
	"github.com/erp/papelera/internal/infrastructure/auth"
	"github.com/erp/papelera/internal/infrastructure/logger"
	"github.com/erp/papelera/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Auth context keys and header
const (
	PrincipalKey  = "principal"
	JWTClaimsKey  = "jwt_claims"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

var errMissingToken = errors.New("missing bearer token")

// TokenValidator validates bearer tokens; *auth.JWTService implements it
type TokenValidator interface {
	ValidateAccessToken(token string) (*auth.Claims, error)
}

// AuthConfig holds configuration for the auth middleware
type AuthConfig struct {
	Validator TokenValidator
	// SkipPaths bypass authentication
	SkipPaths []string
	Logger    *zap.Logger
}

// JWTAuth authenticates the bearer token and stores the caller as an
// application Principal. Authorization is left to the services.
func JWTAuth(cfg AuthConfig) gin.HandlerFunc {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		for _, p := range cfg.SkipPaths {
			if c.Request.URL.Path == p {
				c.Next()
				return
			}
		}

		header := c.GetHeader(AuthHeaderKey)
		if header == "" {
			abortAuth(c, cfg, errMissingToken, "Missing authorization header")
			return
		}
		if !strings.HasPrefix(header, BearerPrefix) {
			abortAuth(c, cfg, errMissingToken, "Invalid authorization header format")
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix))
		if token == "" {
			abortAuth(c, cfg, errMissingToken, "Missing token")
			return
		}

		claims, err := cfg.Validator.ValidateAccessToken(token)
		if err != nil {
			abortAuth(c, cfg, err, "Token validation failed")
			return
		}

		principal := apptrash.Principal{
			UserID:    claims.UserID,
			Username:  claims.Username,
			Roles:     claims.Roles,
			Superuser: claims.Superuser,
		}
		c.Set(JWTClaimsKey, claims)
		c.Set(PrincipalKey, principal)

		ctx := logger.WithActor(c.Request.Context(), logger.Actor{
			UserID:   claims.UserID,
			Username: claims.Username,
		})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func abortAuth(c *gin.Context, cfg AuthConfig, err error, reason string) {
	cfg.Logger.Warn("JWT authentication failed",
		zap.Error(err),
		zap.String("reason", reason),
		zap.String("path", c.Request.URL.Path),
	)

	code, message := dto.ErrCodeUnauthorized, "Authentication required"
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		code, message = dto.ErrCodeTokenExpired, "Token has expired"
	case errors.Is(err, auth.ErrTokenNotYetValid):
		code, message = dto.ErrCodeTokenInvalid, "Token is not yet valid"
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrInvalidClaims):
		code, message = dto.ErrCodeTokenInvalid, "Invalid token"
	}
	c.AbortWithStatusJSON(dto.GetHTTPStatus(code), dto.NewErrorResponse(code, message, GetRequestID(c)))
}

// GetPrincipal returns the authenticated caller. The zero Principal is
// returned for anonymous requests and is rejected by the services.
func GetPrincipal(c *gin.Context) apptrash.Principal {
	if v, ok := c.Get(PrincipalKey); ok {
		if p, ok := v.(apptrash.Principal); ok {
			return p
		}
	}
	return apptrash.Principal{}
}

// GetJWTClaims returns the validated claims, nil when unauthenticated
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if v, ok := c.Get(JWTClaimsKey); ok {
		if claims, ok := v.(*auth.Claims); ok {
			return claims
		}
	}
	return nil
}
