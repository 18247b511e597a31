package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helpdesk/internal/infrastructure/auth"
	"helpdesk/internal/interfaces/http/handlers/testutil"
	"helpdesk/internal/shared/authorization"
	"helpdesk/internal/shared/constants"
)

const testSecret = "test-secret"

func newAuthTestEngine(t *testing.T) (*gin.Engine, *auth.JWTService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtService := auth.NewJWTService(testSecret, 15)
	m := NewAuthMiddleware(jwtService, testutil.NewMockLogger())

	engine := gin.New()
	engine.GET("/whoami", m.RequireAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.MustGet(constants.ContextKeyUserID),
			"role":    c.MustGet(constants.ContextKeyUserRole),
		})
	})
	return engine, jwtService
}

func TestAuthMiddleware_RequireAuth(t *testing.T) {
	t.Run("valid token populates the actor context", func(t *testing.T) {
		engine, jwtService := newAuthTestEngine(t)

		token, err := jwtService.Generate(7, authorization.RoleOperator)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"user_id":7`)
		assert.Contains(t, w.Body.String(), `"role":"operator"`)
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		engine, _ := newAuthTestEngine(t)

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("non-bearer header is rejected", func(t *testing.T) {
		engine, _ := newAuthTestEngine(t)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("token signed with another secret is rejected", func(t *testing.T) {
		engine, _ := newAuthTestEngine(t)

		forged, err := auth.NewJWTService("other-secret", 15).Generate(7, authorization.RoleUser)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+forged)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("non-access token type is rejected", func(t *testing.T) {
		engine, _ := newAuthTestEngine(t)

		// A refresh-style token with the right signature but wrong type.
		now := time.Now()
		claims := &auth.Claims{
			UserID:    7,
			Role:      authorization.RoleUser,
			TokenType: "refresh",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
				IssuedAt:  jwt.NewNumericDate(now),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
