package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	"wellness_backend/internal/config"
	"wellness_backend/internal/model"
	"wellness_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var authCfg = config.AuthConfig{JWTSecret: "0123456789abcdef0123456789abcdef", Issuer: "idp"}

type stubEnsurer struct {
	roles map[string]model.UserRole
	err   error
	seen  []string
}

func (s *stubEnsurer) Ensure(ctx context.Context, claims *util.Claims) (*model.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.seen = append(s.seen, claims.UserID())
	role := s.roles[claims.UserID()]
	if role == "" {
		role = model.Member
	}
	return &model.User{ID: claims.UserID(), Role: role}, nil
}

func token(t *testing.T, subject string, role model.UserRole) string {
	t.Helper()
	claims := &util.Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    authCfg.Issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(authCfg.JWTSecret))
	require.NoError(t, err)
	return s
}

func newRouter(users UserEnsurer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api", AuthMiddleware(authCfg, users))
	api.GET("/me", func(c *gin.Context) {
		c.String(http.StatusOK, util.GetUserFromContext(c).UserID())
	})
	api.GET("/admin", RoleMiddleware(model.Admin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func serve(r http.Handler, path, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	users := &stubEnsurer{}
	r := newRouter(users)

	w := serve(r, "/api/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(r, "/api/me", "bogus")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(r, "/api/me", token(t, "u1", ""))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u1", w.Body.String())
	assert.Equal(t, []string{"u1"}, users.seen)

}

func TestAuthMiddlewareRejectsQueryToken(t *testing.T) {
	users := &stubEnsurer{}
	r := newRouter(users)

	w := serve(r, "/api/me?token="+token(t, "u2", ""), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, users.seen)
}

func TestAuthMiddlewareEnsureFailure(t *testing.T) {
	r := newRouter(&stubEnsurer{err: errors.New("db down")})

	w := serve(r, "/api/me", token(t, "u1", ""))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRoleMiddlewareUsesStoredRole(t *testing.T) {
	users := &stubEnsurer{roles: map[string]model.UserRole{"boss": model.Admin}}
	r := newRouter(users)

	// 令牌自称管理员无效
	w := serve(r, "/api/admin", token(t, "u1", model.Admin))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = serve(r, "/api/admin", token(t, "boss", ""))
	assert.Equal(t, http.StatusNoContent, w.Code)
}
