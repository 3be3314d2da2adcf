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

	"github.com/classconnect/classconnect-api/internal/models"
	"github.com/classconnect/classconnect-api/internal/service"
)

const testSecret = "test-secret"

func testAuthService() *service.AuthService {
	return service.NewAuthService(nil, nil, nil, service.AuthConfig{
		AccessTokenSecret: testSecret,
		AccessTokenExpiry: time.Hour,
	})
}

func signToken(t *testing.T, secret string, role models.UserRole) string {
	t.Helper()
	claims := &models.JWTClaims{
		UserID: "u1",
		Role:   role,
		Name:   "Ada",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func protectedRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	all := append(handlers, func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	r.GET("/protected", all...)
	return r
}

func TestJWTRejectsMissingHeader(t *testing.T) {
	r := protectedRouter(JWT(testAuthService()))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/protected", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTRejectsMalformedHeader(t *testing.T) {
	r := protectedRouter(JWT(testAuthService()))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTRejectsForgedToken(t *testing.T) {
	r := protectedRouter(JWT(testAuthService()))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "wrong-secret", models.RoleTeacher))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAcceptsValidToken(t *testing.T) {
	r := protectedRouter(JWT(testAuthService()))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, models.RoleTeacher))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRolesBlocksOtherRoles(t *testing.T) {
	r := protectedRouter(JWT(testAuthService()), RequireRoles(models.RoleTeacher))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, models.RoleStudent))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRolesAllowsListedRole(t *testing.T) {
	r := protectedRouter(JWT(testAuthService()), RequireRoles(models.RoleTeacher))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, models.RoleTeacher))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
