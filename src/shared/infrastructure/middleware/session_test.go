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
)

const testSecret = "s3cret"

func signToken(t *testing.T, secret string, roleID int64, expiresIn time.Duration) string {
	t.Helper()
	claims := Claims{
		UserID:    3,
		Usuario:   "cajero",
		EmpresaID: 7,
		RolID:     roleID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestTokenParser_VerifiesSignature(t *testing.T) {
	parser := NewTokenParser(testSecret)

	claims, err := parser.Parse(signToken(t, testSecret, RoleAdmin, time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.EmpresaID)
	assert.Equal(t, RoleAdmin, claims.RolID)

	_, err = parser.Parse(signToken(t, "other", RoleAdmin, time.Hour))
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = parser.Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenParser_Expired(t *testing.T) {
	token := signToken(t, testSecret, RoleAdmin, -time.Minute)

	_, err := NewTokenParser(testSecret).Parse(token)
	assert.ErrorIs(t, err, ErrExpiredToken)

	_, err = NewTokenParser("").Parse(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenParser_UnverifiedModeDecodesAnySignature(t *testing.T) {
	claims, err := NewTokenParser("").Parse(signToken(t, "whatever", RoleInvoicer, time.Hour))

	require.NoError(t, err)
	assert.Equal(t, int64(3), claims.UserID)
	assert.Equal(t, RoleInvoicer, claims.RolID)
	assert.False(t, NewTokenParser("").Verifies())
	assert.True(t, NewTokenParser(testSecret).Verifies())
}

func newSessionRouter(roles ...int64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("/", SessionMiddleware(NewTokenParser(testSecret)))
	handler := func(c *gin.Context) {
		session, _ := GetSession(c)
		c.JSON(http.StatusOK, gin.H{"empresa": session.TenantID, "auth": session.Authorization})
	}
	group.GET("/open", handler)
	group.GET("/admin", RequireRole(roles...), handler)
	return router
}

func TestSessionMiddleware(t *testing.T) {
	router := newSessionRouter(RoleSuperAdmin, RoleAdmin)

	tests := []struct {
		name   string
		path   string
		header string
		status int
	}{
		{"missing header", "/open", "", http.StatusUnauthorized},
		{"garbage token", "/open", "Bearer nope", http.StatusUnauthorized},
		{"expired token", "/open", "Bearer " + signToken(t, testSecret, RoleAdmin, -time.Minute), http.StatusUnauthorized},
		{"valid token", "/open", "Bearer " + signToken(t, testSecret, RoleInvoicer, time.Hour), http.StatusOK},
		{"invoicer on admin route", "/admin", "Bearer " + signToken(t, testSecret, RoleInvoicer, time.Hour), http.StatusForbidden},
		{"admin on admin route", "/admin", "Bearer " + signToken(t, testSecret, RoleAdmin, time.Hour), http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestSessionMiddleware_KeepsAuthorizationHeader(t *testing.T) {
	router := newSessionRouter()
	header := "Bearer " + signToken(t, testSecret, RoleInvoicer, time.Hour)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", header)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"empresa":7`)
	assert.Contains(t, w.Body.String(), header)
}

func TestRequireVerifiedSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	newRouter := func(secret string) *gin.Engine {
		router := gin.New()
		group := router.Group("/", SessionMiddleware(NewTokenParser(secret)))
		group.GET("/local", RequireVerifiedSession(), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		return router
	}
	forged := "Bearer " + signToken(t, "attacker-key", RoleSuperAdmin, time.Hour)
	signed := "Bearer " + signToken(t, testSecret, RoleSuperAdmin, time.Hour)

	tests := []struct {
		name   string
		secret string
		header string
		status int
	}{
		{"unverified mode rejects any token", "", forged, http.StatusForbidden},
		{"unverified mode rejects a well signed token", "", signed, http.StatusForbidden},
		{"verified mode rejects a forged token", testSecret, forged, http.StatusUnauthorized},
		{"verified mode accepts a signed token", testSecret, signed, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/local", nil)
			req.Header.Set("Authorization", tt.header)
			newRouter(tt.secret).ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestRoleName(t *testing.T) {
	assert.Equal(t, "SUPER_ADMIN", RoleName(RoleSuperAdmin))
	assert.Equal(t, "INVOICER", RoleName(RoleInvoicer))
	assert.Equal(t, "UNKNOWN", RoleName(99))
	assert.True(t, Session{RoleID: RoleAdmin}.IsAdmin())
	assert.False(t, Session{RoleID: RoleInvoicer}.IsAdmin())
}
