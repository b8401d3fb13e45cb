package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Baaaki/portfolio/internal/models"
	"github.com/Baaaki/portfolio/internal/service"
	"github.com/Baaaki/portfolio/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-test-secret"

func setupProtectedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	auth := service.NewAuthService(nil, testSecret, 0)

	router := gin.New()
	protected := router.Group("/")
	protected.Use(AuthMiddleware(auth), AdminMiddleware(auth))
	protected.POST("/projects", func(c *gin.Context) {
		claims := ClaimsFromContext(c)
		c.JSON(http.StatusCreated, gin.H{"by": claims.Username})
	})

	// Admin gate without the auth gate in front of it.
	router.POST("/unguarded", AdminMiddleware(auth), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	return router
}

func tokenFor(t *testing.T, role models.Role) string {
	t.Helper()
	user := &models.User{ID: uuid.New(), Username: string(role) + "-user", Role: role}
	token, err := utils.GenerateToken(user, testSecret, 0)
	require.NoError(t, err)
	return token
}

func doRequest(router http.Handler, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(`{}`))
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_StateMachine(t *testing.T) {
	router := setupProtectedRouter()
	adminToken := tokenFor(t, models.RoleAdmin)
	userToken := tokenFor(t, models.RoleUser)

	testCases := []struct {
		name   string
		header string
		want   int
	}{
		{"No header", "", http.StatusUnauthorized},
		{"Wrong scheme", "Basic " + adminToken, http.StatusUnauthorized},
		{"Bare token", adminToken, http.StatusUnauthorized},
		{"Empty bearer", "Bearer ", http.StatusUnauthorized},
		{"Garbage token", "Bearer not.a.token", http.StatusUnauthorized},
		{"Non-admin", "Bearer " + userToken, http.StatusForbidden},
		{"Admin", "Bearer " + adminToken, http.StatusCreated},
		{"Lowercase scheme", "bearer " + adminToken, http.StatusCreated},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(router, "/projects", tc.header)
			assert.Equal(t, tc.want, w.Code, w.Body.String())
		})
	}
}

func TestAuthMiddleware_ForgedSignature(t *testing.T) {
	router := setupProtectedRouter()
	user := &models.User{ID: uuid.New(), Username: "mallory", Role: models.RoleAdmin}
	forged, err := utils.GenerateToken(user, "guessed-secret", 0)
	require.NoError(t, err)

	w := doRequest(router, "/projects", "Bearer "+forged)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminMiddleware_WithoutClaimsIsUnauthorized(t *testing.T) {
	router := setupProtectedRouter()

	w := doRequest(router, "/unguarded", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSecurityHeadersMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(SecurityHeadersMiddleware(), HSTSMiddleware(true))
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.NotEmpty(t, w.Header().Get("Strict-Transport-Security"))
}

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("Allow all", func(t *testing.T) {
		router := gin.New()
		router.Use(CORSMiddleware(nil))
		router.GET("/projects", func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodGet, "/projects", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("Restricted", func(t *testing.T) {
		router := gin.New()
		router.Use(CORSMiddleware([]string{"https://portfolio.example"}))
		router.GET("/projects", func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodGet, "/projects", nil)
		req.Header.Set("Origin", "https://evil.example")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestMetricsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	// Second registration must reuse the collectors instead of failing.
	m2 := NewMetrics(reg)

	router := gin.New()
	router.Use(m.Middleware())
	router.GET("/projects", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/projects", nil))
	}
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	ok := m2.requestTotal.WithLabelValues(http.MethodGet, "/projects", "200")
	assert.Equal(t, float64(3), testutil.ToFloat64(ok))
	missing := m.requestTotal.WithLabelValues(http.MethodGet, "unmatched", "404")
	assert.Equal(t, float64(1), testutil.ToFloat64(missing))
}
