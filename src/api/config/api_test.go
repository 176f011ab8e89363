package config

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHealthRouter(cfg APIConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	SetupAPIModule(router, router.Group("/api/v1"), cfg)
	return router
}

func getHealth(t *testing.T, router *gin.Engine, path string) (int, map[string]interface{}) {
	t.Helper()
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestHealth_MemorySubmissionLog(t *testing.T) {
	router := newHealthRouter(DefaultAPIConfig())

	for _, path := range []string{"/health", "/api/v1/health"} {
		status, body := getHealth(t, router, path)
		assert.Equal(t, http.StatusOK, status, path)
		assert.Equal(t, "memory", body["database"])
		assert.Equal(t, "sell-service", body["service"])
	}
}

func TestHealth_PostgresSubmissionLog(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	cfg := DefaultAPIConfig()
	cfg.DB = db
	router := newHealthRouter(cfg)

	mock.ExpectPing()
	status, body := getHealth(t, router, "/health")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "up", body["database"])

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	status, body = getHealth(t, router, "/api/v1/health")
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "down", body["database"])
	assert.Equal(t, "Service Unavailable", body["status"])

	assert.NoError(t, mock.ExpectationsWereMet())
}
