package auth

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"directory-app/config"
	"directory-app/database"
	"directory-app/internal/app/http/middleware"
	"directory-app/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupDB(t *testing.T) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.DB = db
	config.JWT_SECRET = "test-secret"
}

func authRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/auth/register", Register)
	r.POST("/api/auth/login", Login)

	protected := r.Group("/")
	protected.Use(middleware.AuthMiddleware())
	protected.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"email": c.GetString("email"), "role": c.GetString("role")})
	})
	return r
}

func doJSON(r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	buf, _ := json.Marshal(body)
	req := httptest.NewRequest(method, path, bytes.NewReader(buf))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterLoginRoundTrip(t *testing.T) {
	setupDB(t)
	r := authRouter()

	w := doJSON(r, http.MethodPost, "/api/auth/register", gin.H{
		"name":     "Ana",
		"phone":    "0901234567",
		"email":    "ana@example.com",
		"password": "sup3rsecret",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var user users.User
	require.NoError(t, database.DB.Where("email = ?", "ana@example.com").First(&user).Error)
	assert.Equal(t, users.RoleClient, user.Role)
	assert.False(t, user.IsVerified)

	// unverified accounts cannot log in yet
	w = doJSON(r, http.MethodPost, "/api/auth/login", gin.H{"email": "ana@example.com", "password": "sup3rsecret"}, "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	require.NoError(t, database.DB.Model(&user).Update("is_verified", true).Error)

	w = doJSON(r, http.MethodPost, "/api/auth/login", gin.H{"email": "ana@example.com", "password": "sup3rsecret"}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp["token"])

	// the issued token passes the auth middleware
	w = doJSON(r, http.MethodGet, "/whoami", nil, resp["token"])
	require.Equal(t, http.StatusOK, w.Code)
	var who map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &who))
	assert.Equal(t, "ana@example.com", who["email"])
	assert.Equal(t, users.RoleClient, who["role"])
}

func TestRegisterRejectsWeakPasswordAndDuplicates(t *testing.T) {
	setupDB(t)
	r := authRouter()

	w := doJSON(r, http.MethodPost, "/api/auth/register", gin.H{
		"name": "Ana", "email": "ana@example.com", "password": "short1",
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/api/auth/register", gin.H{
		"name": "Ana", "email": "ana@example.com", "password": "lettersonly",
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	payload := gin.H{"name": "Ana", "email": "ana@example.com", "password": "sup3rsecret"}
	w = doJSON(r, http.MethodPost, "/api/auth/register", payload, "")
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(r, http.MethodPost, "/api/auth/register", payload, "")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	setupDB(t)
	r := authRouter()

	doJSON(r, http.MethodPost, "/api/auth/register", gin.H{
		"name": "Ana", "email": "ana@example.com", "password": "sup3rsecret",
	}, "")
	var user users.User
	require.NoError(t, database.DB.Where("email = ?", "ana@example.com").First(&user).Error)
	require.NoError(t, database.DB.Model(&user).Update("is_verified", true).Error)

	w := doJSON(r, http.MethodPost, "/api/auth/login", gin.H{"email": "ana@example.com", "password": "wrongpass1"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodPost, "/api/auth/login", gin.H{"email": "nobody@example.com", "password": "sup3rsecret"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectsGarbageToken(t *testing.T) {
	setupDB(t)
	r := authRouter()

	w := doJSON(r, http.MethodGet, "/whoami", nil, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodGet, "/whoami", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
