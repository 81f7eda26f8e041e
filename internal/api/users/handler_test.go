package users

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"directory-app/database"
	"directory-app/internal/domain/catalog"
	"directory-app/internal/domain/plans"
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

	for _, p := range plans.Seed() {
		plan := p
		require.NoError(t, database.DB.Create(&plan).Error)
	}
}

func meRouter(userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	})
	r.GET("/api/me", GetCurrentUser)
	r.PUT("/api/me", UpdateCurrentUser)
	return r
}

func TestGetCurrentUserWithoutSubscription(t *testing.T) {
	setupDB(t)
	u := users.User{Name: "Ana", Email: "ana@example.com", Role: users.RoleClient}
	require.NoError(t, database.DB.Create(&u).Error)

	w := httptest.NewRecorder()
	meRouter(u.ID).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/me", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp MeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ana@example.com", resp.User.Email)
	assert.Equal(t, users.RoleClient, resp.User.Role)
	assert.Nil(t, resp.Subscription)
	assert.False(t, resp.Access.CanListBusinesses)
}

func TestGetCurrentUserWithActiveSubscription(t *testing.T) {
	setupDB(t)

	now := time.Now()
	active := users.SubscriptionActive
	method := "momo"
	premium := plans.TierPremium
	u := users.User{
		Name:               "Bao",
		Email:              "bao@example.com",
		Role:               users.RoleOwner,
		PlanID:             &premium,
		SubscriptionStart:  &now,
		SubscriptionStatus: &active,
		PaymentMethod:      &method,
	}
	require.NoError(t, database.DB.Create(&u).Error)
	require.NoError(t, database.DB.Create(&catalog.Business{
		OwnerID: u.ID, Name: "Shop", Category: catalog.CategoryRestaurant, Address: "x",
	}).Error)

	w := httptest.NewRecorder()
	meRouter(u.ID).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/me", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp MeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Subscription)
	assert.Equal(t, plans.TierPremium, resp.Subscription.ID)
	assert.Equal(t, "Premium Owner", resp.Subscription.PlanName)
	assert.Equal(t, users.SubscriptionActive, resp.Subscription.Status)

	assert.True(t, resp.Access.CanListBusinesses)
	assert.Equal(t, 10, resp.Access.BusinessLimit)
	assert.Equal(t, 1, resp.Access.BusinessesUsed)
}

func TestUpdateCurrentUserPartial(t *testing.T) {
	setupDB(t)
	u := users.User{Name: "Chi", Email: "chi@example.com", Role: users.RoleClient}
	require.NoError(t, database.DB.Create(&u).Error)

	body, _ := json.Marshal(gin.H{"name": "Chi Pham", "onboarding_completed": true})
	req := httptest.NewRequest(http.MethodPut, "/api/me", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	meRouter(u.ID).ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var fresh users.User
	require.NoError(t, database.DB.First(&fresh, u.ID).Error)
	assert.Equal(t, "Chi Pham", fresh.Name)
	assert.True(t, fresh.OnboardingCompleted)
	assert.Equal(t, "chi@example.com", fresh.Email) // untouched
}
