package businesses

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

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
}

// testRouter mounts the catalog routes behind a stub identity so handlers
// see the same context keys the auth middleware sets.
func testRouter(userID uint, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != 0 {
			c.Set("user_id", userID)
			c.Set("role", role)
		}
		c.Next()
	})

	r.GET("/api/businesses", ListBusinesses)
	r.GET("/api/businesses/most-viewed", GetMostViewedBusinesses)
	r.GET("/api/businesses/search", SearchBusinesses)
	r.GET("/api/businesses/category/:category", GetBusinessesByCategory)
	r.GET("/api/businesses/owner/:ownerId", GetBusinessesByOwner)
	r.GET("/api/businesses/:id", GetBusinessByID)
	r.GET("/api/businesses/:id/ratings", ListRatings)
	r.POST("/api/businesses", CreateBusiness)
	r.PUT("/api/businesses/:id", UpdateBusiness)
	r.DELETE("/api/businesses/:id", DeleteBusiness)
	r.POST("/api/businesses/:id/ratings", SubmitRating)
	return r
}

func seedOwner(t *testing.T, tier uint) users.User {
	t.Helper()
	for _, p := range plans.Seed() {
		plan := p
		require.NoError(t, database.DB.Create(&plan).Error)
	}
	active := users.SubscriptionActive
	u := users.User{
		Name:               "Owner",
		Email:              fmt.Sprintf("owner-%s@example.com", strings.ReplaceAll(t.Name(), "/", "_")),
		Role:               users.RoleOwner,
		PlanID:             &tier,
		SubscriptionStatus: &active,
	}
	require.NoError(t, database.DB.Create(&u).Error)
	return u
}

func doJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		buf, _ := json.Marshal(body)
		reader = bytes.NewReader(buf)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createPayload(name, category string) map[string]interface{} {
	return map[string]interface{}{
		"name":     name,
		"category": category,
		"address":  "12 Lê Lợi, Đà Nẵng",
		"location": map[string]float64{"latitude": 16.0678, "longitude": 108.2208},
		"openingHours": map[string]interface{}{
			"open":  "08:00",
			"close": "21:30",
			"days":  []int{1, 2, 3, 4, 5},
		},
		"isOpen": true,
		"images": []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"},
		"products": []map[string]interface{}{
			{"name": "Phở bò", "price": 45000, "isAvailable": true},
			{"name": "Cà phê sữa", "price": 25000},
		},
	}
}

func TestCreateAndFetchBusinessRoundTrip(t *testing.T) {
	setupDB(t)
	owner := seedOwner(t, plans.TierVIP)
	r := testRouter(owner.ID, users.RoleOwner)

	w := doJSON(r, http.MethodPost, "/api/businesses", createPayload("Phở Hòa", catalog.CategoryRestaurant))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created BusinessDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, owner.ID, created.OwnerID)
	assert.Equal(t, "Phở Hòa", created.Name)
	assert.Equal(t, []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"}, created.Images)
	assert.Equal(t, "08:00", created.OpeningHours.Open)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, created.OpeningHours.Days)
	require.Len(t, created.Products, 2)
	assert.Equal(t, 45000.0, created.Products[0].Price)
	assert.True(t, created.Products[1].IsAvailable) // defaults to available
	assert.Equal(t, int64(0), created.ViewCount)

	// fetching by id counts one view
	w = doJSON(r, http.MethodGet, fmt.Sprintf("/api/businesses/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var fetched BusinessDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.Equal(t, int64(1), fetched.ViewCount)
	assert.Len(t, fetched.Products, 2)
}

func TestCreateBusinessRejectsUnknownCategory(t *testing.T) {
	setupDB(t)
	owner := seedOwner(t, plans.TierVIP)
	r := testRouter(owner.ID, users.RoleOwner)

	w := doJSON(r, http.MethodPost, "/api/businesses", createPayload("X", "spaceport"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateBusinessEnforcesPlanCap(t *testing.T) {
	setupDB(t)
	owner := seedOwner(t, plans.TierBasic) // cap 3
	r := testRouter(owner.ID, users.RoleOwner)

	for i := 0; i < 3; i++ {
		w := doJSON(r, http.MethodPost, "/api/businesses", createPayload(fmt.Sprintf("Shop %d", i), catalog.CategoryPharmacy))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w := doJSON(r, http.MethodPost, "/api/businesses", createPayload("One too many", catalog.CategoryPharmacy))
	assert.Equal(t, http.StatusForbidden, w.Code)

	var count int64
	database.DB.Model(&catalog.Business{}).Where("owner_id = ?", owner.ID).Count(&count)
	assert.Equal(t, int64(3), count)
}

func TestFiltersAndSearch(t *testing.T) {
	setupDB(t)
	owner := seedOwner(t, plans.TierVIP)
	r := testRouter(owner.ID, users.RoleOwner)

	doJSON(r, http.MethodPost, "/api/businesses", createPayload("Phở Hòa", catalog.CategoryRestaurant))
	doJSON(r, http.MethodPost, "/api/businesses", createPayload("Highlands Coffee", catalog.CategoryHotel))
	doJSON(r, http.MethodPost, "/api/businesses", createPayload("Mini Mart", catalog.CategoryPharmacy))

	w := doJSON(r, http.MethodGet, "/api/businesses/category/"+catalog.CategoryHotel, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []BusinessDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Highlands Coffee", list[0].Name)

	// search is case-insensitive
	w = doJSON(r, http.MethodGet, "/api/businesses/search?q=COFFEE", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Highlands Coffee", list[0].Name)

	w = doJSON(r, http.MethodGet, fmt.Sprintf("/api/businesses/owner/%d", owner.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 3)

	w = doJSON(r, http.MethodGet, "/api/businesses/category/unknown", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMostViewedOrdersAndLimits(t *testing.T) {
	setupDB(t)
	owner := seedOwner(t, plans.TierVIP)
	r := testRouter(owner.ID, users.RoleOwner)

	ids := make([]uint, 0, 3)
	for i := 0; i < 3; i++ {
		w := doJSON(r, http.MethodPost, "/api/businesses", createPayload(fmt.Sprintf("Shop %d", i), catalog.CategoryRestaurant))
		var dto BusinessDTO
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dto))
		ids = append(ids, dto.ID)
	}

	// shop 2 gets 3 views, shop 1 gets 1
	for i := 0; i < 3; i++ {
		doJSON(r, http.MethodGet, fmt.Sprintf("/api/businesses/%d", ids[2]), nil)
	}
	doJSON(r, http.MethodGet, fmt.Sprintf("/api/businesses/%d", ids[1]), nil)

	w := doJSON(r, http.MethodGet, "/api/businesses/most-viewed?limit=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []BusinessDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 2)
	assert.Equal(t, ids[2], list[0].ID)
	assert.Equal(t, ids[1], list[1].ID)
}

func TestUpdateBusinessIsOwnerScoped(t *testing.T) {
	setupDB(t)
	owner := seedOwner(t, plans.TierVIP)
	r := testRouter(owner.ID, users.RoleOwner)

	w := doJSON(r, http.MethodPost, "/api/businesses", createPayload("Phở Hòa", catalog.CategoryRestaurant))
	var created BusinessDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	// someone else cannot touch it
	stranger := testRouter(owner.ID+100, users.RoleOwner)
	w = doJSON(stranger, http.MethodPut, fmt.Sprintf("/api/businesses/%d", created.ID), map[string]interface{}{"name": "Hacked"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// the owner can, and products replace wholesale
	w = doJSON(r, http.MethodPut, fmt.Sprintf("/api/businesses/%d", created.ID), map[string]interface{}{
		"name":     "Phở Hòa Pasteur",
		"products": []map[string]interface{}{{"name": "Bún bò", "price": 50000}},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated BusinessDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "Phở Hòa Pasteur", updated.Name)
	require.Len(t, updated.Products, 1)
	assert.Equal(t, "Bún bò", updated.Products[0].Name)
	assert.Equal(t, catalog.CategoryRestaurant, updated.Category) // untouched fields survive
}

func TestDeleteBusinessRemovesChildren(t *testing.T) {
	setupDB(t)
	owner := seedOwner(t, plans.TierVIP)
	r := testRouter(owner.ID, users.RoleOwner)

	w := doJSON(r, http.MethodPost, "/api/businesses", createPayload("Phở Hòa", catalog.CategoryRestaurant))
	var created BusinessDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	rater := testRouter(201, users.RoleClient)
	doJSON(rater, http.MethodPost, fmt.Sprintf("/api/businesses/%d/ratings", created.ID), map[string]int{"rating": 4})

	w = doJSON(r, http.MethodDelete, fmt.Sprintf("/api/businesses/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var products, images, ratings int64
	database.DB.Model(&catalog.Product{}).Where("business_id = ?", created.ID).Count(&products)
	database.DB.Model(&catalog.BusinessImage{}).Where("business_id = ?", created.ID).Count(&images)
	database.DB.Model(&catalog.Rating{}).Where("business_id = ?", created.ID).Count(&ratings)
	assert.Equal(t, int64(0), products)
	assert.Equal(t, int64(0), images)
	assert.Equal(t, int64(0), ratings)

	w = doJSON(r, http.MethodDelete, fmt.Sprintf("/api/businesses/%d", created.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubmitRatingLastWriteWins(t *testing.T) {
	setupDB(t)
	owner := seedOwner(t, plans.TierVIP)
	r := testRouter(owner.ID, users.RoleOwner)

	w := doJSON(r, http.MethodPost, "/api/businesses", createPayload("Phở Hòa", catalog.CategoryRestaurant))
	var created BusinessDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	path := fmt.Sprintf("/api/businesses/%d/ratings", created.ID)

	alice := testRouter(101, users.RoleClient)
	bob := testRouter(102, users.RoleClient)

	w = doJSON(alice, http.MethodPost, path, map[string]int{"rating": 5})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// re-rating replaces, not accumulates
	w = doJSON(alice, http.MethodPost, path, map[string]int{"rating": 2})
	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]float64
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2.0, resp["rating"])

	w = doJSON(bob, http.MethodPost, path, map[string]int{"rating": 4})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3.0, resp["rating"]) // (2+4)/2

	var rows int64
	database.DB.Model(&catalog.Rating{}).Where("business_id = ?", created.ID).Count(&rows)
	assert.Equal(t, int64(2), rows)

	w = doJSON(alice, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var ratings []RatingDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ratings))
	assert.Len(t, ratings, 2)
}

func TestSubmitRatingValidatesRange(t *testing.T) {
	setupDB(t)
	owner := seedOwner(t, plans.TierVIP)
	r := testRouter(owner.ID, users.RoleOwner)

	w := doJSON(r, http.MethodPost, "/api/businesses", createPayload("Phở Hòa", catalog.CategoryRestaurant))
	var created BusinessDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	path := fmt.Sprintf("/api/businesses/%d/ratings", created.ID)

	for _, stars := range []int{0, 6, -1} {
		w = doJSON(r, http.MethodPost, path, map[string]int{"rating": stars})
		assert.Equal(t, http.StatusBadRequest, w.Code, "stars=%d", stars)
	}

	w = doJSON(r, http.MethodPost, "/api/businesses/99999/ratings", map[string]int{"rating": 3})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
