package businesses

import (
	"net/http"
	"strconv"

	"directory-app/database"
	"directory-app/internal/domain/catalog"
	"directory-app/internal/domain/plans"
	"directory-app/internal/domain/users"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func mustUserID(c *gin.Context) (uint, bool) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	return userID, true
}

// ------------------------------
// GET /api/businesses
// ------------------------------
func ListBusinesses(c *gin.Context) {
	var list []catalog.Business
	if err := preloadChildren(database.DB).Order("created_at DESC").Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load businesses"})
		return
	}
	c.JSON(http.StatusOK, toBusinessDTOs(list))
}

// ------------------------------
// GET /api/businesses/:id
// ------------------------------
// Fetching a business counts as a view.
func GetBusinessByID(c *gin.Context) {
	id := c.Param("id")

	var b catalog.Business
	if err := preloadChildren(database.DB).First(&b, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Business not found"})
		return
	}

	database.DB.Model(&catalog.Business{}).
		Where("id = ?", b.ID).
		UpdateColumn("view_count", gorm.Expr("view_count + 1"))
	b.ViewCount++

	c.JSON(http.StatusOK, toBusinessDTO(b))
}

// ------------------------------
// GET /api/businesses/category/:category
// ------------------------------
func GetBusinessesByCategory(c *gin.Context) {
	category := c.Param("category")
	if !catalog.IsValidCategory(category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category"})
		return
	}

	var list []catalog.Business
	if err := preloadChildren(database.DB).
		Where("category = ?", category).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load businesses"})
		return
	}
	c.JSON(http.StatusOK, toBusinessDTOs(list))
}

// ------------------------------
// GET /api/businesses/owner/:ownerId
// ------------------------------
func GetBusinessesByOwner(c *gin.Context) {
	ownerID := c.Param("ownerId")

	var list []catalog.Business
	if err := preloadChildren(database.DB).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load businesses"})
		return
	}
	c.JSON(http.StatusOK, toBusinessDTOs(list))
}

// ------------------------------
// GET /api/businesses/most-viewed?limit=5
// ------------------------------
func GetMostViewedBusinesses(c *gin.Context) {
	limit := 5
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	var list []catalog.Business
	if err := preloadChildren(database.DB).
		Order("view_count DESC").
		Limit(limit).
		Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load businesses"})
		return
	}
	c.JSON(http.StatusOK, toBusinessDTOs(list))
}

// ------------------------------
// GET /api/businesses/search?q=
// ------------------------------
func SearchBusinesses(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing search query"})
		return
	}

	pattern := "%" + q + "%"
	var list []catalog.Business
	if err := preloadChildren(database.DB).
		Where("LOWER(name) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?) OR LOWER(address) LIKE LOWER(?)",
			pattern, pattern, pattern).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}
	c.JSON(http.StatusOK, toBusinessDTOs(list))
}

// ------------------------------
// POST /api/businesses
// ------------------------------
func CreateBusiness(c *gin.Context) {
	var req CreateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	if !catalog.IsValidCategory(req.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category"})
		return
	}
	for _, p := range req.Products {
		if p.Price == nil || *p.Price < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product price must be a non-negative number"})
			return
		}
	}

	// Plan tier caps how many businesses an owner may list
	var user users.User
	if err := database.DB.Preload("Plan").Where("id = ?", userID).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}
	if user.Role != users.RoleAdmin {
		limit := plans.BusinessCap(user.Plan)
		if limit > 0 {
			var owned int64
			database.DB.Model(&catalog.Business{}).Where("owner_id = ?", userID).Count(&owned)
			if int(owned) >= limit {
				c.JSON(http.StatusForbidden, gin.H{"error": "Business limit reached for your plan"})
				return
			}
		}
	}

	var created catalog.Business
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		b := catalog.Business{
			OwnerID:     userID,
			Name:        req.Name,
			Category:    req.Category,
			Description: req.Description,
			Address:     req.Address,
			Phone:       req.Phone,
		}
		if req.Location != nil {
			b.Latitude = req.Location.Latitude
			b.Longitude = req.Location.Longitude
		}
		if req.OpeningHours != nil {
			b.OpenTime = req.OpeningHours.Open
			b.CloseTime = req.OpeningHours.Close
			b.OpenDays = encodeDays(req.OpeningHours.Days)
		}
		if req.IsOpen != nil {
			b.IsOpen = *req.IsOpen
		}

		if err := tx.Create(&b).Error; err != nil {
			return err
		}

		for i, url := range req.Images {
			img := catalog.BusinessImage{BusinessID: b.ID, URL: url, SortIndex: i}
			if err := tx.Create(&img).Error; err != nil {
				return err
			}
		}

		for _, p := range req.Products {
			available := true
			if p.IsAvailable != nil {
				available = *p.IsAvailable
			}
			row := catalog.Product{
				BusinessID:  b.ID,
				Name:        p.Name,
				Description: p.Description,
				Price:       *p.Price,
				Image:       p.Image,
				IsAvailable: available,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}

		return preloadChildren(tx).First(&created, "id = ?", b.ID).Error
	})

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create business", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, toBusinessDTO(created))
}

// ------------------------------
// PUT /api/businesses/:id
// ------------------------------
// Partial update, last write wins. Images/products replace wholesale when
// present in the request.
func UpdateBusiness(c *gin.Context) {
	id := c.Param("id")

	var req UpdateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	role := c.GetString("role")

	if req.Category != nil && !catalog.IsValidCategory(*req.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category"})
		return
	}
	for _, p := range req.Products {
		if p.Price == nil || *p.Price < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product price must be a non-negative number"})
			return
		}
	}

	var updated catalog.Business
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var b catalog.Business
		q := tx.Where("id = ?", id)
		if role != users.RoleAdmin {
			q = q.Where("owner_id = ?", userID)
		}
		if err := q.First(&b).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{}
		if req.Name != nil {
			updates["name"] = *req.Name
		}
		if req.Category != nil {
			updates["category"] = *req.Category
		}
		if req.Description != nil {
			updates["description"] = *req.Description
		}
		if req.Address != nil {
			updates["address"] = *req.Address
		}
		if req.Phone != nil {
			updates["phone"] = *req.Phone
		}
		if req.Location != nil {
			updates["latitude"] = req.Location.Latitude
			updates["longitude"] = req.Location.Longitude
		}
		if req.OpeningHours != nil {
			updates["open_time"] = req.OpeningHours.Open
			updates["close_time"] = req.OpeningHours.Close
			updates["open_days"] = encodeDays(req.OpeningHours.Days)
		}
		if req.IsOpen != nil {
			updates["is_open"] = *req.IsOpen
		}

		if len(updates) > 0 {
			if err := tx.Model(&catalog.Business{}).Where("id = ?", b.ID).Updates(updates).Error; err != nil {
				return err
			}
		}

		if req.Images != nil {
			if err := tx.Where("business_id = ?", b.ID).Delete(&catalog.BusinessImage{}).Error; err != nil {
				return err
			}
			for i, url := range req.Images {
				img := catalog.BusinessImage{BusinessID: b.ID, URL: url, SortIndex: i}
				if err := tx.Create(&img).Error; err != nil {
					return err
				}
			}
		}

		if req.Products != nil {
			if err := tx.Where("business_id = ?", b.ID).Delete(&catalog.Product{}).Error; err != nil {
				return err
			}
			for _, p := range req.Products {
				available := true
				if p.IsAvailable != nil {
					available = *p.IsAvailable
				}
				row := catalog.Product{
					BusinessID:  b.ID,
					Name:        p.Name,
					Description: p.Description,
					Price:       *p.Price,
					Image:       p.Image,
					IsAvailable: available,
				}
				if err := tx.Create(&row).Error; err != nil {
					return err
				}
			}
		}

		return preloadChildren(tx).First(&updated, "id = ?", b.ID).Error
	})

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Business not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update business", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, toBusinessDTO(updated))
}

// ------------------------------
// DELETE /api/businesses/:id
// ------------------------------
func DeleteBusiness(c *gin.Context) {
	id := c.Param("id")

	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	role := c.GetString("role")

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		q := tx.Where("id = ?", id)
		if role != users.RoleAdmin {
			q = q.Where("owner_id = ?", userID)
		}

		res := q.Delete(&catalog.Business{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		// children go with the parent
		if err := tx.Where("business_id = ?", id).Delete(&catalog.BusinessImage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("business_id = ?", id).Delete(&catalog.Product{}).Error; err != nil {
			return err
		}
		return tx.Where("business_id = ?", id).Delete(&catalog.Rating{}).Error
	})

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Business not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete business"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
