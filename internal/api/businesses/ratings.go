package businesses

import (
	"net/http"
	"time"

	"directory-app/database"
	"directory-app/internal/domain/catalog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ------------------------------
// GET /api/businesses/:id/ratings
// ------------------------------
func ListRatings(c *gin.Context) {
	id := c.Param("id")

	var b catalog.Business
	if err := database.DB.Select("id").First(&b, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Business not found"})
		return
	}

	var rows []catalog.Rating
	if err := database.DB.Where("business_id = ?", b.ID).Order("updated_at DESC").Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load ratings"})
		return
	}

	out := make([]RatingDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, RatingDTO{
			UserID:    r.UserID,
			Rating:    r.Stars,
			CreatedAt: r.CreatedAt.Format(time.RFC3339),
		})
	}
	c.JSON(http.StatusOK, out)
}

// ------------------------------
// POST /api/businesses/:id/ratings
// ------------------------------
// One row per (business, user). Re-rating overwrites the previous value and
// the stored average is recomputed from the rows inside the same transaction.
func SubmitRating(c *gin.Context) {
	id := c.Param("id")

	var req SubmitRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rating must be between 1 and 5"})
		return
	}

	userID, ok := mustUserID(c)
	if !ok {
		return
	}

	var newAvg float64
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var b catalog.Business
		if err := tx.Select("id").First(&b, "id = ?", id).Error; err != nil {
			return err
		}

		row := catalog.Rating{BusinessID: b.ID, UserID: userID, Stars: req.Rating}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "business_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"stars", "updated_at"}),
		}).Create(&row).Error; err != nil {
			return err
		}

		if err := tx.Model(&catalog.Rating{}).
			Where("business_id = ?", b.ID).
			Select("COALESCE(AVG(stars), 0)").
			Scan(&newAvg).Error; err != nil {
			return err
		}

		return tx.Model(&catalog.Business{}).
			Where("id = ?", b.ID).
			UpdateColumn("rating", newAvg).Error
	})

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Business not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit rating"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"rating": newAvg})
}
