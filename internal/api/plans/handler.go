package plans

import (
	"net/http"

	"directory-app/database"
	"directory-app/internal/domain/plans"

	"github.com/gin-gonic/gin"
)

func ListPlans(c *gin.Context) {
	var plansList []plans.Plan
	if err := database.DB.Order("price_vnd ASC").Find(&plansList).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load plans"})
		return
	}

	c.JSON(http.StatusOK, plansList)
}

// SyncPlans upserts the canonical tier table. Prices and caps in the DB win
// for display, but tier IDs are fixed — they double as upgrade levels.
func SyncPlans(c *gin.Context) {
	created := 0
	updated := 0

	for _, seed := range plans.Seed() {
		var existing plans.Plan
		err := database.DB.Where("id = ?", seed.ID).First(&existing).Error

		if err != nil {
			if err := database.DB.Create(&seed).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create plan", "details": err.Error()})
				return
			}
			created++
		} else {
			existing.Name = seed.Name
			existing.PriceVND = seed.PriceVND
			existing.Description = seed.Description
			existing.Features = seed.Features
			existing.MaxBusinesses = seed.MaxBusinesses

			if err := database.DB.Save(&existing).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update plan", "details": err.Error()})
				return
			}
			updated++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"created": created,
		"updated": updated,
	})
}
