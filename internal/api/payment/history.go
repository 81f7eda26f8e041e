package payment

import (
	"net/http"
	"time"

	"directory-app/database"
	"directory-app/internal/domain/billing"

	"github.com/gin-gonic/gin"
)

type historyItem struct {
	OrderID   string  `json:"orderId"`
	PlanName  string  `json:"planName,omitempty"`
	AmountVND float64 `json:"amount"`
	Method    string  `json:"method"`
	Status    string  `json:"status"`
	CreatedAt string  `json:"createdAt"`
}

// ------------------------------
// GET /api/payments
// ------------------------------
func GetPaymentHistory(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var rows []billing.Payment
	if err := database.DB.Preload("Plan").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load payments"})
		return
	}

	out := make([]historyItem, 0, len(rows))
	for _, p := range rows {
		item := historyItem{
			OrderID:   p.OrderID,
			AmountVND: p.AmountVND,
			Method:    p.Method,
			Status:    p.Status,
			CreatedAt: p.CreatedAt.Format(time.RFC3339),
		}
		if p.Plan != nil {
			item.PlanName = p.Plan.Name
		}
		out = append(out, item)
	}

	c.JSON(http.StatusOK, out)
}
