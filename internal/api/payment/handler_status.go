package payment

import (
	"log"
	"net/http"

	"directory-app/database"
	"directory-app/internal/domain/billing"
	"directory-app/internal/domain/users"
	"directory-app/internal/infra/gateway"

	"github.com/gin-gonic/gin"
)

// ------------------------------
// GET /api/payment/status/:orderId
// ------------------------------
// Read-only polling endpoint for the app while the user sits on the "waiting
// for payment" screen. A still-pending ledger row triggers a lazy re-query of
// the gateway, so a missed callback cannot strand an order forever.
func PaymentStatus(c *gin.Context) {
	orderID := c.Param("orderId")

	var payment billing.Payment
	if err := database.DB.Where("order_id = ?", orderID).First(&payment).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	if payment.Status == billing.StatusPending {
		if gw, ok := gateway.Lookup(payment.Method); ok {
			status, err := gw.QueryStatus(c.Request.Context(), orderID)
			if err != nil {
				log.Printf("❌ %s status query failed for order %s: %v", payment.Method, orderID, err)
			} else if status != gateway.StatusPending {
				if err := resolveOutcome(orderID, status, nil); err != nil {
					log.Printf("❌ outcome for order %s not applied: %v", orderID, err)
				}
				database.DB.Where("order_id = ?", orderID).First(&payment)
			}
		}
	}

	var planID *uint
	if payment.Status == billing.StatusSuccess {
		var user users.User
		if err := database.DB.Where("id = ?", payment.UserID).First(&user).Error; err == nil {
			planID = user.PlanID
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":             payment.Status,
		"subscriptionPlanId": planID,
	})
}
