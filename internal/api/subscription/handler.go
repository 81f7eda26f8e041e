package subscription

import (
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"time"

	"directory-app/database"
	"directory-app/internal/domain/billing"
	"directory-app/internal/domain/plans"
	"directory-app/internal/domain/users"
	"directory-app/internal/infra/gateway"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SubscribeRequest struct {
	PlanID        uint   `json:"plan_id" binding:"required"`
	PaymentMethod string `json:"payment_method" binding:"required"` // momo | payos
}

// ------------------------------
// POST /api/subscribe
// ------------------------------
// The subscription block on the user row is server-owned. A free plan is
// activated directly; a paid plan creates a pending ledger row plus a
// checkout session, and the role flips only when the gateway confirms.
func Subscribe(c *gin.Context) {
	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var user users.User
	if err := database.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	var plan plans.Plan
	if err := database.DB.Where("id = ?", req.PlanID).First(&plan).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Plan not found"})
		return
	}

	// Tier guards: plan IDs are ordinal, so same-or-lower means re-buy or
	// downgrade. Neither is allowed while a subscription is active.
	if user.HasActiveSubscription() {
		if *user.PlanID == plan.ID {
			c.JSON(http.StatusConflict, gin.H{"error": "You are already subscribed to this plan"})
			return
		}
		if plan.ID < *user.PlanID {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Downgrading is not supported"})
			return
		}
	}

	if plan.PriceVND == 0 {
		activateFreePlan(c, &user, &plan)
		return
	}

	gw, ok := gateway.Lookup(req.PaymentMethod)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported payment method"})
		return
	}

	orderID := newOrderID(req.PaymentMethod)

	payment := billing.Payment{
		OrderID:   orderID,
		UserID:    user.ID,
		PlanID:    &plan.ID,
		AmountVND: plan.PriceVND,
		Method:    req.PaymentMethod,
		Status:    billing.StatusPending,
	}
	if err := database.DB.Create(&payment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create payment"})
		return
	}

	session, err := gw.CreatePayment(c.Request.Context(), gateway.CreateRequest{
		OrderID:     orderID,
		AmountVND:   int64(plan.PriceVND),
		Description: fmt.Sprintf("Subscription: %s", plan.Name),
		UserID:      user.ID,
		PlanID:      plan.ID,
	})
	if err != nil {
		log.Printf("❌ %s create payment failed for order %s: %v", req.PaymentMethod, orderID, err)
		database.DB.Model(&billing.Payment{}).
			Where("order_id = ?", orderID).
			Update("status", billing.StatusFailed)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Payment gateway unavailable"})
		return
	}

	pending := users.SubscriptionPending
	method := req.PaymentMethod
	if err := database.DB.Model(&users.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
		"subscription_status": &pending,
		"payment_method":      &method,
		"order_id":            &orderID,
	}).Error; err != nil {
		log.Printf("❌ failed to mark user %d pending for order %s: %v", user.ID, orderID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record pending subscription"})
		return
	}

	log.Printf("📨 order %s created for user %d (plan %s via %s)", orderID, user.ID, plan.Name, req.PaymentMethod)

	c.JSON(http.StatusOK, gin.H{
		"order_id": session.OrderID,
		"pay_url":  session.PayURL,
	})
}

// activateFreePlan grants the basic tier without touching any gateway.
func activateFreePlan(c *gin.Context, user *users.User, plan *plans.Plan) {
	now := time.Now()
	orderID := fmt.Sprintf("FREE_%d", now.UnixMilli())
	status := users.SubscriptionActive
	method := billing.MethodFree

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		payment := billing.Payment{
			OrderID:   orderID,
			UserID:    user.ID,
			PlanID:    &plan.ID,
			AmountVND: 0,
			Method:    billing.MethodFree,
			Status:    billing.StatusSuccess,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{
			"plan_id":             &plan.ID,
			"subscription_start":  &now,
			"subscription_status": &status,
			"payment_method":      &method,
			"order_id":            &orderID,
		}
		if user.Role != users.RoleAdmin {
			updates["role"] = users.RoleOwner
		}
		return tx.Model(&users.User{}).Where("id = ?", user.ID).Updates(updates).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to activate plan"})
		return
	}

	log.Printf("✅ free plan activated for user %d", user.ID)

	c.JSON(http.StatusOK, gin.H{
		"order_id": orderID,
		"status":   "active",
	})
}

// newOrderID makes the app-side ledger key. PayOS requires a numeric
// orderCode, so those ids are digit-only; MoMo takes any string.
func newOrderID(method string) string {
	now := time.Now().UnixMilli()
	if method == billing.MethodPayOS {
		return fmt.Sprintf("%d%03d", now%1_000_000_000_000, rand.Intn(1000))
	}
	return fmt.Sprintf("ORDER_%d_%04d", now, rand.Intn(10000))
}
