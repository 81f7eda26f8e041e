package payment

import (
	"log"
	"time"

	"directory-app/database"
	"directory-app/internal/domain/billing"
	"directory-app/internal/domain/users"
	"directory-app/internal/infra/gateway"

	"gorm.io/gorm"
)

// resolveOutcome applies a verified gateway outcome to the ledger row and the
// user's subscription block, atomically. A row that already left pending is
// left alone, so callback replays and the status poller cannot double-apply.
func resolveOutcome(orderID string, status gateway.Status, gatewayTxnID *string) error {
	if status == gateway.StatusPending {
		return nil
	}

	return database.DB.Transaction(func(tx *gorm.DB) error {
		var payment billing.Payment
		if err := tx.Where("order_id = ?", orderID).First(&payment).Error; err != nil {
			return err
		}
		if payment.Status != billing.StatusPending {
			return nil
		}

		var user users.User
		if err := tx.Where("id = ?", payment.UserID).First(&user).Error; err != nil {
			return err
		}

		if status == gateway.StatusSuccess {
			if err := tx.Model(&payment).Updates(map[string]interface{}{
				"status":         billing.StatusSuccess,
				"gateway_txn_id": gatewayTxnID,
			}).Error; err != nil {
				return err
			}

			now := time.Now()
			active := users.SubscriptionActive
			updates := map[string]interface{}{
				"plan_id":             payment.PlanID,
				"subscription_start":  &now,
				"subscription_status": &active,
				"payment_method":      &payment.Method,
				"order_id":            &payment.OrderID,
			}
			if user.Role != users.RoleAdmin {
				updates["role"] = users.RoleOwner
			}
			if err := tx.Model(&users.User{}).Where("id = ?", user.ID).Updates(updates).Error; err != nil {
				return err
			}

			log.Printf("✅ order %s paid, subscription active for user %d", orderID, user.ID)
			return nil
		}

		// failed / cancelled / expired
		if err := tx.Model(&payment).Updates(map[string]interface{}{
			"status":         billing.StatusFailed,
			"gateway_txn_id": gatewayTxnID,
		}).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{
			"plan_id":             nil,
			"subscription_start":  nil,
			"subscription_status": nil,
			"payment_method":      nil,
			"order_id":            nil,
		}
		if user.Role != users.RoleAdmin {
			updates["role"] = users.RoleClient
		}
		if err := tx.Model(&users.User{}).Where("id = ?", user.ID).Updates(updates).Error; err != nil {
			return err
		}

		log.Printf("❌ order %s failed, subscription cleared for user %d", orderID, user.ID)
		return nil
	})
}
