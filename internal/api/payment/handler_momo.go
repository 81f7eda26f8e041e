package payment

import (
	"fmt"
	"log"
	"net/http"

	"directory-app/internal/infra/momo"

	"github.com/gin-gonic/gin"
)

// ------------------------------
// POST /api/payment/momo/ipn
// ------------------------------
// MoMo calls this server-to-server once the wallet flow ends. The signature
// is the only thing that makes the payload trustworthy; an unsigned or
// tampered body is dropped without touching any state.
func MoMoIPN(c *gin.Context) {
	var ipn momo.IPNRequest
	if err := c.ShouldBindJSON(&ipn); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid IPN payload"})
		return
	}

	client := momo.NewFromEnv()
	if client.SecretKey == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "MoMo is not configured"})
		return
	}
	if !client.VerifyIPN(ipn) {
		log.Printf("❌ momo IPN signature mismatch for order %s", ipn.OrderID)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid signature"})
		return
	}

	status := momo.NormalizeResultCode(ipn.ResultCode)
	var txnID *string
	if ipn.TransID != 0 {
		s := fmt.Sprintf("%d", ipn.TransID)
		txnID = &s
	}

	if err := resolveOutcome(ipn.OrderID, status, txnID); err != nil {
		log.Printf("❌ momo IPN for order %s not applied: %v", ipn.OrderID, err)
	}

	// MoMo only wants an ack; errors are our problem, not theirs.
	c.Status(http.StatusNoContent)
}

// ------------------------------
// GET /api/payment/momo/return
// ------------------------------
// Browser redirect target after the wallet flow. Purely informational: the
// IPN is what moves state, so this only routes the user back into the app.
func MoMoReturn(c *gin.Context) {
	if c.Query("resultCode") == "0" {
		c.Redirect(http.StatusFound, "app://payment-success")
		return
	}
	c.Redirect(http.StatusFound, "app://payment-cancel")
}
