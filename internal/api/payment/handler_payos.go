package payment

import (
	"log"
	"net/http"

	"directory-app/internal/infra/gateway"

	"github.com/gin-gonic/gin"
)

// ------------------------------
// GET /api/payos/return
// ------------------------------
// PayOS sends the user's browser here with ?status=&orderCode=. Redirect
// parameters are attacker-controlled, so the outcome is always re-queried
// from the gateway before anything changes.
func PayOSReturn(c *gin.Context) {
	orderCode := c.Query("orderCode")
	if orderCode == "" {
		c.Redirect(http.StatusFound, "app://payment-cancel")
		return
	}

	gw, ok := gateway.Lookup("payos")
	if !ok {
		log.Printf("❌ payos return for order %s but no gateway registered", orderCode)
		c.Redirect(http.StatusFound, "app://payment-cancel")
		return
	}

	status, err := gw.QueryStatus(c.Request.Context(), orderCode)
	if err != nil {
		log.Printf("❌ payos status query failed for order %s: %v", orderCode, err)
		c.Redirect(http.StatusFound, "app://payment-cancel")
		return
	}

	if err := resolveOutcome(orderCode, status, nil); err != nil {
		log.Printf("❌ payos outcome for order %s not applied: %v", orderCode, err)
	}

	if status == gateway.StatusSuccess {
		c.Redirect(http.StatusFound, "app://payment-success")
		return
	}
	c.Redirect(http.StatusFound, "app://payment-cancel")
}
