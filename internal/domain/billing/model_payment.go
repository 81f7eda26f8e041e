package billing

import (
	"directory-app/internal/domain/plans"
	"directory-app/internal/domain/users"
	"time"
)

// Payment statuses
const (
	StatusPending = "pending"
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// Payment methods
const (
	MethodFree  = "free"
	MethodMoMo  = "momo"
	MethodPayOS = "payos"
)

// Payment is the app-side ledger row for one gateway order. The gateway owns
// the transaction lifecycle; this row records what it reported, keyed by the
// app-generated order id.
type Payment struct {
	ID           uint   `gorm:"primaryKey"`
	OrderID      string `gorm:"uniqueIndex;not null"`
	UserID       uint
	User         users.User
	PlanID       *uint
	Plan         *plans.Plan
	AmountVND    float64 `gorm:"column:amount_vnd"`
	Method       string  `gorm:"type:varchar(10);not null"`
	Status       string  `gorm:"type:varchar(10);not null;default:'pending'"`
	GatewayTxnID *string `gorm:"column:gateway_txn_id"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
