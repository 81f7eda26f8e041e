package users

import (
	"directory-app/internal/domain/plans"
	"time"
)

const (
	RoleClient = "client"
	RoleOwner  = "owner"
	RoleAdmin  = "admin"
)

// Subscription status values stored on the user row.
const (
	SubscriptionActive  = "active"
	SubscriptionPending = "pending"
)

type User struct {
	ID           uint `gorm:"primaryKey"`
	Name         string
	Phone        string
	Email        string  `gorm:"not null;uniqueIndex:idx_users_email"`
	Password     *string `gorm:"" json:"-"`
	AuthProvider string  `gorm:"type:varchar(20);not null;default:'local'"`
	GoogleSub    *string `gorm:"uniqueIndex:idx_users_google_sub" json:"-"`
	Role         string  `gorm:"type:varchar(10);not null;default:'client'"`
	IsVerified   bool

	Gender              *string
	Avatar              *string
	OnboardingCompleted bool `gorm:"column:onboarding_completed"`

	// Subscription block. role = owner implies these are set; they are only
	// ever written by the subscription command and verified gateway callbacks.
	PlanID             *uint
	Plan               *plans.Plan
	SubscriptionStart  *time.Time `gorm:"column:subscription_start"`
	SubscriptionStatus *string    `gorm:"column:subscription_status"` // active | pending
	PaymentMethod      *string    `gorm:"column:payment_method"`      // momo | payos | free
	OrderID            *string    `gorm:"column:order_id"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasActiveSubscription reports whether the subscription block is present
// and active. Pending payments do not count.
func (u *User) HasActiveSubscription() bool {
	return u.PlanID != nil &&
		u.SubscriptionStatus != nil &&
		*u.SubscriptionStatus == SubscriptionActive
}
