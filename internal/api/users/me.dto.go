package users

import "time"

type MeResponse struct {
	User         UserDTO          `json:"user"`
	Subscription *SubscriptionDTO `json:"subscription"`
	Access       AccessDTO        `json:"access"`
}

/* ---------- USER ---------- */

type UserDTO struct {
	ID                  uint    `json:"id"`
	Email               string  `json:"email"`
	Name                string  `json:"name"`
	Phone               *string `json:"phone"`
	Gender              *string `json:"gender"`
	Avatar              *string `json:"avatar"`
	Role                string  `json:"role"`
	OnboardingCompleted bool    `json:"onboarding_completed"`
	IsVerified          bool    `json:"is_verified"`
}

/* ---------- SUBSCRIPTION ---------- */

type SubscriptionDTO struct {
	ID            uint       `json:"id"` // plan tier
	PlanName      string     `json:"plan_name"`
	StartDate     *time.Time `json:"startDate"`
	Status        string     `json:"status"`
	PaymentMethod *string    `json:"paymentMethod"`
	OrderID       *string    `json:"orderId"`
}

/* ---------- ACCESS ---------- */

type AccessDTO struct {
	CanListBusinesses bool `json:"can_list_businesses"`
	BusinessLimit     int  `json:"business_limit"` // 0 = unlimited
	BusinessesUsed    int  `json:"businesses_used"`
}
