package users

import (
	"directory-app/internal/domain/plans"
	"directory-app/internal/domain/users"
)

func BuildSubscriptionDTO(u users.User) *SubscriptionDTO {
	if u.PlanID == nil || u.SubscriptionStatus == nil {
		return nil
	}

	name := ""
	if u.Plan != nil {
		name = u.Plan.Name
	}

	return &SubscriptionDTO{
		ID:            *u.PlanID,
		PlanName:      name,
		StartDate:     u.SubscriptionStart,
		Status:        *u.SubscriptionStatus,
		PaymentMethod: u.PaymentMethod,
		OrderID:       u.OrderID,
	}
}

func BuildAccessDTO(u users.User, businessesUsed int) AccessDTO {
	canList := u.Role == users.RoleAdmin ||
		(u.Role == users.RoleOwner && u.HasActiveSubscription())

	limit := 0
	if u.Role != users.RoleAdmin {
		limit = plans.BusinessCap(u.Plan)
	}

	return AccessDTO{
		CanListBusinesses: canList,
		BusinessLimit:     limit,
		BusinessesUsed:    businessesUsed,
	}
}
