package admin

import (
	"net/http"
	"time"

	"directory-app/database"
	"directory-app/internal/domain/billing"
	"directory-app/internal/domain/catalog"
	"directory-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

type AdminUser struct {
	ID                 uint       `json:"id"`
	Name               string     `json:"name"`
	Phone              string     `json:"phone"`
	Email              string     `json:"email"`
	Role               string     `json:"role"`
	IsVerified         bool       `json:"is_verified"`
	PlanName           *string    `json:"plan_name,omitempty"`
	SubscriptionStart  *time.Time `json:"subscription_start,omitempty"`
	SubscriptionStatus *string    `json:"subscription_status,omitempty"`
	PaymentMethod      *string    `json:"payment_method,omitempty"`
}

type AdminPayment struct {
	ID        uint    `json:"id"`
	Email     string  `json:"email"`
	OrderID   string  `json:"order_id"`
	PlanName  *string `json:"plan_name,omitempty"`
	AmountVND float64 `json:"amount_vnd"`
	Method    string  `json:"method"`
	Status    string  `json:"status"`
	CreatedAt string  `json:"created_at"`
}

type AdminStats struct {
	TotalUsers      int            `json:"total_users"`
	TotalBusinesses int            `json:"total_businesses"`
	TotalViews      int64          `json:"total_views"`
	TotalRevenue    float64        `json:"total_revenue"`
	RecentRevenue   float64        `json:"recent_revenue"`
	UsersPerPlan    map[string]int `json:"users_per_plan"`
}

func AdminDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to the admin dashboard 👑",
	})
}

func ListAllUsers(c *gin.Context) {
	var list []users.User
	err := database.DB.Preload("Plan").Find(&list).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}

	var adminUsers []AdminUser
	for _, u := range list {
		var planName *string
		if u.Plan != nil {
			planName = &u.Plan.Name
		}

		adminUsers = append(adminUsers, AdminUser{
			ID:                 u.ID,
			Name:               u.Name,
			Phone:              u.Phone,
			Email:              u.Email,
			Role:               u.Role,
			IsVerified:         u.IsVerified,
			PlanName:           planName,
			SubscriptionStart:  u.SubscriptionStart,
			SubscriptionStatus: u.SubscriptionStatus,
			PaymentMethod:      u.PaymentMethod,
		})
	}

	c.JSON(http.StatusOK, adminUsers)
}

func ListAllPayments(c *gin.Context) {
	var payments []billing.Payment
	err := database.DB.Preload("User").Preload("Plan").Order("created_at DESC").Find(&payments).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load payments"})
		return
	}

	var result []AdminPayment
	for _, p := range payments {
		var planName *string
		if p.Plan != nil {
			planName = &p.Plan.Name
		}
		result = append(result, AdminPayment{
			ID:        p.ID,
			Email:     p.User.Email,
			OrderID:   p.OrderID,
			PlanName:  planName,
			AmountVND: p.AmountVND,
			Method:    p.Method,
			Status:    p.Status,
			CreatedAt: p.CreatedAt.Format("2006-01-02 15:04"),
		})
	}

	c.JSON(http.StatusOK, result)
}

func GetAdminStats(c *gin.Context) {
	var stats AdminStats

	var totalUsers int64
	var totalBusinesses int64
	var totalViews int64
	var totalRevenue float64
	var recentRevenue float64

	database.DB.Model(&users.User{}).Count(&totalUsers)
	database.DB.Model(&catalog.Business{}).Count(&totalBusinesses)
	database.DB.Model(&catalog.Business{}).Select("COALESCE(SUM(view_count), 0)").Scan(&totalViews)
	database.DB.Model(&billing.Payment{}).
		Where("status = ?", billing.StatusSuccess).
		Select("COALESCE(SUM(amount_vnd), 0)").Scan(&totalRevenue)

	thirtyDaysAgo := time.Now().AddDate(0, 0, -30)
	database.DB.Model(&billing.Payment{}).
		Where("status = ? AND created_at >= ?", billing.StatusSuccess, thirtyDaysAgo).
		Select("COALESCE(SUM(amount_vnd), 0)").Scan(&recentRevenue)

	stats.TotalUsers = int(totalUsers)
	stats.TotalBusinesses = int(totalBusinesses)
	stats.TotalViews = totalViews
	stats.TotalRevenue = totalRevenue
	stats.RecentRevenue = recentRevenue

	type PlanCount struct {
		Name  *string
		Count int
	}
	var counts []PlanCount

	database.DB.
		Table("users").
		Select("plans.name, COUNT(users.id) as count").
		Joins("LEFT JOIN plans ON users.plan_id = plans.id").
		Group("plans.name").
		Scan(&counts)

	stats.UsersPerPlan = map[string]int{}
	for _, pc := range counts {
		name := "No Plan"
		if pc.Name != nil {
			name = *pc.Name
		}
		stats.UsersPerPlan[name] = pc.Count
	}

	c.JSON(http.StatusOK, stats)
}

func GetUserDetails(c *gin.Context) {
	userID := c.Param("id")

	var user users.User
	if err := database.DB.Preload("Plan").First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var payments []billing.Payment
	if err := database.DB.Preload("Plan").Where("user_id = ?", userID).Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":     user,
		"payments": payments,
	})
}
