package routes

import (
	adminapi "directory-app/internal/api/admin"
	authapi "directory-app/internal/api/auth"
	"directory-app/internal/api/businesses"
	"directory-app/internal/api/payment"
	"directory-app/internal/api/plans"
	"directory-app/internal/api/subscription"
	"directory-app/internal/api/users"
	"directory-app/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Gateway callbacks are unauthenticated by nature; MoMo signs its IPN
	// and the PayOS return is re-queried before anything changes.
	r.POST("/api/payment/momo/ipn", payment.MoMoIPN)
	r.GET("/api/payment/momo/return", payment.MoMoReturn)
	r.GET("/api/payos/return", payment.PayOSReturn)
	r.GET("/api/payment/status/:orderId", payment.PaymentStatus)

	// ✅ Apply input sanitization to public routes only
	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	public.POST("/api/auth/register", authapi.Register)
	public.POST("/api/auth/login", authapi.Login)
	public.GET("/api/plans", plans.ListPlans)
	public.GET("/verify", users.VerifyEmail)
	public.POST("/resend-verification", authapi.ResendVerification)
	public.POST("/request-password-reset", authapi.RequestPasswordReset)
	public.POST("/reset-password", authapi.ResetPassword)

	public.GET("/auth/google", authapi.GoogleStart)
	public.GET("/auth/google/callback", authapi.GoogleCallback)

	// Catalog reads are public: the app browses without logging in.
	r.GET("/api/businesses", businesses.ListBusinesses)
	r.GET("/api/businesses/most-viewed", businesses.GetMostViewedBusinesses)
	r.GET("/api/businesses/search", businesses.SearchBusinesses)
	r.GET("/api/businesses/category/:category", businesses.GetBusinessesByCategory)
	r.GET("/api/businesses/owner/:ownerId", businesses.GetBusinessesByOwner)
	r.GET("/api/businesses/:id", businesses.GetBusinessByID)
	r.GET("/api/businesses/:id/ratings", businesses.ListRatings)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware())
	auth.GET("/api/me", users.GetCurrentUser)
	auth.PUT("/api/me", users.UpdateCurrentUser)
	auth.POST("/change-password", authapi.ChangePassword)

	auth.POST("/api/subscription/subscribe", subscription.Subscribe)
	auth.GET("/api/payments", payment.GetPaymentHistory)

	auth.POST("/api/businesses/:id/ratings", businesses.SubmitRating)

	// Business writes need an active owner subscription; their nested
	// payloads go through the sanitizer like the public routes do.
	owner := auth.Group("/")
	owner.Use(middleware.RequireBusinessOwner(), middleware.SanitizeAndCleanInputMiddleware())
	owner.POST("/api/businesses", businesses.CreateBusiness)
	owner.PUT("/api/businesses/:id", businesses.UpdateBusiness)
	owner.DELETE("/api/businesses/:id", businesses.DeleteBusiness)

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole("admin"))
	admin.GET("/dashboard", adminapi.AdminDashboard)
	admin.GET("/stats", adminapi.GetAdminStats)
	admin.GET("/users", adminapi.ListAllUsers)
	admin.GET("/payments", adminapi.ListAllPayments)
	admin.GET("/user/:id", adminapi.GetUserDetails)
	admin.POST("/sync-plans", plans.SyncPlans)
}
