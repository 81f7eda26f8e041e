package main

import (
	"os"
	"time"

	"directory-app/config"
	"directory-app/database"
	routes "directory-app/internal/app/http"
	"directory-app/internal/domain/billing"
	"directory-app/internal/infra/gateway"
	"directory-app/internal/infra/momo"
	"directory-app/internal/infra/payos"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	config.LoadEnv()
	database.InitDB()

	gateway.Register(billing.MethodMoMo, momo.NewFromEnv())
	gateway.Register(billing.MethodPayOS, payos.NewFromEnv())

	r := gin.Default()

	// ✅ Add CORS middleware BEFORE registering routes
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{os.Getenv("CORS_ORIGIN")},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r)

	r.Run(":" + config.PORT)
}
