package database

import (
	"fmt"
	"log"
	"os"

	"directory-app/internal/domain/billing"
	"directory-app/internal/domain/catalog"
	"directory-app/internal/domain/plans"
	"directory-app/internal/domain/users"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		log.Fatal("❌ DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("❌ Failed to connect to database:", err)
	}

	DB = db

	if err := Migrate(DB); err != nil {
		log.Fatal("❌ AutoMigrate error:", err)
	}

	fmt.Println("✅ Connected and migrated successfully")
}

// Migrate runs AutoMigrate for every domain model. Split out so tests can
// migrate their own databases.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// core
		&users.User{},
		&users.VerificationToken{},
		&plans.Plan{},
		&billing.Payment{},

		// catalog
		&catalog.Business{},
		&catalog.BusinessImage{},
		&catalog.Product{},
		&catalog.Rating{},
	)
}
