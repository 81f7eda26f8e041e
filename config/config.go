package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var (
	PORT       string
	DB_URL     string
	JWT_SECRET string

	// Public base URL of this backend (payment return/IPN URLs are built from it)
	APP_BASE_URL string

	GOOGLE_CLIENT_ID         string
	GOOGLE_CLIENT_SECRET     string
	GOOGLE_REDIRECT_URL      string
	GOOGLE_FRONTEND_REDIRECT string

	MOMO_ENDPOINT     string
	MOMO_PARTNER_CODE string
	MOMO_ACCESS_KEY   string
	MOMO_SECRET_KEY   string

	PAYOS_ENDPOINT     string
	PAYOS_CLIENT_ID    string
	PAYOS_API_KEY      string
	PAYOS_CHECKSUM_KEY string
)

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	PORT = getEnv("PORT", "8080")
	DB_URL = mustEnv("DB_URL")
	JWT_SECRET = mustEnv("JWT_SECRET")
	APP_BASE_URL = mustEnv("APP_BASE_URL")

	GOOGLE_CLIENT_ID = mustEnv("GOOGLE_CLIENT_ID")
	GOOGLE_CLIENT_SECRET = mustEnv("GOOGLE_CLIENT_SECRET")
	GOOGLE_REDIRECT_URL = mustEnv("GOOGLE_REDIRECT_URL")
	GOOGLE_FRONTEND_REDIRECT = getEnv("GOOGLE_FRONTEND_REDIRECT", "")

	// Gateway credentials are optional at boot; the adapters refuse to create
	// payments when their keys are missing.
	MOMO_ENDPOINT = getEnv("MOMO_ENDPOINT", "https://test-payment.momo.vn")
	MOMO_PARTNER_CODE = getEnv("MOMO_PARTNER_CODE", "")
	MOMO_ACCESS_KEY = getEnv("MOMO_ACCESS_KEY", "")
	MOMO_SECRET_KEY = getEnv("MOMO_SECRET_KEY", "")

	PAYOS_ENDPOINT = getEnv("PAYOS_ENDPOINT", "https://api-merchant.payos.vn")
	PAYOS_CLIENT_ID = getEnv("PAYOS_CLIENT_ID", "")
	PAYOS_API_KEY = getEnv("PAYOS_API_KEY", "")
	PAYOS_CHECKSUM_KEY = getEnv("PAYOS_CHECKSUM_KEY", "")
}

func mustEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("Missing required environment variable: %s", key)
	}
	return v
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
