package config

import (
	"log"
	"os"

	"restaurant-api/models"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

const (
	defaultJWTSecret   = "debliss_super_secret_2024"
	defaultFrontendURL = "*"
)

// JWTSecret used to sign tokens — set by Load, falls back for tests.
var JWTSecret = []byte(defaultJWTSecret)

// FrontendURL is the allowed CORS origin.
var FrontendURL = defaultFrontendURL

// Load reads the optional .env file and resolves the env-driven settings.
// Must run before anything derives values from the environment, so main
// calls it first.
func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}
	JWTSecret = []byte(GetEnv("JWT_SECRET", defaultJWTSecret))
	FrontendURL = GetEnv("FRONTEND_URL", defaultFrontendURL)
}

func GetEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func InitDB() {
	var err error
	DB, err = gorm.Open(sqlite.Open(GetEnv("DB_PATH", "restaurant.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	log.Println("Database connected and migrated successfully")
}

// Migrate runs the schema migration for every model. Exposed so tests can
// migrate their own in-memory databases.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.MenuItem{},
		&models.Accompaniment{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderAccompaniment{},
		&models.OrderStatusHistory{},
		&models.FinishedDelivery{},
		&models.FinishedDeliveryItem{},
		&models.RiderFinishedDelivery{},
		&models.RiderFinishedDeliveryItem{},
		&models.Reservation{},
	)
}
