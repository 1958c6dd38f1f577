package main

import (
	"log"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/tupt100/lexops/internal/config"
	"github.com/tupt100/lexops/internal/database"
	"github.com/tupt100/lexops/internal/notification"
	"github.com/tupt100/lexops/internal/permission"
	"github.com/tupt100/lexops/internal/queue"
	"github.com/tupt100/lexops/internal/server"
	"github.com/tupt100/lexops/internal/utils"
)

func main() {
	cfg := config.Load()

	if err := utils.ValidateJWTSecret(); err != nil {
		log.Fatal("❌ JWT Configuration Error: ", err)
	}
	log.Println("✅ JWT secret validated")

	requiredEnvVars := map[string]string{
		"DB_HOST":     os.Getenv("DB_HOST"),
		"DB_NAME":     os.Getenv("DB_NAME"),
		"DB_USER":     os.Getenv("DB_USER"),
		"DB_PASSWORD": os.Getenv("DB_PASSWORD"),
	}

	for key, value := range requiredEnvVars {
		if value == "" {
			log.Fatalf("❌ Required environment variable %s is not set", key)
		}
	}
	log.Println("✅ Required environment variables validated")

	// ========== DATABASE SETUP ==========
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal("❌ Database connection failed:", err)
	}
	database.DB = db

	if err := database.Migrate(db); err != nil {
		log.Fatal("❌ Migration failed: ", err)
	}
	log.Println("✅ Database migrated successfully")

	// ========== SEED DEFAULT DATA ==========
	if err := permission.SeedCatalog(db); err != nil {
		log.Fatal("❌ Failed to seed permission catalog: ", err)
	}
	log.Println("✅ Permission catalog seeded")

	// ========== REDIS & QUEUE SETUP ==========
	notification.Redis = redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	log.Printf("📡 Notification publisher connected to %s", cfg.RedisAddr)

	queue.C = queue.NewClient(cfg)
	defer queue.C.Close()
	log.Println("✅ Task queue client initialized")

	// ========== START SERVER ==========
	app := server.New(db)

	log.Printf("🚀 LexOps Server starting on %s", cfg.ServerAddr)
	log.Printf("📚 Health check: %s/health", cfg.ServerAddr)
	log.Printf("🔐 JWT Authentication: Enabled")

	if err := app.Listen(cfg.ServerAddr); err != nil {
		log.Fatal("❌ Failed to start server:", err)
	}
}
