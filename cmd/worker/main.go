package main

import (
	"log"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/tupt100/lexops/internal/config"
	"github.com/tupt100/lexops/internal/database"
	"github.com/tupt100/lexops/internal/notification"
	"github.com/tupt100/lexops/internal/queue"
)

func main() {
	cfg := config.Load()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal("❌ Database connection failed:", err)
	}
	database.DB = db
	log.Println("✅ Database connected")

	notification.Redis = redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	log.Println("🚀 Worker starting")
	if err := srv.Run(queue.NewMux()); err != nil {
		log.Fatal("❌ Worker error:", err)
	}
}
