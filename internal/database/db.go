package database

import (
	"fmt"
	"log"

	"github.com/tupt100/lexops/internal/config"
	"github.com/tupt100/lexops/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Connect(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	DB = db

	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Company{},
		&models.Group{},
		&models.Permission{},
		&models.PermissionGrant{},
		&models.DefaultPermission{},
		&models.User{},
		&models.Task{},
		&models.Project{},
		&models.Workflow{},
		&models.Rank{},
		&models.Invitation{},
		&models.ServiceRequest{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database: ", err)
	}
	log.Println("Database migrated successfully!")
	return nil
}
