package db

import (
	"fmt"
	"log"

	"github.com/quickfixhub/server/models"
)

func Migrate() {
	if DB == nil {
		Init()
	}

	// Run AutoMigrate only when explicitly called
	err := DB.AutoMigrate(
		&models.Admin{},
		&models.User{},
		&models.ServiceProvider{},
		&models.Service{},
		&models.Booking{},
		&models.Review{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	fmt.Println("✅ Migrations applied successfully!")
}
