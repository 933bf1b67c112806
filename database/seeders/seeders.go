package seeders

import (
	"log"

	"srms_go/config"
	"srms_go/database"
	"srms_go/models"
	"srms_go/permissions"
	"srms_go/utils"
)

// SeedAll runs all seeders
func SeedAll() {
	log.Println("Starting database seeding...")
	SeedSuperadmin()
	log.Println("Database seeding completed successfully!")
}

// SeedSuperadmin creates the bootstrap superadmin login if none exists.
// Email and password come from SUPERADMIN_EMAIL / SUPERADMIN_PASSWORD.
func SeedSuperadmin() {
	var count int64
	database.DB.Model(&models.User{}).
		Where("role = ?", permissions.RoleSuperadmin).Count(&count)
	if count > 0 {
		log.Println("Superadmin already seeded, skipping...")
		return
	}

	password := config.AppConfig.SuperadminPassword
	if password == "" {
		log.Println("SUPERADMIN_PASSWORD not set, skipping superadmin seed")
		return
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		log.Printf("Error hashing superadmin password: %v", err)
		return
	}

	admin := models.User{
		Name:     "Super Admin",
		Email:    utils.NormalizeEmail(config.AppConfig.SuperadminEmail),
		Password: hashed,
		Role:     permissions.RoleSuperadmin,
	}
	if err := database.DB.Create(&admin).Error; err != nil {
		log.Printf("Error seeding superadmin: %v", err)
		return
	}

	log.Printf("Superadmin seeded successfully (%s)", admin.Email)
}
