package database

import (
	"log"

	"restaurant_site/constants"
	"restaurant_site/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedData creates the first administrator and the feature switches when they
// do not exist yet. Existing rows are left untouched.
func SeedData(db *gorm.DB, adminUsername, adminPassword string) error {
	bytes, err := bcrypt.GenerateFromPassword([]byte(adminPassword), 10)
	if err != nil {
		return err
	}
	admin := model.Account{
		Username: adminUsername,
		Password: string(bytes),
		Active:   true,
		Role:     constants.ROLE_ADMIN,
		Metadata: map[string]string{},
	}
	if err := db.Where(model.Account{Username: admin.Username}).FirstOrCreate(&admin).Error; err != nil {
		log.Println("failed to seed data for account:", admin.Username, "error:", err)
		return err
	}

	features := []model.Feature{
		{Name: constants.FEATURE_CUSTOMIZATION, Enabled: false},
	}
	for _, feature := range features {
		if err := db.Where(model.Feature{Name: feature.Name}).FirstOrCreate(&feature).Error; err != nil {
			log.Println("failed to seed feature:", feature.Name, "error:", err)
			return err
		}
	}
	return nil
}
