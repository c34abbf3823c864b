package main

import (
	"log"

	"home-services-server/database"
	"home-services-server/models"
)

// seedAreas populates the governorate reference list. Idempotent; failures
// are logged and non-fatal since this is convenience data only.
func seedAreas() error {
	db := database.GetDB()

	governorates := []string{
		"دمشق",
		"ريف دمشق",
		"حلب",
		"حمص",
		"حماة",
		"اللاذقية",
		"إدلب",
		"طرطوس",
		"الرقة",
		"دير الزور",
		"الحسكة",
		"السويداء",
		"درعا",
		"القنيطرة",
	}

	for _, name := range governorates {
		var existing models.Area
		if err := db.Where("name = ?", name).First(&existing).Error; err != nil {
			if err := db.Create(&models.Area{Name: name}).Error; err != nil {
				log.Printf("⚠️  Failed to create area %s: %v", name, err)
				return err
			}
			log.Printf("✅ Created area: %s", name)
		}
	}

	return nil
}
