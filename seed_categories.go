package main

import (
	"log"

	"home-services-server/database"
	"home-services-server/models"
)

// seedCategories populates the service category reference list. Idempotent;
// failures are logged and non-fatal.
func seedCategories() error {
	db := database.GetDB()

	categories := []string{
		"تنظيف المنازل",
		"سباكة",
		"كهرباء",
		"دهان",
		"نجارة",
		"تكييف وتبريد",
		"صيانة أجهزة منزلية",
		"تنسيق حدائق",
	}

	for _, name := range categories {
		var existing models.Category
		if err := db.Where("name = ?", name).First(&existing).Error; err != nil {
			if err := db.Create(&models.Category{Name: name}).Error; err != nil {
				log.Printf("⚠️  Failed to create category %s: %v", name, err)
				return err
			}
			log.Printf("✅ Created category: %s", name)
		}
	}

	return nil
}
