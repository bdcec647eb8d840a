package migrations

import (
	"github.com/pompadepo/pompa-market/app/models"
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&models.Product{}, "Collections", &models.ProductCollection{}); err != nil {
		return err
	}
	return db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Collection{},
		&models.Product{},
		&models.ProductFeature{},
		&models.ProductImage{},
		&models.ProductCollection{},
	)
}
