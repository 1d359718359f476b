package database

import (
	"fmt"
	"time"

	"github.com/sangkips/salesdesk-api/internal/domain/entity"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type demoProduct struct {
	name      string
	sellPrice string
	purchased int
}

var demoProducts = []demoProduct{
	{name: "Basmati Rice 5kg", sellPrice: "$19.99", purchased: 40},
	{name: "Red Lentils 1kg", sellPrice: "৳120", purchased: 60},
	{name: "Sunflower Oil 2L", sellPrice: "$7.50", purchased: 25},
}

// SeedDemoData creates a few products with opening purchases.
// It does nothing when any product already exists.
func SeedDemoData(db *gorm.DB, log *zap.Logger) error {
	var count int64
	if err := db.Model(&entity.Product{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		log.Info("demo seed skipped, products already present", zap.Int64("products", count))
		return nil
	}

	today := time.Now().UTC().Format("2006-01-02")
	return db.Transaction(func(tx *gorm.DB) error {
		for _, d := range demoProducts {
			product := entity.Product{Name: d.name, SellPrice: d.sellPrice}
			if err := tx.Create(&product).Error; err != nil {
				return fmt.Errorf("failed to seed product %s: %w", d.name, err)
			}
			purchase := entity.Purchase{ProductID: product.ID, Quantity: d.purchased, Date: today}
			if err := tx.Create(&purchase).Error; err != nil {
				return fmt.Errorf("failed to seed purchase for %s: %w", d.name, err)
			}
		}
		log.Info("demo data seeded", zap.Int("products", len(demoProducts)))
		return nil
	})
}
