package models

import (
	"time"

	"github.com/pompadepo/pompa-market/app/utils/calc"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID               string           `gorm:"size:36;not null;uniqueIndex;primary_key"`
	Name             string           `gorm:"size:255;not null"`
	Slug             string           `gorm:"size:255;not null;uniqueIndex"`
	ShortDescription string           `gorm:"size:500"`
	Description      string           `gorm:"type:text"`
	Price            decimal.Decimal  `gorm:"type:decimal(16,2);not null"`
	OriginalPrice    *decimal.Decimal `gorm:"type:decimal(16,2)"`
	Sku              string           `gorm:"size:100;index"`
	Stock            int              `gorm:"not null;default:0"`
	CategoryID       *string          `gorm:"size:36;index"`
	Category         *Category        `gorm:"foreignKey:CategoryID"`
	Brand            string           `gorm:"size:150"`
	Model            string           `gorm:"size:150"`
	Unit             string           `gorm:"size:50;not null;default:Adet"`
	IsActive         bool             `gorm:"not null;default:true"`
	IsFeatured       bool             `gorm:"not null;default:false"`
	ViewCount        int64            `gorm:"not null;default:0"`
	SaleCount        int64            `gorm:"not null;default:0"`
	Features         []ProductFeature `gorm:"foreignKey:ProductID"`
	Images           []ProductImage   `gorm:"foreignKey:ProductID"`
	Collections      []Collection     `gorm:"many2many:product_collections;"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// PrimaryImage returns the image flagged primary, falling back to the first
// image by sort order. Empty string when the product has no images.
func (p Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	for _, img := range p.Images {
		if img.IsPrimary {
			return img.URL
		}
	}
	return p.Images[0].URL
}

// DiscountPercent is the rounded saving against the original price, zero when
// there is no discount.
func (p Product) DiscountPercent() int {
	return calc.DiscountPercent(p.Price, p.OriginalPrice)
}

type ProductFeature struct {
	ID           string `gorm:"size:36;not null;uniqueIndex;primary_key"`
	ProductID    string `gorm:"size:36;not null;index"`
	FeatureName  string `gorm:"size:150;not null"`
	FeatureValue string `gorm:"size:500;not null"`
	SortOrder    int    `gorm:"not null;default:0"`
	CreatedAt    time.Time
}

type ProductImage struct {
	ID        string `gorm:"size:36;not null;uniqueIndex;primary_key"`
	ProductID string `gorm:"size:36;not null;index"`
	URL       string `gorm:"size:500;not null"`
	AltText   string `gorm:"size:255"`
	IsPrimary bool   `gorm:"not null;default:false"`
	SortOrder int    `gorm:"not null;default:0"`
	CreatedAt time.Time
}

type ProductCollection struct {
	ProductID    string `gorm:"size:36;primaryKey"`
	CollectionID string `gorm:"size:36;primaryKey"`
	AddedAt      time.Time
}
