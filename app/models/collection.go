package models

import (
	"time"
)

type CollectionType string

const (
	CollectionTypeYeniGelenler   CollectionType = "yeni_gelenler"
	CollectionTypeCokSatanlar    CollectionType = "cok_satanlar"
	CollectionTypeIndirimdekiler CollectionType = "indirimdekiler"
	CollectionTypeOzel           CollectionType = "ozel"
)

var CollectionTypeLabels = map[CollectionType]string{
	CollectionTypeYeniGelenler:   "Yeni Gelenler",
	CollectionTypeCokSatanlar:    "Çok Satanlar",
	CollectionTypeIndirimdekiler: "İndirimdekiler",
	CollectionTypeOzel:           "Özel Koleksiyon",
}

// DefaultCollectionTypes are seeded at install time and can never be deleted.
var DefaultCollectionTypes = []CollectionType{
	CollectionTypeYeniGelenler,
	CollectionTypeCokSatanlar,
	CollectionTypeIndirimdekiler,
}

func (t CollectionType) IsDefault() bool {
	for _, d := range DefaultCollectionTypes {
		if t == d {
			return true
		}
	}
	return false
}

func (t CollectionType) Label() string {
	return CollectionTypeLabels[t]
}

type Collection struct {
	ID             string         `gorm:"size:36;not null;uniqueIndex;primary_key"`
	Name           string         `gorm:"size:150;not null"`
	Slug           string         `gorm:"size:150;not null;uniqueIndex"`
	Description    string         `gorm:"type:text"`
	CollectionType CollectionType `gorm:"size:30;not null;default:ozel"`
	ImageURL       string         `gorm:"size:500"`
	SortOrder      int            `gorm:"not null;default:0"`
	IsActive       bool           `gorm:"not null;default:true"`
	Products       []Product      `gorm:"many2many:product_collections;"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Populated only when the listing query counts memberships.
	ProductCount int64 `gorm:"-"`
}
