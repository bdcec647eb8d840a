package models

import (
	"time"
)

type MainType string

const (
	MainTypePompa      MainType = "pompa"
	MainTypeYedekParca MainType = "yedek_parca"
)

var MainTypeLabels = map[MainType]string{
	MainTypePompa:      "Pompa",
	MainTypeYedekParca: "Yedek Parça",
}

type Category struct {
	ID          string    `gorm:"size:36;not null;uniqueIndex;primary_key"`
	Name        string    `gorm:"size:150;not null"`
	Slug        string    `gorm:"size:150;not null;uniqueIndex"`
	Description string    `gorm:"type:text"`
	ParentID    *string   `gorm:"size:36;index"`
	Parent      *Category `gorm:"foreignKey:ParentID"`
	MainType    *MainType `gorm:"size:20;index"`
	ImageURL    string    `gorm:"size:500"`
	SortOrder   int       `gorm:"not null;default:0"`
	IsActive    bool      `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Populated by catalogtree.BuildTree, never persisted.
	Children []*Category `gorm:"-"`
	// Populated only when the listing query counts products per category.
	ProductCount int64 `gorm:"-"`
}

func (c *Category) MainTypeLabel() string {
	if c.MainType == nil {
		return ""
	}
	return MainTypeLabels[*c.MainType]
}
