package seeders

import (
	"log"

	"github.com/google/uuid"
	"github.com/pompadepo/pompa-market/app/helpers"
	"github.com/pompadepo/pompa-market/app/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Seed fills an empty database with the default collections, a small
// category tree and a handful of demo products. It is idempotent: rows are
// matched by slug or collection type, so re-running it never duplicates.
func Seed(db *gorm.DB) error {
	if err := seedDefaultCollections(db); err != nil {
		return err
	}

	categories, err := seedCategories(db)
	if err != nil {
		return err
	}

	return seedProducts(db, categories)
}

func seedDefaultCollections(db *gorm.DB) error {
	for i, ct := range models.DefaultCollectionTypes {
		name := models.CollectionTypeLabels[ct]
		collection := models.Collection{
			ID:             uuid.NewString(),
			Name:           name,
			Slug:           helpers.GenerateSlug(name),
			CollectionType: ct,
			SortOrder:      i,
			IsActive:       true,
		}
		err := db.Where("collection_type = ?", ct).FirstOrCreate(&collection).Error
		if err != nil {
			return err
		}
	}
	log.Println("Seeder: default collections ready")
	return nil
}

type categorySeed struct {
	Name     string
	MainType models.MainType
	Children []string
}

var categorySeeds = []categorySeed{
	{
		Name:     "Pompalar",
		MainType: models.MainTypePompa,
		Children: []string{"Santrifüj Pompalar", "Dalgıç Pompalar", "Hidrofor Sistemleri"},
	},
	{
		Name:     "Yedek Parçalar",
		MainType: models.MainTypeYedekParca,
		Children: []string{"Mekanik Salmastralar", "Pompa Çarkları", "Motor Yedekleri"},
	},
}

func seedCategories(db *gorm.DB) (map[string]models.Category, error) {
	bySlug := make(map[string]models.Category)

	for i, seed := range categorySeeds {
		mainType := seed.MainType
		parent := models.Category{
			ID:        uuid.NewString(),
			Name:      seed.Name,
			Slug:      helpers.GenerateSlug(seed.Name),
			MainType:  &mainType,
			SortOrder: i,
			IsActive:  true,
		}
		if err := db.Where("slug = ?", parent.Slug).FirstOrCreate(&parent).Error; err != nil {
			return nil, err
		}
		bySlug[parent.Slug] = parent

		for j, childName := range seed.Children {
			parentID := parent.ID
			child := models.Category{
				ID:        uuid.NewString(),
				Name:      childName,
				Slug:      helpers.GenerateSlug(childName),
				ParentID:  &parentID,
				SortOrder: j,
				IsActive:  true,
			}
			if err := db.Where("slug = ?", child.Slug).FirstOrCreate(&child).Error; err != nil {
				return nil, err
			}
			bySlug[child.Slug] = child
		}
	}

	log.Printf("Seeder: %d categories ready", len(bySlug))
	return bySlug, nil
}

type productSeed struct {
	Name          string
	CategorySlug  string
	Price         string
	OriginalPrice string
	Sku           string
	Stock         int
	Brand         string
	IsFeatured    bool
	Features      [][2]string
}

var productSeeds = []productSeed{
	{
		Name:          "Santrifüj Pompa SP-100",
		CategorySlug:  "santrifuj-pompalar",
		Price:         "12500.00",
		OriginalPrice: "14750.00",
		Sku:           "SP-100",
		Stock:         12,
		Brand:         "Pompadepo",
		IsFeatured:    true,
		Features: [][2]string{
			{"Debi", "40 m³/saat"},
			{"Basma Yüksekliği", "32 m"},
			{"Motor Gücü", "4 kW"},
		},
	},
	{
		Name:         "Dalgıç Pompa DP-45",
		CategorySlug: "dalgic-pompalar",
		Price:        "8900.00",
		Sku:          "DP-45",
		Stock:        7,
		Brand:        "Pompadepo",
		IsFeatured:   true,
		Features: [][2]string{
			{"Dalma Derinliği", "45 m"},
			{"Çıkış Çapı", "2 inç"},
		},
	},
	{
		Name:         "Mekanik Salmastra 22mm",
		CategorySlug: "mekanik-salmastralar",
		Price:        "450.00",
		Sku:          "MS-22",
		Stock:        3,
		Brand:        "SealTek",
		Features: [][2]string{
			{"Mil Çapı", "22 mm"},
			{"Malzeme", "Karbon / Seramik"},
		},
	},
	{
		Name:         "Hidrofor Tankı 100L",
		CategorySlug: "hidrofor-sistemleri",
		Price:        "3200.00",
		Sku:          "HT-100",
		Stock:        18,
		Brand:        "Pompadepo",
	},
}

func seedProducts(db *gorm.DB, categories map[string]models.Category) error {
	for _, seed := range productSeeds {
		price, err := decimal.NewFromString(seed.Price)
		if err != nil {
			return err
		}

		product := models.Product{
			ID:         uuid.NewString(),
			Name:       seed.Name,
			Slug:       helpers.GenerateSlug(seed.Name),
			Price:      price,
			Sku:        seed.Sku,
			Stock:      seed.Stock,
			Brand:      seed.Brand,
			Unit:       "Adet",
			IsActive:   true,
			IsFeatured: seed.IsFeatured,
		}
		if seed.OriginalPrice != "" {
			original, err := decimal.NewFromString(seed.OriginalPrice)
			if err != nil {
				return err
			}
			product.OriginalPrice = &original
		}
		if category, ok := categories[seed.CategorySlug]; ok {
			categoryID := category.ID
			product.CategoryID = &categoryID
		}

		if err := db.Where("slug = ?", product.Slug).FirstOrCreate(&product).Error; err != nil {
			return err
		}

		for i, feature := range seed.Features {
			row := models.ProductFeature{
				ID:           uuid.NewString(),
				ProductID:    product.ID,
				FeatureName:  feature[0],
				FeatureValue: feature[1],
				SortOrder:    i,
			}
			err := db.Where("product_id = ? AND feature_name = ?", product.ID, feature[0]).
				FirstOrCreate(&row).Error
			if err != nil {
				return err
			}
		}
	}

	log.Printf("Seeder: %d products ready", len(productSeeds))
	return nil
}
