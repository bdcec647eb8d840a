package repositories

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pompadepo/pompa-market/app/models"
	"github.com/pompadepo/pompa-market/app/models/migrations"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "repo.db")), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, migrations.AutoMigrate(db))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name, sku, brand string, active bool, createdAt time.Time) models.Product {
	t.Helper()

	product := models.Product{
		ID:        uuid.NewString(),
		Name:      name,
		Slug:      uuid.NewString()[:8],
		Price:     decimal.NewFromInt(100),
		Sku:       sku,
		Brand:     brand,
		Unit:      "Adet",
		IsActive:  active,
		CreatedAt: createdAt,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func TestGetPaginatedSearch(t *testing.T) {
	db := setupDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()
	now := time.Now()

	seedProduct(t, db, "Santrifüj Pompa", "SP-100", "Pompadepo", true, now)
	seedProduct(t, db, "Dalgıç Pompa", "DP-45", "Pompadepo", true, now)
	seedProduct(t, db, "Mekanik Salmastra", "MS-22", "SealTek", true, now)

	products, total, err := repo.GetPaginated(ctx, ProductSearchParams{Search: "pompa"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, products, 2)

	// SKU and brand are searched too.
	_, total, err = repo.GetPaginated(ctx, ProductSearchParams{Search: "ms-22"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	_, total, err = repo.GetPaginated(ctx, ProductSearchParams{Search: "sealtek"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestGetPaginatedActiveFilter(t *testing.T) {
	db := setupDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()
	now := time.Now()

	seedProduct(t, db, "Aktif", "A-1", "", true, now)
	seedProduct(t, db, "Pasif", "P-1", "", false, now)

	active := true
	products, total, err := repo.GetPaginated(ctx, ProductSearchParams{IsActive: &active})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, products, 1)
	assert.Equal(t, "Aktif", products[0].Name)
}

func TestGetPaginatedCategorySlug(t *testing.T) {
	db := setupDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	category := models.Category{ID: uuid.NewString(), Name: "Pompalar", Slug: "pompalar", IsActive: true}
	require.NoError(t, db.Create(&category).Error)

	inCategory := seedProduct(t, db, "Kategorili", "K-1", "", true, time.Now())
	require.NoError(t, db.Model(&inCategory).Update("category_id", category.ID).Error)
	seedProduct(t, db, "Kategorisiz", "K-2", "", true, time.Now())

	products, total, err := repo.GetPaginated(ctx, ProductSearchParams{CategorySlug: "pompalar"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, products, 1)
	assert.Equal(t, "Kategorili", products[0].Name)
}

func TestGetPaginatedPagingAndOrder(t *testing.T) {
	db := setupDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)

	for i := 0; i < 5; i++ {
		seedProduct(t, db, "Ürün", "U-"+string(rune('A'+i)), "", true, base.Add(time.Duration(i)*time.Minute))
	}

	first, total, err := repo.GetPaginated(ctx, ProductSearchParams{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, first, 2)

	// Newest first.
	assert.Equal(t, "U-E", first[0].Sku)
	assert.Equal(t, "U-D", first[1].Sku)

	last, _, err := repo.GetPaginated(ctx, ProductSearchParams{Page: 3, PageSize: 2})
	require.NoError(t, err)
	require.Len(t, last, 1)
	assert.Equal(t, "U-A", last[0].Sku)
}

func TestGetBySlugActiveOnly(t *testing.T) {
	db := setupDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	inactive := seedProduct(t, db, "Pasif Ürün", "P-1", "", false, time.Now())

	found, err := repo.GetBySlug(ctx, inactive.Slug)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestDeleteRemovesChildRows(t *testing.T) {
	db := setupDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	product := seedProduct(t, db, "Silinecek", "S-1", "", true, time.Now())
	require.NoError(t, db.Create(&models.ProductFeature{
		ID: uuid.NewString(), ProductID: product.ID, FeatureName: "Debi", FeatureValue: "40",
	}).Error)
	require.NoError(t, db.Create(&models.ProductImage{
		ID: uuid.NewString(), ProductID: product.ID, URL: "/uploads/a.jpg",
	}).Error)

	require.NoError(t, repo.Delete(ctx, product.ID))

	var features, images int64
	require.NoError(t, db.Model(&models.ProductFeature{}).Where("product_id = ?", product.ID).Count(&features).Error)
	require.NoError(t, db.Model(&models.ProductImage{}).Where("product_id = ?", product.ID).Count(&images).Error)
	assert.Zero(t, features)
	assert.Zero(t, images)
}

func TestIncrementViewCount(t *testing.T) {
	db := setupDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	product := seedProduct(t, db, "Görüntülenen", "G-1", "", true, time.Now())

	require.NoError(t, repo.IncrementViewCount(ctx, product.ID))
	require.NoError(t, repo.IncrementViewCount(ctx, product.ID))

	var stored models.Product
	require.NoError(t, db.First(&stored, "id = ?", product.ID).Error)
	assert.Equal(t, int64(2), stored.ViewCount)
}
