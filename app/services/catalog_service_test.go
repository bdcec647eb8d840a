package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/pompadepo/pompa-market/app/models"
	"github.com/pompadepo/pompa-market/app/models/migrations"
	"github.com/pompadepo/pompa-market/app/repositories"
	"github.com/pompadepo/pompa-market/app/utils/cache"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupService(t *testing.T) (*CatalogService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "catalog.db")), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, migrations.AutoMigrate(db))

	pageCache := cache.NewPathCache(time.Minute)
	svc := NewCatalogService(
		db,
		repositories.NewProductRepository(db),
		repositories.NewCategoryRepository(db),
		repositories.NewCollectionRepository(db),
		pageCache,
	)
	return svc, db
}

func productForm(name string) ProductFormData {
	return ProductFormData{
		Name:     name,
		Price:    decimal.NewFromInt(100),
		Stock:    10,
		IsActive: true,
	}
}

func TestCreateProductDerivesSlug(t *testing.T) {
	svc, _ := setupService(t)

	product, err := svc.CreateProduct(context.Background(), productForm("Santrifüj Pompa SP-100"), nil)
	require.NoError(t, err)

	assert.Equal(t, "santrifuj-pompa-sp-100", product.Slug)
	assert.Equal(t, "Adet", product.Unit)
}

func TestCreateProductSlugConflict(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, productForm("Dalgıç Pompa"), nil)
	require.NoError(t, err)

	_, err = svc.CreateProduct(ctx, ProductFormData{
		Name:     "Dalgıç Pompa",
		Price:    decimal.NewFromInt(100),
		Stock:    1,
		IsActive: true,
		Features: []FeatureInput{{Name: "Debi", Value: "40 m³/saat"}},
	}, nil)
	assert.ErrorIs(t, err, ErrSlugTaken)

	// The aborted save must not leave child rows behind.
	var featureCount int64
	require.NoError(t, db.Model(&models.ProductFeature{}).Count(&featureCount).Error)
	assert.Zero(t, featureCount)
}

func TestCreateProductFirstImageIsPrimary(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	product, err := svc.CreateProduct(ctx, productForm("Hidrofor Tankı"), []ImageInput{
		{URL: "/uploads/a.jpg"},
		{URL: "/uploads/b.jpg", AltText: "Yan görünüm"},
		{URL: "/uploads/c.jpg"},
	})
	require.NoError(t, err)

	repo := repositories.NewProductRepository(svc.db)
	stored, err := repo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.Len(t, stored.Images, 3)

	assert.True(t, stored.Images[0].IsPrimary)
	assert.False(t, stored.Images[1].IsPrimary)
	assert.False(t, stored.Images[2].IsPrimary)

	// Missing alt text falls back to the product name.
	assert.Equal(t, "Hidrofor Tankı", stored.Images[0].AltText)
	assert.Equal(t, "Yan görünüm", stored.Images[1].AltText)
}

func TestCreateProductFlaggedImageStaysPrimary(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	product, err := svc.CreateProduct(ctx, productForm("Mekanik Salmastra"), []ImageInput{
		{URL: "/uploads/a.jpg"},
		{URL: "/uploads/b.jpg", IsPrimary: true},
	})
	require.NoError(t, err)

	repo := repositories.NewProductRepository(svc.db)
	stored, err := repo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	require.Len(t, stored.Images, 2)

	assert.True(t, stored.Images[0].IsPrimary)
	assert.True(t, stored.Images[1].IsPrimary)
}

func TestCreateProductDropsBlankFeatures(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	form := productForm("Pompa Çarkı")
	form.Features = []FeatureInput{
		{Name: "Malzeme", Value: "Döküm"},
		{Name: "  ", Value: "boş isim"},
		{Name: "Çap", Value: ""},
		{Name: "Ağırlık", Value: " 2 kg "},
	}

	product, err := svc.CreateProduct(ctx, form, nil)
	require.NoError(t, err)

	repo := repositories.NewProductRepository(svc.db)
	stored, err := repo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	require.Len(t, stored.Features, 2)

	assert.Equal(t, "Malzeme", stored.Features[0].FeatureName)
	assert.Equal(t, "Ağırlık", stored.Features[1].FeatureName)
	assert.Equal(t, "2 kg", stored.Features[1].FeatureValue)
	assert.Equal(t, 0, stored.Features[0].SortOrder)
	assert.Equal(t, 1, stored.Features[1].SortOrder)
}

func TestUpdateProductKeepsImagesWithoutReplacement(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	product, err := svc.CreateProduct(ctx, productForm("Santrifüj Pompa"), []ImageInput{
		{URL: "/uploads/a.jpg"},
		{URL: "/uploads/b.jpg"},
	})
	require.NoError(t, err)

	form := productForm("Santrifüj Pompa")
	form.Stock = 3
	require.NoError(t, svc.UpdateProduct(ctx, product.ID, form, nil, false))

	repo := repositories.NewProductRepository(svc.db)
	stored, err := repo.GetByID(ctx, product.ID)
	require.NoError(t, err)

	assert.Equal(t, 3, stored.Stock)
	assert.Len(t, stored.Images, 2)
}

func TestUpdateProductReplacesImages(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	product, err := svc.CreateProduct(ctx, productForm("Santrifüj Pompa"), []ImageInput{
		{URL: "/uploads/old.jpg"},
	})
	require.NoError(t, err)

	images := []ImageInput{
		{URL: "/uploads/new-1.jpg"},
		{URL: "/uploads/new-2.jpg"},
	}
	require.NoError(t, svc.UpdateProduct(ctx, product.ID, productForm("Santrifüj Pompa"), images, true))

	repo := repositories.NewProductRepository(svc.db)
	stored, err := repo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	require.Len(t, stored.Images, 2)

	assert.Equal(t, "/uploads/new-1.jpg", stored.Images[0].URL)
	assert.True(t, stored.Images[0].IsPrimary)
}

func TestUpdateProductClearsOptionalFields(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	category, err := svc.CreateCategory(ctx, CategoryFormData{Name: "Pompalar", IsActive: true})
	require.NoError(t, err)

	form := productForm("Dalgıç Pompa")
	form.CategoryID = &category.ID
	original := decimal.NewFromInt(150)
	form.OriginalPrice = &original

	product, err := svc.CreateProduct(ctx, form, nil)
	require.NoError(t, err)

	// Re-save without category or original price; both must be cleared.
	require.NoError(t, svc.UpdateProduct(ctx, product.ID, productForm("Dalgıç Pompa"), nil, false))

	var stored models.Product
	require.NoError(t, db.First(&stored, "id = ?", product.ID).Error)
	assert.Nil(t, stored.CategoryID)
	assert.Nil(t, stored.OriginalPrice)
}

func TestUpdateProductSlugConflict(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, productForm("Pompa Bir"), nil)
	require.NoError(t, err)
	second, err := svc.CreateProduct(ctx, productForm("Pompa İki"), nil)
	require.NoError(t, err)

	form := productForm("Pompa İki")
	form.Slug = "pompa-bir"
	err = svc.UpdateProduct(ctx, second.ID, form, nil, false)
	assert.ErrorIs(t, err, ErrSlugTaken)
}

func TestProductCollectionMemberships(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	featured, err := svc.CreateCollection(ctx, CollectionFormData{
		Name:           "Çok Satanlar",
		CollectionType: models.CollectionTypeCokSatanlar,
		IsActive:       true,
	})
	require.NoError(t, err)

	form := productForm("Hidrofor Sistemi")
	form.CollectionIDs = []string{featured.ID}
	product, err := svc.CreateProduct(ctx, form, nil)
	require.NoError(t, err)

	repo := repositories.NewProductRepository(svc.db)
	stored, err := repo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	require.Len(t, stored.Collections, 1)
	assert.Equal(t, featured.ID, stored.Collections[0].ID)

	// Resubmitting without memberships clears them.
	require.NoError(t, svc.UpdateProduct(ctx, product.ID, productForm("Hidrofor Sistemi"), nil, false))
	stored, err = repo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Collections)
}

func TestDeleteCategoryWithChildren(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	parent, err := svc.CreateCategory(ctx, CategoryFormData{Name: "Pompalar", IsActive: true})
	require.NoError(t, err)
	_, err = svc.CreateCategory(ctx, CategoryFormData{Name: "Dalgıç", ParentID: &parent.ID, IsActive: true})
	require.NoError(t, err)

	err = svc.DeleteCategory(ctx, parent.ID)
	assert.ErrorIs(t, err, ErrCategoryHasChildren)

	repo := repositories.NewCategoryRepository(svc.db)
	stored, err := repo.GetByID(ctx, parent.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored)
}

func TestDeleteCategoryWithProducts(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	category, err := svc.CreateCategory(ctx, CategoryFormData{Name: "Pompalar", IsActive: true})
	require.NoError(t, err)

	form := productForm("Santrifüj Pompa")
	form.CategoryID = &category.ID
	_, err = svc.CreateProduct(ctx, form, nil)
	require.NoError(t, err)

	err = svc.DeleteCategory(ctx, category.ID)
	assert.ErrorIs(t, err, ErrCategoryHasProducts)
}

func TestDeleteCategoryEmpty(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	category, err := svc.CreateCategory(ctx, CategoryFormData{Name: "Boş Kategori", IsActive: true})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCategory(ctx, category.ID))

	repo := repositories.NewCategoryRepository(svc.db)
	stored, err := repo.GetByID(ctx, category.ID)
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestCreateCategorySlugConflict(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.CreateCategory(ctx, CategoryFormData{Name: "Pompalar", IsActive: true})
	require.NoError(t, err)

	_, err = svc.CreateCategory(ctx, CategoryFormData{Name: "Pompalar", IsActive: true})
	assert.ErrorIs(t, err, ErrSlugTaken)
}

func TestDeleteDefaultCollection(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	collection, err := svc.CreateCollection(ctx, CollectionFormData{
		Name:           "Yeni Gelenler",
		CollectionType: models.CollectionTypeYeniGelenler,
		IsActive:       true,
	})
	require.NoError(t, err)

	err = svc.DeleteCollection(ctx, collection.ID)
	assert.ErrorIs(t, err, ErrDefaultCollection)
}

func TestDeleteCustomCollection(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	collection, err := svc.CreateCollection(ctx, CollectionFormData{
		Name:           "Yaz Kampanyası",
		CollectionType: models.CollectionTypeOzel,
		IsActive:       true,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCollection(ctx, collection.ID))
}

func TestDeleteMissingCollection(t *testing.T) {
	svc, _ := setupService(t)

	err := svc.DeleteCollection(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMutationInvalidatesHomeCache(t *testing.T) {
	svc, _ := setupService(t)

	svc.StoreHome("payload")
	_, ok := svc.CachedHome()
	require.True(t, ok)

	_, err := svc.CreateProduct(context.Background(), productForm("Yeni Ürün"), nil)
	require.NoError(t, err)

	_, ok = svc.CachedHome()
	assert.False(t, ok)
}

func TestDashboardStats(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.CreateCategory(ctx, CategoryFormData{Name: "Pompalar", IsActive: true})
	require.NoError(t, err)

	active := productForm("Aktif Pompa")
	active.Stock = 2
	_, err = svc.CreateProduct(ctx, active, nil)
	require.NoError(t, err)

	inactive := productForm("Pasif Pompa")
	inactive.IsActive = false
	inactive.Stock = 1
	_, err = svc.CreateProduct(ctx, inactive, nil)
	require.NoError(t, err)

	stats := svc.DashboardStats(ctx)

	assert.Equal(t, int64(2), stats.TotalProducts)
	assert.Equal(t, int64(1), stats.ActiveProducts)
	assert.Equal(t, int64(1), stats.TotalCategories)
	require.Len(t, stats.LowStock, 1)
	assert.Equal(t, "Aktif Pompa", stats.LowStock[0].Name)
	assert.Len(t, stats.RecentProducts, 2)
}
