package repositories

import (
	"context"
	"log"

	"github.com/pompadepo/pompa-market/app/models"
	"gorm.io/gorm"
)

type CollectionRepositoryImpl interface {
	Create(ctx context.Context, collection *models.Collection) error
	GetByID(ctx context.Context, id string) (*models.Collection, error)
	GetBySlug(ctx context.Context, slug string) (*models.Collection, error)
	GetAll(ctx context.Context) ([]models.Collection, error)
	GetActiveWithProducts(ctx context.Context) ([]models.Collection, error)
	Update(ctx context.Context, collection *models.Collection) error
	Delete(ctx context.Context, id string) error
	ToggleActive(ctx context.Context, id string, isActive bool) error
	CountAll(ctx context.Context) (int64, error)
	CountMembers(ctx context.Context, id string) (int64, error)
}

type collectionRepository struct {
	db *gorm.DB
}

func NewCollectionRepository(db *gorm.DB) CollectionRepositoryImpl {
	return &collectionRepository{db: db}
}

func (r *collectionRepository) Create(ctx context.Context, collection *models.Collection) error {
	return r.db.WithContext(ctx).Create(collection).Error
}

func (r *collectionRepository) GetByID(ctx context.Context, id string) (*models.Collection, error) {
	var collection models.Collection
	err := r.db.WithContext(ctx).First(&collection, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &collection, nil
}

func (r *collectionRepository) GetBySlug(ctx context.Context, slug string) (*models.Collection, error) {
	var collection models.Collection
	err := r.db.WithContext(ctx).First(&collection, "slug = ?", slug).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &collection, nil
}

func (r *collectionRepository) GetAll(ctx context.Context) ([]models.Collection, error) {
	var collections []models.Collection
	err := r.db.WithContext(ctx).
		Order("sort_order ASC").
		Find(&collections).Error
	if err != nil {
		log.Printf("CollectionRepository.GetAll: %v", err)
		return nil, err
	}
	return collections, nil
}

func (r *collectionRepository) GetActiveWithProducts(ctx context.Context) ([]models.Collection, error) {
	var collections []models.Collection
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_order ASC").
		Preload("Products", "is_active = ?", true).
		Preload("Products.Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("product_images.sort_order ASC")
		}).
		Find(&collections).Error
	if err != nil {
		return nil, err
	}
	return collections, nil
}

func (r *collectionRepository) Update(ctx context.Context, collection *models.Collection) error {
	return r.db.WithContext(ctx).Model(collection).
		Select("Name", "Slug", "Description", "CollectionType", "ImageURL", "SortOrder", "IsActive").
		Updates(collection).Error
}

func (r *collectionRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Collection{}, "id = ?", id).Error
}

func (r *collectionRepository) ToggleActive(ctx context.Context, id string, isActive bool) error {
	return r.db.WithContext(ctx).Model(&models.Collection{}).
		Where("id = ?", id).
		Update("is_active", isActive).Error
}

func (r *collectionRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Collection{}).Count(&count).Error
	return count, err
}

func (r *collectionRepository) CountMembers(ctx context.Context, id string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ProductCollection{}).
		Where("collection_id = ?", id).
		Count(&count).Error
	return count, err
}
