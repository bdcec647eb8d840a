package repositories

import (
	"context"
	"strings"

	"github.com/pompadepo/pompa-market/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductSearchParams narrows listing queries. Zero values mean "no filter";
// IsActive is a pointer so false can be filtered on explicitly.
type ProductSearchParams struct {
	Search       string
	CategoryID   string
	CategorySlug string
	IsActive     *bool
	Page         int
	PageSize     int
}

type ProductRepositoryImpl interface {
	GetPaginated(ctx context.Context, params ProductSearchParams) ([]models.Product, int64, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	GetBySlug(ctx context.Context, slug string) (*models.Product, error)
	GetFeatured(ctx context.Context, limit int) ([]models.Product, error)
	GetNewest(ctx context.Context, limit int) ([]models.Product, error)
	GetRelated(ctx context.Context, categoryID, excludeID string, limit int) ([]models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id string) error
	ToggleActive(ctx context.Context, id string, isActive bool) error
	IncrementViewCount(ctx context.Context, id string) error
	ReplaceFeatures(ctx context.Context, productID string, features []models.ProductFeature) error
	ReplaceImages(ctx context.Context, productID string, images []models.ProductImage) error
	ReplaceCollections(ctx context.Context, productID string, collectionIDs []string) error
	CountAll(ctx context.Context) (int64, error)
	CountActive(ctx context.Context) (int64, error)
	CountByCategory(ctx context.Context, categoryID string) (int64, error)
	CountsPerCategory(ctx context.Context) (map[string]int64, error)
	Recent(ctx context.Context, limit int) ([]models.Product, error)
	LowStock(ctx context.Context, threshold, limit int) ([]models.Product, error)
	WithTx(tx *gorm.DB) ProductRepositoryImpl
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepositoryImpl {
	return &productRepository{db}
}

// WithTx rebinds the repository to a running transaction so the mutation
// coordinator can make its multi-step writes atomic.
func (p *productRepository) WithTx(tx *gorm.DB) ProductRepositoryImpl {
	return &productRepository{db: tx}
}

func (p *productRepository) withRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("product_images.sort_order ASC")
		}).
		Preload("Features", func(db *gorm.DB) *gorm.DB {
			return db.Order("product_features.sort_order ASC")
		})
}

func (p *productRepository) applyFilters(db *gorm.DB, params ProductSearchParams) *gorm.DB {
	if params.Search != "" {
		keyword := "%" + strings.ToLower(params.Search) + "%"
		db = db.Where(
			"LOWER(products.name) LIKE ? OR LOWER(products.sku) LIKE ? OR LOWER(products.brand) LIKE ?",
			keyword, keyword, keyword,
		)
	}
	if params.CategoryID != "" {
		db = db.Where("products.category_id = ?", params.CategoryID)
	}
	if params.CategorySlug != "" {
		db = db.Joins("JOIN categories c ON c.id = products.category_id").
			Where("c.slug = ?", params.CategorySlug)
	}
	if params.IsActive != nil {
		db = db.Where("products.is_active = ?", *params.IsActive)
	}
	return db
}

func (p *productRepository) GetPaginated(ctx context.Context, params ProductSearchParams) ([]models.Product, int64, error) {
	var products []models.Product
	var total int64

	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 {
		params.PageSize = 20
	}
	offset := (params.Page - 1) * params.PageSize

	countQuery := p.applyFilters(p.db.WithContext(ctx).Model(&models.Product{}), params)
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := p.applyFilters(p.db.WithContext(ctx).Model(&models.Product{}), params)
	err := p.withRelations(query).
		Order("products.created_at DESC").
		Limit(params.PageSize).
		Offset(offset).
		Find(&products).Error

	return products, total, err
}

func (p *productRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	err := p.withRelations(p.db.WithContext(ctx)).
		Preload("Collections").
		Where("id = ?", id).
		First(&product).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// GetBySlug is the storefront detail lookup and only returns active products.
func (p *productRepository) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	err := p.withRelations(p.db.WithContext(ctx)).
		Preload("Collections").
		Where("slug = ? AND is_active = ?", slug, true).
		First(&product).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (p *productRepository) GetFeatured(ctx context.Context, limit int) ([]models.Product, error) {
	var products []models.Product
	err := p.withRelations(p.db.WithContext(ctx)).
		Where("is_active = ? AND is_featured = ?", true, true).
		Order("created_at DESC").
		Limit(limit).
		Find(&products).Error
	return products, err
}

func (p *productRepository) GetNewest(ctx context.Context, limit int) ([]models.Product, error) {
	var products []models.Product
	err := p.withRelations(p.db.WithContext(ctx)).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Limit(limit).
		Find(&products).Error
	return products, err
}

func (p *productRepository) GetRelated(ctx context.Context, categoryID, excludeID string, limit int) ([]models.Product, error) {
	var products []models.Product
	err := p.withRelations(p.db.WithContext(ctx)).
		Where("category_id = ? AND id <> ? AND is_active = ?", categoryID, excludeID, true).
		Order("created_at DESC").
		Limit(limit).
		Find(&products).Error
	return products, err
}

// Create inserts the product row only; child rows are written by the
// Replace* methods so the coordinator controls their ordering.
func (p *productRepository) Create(ctx context.Context, product *models.Product) error {
	return p.db.WithContext(ctx).Omit(clause.Associations).Create(product).Error
}

func (p *productRepository) Update(ctx context.Context, product *models.Product) error {
	return p.db.WithContext(ctx).Model(product).
		Select("Name", "Slug", "ShortDescription", "Description", "Price", "OriginalPrice",
			"Sku", "Stock", "CategoryID", "Brand", "Model", "Unit", "IsActive", "IsFeatured").
		Updates(product).Error
}

func (p *productRepository) Delete(ctx context.Context, id string) error {
	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.ProductFeature{}, "product_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.ProductImage{}, "product_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.ProductCollection{}, "product_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Product{}, "id = ?", id).Error
	})
}

func (p *productRepository) ToggleActive(ctx context.Context, id string, isActive bool) error {
	return p.db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ?", id).
		Update("is_active", isActive).Error
}

func (p *productRepository) IncrementViewCount(ctx context.Context, id string) error {
	return p.db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ?", id).
		Update("view_count", gorm.Expr("view_count + 1")).Error
}

func (p *productRepository) ReplaceFeatures(ctx context.Context, productID string, features []models.ProductFeature) error {
	if err := p.db.WithContext(ctx).Delete(&models.ProductFeature{}, "product_id = ?", productID).Error; err != nil {
		return err
	}
	if len(features) == 0 {
		return nil
	}
	return p.db.WithContext(ctx).Create(&features).Error
}

func (p *productRepository) ReplaceImages(ctx context.Context, productID string, images []models.ProductImage) error {
	if err := p.db.WithContext(ctx).Delete(&models.ProductImage{}, "product_id = ?", productID).Error; err != nil {
		return err
	}
	if len(images) == 0 {
		return nil
	}
	return p.db.WithContext(ctx).Create(&images).Error
}

func (p *productRepository) ReplaceCollections(ctx context.Context, productID string, collectionIDs []string) error {
	if err := p.db.WithContext(ctx).Delete(&models.ProductCollection{}, "product_id = ?", productID).Error; err != nil {
		return err
	}
	if len(collectionIDs) == 0 {
		return nil
	}
	rows := make([]models.ProductCollection, 0, len(collectionIDs))
	for _, collectionID := range collectionIDs {
		rows = append(rows, models.ProductCollection{
			ProductID:    productID,
			CollectionID: collectionID,
		})
	}
	return p.db.WithContext(ctx).Create(&rows).Error
}

func (p *productRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).Model(&models.Product{}).Count(&count).Error
	return count, err
}

func (p *productRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).Model(&models.Product{}).
		Where("is_active = ?", true).
		Count(&count).Error
	return count, err
}

func (p *productRepository) CountByCategory(ctx context.Context, categoryID string) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).Model(&models.Product{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error
	return count, err
}

func (p *productRepository) CountsPerCategory(ctx context.Context) (map[string]int64, error) {
	type row struct {
		CategoryID string
		Count      int64
	}
	var rows []row
	err := p.db.WithContext(ctx).Model(&models.Product{}).
		Select("category_id, COUNT(*) as count").
		Where("category_id IS NOT NULL").
		Group("category_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.CategoryID] = r.Count
	}
	return counts, nil
}

func (p *productRepository) Recent(ctx context.Context, limit int) ([]models.Product, error) {
	var products []models.Product
	err := p.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&products).Error
	return products, err
}

func (p *productRepository) LowStock(ctx context.Context, threshold, limit int) ([]models.Product, error) {
	var products []models.Product
	err := p.db.WithContext(ctx).
		Where("stock < ? AND is_active = ?", threshold, true).
		Order("stock ASC").
		Limit(limit).
		Find(&products).Error
	return products, err
}
