package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/pompadepo/pompa-market/app/helpers"
	"github.com/pompadepo/pompa-market/app/models"
	"github.com/pompadepo/pompa-market/app/repositories"
	"github.com/pompadepo/pompa-market/app/utils/cache"
	"github.com/pompadepo/pompa-market/app/utils/catalogtree"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Domain errors surfaced to the admin as-is. No raw store error reaches the
// presentation layer for these foreseeable cases.
var (
	ErrSlugTaken           = errors.New("Bu slug zaten kullanılıyor.")
	ErrCategoryHasChildren = errors.New("Bu kategorinin alt kategorileri var. Önce alt kategorileri silin.")
	ErrCategoryHasProducts = errors.New("Bu kategoriye ait ürünler var. Önce ürünleri taşıyın veya silin.")
	ErrDefaultCollection   = errors.New("Varsayılan koleksiyonlar silinemez.")
	ErrNotFound            = errors.New("Kayıt bulunamadı.")
)

const (
	PathHome             = "/"
	PathAdminProducts    = "/admin/products"
	PathAdminCategories  = "/admin/categories"
	PathAdminCollections = "/admin/collections"

	lowStockThreshold = 5
	dashboardListSize = 5
)

type CategoryFormData struct {
	Name        string
	Slug        string
	Description string
	ParentID    *string
	MainType    *models.MainType
	ImageURL    string
	SortOrder   int
	IsActive    bool
}

type CollectionFormData struct {
	Name           string
	Slug           string
	Description    string
	CollectionType models.CollectionType
	ImageURL       string
	SortOrder      int
	IsActive       bool
}

type FeatureInput struct {
	Name  string
	Value string
}

type ImageInput struct {
	URL       string
	AltText   string
	IsPrimary bool
}

type ProductFormData struct {
	Name             string
	Slug             string
	ShortDescription string
	Description      string
	Price            decimal.Decimal
	OriginalPrice    *decimal.Decimal
	Sku              string
	Stock            int
	CategoryID       *string
	Brand            string
	Model            string
	Unit             string
	IsActive         bool
	IsFeatured       bool
	Features         []FeatureInput
	CollectionIDs    []string
}

type DashboardStats struct {
	TotalProducts    int64
	ActiveProducts   int64
	TotalCategories  int64
	TotalCollections int64
	RecentProducts   []models.Product
	LowStock         []models.Product
}

// CatalogService coordinates every catalog mutation: it owns slug conflict
// translation, the referential delete guards, the multi-table product writes
// and the cache invalidation that follows each successful change.
type CatalogService struct {
	db             *gorm.DB
	productRepo    repositories.ProductRepositoryImpl
	categoryRepo   repositories.CategoryRepositoryImpl
	collectionRepo repositories.CollectionRepositoryImpl
	pageCache      *cache.PathCache
}

func NewCatalogService(
	db *gorm.DB,
	productRepo repositories.ProductRepositoryImpl,
	categoryRepo repositories.CategoryRepositoryImpl,
	collectionRepo repositories.CollectionRepositoryImpl,
	pageCache *cache.PathCache,
) *CatalogService {
	return &CatalogService{
		db:             db,
		productRepo:    productRepo,
		categoryRepo:   categoryRepo,
		collectionRepo: collectionRepo,
		pageCache:      pageCache,
	}
}

func (s *CatalogService) invalidate(paths ...string) {
	if s.pageCache != nil {
		s.pageCache.Invalidate(paths...)
	}
}

func slugOrDerived(slug, name string) string {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return helpers.GenerateSlug(name)
	}
	return helpers.GenerateSlug(slug)
}

// ---- Categories ----

func (s *CatalogService) CreateCategory(ctx context.Context, form CategoryFormData) (*models.Category, error) {
	category := &models.Category{
		ID:          uuid.New().String(),
		Name:        form.Name,
		Slug:        slugOrDerived(form.Slug, form.Name),
		Description: form.Description,
		ParentID:    form.ParentID,
		MainType:    form.MainType,
		ImageURL:    form.ImageURL,
		SortOrder:   form.SortOrder,
		IsActive:    form.IsActive,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if repositories.IsDuplicateEntry(err) {
			return nil, ErrSlugTaken
		}
		return nil, err
	}

	s.invalidate(PathAdminCategories, PathHome)
	return category, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id string, form CategoryFormData) error {
	category := &models.Category{
		ID:          id,
		Name:        form.Name,
		Slug:        slugOrDerived(form.Slug, form.Name),
		Description: form.Description,
		ParentID:    form.ParentID,
		MainType:    form.MainType,
		ImageURL:    form.ImageURL,
		SortOrder:   form.SortOrder,
		IsActive:    form.IsActive,
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		if repositories.IsDuplicateEntry(err) {
			return ErrSlugTaken
		}
		return err
	}

	s.invalidate(PathAdminCategories, PathHome)
	return nil
}

// DeleteCategory refuses to delete a category that still has child
// categories or products pointing at it. The caller has to re-parent or
// remove dependents first; there is no cascade mode.
func (s *CatalogService) DeleteCategory(ctx context.Context, id string) error {
	childCount, err := s.categoryRepo.CountChildren(ctx, id)
	if err != nil {
		return err
	}
	if childCount > 0 {
		return ErrCategoryHasChildren
	}

	productCount, err := s.productRepo.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if productCount > 0 {
		return ErrCategoryHasProducts
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(PathAdminCategories, PathHome)
	return nil
}

func (s *CatalogService) ToggleCategoryActive(ctx context.Context, id string, isActive bool) error {
	if err := s.categoryRepo.ToggleActive(ctx, id, isActive); err != nil {
		return err
	}
	s.invalidate(PathAdminCategories, PathHome)
	return nil
}

// CategoryTree returns all categories assembled into a forest.
func (s *CatalogService) CategoryTree(ctx context.Context) ([]*models.Category, error) {
	categories, err := s.categoryRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return catalogtree.BuildTree(categories), nil
}

// ActiveCategoryTree is the storefront navigation variant.
func (s *CatalogService) ActiveCategoryTree(ctx context.Context) ([]*models.Category, error) {
	categories, err := s.categoryRepo.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	return catalogtree.BuildTree(categories), nil
}

// EligibleParentCategories lists legal parent choices when editing a
// category: everything except the category itself and its descendants, so
// the edit form cannot introduce a cycle.
func (s *CatalogService) EligibleParentCategories(ctx context.Context, categoryID string) ([]models.Category, error) {
	categories, err := s.categoryRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return catalogtree.EligibleParents(categories, categoryID), nil
}

// ---- Collections ----

func (s *CatalogService) CreateCollection(ctx context.Context, form CollectionFormData) (*models.Collection, error) {
	collection := &models.Collection{
		ID:             uuid.New().String(),
		Name:           form.Name,
		Slug:           slugOrDerived(form.Slug, form.Name),
		Description:    form.Description,
		CollectionType: form.CollectionType,
		ImageURL:       form.ImageURL,
		SortOrder:      form.SortOrder,
		IsActive:       form.IsActive,
	}

	if err := s.collectionRepo.Create(ctx, collection); err != nil {
		if repositories.IsDuplicateEntry(err) {
			return nil, ErrSlugTaken
		}
		return nil, err
	}

	s.invalidate(PathAdminCollections, PathHome)
	return collection, nil
}

func (s *CatalogService) UpdateCollection(ctx context.Context, id string, form CollectionFormData) error {
	collection := &models.Collection{
		ID:             id,
		Name:           form.Name,
		Slug:           slugOrDerived(form.Slug, form.Name),
		Description:    form.Description,
		CollectionType: form.CollectionType,
		ImageURL:       form.ImageURL,
		SortOrder:      form.SortOrder,
		IsActive:       form.IsActive,
	}

	if err := s.collectionRepo.Update(ctx, collection); err != nil {
		if repositories.IsDuplicateEntry(err) {
			return ErrSlugTaken
		}
		return err
	}

	s.invalidate(PathAdminCollections, PathHome)
	return nil
}

// DeleteCollection rejects deletion of the three seeded default collections
// no matter how many members they have.
func (s *CatalogService) DeleteCollection(ctx context.Context, id string) error {
	collection, err := s.collectionRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if collection == nil {
		return ErrNotFound
	}
	if collection.CollectionType.IsDefault() {
		return ErrDefaultCollection
	}

	if err := s.collectionRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(PathAdminCollections, PathHome)
	return nil
}

func (s *CatalogService) ToggleCollectionActive(ctx context.Context, id string, isActive bool) error {
	if err := s.collectionRepo.ToggleActive(ctx, id, isActive); err != nil {
		return err
	}
	s.invalidate(PathAdminCollections, PathHome)
	return nil
}

// ---- Products ----

// validFeatureRows keeps only feature pairs where both sides are non-empty
// after trimming, assigning sort keys by position in the kept list.
func validFeatureRows(productID string, features []FeatureInput) []models.ProductFeature {
	rows := make([]models.ProductFeature, 0, len(features))
	for _, f := range features {
		name := strings.TrimSpace(f.Name)
		value := strings.TrimSpace(f.Value)
		if name == "" || value == "" {
			continue
		}
		rows = append(rows, models.ProductFeature{
			ID:           uuid.New().String(),
			ProductID:    productID,
			FeatureName:  name,
			FeatureValue: value,
			SortOrder:    len(rows),
		})
	}
	return rows
}

// imageRows forces the first image, and any image explicitly flagged, to be
// primary, and falls back to the product name for missing alt text.
func imageRows(productID, productName string, images []ImageInput) []models.ProductImage {
	rows := make([]models.ProductImage, 0, len(images))
	for i, img := range images {
		altText := img.AltText
		if altText == "" {
			altText = productName
		}
		rows = append(rows, models.ProductImage{
			ID:        uuid.New().String(),
			ProductID: productID,
			URL:       img.URL,
			AltText:   altText,
			IsPrimary: i == 0 || img.IsPrimary,
			SortOrder: i,
		})
	}
	return rows
}

func (s *CatalogService) productFromForm(id string, form ProductFormData) *models.Product {
	unit := strings.TrimSpace(form.Unit)
	if unit == "" {
		unit = "Adet"
	}
	return &models.Product{
		ID:               id,
		Name:             form.Name,
		Slug:             slugOrDerived(form.Slug, form.Name),
		ShortDescription: form.ShortDescription,
		Description:      form.Description,
		Price:            form.Price,
		OriginalPrice:    form.OriginalPrice,
		Sku:              form.Sku,
		Stock:            form.Stock,
		CategoryID:       form.CategoryID,
		Brand:            form.Brand,
		Model:            form.Model,
		Unit:             unit,
		IsActive:         form.IsActive,
		IsFeatured:       form.IsFeatured,
	}
}

// CreateProduct writes the product row and its dependent rows (features,
// images, collection memberships) in one transaction. A duplicate slug
// aborts the whole save with ErrSlugTaken before any child row is written.
func (s *CatalogService) CreateProduct(ctx context.Context, form ProductFormData, images []ImageInput) (*models.Product, error) {
	product := s.productFromForm(uuid.New().String(), form)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.productRepo.WithTx(tx)

		if err := repo.Create(ctx, product); err != nil {
			if repositories.IsDuplicateEntry(err) {
				return ErrSlugTaken
			}
			return err
		}
		if err := repo.ReplaceFeatures(ctx, product.ID, validFeatureRows(product.ID, form.Features)); err != nil {
			return err
		}
		if err := repo.ReplaceImages(ctx, product.ID, imageRows(product.ID, product.Name, images)); err != nil {
			return err
		}
		return repo.ReplaceCollections(ctx, product.ID, form.CollectionIDs)
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(PathAdminProducts, PathHome)
	return product, nil
}

// UpdateProduct rewrites the product row, then replaces features and
// collection memberships wholesale. Images are replaced only when
// replaceImages is set: an edit that uploads nothing keeps the stored
// gallery untouched rather than clearing it.
func (s *CatalogService) UpdateProduct(ctx context.Context, id string, form ProductFormData, images []ImageInput, replaceImages bool) error {
	product := s.productFromForm(id, form)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.productRepo.WithTx(tx)

		if err := repo.Update(ctx, product); err != nil {
			if repositories.IsDuplicateEntry(err) {
				return ErrSlugTaken
			}
			return err
		}
		if err := repo.ReplaceFeatures(ctx, id, validFeatureRows(id, form.Features)); err != nil {
			return err
		}
		if replaceImages {
			if err := repo.ReplaceImages(ctx, id, imageRows(id, product.Name, images)); err != nil {
				return err
			}
		}
		return repo.ReplaceCollections(ctx, id, form.CollectionIDs)
	})
	if err != nil {
		return err
	}

	s.invalidate(PathAdminProducts, PathAdminProducts+"/"+id, PathHome)
	return nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(PathAdminProducts, PathHome)
	return nil
}

func (s *CatalogService) ToggleProductActive(ctx context.Context, id string, isActive bool) error {
	if err := s.productRepo.ToggleActive(ctx, id, isActive); err != nil {
		return err
	}
	s.invalidate(PathAdminProducts, PathHome)
	return nil
}

// ---- Dashboard ----

// DashboardStats runs its six independent queries concurrently. Individual
// failures are logged and leave their slot at the zero value so the
// dashboard still renders.
func (s *CatalogService) DashboardStats(ctx context.Context) *DashboardStats {
	stats := &DashboardStats{}

	var wg sync.WaitGroup
	run := func(name string, fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				log.Printf("DashboardStats: %s: %v", name, err)
			}
		}()
	}

	run("totalProducts", func() error {
		n, err := s.productRepo.CountAll(ctx)
		stats.TotalProducts = n
		return err
	})
	run("activeProducts", func() error {
		n, err := s.productRepo.CountActive(ctx)
		stats.ActiveProducts = n
		return err
	})
	run("totalCategories", func() error {
		n, err := s.categoryRepo.CountAll(ctx)
		stats.TotalCategories = n
		return err
	})
	run("totalCollections", func() error {
		n, err := s.collectionRepo.CountAll(ctx)
		stats.TotalCollections = n
		return err
	})
	run("recentProducts", func() error {
		products, err := s.productRepo.Recent(ctx, dashboardListSize)
		stats.RecentProducts = products
		return err
	})
	run("lowStock", func() error {
		products, err := s.productRepo.LowStock(ctx, lowStockThreshold, dashboardListSize)
		stats.LowStock = products
		return err
	})

	wg.Wait()
	return stats
}

// CachedHome returns the memoized homepage payload if a mutation has not
// invalidated it yet.
func (s *CatalogService) CachedHome() (interface{}, bool) {
	if s.pageCache == nil {
		return nil, false
	}
	return s.pageCache.Get(PathHome)
}

func (s *CatalogService) StoreHome(payload interface{}) {
	if s.pageCache != nil {
		s.pageCache.Set(PathHome, payload)
	}
}
