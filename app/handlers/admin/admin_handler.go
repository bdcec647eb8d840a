package admin

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pompadepo/pompa-market/app/helpers"
	"github.com/pompadepo/pompa-market/app/models"
	"github.com/pompadepo/pompa-market/app/repositories"
	"github.com/pompadepo/pompa-market/app/services"
	"github.com/shopspring/decimal"
	"github.com/unrolled/render"
)

type AdminHandler struct {
	render         *render.Render
	validator      *validator.Validate
	catalogSvc     *services.CatalogService
	storageSvc     services.StorageService
	productRepo    repositories.ProductRepositoryImpl
	categoryRepo   repositories.CategoryRepositoryImpl
	collectionRepo repositories.CollectionRepositoryImpl
}

func NewAdminHandler(
	render *render.Render,
	validator *validator.Validate,
	catalogSvc *services.CatalogService,
	storageSvc services.StorageService,
	productRepo repositories.ProductRepositoryImpl,
	categoryRepo repositories.CategoryRepositoryImpl,
	collectionRepo repositories.CollectionRepositoryImpl,
) *AdminHandler {
	return &AdminHandler{
		render:         render,
		validator:      validator,
		catalogSvc:     catalogSvc,
		storageSvc:     storageSvc,
		productRepo:    productRepo,
		categoryRepo:   categoryRepo,
		collectionRepo: collectionRepo,
	}
}

type CategoryForm struct {
	ID          string `form:"id"`
	Name        string `form:"name" validate:"required,min=2,max=150"`
	Slug        string `form:"slug" validate:"max=150"`
	Description string `form:"description"`
	ParentID    string `form:"parent_id"`
	MainType    string `form:"main_type" validate:"omitempty,oneof=pompa yedek_parca"`
	ImageURL    string `form:"image_url"`
	SortOrder   string `form:"sort_order" validate:"omitempty,numeric"`
	IsActive    bool   `form:"is_active"`
}

type CollectionForm struct {
	ID             string `form:"id"`
	Name           string `form:"name" validate:"required,min=2,max=150"`
	Slug           string `form:"slug" validate:"max=150"`
	Description    string `form:"description"`
	CollectionType string `form:"collection_type" validate:"required,oneof=yeni_gelenler cok_satanlar indirimdekiler ozel"`
	ImageURL       string `form:"image_url"`
	SortOrder      string `form:"sort_order" validate:"omitempty,numeric"`
	IsActive       bool   `form:"is_active"`
}

type ProductForm struct {
	ID               string `form:"id"`
	Name             string `form:"name" validate:"required,min=3,max=255"`
	Slug             string `form:"slug" validate:"max=255"`
	ShortDescription string `form:"short_description" validate:"max=500"`
	Description      string `form:"description"`
	Price            string `form:"price" validate:"required,numeric"`
	OriginalPrice    string `form:"original_price" validate:"omitempty,numeric"`
	SKU              string `form:"sku" validate:"max=100"`
	Stock            string `form:"stock" validate:"required,numeric"`
	CategoryID       string `form:"category_id"`
	Brand            string `form:"brand" validate:"max=150"`
	Model            string `form:"model" validate:"max=150"`
	Unit             string `form:"unit" validate:"max=50"`
	IsActive         bool   `form:"is_active"`
	IsFeatured       bool   `form:"is_featured"`
}

// redirectWithFlash bounces back with the status/message query pair the
// layout renders as a toast.
func redirectWithFlash(w http.ResponseWriter, r *http.Request, target, status, message string) {
	http.Redirect(w, r, target+"?status="+status+"&message="+url.QueryEscape(message), http.StatusSeeOther)
}

func formBool(r *http.Request, field string) bool {
	v := r.PostFormValue(field)
	return v == "on" || v == "true" || v == "1"
}

func formInt(r *http.Request, field string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(r.PostFormValue(field)))
	return n
}

func parsePrice(raw string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(strings.ReplaceAll(raw, ",", ".")))
}

func optionalString(raw string) *string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	return &raw
}

func optionalMainType(raw string) *models.MainType {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	mt := models.MainType(raw)
	return &mt
}

func (h *AdminHandler) validationErrors(err error) map[string]string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		return helpers.FormatValidationErrors(validationErrors)
	}
	return map[string]string{"form": err.Error()}
}
