package handlers

import (
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pompadepo/pompa-market/app/helpers"
	"github.com/pompadepo/pompa-market/app/repositories"
	"github.com/pompadepo/pompa-market/app/services"
	"github.com/pompadepo/pompa-market/app/utils/breadcrumb"
	"github.com/unrolled/render"
)

const productsPageSize = 12

type ProductHandler struct {
	render      *render.Render
	catalogSvc  *services.CatalogService
	productRepo repositories.ProductRepositoryImpl
}

func NewProductHandler(
	r *render.Render,
	catalogSvc *services.CatalogService,
	productRepo repositories.ProductRepositoryImpl,
) *ProductHandler {
	return &ProductHandler{
		render:      r,
		catalogSvc:  catalogSvc,
		productRepo: productRepo,
	}
}

// ListProducts renders /urunler with search, category filter and pagination.
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page, _ := strconv.Atoi(query.Get("page"))
	if page < 1 {
		page = 1
	}

	active := true
	params := repositories.ProductSearchParams{
		Search:       query.Get("q"),
		CategorySlug: query.Get("kategori"),
		IsActive:     &active,
		Page:         page,
		PageSize:     productsPageSize,
	}

	products, total, err := h.productRepo.GetPaginated(r.Context(), params)
	if err != nil {
		log.Printf("ListProducts: failed to load products: %v", err)
	}

	tree, err := h.catalogSvc.ActiveCategoryTree(r.Context())
	if err != nil {
		log.Printf("ListProducts: failed to load category tree: %v", err)
	}

	totalPages := int((total + productsPageSize - 1) / productsPageSize)
	if totalPages < 1 {
		totalPages = 1
	}

	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title":      "Ürünler",
		"Products":   products,
		"Categories": tree,
		"Total":      total,
		"Page":       page,
		"TotalPages": totalPages,
		"Search":     params.Search,
		"Category":   params.CategorySlug,
		"Breadcrumbs": []breadcrumb.Breadcrumb{
			{Name: "Anasayfa", URL: "/"},
			{Name: "Ürünler", URL: "/urunler"},
		},
	})

	_ = h.render.HTML(w, http.StatusOK, "products/index", data)
}

// ProductDetail renders /urun/{slug}. Only active products resolve; anything
// else bounces back to the listing with a flash message.
func (h *ProductHandler) ProductDetail(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	product, err := h.productRepo.GetBySlug(r.Context(), slug)
	if err != nil {
		log.Printf("ProductDetail: failed to load product %s: %v", slug, err)
	}
	if product == nil {
		http.Redirect(w, r, "/urunler?status=error&message="+url.QueryEscape("Ürün bulunamadı."), http.StatusSeeOther)
		return
	}

	if err := h.productRepo.IncrementViewCount(r.Context(), product.ID); err != nil {
		log.Printf("ProductDetail: failed to bump view count for %s: %v", product.ID, err)
	}

	var related interface{}
	if product.CategoryID != nil {
		relatedProducts, err := h.productRepo.GetRelated(r.Context(), *product.CategoryID, product.ID, 4)
		if err != nil {
			log.Printf("ProductDetail: failed to load related products: %v", err)
		} else {
			related = relatedProducts
		}
	}

	crumbs := []breadcrumb.Breadcrumb{
		{Name: "Anasayfa", URL: "/"},
		{Name: "Ürünler", URL: "/urunler"},
	}
	if product.Category != nil {
		crumbs = append(crumbs, breadcrumb.Breadcrumb{
			Name: product.Category.Name,
			URL:  "/urunler?kategori=" + url.QueryEscape(product.Category.Slug),
		})
	}
	crumbs = append(crumbs, breadcrumb.Breadcrumb{Name: product.Name, URL: "/urun/" + product.Slug})

	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title":       product.Name,
		"Product":     product,
		"Related":     related,
		"Breadcrumbs": crumbs,
	})

	_ = h.render.HTML(w, http.StatusOK, "products/detail", data)
}
