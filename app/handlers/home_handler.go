package handlers

import (
	"log"
	"net/http"

	"github.com/pompadepo/pompa-market/app/helpers"
	"github.com/pompadepo/pompa-market/app/models"
	"github.com/pompadepo/pompa-market/app/repositories"
	"github.com/pompadepo/pompa-market/app/services"
	"github.com/unrolled/render"
)

type HomeHandler struct {
	render         *render.Render
	catalogSvc     *services.CatalogService
	productRepo    repositories.ProductRepositoryImpl
	collectionRepo repositories.CollectionRepositoryImpl
}

func NewHomeHandler(
	r *render.Render,
	catalogSvc *services.CatalogService,
	productRepo repositories.ProductRepositoryImpl,
	collectionRepo repositories.CollectionRepositoryImpl,
) *HomeHandler {
	return &HomeHandler{
		render:         r,
		catalogSvc:     catalogSvc,
		productRepo:    productRepo,
		collectionRepo: collectionRepo,
	}
}

type homePayload struct {
	CategoryTree []*models.Category
	Featured     []models.Product
	Newest       []models.Product
	Collections  []models.Collection
}

// Home renders the storefront landing page. The catalog payload is cached
// until the next catalog mutation invalidates it; every read failure is
// logged and leaves its section empty so the page still renders.
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	payload, ok := h.catalogSvc.CachedHome()
	home, valid := payload.(*homePayload)
	if !ok || !valid {
		home = &homePayload{}

		tree, err := h.catalogSvc.ActiveCategoryTree(r.Context())
		if err != nil {
			log.Printf("Home: failed to load category tree: %v", err)
		} else {
			home.CategoryTree = tree
		}

		featured, err := h.productRepo.GetFeatured(r.Context(), 8)
		if err != nil {
			log.Printf("Home: failed to load featured products: %v", err)
		} else {
			home.Featured = featured
		}

		newest, err := h.productRepo.GetNewest(r.Context(), 8)
		if err != nil {
			log.Printf("Home: failed to load newest products: %v", err)
		} else {
			home.Newest = newest
		}

		collections, err := h.collectionRepo.GetActiveWithProducts(r.Context())
		if err != nil {
			log.Printf("Home: failed to load collections: %v", err)
		} else {
			home.Collections = collections
		}

		h.catalogSvc.StoreHome(home)
	}

	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title":       "Pompa Market - Endüstriyel Pompa ve Yedek Parça",
		"Categories":  home.CategoryTree,
		"Featured":    home.Featured,
		"Newest":      home.Newest,
		"Collections": home.Collections,
	})

	_ = h.render.HTML(w, http.StatusOK, "home", data)
}
