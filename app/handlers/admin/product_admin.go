package admin

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pompadepo/pompa-market/app/helpers"
	"github.com/pompadepo/pompa-market/app/repositories"
	"github.com/pompadepo/pompa-market/app/services"
	"github.com/pompadepo/pompa-market/app/utils/breadcrumb"
	"github.com/shopspring/decimal"
)

const adminProductsPageSize = 20

func (h *AdminHandler) GetProductsPage(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page, _ := strconv.Atoi(query.Get("page"))
	if page < 1 {
		page = 1
	}

	params := repositories.ProductSearchParams{
		Search:     query.Get("q"),
		CategoryID: query.Get("category_id"),
		Page:       page,
		PageSize:   adminProductsPageSize,
	}
	if status := query.Get("active"); status != "" {
		active := status == "1" || status == "true"
		params.IsActive = &active
	}

	data := map[string]interface{}{
		"Title":    "Ürün Yönetimi",
		"Search":   params.Search,
		"Category": params.CategoryID,
		"Page":     page,
		"Breadcrumbs": []breadcrumb.Breadcrumb{
			{Name: "Anasayfa", URL: "/"},
			{Name: "Yönetim", URL: "/admin/dashboard"},
			{Name: "Ürünler", URL: "/admin/products"},
		},
	}

	products, total, err := h.productRepo.GetPaginated(r.Context(), params)
	if err != nil {
		log.Printf("GetProductsPage: failed to load products: %v", err)
		data["Message"] = "Ürünler yüklenemedi."
		data["MessageStatus"] = "error"
	} else {
		data["Products"] = products
		data["Total"] = total
		totalPages := int((total + adminProductsPageSize - 1) / adminProductsPageSize)
		if totalPages < 1 {
			totalPages = 1
		}
		data["TotalPages"] = totalPages
	}

	if categories, err := h.categoryRepo.GetAll(r.Context()); err != nil {
		log.Printf("GetProductsPage: failed to load categories: %v", err)
	} else {
		data["Categories"] = categories
	}

	_ = h.render.HTML(w, http.StatusOK, "admin/products/index", helpers.GetBaseData(r, data))
}

// parseProductForm reads the scalar fields. Features, images and collection
// memberships ride along as repeated form fields and are parsed separately.
func (h *AdminHandler) parseProductForm(r *http.Request) ProductForm {
	return ProductForm{
		ID:               r.PostFormValue("id"),
		Name:             r.PostFormValue("name"),
		Slug:             r.PostFormValue("slug"),
		ShortDescription: r.PostFormValue("short_description"),
		Description:      r.PostFormValue("description"),
		Price:            r.PostFormValue("price"),
		OriginalPrice:    r.PostFormValue("original_price"),
		SKU:              r.PostFormValue("sku"),
		Stock:            r.PostFormValue("stock"),
		CategoryID:       r.PostFormValue("category_id"),
		Brand:            r.PostFormValue("brand"),
		Model:            r.PostFormValue("model"),
		Unit:             r.PostFormValue("unit"),
		IsActive:         formBool(r, "is_active"),
		IsFeatured:       formBool(r, "is_featured"),
	}
}

func parseFeatureInputs(r *http.Request) []services.FeatureInput {
	names := r.Form["feature_name"]
	values := r.Form["feature_value"]
	features := make([]services.FeatureInput, 0, len(names))
	for i, name := range names {
		value := ""
		if i < len(values) {
			value = values[i]
		}
		features = append(features, services.FeatureInput{Name: name, Value: value})
	}
	return features
}

func parseImageInputs(r *http.Request) []services.ImageInput {
	urls := r.Form["image_url"]
	alts := r.Form["image_alt"]
	primaryIndex, err := strconv.Atoi(r.PostFormValue("primary_image"))
	if err != nil {
		primaryIndex = -1
	}

	images := make([]services.ImageInput, 0, len(urls))
	for i, u := range urls {
		if u == "" {
			continue
		}
		alt := ""
		if i < len(alts) {
			alt = alts[i]
		}
		images = append(images, services.ImageInput{
			URL:       u,
			AltText:   alt,
			IsPrimary: i == primaryIndex,
		})
	}
	return images
}

func (h *AdminHandler) productFormData(r *http.Request, form ProductForm) (services.ProductFormData, error) {
	price, err := parsePrice(form.Price)
	if err != nil {
		return services.ProductFormData{}, errors.New("Geçersiz fiyat formatı.")
	}

	var originalPrice *decimal.Decimal
	if form.OriginalPrice != "" {
		parsed, err := parsePrice(form.OriginalPrice)
		if err != nil {
			return services.ProductFormData{}, errors.New("Geçersiz eski fiyat formatı.")
		}
		originalPrice = &parsed
	}

	stock, err := strconv.Atoi(form.Stock)
	if err != nil {
		return services.ProductFormData{}, errors.New("Geçersiz stok formatı.")
	}

	return services.ProductFormData{
		Name:             form.Name,
		Slug:             form.Slug,
		ShortDescription: form.ShortDescription,
		Description:      form.Description,
		Price:            price,
		OriginalPrice:    originalPrice,
		Sku:              form.SKU,
		Stock:            stock,
		CategoryID:       optionalString(form.CategoryID),
		Brand:            form.Brand,
		Model:            form.Model,
		Unit:             form.Unit,
		IsActive:         form.IsActive,
		IsFeatured:       form.IsFeatured,
		Features:         parseFeatureInputs(r),
		CollectionIDs:    r.Form["collection_ids"],
	}, nil
}

func (h *AdminHandler) renderProductForm(w http.ResponseWriter, r *http.Request, formAction string, isEdit bool, form *ProductForm, formErrors map[string]string) {
	data := map[string]interface{}{
		"FormAction":  formAction,
		"IsEdit":      isEdit,
		"ProductData": form,
		"Errors":      formErrors,
	}

	title := "Yeni Ürün"
	if isEdit {
		title = "Ürün Düzenle"
	}
	data["Title"] = title

	if categories, err := h.categoryRepo.GetAll(r.Context()); err != nil {
		log.Printf("renderProductForm: failed to load categories: %v", err)
	} else {
		data["Categories"] = categories
	}
	if collections, err := h.collectionRepo.GetAll(r.Context()); err != nil {
		log.Printf("renderProductForm: failed to load collections: %v", err)
	} else {
		data["Collections"] = collections
	}

	if isEdit && form.ID != "" {
		if product, err := h.productRepo.GetByID(r.Context(), form.ID); err == nil && product != nil {
			data["Product"] = product
		}
	}

	data["Breadcrumbs"] = []breadcrumb.Breadcrumb{
		{Name: "Anasayfa", URL: "/"},
		{Name: "Yönetim", URL: "/admin/dashboard"},
		{Name: "Ürünler", URL: "/admin/products"},
		{Name: title, URL: formAction},
	}

	_ = h.render.HTML(w, http.StatusOK, "admin/products/form", helpers.GetBaseData(r, data))
}

func (h *AdminHandler) AddProductPage(w http.ResponseWriter, r *http.Request) {
	form := &ProductForm{Unit: "Adet", Stock: "0", IsActive: true}
	h.renderProductForm(w, r, "/admin/products/add", false, form, map[string]string{})
}

func (h *AdminHandler) AddProductPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectWithFlash(w, r, "/admin/products/add", "error", "Form okunamadı.")
		return
	}

	form := h.parseProductForm(r)
	if err := h.validator.Struct(&form); err != nil {
		h.renderProductForm(w, r, "/admin/products/add", false, &form, h.validationErrors(err))
		return
	}

	formData, err := h.productFormData(r, form)
	if err != nil {
		h.renderProductForm(w, r, "/admin/products/add", false, &form, map[string]string{"form": err.Error()})
		return
	}

	if _, err := h.catalogSvc.CreateProduct(r.Context(), formData, parseImageInputs(r)); err != nil {
		if errors.Is(err, services.ErrSlugTaken) {
			h.renderProductForm(w, r, "/admin/products/add", false, &form, map[string]string{"slug": err.Error()})
			return
		}
		log.Printf("AddProductPost: failed to create product: %v", err)
		redirectWithFlash(w, r, "/admin/products", "error", "Ürün eklenemedi: "+err.Error())
		return
	}

	redirectWithFlash(w, r, "/admin/products", "success", "Ürün başarıyla eklendi.")
}

func (h *AdminHandler) EditProductPage(w http.ResponseWriter, r *http.Request) {
	productID := mux.Vars(r)["id"]

	product, err := h.productRepo.GetByID(r.Context(), productID)
	if err != nil || product == nil {
		log.Printf("EditProductPage: product %s not found: %v", productID, err)
		redirectWithFlash(w, r, "/admin/products", "error", "Ürün bulunamadı.")
		return
	}

	form := &ProductForm{
		ID:               product.ID,
		Name:             product.Name,
		Slug:             product.Slug,
		ShortDescription: product.ShortDescription,
		Description:      product.Description,
		Price:            product.Price.String(),
		SKU:              product.Sku,
		Stock:            strconv.Itoa(product.Stock),
		Brand:            product.Brand,
		Model:            product.Model,
		Unit:             product.Unit,
		IsActive:         product.IsActive,
		IsFeatured:       product.IsFeatured,
	}
	if product.OriginalPrice != nil {
		form.OriginalPrice = product.OriginalPrice.String()
	}
	if product.CategoryID != nil {
		form.CategoryID = *product.CategoryID
	}

	h.renderProductForm(w, r, "/admin/products/"+product.ID+"/edit", true, form, map[string]string{})
}

func (h *AdminHandler) EditProductPost(w http.ResponseWriter, r *http.Request) {
	productID := mux.Vars(r)["id"]
	formAction := "/admin/products/" + productID + "/edit"

	if err := r.ParseForm(); err != nil {
		redirectWithFlash(w, r, formAction, "error", "Form okunamadı.")
		return
	}

	form := h.parseProductForm(r)
	form.ID = productID
	if err := h.validator.Struct(&form); err != nil {
		h.renderProductForm(w, r, formAction, true, &form, h.validationErrors(err))
		return
	}

	formData, err := h.productFormData(r, form)
	if err != nil {
		h.renderProductForm(w, r, formAction, true, &form, map[string]string{"form": err.Error()})
		return
	}

	// Submitting no images means "keep the stored gallery"; only a
	// non-empty upload replaces it.
	images := parseImageInputs(r)
	replaceImages := len(images) > 0

	if err := h.catalogSvc.UpdateProduct(r.Context(), productID, formData, images, replaceImages); err != nil {
		if errors.Is(err, services.ErrSlugTaken) {
			h.renderProductForm(w, r, formAction, true, &form, map[string]string{"slug": err.Error()})
			return
		}
		log.Printf("EditProductPost: failed to update product %s: %v", productID, err)
		redirectWithFlash(w, r, "/admin/products", "error", "Ürün güncellenemedi: "+err.Error())
		return
	}

	redirectWithFlash(w, r, "/admin/products", "success", "Ürün güncellendi.")
}

func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	productID := mux.Vars(r)["id"]

	if err := h.catalogSvc.DeleteProduct(r.Context(), productID); err != nil {
		log.Printf("DeleteProduct: failed to delete product %s: %v", productID, err)
		redirectWithFlash(w, r, "/admin/products", "error", "Ürün silinemedi: "+err.Error())
		return
	}

	redirectWithFlash(w, r, "/admin/products", "success", "Ürün silindi.")
}

func (h *AdminHandler) ToggleProductActive(w http.ResponseWriter, r *http.Request) {
	productID := mux.Vars(r)["id"]
	isActive := formBool(r, "is_active")

	if err := h.catalogSvc.ToggleProductActive(r.Context(), productID, isActive); err != nil {
		log.Printf("ToggleProductActive: failed for product %s: %v", productID, err)
		redirectWithFlash(w, r, "/admin/products", "error", "Ürün durumu değiştirilemedi.")
		return
	}

	redirectWithFlash(w, r, "/admin/products", "success", "Ürün durumu güncellendi.")
}

type uploadResponse struct {
	URL   string `json:"url,omitempty"`
	Error string `json:"error,omitempty"`
}

// UploadProductImage accepts a multipart image from the product form's
// uploader and answers with the stored public URL as JSON.
func (h *AdminHandler) UploadProductImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(services.MaxUploadSize + 1024); err != nil {
		_ = h.render.JSON(w, http.StatusBadRequest, uploadResponse{Error: "Dosya okunamadı."})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		_ = h.render.JSON(w, http.StatusBadRequest, uploadResponse{Error: "Dosya bulunamadı."})
		return
	}
	defer file.Close()

	url, err := h.storageSvc.Upload(header.Filename, file, header.Size)
	if err != nil {
		if errors.Is(err, services.ErrFileTooLarge) || errors.Is(err, services.ErrNotAnImage) {
			_ = h.render.JSON(w, http.StatusBadRequest, uploadResponse{Error: err.Error()})
			return
		}
		log.Printf("UploadProductImage: upload failed: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, uploadResponse{Error: "Görsel yüklenemedi."})
		return
	}

	_ = h.render.JSON(w, http.StatusOK, uploadResponse{URL: url})
}

// DeleteProductImage removes a stored file. Failures surface in the JSON
// body but never block catalog edits.
func (h *AdminHandler) DeleteProductImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		_ = h.render.JSON(w, http.StatusBadRequest, uploadResponse{Error: "İstek okunamadı."})
		return
	}

	path := r.PostFormValue("path")
	if path == "" {
		_ = h.render.JSON(w, http.StatusBadRequest, uploadResponse{Error: "Dosya yolu eksik."})
		return
	}

	if err := h.storageSvc.Delete(path); err != nil {
		log.Printf("DeleteProductImage: failed to delete %s: %v", path, err)
		_ = h.render.JSON(w, http.StatusInternalServerError, uploadResponse{Error: err.Error()})
		return
	}

	_ = h.render.JSON(w, http.StatusOK, uploadResponse{})
}
