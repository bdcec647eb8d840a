package admin

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pompadepo/pompa-market/app/helpers"
	"github.com/pompadepo/pompa-market/app/services"
	"github.com/pompadepo/pompa-market/app/utils/breadcrumb"
	"github.com/pompadepo/pompa-market/app/utils/catalogtree"
)

func (h *AdminHandler) GetCategoriesPage(w http.ResponseWriter, r *http.Request) {
	data := map[string]interface{}{
		"Title": "Kategori Yönetimi",
		"Breadcrumbs": []breadcrumb.Breadcrumb{
			{Name: "Anasayfa", URL: "/"},
			{Name: "Yönetim", URL: "/admin/dashboard"},
			{Name: "Kategoriler", URL: "/admin/categories"},
		},
	}

	tree, err := h.catalogSvc.CategoryTree(r.Context())
	if err != nil {
		log.Printf("GetCategoriesPage: failed to load categories: %v", err)
		data["Message"] = "Kategoriler yüklenemedi."
		data["MessageStatus"] = "error"
	} else {
		data["Categories"] = catalogtree.Flatten(tree)
	}

	if counts, err := h.productRepo.CountsPerCategory(r.Context()); err != nil {
		log.Printf("GetCategoriesPage: failed to load product counts: %v", err)
	} else {
		data["ProductCounts"] = counts
	}

	_ = h.render.HTML(w, http.StatusOK, "admin/categories/index", helpers.GetBaseData(r, data))
}

func (h *AdminHandler) AddCategoryPage(w http.ResponseWriter, r *http.Request) {
	parents, err := h.catalogSvc.EligibleParentCategories(r.Context(), "")
	if err != nil {
		log.Printf("AddCategoryPage: failed to load parent options: %v", err)
	}

	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title":        "Yeni Kategori",
		"FormAction":   "/admin/categories/add",
		"IsEdit":       false,
		"CategoryData": &CategoryForm{IsActive: true},
		"Parents":      parents,
		"Errors":       map[string]string{},
		"Breadcrumbs": []breadcrumb.Breadcrumb{
			{Name: "Anasayfa", URL: "/"},
			{Name: "Yönetim", URL: "/admin/dashboard"},
			{Name: "Kategoriler", URL: "/admin/categories"},
			{Name: "Yeni Kategori", URL: "/admin/categories/add"},
		},
	})

	_ = h.render.HTML(w, http.StatusOK, "admin/categories/form", data)
}

func (h *AdminHandler) parseCategoryForm(r *http.Request) CategoryForm {
	return CategoryForm{
		ID:          r.PostFormValue("id"),
		Name:        r.PostFormValue("name"),
		Slug:        r.PostFormValue("slug"),
		Description: r.PostFormValue("description"),
		ParentID:    r.PostFormValue("parent_id"),
		MainType:    r.PostFormValue("main_type"),
		ImageURL:    r.PostFormValue("image_url"),
		SortOrder:   r.PostFormValue("sort_order"),
		IsActive:    formBool(r, "is_active"),
	}
}

func (h *AdminHandler) categoryFormData(r *http.Request, form CategoryForm) services.CategoryFormData {
	return services.CategoryFormData{
		Name:        form.Name,
		Slug:        form.Slug,
		Description: form.Description,
		ParentID:    optionalString(form.ParentID),
		MainType:    optionalMainType(form.MainType),
		ImageURL:    form.ImageURL,
		SortOrder:   formInt(r, "sort_order"),
		IsActive:    form.IsActive,
	}
}

func (h *AdminHandler) AddCategoryPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectWithFlash(w, r, "/admin/categories/add", "error", "Form okunamadı.")
		return
	}

	form := h.parseCategoryForm(r)
	if err := h.validator.Struct(&form); err != nil {
		h.renderCategoryForm(w, r, "/admin/categories/add", false, &form, h.validationErrors(err))
		return
	}

	if _, err := h.catalogSvc.CreateCategory(r.Context(), h.categoryFormData(r, form)); err != nil {
		if errors.Is(err, services.ErrSlugTaken) {
			h.renderCategoryForm(w, r, "/admin/categories/add", false, &form, map[string]string{"slug": err.Error()})
			return
		}
		log.Printf("AddCategoryPost: failed to create category: %v", err)
		redirectWithFlash(w, r, "/admin/categories", "error", "Kategori eklenemedi: "+err.Error())
		return
	}

	redirectWithFlash(w, r, "/admin/categories", "success", "Kategori oluşturuldu.")
}

func (h *AdminHandler) EditCategoryPage(w http.ResponseWriter, r *http.Request) {
	categoryID := mux.Vars(r)["id"]

	category, err := h.categoryRepo.GetByID(r.Context(), categoryID)
	if err != nil || category == nil {
		log.Printf("EditCategoryPage: category %s not found: %v", categoryID, err)
		redirectWithFlash(w, r, "/admin/categories", "error", "Kategori bulunamadı.")
		return
	}

	form := &CategoryForm{
		ID:          category.ID,
		Name:        category.Name,
		Slug:        category.Slug,
		Description: category.Description,
		ImageURL:    category.ImageURL,
		SortOrder:   strconv.Itoa(category.SortOrder),
		IsActive:    category.IsActive,
	}
	if category.ParentID != nil {
		form.ParentID = *category.ParentID
	}
	if category.MainType != nil {
		form.MainType = string(*category.MainType)
	}

	h.renderCategoryForm(w, r, "/admin/categories/"+category.ID+"/edit", true, form, map[string]string{})
}

func (h *AdminHandler) EditCategoryPost(w http.ResponseWriter, r *http.Request) {
	categoryID := mux.Vars(r)["id"]
	formAction := "/admin/categories/" + categoryID + "/edit"

	if err := r.ParseForm(); err != nil {
		redirectWithFlash(w, r, formAction, "error", "Form okunamadı.")
		return
	}

	form := h.parseCategoryForm(r)
	form.ID = categoryID
	if err := h.validator.Struct(&form); err != nil {
		h.renderCategoryForm(w, r, formAction, true, &form, h.validationErrors(err))
		return
	}

	if err := h.catalogSvc.UpdateCategory(r.Context(), categoryID, h.categoryFormData(r, form)); err != nil {
		if errors.Is(err, services.ErrSlugTaken) {
			h.renderCategoryForm(w, r, formAction, true, &form, map[string]string{"slug": err.Error()})
			return
		}
		log.Printf("EditCategoryPost: failed to update category %s: %v", categoryID, err)
		redirectWithFlash(w, r, "/admin/categories", "error", "Kategori güncellenemedi: "+err.Error())
		return
	}

	redirectWithFlash(w, r, "/admin/categories", "success", "Kategori güncellendi.")
}

// renderCategoryForm re-renders the form with errors. The parent dropdown
// excludes the category being edited and its whole subtree.
func (h *AdminHandler) renderCategoryForm(w http.ResponseWriter, r *http.Request, formAction string, isEdit bool, form *CategoryForm, formErrors map[string]string) {
	parents, err := h.catalogSvc.EligibleParentCategories(r.Context(), form.ID)
	if err != nil {
		log.Printf("renderCategoryForm: failed to load parent options: %v", err)
	}

	title := "Yeni Kategori"
	if isEdit {
		title = "Kategori Düzenle"
	}

	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title":        title,
		"FormAction":   formAction,
		"IsEdit":       isEdit,
		"CategoryData": form,
		"Parents":      parents,
		"Errors":       formErrors,
		"Breadcrumbs": []breadcrumb.Breadcrumb{
			{Name: "Anasayfa", URL: "/"},
			{Name: "Yönetim", URL: "/admin/dashboard"},
			{Name: "Kategoriler", URL: "/admin/categories"},
			{Name: title, URL: formAction},
		},
	})

	_ = h.render.HTML(w, http.StatusOK, "admin/categories/form", data)
}

func (h *AdminHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := mux.Vars(r)["id"]

	if err := h.catalogSvc.DeleteCategory(r.Context(), categoryID); err != nil {
		if errors.Is(err, services.ErrCategoryHasChildren) || errors.Is(err, services.ErrCategoryHasProducts) {
			redirectWithFlash(w, r, "/admin/categories", "error", err.Error())
			return
		}
		log.Printf("DeleteCategory: failed to delete category %s: %v", categoryID, err)
		redirectWithFlash(w, r, "/admin/categories", "error", "Kategori silinemedi: "+err.Error())
		return
	}

	redirectWithFlash(w, r, "/admin/categories", "success", "Kategori silindi.")
}

func (h *AdminHandler) ToggleCategoryActive(w http.ResponseWriter, r *http.Request) {
	categoryID := mux.Vars(r)["id"]
	isActive := formBool(r, "is_active")

	if err := h.catalogSvc.ToggleCategoryActive(r.Context(), categoryID, isActive); err != nil {
		log.Printf("ToggleCategoryActive: failed for category %s: %v", categoryID, err)
		redirectWithFlash(w, r, "/admin/categories", "error", "Kategori durumu değiştirilemedi.")
		return
	}

	redirectWithFlash(w, r, "/admin/categories", "success", "Kategori durumu güncellendi.")
}
