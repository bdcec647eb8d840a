package admin

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pompadepo/pompa-market/app/helpers"
	"github.com/pompadepo/pompa-market/app/models"
	"github.com/pompadepo/pompa-market/app/services"
	"github.com/pompadepo/pompa-market/app/utils/breadcrumb"
)

func (h *AdminHandler) GetCollectionsPage(w http.ResponseWriter, r *http.Request) {
	data := map[string]interface{}{
		"Title": "Koleksiyon Yönetimi",
		"Breadcrumbs": []breadcrumb.Breadcrumb{
			{Name: "Anasayfa", URL: "/"},
			{Name: "Yönetim", URL: "/admin/dashboard"},
			{Name: "Koleksiyonlar", URL: "/admin/collections"},
		},
	}

	collections, err := h.collectionRepo.GetAll(r.Context())
	if err != nil {
		log.Printf("GetCollectionsPage: failed to load collections: %v", err)
		data["Message"] = "Koleksiyonlar yüklenemedi."
		data["MessageStatus"] = "error"
	} else {
		for i := range collections {
			count, err := h.collectionRepo.CountMembers(r.Context(), collections[i].ID)
			if err != nil {
				log.Printf("GetCollectionsPage: failed to count members of %s: %v", collections[i].ID, err)
				continue
			}
			collections[i].ProductCount = count
		}
		data["Collections"] = collections
	}

	_ = h.render.HTML(w, http.StatusOK, "admin/collections/index", helpers.GetBaseData(r, data))
}

func (h *AdminHandler) parseCollectionForm(r *http.Request) CollectionForm {
	return CollectionForm{
		ID:             r.PostFormValue("id"),
		Name:           r.PostFormValue("name"),
		Slug:           r.PostFormValue("slug"),
		Description:    r.PostFormValue("description"),
		CollectionType: r.PostFormValue("collection_type"),
		ImageURL:       r.PostFormValue("image_url"),
		SortOrder:      r.PostFormValue("sort_order"),
		IsActive:       formBool(r, "is_active"),
	}
}

func (h *AdminHandler) collectionFormData(r *http.Request, form CollectionForm) services.CollectionFormData {
	return services.CollectionFormData{
		Name:           form.Name,
		Slug:           form.Slug,
		Description:    form.Description,
		CollectionType: models.CollectionType(form.CollectionType),
		ImageURL:       form.ImageURL,
		SortOrder:      formInt(r, "sort_order"),
		IsActive:       form.IsActive,
	}
}

func (h *AdminHandler) renderCollectionForm(w http.ResponseWriter, r *http.Request, formAction string, isEdit bool, form *CollectionForm, formErrors map[string]string) {
	title := "Yeni Koleksiyon"
	if isEdit {
		title = "Koleksiyon Düzenle"
	}

	data := helpers.GetBaseData(r, map[string]interface{}{
		"Title":          title,
		"FormAction":     formAction,
		"IsEdit":         isEdit,
		"CollectionData": form,
		"Types":          models.CollectionTypeLabels,
		"Errors":         formErrors,
		"Breadcrumbs": []breadcrumb.Breadcrumb{
			{Name: "Anasayfa", URL: "/"},
			{Name: "Yönetim", URL: "/admin/dashboard"},
			{Name: "Koleksiyonlar", URL: "/admin/collections"},
			{Name: title, URL: formAction},
		},
	})

	_ = h.render.HTML(w, http.StatusOK, "admin/collections/form", data)
}

func (h *AdminHandler) AddCollectionPage(w http.ResponseWriter, r *http.Request) {
	form := &CollectionForm{CollectionType: string(models.CollectionTypeOzel), IsActive: true}
	h.renderCollectionForm(w, r, "/admin/collections/add", false, form, map[string]string{})
}

func (h *AdminHandler) AddCollectionPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectWithFlash(w, r, "/admin/collections/add", "error", "Form okunamadı.")
		return
	}

	form := h.parseCollectionForm(r)
	if err := h.validator.Struct(&form); err != nil {
		h.renderCollectionForm(w, r, "/admin/collections/add", false, &form, h.validationErrors(err))
		return
	}

	if _, err := h.catalogSvc.CreateCollection(r.Context(), h.collectionFormData(r, form)); err != nil {
		if errors.Is(err, services.ErrSlugTaken) {
			h.renderCollectionForm(w, r, "/admin/collections/add", false, &form, map[string]string{"slug": err.Error()})
			return
		}
		log.Printf("AddCollectionPost: failed to create collection: %v", err)
		redirectWithFlash(w, r, "/admin/collections", "error", "Koleksiyon eklenemedi: "+err.Error())
		return
	}

	redirectWithFlash(w, r, "/admin/collections", "success", "Koleksiyon oluşturuldu.")
}

func (h *AdminHandler) EditCollectionPage(w http.ResponseWriter, r *http.Request) {
	collectionID := mux.Vars(r)["id"]

	collection, err := h.collectionRepo.GetByID(r.Context(), collectionID)
	if err != nil || collection == nil {
		log.Printf("EditCollectionPage: collection %s not found: %v", collectionID, err)
		redirectWithFlash(w, r, "/admin/collections", "error", "Koleksiyon bulunamadı.")
		return
	}

	form := &CollectionForm{
		ID:             collection.ID,
		Name:           collection.Name,
		Slug:           collection.Slug,
		Description:    collection.Description,
		CollectionType: string(collection.CollectionType),
		ImageURL:       collection.ImageURL,
		SortOrder:      strconv.Itoa(collection.SortOrder),
		IsActive:       collection.IsActive,
	}

	h.renderCollectionForm(w, r, "/admin/collections/"+collection.ID+"/edit", true, form, map[string]string{})
}

func (h *AdminHandler) EditCollectionPost(w http.ResponseWriter, r *http.Request) {
	collectionID := mux.Vars(r)["id"]
	formAction := "/admin/collections/" + collectionID + "/edit"

	if err := r.ParseForm(); err != nil {
		redirectWithFlash(w, r, formAction, "error", "Form okunamadı.")
		return
	}

	form := h.parseCollectionForm(r)
	form.ID = collectionID
	if err := h.validator.Struct(&form); err != nil {
		h.renderCollectionForm(w, r, formAction, true, &form, h.validationErrors(err))
		return
	}

	if err := h.catalogSvc.UpdateCollection(r.Context(), collectionID, h.collectionFormData(r, form)); err != nil {
		if errors.Is(err, services.ErrSlugTaken) {
			h.renderCollectionForm(w, r, formAction, true, &form, map[string]string{"slug": err.Error()})
			return
		}
		log.Printf("EditCollectionPost: failed to update collection %s: %v", collectionID, err)
		redirectWithFlash(w, r, "/admin/collections", "error", "Koleksiyon güncellenemedi: "+err.Error())
		return
	}

	redirectWithFlash(w, r, "/admin/collections", "success", "Koleksiyon güncellendi.")
}

func (h *AdminHandler) DeleteCollection(w http.ResponseWriter, r *http.Request) {
	collectionID := mux.Vars(r)["id"]

	if err := h.catalogSvc.DeleteCollection(r.Context(), collectionID); err != nil {
		if errors.Is(err, services.ErrDefaultCollection) || errors.Is(err, services.ErrNotFound) {
			redirectWithFlash(w, r, "/admin/collections", "error", err.Error())
			return
		}
		log.Printf("DeleteCollection: failed to delete collection %s: %v", collectionID, err)
		redirectWithFlash(w, r, "/admin/collections", "error", "Koleksiyon silinemedi: "+err.Error())
		return
	}

	redirectWithFlash(w, r, "/admin/collections", "success", "Koleksiyon silindi.")
}

func (h *AdminHandler) ToggleCollectionActive(w http.ResponseWriter, r *http.Request) {
	collectionID := mux.Vars(r)["id"]
	isActive := formBool(r, "is_active")

	if err := h.catalogSvc.ToggleCollectionActive(r.Context(), collectionID, isActive); err != nil {
		log.Printf("ToggleCollectionActive: failed for collection %s: %v", collectionID, err)
		redirectWithFlash(w, r, "/admin/collections", "error", "Koleksiyon durumu değiştirilemedi.")
		return
	}

	redirectWithFlash(w, r, "/admin/collections", "success", "Koleksiyon durumu güncellendi.")
}
