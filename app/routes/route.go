package routes

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"github.com/pompadepo/pompa-market/app/configs"
	"github.com/pompadepo/pompa-market/app/handlers"
	"github.com/pompadepo/pompa-market/app/handlers/admin"
	"github.com/pompadepo/pompa-market/app/middlewares"
	"github.com/pompadepo/pompa-market/app/repositories"
	"github.com/pompadepo/pompa-market/app/services"
	"github.com/pompadepo/pompa-market/app/utils/cache"
	"github.com/pompadepo/pompa-market/app/utils/renderer"
	"github.com/pompadepo/pompa-market/app/utils/sessions"
	"gorm.io/gorm"
)

// NewRouter wires repositories, services and handlers onto the mux router.
// The returned handler already carries the method-override and CSRF layers,
// so main can serve it directly.
func NewRouter(db *gorm.DB) (http.Handler, error) {
	keys, err := configs.LoadSessionKeysFromEnv()
	if err != nil {
		return nil, err
	}

	render := renderer.New()
	validate := validator.New()
	sessionStore := sessions.NewCookieSessionStore(keys.AuthKey, keys.EncKey)
	pageCache := cache.NewPathCache(5 * time.Minute)

	productRepo := repositories.NewProductRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	collectionRepo := repositories.NewCollectionRepository(db)
	userRepo := repositories.NewUserRepository(db)

	catalogSvc := services.NewCatalogService(db, productRepo, categoryRepo, collectionRepo, pageCache)
	storageSvc := services.NewLocalStorageService(configs.LoadENV.UploadDir, configs.LoadENV.UploadURL)

	homeHandler := handlers.NewHomeHandler(render, catalogSvc, productRepo, collectionRepo)
	productHandler := handlers.NewProductHandler(render, catalogSvc, productRepo)
	authHandler := handlers.NewAuthHandler(render, userRepo, sessionStore)
	adminHandler := admin.NewAdminHandler(render, validate, catalogSvc, storageSvc, productRepo, categoryRepo, collectionRepo)

	router := mux.NewRouter()
	router.Use(middlewares.LoggingMiddleware)
	router.Use(middlewares.UserContextMiddleware(sessionStore, userRepo))

	router.HandleFunc("/", homeHandler.Home).Methods("GET")
	router.HandleFunc("/urunler", productHandler.ListProducts).Methods("GET")
	router.HandleFunc("/urun/{slug}", productHandler.ProductDetail).Methods("GET")

	router.HandleFunc("/login", authHandler.LoginPage).Methods("GET")
	router.HandleFunc("/login", authHandler.LoginPost).Methods("POST")
	router.HandleFunc("/logout", authHandler.Logout).Methods("GET", "POST")

	uploads := http.StripPrefix(configs.LoadENV.UploadURL+"/", http.FileServer(http.Dir(configs.LoadENV.UploadDir)))
	router.PathPrefix(configs.LoadENV.UploadURL + "/").Handler(uploads).Methods("GET")

	static := http.StripPrefix("/static/", http.FileServer(http.Dir("static")))
	router.PathPrefix("/static/").Handler(static).Methods("GET")

	adminRouter := router.PathPrefix("/admin").Subrouter()
	adminRouter.Use(middlewares.AdminAuthMiddleware)

	adminRouter.HandleFunc("/dashboard", adminHandler.GetDashboardPage).Methods("GET")

	adminRouter.HandleFunc("/products", adminHandler.GetProductsPage).Methods("GET")
	adminRouter.HandleFunc("/products/add", adminHandler.AddProductPage).Methods("GET")
	adminRouter.HandleFunc("/products/add", adminHandler.AddProductPost).Methods("POST")
	adminRouter.HandleFunc("/products/upload", adminHandler.UploadProductImage).Methods("POST")
	adminRouter.HandleFunc("/products/upload/delete", adminHandler.DeleteProductImage).Methods("POST")
	adminRouter.HandleFunc("/products/{id}/edit", adminHandler.EditProductPage).Methods("GET")
	adminRouter.HandleFunc("/products/{id}/edit", adminHandler.EditProductPost).Methods("POST")
	adminRouter.HandleFunc("/products/{id}/delete", adminHandler.DeleteProduct).Methods("POST")
	adminRouter.HandleFunc("/products/{id}/toggle", adminHandler.ToggleProductActive).Methods("POST")

	adminRouter.HandleFunc("/categories", adminHandler.GetCategoriesPage).Methods("GET")
	adminRouter.HandleFunc("/categories/add", adminHandler.AddCategoryPage).Methods("GET")
	adminRouter.HandleFunc("/categories/add", adminHandler.AddCategoryPost).Methods("POST")
	adminRouter.HandleFunc("/categories/{id}/edit", adminHandler.EditCategoryPage).Methods("GET")
	adminRouter.HandleFunc("/categories/{id}/edit", adminHandler.EditCategoryPost).Methods("POST")
	adminRouter.HandleFunc("/categories/{id}/delete", adminHandler.DeleteCategory).Methods("POST")
	adminRouter.HandleFunc("/categories/{id}/toggle", adminHandler.ToggleCategoryActive).Methods("POST")

	adminRouter.HandleFunc("/collections", adminHandler.GetCollectionsPage).Methods("GET")
	adminRouter.HandleFunc("/collections/add", adminHandler.AddCollectionPage).Methods("GET")
	adminRouter.HandleFunc("/collections/add", adminHandler.AddCollectionPost).Methods("POST")
	adminRouter.HandleFunc("/collections/{id}/edit", adminHandler.EditCollectionPage).Methods("GET")
	adminRouter.HandleFunc("/collections/{id}/edit", adminHandler.EditCollectionPost).Methods("POST")
	adminRouter.HandleFunc("/collections/{id}/delete", adminHandler.DeleteCollection).Methods("POST")
	adminRouter.HandleFunc("/collections/{id}/toggle", adminHandler.ToggleCollectionActive).Methods("POST")

	csrfMiddleware := csrf.Protect(
		keys.AuthKey,
		csrf.Secure(configs.LoadENV.AppEnv == "production"),
		csrf.Path("/"),
	)

	// Method override runs outside mux so rewritten verbs take part in
	// route matching.
	return middlewares.MethodOverrideMiddleware(csrfMiddleware(router)), nil
}
