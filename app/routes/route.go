package routes

import (
	"net/http"
	"strings"

	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"github.com/gsk-limited/storefront/app/configs"
	"github.com/gsk-limited/storefront/app/handlers"
	"github.com/gsk-limited/storefront/app/handlers/admin"
	"github.com/gsk-limited/storefront/app/middlewares"
	"github.com/gsk-limited/storefront/app/repositories"
	"github.com/gsk-limited/storefront/app/services"
	"github.com/gsk-limited/storefront/app/storage"
	"github.com/gsk-limited/storefront/app/utils/format"
	"github.com/gsk-limited/storefront/app/utils/renderer"
	"github.com/gsk-limited/storefront/app/utils/respond"
	"github.com/gsk-limited/storefront/app/utils/sessions"
	"github.com/unrolled/render"
	"gorm.io/gorm"
)

type Dependencies struct {
	Env          configs.ENV
	DB           *gorm.DB
	Keys         *configs.SessionKeys
	Store        storage.ObjectStore
	TemplatesDir string
}

func NewRouter(deps Dependencies) http.Handler {
	rdr := renderer.New(deps.TemplatesDir, !deps.Env.IsProduction())
	sessionStore := sessions.NewCookieSessionStore(deps.Env.IsProduction(), deps.Keys.AuthKey, deps.Keys.EncKey)

	productRepo := repositories.NewProductRepository(deps.DB)
	categoryRepo := repositories.NewCategoryRepository(deps.DB)
	partnerRepo := repositories.NewPartnerRepository(deps.DB)
	userRepo := repositories.NewUserRepository(deps.DB)
	orphanRepo := repositories.NewOrphanRepository(deps.DB)

	images := storage.NewImageUploader(deps.Store)
	productSvc := services.NewProductService(productRepo, categoryRepo, orphanRepo, images, format.NewPriceFormatter(deps.Env.CurrencySymbol))
	categorySvc := services.NewCategoryService(categoryRepo, orphanRepo, images)
	partnerSvc := services.NewPartnerService(partnerRepo, orphanRepo, images)
	authSvc := services.NewAuthService(userRepo, services.BcryptHasher{})

	productHandler := handlers.NewProductHandler(productSvc, rdr)
	homeHandler := handlers.NewHomeHandler(rdr, categorySvc, partnerSvc, deps.DB)
	authHandler := handlers.NewAuthHandler(rdr, authSvc, sessionStore)
	adminHandler := admin.NewAdminHandler(rdr, productSvc, categorySvc, partnerSvc, authSvc)

	router := mux.NewRouter()
	router.Use(middlewares.Authorize(middlewares.DefaultAccessRules(), sessionStore, userRepo))
	router.Use(middlewares.LoadUser(sessionStore, userRepo))
	if deps.Keys.CSRFKey != nil {
		router.Use(csrf.Protect(deps.Keys.CSRFKey,
			csrf.Secure(deps.Env.IsProduction()),
			csrf.Path("/"),
			csrf.ErrorHandler(csrfFailure(rdr)),
		))
	}

	router.HandleFunc("/healthz", homeHandler.Healthz).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/products", productHandler.Products).Methods("GET")
	api.HandleFunc("/products/{id}", productHandler.ProductDetail).Methods("GET")
	api.HandleFunc("/categories", homeHandler.Categories).Methods("GET")
	api.HandleFunc("/categories/{id}", homeHandler.Category).Methods("GET")
	api.HandleFunc("/partners", homeHandler.Partners).Methods("GET")

	api.HandleFunc("/auth/signup", authHandler.SignUp).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	api.HandleFunc("/auth/logout", authHandler.Logout).Methods("POST")
	api.HandleFunc("/auth/me", authHandler.Me).Methods("GET")
	api.HandleFunc("/auth/csrf", authHandler.CSRFToken).Methods("GET")

	adminAPI := api.PathPrefix("/admin").Subrouter()
	adminAPI.HandleFunc("/stats", adminHandler.Stats).Methods("GET")
	adminAPI.HandleFunc("/products", adminHandler.ListProducts).Methods("GET")
	adminAPI.HandleFunc("/products", adminHandler.CreateProduct).Methods("POST")
	adminAPI.HandleFunc("/products/{id}", adminHandler.GetProduct).Methods("GET")
	adminAPI.HandleFunc("/products/{id}", adminHandler.UpdateProduct).Methods("PUT")
	adminAPI.HandleFunc("/products/{id}", adminHandler.DeleteProduct).Methods("DELETE")
	adminAPI.HandleFunc("/categories", adminHandler.ListCategories).Methods("GET")
	adminAPI.HandleFunc("/categories", adminHandler.CreateCategory).Methods("POST")
	adminAPI.HandleFunc("/categories/{id}", adminHandler.GetCategory).Methods("GET")
	adminAPI.HandleFunc("/categories/{id}", adminHandler.UpdateCategory).Methods("PUT")
	adminAPI.HandleFunc("/categories/{id}", adminHandler.DeleteCategory).Methods("DELETE")
	adminAPI.HandleFunc("/partners", adminHandler.ListPartners).Methods("GET")
	adminAPI.HandleFunc("/partners", adminHandler.CreatePartner).Methods("POST")
	adminAPI.HandleFunc("/partners/{id}", adminHandler.GetPartner).Methods("GET")
	adminAPI.HandleFunc("/partners/{id}", adminHandler.UpdatePartner).Methods("PUT")
	adminAPI.HandleFunc("/partners/{id}", adminHandler.DeletePartner).Methods("DELETE")
	adminAPI.HandleFunc("/users", adminHandler.ListUsers).Methods("GET")
	adminAPI.HandleFunc("/users/{id}/role", adminHandler.SetUserRole).Methods("PUT")

	router.HandleFunc("/login", authHandler.LoginPage).Methods("GET")
	router.HandleFunc("/login", authHandler.LoginForm).Methods("POST")
	router.HandleFunc("/admin", adminHandler.Dashboard).Methods("GET")

	if disk, ok := deps.Store.(*storage.DiskStore); ok {
		prefix := strings.TrimRight(deps.Env.StoragePublicURL, "/") + "/"
		if strings.HasPrefix(prefix, "/") {
			router.PathPrefix(prefix).Handler(http.StripPrefix(prefix, http.FileServer(http.Dir(disk.Root())))).Methods("GET", "HEAD")
		}
	}

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond.Message(rdr, w, http.StatusNotFound, "Not Found")
	})

	return middlewares.Recover(middlewares.RequestLogger(middlewares.MethodOverrideMiddleware(router)))
}

func csrfFailure(rdr *render.Render) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		msg := "Invalid CSRF token"
		if reason := csrf.FailureReason(r); reason != nil {
			msg += ": " + reason.Error()
		}
		respond.Message(rdr, w, http.StatusForbidden, msg)
	})
}
