package router

import (
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	"cosmetick/internal/api/admin"
	"cosmetick/internal/api/catalog"
	"cosmetick/internal/api/product"
	"cosmetick/internal/api/respond"
	"cosmetick/internal/api/user"
	"cosmetick/internal/api/wishlist"
	"cosmetick/internal/pkg/cache"
	"cosmetick/internal/pkg/logger"
	"cosmetick/internal/pkg/middleware"
)

// Deps agrupa tudo que o roteador precisa para montar a árvore de rotas.
type Deps struct {
	Products  *product.Handler
	Users     *user.Handler
	Catalog   *catalog.Handler
	Wishlist  *wishlist.Handler
	Admin     *admin.Handler
	TokenSvc  middleware.TokenService
	Cache     cache.Client
	Logger    logger.Logger
	RateLimit int
	RatePer   time.Duration
}

// New monta o roteador da API com a cadeia global de middlewares:
// CORS -> rate limit -> log de requisição -> mux.
func New(d Deps) http.Handler {
	mux := http.NewServeMux()
	auth := middleware.NewAuthMiddleware(d.TokenSvc)

	// Saúde
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Autenticação e perfil
	mux.HandleFunc("POST /register", d.Users.Register)
	mux.HandleFunc("POST /login", d.Users.Login)
	mux.HandleFunc("GET /profile", auth(d.Users.Profile))
	mux.HandleFunc("POST /update-user", auth(d.Users.UpdateProfile))

	// Catálogo público
	mux.HandleFunc("GET /products", d.Products.List)
	mux.HandleFunc("GET /products/{productId}", d.Products.GetByID)
	mux.HandleFunc("GET /brands", d.Catalog.ListBrands)
	mux.HandleFunc("GET /brands/{brandId}", auth(d.Catalog.GetBrand))
	mux.HandleFunc("GET /stores", d.Catalog.ListStores)
	mux.HandleFunc("GET /stores/{storeId}", auth(d.Catalog.GetStore))
	mux.HandleFunc("GET /categories/public", d.Catalog.ListCategories)
	mux.HandleFunc("GET /cities", d.Catalog.ListCities)
	mux.HandleFunc("GET /store-locations", d.Catalog.ListStoreLocations)
	mux.HandleFunc("GET /store-locations/{locationId}", d.Catalog.GetStoreLocation)
	mux.HandleFunc("GET /filter-options", d.Catalog.FilterOptions)

	// Lista de desejos (autenticada)
	mux.HandleFunc("GET /saved-products", auth(d.Wishlist.ListSaved))
	mux.HandleFunc("POST /saved-products", auth(d.Wishlist.Save))
	mux.HandleFunc("POST /saved-products/bulk", auth(d.Wishlist.SaveBatch))
	mux.HandleFunc("GET /saved-products/{productId}", auth(d.Wishlist.IsSaved))
	mux.HandleFunc("DELETE /saved-products/{productId}", auth(d.Wishlist.Remove))
	mux.HandleFunc("PUT /saved-products/{productId}/category", auth(d.Wishlist.AssignCategory))

	// Categorias pessoais da lista de desejos (autenticadas)
	mux.HandleFunc("GET /categories", auth(d.Wishlist.ListCategories))
	mux.HandleFunc("POST /categories", auth(d.Wishlist.CreateCategory))
	mux.HandleFunc("PUT /categories/{categoryId}", auth(d.Wishlist.RenameCategory))
	mux.HandleFunc("DELETE /categories/{categoryId}", auth(d.Wishlist.DeleteCategory))

	// Painel administrativo (autenticado + admin)
	adminOnly := func(h http.HandlerFunc) http.HandlerFunc {
		return auth(middleware.AdminOnly(h))
	}
	mux.HandleFunc("POST /admin/products", adminOnly(d.Admin.CreateProduct))
	mux.HandleFunc("PUT /admin/products/{productId}", adminOnly(d.Admin.UpdateProduct))
	mux.HandleFunc("DELETE /admin/products/{productId}", adminOnly(d.Admin.DeleteProduct))
	mux.HandleFunc("POST /admin/brands", adminOnly(d.Admin.CreateBrand))
	mux.HandleFunc("DELETE /admin/brands/{brandId}", adminOnly(d.Admin.DeleteBrand))
	mux.HandleFunc("POST /admin/stores", adminOnly(d.Admin.CreateStore))
	mux.HandleFunc("DELETE /admin/stores/{storeId}", adminOnly(d.Admin.DeleteStore))
	mux.HandleFunc("POST /admin/store-locations", adminOnly(d.Admin.CreateStoreLocation))
	mux.HandleFunc("DELETE /admin/store-locations/{locationId}", adminOnly(d.Admin.DeleteStoreLocation))

	// Documentação interativa
	mux.HandleFunc("GET /swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "docs/swagger.json")
	})
	mux.Handle("GET /swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// Cadeia global de middlewares.
	var handler http.Handler = mux
	handler = middleware.RequestLogger(d.Logger)(handler)
	handler = middleware.RateLimiter(d.Cache, d.RateLimit, d.RatePer)(handler)
	handler = middleware.CORS(handler)

	return handler
}
