package catalog

import (
	"context"
	"net/http"
	"strconv"

	"cosmetick/internal/api/respond"
	"cosmetick/internal/domain"
	apperror "cosmetick/internal/errors"
	"cosmetick/internal/pkg/logger"
)

// CatalogService define o contrato do serviço consumido por este handler.
type CatalogService interface {
	ListBrands(ctx context.Context) ([]domain.Brand, error)
	GetBrand(ctx context.Context, id int) (domain.Brand, error)
	ListStores(ctx context.Context, productID int) ([]domain.Store, error)
	GetStore(ctx context.Context, id int) (domain.Store, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	ListCities(ctx context.Context) ([]domain.City, error)
	ListStoreLocations(ctx context.Context, cityID, storeID int) ([]domain.StoreLocation, error)
	GetStoreLocation(ctx context.Context, id int) (domain.StoreLocation, error)
	FilterOptions(ctx context.Context, rawCategories string) (domain.FilterOptions, error)
}

// Handler atende as rotas do catálogo de apoio: marcas, lojas, categorias,
// cidades, localizações e opções de filtro.
type Handler struct {
	Service CatalogService
	logger  logger.Logger
}

// NewHandler cria e retorna uma nova instância do Handler.
func NewHandler(service CatalogService, log logger.Logger) *Handler {
	return &Handler{Service: service, logger: log}
}

// ListBrands atende GET /brands.
func (h *Handler) ListBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := h.Service.ListBrands(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, brands)
}

// GetBrand atende GET /brands/{brandId} (autenticado).
func (h *Handler) GetBrand(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("brandId"))
	if err != nil {
		respond.Error(w, apperror.NewValidationError("brandId deve ser numérico."))
		return
	}

	brand, err := h.Service.GetBrand(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, brand)
}

// ListStores atende GET /stores, com filtro opcional ?productId=.
func (h *Handler) ListStores(w http.ResponseWriter, r *http.Request) {
	productID := 0
	if raw := r.URL.Query().Get("productId"); raw != "" {
		var err error
		productID, err = strconv.Atoi(raw)
		if err != nil {
			respond.Error(w, apperror.NewValidationError("productId deve ser numérico."))
			return
		}
	}

	stores, err := h.Service.ListStores(r.Context(), productID)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, stores)
}

// GetStore atende GET /stores/{storeId} (autenticado).
func (h *Handler) GetStore(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("storeId"))
	if err != nil {
		respond.Error(w, apperror.NewValidationError("storeId deve ser numérico."))
		return
	}

	store, err := h.Service.GetStore(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, store)
}

// ListCategories atende GET /categories/public.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Service.ListCategories(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, categories)
}

// ListCities atende GET /cities.
func (h *Handler) ListCities(w http.ResponseWriter, r *http.Request) {
	cities, err := h.Service.ListCities(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, cities)
}

// ListStoreLocations atende GET /store-locations, com filtros opcionais
// ?cityId= e ?storeId=.
func (h *Handler) ListStoreLocations(w http.ResponseWriter, r *http.Request) {
	cityID, err := optionalIntParam(r, "cityId")
	if err != nil {
		respond.Error(w, err)
		return
	}
	storeID, err := optionalIntParam(r, "storeId")
	if err != nil {
		respond.Error(w, err)
		return
	}

	locations, err := h.Service.ListStoreLocations(r.Context(), cityID, storeID)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, locations)
}

// GetStoreLocation atende GET /store-locations/{locationId}.
func (h *Handler) GetStoreLocation(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("locationId"))
	if err != nil {
		respond.Error(w, apperror.NewValidationError("locationId deve ser numérico."))
		return
	}

	location, err := h.Service.GetStoreLocation(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, location)
}

// FilterOptions atende GET /filter-options, com escopo opcional ?category=.
func (h *Handler) FilterOptions(w http.ResponseWriter, r *http.Request) {
	options, err := h.Service.FilterOptions(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, options)
}

func optionalIntParam(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperror.NewValidationError(name + " deve ser numérico.")
	}
	return v, nil
}
