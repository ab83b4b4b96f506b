package admin

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"cosmetick/internal/api/respond"
	"cosmetick/internal/domain"
	apperror "cosmetick/internal/errors"
	"cosmetick/internal/pkg/logger"
)

// Limite do corpo multipart dos formulários administrativos.
const maxUploadBytes = 25 << 20 // 25 MB

// Número máximo de imagens por produto.
const maxImages = 10

// ProductAdminService define as escritas de produto consumidas pelo painel.
type ProductAdminService interface {
	CreateProduct(ctx context.Context, in domain.ProductInput, images [][]byte) (int, error)
	UpdateProduct(ctx context.Context, id int, in domain.ProductInput, images [][]byte) error
	DeleteProduct(ctx context.Context, id int) error
}

// CatalogAdminService define as escritas do catálogo de apoio.
type CatalogAdminService interface {
	CreateBrand(ctx context.Context, name string) (domain.Brand, error)
	DeleteBrand(ctx context.Context, id int) error
	CreateStore(ctx context.Context, in domain.StoreInput, logo []byte) (domain.Store, error)
	DeleteStore(ctx context.Context, id int) error
	CreateStoreLocation(ctx context.Context, in domain.StoreLocationInput) (int, error)
	DeleteStoreLocation(ctx context.Context, id int) error
}

// Handler atende o painel administrativo. Todas as rotas pressupõem os
// middlewares de autenticação e de administrador.
type Handler struct {
	Products ProductAdminService
	Catalog  CatalogAdminService
	logger   logger.Logger
}

// NewHandler cria e retorna uma nova instância do Handler.
func NewHandler(products ProductAdminService, catalog CatalogAdminService, log logger.Logger) *Handler {
	return &Handler{Products: products, Catalog: catalog, logger: log}
}

// CreateProduct atende POST /admin/products (multipart/form-data).
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	in, images, err := parseProductForm(r)
	if err != nil {
		respond.Error(w, err)
		return
	}

	id, err := h.Products.CreateProduct(r.Context(), in, images)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, map[string]int{"id": id})
}

// UpdateProduct atende PUT /admin/products/{productId} (multipart/form-data).
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("productId"))
	if err != nil {
		respond.Error(w, apperror.NewValidationError("productId deve ser numérico."))
		return
	}

	in, images, err := parseProductForm(r)
	if err != nil {
		respond.Error(w, err)
		return
	}

	if err := h.Products.UpdateProduct(r.Context(), id, in, images); err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// DeleteProduct atende DELETE /admin/products/{productId}.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("productId"))
	if err != nil {
		respond.Error(w, apperror.NewValidationError("productId deve ser numérico."))
		return
	}

	if err := h.Products.DeleteProduct(r.Context(), id); err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// brandPayload é o corpo do POST /admin/brands.
type brandPayload struct {
	Name string `json:"name"`
}

// CreateBrand atende POST /admin/brands.
func (h *Handler) CreateBrand(w http.ResponseWriter, r *http.Request) {
	var in brandPayload
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.Error(w, apperror.NewValidationError("Corpo da requisição malformado."))
		return
	}

	brand, err := h.Catalog.CreateBrand(r.Context(), in.Name)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, brand)
}

// DeleteBrand atende DELETE /admin/brands/{brandId}.
func (h *Handler) DeleteBrand(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("brandId"))
	if err != nil {
		respond.Error(w, apperror.NewValidationError("brandId deve ser numérico."))
		return
	}

	if err := h.Catalog.DeleteBrand(r.Context(), id); err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// CreateStore atende POST /admin/stores (multipart/form-data: campos + logo).
func (h *Handler) CreateStore(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respond.Error(w, apperror.NewValidationError("Formulário multipart malformado ou grande demais."))
		return
	}

	in := domain.StoreInput{Name: r.FormValue("name")}
	if raw := r.FormValue("years_with_us"); raw != "" {
		years, err := strconv.Atoi(raw)
		if err != nil {
			respond.Error(w, apperror.NewValidationError("years_with_us deve ser numérico."))
			return
		}
		in.YearsWithUs = &years
	}
	if raw := r.FormValue("link"); raw != "" {
		in.Link = &raw
	}

	var logo []byte
	if file, _, err := r.FormFile("logo"); err == nil {
		defer file.Close()
		logo, err = io.ReadAll(file)
		if err != nil {
			respond.Error(w, apperror.NewInternalError("falha ao ler logo", err))
			return
		}
	}

	store, err := h.Catalog.CreateStore(r.Context(), in, logo)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, store)
}

// DeleteStore atende DELETE /admin/stores/{storeId}.
func (h *Handler) DeleteStore(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("storeId"))
	if err != nil {
		respond.Error(w, apperror.NewValidationError("storeId deve ser numérico."))
		return
	}

	if err := h.Catalog.DeleteStore(r.Context(), id); err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// CreateStoreLocation atende POST /admin/store-locations.
func (h *Handler) CreateStoreLocation(w http.ResponseWriter, r *http.Request) {
	var in domain.StoreLocationInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.Error(w, apperror.NewValidationError("Corpo da requisição malformado."))
		return
	}

	id, err := h.Catalog.CreateStoreLocation(r.Context(), in)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, map[string]int{"id": id})
}

// DeleteStoreLocation atende DELETE /admin/store-locations/{locationId}.
func (h *Handler) DeleteStoreLocation(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("locationId"))
	if err != nil {
		respond.Error(w, apperror.NewValidationError("locationId deve ser numérico."))
		return
	}

	if err := h.Catalog.DeleteStoreLocation(r.Context(), id); err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// parseProductForm extrai o payload de produto do formulário multipart:
// campos planos, blocos JSON (features, store_prices, existing_images) e
// arquivos de imagem.
func parseProductForm(r *http.Request) (domain.ProductInput, [][]byte, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return domain.ProductInput{}, nil, apperror.NewValidationError("Formulário multipart malformado ou grande demais.")
	}

	var in domain.ProductInput

	categoryID, err := strconv.Atoi(r.FormValue("category_id"))
	if err != nil {
		return domain.ProductInput{}, nil, apperror.NewValidationError("category_id deve ser numérico.")
	}
	brandID, err := strconv.Atoi(r.FormValue("brand_id"))
	if err != nil {
		return domain.ProductInput{}, nil, apperror.NewValidationError("brand_id deve ser numérico.")
	}
	in.CategoryID = categoryID
	in.BrandID = brandID
	in.Name = r.FormValue("name")
	in.Volume = optionalField(r, "volume")
	in.Code = optionalField(r, "code")
	in.Description = optionalField(r, "description")
	in.Composition = optionalField(r, "composition")
	in.Usage = optionalField(r, "usage")
	in.DescriptionFull = optionalField(r, "description_full")

	if raw := r.FormValue("features"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &in.Features); err != nil {
			return domain.ProductInput{}, nil, apperror.NewValidationError("features deve ser JSON válido.")
		}
		in.HasFeatures = true
	}

	if raw := r.FormValue("store_prices"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &in.StorePrices); err != nil {
			return domain.ProductInput{}, nil, apperror.NewValidationError("store_prices deve ser JSON válido.")
		}
	}

	if raw := r.FormValue("existing_images"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &in.ExistingImages); err != nil {
			return domain.ProductInput{}, nil, apperror.NewValidationError("existing_images deve ser JSON válido.")
		}
	}

	images := make([][]byte, 0)
	if r.MultipartForm != nil {
		files := r.MultipartForm.File["images"]
		if len(files) > maxImages {
			return domain.ProductInput{}, nil, apperror.NewValidationError("No máximo 10 imagens por produto.")
		}
		for _, header := range files {
			file, err := header.Open()
			if err != nil {
				return domain.ProductInput{}, nil, apperror.NewInternalError("falha ao abrir imagem enviada", err)
			}
			data, err := io.ReadAll(file)
			file.Close()
			if err != nil {
				return domain.ProductInput{}, nil, apperror.NewInternalError("falha ao ler imagem enviada", err)
			}
			images = append(images, data)
		}
	}

	if strings.TrimSpace(in.Name) == "" {
		return domain.ProductInput{}, nil, apperror.NewValidationError("O nome do produto é obrigatório.")
	}

	return in, images, nil
}

func optionalField(r *http.Request, name string) *string {
	if v := r.FormValue(name); v != "" {
		return &v
	}
	return nil
}
