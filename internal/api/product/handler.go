package product

import (
	"context"
	"net/http"
	"strconv"

	"cosmetick/internal/api/respond"
	"cosmetick/internal/domain"
	apperror "cosmetick/internal/errors"
	"cosmetick/internal/pkg/logger"
)

// ProductService define o contrato do serviço consumido por este handler.
type ProductService interface {
	List(ctx context.Context, q domain.ProductListQuery) (domain.ProductListing, error)
	GetByID(ctx context.Context, id int) (domain.Product, error)
}

// Handler atende as rotas públicas de produtos.
type Handler struct {
	Service ProductService
	logger  logger.Logger
}

// NewHandler cria e retorna uma nova instância do Handler.
func NewHandler(service ProductService, log logger.Logger) *Handler {
	return &Handler{Service: service, logger: log}
}

// List atende GET /products: a listagem filtrada da vitrine. Os parâmetros
// seguem crus para o serviço, que valida tudo antes de tocar o banco.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	query := domain.ProductListQuery{
		Search:      params.Get("search"),
		Category:    params.Get("category"),
		Brands:      params.Get("brands"),
		PriceFrom:   params.Get("priceFrom"),
		PriceTo:     params.Get("priceTo"),
		PriceRanges: params.Get("priceRanges"),
		Volumes:     params.Get("volumes"),
		Types:       params.Get("types"),
		Random:      params.Get("random"),
		HasRating:   params.Get("hasRating"),
		Page:        params.Get("page"),
		Limit:       params.Get("limit"),
	}

	listing, err := h.Service.List(r.Context(), query)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, listing)
}

// GetByID atende GET /products/{productId}: o detalhe de um produto.
// ID não numérico é erro do cliente, não 404.
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("productId"))
	if err != nil {
		respond.Error(w, apperror.NewValidationError("productId deve ser numérico."))
		return
	}

	product, err := h.Service.GetByID(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, product)
}
