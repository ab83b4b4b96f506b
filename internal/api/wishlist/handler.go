package wishlist

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"cosmetick/internal/api/respond"
	"cosmetick/internal/domain"
	apperror "cosmetick/internal/errors"
	"cosmetick/internal/pkg/logger"
	"cosmetick/internal/pkg/middleware"
)

// WishlistService define o contrato do serviço consumido por este handler.
type WishlistService interface {
	ListSaved(ctx context.Context, userID int) ([]domain.SavedProduct, error)
	IsSaved(ctx context.Context, userID, productID int) (bool, error)
	Save(ctx context.Context, userID, productID int, savedCategoryID *int) error
	SaveBatch(ctx context.Context, userID int, productIDs []int) error
	Remove(ctx context.Context, userID, productID int) error
	AssignCategory(ctx context.Context, userID, productID int, savedCategoryID *int) error

	ListCategories(ctx context.Context, userID int) ([]domain.SavedCategory, error)
	CreateCategory(ctx context.Context, userID int, name string) (domain.SavedCategory, error)
	RenameCategory(ctx context.Context, userID, categoryID int, name string) error
	DeleteCategory(ctx context.Context, userID, categoryID int) error
}

// Handler atende a lista de desejos do usuário autenticado. Todas as rotas
// pressupõem o middleware de autenticação: as claims vêm do contexto.
type Handler struct {
	Service WishlistService
	logger  logger.Logger
}

// NewHandler cria e retorna uma nova instância do Handler.
func NewHandler(service WishlistService, log logger.Logger) *Handler {
	return &Handler{Service: service, logger: log}
}

func userID(w http.ResponseWriter, r *http.Request) (int, bool) {
	claims, ok := middleware.GetUserClaimsFromContext(r.Context())
	if !ok {
		respond.Error(w, apperror.NewUnauthorizedError("Autorização necessária."))
		return 0, false
	}
	return claims.UserID, true
}

// ListSaved atende GET /saved-products.
func (h *Handler) ListSaved(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	saved, err := h.Service.ListSaved(r.Context(), uid)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, saved)
}

// IsSaved atende GET /saved-products/{productId}: informa se o produto está
// na lista do usuário.
func (h *Handler) IsSaved(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	productID, err := strconv.Atoi(r.PathValue("productId"))
	if err != nil {
		respond.Error(w, apperror.NewValidationError("productId deve ser numérico."))
		return
	}

	saved, err := h.Service.IsSaved(r.Context(), uid, productID)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]bool{"saved": saved})
}

// savePayload é o corpo do POST /saved-products.
type savePayload struct {
	ProductID       int  `json:"product_id"`
	SavedCategoryID *int `json:"saved_category_id"`
}

// Save atende POST /saved-products.
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	var in savePayload
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.Error(w, apperror.NewValidationError("Corpo da requisição malformado."))
		return
	}

	if err := h.Service.Save(r.Context(), uid, in.ProductID, in.SavedCategoryID); err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, map[string]string{"status": "saved"})
}

// batchPayload é o corpo do POST /saved-products/bulk.
type batchPayload struct {
	ProductIDs []int `json:"product_ids"`
}

// SaveBatch atende POST /saved-products/bulk: sincroniza a lista local do
// frontend após o login.
func (h *Handler) SaveBatch(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	var in batchPayload
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.Error(w, apperror.NewValidationError("Corpo da requisição malformado."))
		return
	}

	if err := h.Service.SaveBatch(r.Context(), uid, in.ProductIDs); err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, map[string]string{"status": "saved"})
}

// Remove atende DELETE /saved-products/{productId}.
func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	productID, err := strconv.Atoi(r.PathValue("productId"))
	if err != nil {
		respond.Error(w, apperror.NewValidationError("productId deve ser numérico."))
		return
	}

	if err := h.Service.Remove(r.Context(), uid, productID); err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

// assignPayload é o corpo do PUT /saved-products/{productId}/category.
type assignPayload struct {
	SavedCategoryID *int `json:"saved_category_id"`
}

// AssignCategory atende PUT /saved-products/{productId}/category.
func (h *Handler) AssignCategory(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	productID, err := strconv.Atoi(r.PathValue("productId"))
	if err != nil {
		respond.Error(w, apperror.NewValidationError("productId deve ser numérico."))
		return
	}

	var in assignPayload
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.Error(w, apperror.NewValidationError("Corpo da requisição malformado."))
		return
	}

	if err := h.Service.AssignCategory(r.Context(), uid, productID, in.SavedCategoryID); err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// ListCategories atende GET /categories.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	categories, err := h.Service.ListCategories(r.Context(), uid)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, categories)
}

// categoryPayload é o corpo de criação/renomeação de categoria pessoal.
type categoryPayload struct {
	Name string `json:"name"`
}

// CreateCategory atende POST /categories.
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	var in categoryPayload
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.Error(w, apperror.NewValidationError("Corpo da requisição malformado."))
		return
	}

	category, err := h.Service.CreateCategory(r.Context(), uid, in.Name)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, category)
}

// RenameCategory atende PUT /categories/{categoryId}.
func (h *Handler) RenameCategory(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	categoryID, err := strconv.Atoi(r.PathValue("categoryId"))
	if err != nil {
		respond.Error(w, apperror.NewValidationError("categoryId deve ser numérico."))
		return
	}

	var in categoryPayload
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.Error(w, apperror.NewValidationError("Corpo da requisição malformado."))
		return
	}

	if err := h.Service.RenameCategory(r.Context(), uid, categoryID, in.Name); err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"status": "renamed"})
}

// DeleteCategory atende DELETE /categories/{categoryId}.
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	categoryID, err := strconv.Atoi(r.PathValue("categoryId"))
	if err != nil {
		respond.Error(w, apperror.NewValidationError("categoryId deve ser numérico."))
		return
	}

	if err := h.Service.DeleteCategory(r.Context(), uid, categoryID); err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
