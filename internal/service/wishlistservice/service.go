package wishlistservice

import (
	"context"
	"strings"

	"cosmetick/internal/domain"
	apperror "cosmetick/internal/errors"
	"cosmetick/internal/pkg/logger"
)

// WishlistRepository define o contrato da camada de persistência da lista
// de desejos.
type WishlistRepository interface {
	FindSavedProducts(ctx context.Context, userID int) ([]domain.SavedProduct, error)
	IsSaved(ctx context.Context, userID, productID int) (bool, error)
	SaveProduct(ctx context.Context, userID, productID int, savedCategoryID *int) error
	SaveProducts(ctx context.Context, userID int, productIDs []int) error
	RemoveProduct(ctx context.Context, userID, productID int) error
	AssignCategory(ctx context.Context, userID, productID int, savedCategoryID *int) error

	FindCategories(ctx context.Context, userID int) ([]domain.SavedCategory, error)
	CreateCategory(ctx context.Context, userID int, name string) (domain.SavedCategory, error)
	RenameCategory(ctx context.Context, userID, categoryID int, name string) error
	DeleteCategory(ctx context.Context, userID, categoryID int) error
}

// WishlistService orquestra a lista de desejos do usuário autenticado.
type WishlistService struct {
	Repo   WishlistRepository
	logger logger.Logger
}

// NewWishlistService cria e retorna uma nova instância do Serviço.
func NewWishlistService(repo WishlistRepository, log logger.Logger) *WishlistService {
	return &WishlistService{Repo: repo, logger: log}
}

// ListSaved retorna os produtos salvos do usuário.
func (s *WishlistService) ListSaved(ctx context.Context, userID int) ([]domain.SavedProduct, error) {
	return s.Repo.FindSavedProducts(ctx, userID)
}

// IsSaved informa se um produto está na lista do usuário.
func (s *WishlistService) IsSaved(ctx context.Context, userID, productID int) (bool, error) {
	return s.Repo.IsSaved(ctx, userID, productID)
}

// Save adiciona um produto à lista (idempotente).
func (s *WishlistService) Save(ctx context.Context, userID, productID int, savedCategoryID *int) error {
	if productID <= 0 {
		return apperror.NewValidationError("product_id é obrigatório.")
	}
	return s.Repo.SaveProduct(ctx, userID, productID, savedCategoryID)
}

// SaveBatch sincroniza a lista local do frontend: adiciona vários produtos
// de uma vez, ignorando os que já estavam salvos.
func (s *WishlistService) SaveBatch(ctx context.Context, userID int, productIDs []int) error {
	if len(productIDs) == 0 {
		return apperror.NewValidationError("A lista de produtos está vazia.")
	}
	for _, id := range productIDs {
		if id <= 0 {
			return apperror.NewValidationError("A lista contém product_id inválido.")
		}
	}
	return s.Repo.SaveProducts(ctx, userID, productIDs)
}

// Remove tira um produto da lista.
func (s *WishlistService) Remove(ctx context.Context, userID, productID int) error {
	return s.Repo.RemoveProduct(ctx, userID, productID)
}

// AssignCategory vincula (ou desvincula, com nil) um produto salvo a uma
// categoria pessoal.
func (s *WishlistService) AssignCategory(ctx context.Context, userID, productID int, savedCategoryID *int) error {
	return s.Repo.AssignCategory(ctx, userID, productID, savedCategoryID)
}

// ListCategories retorna as categorias pessoais do usuário.
func (s *WishlistService) ListCategories(ctx context.Context, userID int) ([]domain.SavedCategory, error) {
	return s.Repo.FindCategories(ctx, userID)
}

// CreateCategory cria uma categoria pessoal.
func (s *WishlistService) CreateCategory(ctx context.Context, userID int, name string) (domain.SavedCategory, error) {
	if strings.TrimSpace(name) == "" {
		return domain.SavedCategory{}, apperror.NewValidationError("O nome da categoria é obrigatório.")
	}
	return s.Repo.CreateCategory(ctx, userID, name)
}

// RenameCategory renomeia uma categoria pessoal do usuário.
func (s *WishlistService) RenameCategory(ctx context.Context, userID, categoryID int, name string) error {
	if strings.TrimSpace(name) == "" {
		return apperror.NewValidationError("O nome da categoria é obrigatório.")
	}
	return s.Repo.RenameCategory(ctx, userID, categoryID, name)
}

// DeleteCategory remove uma categoria pessoal; os produtos vinculados
// permanecem salvos, sem categoria.
func (s *WishlistService) DeleteCategory(ctx context.Context, userID, categoryID int) error {
	return s.Repo.DeleteCategory(ctx, userID, categoryID)
}
