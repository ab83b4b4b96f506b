package wishlistservice_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"cosmetick/internal/domain"
	apperror "cosmetick/internal/errors"
	"cosmetick/internal/pkg/logger"
	"cosmetick/internal/service/wishlistservice"
)

// MockWishlistRepository é uma implementação mock da interface WishlistRepository
type MockWishlistRepository struct {
	mock.Mock
}

func (m *MockWishlistRepository) FindSavedProducts(ctx context.Context, userID int) ([]domain.SavedProduct, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.SavedProduct), args.Error(1)
}

func (m *MockWishlistRepository) IsSaved(ctx context.Context, userID, productID int) (bool, error) {
	args := m.Called(ctx, userID, productID)
	return args.Bool(0), args.Error(1)
}

func (m *MockWishlistRepository) SaveProduct(ctx context.Context, userID, productID int, savedCategoryID *int) error {
	args := m.Called(ctx, userID, productID, savedCategoryID)
	return args.Error(0)
}

func (m *MockWishlistRepository) SaveProducts(ctx context.Context, userID int, productIDs []int) error {
	args := m.Called(ctx, userID, productIDs)
	return args.Error(0)
}

func (m *MockWishlistRepository) RemoveProduct(ctx context.Context, userID, productID int) error {
	args := m.Called(ctx, userID, productID)
	return args.Error(0)
}

func (m *MockWishlistRepository) AssignCategory(ctx context.Context, userID, productID int, savedCategoryID *int) error {
	args := m.Called(ctx, userID, productID, savedCategoryID)
	return args.Error(0)
}

func (m *MockWishlistRepository) FindCategories(ctx context.Context, userID int) ([]domain.SavedCategory, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.SavedCategory), args.Error(1)
}

func (m *MockWishlistRepository) CreateCategory(ctx context.Context, userID int, name string) (domain.SavedCategory, error) {
	args := m.Called(ctx, userID, name)
	return args.Get(0).(domain.SavedCategory), args.Error(1)
}

func (m *MockWishlistRepository) RenameCategory(ctx context.Context, userID, categoryID int, name string) error {
	args := m.Called(ctx, userID, categoryID, name)
	return args.Error(0)
}

func (m *MockWishlistRepository) DeleteCategory(ctx context.Context, userID, categoryID int) error {
	args := m.Called(ctx, userID, categoryID)
	return args.Error(0)
}

// TestSave_InvalidProductID testa a validação do id antes do repositório.
func TestSave_InvalidProductID(t *testing.T) {
	mockRepo := new(MockWishlistRepository)
	svc := wishlistservice.NewWishlistService(mockRepo, logger.NewLogger("debug"))

	err := svc.Save(context.Background(), 1, 0, nil)

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	mockRepo.AssertNotCalled(t, "SaveProduct", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// TestSaveBatch testa a sincronização em lote: lista vazia e ids inválidos
// barram antes do repositório.
func TestSaveBatch(t *testing.T) {
	mockRepo := new(MockWishlistRepository)
	svc := wishlistservice.NewWishlistService(mockRepo, logger.NewLogger("debug"))

	err := svc.SaveBatch(context.Background(), 1, nil)
	assert.IsType(t, &apperror.ValidationError{}, err)

	err = svc.SaveBatch(context.Background(), 1, []int{3, -1})
	assert.IsType(t, &apperror.ValidationError{}, err)

	mockRepo.On("SaveProducts", mock.Anything, 1, []int{3, 4}).Return(nil)
	err = svc.SaveBatch(context.Background(), 1, []int{3, 4})
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

// TestCreateCategory_EmptyName testa que nome vazio é rejeitado.
func TestCreateCategory_EmptyName(t *testing.T) {
	mockRepo := new(MockWishlistRepository)
	svc := wishlistservice.NewWishlistService(mockRepo, logger.NewLogger("debug"))

	_, err := svc.CreateCategory(context.Background(), 1, "   ")

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	mockRepo.AssertNotCalled(t, "CreateCategory", mock.Anything, mock.Anything, mock.Anything)
}
