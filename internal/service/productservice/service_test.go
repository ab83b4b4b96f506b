package productservice_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"cosmetick/internal/domain"
	apperror "cosmetick/internal/errors"
	"cosmetick/internal/pkg/logger"
	"cosmetick/internal/service/productservice"
)

// MockProductRepository é uma implementação mock da interface ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindAll(ctx context.Context, f domain.ProductFilter) ([]domain.Product, int, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]domain.Product), args.Int(1), args.Error(2)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id int) (domain.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *MockProductRepository) IncrementViews(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Create(ctx context.Context, in domain.ProductInput, imageURLs []string) (int, error) {
	args := m.Called(ctx, in, imageURLs)
	return args.Int(0), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, id int, in domain.ProductInput, imageURLs []string) error {
	args := m.Called(ctx, id, in, imageURLs)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockImageStorage é uma implementação mock da interface ImageStorage
type MockImageStorage struct {
	mock.Mock
}

func (m *MockImageStorage) Upload(ctx context.Context, data []byte, folder string) (string, error) {
	args := m.Called(ctx, data, folder)
	return args.String(0), args.Error(1)
}

func newService(repo *MockProductRepository, storage *MockImageStorage) *productservice.ProductService {
	return productservice.NewProductService(repo, storage, 24, "placeholder.webp", logger.NewLogger("debug"))
}

func strPtr(s string) *string { return &s }

// TestList_BrowseMode_NoGrouping testa que a navegação simples sai sem resumo
// agrupado, mas com a coleção presente (vazia, nunca nula).
func TestList_BrowseMode_NoGrouping(t *testing.T) {
	mockRepo := new(MockProductRepository)
	svc := newService(mockRepo, new(MockImageStorage))

	products := []domain.Product{{ID: 1, Name: "Serum A", CategoryName: "Сироватки"}}
	mockRepo.On("FindAll", mock.Anything, mock.Anything).Return(products, 37, nil)

	listing, err := svc.List(context.Background(), domain.ProductListQuery{})

	assert.NoError(t, err)
	assert.Equal(t, 37, listing.Total)
	assert.Len(t, listing.Products, 1)
	assert.NotNil(t, listing.GroupedResults)
	assert.Empty(t, listing.GroupedResults)
	mockRepo.AssertExpectations(t)
}

// TestList_SearchMode_GroupsByCategory testa o resumo agrupado: grupos maiores
// primeiro, empates na ordem de primeira aparição, volume com fallback.
func TestList_SearchMode_GroupsByCategory(t *testing.T) {
	mockRepo := new(MockProductRepository)
	svc := newService(mockRepo, new(MockImageStorage))

	products := []domain.Product{
		{ID: 1, Name: "Shampoo A", CategoryID: "shampoos", Volume: strPtr("250ml")},
		{ID: 2, Name: "Serum A", CategoryID: "serums"},
		{ID: 3, Name: "Serum B", CategoryID: "serums", Volume: strPtr("30ml")},
		{ID: 4, Name: "Cream A", CategoryID: "creams"},
	}
	mockRepo.On("FindAll", mock.Anything, mock.Anything).Return(products, 4, nil)

	listing, err := svc.List(context.Background(), domain.ProductListQuery{Search: "a"})

	assert.NoError(t, err)
	assert.Len(t, listing.GroupedResults, 3)

	// Maior grupo primeiro.
	assert.Equal(t, "serums", listing.GroupedResults[0].Category)
	assert.Equal(t, 2, listing.GroupedResults[0].Count)

	// Empate (1x1): ordem de primeira aparição preservada.
	assert.Equal(t, "shampoos", listing.GroupedResults[1].Category)
	assert.Equal(t, "creams", listing.GroupedResults[2].Category)

	// Volume ausente vira o fallback.
	assert.Equal(t, "Н/Д", listing.GroupedResults[0].Products[0].Specs.Volume)
	assert.Equal(t, "30ml", listing.GroupedResults[0].Products[1].Specs.Volume)
	mockRepo.AssertExpectations(t)
}

// TestList_InvalidQuery testa que parâmetro malformado barra antes do repo.
func TestList_InvalidQuery(t *testing.T) {
	mockRepo := new(MockProductRepository)
	svc := newService(mockRepo, new(MockImageStorage))

	_, err := svc.List(context.Background(), domain.ProductListQuery{Page: "abc"})

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	mockRepo.AssertNotCalled(t, "FindAll", mock.Anything, mock.Anything)
}

// TestGetByID_IncrementsViews testa que o detalhe incrementa o contador após
// uma leitura bem-sucedida.
func TestGetByID_IncrementsViews(t *testing.T) {
	mockRepo := new(MockProductRepository)
	svc := newService(mockRepo, new(MockImageStorage))

	mockRepo.On("FindByID", mock.Anything, 7).Return(domain.Product{ID: 7, Name: "Serum A"}, nil)
	mockRepo.On("IncrementViews", mock.Anything, 7).Return(nil)

	product, err := svc.GetByID(context.Background(), 7)

	assert.NoError(t, err)
	assert.Equal(t, 7, product.ID)
	mockRepo.AssertExpectations(t)
}

// TestGetByID_NotFound_NoIncrement testa que id inexistente não conta
// visualização.
func TestGetByID_NotFound_NoIncrement(t *testing.T) {
	mockRepo := new(MockProductRepository)
	svc := newService(mockRepo, new(MockImageStorage))

	mockRepo.On("FindByID", mock.Anything, 99).
		Return(domain.Product{}, apperror.NewNotFoundError("Produto com ID 99 não existe."))

	_, err := svc.GetByID(context.Background(), 99)

	assert.Error(t, err)
	assert.IsType(t, &apperror.NotFoundError{}, err)
	mockRepo.AssertNotCalled(t, "IncrementViews", mock.Anything, mock.Anything)
}

// TestGetByID_IncrementFailureIsTolerated testa que falha no incremento não
// derruba a resposta de detalhe.
func TestGetByID_IncrementFailureIsTolerated(t *testing.T) {
	mockRepo := new(MockProductRepository)
	svc := newService(mockRepo, new(MockImageStorage))

	mockRepo.On("FindByID", mock.Anything, 7).Return(domain.Product{ID: 7}, nil)
	mockRepo.On("IncrementViews", mock.Anything, 7).Return(errors.New("db caiu"))

	product, err := svc.GetByID(context.Background(), 7)

	assert.NoError(t, err)
	assert.Equal(t, 7, product.ID)
	mockRepo.AssertExpectations(t)
}

// TestCreateProduct_UploadsImages testa que as imagens sobem para o
// armazenamento externo antes da gravação.
func TestCreateProduct_UploadsImages(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockStorage := new(MockImageStorage)
	svc := newService(mockRepo, mockStorage)

	in := domain.ProductInput{CategoryID: 1, BrandID: 2, Name: "Serum Novo"}
	images := [][]byte{[]byte("img-1"), []byte("img-2")}

	mockStorage.On("Upload", mock.Anything, []byte("img-1"), "products").Return("https://cdn/img-1.webp", nil)
	mockStorage.On("Upload", mock.Anything, []byte("img-2"), "products").Return("https://cdn/img-2.webp", nil)
	mockRepo.On("Create", mock.Anything, in, []string{"https://cdn/img-1.webp", "https://cdn/img-2.webp"}).Return(42, nil)

	id, err := svc.CreateProduct(context.Background(), in, images)

	assert.NoError(t, err)
	assert.Equal(t, 42, id)
	mockRepo.AssertExpectations(t)
	mockStorage.AssertExpectations(t)
}

// TestCreateProduct_InvalidInput testa que payload inválido barra antes de
// qualquer upload.
func TestCreateProduct_InvalidInput(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockStorage := new(MockImageStorage)
	svc := newService(mockRepo, mockStorage)

	_, err := svc.CreateProduct(context.Background(), domain.ProductInput{Name: "  ", CategoryID: 1, BrandID: 1}, nil)

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	mockStorage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

// TestUpdateProduct_DropsPlaceholderImages testa que as URLs fictícias saem
// da lista de imagens mantidas.
func TestUpdateProduct_DropsPlaceholderImages(t *testing.T) {
	mockRepo := new(MockProductRepository)
	mockStorage := new(MockImageStorage)
	svc := newService(mockRepo, mockStorage)

	in := domain.ProductInput{
		CategoryID: 1,
		BrandID:    2,
		Name:       "Serum",
		ExistingImages: []string{
			"https://cdn/real.webp",
			"https://cdn/placeholder.webp",
		},
	}
	mockRepo.On("Update", mock.Anything, 7, in, []string{"https://cdn/real.webp"}).Return(nil)

	err := svc.UpdateProduct(context.Background(), 7, in, nil)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}
