package productservice

import (
	"context"
	"strings"

	"cosmetick/internal/domain"
	apperror "cosmetick/internal/errors"
	"cosmetick/internal/pkg/logger"
)

// Pasta do armazenamento externo onde ficam as imagens de produto.
const imageFolder = "products"

// ProductRepository define o contrato da camada de persistência de produtos.
type ProductRepository interface {
	FindAll(ctx context.Context, f domain.ProductFilter) ([]domain.Product, int, error)
	FindByID(ctx context.Context, id int) (domain.Product, error)
	IncrementViews(ctx context.Context, id int) error
	Create(ctx context.Context, in domain.ProductInput, imageURLs []string) (int, error)
	Update(ctx context.Context, id int, in domain.ProductInput, imageURLs []string) error
	Delete(ctx context.Context, id int) error
}

// ImageStorage define o contrato do armazenamento externo de imagens.
type ImageStorage interface {
	Upload(ctx context.Context, data []byte, folder string) (string, error)
}

// ProductService orquestra a listagem filtrada, o detalhe com contador de
// visualizações e as escritas administrativas.
type ProductService struct {
	Repo         ProductRepository
	Storage      ImageStorage
	DefaultLimit int
	Marker       string // fragmento de URL de imagens fictícias
	logger       logger.Logger
}

// NewProductService cria e retorna uma nova instância do Serviço.
func NewProductService(repo ProductRepository, storage ImageStorage, defaultLimit int, marker string, log logger.Logger) *ProductService {
	return &ProductService{
		Repo:         repo,
		Storage:      storage,
		DefaultLimit: defaultLimit,
		Marker:       marker,
		logger:       log,
	}
}

// List valida os parâmetros, executa a listagem filtrada e molda o envelope
// de resposta. No modo busca/categoria o resumo agrupado acompanha a lista;
// fora dele, groupedResults sai vazio (nunca nulo).
func (s *ProductService) List(ctx context.Context, q domain.ProductListQuery) (domain.ProductListing, error) {
	filter, err := ParseListQuery(q, s.DefaultLimit)
	if err != nil {
		return domain.ProductListing{}, err
	}

	products, total, err := s.Repo.FindAll(ctx, filter)
	if err != nil {
		return domain.ProductListing{}, err
	}

	listing := domain.ProductListing{
		Products:       products,
		Total:          total,
		GroupedResults: make([]domain.CategoryGroup, 0),
	}
	if filter.SearchMode() {
		listing.GroupedResults = groupByCategory(products)
	}

	return listing, nil
}

// GetByID retorna o detalhe de um produto e incrementa o contador de
// visualizações — somente após uma leitura bem-sucedida: id inexistente não
// conta. Falha no incremento não derruba a resposta, só gera log.
func (s *ProductService) GetByID(ctx context.Context, id int) (domain.Product, error) {
	product, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}

	if err := s.Repo.IncrementViews(ctx, id); err != nil {
		s.logger.Warn("Falha ao incrementar views do produto.", map[string]interface{}{
			"product_id": id,
			"error":      err.Error(),
		})
	}

	return product, nil
}

// CreateProduct valida o payload administrativo, sobe as imagens para o
// armazenamento externo e grava o produto com todos os satélites.
func (s *ProductService) CreateProduct(ctx context.Context, in domain.ProductInput, images [][]byte) (int, error) {
	if err := s.validateInput(in); err != nil {
		return 0, err
	}

	urls, err := s.uploadImages(ctx, images)
	if err != nil {
		return 0, err
	}

	return s.Repo.Create(ctx, in, urls)
}

// UpdateProduct regrava um produto: mantém as imagens que o cliente listou
// (descartando as fictícias), sobe as novas e delega a troca ao repositório.
func (s *ProductService) UpdateProduct(ctx context.Context, id int, in domain.ProductInput, images [][]byte) error {
	if err := s.validateInput(in); err != nil {
		return err
	}

	kept := make([]string, 0, len(in.ExistingImages))
	for _, url := range in.ExistingImages {
		if s.Marker != "" && strings.Contains(url, s.Marker) {
			continue
		}
		kept = append(kept, url)
	}

	uploaded, err := s.uploadImages(ctx, images)
	if err != nil {
		return err
	}

	return s.Repo.Update(ctx, id, in, append(kept, uploaded...))
}

// DeleteProduct remove um produto e todos os registros dependentes.
func (s *ProductService) DeleteProduct(ctx context.Context, id int) error {
	return s.Repo.Delete(ctx, id)
}

func (s *ProductService) validateInput(in domain.ProductInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return apperror.NewValidationError("O nome do produto é obrigatório.")
	}
	if in.CategoryID <= 0 {
		return apperror.NewValidationError("category_id é obrigatório.")
	}
	if in.BrandID <= 0 {
		return apperror.NewValidationError("brand_id é obrigatório.")
	}
	for _, sp := range in.StorePrices {
		if sp.StoreID <= 0 || sp.Price < 0 {
			return apperror.NewValidationError("Oferta de loja malformada.")
		}
	}
	return nil
}

func (s *ProductService) uploadImages(ctx context.Context, images [][]byte) ([]string, error) {
	urls := make([]string, 0, len(images))
	for _, data := range images {
		url, err := s.Storage.Upload(ctx, data, imageFolder)
		if err != nil {
			s.logger.Error("Falha ao subir imagem para o armazenamento externo.", err)
			return nil, apperror.NewInternalError("falha ao subir imagem", err)
		}
		urls = append(urls, url)
	}
	return urls, nil
}
