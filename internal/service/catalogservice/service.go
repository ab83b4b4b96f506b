package catalogservice

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"cosmetick/internal/domain"
	apperror "cosmetick/internal/errors"
	"cosmetick/internal/pkg/cache"
	"cosmetick/internal/pkg/logger"
)

// Pasta do armazenamento externo onde ficam os logos de loja.
const logoFolder = "stores"

// Prefixo das chaves de cache das opções de filtro.
const filterOptionsCacheKey = "filter-options:"

// CatalogRepository define o contrato da camada de persistência do catálogo
// de apoio (marcas, lojas, categorias, cidades, localizações).
type CatalogRepository interface {
	FindAllBrands(ctx context.Context) ([]domain.Brand, error)
	FindBrandByID(ctx context.Context, id int) (domain.Brand, error)
	CreateBrand(ctx context.Context, name string) (domain.Brand, error)
	DeleteBrand(ctx context.Context, id int) error

	FindAllStores(ctx context.Context, productID int) ([]domain.Store, error)
	FindStoreByID(ctx context.Context, id int) (domain.Store, error)
	CreateStore(ctx context.Context, in domain.StoreInput) (domain.Store, error)
	UpdateStoreLogo(ctx context.Context, id int, logoURL string) (*string, error)
	DeleteStore(ctx context.Context, id int) error

	FindAllCategories(ctx context.Context) ([]domain.Category, error)
	FindAllCities(ctx context.Context) ([]domain.City, error)
	FindStoreLocations(ctx context.Context, cityID, storeID int) ([]domain.StoreLocation, error)
	FindStoreLocationByID(ctx context.Context, id int) (domain.StoreLocation, error)
	CreateStoreLocation(ctx context.Context, in domain.StoreLocationInput) (int, error)
	DeleteStoreLocation(ctx context.Context, id int) error

	FindFilterOptions(ctx context.Context, categories []string) (domain.FilterOptions, error)
}

// LogoStorage define o contrato do armazenamento externo de logos.
type LogoStorage interface {
	Upload(ctx context.Context, data []byte, folder string) (string, error)
	Destroy(ctx context.Context, publicID string) error
}

// CatalogService expõe as leituras públicas do catálogo de apoio e as
// escritas administrativas de marcas, lojas e localizações.
type CatalogService struct {
	Repo     CatalogRepository
	Storage  LogoStorage
	Cache    cache.Client
	CacheTTL time.Duration
	logger   logger.Logger
}

// NewCatalogService cria e retorna uma nova instância do Serviço.
func NewCatalogService(repo CatalogRepository, storage LogoStorage, cacheClient cache.Client, cacheTTL time.Duration, log logger.Logger) *CatalogService {
	return &CatalogService{
		Repo:     repo,
		Storage:  storage,
		Cache:    cacheClient,
		CacheTTL: cacheTTL,
		logger:   log,
	}
}

// ListBrands retorna todas as marcas.
func (s *CatalogService) ListBrands(ctx context.Context) ([]domain.Brand, error) {
	return s.Repo.FindAllBrands(ctx)
}

// GetBrand retorna uma marca pelo ID.
func (s *CatalogService) GetBrand(ctx context.Context, id int) (domain.Brand, error) {
	return s.Repo.FindBrandByID(ctx, id)
}

// CreateBrand cria uma marca nova.
func (s *CatalogService) CreateBrand(ctx context.Context, name string) (domain.Brand, error) {
	if strings.TrimSpace(name) == "" {
		return domain.Brand{}, apperror.NewValidationError("O nome da marca é obrigatório.")
	}
	return s.Repo.CreateBrand(ctx, name)
}

// DeleteBrand remove uma marca sem produtos vinculados.
func (s *CatalogService) DeleteBrand(ctx context.Context, id int) error {
	return s.Repo.DeleteBrand(ctx, id)
}

// ListStores retorna as lojas parceiras; productID > 0 restringe às lojas
// com oferta para o produto.
func (s *CatalogService) ListStores(ctx context.Context, productID int) ([]domain.Store, error) {
	return s.Repo.FindAllStores(ctx, productID)
}

// GetStore retorna uma loja pelo ID.
func (s *CatalogService) GetStore(ctx context.Context, id int) (domain.Store, error) {
	return s.Repo.FindStoreByID(ctx, id)
}

// CreateStore cria uma loja e, quando um logo acompanha o payload, sobe o
// arquivo para o armazenamento externo.
func (s *CatalogService) CreateStore(ctx context.Context, in domain.StoreInput, logo []byte) (domain.Store, error) {
	if strings.TrimSpace(in.Name) == "" {
		return domain.Store{}, apperror.NewValidationError("O nome da loja é obrigatório.")
	}

	store, err := s.Repo.CreateStore(ctx, in)
	if err != nil {
		return domain.Store{}, err
	}

	if len(logo) > 0 {
		url, err := s.Storage.Upload(ctx, logo, logoFolder)
		if err != nil {
			s.logger.Error("Falha ao subir logo da loja.", err)
			return store, apperror.NewInternalError("falha ao subir logo", err)
		}
		if _, err := s.Repo.UpdateStoreLogo(ctx, store.ID, url); err != nil {
			return store, err
		}
		store.Logo = &url
	}

	return store, nil
}

// DeleteStore remove uma loja sem ofertas vinculadas e apaga o logo órfão do
// armazenamento externo (melhor esforço: falha ali só gera log).
func (s *CatalogService) DeleteStore(ctx context.Context, id int) error {
	store, err := s.Repo.FindStoreByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.Repo.DeleteStore(ctx, id); err != nil {
		return err
	}

	if store.Logo != nil {
		if publicID := publicIDFromURL(*store.Logo); publicID != "" {
			if err := s.Storage.Destroy(ctx, publicID); err != nil {
				s.logger.Warn("Falha ao remover logo órfão do armazenamento externo.", map[string]interface{}{
					"store_id": id,
					"error":    err.Error(),
				})
			}
		}
	}

	return nil
}

// publicIDFromURL extrai o public ID (pasta/uuid) de uma URL de entrega do
// armazenamento externo: os dois últimos segmentos do caminho, sem a extensão.
func publicIDFromURL(url string) string {
	parts := strings.Split(url, "/")
	if len(parts) < 2 {
		return ""
	}
	file := parts[len(parts)-1]
	if dot := strings.LastIndex(file, "."); dot > 0 {
		file = file[:dot]
	}
	if file == "" {
		return ""
	}
	return parts[len(parts)-2] + "/" + file
}

// ListCategories retorna a árvore de categorias públicas.
func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.Repo.FindAllCategories(ctx)
}

// ListCities retorna as cidades do mapa de lojas.
func (s *CatalogService) ListCities(ctx context.Context) ([]domain.City, error) {
	return s.Repo.FindAllCities(ctx)
}

// ListStoreLocations retorna as localizações, com filtros opcionais.
func (s *CatalogService) ListStoreLocations(ctx context.Context, cityID, storeID int) ([]domain.StoreLocation, error) {
	return s.Repo.FindStoreLocations(ctx, cityID, storeID)
}

// GetStoreLocation retorna uma localização pelo ID.
func (s *CatalogService) GetStoreLocation(ctx context.Context, id int) (domain.StoreLocation, error) {
	return s.Repo.FindStoreLocationByID(ctx, id)
}

// CreateStoreLocation cria uma localização de loja.
func (s *CatalogService) CreateStoreLocation(ctx context.Context, in domain.StoreLocationInput) (int, error) {
	if in.StoreID <= 0 || in.CityID <= 0 {
		return 0, apperror.NewValidationError("store_id e city_id são obrigatórios.")
	}
	if strings.TrimSpace(in.Address) == "" {
		return 0, apperror.NewValidationError("address é obrigatório.")
	}
	return s.Repo.CreateStoreLocation(ctx, in)
}

// DeleteStoreLocation remove uma localização.
func (s *CatalogService) DeleteStoreLocation(ctx context.Context, id int) error {
	return s.Repo.DeleteStoreLocation(ctx, id)
}

// FilterOptions levanta os valores disponíveis para os filtros da vitrine,
// com Cache-Aside por escopo de categoria. categories vem da query string
// como lista separada por vírgula.
func (s *CatalogService) FilterOptions(ctx context.Context, rawCategories string) (domain.FilterOptions, error) {
	key := filterOptionsCacheKey + rawCategories

	if cached, err := s.Cache.Get(ctx, key); err == nil {
		var opts domain.FilterOptions
		if json.Unmarshal([]byte(cached), &opts) == nil {
			return opts, nil
		}
	}

	var categories []string
	if rawCategories != "" {
		categories = strings.Split(rawCategories, ",")
	}

	opts, err := s.Repo.FindFilterOptions(ctx, categories)
	if err != nil {
		return domain.FilterOptions{}, err
	}

	if data, err := json.Marshal(opts); err == nil {
		s.Cache.Set(ctx, key, data, s.CacheTTL)
	}

	return opts, nil
}
