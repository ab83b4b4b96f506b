package productrepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"cosmetick/internal/domain"
	apperror "cosmetick/internal/errors"
	"cosmetick/internal/pkg/cache"
	"cosmetick/internal/pkg/logger"
)

// Chave de cache para o detalhe de produto.
const productCacheKey = "product:%d"

// ProductRepository concentra o acesso a dados de produtos: a listagem com
// filtros dinâmicos, o detalhe com cache-aside e as escritas administrativas.
type ProductRepository struct {
	DB        *sql.DB
	Cache     cache.Client
	DBTimeout time.Duration
	CacheTTL  time.Duration
	Marker    string // fragmento de URL de imagens fictícias, excluídas das respostas
	logger    logger.Logger
}

// NewProductRepository cria e retorna uma nova instância do Repositório.
func NewProductRepository(db *sql.DB, cacheClient cache.Client, dbTimeout, cacheTTL time.Duration, marker string, log logger.Logger) *ProductRepository {
	return &ProductRepository{
		DB:        db,
		Cache:     cacheClient,
		DBTimeout: dbTimeout,
		CacheTTL:  cacheTTL,
		Marker:    marker,
		logger:    log,
	}
}

// FindAll executa a listagem filtrada: a query de dados e a de contagem são
// construídas sobre o mesmo predicado, capturado uma única vez no início da
// requisição. Retorna a página de produtos e o total de ids distintos que
// satisfazem o predicado (independente da paginação).
func (r *ProductRepository) FindAll(ctx context.Context, f domain.ProductFilter) ([]domain.Product, int, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	q := buildListingQuery(f, r.Marker)

	rows, err := r.DB.QueryContext(ctxTimeout, q.dataSQL, q.dataValues...)
	if err != nil {
		r.logger.Error("Falha ao executar a query de listagem de produtos.", err)
		return nil, 0, apperror.NewDBError("falha ao listar produtos", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			r.logger.Error("Falha ao mapear linha de produto.", err)
			return nil, 0, apperror.NewDBError("falha ao mapear produto", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperror.NewDBError("falha ao percorrer produtos", err)
	}

	var total int
	if err := r.DB.QueryRowContext(ctxTimeout, q.countSQL, q.countValues...).Scan(&total); err != nil {
		r.logger.Error("Falha ao executar a query de contagem de produtos.", err)
		return nil, 0, apperror.NewDBError("falha ao contar produtos", err)
	}

	return products, total, nil
}

// FindByID busca o detalhe de um produto pelo ID, com estratégia Cache-Aside.
func (r *ProductRepository) FindByID(ctx context.Context, id int) (domain.Product, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	key := fmt.Sprintf(productCacheKey, id)
	var product domain.Product

	// 1. Tentativa no cache. Falha de cache nunca derruba a leitura.
	if cached, err := r.Cache.Get(ctxTimeout, key); err == nil {
		if json.Unmarshal([]byte(cached), &product) == nil {
			return product, nil
		}
	}

	// 2. Busca no banco.
	row := r.DB.QueryRowContext(ctxTimeout, buildDetailQuery(r.Marker), id)
	product, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, apperror.NewNotFoundError(fmt.Sprintf("Produto com ID %d não existe.", id))
	}
	if err != nil {
		r.logger.Error("Falha ao buscar produto no DB.", err)
		return domain.Product{}, apperror.NewDBError("falha ao buscar produto", err)
	}

	// 3. Popula o cache para leituras futuras.
	if data, err := json.Marshal(product); err == nil {
		r.Cache.Set(ctxTimeout, key, data, r.CacheTTL)
	}

	return product, nil
}

// IncrementViews soma 1 ao contador de visualizações. Semântica at-least-once:
// incrementos concorrentes podem se perder e isso é aceito.
func (r *ProductRepository) IncrementViews(ctx context.Context, id int) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	_, err := r.DB.ExecContext(ctxTimeout, `UPDATE products SET views = views + 1 WHERE id = $1`, id)
	if err != nil {
		return apperror.NewDBError("falha ao incrementar views", err)
	}
	return nil
}

// rowScanner cobre *sql.Row e *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanProduct mapeia uma linha da projeção de listagem/detalhe para a struct
// de domínio, já com imagens e ofertas coalescidas para coleções vazias.
func scanProduct(row rowScanner) (domain.Product, error) {
	var p domain.Product
	var images pq.StringArray
	var pricesJSON []byte

	err := row.Scan(
		&p.ID, &p.Name, &p.Volume, &p.Type, &p.Rating, &p.Views, &p.Code,
		&p.CategoryName, &p.CategoryID, &p.BrandName,
		&p.Description, &p.Composition, &p.Usage, &p.DescriptionFull,
		&p.Features.Brand, &p.Features.Country, &p.Features.Type,
		&p.Features.Class, &p.Features.Category, &p.Features.Purpose,
		&p.Features.Gender, &p.Features.ActiveIngredients,
		&images, &pricesJSON,
	)
	if err != nil {
		return domain.Product{}, err
	}

	p.Images = make([]string, 0, len(images))
	p.Images = append(p.Images, images...)

	p.StorePrices = make([]domain.StorePrice, 0)
	if len(pricesJSON) > 0 {
		if err := json.Unmarshal(pricesJSON, &p.StorePrices); err != nil {
			return domain.Product{}, err
		}
	}

	// O objeto features repete a descrição dos detalhes.
	p.Features.Description = p.Description

	return p, nil
}

// --- Escritas administrativas ---

// Create insere o produto e todos os satélites (detalhes, características,
// imagens, ofertas) numa única transação.
func (r *ProductRepository) Create(ctx context.Context, in domain.ProductInput, imageURLs []string) (productID int, err error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	tx, err := r.DB.BeginTx(ctxTimeout, nil)
	if err != nil {
		return 0, apperror.NewDBError("falha ao iniciar transação", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	// Categoria e marca precisam existir (joins internos: um produto com
	// referência pendente ficaria invisível em todas as queries).
	if err = r.checkExists(ctxTimeout, tx, "categories", in.CategoryID, "Categoria"); err != nil {
		return 0, err
	}
	if err = r.checkExists(ctxTimeout, tx, "brands", in.BrandID, "Marca"); err != nil {
		return 0, err
	}

	err = tx.QueryRowContext(ctxTimeout,
		`INSERT INTO products (category_id, brand_id, name, volume, type, rating, views, code)
		 VALUES ($1, $2, $3, $4, $5, 0, 0, $6)
		 RETURNING id`,
		in.CategoryID, in.BrandID, in.Name, in.Volume, in.Features.Type, in.Code,
	).Scan(&productID)
	if err != nil {
		return 0, apperror.NewDBError("falha ao inserir produto", err)
	}

	if err = r.insertSatellites(ctxTimeout, tx, productID, in, imageURLs); err != nil {
		return 0, err
	}

	if err = tx.Commit(); err != nil {
		return 0, apperror.NewDBError("falha ao commitar transação", err)
	}

	return productID, nil
}

// Update regrava o produto e os satélites (estratégia delete+insert do
// painel administrativo) numa única transação e invalida o cache de detalhe.
func (r *ProductRepository) Update(ctx context.Context, id int, in domain.ProductInput, imageURLs []string) (err error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	tx, err := r.DB.BeginTx(ctxTimeout, nil)
	if err != nil {
		return apperror.NewDBError("falha ao iniciar transação", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	var exists int
	if err = tx.QueryRowContext(ctxTimeout, `SELECT id FROM products WHERE id = $1`, id).Scan(&exists); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperror.NewNotFoundError(fmt.Sprintf("Produto com ID %d não existe.", id))
		}
		return apperror.NewDBError("falha ao verificar produto", err)
	}

	_, err = tx.ExecContext(ctxTimeout,
		`UPDATE products SET category_id = $1, brand_id = $2, name = $3, volume = $4, type = $5, code = $6
		 WHERE id = $7`,
		in.CategoryID, in.BrandID, in.Name, in.Volume, in.Features.Type, in.Code, id,
	)
	if err != nil {
		return apperror.NewDBError("falha ao atualizar produto", err)
	}

	for _, table := range []string{"product_images", "product_details", "product_features", "store_prices"} {
		if _, err = tx.ExecContext(ctxTimeout, fmt.Sprintf(`DELETE FROM %s WHERE product_id = $1`, table), id); err != nil {
			return apperror.NewDBError("falha ao limpar satélites do produto", err)
		}
	}

	if err = r.insertSatellites(ctxTimeout, tx, id, in, imageURLs); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return apperror.NewDBError("falha ao commitar transação", err)
	}

	r.Cache.Delete(ctxTimeout, fmt.Sprintf(productCacheKey, id))
	return nil
}

// Delete remove o produto e todos os registros dependentes.
func (r *ProductRepository) Delete(ctx context.Context, id int) (err error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	tx, err := r.DB.BeginTx(ctxTimeout, nil)
	if err != nil {
		return apperror.NewDBError("falha ao iniciar transação", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	for _, table := range []string{"product_images", "store_prices", "product_details", "product_features", "saved_products"} {
		if _, err = tx.ExecContext(ctxTimeout, fmt.Sprintf(`DELETE FROM %s WHERE product_id = $1`, table), id); err != nil {
			return apperror.NewDBError("falha ao remover dependências do produto", err)
		}
	}

	if _, err = tx.ExecContext(ctxTimeout, `DELETE FROM products WHERE id = $1`, id); err != nil {
		return apperror.NewDBError("falha ao remover produto", err)
	}

	if err = tx.Commit(); err != nil {
		return apperror.NewDBError("falha ao commitar transação", err)
	}

	r.Cache.Delete(ctxTimeout, fmt.Sprintf(productCacheKey, id))
	return nil
}

// checkExists valida a existência de um registro referenciado pelo produto.
func (r *ProductRepository) checkExists(ctx context.Context, tx *sql.Tx, table string, id int, label string) error {
	var found int
	err := tx.QueryRowContext(ctx, fmt.Sprintf(`SELECT id FROM %s WHERE id = $1`, table), id).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return apperror.NewValidationError(fmt.Sprintf("%s com ID %d não existe.", label, id))
	}
	if err != nil {
		return apperror.NewDBError("falha ao validar referência", err)
	}
	return nil
}

// insertSatellites grava imagens, detalhes, características e ofertas de um
// produto dentro da transação corrente.
func (r *ProductRepository) insertSatellites(ctx context.Context, tx *sql.Tx, productID int, in domain.ProductInput, imageURLs []string) error {
	for _, url := range imageURLs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO product_images (product_id, image_url) VALUES ($1, $2)`, productID, url); err != nil {
			return apperror.NewDBError("falha ao inserir imagem", err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO product_details (product_id, description, composition, usage, description_full)
		 VALUES ($1, $2, $3, $4, $5)`,
		productID, in.Description, in.Composition, in.Usage, in.DescriptionFull); err != nil {
		return apperror.NewDBError("falha ao inserir detalhes", err)
	}

	if in.HasFeatures {
		f := in.Features
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO product_features (product_id, brand, country, type, class, category, purpose, gender, active_ingredients)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			productID, f.Brand, f.Country, f.Type, f.Class, f.Category, f.Purpose, f.Gender, f.ActiveIngredients); err != nil {
			return apperror.NewDBError("falha ao inserir características", err)
		}
	}

	for _, sp := range in.StorePrices {
		var found int
		err := tx.QueryRowContext(ctx, `SELECT id FROM stores WHERE id = $1`, sp.StoreID).Scan(&found)
		if errors.Is(err, sql.ErrNoRows) {
			return apperror.NewValidationError(fmt.Sprintf("Loja com ID %d não existe.", sp.StoreID))
		}
		if err != nil {
			return apperror.NewDBError("falha ao validar loja", err)
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO store_prices (product_id, store_id, price, link) VALUES ($1, $2, $3, $4)`,
			productID, sp.StoreID, sp.Price, sp.Link); err != nil {
			return apperror.NewDBError("falha ao inserir oferta", err)
		}
	}

	return nil
}
