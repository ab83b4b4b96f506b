package catalogrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"cosmetick/internal/domain"
	apperror "cosmetick/internal/errors"
	"cosmetick/internal/pkg/logger"
)

// CatalogRepository concentra o acesso a dados das entidades de apoio do
// catálogo: marcas, lojas, categorias, cidades e localizações.
type CatalogRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewCatalogRepository cria e retorna uma nova instância do Repositório.
func NewCatalogRepository(db *sql.DB, dbTimeout time.Duration, log logger.Logger) *CatalogRepository {
	return &CatalogRepository{DB: db, DBTimeout: dbTimeout, logger: log}
}

// FindAllBrands retorna todas as marcas em ordem alfabética.
func (r *CatalogRepository) FindAllBrands(ctx context.Context) ([]domain.Brand, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	rows, err := r.DB.QueryContext(ctxTimeout, `SELECT id, name FROM brands ORDER BY name`)
	if err != nil {
		return nil, apperror.NewDBError("falha ao listar marcas", err)
	}
	defer rows.Close()

	brands := make([]domain.Brand, 0)
	for rows.Next() {
		var b domain.Brand
		if err := rows.Scan(&b.ID, &b.Name); err != nil {
			return nil, apperror.NewDBError("falha ao mapear marca", err)
		}
		brands = append(brands, b)
	}
	return brands, rows.Err()
}

// FindBrandByID busca uma marca pelo ID.
func (r *CatalogRepository) FindBrandByID(ctx context.Context, id int) (domain.Brand, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var b domain.Brand
	err := r.DB.QueryRowContext(ctxTimeout, `SELECT id, name FROM brands WHERE id = $1`, id).Scan(&b.ID, &b.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Brand{}, apperror.NewNotFoundError(fmt.Sprintf("Marca com ID %d não existe.", id))
	}
	if err != nil {
		return domain.Brand{}, apperror.NewDBError("falha ao buscar marca", err)
	}
	return b, nil
}

// CreateBrand insere uma nova marca. Nome duplicado vira conflito.
func (r *CatalogRepository) CreateBrand(ctx context.Context, name string) (domain.Brand, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var b domain.Brand
	err := r.DB.QueryRowContext(ctxTimeout,
		`INSERT INTO brands (name) VALUES ($1) RETURNING id, name`, name).Scan(&b.ID, &b.Name)
	if isUniqueViolation(err) {
		return domain.Brand{}, apperror.NewConflictError(fmt.Sprintf("Marca '%s' já existe.", name))
	}
	if err != nil {
		return domain.Brand{}, apperror.NewDBError("falha ao criar marca", err)
	}
	return b, nil
}

// DeleteBrand remove uma marca, desde que nenhum produto a referencie.
func (r *CatalogRepository) DeleteBrand(ctx context.Context, id int) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var inUse int
	err := r.DB.QueryRowContext(ctxTimeout,
		`SELECT COUNT(*) FROM products WHERE brand_id = $1`, id).Scan(&inUse)
	if err != nil {
		return apperror.NewDBError("falha ao verificar uso da marca", err)
	}
	if inUse > 0 {
		return apperror.NewConflictError(fmt.Sprintf("Marca com ID %d ainda tem %d produto(s) vinculado(s).", id, inUse))
	}

	res, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM brands WHERE id = $1`, id)
	if err != nil {
		return apperror.NewDBError("falha ao remover marca", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.NewNotFoundError(fmt.Sprintf("Marca com ID %d não existe.", id))
	}
	return nil
}

// FindAllStores retorna as lojas parceiras. Quando productID > 0, restringe
// às lojas com oferta para aquele produto.
func (r *CatalogRepository) FindAllStores(ctx context.Context, productID int) ([]domain.Store, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT id, name, logo, years_with_us, link FROM stores ORDER BY name`
	args := []interface{}{}
	if productID > 0 {
		query = `SELECT DISTINCT s.id, s.name, s.logo, s.years_with_us, s.link
			 FROM stores s
			 JOIN store_prices sp ON sp.store_id = s.id
			 WHERE sp.product_id = $1
			 ORDER BY s.name`
		args = append(args, productID)
	}

	rows, err := r.DB.QueryContext(ctxTimeout, query, args...)
	if err != nil {
		return nil, apperror.NewDBError("falha ao listar lojas", err)
	}
	defer rows.Close()

	stores := make([]domain.Store, 0)
	for rows.Next() {
		var s domain.Store
		if err := rows.Scan(&s.ID, &s.Name, &s.Logo, &s.YearsWithUs, &s.Link); err != nil {
			return nil, apperror.NewDBError("falha ao mapear loja", err)
		}
		stores = append(stores, s)
	}
	return stores, rows.Err()
}

// FindStoreByID busca uma loja pelo ID.
func (r *CatalogRepository) FindStoreByID(ctx context.Context, id int) (domain.Store, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var s domain.Store
	err := r.DB.QueryRowContext(ctxTimeout,
		`SELECT id, name, logo, years_with_us, link FROM stores WHERE id = $1`, id).
		Scan(&s.ID, &s.Name, &s.Logo, &s.YearsWithUs, &s.Link)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Store{}, apperror.NewNotFoundError(fmt.Sprintf("Loja com ID %d não existe.", id))
	}
	if err != nil {
		return domain.Store{}, apperror.NewDBError("falha ao buscar loja", err)
	}
	return s, nil
}

// CreateStore insere uma nova loja parceira.
func (r *CatalogRepository) CreateStore(ctx context.Context, in domain.StoreInput) (domain.Store, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var s domain.Store
	err := r.DB.QueryRowContext(ctxTimeout,
		`INSERT INTO stores (name, years_with_us, link) VALUES ($1, $2, $3)
		 RETURNING id, name, logo, years_with_us, link`,
		in.Name, in.YearsWithUs, in.Link).
		Scan(&s.ID, &s.Name, &s.Logo, &s.YearsWithUs, &s.Link)
	if isUniqueViolation(err) {
		return domain.Store{}, apperror.NewConflictError(fmt.Sprintf("Loja '%s' já existe.", in.Name))
	}
	if err != nil {
		return domain.Store{}, apperror.NewDBError("falha ao criar loja", err)
	}
	return s, nil
}

// UpdateStoreLogo troca a URL do logo da loja e devolve a antiga, para que o
// serviço possa remover o arquivo órfão do armazenamento externo.
func (r *CatalogRepository) UpdateStoreLogo(ctx context.Context, id int, logoURL string) (oldLogo *string, err error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	err = r.DB.QueryRowContext(ctxTimeout, `SELECT logo FROM stores WHERE id = $1`, id).Scan(&oldLogo)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFoundError(fmt.Sprintf("Loja com ID %d não existe.", id))
	}
	if err != nil {
		return nil, apperror.NewDBError("falha ao buscar loja", err)
	}

	if _, err = r.DB.ExecContext(ctxTimeout, `UPDATE stores SET logo = $1 WHERE id = $2`, logoURL, id); err != nil {
		return nil, apperror.NewDBError("falha ao atualizar logo da loja", err)
	}
	return oldLogo, nil
}

// DeleteStore remove uma loja sem ofertas vinculadas.
func (r *CatalogRepository) DeleteStore(ctx context.Context, id int) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var inUse int
	err := r.DB.QueryRowContext(ctxTimeout,
		`SELECT COUNT(*) FROM store_prices WHERE store_id = $1`, id).Scan(&inUse)
	if err != nil {
		return apperror.NewDBError("falha ao verificar uso da loja", err)
	}
	if inUse > 0 {
		return apperror.NewConflictError(fmt.Sprintf("Loja com ID %d ainda tem %d oferta(s) vinculada(s).", id, inUse))
	}

	res, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM stores WHERE id = $1`, id)
	if err != nil {
		return apperror.NewDBError("falha ao remover loja", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.NewNotFoundError(fmt.Sprintf("Loja com ID %d não existe.", id))
	}
	return nil
}

// FindAllCategories retorna a árvore de categorias (plana, com parent_id).
func (r *CatalogRepository) FindAllCategories(ctx context.Context) ([]domain.Category, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	rows, err := r.DB.QueryContext(ctxTimeout,
		`SELECT id, name_ua, name_en, parent_id FROM categories ORDER BY id`)
	if err != nil {
		return nil, apperror.NewDBError("falha ao listar categorias", err)
	}
	defer rows.Close()

	categories := make([]domain.Category, 0)
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.NameUA, &c.NameEN, &c.ParentID); err != nil {
			return nil, apperror.NewDBError("falha ao mapear categoria", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// FindAllCities retorna as cidades disponíveis no mapa de lojas.
func (r *CatalogRepository) FindAllCities(ctx context.Context) ([]domain.City, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	rows, err := r.DB.QueryContext(ctxTimeout,
		`SELECT id, name_ua, name_en, latitude, longitude FROM cities ORDER BY name_ua`)
	if err != nil {
		return nil, apperror.NewDBError("falha ao listar cidades", err)
	}
	defer rows.Close()

	cities := make([]domain.City, 0)
	for rows.Next() {
		var c domain.City
		if err := rows.Scan(&c.ID, &c.NameUA, &c.NameEN, &c.Latitude, &c.Longitude); err != nil {
			return nil, apperror.NewDBError("falha ao mapear cidade", err)
		}
		cities = append(cities, c)
	}
	return cities, rows.Err()
}

// FindStoreLocations retorna localizações físicas de lojas, com filtros
// opcionais por cidade e por loja (0 = sem filtro).
func (r *CatalogRepository) FindStoreLocations(ctx context.Context, cityID, storeID int) ([]domain.StoreLocation, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT sl.id, sl.store_id, s.name, sl.city_id, ci.name_ua, sl.address,
			 sl.latitude, sl.longitude, sl.hours_mon_fri, sl.hours_sat, sl.hours_sun
		  FROM store_locations sl
		  JOIN stores s ON sl.store_id = s.id
		  JOIN cities ci ON sl.city_id = ci.id`
	conds := []string{}
	args := []interface{}{}
	if cityID > 0 {
		args = append(args, cityID)
		conds = append(conds, fmt.Sprintf("sl.city_id = $%d", len(args)))
	}
	if storeID > 0 {
		args = append(args, storeID)
		conds = append(conds, fmt.Sprintf("sl.store_id = $%d", len(args)))
	}
	for i, cond := range conds {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY sl.id"

	rows, err := r.DB.QueryContext(ctxTimeout, query, args...)
	if err != nil {
		return nil, apperror.NewDBError("falha ao listar localizações", err)
	}
	defer rows.Close()

	locations := make([]domain.StoreLocation, 0)
	for rows.Next() {
		var l domain.StoreLocation
		if err := rows.Scan(&l.ID, &l.StoreID, &l.StoreName, &l.CityID, &l.CityName, &l.Address,
			&l.Latitude, &l.Longitude, &l.HoursMonFri, &l.HoursSat, &l.HoursSun); err != nil {
			return nil, apperror.NewDBError("falha ao mapear localização", err)
		}
		locations = append(locations, l)
	}
	return locations, rows.Err()
}

// FindStoreLocationByID busca uma localização pelo ID.
func (r *CatalogRepository) FindStoreLocationByID(ctx context.Context, id int) (domain.StoreLocation, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var l domain.StoreLocation
	err := r.DB.QueryRowContext(ctxTimeout,
		`SELECT sl.id, sl.store_id, s.name, sl.city_id, ci.name_ua, sl.address,
			sl.latitude, sl.longitude, sl.hours_mon_fri, sl.hours_sat, sl.hours_sun
		 FROM store_locations sl
		 JOIN stores s ON sl.store_id = s.id
		 JOIN cities ci ON sl.city_id = ci.id
		 WHERE sl.id = $1`, id).
		Scan(&l.ID, &l.StoreID, &l.StoreName, &l.CityID, &l.CityName, &l.Address,
			&l.Latitude, &l.Longitude, &l.HoursMonFri, &l.HoursSat, &l.HoursSun)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.StoreLocation{}, apperror.NewNotFoundError(fmt.Sprintf("Localização com ID %d não existe.", id))
	}
	if err != nil {
		return domain.StoreLocation{}, apperror.NewDBError("falha ao buscar localização", err)
	}
	return l, nil
}

// CreateStoreLocation insere uma nova localização de loja.
func (r *CatalogRepository) CreateStoreLocation(ctx context.Context, in domain.StoreLocationInput) (int, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var id int
	err := r.DB.QueryRowContext(ctxTimeout,
		`INSERT INTO store_locations (store_id, city_id, address, latitude, longitude, hours_mon_fri, hours_sat, hours_sun)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		in.StoreID, in.CityID, in.Address, in.Latitude, in.Longitude,
		in.HoursMonFri, in.HoursSat, in.HoursSun).Scan(&id)
	if isForeignKeyViolation(err) {
		return 0, apperror.NewValidationError("Loja ou cidade referenciada não existe.")
	}
	if err != nil {
		return 0, apperror.NewDBError("falha ao criar localização", err)
	}
	return id, nil
}

// DeleteStoreLocation remove uma localização de loja.
func (r *CatalogRepository) DeleteStoreLocation(ctx context.Context, id int) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	res, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM store_locations WHERE id = $1`, id)
	if err != nil {
		return apperror.NewDBError("falha ao remover localização", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.NewNotFoundError(fmt.Sprintf("Localização com ID %d não existe.", id))
	}
	return nil
}

// FindFilterOptions levanta os valores disponíveis para os filtros da
// vitrine, opcionalmente restritos a categorias (name_en).
func (r *CatalogRepository) FindFilterOptions(ctx context.Context, categories []string) (domain.FilterOptions, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	opts := domain.FilterOptions{
		Brands:  make([]string, 0),
		Volumes: make([]string, 0),
		Types:   make([]string, 0),
	}

	// Escopo de categoria aplicado igualmente às quatro consultas.
	scope := ""
	args := []interface{}{}
	if len(categories) > 0 {
		scope = " AND c.name_en = ANY($1)"
		args = append(args, pq.Array(categories))
	}

	brandsQuery := `SELECT DISTINCT b.name
		FROM brands b
		JOIN products p ON p.brand_id = b.id
		JOIN categories c ON p.category_id = c.id
		WHERE b.name IS NOT NULL` + scope + ` ORDER BY b.name`
	if err := r.collectStrings(ctxTimeout, brandsQuery, args, &opts.Brands); err != nil {
		return domain.FilterOptions{}, err
	}

	volumesQuery := `SELECT DISTINCT p.volume
		FROM products p
		JOIN categories c ON p.category_id = c.id
		WHERE p.volume IS NOT NULL` + scope + ` ORDER BY p.volume`
	if err := r.collectStrings(ctxTimeout, volumesQuery, args, &opts.Volumes); err != nil {
		return domain.FilterOptions{}, err
	}

	typesQuery := `SELECT DISTINCT p.type
		FROM products p
		JOIN categories c ON p.category_id = c.id
		WHERE p.type IS NOT NULL` + scope + ` ORDER BY p.type`
	if err := r.collectStrings(ctxTimeout, typesQuery, args, &opts.Types); err != nil {
		return domain.FilterOptions{}, err
	}

	priceQuery := `SELECT COALESCE(MIN(sp.price), 0), COALESCE(MAX(sp.price), 0)
		FROM store_prices sp
		JOIN products p ON sp.product_id = p.id
		JOIN categories c ON p.category_id = c.id
		WHERE 1=1` + scope
	if err := r.DB.QueryRowContext(ctxTimeout, priceQuery, args...).
		Scan(&opts.PriceRange.Min, &opts.PriceRange.Max); err != nil {
		return domain.FilterOptions{}, apperror.NewDBError("falha ao levantar faixa de preço", err)
	}

	return opts, nil
}

// collectStrings executa uma query de coluna única e acumula no destino.
func (r *CatalogRepository) collectStrings(ctx context.Context, query string, args []interface{}, dst *[]string) error {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return apperror.NewDBError("falha ao levantar opções de filtro", err)
	}
	defer rows.Close()

	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return apperror.NewDBError("falha ao mapear opção de filtro", err)
		}
		*dst = append(*dst, v)
	}
	return rows.Err()
}

// isUniqueViolation detecta violação de unicidade do Postgres (código 23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// isForeignKeyViolation detecta violação de chave estrangeira (código 23503).
func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23503"
}
