package wishlistrepo

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

// WishlistRepository concentra o acesso a dados da lista de desejos:
// produtos salvos e categorias pessoais de cada usuário.
type WishlistRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewWishlistRepository cria e retorna uma nova instância do Repositório.
func NewWishlistRepository(db *sql.DB, dbTimeout time.Duration, log logger.Logger) *WishlistRepository {
	return &WishlistRepository{DB: db, DBTimeout: dbTimeout, logger: log}
}

// FindSavedProducts lista os produtos salvos do usuário.
func (r *WishlistRepository) FindSavedProducts(ctx context.Context, userID int) ([]domain.SavedProduct, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	rows, err := r.DB.QueryContext(ctxTimeout,
		`SELECT product_id, saved_category_id FROM saved_products WHERE user_id = $1 ORDER BY product_id`, userID)
	if err != nil {
		return nil, apperror.NewDBError("falha ao listar produtos salvos", err)
	}
	defer rows.Close()

	saved := make([]domain.SavedProduct, 0)
	for rows.Next() {
		var sp domain.SavedProduct
		if err := rows.Scan(&sp.ProductID, &sp.SavedCategoryID); err != nil {
			return nil, apperror.NewDBError("falha ao mapear produto salvo", err)
		}
		saved = append(saved, sp)
	}
	return saved, rows.Err()
}

// IsSaved informa se um produto está na lista do usuário.
func (r *WishlistRepository) IsSaved(ctx context.Context, userID, productID int) (bool, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var found int
	err := r.DB.QueryRowContext(ctxTimeout,
		`SELECT 1 FROM saved_products WHERE user_id = $1 AND product_id = $2`, userID, productID).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, apperror.NewDBError("falha ao verificar produto salvo", err)
	}
	return true, nil
}

// SaveProduct adiciona um produto à lista. Salvar de novo é idempotente.
func (r *WishlistRepository) SaveProduct(ctx context.Context, userID, productID int, savedCategoryID *int) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	_, err := r.DB.ExecContext(ctxTimeout,
		`INSERT INTO saved_products (user_id, product_id, saved_category_id)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, product_id) DO NOTHING`,
		userID, productID, savedCategoryID)
	if isForeignKeyViolation(err) {
		return apperror.NewValidationError(fmt.Sprintf("Produto com ID %d não existe.", productID))
	}
	if err != nil {
		return apperror.NewDBError("falha ao salvar produto", err)
	}
	return nil
}

// SaveProducts adiciona vários produtos de uma vez (sincronização da lista
// local do frontend após o login).
func (r *WishlistRepository) SaveProducts(ctx context.Context, userID int, productIDs []int) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	_, err := r.DB.ExecContext(ctxTimeout,
		`INSERT INTO saved_products (user_id, product_id)
		 SELECT $1, unnest($2::int[])
		 ON CONFLICT (user_id, product_id) DO NOTHING`,
		userID, pq.Array(productIDs))
	if isForeignKeyViolation(err) {
		return apperror.NewValidationError("A lista contém produto inexistente.")
	}
	if err != nil {
		return apperror.NewDBError("falha ao salvar produtos em lote", err)
	}
	return nil
}

// RemoveProduct tira um produto da lista do usuário.
func (r *WishlistRepository) RemoveProduct(ctx context.Context, userID, productID int) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	res, err := r.DB.ExecContext(ctxTimeout,
		`DELETE FROM saved_products WHERE user_id = $1 AND product_id = $2`, userID, productID)
	if err != nil {
		return apperror.NewDBError("falha ao remover produto salvo", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.NewNotFoundError(fmt.Sprintf("Produto com ID %d não está na lista.", productID))
	}
	return nil
}

// AssignCategory vincula um produto salvo a uma categoria pessoal
// (ou desvincula, quando nil).
func (r *WishlistRepository) AssignCategory(ctx context.Context, userID, productID int, savedCategoryID *int) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	res, err := r.DB.ExecContext(ctxTimeout,
		`UPDATE saved_products SET saved_category_id = $1 WHERE user_id = $2 AND product_id = $3`,
		savedCategoryID, userID, productID)
	if isForeignKeyViolation(err) {
		return apperror.NewValidationError("Categoria pessoal referenciada não existe.")
	}
	if err != nil {
		return apperror.NewDBError("falha ao vincular categoria", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.NewNotFoundError(fmt.Sprintf("Produto com ID %d não está na lista.", productID))
	}
	return nil
}

// FindCategories lista as categorias pessoais do usuário.
func (r *WishlistRepository) FindCategories(ctx context.Context, userID int) ([]domain.SavedCategory, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	rows, err := r.DB.QueryContext(ctxTimeout,
		`SELECT id, name, created_at FROM saved_categories WHERE user_id = $1 ORDER BY created_at`, userID)
	if err != nil {
		return nil, apperror.NewDBError("falha ao listar categorias pessoais", err)
	}
	defer rows.Close()

	categories := make([]domain.SavedCategory, 0)
	for rows.Next() {
		var c domain.SavedCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, apperror.NewDBError("falha ao mapear categoria pessoal", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// CreateCategory cria uma categoria pessoal para o usuário.
func (r *WishlistRepository) CreateCategory(ctx context.Context, userID int, name string) (domain.SavedCategory, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var c domain.SavedCategory
	err := r.DB.QueryRowContext(ctxTimeout,
		`INSERT INTO saved_categories (user_id, name) VALUES ($1, $2)
		 RETURNING id, name, created_at`, userID, name).
		Scan(&c.ID, &c.Name, &c.CreatedAt)
	if isUniqueViolation(err) {
		return domain.SavedCategory{}, apperror.NewConflictError(fmt.Sprintf("Categoria '%s' já existe.", name))
	}
	if err != nil {
		return domain.SavedCategory{}, apperror.NewDBError("falha ao criar categoria pessoal", err)
	}
	return c, nil
}

// RenameCategory renomeia uma categoria pessoal. A cláusula user_id garante
// que um usuário não altera categoria de outro.
func (r *WishlistRepository) RenameCategory(ctx context.Context, userID, categoryID int, name string) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	res, err := r.DB.ExecContext(ctxTimeout,
		`UPDATE saved_categories SET name = $1 WHERE id = $2 AND user_id = $3`,
		name, categoryID, userID)
	if isUniqueViolation(err) {
		return apperror.NewConflictError(fmt.Sprintf("Categoria '%s' já existe.", name))
	}
	if err != nil {
		return apperror.NewDBError("falha ao renomear categoria pessoal", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.NewNotFoundError(fmt.Sprintf("Categoria com ID %d não existe.", categoryID))
	}
	return nil
}

// DeleteCategory remove uma categoria pessoal; os produtos salvos voltam a
// ficar sem categoria antes da remoção.
func (r *WishlistRepository) DeleteCategory(ctx context.Context, userID, categoryID int) (err error) {
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

	if _, err = tx.ExecContext(ctxTimeout,
		`UPDATE saved_products SET saved_category_id = NULL
		 WHERE user_id = $1 AND saved_category_id = $2`, userID, categoryID); err != nil {
		return apperror.NewDBError("falha ao desvincular produtos salvos", err)
	}

	res, err := tx.ExecContext(ctxTimeout,
		`DELETE FROM saved_categories WHERE id = $1 AND user_id = $2`, categoryID, userID)
	if err != nil {
		return apperror.NewDBError("falha ao remover categoria pessoal", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = apperror.NewNotFoundError(fmt.Sprintf("Categoria com ID %d não existe.", categoryID))
		return err
	}

	if err = tx.Commit(); err != nil {
		return apperror.NewDBError("falha ao commitar transação", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23503"
}
