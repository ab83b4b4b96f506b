package userrepo

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

// UserRepository concentra o acesso a dados de usuários.
type UserRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewUserRepository cria e retorna uma nova instância do Repositório.
func NewUserRepository(db *sql.DB, dbTimeout time.Duration, log logger.Logger) *UserRepository {
	return &UserRepository{DB: db, DBTimeout: dbTimeout, logger: log}
}

// Save insere um novo usuário e retorna a entidade com o ID gerado.
// Nickname ou email duplicado vira conflito (violação de unicidade 23505).
func (r *UserRepository) Save(ctx context.Context, u domain.User) (domain.User, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	err := r.DB.QueryRowContext(ctxTimeout,
		`INSERT INTO users (nickname, email, password_hash, photo, gender, birth_date, is_admin)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		u.Nickname, u.Email, u.PasswordHash, u.Photo, u.Gender, u.BirthDate, u.IsAdmin,
	).Scan(&u.ID)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return domain.User{}, apperror.NewConflictError("Nickname ou email já cadastrado.")
	}
	if err != nil {
		r.logger.Error("Falha ao inserir usuário no DB.", err)
		return domain.User{}, apperror.NewDBError("falha ao salvar usuário", err)
	}

	return u, nil
}

// FindByIdentifier busca um usuário por nickname OU email (o mesmo campo de
// login aceita os dois).
func (r *UserRepository) FindByIdentifier(ctx context.Context, identifier string) (domain.User, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var u domain.User
	err := r.DB.QueryRowContext(ctxTimeout,
		`SELECT id, nickname, email, password_hash, photo, gender, birth_date, is_admin
		 FROM users
		 WHERE nickname = $1 OR email = $1`, identifier).
		Scan(&u.ID, &u.Nickname, &u.Email, &u.PasswordHash, &u.Photo, &u.Gender, &u.BirthDate, &u.IsAdmin)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, apperror.NewNotFoundError("Usuário não encontrado.")
	}
	if err != nil {
		return domain.User{}, apperror.NewDBError("falha ao buscar usuário", err)
	}
	return u, nil
}

// FindByID busca um usuário pelo ID.
func (r *UserRepository) FindByID(ctx context.Context, id int) (domain.User, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var u domain.User
	err := r.DB.QueryRowContext(ctxTimeout,
		`SELECT id, nickname, email, password_hash, photo, gender, birth_date, is_admin
		 FROM users
		 WHERE id = $1`, id).
		Scan(&u.ID, &u.Nickname, &u.Email, &u.PasswordHash, &u.Photo, &u.Gender, &u.BirthDate, &u.IsAdmin)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, apperror.NewNotFoundError(fmt.Sprintf("Usuário com ID %d não existe.", id))
	}
	if err != nil {
		return domain.User{}, apperror.NewDBError("falha ao buscar usuário", err)
	}
	return u, nil
}

// UpdateProfile aplica uma atualização parcial de perfil: apenas os campos
// presentes no payload são regravados (COALESCE mantém os demais).
func (r *UserRepository) UpdateProfile(ctx context.Context, id int, in domain.ProfileUpdate) (domain.User, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var u domain.User
	err := r.DB.QueryRowContext(ctxTimeout,
		`UPDATE users
		 SET email = COALESCE($1, email),
		     gender = COALESCE($2, gender),
		     birth_date = COALESCE($3, birth_date)
		 WHERE id = $4
		 RETURNING id, nickname, email, password_hash, photo, gender, birth_date, is_admin`,
		in.Email, in.Gender, in.BirthDate, id).
		Scan(&u.ID, &u.Nickname, &u.Email, &u.PasswordHash, &u.Photo, &u.Gender, &u.BirthDate, &u.IsAdmin)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, apperror.NewNotFoundError(fmt.Sprintf("Usuário com ID %d não existe.", id))
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return domain.User{}, apperror.NewConflictError("Email já cadastrado por outro usuário.")
	}
	if err != nil {
		return domain.User{}, apperror.NewDBError("falha ao atualizar perfil", err)
	}
	return u, nil
}
