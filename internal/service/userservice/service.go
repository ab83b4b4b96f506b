package userservice

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"cosmetick/internal/domain"
	apperror "cosmetick/internal/errors"
	"cosmetick/internal/pkg/logger"
	"cosmetick/internal/pkg/token"
)

// Custo do bcrypt usado no hash de senhas.
const bcryptCost = 10

// UserRepository define o contrato da camada de persistência de usuários.
type UserRepository interface {
	Save(ctx context.Context, u domain.User) (domain.User, error)
	FindByIdentifier(ctx context.Context, identifier string) (domain.User, error)
	FindByID(ctx context.Context, id int) (domain.User, error)
	UpdateProfile(ctx context.Context, id int, in domain.ProfileUpdate) (domain.User, error)
}

// UserService orquestra registro, login e perfil.
type UserService struct {
	Repo     UserRepository
	TokenSvc token.TokenService
	logger   logger.Logger
}

// NewUserService cria e retorna uma nova instância do Serviço.
func NewUserService(repo UserRepository, tokenSvc token.TokenService, log logger.Logger) *UserService {
	return &UserService{Repo: repo, TokenSvc: tokenSvc, logger: log}
}

// Register valida o cadastro, gera o hash da senha e emite o JWT da sessão.
// Nickname/email duplicado sobe como conflito direto do repositório.
func (s *UserService) Register(ctx context.Context, in domain.UserRegistration) (domain.AuthResult, error) {
	if strings.TrimSpace(in.Nickname) == "" {
		return domain.AuthResult{}, apperror.NewValidationError("nickname é obrigatório.")
	}
	if strings.TrimSpace(in.Email) == "" {
		return domain.AuthResult{}, apperror.NewValidationError("email é obrigatório.")
	}
	if in.Password == "" {
		return domain.AuthResult{}, apperror.NewValidationError("password é obrigatório.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return domain.AuthResult{}, apperror.NewInternalError("falha ao gerar hash de senha", err)
	}

	user, err := s.Repo.Save(ctx, domain.User{
		Nickname:     in.Nickname,
		Email:        in.Email,
		PasswordHash: string(hash),
		Photo:        in.Photo,
		Gender:       in.Gender,
		BirthDate:    in.BirthDate,
	})
	if err != nil {
		return domain.AuthResult{}, err
	}

	return s.issueSession(user)
}

// Login autentica por nickname ou email. Usuário inexistente e senha errada
// produzem a mesma resposta 401, sem revelar qual dos dois falhou.
func (s *UserService) Login(ctx context.Context, identifier, password string) (domain.AuthResult, error) {
	if identifier == "" || password == "" {
		return domain.AuthResult{}, apperror.NewValidationError("identifier e password são obrigatórios.")
	}

	user, err := s.Repo.FindByIdentifier(ctx, identifier)
	if err != nil {
		if _, ok := err.(*apperror.NotFoundError); ok {
			return domain.AuthResult{}, apperror.NewUnauthorizedError("Credenciais inválidas.")
		}
		return domain.AuthResult{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return domain.AuthResult{}, apperror.NewUnauthorizedError("Credenciais inválidas.")
	}

	return s.issueSession(user)
}

// Profile retorna os dados do usuário autenticado.
func (s *UserService) Profile(ctx context.Context, userID int) (domain.User, error) {
	return s.Repo.FindByID(ctx, userID)
}

// UpdateProfile aplica a atualização parcial de perfil.
func (s *UserService) UpdateProfile(ctx context.Context, userID int, in domain.ProfileUpdate) (domain.User, error) {
	if in.Email != nil && strings.TrimSpace(*in.Email) == "" {
		return domain.User{}, apperror.NewValidationError("email não pode ficar vazio.")
	}
	return s.Repo.UpdateProfile(ctx, userID, in)
}

func (s *UserService) issueSession(user domain.User) (domain.AuthResult, error) {
	tokenString, err := s.TokenSvc.GenerateToken(user.ID, user.Nickname, user.IsAdmin)
	if err != nil {
		return domain.AuthResult{}, apperror.NewInternalError("falha ao emitir token", err)
	}
	return domain.AuthResult{Token: tokenString, User: user}, nil
}
