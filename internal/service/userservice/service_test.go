package userservice_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"cosmetick/internal/domain"
	apperror "cosmetick/internal/errors"
	"cosmetick/internal/pkg/logger"
	"cosmetick/internal/pkg/token"
	"cosmetick/internal/service/userservice"
)

// MockUserRepository é uma implementação mock da interface UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Save(ctx context.Context, u domain.User) (domain.User, error) {
	args := m.Called(ctx, u)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockUserRepository) FindByIdentifier(ctx context.Context, identifier string) (domain.User, error) {
	args := m.Called(ctx, identifier)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id int) (domain.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, id int, in domain.ProfileUpdate) (domain.User, error) {
	args := m.Called(ctx, id, in)
	return args.Get(0).(domain.User), args.Error(1)
}

func newService(repo *MockUserRepository) *userservice.UserService {
	tokenSvc := token.NewService("segredo-de-teste", time.Hour)
	return userservice.NewUserService(repo, tokenSvc, logger.NewLogger("debug"))
}

// TestRegister_Success testa o registro: a senha vira hash bcrypt e a sessão
// sai com token.
func TestRegister_Success(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := newService(mockRepo)

	mockRepo.On("Save", mock.Anything, mock.MatchedBy(func(u domain.User) bool {
		// A senha nunca é gravada em texto plano.
		return u.Nickname == "maria" &&
			u.PasswordHash != "senha123" &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("senha123")) == nil
	})).Return(domain.User{ID: 1, Nickname: "maria", Email: "maria@exemplo.com"}, nil)

	result, err := svc.Register(context.Background(), domain.UserRegistration{
		Nickname: "maria",
		Email:    "maria@exemplo.com",
		Password: "senha123",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, 1, result.User.ID)
	mockRepo.AssertExpectations(t)
}

// TestRegister_MissingFields testa a validação dos campos obrigatórios.
func TestRegister_MissingFields(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := newService(mockRepo)

	cases := []domain.UserRegistration{
		{Email: "a@b.c", Password: "x"},
		{Nickname: "maria", Password: "x"},
		{Nickname: "maria", Email: "a@b.c"},
	}
	for _, in := range cases {
		_, err := svc.Register(context.Background(), in)
		assert.Error(t, err)
		assert.IsType(t, &apperror.ValidationError{}, err)
	}
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// TestRegister_Conflict testa que nickname/email duplicado sobe como 409.
func TestRegister_Conflict(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := newService(mockRepo)

	mockRepo.On("Save", mock.Anything, mock.Anything).
		Return(domain.User{}, apperror.NewConflictError("Nickname ou email já cadastrado."))

	_, err := svc.Register(context.Background(), domain.UserRegistration{
		Nickname: "maria", Email: "maria@exemplo.com", Password: "senha123",
	})

	assert.Error(t, err)
	assert.IsType(t, &apperror.ConflictError{}, err)
}

// TestLogin_Success testa o login por identificador com senha correta.
func TestLogin_Success(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := newService(mockRepo)

	hash, _ := bcrypt.GenerateFromPassword([]byte("senha123"), 10)
	mockRepo.On("FindByIdentifier", mock.Anything, "maria").
		Return(domain.User{ID: 1, Nickname: "maria", PasswordHash: string(hash), IsAdmin: true}, nil)

	result, err := svc.Login(context.Background(), "maria", "senha123")

	assert.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.True(t, result.User.IsAdmin)
	mockRepo.AssertExpectations(t)
}

// TestLogin_WrongPassword testa que senha errada vira 401.
func TestLogin_WrongPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := newService(mockRepo)

	hash, _ := bcrypt.GenerateFromPassword([]byte("senha123"), 10)
	mockRepo.On("FindByIdentifier", mock.Anything, "maria").
		Return(domain.User{ID: 1, PasswordHash: string(hash)}, nil)

	_, err := svc.Login(context.Background(), "maria", "senha-errada")

	assert.Error(t, err)
	assert.IsType(t, &apperror.UnauthorizedError{}, err)
}

// TestLogin_UnknownUser testa que usuário inexistente também vira 401: a
// resposta não revela se o identificador existe.
func TestLogin_UnknownUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := newService(mockRepo)

	mockRepo.On("FindByIdentifier", mock.Anything, "fantasma").
		Return(domain.User{}, apperror.NewNotFoundError("Usuário não encontrado."))

	_, err := svc.Login(context.Background(), "fantasma", "qualquer")

	assert.Error(t, err)
	assert.IsType(t, &apperror.UnauthorizedError{}, err)
}
