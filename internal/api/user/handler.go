package user

import (
	"context"
	"encoding/json"
	"net/http"

	"cosmetick/internal/api/respond"
	"cosmetick/internal/domain"
	apperror "cosmetick/internal/errors"
	"cosmetick/internal/pkg/logger"
	"cosmetick/internal/pkg/middleware"
)

// UserService define o contrato do serviço consumido por este handler.
type UserService interface {
	Register(ctx context.Context, in domain.UserRegistration) (domain.AuthResult, error)
	Login(ctx context.Context, identifier, password string) (domain.AuthResult, error)
	Profile(ctx context.Context, userID int) (domain.User, error)
	UpdateProfile(ctx context.Context, userID int, in domain.ProfileUpdate) (domain.User, error)
}

// Handler atende registro, login e perfil.
type Handler struct {
	Service UserService
	logger  logger.Logger
}

// NewHandler cria e retorna uma nova instância do Handler.
func NewHandler(service UserService, log logger.Logger) *Handler {
	return &Handler{Service: service, logger: log}
}

// Register atende POST /register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var in domain.UserRegistration
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.Error(w, apperror.NewValidationError("Corpo da requisição malformado."))
		return
	}

	result, err := h.Service.Register(r.Context(), in)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, result)
}

// loginPayload aceita o identificador de login por nickname ou email.
type loginPayload struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// Login atende POST /login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var in loginPayload
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.Error(w, apperror.NewValidationError("Corpo da requisição malformado."))
		return
	}

	result, err := h.Service.Login(r.Context(), in.Identifier, in.Password)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, result)
}

// Profile atende GET /profile (autenticado).
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserClaimsFromContext(r.Context())
	if !ok {
		respond.Error(w, apperror.NewUnauthorizedError("Autorização necessária."))
		return
	}

	user, err := h.Service.Profile(r.Context(), claims.UserID)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, user)
}

// UpdateProfile atende POST /update-user (autenticado): atualização parcial.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserClaimsFromContext(r.Context())
	if !ok {
		respond.Error(w, apperror.NewUnauthorizedError("Autorização necessária."))
		return
	}

	var in domain.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.Error(w, apperror.NewValidationError("Corpo da requisição malformado."))
		return
	}

	user, err := h.Service.UpdateProfile(r.Context(), claims.UserID, in)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, user)
}
