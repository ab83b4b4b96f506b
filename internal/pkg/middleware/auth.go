package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"cosmetick/internal/domain"
	apperror "cosmetick/internal/errors"
	"cosmetick/internal/pkg/token"
)

// ContextKey é um tipo próprio para a chave de contexto das claims, evitando
// colisão com chaves string de outros pacotes.
type ContextKey int

const (
	UserClaimsKey ContextKey = iota
)

// UserClaims representa os dados do usuário extraídos do token JWT,
// anexados ao contexto da requisição.
type UserClaims struct {
	UserID   int
	Nickname string
	IsAdmin  bool
}

// TokenService define o contrato de validação necessário para o middleware.
type TokenService interface {
	ValidateToken(tokenString string) (*token.CustomClaims, error)
}

// writeError envia o envelope de erro padronizado da API.
func writeError(w http.ResponseWriter, err apperror.AppError) {
	status, category, message := apperror.MapToHTTPStatus(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(domain.ErrorResponse{
		Code:     status,
		Category: category,
		Message:  message,
	})
}

// NewAuthMiddleware cria um middleware que valida o JWT do header
// Authorization: Bearer <token> e anexa as claims ao contexto.
func NewAuthMiddleware(tokenSvc TokenService) func(next http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if len(authHeader) < 8 || authHeader[:7] != "Bearer " {
				writeError(w, apperror.NewUnauthorizedError("Token de autorização ausente ou malformado."))
				return
			}

			claims, err := tokenSvc.ValidateToken(authHeader[7:])
			if err != nil {
				writeError(w, apperror.NewUnauthorizedError("Token inválido ou expirado."))
				return
			}

			userClaims := UserClaims{
				UserID:   claims.UserID,
				Nickname: claims.Nickname,
				IsAdmin:  claims.IsAdmin,
			}

			ctx := context.WithValue(r.Context(), UserClaimsKey, userClaims)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
	}
}

// GetUserClaimsFromContext extrai as claims no handler.
func GetUserClaimsFromContext(ctx context.Context) (UserClaims, bool) {
	claims, ok := ctx.Value(UserClaimsKey).(UserClaims)
	return claims, ok
}

// AdminOnly bloqueia a rota para usuários sem o flag de administrador.
// Deve ser aplicado depois do NewAuthMiddleware.
func AdminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := GetUserClaimsFromContext(r.Context())
		if !ok {
			writeError(w, apperror.NewUnauthorizedError("Autorização necessária. Token não processado."))
			return
		}

		if !claims.IsAdmin {
			writeError(w, apperror.NewForbiddenError("Acesso permitido apenas a administradores."))
			return
		}

		next.ServeHTTP(w, r)
	}
}
