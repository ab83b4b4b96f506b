package token_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"cosmetick/internal/pkg/token"
)

// TestGenerateAndValidateToken testa o ciclo completo: gerar e validar.
func TestGenerateAndValidateToken(t *testing.T) {
	svc := token.NewService("segredo-de-teste", time.Hour)

	tokenString, err := svc.GenerateToken(42, "maria", true)
	assert.NoError(t, err)
	assert.NotEmpty(t, tokenString)

	claims, err := svc.ValidateToken(tokenString)
	assert.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "maria", claims.Nickname)
	assert.True(t, claims.IsAdmin)
	assert.Equal(t, "Cosmetick-API", claims.Issuer)
}

// TestValidateToken_WrongSecret testa a rejeição de token assinado com outro
// segredo.
func TestValidateToken_WrongSecret(t *testing.T) {
	svc := token.NewService("segredo-a", time.Hour)
	outro := token.NewService("segredo-b", time.Hour)

	tokenString, err := svc.GenerateToken(1, "maria", false)
	assert.NoError(t, err)

	_, err = outro.ValidateToken(tokenString)
	assert.Error(t, err)
}

// TestValidateToken_Expired testa a rejeição de token expirado.
func TestValidateToken_Expired(t *testing.T) {
	svc := token.NewService("segredo-de-teste", -time.Minute)

	tokenString, err := svc.GenerateToken(1, "maria", false)
	assert.NoError(t, err)

	_, err = svc.ValidateToken(tokenString)
	assert.Error(t, err)
}

// TestValidateToken_Garbage testa a rejeição de lixo no lugar do token.
func TestValidateToken_Garbage(t *testing.T) {
	svc := token.NewService("segredo-de-teste", time.Hour)

	_, err := svc.ValidateToken("nao-e-um-jwt")
	assert.Error(t, err)
}
