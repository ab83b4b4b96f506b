// Package respond concentra a escrita de respostas HTTP: o envelope JSON de
// sucesso e a tradução de erros de domínio para status/categoria/mensagem.
package respond

import (
	"encoding/json"
	"net/http"

	"cosmetick/internal/domain"
	apperror "cosmetick/internal/errors"
)

// JSON envia o corpo serializado com o status informado.
func JSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		json.NewEncoder(w).Encode(body)
	}
}

// Error traduz um erro (tipado ou não) para o envelope padronizado de erro.
// Erros não tipados viram 500 genérico: detalhes internos nunca vazam.
func Error(w http.ResponseWriter, err error) {
	status, category, message := apperror.MapToHTTPStatus(err)
	JSON(w, status, domain.ErrorResponse{
		Code:     status,
		Category: category,
		Message:  message,
	})
}
