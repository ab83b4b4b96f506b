package domain

import "time"

// SavedProduct é um item da lista de desejos de um usuário.
type SavedProduct struct {
	ProductID       int  `json:"product_id"`
	SavedCategoryID *int `json:"saved_category_id"`
}

// SavedCategory é uma categoria pessoal criada pelo usuário para
// organizar a lista de desejos.
type SavedCategory struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
