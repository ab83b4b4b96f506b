package domain

// ProductListQuery carrega os parâmetros crus do GET /products, exatamente
// como chegaram na query string. A validação e o parsing acontecem na camada
// de serviço, antes de qualquer execução de SQL.
type ProductListQuery struct {
	Search      string
	Category    string
	Brands      string
	PriceFrom   string
	PriceTo     string
	PriceRanges string
	Volumes     string
	Types       string
	Random      string
	HasRating   string
	Page        string
	Limit       string
}

// PriceRange é uma faixa de preço já validada. OpenEnded indica a forma
// "<min>+": sem teto, com o piso normalizado.
type PriceRange struct {
	Min       float64
	Max       float64
	OpenEnded bool
}

// ProductFilter é o filtro já validado que alimenta o compilador de predicados.
// Invariante: PriceFrom/PriceTo e PriceRanges são mutuamente exclusivos
// (o par tem precedência; o parser descarta as faixas quando ambos chegam).
type ProductFilter struct {
	Search      string
	Categories  []string
	Brands      []string
	PriceFrom   *float64
	PriceTo     *float64
	PriceRanges []PriceRange
	Volumes     []string
	Types       []string
	HasRating   bool
	Random      bool
	Page        int
	Limit       int
	AllItems    bool // limit == "all": sem LIMIT/OFFSET
}

// SearchMode informa se a listagem está no modo busca/categoria:
// sem paginação, ordenada por id, com resumo agrupado por categoria.
func (f ProductFilter) SearchMode() bool {
	return f.Search != "" || len(f.Categories) > 0
}
