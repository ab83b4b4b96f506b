package domain

// Product representa um item do catálogo já enriquecido com os dados das
// relações: categoria/marca (join interno), detalhes e características
// (join externo — campos nulos quando a linha não existe), imagens e ofertas.
type Product struct {
	ID              int          `json:"id"`
	Name            string       `json:"name"`
	Volume          *string      `json:"volume"`
	Type            *string      `json:"type"`
	Rating          *float64     `json:"rating"`
	Views           int          `json:"views"`
	Code            *string      `json:"code"`
	CategoryID      string       `json:"category_id"`   // chave neutra de localidade (name_en)
	CategoryName    string       `json:"category_name"` // nome localizado (name_ua)
	BrandName       string       `json:"brand_name"`
	Description     *string      `json:"description"`
	DescriptionFull *string      `json:"description_full"`
	Composition     *string      `json:"composition"`
	Usage           *string      `json:"usage"`
	Images          []string     `json:"images"`       // nunca nil na resposta
	StorePrices     []StorePrice `json:"store_prices"` // nunca nil na resposta
	Features        Features     `json:"features"`
}

// Features é o saco de atributos denormalizado de um produto,
// montado a partir das colunas planas de product_features mais a descrição.
type Features struct {
	Brand             *string `json:"brand"`
	Country           *string `json:"country"`
	Type              *string `json:"type"`
	Class             *string `json:"class"`
	Category          *string `json:"category"`
	Purpose           *string `json:"purpose"`
	Gender            *string `json:"gender"`
	ActiveIngredients *string `json:"active_ingredients"`
	Description       *string `json:"description"`
}

// StorePrice é uma oferta de loja para um produto.
type StorePrice struct {
	StoreID     int     `json:"store_id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Logo        *string `json:"logo"`
	YearsWithUs *int    `json:"yearsWithUs"`
	Delivery    string  `json:"delivery"`
	Link        *string `json:"link"`
}

// ProductListing é o envelope de resposta do GET /products.
// GroupedResults fica vazio fora do modo busca/categoria.
type ProductListing struct {
	Products       []Product       `json:"products"`
	Total          int             `json:"total"`
	GroupedResults []CategoryGroup `json:"groupedResults"`
}

// CategoryGroup agrupa os produtos de uma listagem por categoria.
type CategoryGroup struct {
	Category string        `json:"category"`
	Products []ProductStub `json:"products"`
	Count    int           `json:"count"`
}

// ProductStub é a versão mínima de um produto dentro de um grupo.
type ProductStub struct {
	ID    int          `json:"id"`
	Name  string       `json:"name"`
	Specs ProductSpecs `json:"specs"`
}

// ProductSpecs carrega as especificações mínimas exibidas no agrupamento.
type ProductSpecs struct {
	Volume string `json:"volume"`
}
