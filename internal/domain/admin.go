package domain

// ProductInput é o payload administrativo de criação/atualização de produto.
// Features segue o mesmo formato do saco de atributos lido nas listagens;
// o campo type do produto é preenchido a partir de Features.Type.
type ProductInput struct {
	CategoryID      int
	BrandID         int
	Name            string
	Volume          *string
	Code            *string
	Description     *string
	Composition     *string
	Usage           *string
	DescriptionFull *string
	Features        Features
	HasFeatures     bool // false: nenhuma linha de product_features é gravada
	StorePrices     []StorePriceInput
	ExistingImages  []string // apenas no update: URLs mantidas pelo cliente
}

// StorePriceInput é uma oferta de loja no payload administrativo.
type StorePriceInput struct {
	StoreID int     `json:"store_id"`
	Price   float64 `json:"price"`
	Link    *string `json:"link"`
}

// StoreInput é o payload administrativo de criação/atualização de loja.
type StoreInput struct {
	Name        string
	YearsWithUs *int
	Link        *string
}
