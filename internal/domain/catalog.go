package domain

// Brand representa uma marca de produto.
type Brand struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Store representa uma loja parceira.
type Store struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Logo        *string `json:"logo"`
	YearsWithUs *int    `json:"years_with_us"`
	Link        *string `json:"link"`
}

// Category representa uma categoria de produto com nomes em dois idiomas.
type Category struct {
	ID       int    `json:"id"`
	NameUA   string `json:"name_ua"`
	NameEN   string `json:"name_en"`
	ParentID *int   `json:"parent_id"`
}

// City representa uma cidade com coordenadas para o mapa de lojas.
type City struct {
	ID        int     `json:"id"`
	NameUA    string  `json:"name_ua"`
	NameEN    string  `json:"name_en"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// StoreLocation é um ponto físico de uma loja numa cidade.
type StoreLocation struct {
	ID          int     `json:"id"`
	StoreID     int     `json:"store_id"`
	StoreName   string  `json:"store_name"`
	CityID      int     `json:"city_id"`
	CityName    string  `json:"city_name"`
	Address     string  `json:"address"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	HoursMonFri *string `json:"hours_mon_fri"`
	HoursSat    *string `json:"hours_sat"`
	HoursSun    *string `json:"hours_sun"`
}

// StoreLocationInput é o payload de criação/atualização de localização.
type StoreLocationInput struct {
	StoreID     int     `json:"store_id"`
	CityID      int     `json:"city_id"`
	Address     string  `json:"address"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	HoursMonFri *string `json:"hours_mon_fri"`
	HoursSat    *string `json:"hours_sat"`
	HoursSun    *string `json:"hours_sun"`
}

// FilterOptions lista os valores disponíveis para os filtros da vitrine,
// opcionalmente restritos a um conjunto de categorias.
type FilterOptions struct {
	Brands     []string       `json:"brands"`
	Volumes    []string       `json:"volumes"`
	Types      []string       `json:"types"`
	PriceRange PriceRangeInfo `json:"priceRange"`
}

// PriceRangeInfo é o intervalo de preços observado nas ofertas.
type PriceRangeInfo struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}
