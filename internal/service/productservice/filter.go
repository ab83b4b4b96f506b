package productservice

import (
	"strconv"
	"strings"

	"cosmetick/internal/domain"
	apperror "cosmetick/internal/errors"
)

// ParseListQuery valida os parâmetros crus do GET /products e produz o filtro
// que alimenta o compilador de predicados. Qualquer parâmetro malformado
// interrompe aqui, antes de tocar o banco.
func ParseListQuery(q domain.ProductListQuery, defaultLimit int) (domain.ProductFilter, error) {
	f := domain.ProductFilter{
		Search: strings.TrimSpace(q.Search),
		Page:   1,
		Limit:  defaultLimit,
	}

	// Listas separadas por vírgula chegam como o frontend monta: sem trim
	// por elemento.
	f.Categories = splitList(q.Category)
	f.Brands = splitList(q.Brands)
	f.Volumes = splitList(q.Volumes)
	f.Types = splitList(q.Types)

	// priceFrom/priceTo andam em par: metade do par é erro do cliente.
	switch {
	case q.PriceFrom != "" && q.PriceTo != "":
		from, err := strconv.ParseFloat(q.PriceFrom, 64)
		if err != nil {
			return domain.ProductFilter{}, apperror.NewValidationError("priceFrom deve ser numérico.")
		}
		to, err := strconv.ParseFloat(q.PriceTo, 64)
		if err != nil {
			return domain.ProductFilter{}, apperror.NewValidationError("priceTo deve ser numérico.")
		}
		f.PriceFrom = &from
		f.PriceTo = &to

	case q.PriceFrom != "" || q.PriceTo != "":
		return domain.ProductFilter{}, apperror.NewValidationError("priceFrom e priceTo devem ser informados juntos.")

	case q.PriceRanges != "":
		// Faixas só entram na ausência do par: o par tem precedência.
		ranges, err := parsePriceRanges(q.PriceRanges)
		if err != nil {
			return domain.ProductFilter{}, err
		}
		f.PriceRanges = ranges
	}

	f.Random = q.Random == "true"
	f.HasRating = q.HasRating == "true"

	if q.Page != "" {
		page, err := strconv.Atoi(q.Page)
		if err != nil || page < 1 {
			return domain.ProductFilter{}, apperror.NewValidationError("page deve ser um inteiro positivo.")
		}
		f.Page = page
	}

	if q.Limit != "" {
		if q.Limit == "all" {
			f.AllItems = true
		} else {
			limit, err := strconv.Atoi(q.Limit)
			if err != nil || limit < 1 {
				return domain.ProductFilter{}, apperror.NewValidationError("limit deve ser 'all' ou um inteiro positivo.")
			}
			f.Limit = limit
		}
	}

	return f, nil
}

// splitList separa uma lista por vírgula. Vazio vira nil, não [""].
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	return strings.Split(raw, ",")
}

// Piso fixo das faixas abertas: "<min>+" vira sempre preço >= 1000,
// independente do valor enviado.
const openEndedFloor = 1000

// parsePriceRanges interpreta as faixas "min-max" e "min+" (sem teto).
func parsePriceRanges(raw string) ([]domain.PriceRange, error) {
	elements := strings.Split(raw, ",")
	ranges := make([]domain.PriceRange, 0, len(elements))

	for _, el := range elements {
		if strings.HasSuffix(el, "+") {
			if _, err := strconv.ParseFloat(strings.TrimSuffix(el, "+"), 64); err != nil {
				return nil, apperror.NewValidationError("priceRanges contém faixa malformada: " + el)
			}
			ranges = append(ranges, domain.PriceRange{Min: openEndedFloor, OpenEnded: true})
			continue
		}

		parts := strings.Split(el, "-")
		if len(parts) != 2 {
			return nil, apperror.NewValidationError("priceRanges contém faixa malformada: " + el)
		}
		min, errMin := strconv.ParseFloat(parts[0], 64)
		max, errMax := strconv.ParseFloat(parts[1], 64)
		if errMin != nil || errMax != nil {
			return nil, apperror.NewValidationError("priceRanges contém faixa malformada: " + el)
		}
		ranges = append(ranges, domain.PriceRange{Min: min, Max: max})
	}

	return ranges, nil
}
