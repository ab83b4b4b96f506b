package productservice

import (
	"sort"

	"cosmetick/internal/domain"
)

// Volume exibido quando o produto não tem o campo preenchido.
const volumeFallback = "Н/Д"

// groupByCategory monta o resumo agrupado do modo busca/categoria: um grupo
// por categoria (chave neutra de localidade), com os stubs dos produtos e a
// contagem. Grupos maiores primeiro; empates preservam a ordem de primeira
// aparição.
func groupByCategory(products []domain.Product) []domain.CategoryGroup {
	index := make(map[string]int)
	groups := make([]domain.CategoryGroup, 0)

	for _, p := range products {
		i, ok := index[p.CategoryID]
		if !ok {
			i = len(groups)
			index[p.CategoryID] = i
			groups = append(groups, domain.CategoryGroup{Category: p.CategoryID, Products: make([]domain.ProductStub, 0)})
		}

		volume := volumeFallback
		if p.Volume != nil && *p.Volume != "" {
			volume = *p.Volume
		}

		groups[i].Products = append(groups[i].Products, domain.ProductStub{
			ID:    p.ID,
			Name:  p.Name,
			Specs: domain.ProductSpecs{Volume: volume},
		})
		groups[i].Count++
	}

	sort.SliceStable(groups, func(a, b int) bool {
		return groups[a].Count > groups[b].Count
	})

	return groups
}
