package productrepo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"cosmetick/internal/domain"
)

const testMarker = "placeholder.webp"

// TestCompilePredicate_PlaceholderAlignment verifica que a numeração dos
// placeholders acompanha a lista de valores em qualquer combinação de filtros.
func TestCompilePredicate_PlaceholderAlignment(t *testing.T) {
	p := compilePredicate(domain.ProductFilter{
		Search:  "serum",
		Brands:  []string{"CeraVe", "L'Oreal"},
		Volumes: []string{"30ml"},
	})

	assert.Len(t, p.conds, 3)
	assert.Len(t, p.values, 3)
	assert.Contains(t, p.conds[0], "$1")
	assert.Contains(t, p.conds[1], "$2")
	assert.Contains(t, p.conds[2], "$3")
	assert.Equal(t, "%serum%", p.values[0])
}

// TestCompilePredicate_PricePair verifica a condição existencial do par
// priceFrom/priceTo: dois placeholders consecutivos, sem join de preços.
func TestCompilePredicate_PricePair(t *testing.T) {
	from, to := 100.0, 500.0
	p := compilePredicate(domain.ProductFilter{PriceFrom: &from, PriceTo: &to})

	assert.Len(t, p.conds, 1)
	assert.Contains(t, p.conds[0], "EXISTS")
	assert.Contains(t, p.conds[0], "BETWEEN $1 AND $2")
	assert.Equal(t, []interface{}{100.0, 500.0}, p.values)
}

// TestCompilePredicate_PriceRanges verifica as faixas OR-combinadas: a faixa
// fechada consome dois placeholders, a aberta um.
func TestCompilePredicate_PriceRanges(t *testing.T) {
	p := compilePredicate(domain.ProductFilter{
		PriceRanges: []domain.PriceRange{
			{Min: 0, Max: 500},
			{Min: 1000, OpenEnded: true},
		},
	})

	assert.Len(t, p.conds, 1)
	assert.Contains(t, p.conds[0], "sp.price BETWEEN $1 AND $2")
	assert.Contains(t, p.conds[0], "sp.price >= $3")
	assert.Contains(t, p.conds[0], " OR ")
	assert.Equal(t, []interface{}{0.0, 500.0, 1000.0}, p.values)
}

// TestCompilePredicate_HasRating verifica que o filtro de avaliação não
// consome placeholder.
func TestCompilePredicate_HasRating(t *testing.T) {
	p := compilePredicate(domain.ProductFilter{HasRating: true})

	assert.Equal(t, []string{"p.rating > 0"}, p.conds)
	assert.Empty(t, p.values)
}

// TestBuildListingQuery_BrowsePagination verifica que o modo navegação anexa
// LIMIT/OFFSET só na query de dados: a contagem fica com o prefixo do predicado.
func TestBuildListingQuery_BrowsePagination(t *testing.T) {
	q := buildListingQuery(domain.ProductFilter{
		Brands: []string{"CeraVe"},
		Page:   2,
		Limit:  24,
	}, testMarker)

	assert.Contains(t, q.dataSQL, "LIMIT $2 OFFSET $3")
	assert.Len(t, q.dataValues, 3)
	assert.Equal(t, 24, q.dataValues[1])
	assert.Equal(t, 24, q.dataValues[2]) // (page-1)*limit

	assert.NotContains(t, q.countSQL, "LIMIT")
	assert.Len(t, q.countValues, 1)
}

// TestBuildListingQuery_SearchModeNoPagination verifica que o modo busca
// ignora paginação e ordena por id.
func TestBuildListingQuery_SearchModeNoPagination(t *testing.T) {
	q := buildListingQuery(domain.ProductFilter{
		Search: "cream",
		Page:   3,
		Limit:  24,
		Random: true,
	}, testMarker)

	assert.NotContains(t, q.dataSQL, "LIMIT")
	assert.NotContains(t, q.dataSQL, "RANDOM()")
	assert.Contains(t, q.dataSQL, "ORDER BY p.id")
	assert.Len(t, q.dataValues, 1)
}

// TestBuildListingQuery_AllItems verifica que limit=all remove LIMIT/OFFSET.
func TestBuildListingQuery_AllItems(t *testing.T) {
	q := buildListingQuery(domain.ProductFilter{AllItems: true, Page: 1, Limit: 24}, testMarker)

	assert.NotContains(t, q.dataSQL, "LIMIT")
	assert.Empty(t, q.dataValues)
}

// TestBuildListingQuery_RandomOrder verifica a ordenação aleatória do modo
// navegação.
func TestBuildListingQuery_RandomOrder(t *testing.T) {
	q := buildListingQuery(domain.ProductFilter{Random: true, Page: 1, Limit: 12}, testMarker)

	assert.Contains(t, q.dataSQL, "ORDER BY RANDOM()")
	assert.Contains(t, q.dataSQL, "LIMIT $1 OFFSET $2")
}

// TestBuildListingQuery_PriceRangesJoin verifica que o join de store_prices
// entra nas duas queries quando há faixas de preço, e em nenhuma sem elas.
func TestBuildListingQuery_PriceRangesJoin(t *testing.T) {
	withRanges := buildListingQuery(domain.ProductFilter{
		PriceRanges: []domain.PriceRange{{Min: 0, Max: 500}},
		Page:        1,
		Limit:       24,
	}, testMarker)
	assert.Contains(t, withRanges.dataSQL, "LEFT JOIN store_prices sp ON")
	assert.Contains(t, withRanges.countSQL, "LEFT JOIN store_prices sp ON")
	assert.Contains(t, withRanges.countSQL, "COUNT(DISTINCT p.id)")

	from, to := 10.0, 20.0
	withPair := buildListingQuery(domain.ProductFilter{
		PriceFrom: &from, PriceTo: &to, Page: 1, Limit: 24,
	}, testMarker)
	assert.NotContains(t, withPair.countSQL, "LEFT JOIN store_prices sp ON")
}

// TestBuildListingQuery_MarkerExclusion verifica que as imagens fictícias
// ficam fora da agregação.
func TestBuildListingQuery_MarkerExclusion(t *testing.T) {
	q := buildListingQuery(domain.ProductFilter{Page: 1, Limit: 24}, testMarker)

	assert.Contains(t, q.dataSQL, "NOT LIKE '%placeholder.webp%'")
	assert.Contains(t, q.dataSQL, "pi.image_url IS NOT NULL")
}

// TestBuildDetailQuery verifica que o detalhe reusa a projeção da listagem
// com o id como único parâmetro, sem paginação.
func TestBuildDetailQuery(t *testing.T) {
	sql := buildDetailQuery(testMarker)

	assert.Contains(t, sql, "WHERE p.id = $1")
	assert.NotContains(t, sql, "LIMIT")
	assert.Equal(t, 1, strings.Count(sql, "$1"))
	assert.True(t, strings.Index(sql, "WHERE p.id = $1") < strings.Index(sql, "GROUP BY"))
}
