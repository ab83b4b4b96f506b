package productservice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cosmetick/internal/domain"
	apperror "cosmetick/internal/errors"
	"cosmetick/internal/service/productservice"
)

// TestParseListQuery_Defaults verifica os padrões quando a query chega vazia.
func TestParseListQuery_Defaults(t *testing.T) {
	f, err := productservice.ParseListQuery(domain.ProductListQuery{}, 24)

	assert.NoError(t, err)
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 24, f.Limit)
	assert.False(t, f.AllItems)
	assert.False(t, f.SearchMode())
	assert.Empty(t, f.Categories)
}

// TestParseListQuery_CommaLists verifica que as listas separadas por vírgula
// não sofrem trim por elemento.
func TestParseListQuery_CommaLists(t *testing.T) {
	f, err := productservice.ParseListQuery(domain.ProductListQuery{
		Category: "face-care,body-care",
		Brands:   "CeraVe, L'Oreal",
	}, 24)

	assert.NoError(t, err)
	assert.Equal(t, []string{"face-care", "body-care"}, f.Categories)
	assert.Equal(t, []string{"CeraVe", " L'Oreal"}, f.Brands)
	assert.True(t, f.SearchMode())
}

// TestParseListQuery_SearchTrimmed verifica o trim do termo de busca.
func TestParseListQuery_SearchTrimmed(t *testing.T) {
	f, err := productservice.ParseListQuery(domain.ProductListQuery{Search: "  serum  "}, 24)

	assert.NoError(t, err)
	assert.Equal(t, "serum", f.Search)
	assert.True(t, f.SearchMode())
}

// TestParseListQuery_PricePair verifica que priceFrom/priceTo andam em par.
func TestParseListQuery_PricePair(t *testing.T) {
	f, err := productservice.ParseListQuery(domain.ProductListQuery{
		PriceFrom: "100",
		PriceTo:   "500.50",
	}, 24)

	assert.NoError(t, err)
	assert.Equal(t, 100.0, *f.PriceFrom)
	assert.Equal(t, 500.50, *f.PriceTo)
}

// TestParseListQuery_HalfPricePair verifica que metade do par é erro 400.
func TestParseListQuery_HalfPricePair(t *testing.T) {
	_, err := productservice.ParseListQuery(domain.ProductListQuery{PriceFrom: "100"}, 24)

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
}

// TestParseListQuery_PricePairNonNumeric verifica a rejeição de valores não
// numéricos no par de preços.
func TestParseListQuery_PricePairNonNumeric(t *testing.T) {
	_, err := productservice.ParseListQuery(domain.ProductListQuery{
		PriceFrom: "abc",
		PriceTo:   "500",
	}, 24)

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
}

// TestParseListQuery_PriceRanges verifica as formas min-max e min+.
func TestParseListQuery_PriceRanges(t *testing.T) {
	f, err := productservice.ParseListQuery(domain.ProductListQuery{
		PriceRanges: "0-500,1000+",
	}, 24)

	assert.NoError(t, err)
	assert.Equal(t, []domain.PriceRange{
		{Min: 0, Max: 500},
		{Min: 1000, OpenEnded: true},
	}, f.PriceRanges)
}

// TestParseListQuery_OpenEndedRangeNormalizedFloor verifica que a faixa
// aberta sempre usa o piso fixo de 1000, ignorando o valor enviado.
func TestParseListQuery_OpenEndedRangeNormalizedFloor(t *testing.T) {
	f, err := productservice.ParseListQuery(domain.ProductListQuery{
		PriceRanges: "500+",
	}, 24)

	assert.NoError(t, err)
	assert.Equal(t, []domain.PriceRange{{Min: 1000, OpenEnded: true}}, f.PriceRanges)
}

// TestParseListQuery_PlusMustBeSuffix verifica que o "+" só marca faixa
// aberta na forma "<min>+"; no meio do elemento a faixa é malformada.
func TestParseListQuery_PlusMustBeSuffix(t *testing.T) {
	_, err := productservice.ParseListQuery(domain.ProductListQuery{
		PriceRanges: "1+0-500",
	}, 24)

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
}

// TestParseListQuery_PricePairPrecedence verifica que o par descarta as
// faixas quando os dois chegam juntos.
func TestParseListQuery_PricePairPrecedence(t *testing.T) {
	f, err := productservice.ParseListQuery(domain.ProductListQuery{
		PriceFrom:   "10",
		PriceTo:     "20",
		PriceRanges: "0-500",
	}, 24)

	assert.NoError(t, err)
	assert.NotNil(t, f.PriceFrom)
	assert.Empty(t, f.PriceRanges)
}

// TestParseListQuery_MalformedPriceRange verifica a rejeição de faixas
// malformadas.
func TestParseListQuery_MalformedPriceRange(t *testing.T) {
	for _, raw := range []string{"0-500-900", "abc-500", "500", "x+"} {
		_, err := productservice.ParseListQuery(domain.ProductListQuery{PriceRanges: raw}, 24)
		assert.Error(t, err, "faixa %q deveria ser rejeitada", raw)
		assert.IsType(t, &apperror.ValidationError{}, err)
	}
}

// TestParseListQuery_Flags verifica que random e hasRating só reconhecem o
// literal "true".
func TestParseListQuery_Flags(t *testing.T) {
	f, err := productservice.ParseListQuery(domain.ProductListQuery{
		Random:    "true",
		HasRating: "1",
	}, 24)

	assert.NoError(t, err)
	assert.True(t, f.Random)
	assert.False(t, f.HasRating)
}

// TestParseListQuery_LimitAll verifica o modo sem paginação.
func TestParseListQuery_LimitAll(t *testing.T) {
	f, err := productservice.ParseListQuery(domain.ProductListQuery{Limit: "all"}, 24)

	assert.NoError(t, err)
	assert.True(t, f.AllItems)
}

// TestParseListQuery_InvalidPageAndLimit verifica a rejeição de page/limit
// inválidos.
func TestParseListQuery_InvalidPageAndLimit(t *testing.T) {
	_, err := productservice.ParseListQuery(domain.ProductListQuery{Page: "0"}, 24)
	assert.Error(t, err)

	_, err = productservice.ParseListQuery(domain.ProductListQuery{Page: "abc"}, 24)
	assert.Error(t, err)

	_, err = productservice.ParseListQuery(domain.ProductListQuery{Limit: "-5"}, 24)
	assert.Error(t, err)

	_, err = productservice.ParseListQuery(domain.ProductListQuery{Limit: "tudo"}, 24)
	assert.Error(t, err)
}
