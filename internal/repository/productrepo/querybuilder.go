package productrepo

import (
	"fmt"
	"strings"

	"github.com/lib/pq"

	"cosmetick/internal/domain"
)

// deliveryLabel é o rótulo fixo de entrega anexado a cada oferta de loja.
// Não é entrada de usuário; entra na query como literal SQL.
const deliveryLabel = "по Києву"

// predicate acumula condições booleanas e os valores posicionais
// correspondentes, na ordem. A numeração dos placeholders é sempre derivada
// do tamanho atual da lista de valores — nunca fixada por filtro — de modo
// que qualquer combinação de filtros opcionais mantém condição e valor
// alinhados.
type predicate struct {
	conds  []string
	values []interface{}
}

// next retorna o número do próximo placeholder ($1-based).
func (p *predicate) next() int { return len(p.values) + 1 }

// add registra uma condição e seus valores. Condições sem parâmetro
// (e.g. p.rating > 0) são registradas sem valores.
func (p *predicate) add(cond string, vals ...interface{}) {
	p.conds = append(p.conds, cond)
	p.values = append(p.values, vals...)
}

// where monta a cláusula WHERE (vazia quando não há condições).
func (p *predicate) where() string {
	if len(p.conds) == 0 {
		return ""
	}
	return "\n\t\tWHERE " + strings.Join(p.conds, "\n\t\t  AND ")
}

// compilePredicate traduz o filtro validado numa conjunção de condições SQL.
// As mesmas condições (e o mesmo prefixo de valores) servem à query de dados
// e à query de contagem.
func compilePredicate(f domain.ProductFilter) *predicate {
	p := &predicate{}

	if f.Search != "" {
		p.add(fmt.Sprintf("p.name ILIKE $%d", p.next()), "%"+f.Search+"%")
	}

	if len(f.Categories) > 0 {
		p.add(fmt.Sprintf("c.name_en = ANY($%d)", p.next()), pq.Array(f.Categories))
	}

	if len(f.Brands) > 0 {
		p.add(fmt.Sprintf("b.name = ANY($%d)", p.next()), pq.Array(f.Brands))
	}

	switch {
	case f.PriceFrom != nil && f.PriceTo != nil:
		// Condição existencial correlacionada: independe do join de preços e
		// portanto não multiplica linhas de produto.
		n := p.next()
		p.add(fmt.Sprintf(
			"EXISTS (SELECT 1 FROM store_prices sp2 WHERE sp2.product_id = p.id AND sp2.price BETWEEN $%d AND $%d)",
			n, n+1), *f.PriceFrom, *f.PriceTo)

	case len(f.PriceRanges) > 0:
		// Faixas OR-combinadas sobre o join de store_prices. Esse caminho
		// multiplica linhas antes da agregação; o GROUP BY por p.id e o
		// COUNT(DISTINCT p.id) compensam.
		var ors []string
		var vals []interface{}
		n := p.next()
		for _, r := range f.PriceRanges {
			if r.OpenEnded {
				ors = append(ors, fmt.Sprintf("sp.price >= $%d", n))
				vals = append(vals, r.Min)
				n++
			} else {
				ors = append(ors, fmt.Sprintf("sp.price BETWEEN $%d AND $%d", n, n+1))
				vals = append(vals, r.Min, r.Max)
				n += 2
			}
		}
		p.add("("+strings.Join(ors, " OR ")+")", vals...)
	}

	if len(f.Volumes) > 0 {
		p.add(fmt.Sprintf("p.volume = ANY($%d)", p.next()), pq.Array(f.Volumes))
	}

	if len(f.Types) > 0 {
		// Fonte canônica: a coluna type do produto (as cópias legadas
		// divergiam entre p.type e pf.type).
		p.add(fmt.Sprintf("p.type = ANY($%d)", p.next()), pq.Array(f.Types))
	}

	if f.HasRating {
		// NULL falha a comparação, então isso cobre "não nulo e positivo".
		p.add("p.rating > 0")
	}

	return p
}

// listingQuery é o par de queries pronto para execução: a de dados com todos
// os valores (predicado + paginação) e a de contagem com o prefixo de
// valores apenas do predicado.
type listingQuery struct {
	dataSQL     string
	dataValues  []interface{}
	countSQL    string
	countValues []interface{}
}

// listingSelect monta a projeção e os joins compartilhados entre a listagem
// e o detalhe. marker é o fragmento de URL que identifica imagens fictícias,
// excluídas da agregação.
func listingSelect(marker, priceJoin string) string {
	return fmt.Sprintf(`
		SELECT p.id, p.name, p.volume, p.type, p.rating, p.views, p.code,
		       c.name_ua AS category_name, c.name_en AS category_id, b.name AS brand_name,
		       pd.description, pd.composition, pd.usage, pd.description_full,
		       pf.brand AS feature_brand, pf.country, pf.type AS feature_type,
		       pf.class, pf.category AS feature_category, pf.purpose, pf.gender, pf.active_ingredients,
		       array_agg(DISTINCT pi.image_url) FILTER (WHERE pi.image_url IS NOT NULL AND pi.image_url NOT LIKE '%%%s%%') AS images,
		       (SELECT json_agg(json_build_object(
		         'store_id', sp0.store_id,
		         'name', s.name,
		         'price', sp0.price,
		         'logo', s.logo,
		         'yearsWithUs', s.years_with_us,
		         'delivery', '%s',
		         'link', sp0.link
		       )) FILTER (WHERE sp0.id IS NOT NULL)
		        FROM store_prices sp0
		        JOIN stores s ON sp0.store_id = s.id
		        WHERE sp0.product_id = p.id) AS store_prices
		FROM products p
		JOIN categories c ON p.category_id = c.id
		JOIN brands b ON p.brand_id = b.id
		LEFT JOIN product_details pd ON p.id = pd.product_id
		LEFT JOIN product_features pf ON p.id = pf.product_id
		LEFT JOIN product_images pi ON p.id = pi.product_id%s`, marker, deliveryLabel, priceJoin)
}

// Toda coluna selecionada fora de agregação precisa estar aqui;
// omitir qualquer uma torna a query malformada.
const listingGroupBy = `
		GROUP BY p.id, c.name_ua, c.name_en, b.name, pd.description, pd.composition, pd.usage, pd.description_full,
		         pf.brand, pf.country, pf.type, pf.class, pf.category, pf.purpose, pf.gender, pf.active_ingredients`

// buildListingQuery monta as duas queries da listagem a partir do mesmo
// predicado.
func buildListingQuery(f domain.ProductFilter, marker string) listingQuery {
	p := compilePredicate(f)
	where := p.where()

	// O join de store_prices só entra quando um predicado o referencia
	// (faixas de preço). Fora disso as ofertas vêm da subquery escalar,
	// evitando multiplicação de linhas por produto multi-loja.
	priceJoin := ""
	if len(f.PriceRanges) > 0 && !(f.PriceFrom != nil && f.PriceTo != nil) {
		priceJoin = "\n\t\tLEFT JOIN store_prices sp ON p.id = sp.product_id"
	}

	data := listingSelect(marker, priceJoin) + where + listingGroupBy

	dataValues := append([]interface{}{}, p.values...)
	countValues := append([]interface{}{}, p.values...)

	if f.SearchMode() {
		// Modo busca/categoria: sem paginação — o resultado completo
		// alimenta o resumo agrupado.
		data += "\n\t\tORDER BY p.id"
	} else {
		if f.Random {
			data += "\n\t\tORDER BY RANDOM()"
		} else {
			data += "\n\t\tORDER BY p.id"
		}
		if !f.AllItems {
			n := len(dataValues)
			data += fmt.Sprintf("\n\t\tLIMIT $%d OFFSET $%d", n+1, n+2)
			dataValues = append(dataValues, f.Limit, (f.Page-1)*f.Limit)
		}
	}

	// A contagem espelha o predicado, mas só carrega os joins que ele pode
	// referenciar; COUNT(DISTINCT p.id) fica estável sob o join um-para-muitos
	// das faixas de preço. Os valores de paginação ficam de fora.
	count := `
		SELECT COUNT(DISTINCT p.id) AS total
		FROM products p
		JOIN categories c ON p.category_id = c.id
		JOIN brands b ON p.brand_id = b.id` + priceJoin + where

	return listingQuery{
		dataSQL:     data,
		dataValues:  dataValues,
		countSQL:    count,
		countValues: countValues,
	}
}

// buildDetailQuery monta a query de detalhe de um produto: a mesma projeção
// da listagem, filtrada por id — o único parâmetro.
func buildDetailQuery(marker string) string {
	return listingSelect(marker, "") + "\n\t\tWHERE p.id = $1" + listingGroupBy
}
