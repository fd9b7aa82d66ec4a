package dao

import (
	"github.com/eaugusto/vendas/domain"
	"github.com/eaugusto/vendas/sqlp"
)

// ProductDAO persists products.
type ProductDAO struct {
	*sqlp.DAO[domain.Product]
}

func NewProductDAO(provider sqlp.Provider, opts ...sqlp.Option) *ProductDAO {
	return &ProductDAO{DAO: sqlp.NewDAO[domain.Product](provider, productAccessor{}, opts...)}
}

// productAccessor binds by hand, matching the derived statements' column order.
type productAccessor struct{}

func (productAccessor) Metadata() *sqlp.Metadata[domain.Product] {
	return domain.ProductMetadata
}

func (productAccessor) CreateParams(p *domain.Product) ([]any, error) {
	if p.Code == "" || p.Name == "" {
		return nil, sqlp.ParameterError("Product", "product needs a code and a name", nil)
	}
	return []any{
		p.Code,
		p.Name,
		nullable(p.Description),
		p.Price,
		p.StockQuantity,
		nullable(p.Category),
	}, nil
}

func (productAccessor) UpdateParams(p *domain.Product) ([]any, error) {
	if p.Code == "" {
		return nil, sqlp.ParameterError("Product", "product needs a code to update by", nil)
	}
	return []any{
		nullable(p.Name),
		nullable(p.Description),
		p.Price,
		p.StockQuantity,
		nullable(p.Category),
		p.Code,
	}, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
