package domain

import "github.com/eaugusto/vendas/sqlp"

// Product is something for sale, identified by its code.
type Product struct {
	ID            int64   `json:"id,omitempty"`
	Code          string  `json:"code"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	StockQuantity int32   `json:"stockQuantity"`
	Category      string  `json:"category"`
}

func (p Product) EntityCode() string { return p.Code }
func (p Product) EntityName() string { return p.Name }

// ProductMetadata maps Product onto tb_product.
var ProductMetadata = sqlp.NewMetadata("tb_product",
	sqlp.Identifier("ID", "id", func(p *Product) int64 { return p.ID }, func(p *Product, v int64) { p.ID = v }),
	sqlp.Text("Code", "code", func(p *Product) string { return p.Code }, func(p *Product, v string) { p.Code = v }).NotNull(),
	sqlp.Text("Name", "name", func(p *Product) string { return p.Name }, func(p *Product, v string) { p.Name = v }).NotNull(),
	sqlp.Text("Description", "description", func(p *Product) string { return p.Description }, func(p *Product, v string) { p.Description = v }),
	sqlp.Decimal("Price", "price", func(p *Product) float64 { return p.Price }, func(p *Product, v float64) { p.Price = v }),
	sqlp.Integer("StockQuantity", "stock_quantity", func(p *Product) int32 { return p.StockQuantity }, func(p *Product, v int32) { p.StockQuantity = v }),
	sqlp.Text("Category", "category", func(p *Product) string { return p.Category }, func(p *Product, v string) { p.Category = v }),
)
