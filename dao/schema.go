package dao

import (
	"fmt"

	"github.com/eaugusto/vendas/domain"
	"github.com/eaugusto/vendas/sqlp"
)

// Schema returns the DDL creating every table and sequence, in dependency order.
// All statements are idempotent.
func Schema(d sqlp.Dialect) ([]string, error) {
	var stmts []string
	clients, err := sqlp.CreateTableStatements(domain.ClientMetadata, d)
	if err != nil {
		return nil, err
	}
	stmts = append(stmts, clients...)
	products, err := sqlp.CreateTableStatements(domain.ProductMetadata, d)
	if err != nil {
		return nil, err
	}
	stmts = append(stmts, products...)

	if d.Sequences {
		stmts = append(stmts, "CREATE SEQUENCE IF NOT EXISTS "+inventorySequence)
	}
	id := d.Types[sqlp.KindIdentifier]
	stmts = append(stmts, fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id %s PRIMARY KEY,
	client_id %s NOT NULL REFERENCES %s (id),
	product_id %s NOT NULL REFERENCES %s (id),
	quantity_sold %s NOT NULL,
	sale_date TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`,
		inventoryTable,
		id,
		id, domain.ClientMetadata.Table,
		id, domain.ProductMetadata.Table,
		d.Types[sqlp.KindInteger],
	))
	return stmts, nil
}
