package dao

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/eaugusto/vendas/domain"
	"github.com/eaugusto/vendas/mapperp"
	"github.com/eaugusto/vendas/queryp"
	"github.com/eaugusto/vendas/sqlp"
)

const (
	inventoryEntity   = "Inventory"
	inventoryTable    = "tb_inventory"
	inventorySequence = "sq_inventory"
)

var inventorySearch = queryp.Must(queryp.NewTemplate(`
	SELECT id, client_id, product_id, quantity_sold, sale_date
	FROM tb_inventory
	{{.Where "client_id" "product_id"}}
	ORDER BY {{if .Includes "by_client"}}client_id, {{end}}id`,
))

// InventoryFilter narrows an inventory search. Zero fields don't filter.
type InventoryFilter struct {
	ClientID  int64
	ProductID int64
}

// InventoryDAO reads and writes inventory entries by hand, without the generic engine: entries
// have no business code, and their sale date comes from the database clock.
type InventoryDAO struct {
	provider sqlp.Provider
	logger   *zap.Logger
}

func NewInventoryDAO(provider sqlp.Provider, opts ...sqlp.Option) *InventoryDAO {
	return &InventoryDAO{
		provider: provider,
		logger:   sqlp.Logger(opts...).With(zap.String("entity", inventoryEntity)),
	}
}

// Register records a sale, stamped with the database's current time.
func (dao *InventoryDAO) Register(ctx context.Context, inv domain.Inventory) (int64, error) {
	const op = "error registering inventory transaction"
	if inv.ClientID == 0 || inv.ProductID == 0 {
		return 0, sqlp.ParameterError(inventoryEntity, op+": client and product are required", nil)
	}
	d := dao.provider.Dialect()
	q, args := d.Named(fmt.Sprintf(`
		INSERT INTO tb_inventory (id, client_id, product_id, quantity_sold, sale_date)
		VALUES (%s, :client_id, :product_id, :quantity_sold, CURRENT_TIMESTAMP)`,
		d.NextID(inventorySequence, inventoryTable),
	)).Params(map[string]any{
		"client_id":     inv.ClientID,
		"product_id":    inv.ProductID,
		"quantity_sold": inv.QuantitySold,
	}).Execute()
	return dao.exec(ctx, op, q, args...)
}

// FetchAll returns every entry, by ID.
func (dao *InventoryDAO) FetchAll(ctx context.Context) ([]domain.Inventory, error) {
	return dao.Search(ctx, InventoryFilter{})
}

// FetchByClient returns a client's entries.
func (dao *InventoryDAO) FetchByClient(ctx context.Context, clientID int64) ([]domain.Inventory, error) {
	return dao.Search(ctx, InventoryFilter{ClientID: clientID})
}

// FetchByProduct returns a product's entries.
func (dao *InventoryDAO) FetchByProduct(ctx context.Context, productID int64) ([]domain.Inventory, error) {
	return dao.Search(ctx, InventoryFilter{ProductID: productID})
}

// Search returns the entries matching filter, by ID.
func (dao *InventoryDAO) Search(ctx context.Context, filter InventoryFilter) ([]domain.Inventory, error) {
	return dao.search(ctx, filter, false)
}

// SalesByClient returns every entry grouped by client, in client ID order.
func (dao *InventoryDAO) SalesByClient(ctx context.Context) ([]domain.ClientSales, error) {
	entries, err := dao.search(ctx, InventoryFilter{}, true)
	if err != nil {
		return nil, err
	}
	salesMapper := mapperp.Slice(
		func(s *domain.ClientSales) int64 { return s.ClientID },
		func(row *domain.Inventory) *domain.ClientSales { return &domain.ClientSales{ClientID: row.ClientID} },
		mapperp.Last(
			mapperp.InnerSlice(
				func(s *domain.ClientSales) *[]domain.Inventory { return &s.Sales },
				func(inv *domain.Inventory) int64 { return inv.ID },
				func(row *domain.Inventory) *domain.Inventory { return row },
			),
		),
	)
	sales := []domain.ClientSales{}
	for i := range entries {
		salesMapper(&sales, &entries[i], i)
	}
	return sales, nil
}

// DeleteByID removes one entry, returning rows deleted.
func (dao *InventoryDAO) DeleteByID(ctx context.Context, id int64) (int64, error) {
	q, args := dao.provider.Dialect().
		Named("DELETE FROM tb_inventory WHERE id = :id").
		Param("id", id).
		Execute()
	return dao.exec(ctx, "error deleting inventory item by ID", q, args...)
}

////////////////////////////////////////////////////////////////////////////////

func (dao *InventoryDAO) search(ctx context.Context, filter InventoryFilter, byClient bool) ([]domain.Inventory, error) {
	const op = "error retrieving inventory entries"
	b := inventorySearch.Placeholderer(dao.provider.Dialect().Placeholderer)
	if filter.ClientID != 0 {
		b.Param("client_id", filter.ClientID)
	}
	if filter.ProductID != 0 {
		b.Param("product_id", filter.ProductID)
	}
	if byClient {
		b.Include("by_client")
	}
	q, args, err := b.Execute()
	if err != nil {
		return nil, sqlp.StorageError(inventoryEntity, op, err)
	}

	conn, err := dao.provider.Conn(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	dao.logger.Debug("query", zap.String("sql", q), zap.Int("params", len(args)))
	rows, err := conn.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, sqlp.StorageError(inventoryEntity, op, err)
	}
	defer rows.Close()

	entries := []domain.Inventory{}
	for rows.Next() {
		inv, err := scanInventory(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, sqlp.StorageError(inventoryEntity, op, err)
	}
	return entries, nil
}

func (dao *InventoryDAO) exec(ctx context.Context, op, q string, args ...any) (int64, error) {
	conn, err := dao.provider.Conn(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Close()

	dao.logger.Debug("exec", zap.String("sql", q), zap.Int("params", len(args)))
	res, err := conn.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, sqlp.StorageError(inventoryEntity, op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, sqlp.StorageError(inventoryEntity, op, err)
	}
	return n, nil
}

func scanInventory(rows *sql.Rows) (domain.Inventory, error) {
	var (
		inv      domain.Inventory
		saleDate sql.NullTime
	)
	if err := rows.Scan(&inv.ID, &inv.ClientID, &inv.ProductID, &inv.QuantitySold, &saleDate); err != nil {
		return inv, sqlp.MappingError(inventoryEntity, "error mapping inventory result", err)
	}
	inv.SaleDate = saleDate.Time
	return inv, nil
}
