package domain

import "time"

// Inventory is one sale: a quantity of a product going to a client.
// Unlike clients and products it has no business code, rows are addressed by ID, and SaleDate is
// stamped by the database.
type Inventory struct {
	ID           int64     `json:"id,omitempty"`
	ClientID     int64     `json:"clientId"`
	ProductID    int64     `json:"productId"`
	QuantitySold int32     `json:"quantitySold"`
	SaleDate     time.Time `json:"saleDate"`
}

// ClientSales groups a client's inventory entries.
type ClientSales struct {
	ClientID int64       `json:"clientId"`
	Sales    []Inventory `json:"sales"`
}

// Total is the quantity sold across all sales.
func (c ClientSales) Total() int64 {
	var total int64
	for _, s := range c.Sales {
		total += int64(s.QuantitySold)
	}
	return total
}
