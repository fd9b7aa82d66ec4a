package dao

import (
	"github.com/eaugusto/vendas/domain"
	"github.com/eaugusto/vendas/sqlp"
)

// ClientDAO persists clients, binding parameters in metadata order.
type ClientDAO struct {
	*sqlp.DAO[domain.Client]
}

func NewClientDAO(provider sqlp.Provider, opts ...sqlp.Option) *ClientDAO {
	accessor := sqlp.MetadataAccessor[domain.Client]{Meta: domain.ClientMetadata}
	return &ClientDAO{DAO: sqlp.NewDAO[domain.Client](provider, accessor, opts...)}
}
