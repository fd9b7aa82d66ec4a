package sqlp

import "github.com/eaugusto/vendas/queryp"

// Support top level imports without drilling into our separated packages.
// Just a convenience for users, while letting us keep code organized into sub packages.

// Named builds a named query with the dialect's placeholder style.
func (d Dialect) Named(q string) *queryp.NamedQuery {
	return queryp.Named(q).WithPlaceholderer(d.Placeholderer)
}
