package sqlp

import (
	"fmt"
	"strings"
)

// CreateTableStatements derives idempotent DDL for m's table, preceded by its identifier
// sequence where the dialect has them. The code column is unique, columns marked NotNull are
// NOT NULL.
func CreateTableStatements[E any](m *Metadata[E], d Dialect) ([]string, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	var stmts []string
	if d.Sequences {
		seq := m.Sequence
		if seq == "" {
			seq = SequenceName(m.Table)
		}
		stmts = append(stmts, fmt.Sprintf("CREATE SEQUENCE IF NOT EXISTS %s", seq))
	}

	defs := make([]string, 0, len(m.Columns))
	for _, c := range m.Columns {
		typ, ok := d.Types[c.Kind]
		if !ok {
			return nil, MappingError(m.Entity, fmt.Sprintf("no %s column type for %s field %s", d.Name, m.Entity, c.Field), nil)
		}
		def := c.Name + " " + typ
		switch {
		case c.Name == IDColumn:
			def += " PRIMARY KEY"
		case c.Name == CodeColumn:
			def += " NOT NULL UNIQUE"
		case c.Required:
			def += " NOT NULL"
		}
		defs = append(defs, def)
	}
	stmts = append(stmts, fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (\n\t%s\n)",
		m.Table, strings.Join(defs, ",\n\t"),
	))
	return stmts, nil
}
