package sqlp

import (
	"fmt"
	"strings"

	"github.com/eaugusto/vendas/queryp"
)

// StatementKind names the statements the engine derives for every entity.
type StatementKind int

const (
	StatementInsert StatementKind = iota + 1
	StatementSelect               // all rows; lookups by code append a WHERE clause to it
	StatementUpdate
	StatementDelete
)

func (k StatementKind) String() string {
	switch k {
	case StatementInsert:
		return "insert"
	case StatementSelect:
		return "select"
	case StatementUpdate:
		return "update"
	case StatementDelete:
		return "delete"
	}
	return fmt.Sprintf("statement(%d)", int(k))
}

// StatementOverrider is optionally implemented by accessors that hand write some statements.
// Returning false derives the statement from metadata as usual. An override replaces the whole
// statement, there is no partial templating.
type StatementOverrider interface {
	Statement(kind StatementKind) (string, bool)
}

// Statements is the full set of SQL an entity's accessor runs.
type Statements struct {
	Insert       string
	Select       string
	SelectByCode string
	Update       string
	Delete       string
}

// Get returns the statement of the given kind.
func (s Statements) Get(kind StatementKind) (string, bool) {
	switch kind {
	case StatementInsert:
		return s.Insert, true
	case StatementSelect:
		return s.Select, true
	case StatementUpdate:
		return s.Update, true
	case StatementDelete:
		return s.Delete, true
	}
	return "", false
}

const (
	tablePrefix    = "tb_"
	sequencePrefix = "sq_"
)

// SequenceName derives the identifier sequence for a table: the table's 3 character prefix is
// swapped for "sq_", so tb_client uses sq_client.
// Tables not following the tb_ convention still get their first 3 characters stripped.
// Set Metadata.Sequence for those instead.
func SequenceName(table string) string {
	if len(table) <= len(tablePrefix) {
		return sequencePrefix + table
	}
	return sequencePrefix + table[len(tablePrefix):]
}

// FollowsTableConvention reports whether table carries the prefix SequenceName expects.
func FollowsTableConvention(table string) bool {
	return strings.HasPrefix(table, tablePrefix) && len(table) > len(tablePrefix)
}

// BuildStatements derives every statement for m, applying any overrides.
func BuildStatements[E any](m *Metadata[E], d Dialect, overrides StatementOverrider) (Statements, error) {
	if err := m.Validate(); err != nil {
		return Statements{}, err
	}
	override := func(kind StatementKind, derived func() string) string {
		if overrides != nil {
			if q, ok := overrides.Statement(kind); ok {
				return q
			}
		}
		return derived()
	}
	s := Statements{
		Insert: override(StatementInsert, func() string { return insertSQL(m, d) }),
		Select: override(StatementSelect, func() string { return selectSQL(m) }),
		Update: override(StatementUpdate, func() string { return updateSQL(m, d) }),
		Delete: override(StatementDelete, func() string { return deleteSQL(m, d) }),
	}
	// Lookups extend whatever select is in use, so the WHERE placeholder continues its numbering.
	args := queryp.NewArgs().WithPlaceholderer(d.Placeholderer)
	for i := 0; i < queryp.CountPlaceholders(s.Select); i++ {
		args.Reserve()
	}
	s.SelectByCode = fmt.Sprintf("%s WHERE %s = %s", s.Select, CodeColumn, args.Reserve())
	return s, nil
}

// INSERT INTO tb_client (id, code, name) VALUES (nextval('sq_client'), ?, ?)
func insertSQL[E any](m *Metadata[E], d Dialect) string {
	seq := m.Sequence
	if seq == "" {
		seq = SequenceName(m.Table)
	}
	args := queryp.NewArgs().WithPlaceholderer(d.Placeholderer)
	cols := []string{IDColumn}
	vals := []string{d.NextID(seq, m.Table)}
	for _, c := range m.Columns {
		if c.Name == IDColumn {
			continue
		}
		cols = append(cols, c.Name)
		vals = append(vals, args.Reserve())
	}
	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		m.Table, strings.Join(cols, ", "), strings.Join(vals, ", "),
	)
}

// SELECT id, code, name FROM tb_client
func selectSQL[E any](m *Metadata[E]) string {
	return fmt.Sprintf("SELECT %s FROM %s", strings.Join(m.ColumnNames(), ", "), m.Table)
}

// UPDATE tb_client SET name = ? WHERE code = ?
func updateSQL[E any](m *Metadata[E], d Dialect) string {
	args := queryp.NewArgs().WithPlaceholderer(d.Placeholderer)
	sets := make([]string, 0, len(m.Columns))
	for _, c := range m.Columns {
		if c.Name == IDColumn || c.Name == CodeColumn {
			continue
		}
		sets = append(sets, fmt.Sprintf("%s = %s", c.Name, args.Reserve()))
	}
	return fmt.Sprintf(
		"UPDATE %s SET %s WHERE %s = %s",
		m.Table, strings.Join(sets, ", "), CodeColumn, args.Reserve(),
	)
}

// DELETE FROM tb_client WHERE code = ?
func deleteSQL[E any](m *Metadata[E], d Dialect) string {
	args := queryp.NewArgs().WithPlaceholderer(d.Placeholderer)
	return fmt.Sprintf("DELETE FROM %s WHERE %s = %s", m.Table, CodeColumn, args.Reserve())
}

////////////////////////////////////////////////////////////////////////////////

// InsertParams binds every column but id, in metadata order. This matches the derived insert.
func InsertParams[E any](m *Metadata[E], e *E) ([]any, error) {
	params := make([]any, 0, len(m.Columns))
	for _, c := range m.Columns {
		if c.Name == IDColumn {
			continue
		}
		v, err := bind(m, c, e)
		if err != nil {
			return nil, err
		}
		params = append(params, v)
	}
	return params, nil
}

// UpdateParams binds every column but id and code, in metadata order, then code last for the
// WHERE clause. This matches the derived update.
func UpdateParams[E any](m *Metadata[E], e *E) ([]any, error) {
	params := make([]any, 0, len(m.Columns))
	var code any
	for _, c := range m.Columns {
		if c.Name == IDColumn {
			continue
		}
		v, err := bind(m, c, e)
		if err != nil {
			return nil, err
		}
		if c.Name == CodeColumn {
			code = v
			continue
		}
		params = append(params, v)
	}
	if code == nil {
		return nil, ParameterError(m.Entity, fmt.Sprintf("%s has no code to update by", m.Entity), nil)
	}
	return append(params, code), nil
}

func bind[E any](m *Metadata[E], c Column[E], e *E) (any, error) {
	v := c.Get(e)
	if v == nil && (c.Required || c.Name == CodeColumn) {
		return nil, ParameterError(
			m.Entity,
			fmt.Sprintf("%s field %s is required, column %s is not nullable", m.Entity, c.Field, c.Name),
			nil,
		)
	}
	return v, nil
}
