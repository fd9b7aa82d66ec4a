package sqlp

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-openapi/inflect"
)

// Kind is the semantic type of a persisted field, which decides how it's read from a row.
type Kind int

const (
	KindIdentifier Kind = iota + 1 // int64
	KindText                       // string
	KindDecimal                    // float64
	KindInteger                    // int32
	KindDate                       // time.Time, truncated to a calendar date
)

func (k Kind) String() string {
	switch k {
	case KindIdentifier:
		return "identifier"
	case KindText:
		return "text"
	case KindDecimal:
		return "decimal"
	case KindInteger:
		return "integer"
	case KindDate:
		return "date"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Conventional column names every entity table carries.
const (
	IDColumn   = "id"
	CodeColumn = "code"
)

// Column binds one field of E to a table column.
// Prefer the typed constructors (Identifier, Text, ...) over building these by hand.
type Column[E any] struct {
	Field    string // Go field name, used in error messages
	Name     string // column name
	Kind     Kind
	Required bool // column is NOT NULL

	// Get returns the value to bind for this column, nil for NULL.
	Get func(e *E) any
	// Set assigns a value read from a row. Value types follow Kind.
	Set func(e *E, v any) error
}

// NotNull marks the column as required.
func (c Column[E]) NotNull() Column[E] {
	c.Required = true
	return c
}

// Identifier binds an int64 field. Zero binds as NULL.
func Identifier[E any](field, column string, get func(*E) int64, set func(*E, int64)) Column[E] {
	return newColumn(field, column, KindIdentifier, func(e *E) any {
		if v := get(e); v != 0 {
			return v
		}
		return nil
	}, set)
}

// Text binds a string field. Empty binds as NULL.
func Text[E any](field, column string, get func(*E) string, set func(*E, string)) Column[E] {
	return newColumn(field, column, KindText, func(e *E) any {
		if v := get(e); v != "" {
			return v
		}
		return nil
	}, set)
}

// Decimal binds a float64 field.
func Decimal[E any](field, column string, get func(*E) float64, set func(*E, float64)) Column[E] {
	return newColumn(field, column, KindDecimal, func(e *E) any { return get(e) }, set)
}

// Integer binds an int32 field.
func Integer[E any](field, column string, get func(*E) int32, set func(*E, int32)) Column[E] {
	return newColumn(field, column, KindInteger, func(e *E) any { return get(e) }, set)
}

// Date binds a calendar date field. The zero time binds as NULL.
func Date[E any](field, column string, get func(*E) time.Time, set func(*E, time.Time)) Column[E] {
	return newColumn(field, column, KindDate, func(e *E) any {
		if v := get(e); !v.IsZero() {
			return v
		}
		return nil
	}, set)
}

func newColumn[E, V any](field, column string, kind Kind, get func(*E) any, set func(*E, V)) Column[E] {
	if column == "" {
		column = ColumnName(field)
	}
	return Column[E]{
		Field: field,
		Name:  column,
		Kind:  kind,
		Get:   get,
		Set: func(e *E, v any) error {
			typed, ok := v.(V)
			if !ok {
				return fmt.Errorf("field %s wants %T, got %T", field, typed, v)
			}
			set(e, typed)
			return nil
		},
	}
}

// ColumnName infers a column name from a Go field name, eg. AddressNumber -> address_number.
func ColumnName(field string) string {
	return strings.ToLower(inflect.Underscore(field))
}

////////////////////////////////////////////////////////////////////////////////

// Metadata describes how an entity type E is persisted: its table and its ordered columns.
// Column order is the order used in every generated statement.
// Metadata is meant to be built once per type, at package initialization, and never mutated.
type Metadata[E any] struct {
	Entity   string // entity type name, for messages
	Table    string
	Sequence string // optional; derived from Table when empty, see SequenceName
	Columns  []Column[E]
}

// NewMetadata builds metadata for E. The entity name is taken from E's type.
func NewMetadata[E any](table string, columns ...Column[E]) *Metadata[E] {
	var e E
	return &Metadata[E]{
		Entity:  entityName(e),
		Table:   table,
		Columns: columns,
	}
}

// WithSequence sets an explicit sequence name, bypassing the table name convention.
func (m *Metadata[E]) WithSequence(seq string) *Metadata[E] {
	m.Sequence = seq
	return m
}

// Column returns the column with the given name.
func (m *Metadata[E]) Column(name string) (Column[E], bool) {
	for _, c := range m.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column[E]{}, false
}

// ColumnNames returns all column names, in order.
func (m *Metadata[E]) ColumnNames() []string {
	names := make([]string, len(m.Columns))
	for i, c := range m.Columns {
		names[i] = c.Name
	}
	return names
}

// Validate checks the metadata is usable by the engine.
func (m *Metadata[E]) Validate() error {
	if m == nil {
		var e E
		return MappingError(entityName(e), fmt.Sprintf("entity %s has no metadata", entityName(e)), nil)
	}
	if m.Table == "" {
		return MappingError(m.Entity, fmt.Sprintf("entity %s missing table metadata", m.Entity), nil)
	}
	if len(m.Columns) == 0 {
		return MappingError(m.Entity, fmt.Sprintf("entity %s has no column metadata", m.Entity), nil)
	}
	seen := make(map[string]bool, len(m.Columns))
	for _, c := range m.Columns {
		switch {
		case c.Name == "":
			return MappingError(m.Entity, fmt.Sprintf("entity %s field %s has no column name", m.Entity, c.Field), nil)
		case seen[c.Name]:
			return MappingError(m.Entity, fmt.Sprintf("entity %s has duplicate column name %s", m.Entity, c.Name), nil)
		case c.Get == nil || c.Set == nil:
			return MappingError(m.Entity, fmt.Sprintf("entity %s field %s has no accessor", m.Entity, c.Field), nil)
		case c.Kind < KindIdentifier || c.Kind > KindDate:
			return MappingError(m.Entity, fmt.Sprintf("entity %s field %s has unsupported field type %v", m.Entity, c.Field, c.Kind), nil)
		}
		seen[c.Name] = true
	}
	for _, required := range []string{IDColumn, CodeColumn} {
		if !seen[required] {
			return MappingError(m.Entity, fmt.Sprintf("entity %s has no %s column", m.Entity, required), nil)
		}
	}
	if m.Sequence == "" && len(m.Table) <= len(tablePrefix) {
		return MappingError(m.Entity, fmt.Sprintf("entity %s table %q too short to derive a sequence name", m.Entity, m.Table), nil)
	}
	return nil
}

func entityName(e any) string {
	name := fmt.Sprintf("%T", e)
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}
