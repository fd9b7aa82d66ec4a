package sqlp

import (
	"database/sql"
	"fmt"
	"time"
)

// MetadataScanner reconstructs entities from rows using entity metadata, no reflection involved.
// Each result column is matched by name to a metadata column, read with a destination chosen by
// the column's Kind, and handed to the column's mutator.
type MetadataScanner[E any] struct {
	*sql.Rows
	meta    *Metadata[E]
	columns []Column[E]
}

func NewMetadataScanner[E any](rows *sql.Rows, meta *Metadata[E]) *MetadataScanner[E] {
	return &MetadataScanner[E]{
		Rows: rows,
		meta: meta,
	}
}

// Scan maps the current row onto a new E.
func (ms *MetadataScanner[E]) Scan() (E, error) {
	var e E

	if ms.columns == nil {
		if err := ms.resolve(); err != nil {
			return e, err
		}
	}

	targets := make([]any, len(ms.columns))
	values := make([]func() any, len(ms.columns))
	for i, c := range ms.columns {
		dest, value, err := read(c.Kind)
		if err != nil {
			return e, MappingError(ms.meta.Entity, fmt.Sprintf("failed to map entity %s field %s", ms.meta.Entity, c.Field), err)
		}
		targets[i], values[i] = dest, value
	}
	if err := ms.Rows.Scan(targets...); err != nil {
		return e, MappingError(ms.meta.Entity, fmt.Sprintf("failed to map entity %s", ms.meta.Entity), err)
	}
	for i, c := range ms.columns {
		if err := c.Set(&e, values[i]()); err != nil {
			return e, MappingError(ms.meta.Entity, fmt.Sprintf("failed to map entity %s", ms.meta.Entity), err)
		}
	}
	return e, nil
}

// resolve lines up result columns with metadata columns, once per result set.
func (ms *MetadataScanner[E]) resolve() error {
	cols, err := ms.Columns()
	if err != nil {
		return MappingError(ms.meta.Entity, "failed to get columns", err)
	}
	columns := make([]Column[E], len(cols))
	for i, name := range cols {
		c, ok := ms.meta.Column(name)
		if !ok {
			return MappingError(ms.meta.Entity, fmt.Sprintf("entity %s has no mapping for column %s", ms.meta.Entity, name), nil)
		}
		columns[i] = c
	}
	ms.columns = columns
	return nil
}

// read returns a scan destination suited to kind, and a func extracting the Go value from it
// once scanned. NULLs come out as zero values.
func read(kind Kind) (any, func() any, error) {
	switch kind {
	case KindIdentifier:
		var v sql.NullInt64
		return &v, func() any { return v.Int64 }, nil
	case KindText:
		var v sql.NullString
		return &v, func() any { return v.String }, nil
	case KindDecimal:
		var v sql.NullFloat64
		return &v, func() any { return v.Float64 }, nil
	case KindInteger:
		var v sql.NullInt32
		return &v, func() any { return v.Int32 }, nil
	case KindDate:
		var v sql.NullTime
		return &v, func() any {
			if !v.Valid {
				return time.Time{}
			}
			return CalendarDate(v.Time)
		}, nil
	}
	return nil, nil, fmt.Errorf("unsupported field type %v", kind)
}

// CalendarDate truncates t to midnight UTC of its calendar day.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
