package sqlp

import (
	"fmt"

	"github.com/eaugusto/vendas/queryp"
)

// Dialect holds the few spots where generated SQL differs between databases.
type Dialect struct {
	Name          string
	Placeholderer queryp.Placeholderer
	// NextID renders the expression producing a fresh identifier for table, from sequence seq.
	NextID func(seq, table string) string
	// Sequences is whether identifier sequences need creating alongside tables.
	Sequences bool
	// Types maps semantic kinds to column types, for DDL.
	Types map[Kind]string
}

// Postgres uses real sequences, `nextval('sq_client')`.
var Postgres = Dialect{
	Name:          "postgres",
	Placeholderer: queryp.PostgresPlaceholderer,
	NextID: func(seq, _ string) string {
		return fmt.Sprintf("nextval('%s')", seq)
	},
	Sequences: true,
	Types: map[Kind]string{
		KindIdentifier: "BIGINT",
		KindText:       "VARCHAR(255)",
		KindDecimal:    "NUMERIC(10,2)",
		KindInteger:    "INTEGER",
		KindDate:       "DATE",
	},
}

// SQLite has no sequences, so the next identifier is computed off the table itself.
// Good enough for a single writer, which is all SQLite is used for here.
var SQLite = Dialect{
	Name:          "sqlite3",
	Placeholderer: queryp.SqlitePlaceholderer,
	NextID: func(_, table string) string {
		return fmt.Sprintf("(SELECT COALESCE(MAX(%s), 0) + 1 FROM %s)", IDColumn, table)
	},
	Types: map[Kind]string{
		KindIdentifier: "INTEGER",
		KindText:       "TEXT",
		KindDecimal:    "REAL",
		KindInteger:    "INTEGER",
		KindDate:       "DATE",
	},
}

// DialectFor returns the dialect for a database/sql driver name.
func DialectFor(driverName string) (Dialect, error) {
	switch driverName {
	case "postgres", "pgx":
		return Postgres, nil
	case "sqlite3":
		return SQLite, nil
	}
	return Dialect{}, fmt.Errorf("no dialect for driver %q", driverName)
}
