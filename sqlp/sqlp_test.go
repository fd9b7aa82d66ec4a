package sqlp

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

type person struct {
	ID        int64
	Code      string
	FirstName string
	Height    float64
	Age       int32
	Birthday  time.Time
}

func (p person) EntityCode() string { return p.Code }
func (p person) EntityName() string { return p.FirstName }

func personMetadata() *Metadata[person] {
	return NewMetadata("tb_people",
		Identifier("ID", "id", func(p *person) int64 { return p.ID }, func(p *person, v int64) { p.ID = v }),
		Text("Code", "code", func(p *person) string { return p.Code }, func(p *person, v string) { p.Code = v }).NotNull(),
		Text("FirstName", "", func(p *person) string { return p.FirstName }, func(p *person, v string) { p.FirstName = v }).NotNull(),
		Decimal("Height", "height", func(p *person) float64 { return p.Height }, func(p *person, v float64) { p.Height = v }),
		Integer("Age", "age", func(p *person) int32 { return p.Age }, func(p *person, v int32) { p.Age = v }),
		Date("Birthday", "birthday", func(p *person) time.Time { return p.Birthday }, func(p *person, v time.Time) { p.Birthday = v }),
	)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

////////////////////////////////////////////////////////////////////////////////

// countingProvider counts connections handed out, to prove when the database is never touched.
type countingProvider struct {
	Provider
	conns int
}

func (p *countingProvider) Conn(ctx context.Context) (*sql.Conn, error) {
	p.conns++
	return p.Provider.Conn(ctx)
}

// testDB returns a SQLite test database with a people table, and a cleanup function.
func testDB(t *testing.T) (*DB, context.Context, func()) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)

	db, err := Open("sqlite3", "./test.db")
	if err != nil {
		t.Fatalf("testDB failed to open: %v", err)
	}
	if err := db.PingContext(ctx); err != nil {
		t.Fatalf("testDB failed to ping: %v", err)
	}
	// Setup a test table for the tests.
	_, err = db.Exec(ctx, "DROP TABLE IF EXISTS tb_people")
	if err != nil {
		t.Fatalf("testDB failed to drop table: %v", err)
	}
	ddl, err := CreateTableStatements(personMetadata(), SQLite)
	if err != nil {
		t.Fatalf("testDB failed to derive table: %v", err)
	}
	for _, stmt := range ddl {
		if _, err := db.Exec(ctx, stmt); err != nil {
			t.Fatalf("testDB failed to create table: %v", err)
		}
	}
	return db, ctx, func() {
		db.Close()
		cancel()
	}
}
