package sqlp

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/eaugusto/vendas/errcmp"
)

func TestBuildStatements(t *testing.T) {
	tests := map[string]struct {
		dialect   Dialect
		overrides StatementOverrider
		expected  Statements
	}{
		"postgres": {
			dialect: Postgres,
			expected: Statements{
				Insert:       "INSERT INTO tb_people (id, code, first_name, height, age, birthday) VALUES (nextval('sq_people'), $1, $2, $3, $4, $5)",
				Select:       "SELECT id, code, first_name, height, age, birthday FROM tb_people",
				SelectByCode: "SELECT id, code, first_name, height, age, birthday FROM tb_people WHERE code = $1",
				Update:       "UPDATE tb_people SET first_name = $1, height = $2, age = $3, birthday = $4 WHERE code = $5",
				Delete:       "DELETE FROM tb_people WHERE code = $1",
			},
		},
		"sqlite": {
			dialect: SQLite,
			expected: Statements{
				Insert:       "INSERT INTO tb_people (id, code, first_name, height, age, birthday) VALUES ((SELECT COALESCE(MAX(id), 0) + 1 FROM tb_people), ?, ?, ?, ?, ?)",
				Select:       "SELECT id, code, first_name, height, age, birthday FROM tb_people",
				SelectByCode: "SELECT id, code, first_name, height, age, birthday FROM tb_people WHERE code = ?",
				Update:       "UPDATE tb_people SET first_name = ?, height = ?, age = ?, birthday = ? WHERE code = ?",
				Delete:       "DELETE FROM tb_people WHERE code = ?",
			},
		},
		"overridden select -> lookup continues its placeholders": {
			dialect: Postgres,
			overrides: overrides{
				StatementSelect: "SELECT * FROM (SELECT id, code, first_name, height, age, birthday FROM tb_people WHERE age > $1) adults",
				StatementDelete: "UPDATE tb_people SET first_name = NULL WHERE code = $1",
			},
			expected: Statements{
				Insert:       "INSERT INTO tb_people (id, code, first_name, height, age, birthday) VALUES (nextval('sq_people'), $1, $2, $3, $4, $5)",
				Select:       "SELECT * FROM (SELECT id, code, first_name, height, age, birthday FROM tb_people WHERE age > $1) adults",
				SelectByCode: "SELECT * FROM (SELECT id, code, first_name, height, age, birthday FROM tb_people WHERE age > $1) adults WHERE code = $2",
				Update:       "UPDATE tb_people SET first_name = $1, height = $2, age = $3, birthday = $4 WHERE code = $5",
				Delete:       "UPDATE tb_people SET first_name = NULL WHERE code = $1",
			},
		},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			stmts, err := BuildStatements(personMetadata(), test.dialect, test.overrides)
			errcmp.MustMatch(t, err, "")
			if !cmp.Equal(stmts, test.expected) {
				t.Errorf("statements unexpected:\n%v", cmp.Diff(test.expected, stmts))
			}
		})
	}

	t.Run("explicit sequence", func(t *testing.T) {
		stmts, err := BuildStatements(personMetadata().WithSequence("people_id_seq"), Postgres, nil)
		errcmp.MustMatch(t, err, "")
		expected := "INSERT INTO tb_people (id, code, first_name, height, age, birthday) VALUES (nextval('people_id_seq'), $1, $2, $3, $4, $5)"
		if stmts.Insert != expected {
			t.Errorf("insert %q, wanted %q", stmts.Insert, expected)
		}
	})

	t.Run("invalid metadata", func(t *testing.T) {
		_, err := BuildStatements(NewMetadata[person](""), Postgres, nil)
		errcmp.MustBe(t, err, ErrMapping)
	})
}

func TestSequenceName(t *testing.T) {
	tests := map[string]struct {
		table      string
		expected   string
		convention bool
	}{
		"tb_client":  {table: "tb_client", expected: "sq_client", convention: true},
		"tb_product": {table: "tb_product", expected: "sq_product", convention: true},
		// Not following the convention still strips 3 characters.
		"client": {table: "client", expected: "sq_ent", convention: false},
		"tb_":    {table: "tb_", expected: "sq_tb_", convention: false},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			if got := SequenceName(test.table); got != test.expected {
				t.Errorf("SequenceName(%q) = %q, wanted %q", test.table, got, test.expected)
			}
			if got := FollowsTableConvention(test.table); got != test.convention {
				t.Errorf("FollowsTableConvention(%q) = %v, wanted %v", test.table, got, test.convention)
			}
		})
	}
}

func TestParams(t *testing.T) {
	meta := personMetadata()
	birthday := date(1990, time.June, 12)
	p := person{ID: 7, Code: "P1", FirstName: "Greg", Height: 1.8, Age: 34, Birthday: birthday}

	t.Run("insert binds all but id, in column order", func(t *testing.T) {
		params, err := InsertParams(meta, &p)
		errcmp.MustMatch(t, err, "")
		expected := []any{"P1", "Greg", 1.8, int32(34), birthday}
		if !cmp.Equal(params, expected) {
			t.Errorf("params unexpected:\n%v", cmp.Diff(expected, params))
		}
	})

	t.Run("update binds code last", func(t *testing.T) {
		params, err := UpdateParams(meta, &p)
		errcmp.MustMatch(t, err, "")
		expected := []any{"Greg", 1.8, int32(34), birthday, "P1"}
		if !cmp.Equal(params, expected) {
			t.Errorf("params unexpected:\n%v", cmp.Diff(expected, params))
		}
	})

	t.Run("optional zero values bind as NULL", func(t *testing.T) {
		params, err := InsertParams(meta, &person{Code: "P2", FirstName: "Ann"})
		errcmp.MustMatch(t, err, "")
		expected := []any{"P2", "Ann", 0.0, int32(0), nil}
		if !cmp.Equal(params, expected) {
			t.Errorf("params unexpected:\n%v", cmp.Diff(expected, params))
		}
	})

	t.Run("required column missing", func(t *testing.T) {
		_, err := InsertParams(meta, &person{Code: "P3"})
		errcmp.MustMatch(t, err, "person field FirstName is required, column first_name is not nullable")
		errcmp.MustBe(t, err, ErrParameter)
	})

	t.Run("update without code", func(t *testing.T) {
		_, err := UpdateParams(meta, &person{FirstName: "Ann"})
		errcmp.MustBe(t, err, ErrParameter)
	})
}

////////////////////////////////////////////////////////////////////////////////

type overrides map[StatementKind]string

func (o overrides) Statement(kind StatementKind) (string, bool) {
	q, ok := o[kind]
	return q, ok
}
