package sqlp

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockDAO returns a postgres flavored DAO over sqlmock, matching SQL text exactly.
func mockDAO(t *testing.T) (*DAO[person], *sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	dao := NewDAO[person](NewDB(db, Postgres), MetadataAccessor[person]{Meta: personMetadata()})
	require.NoError(t, dao.Validate())
	return dao, db, mock
}

var personColumns = []string{"id", "code", "first_name", "height", "age", "birthday"}

func TestDAO_Mock(t *testing.T) {
	ctx := context.Background()
	birthday := date(1990, time.June, 12)
	greg := person{Code: "P1", FirstName: "Greg", Height: 1.8, Age: 34, Birthday: birthday}

	t.Run("create binds in column order", func(t *testing.T) {
		dao, db, mock := mockDAO(t)
		mock.ExpectExec("INSERT INTO tb_people (id, code, first_name, height, age, birthday) VALUES (nextval('sq_people'), $1, $2, $3, $4, $5)").
			WithArgs("P1", "Greg", 1.8, int32(34), birthday).
			WillReturnResult(sqlmock.NewResult(0, 1))

		n, err := dao.Create(ctx, greg)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
		require.NoError(t, mock.ExpectationsWereMet())
		assert.Zero(t, db.Stats().InUse, "connection should be released")
	})

	t.Run("fetch by code maps the row", func(t *testing.T) {
		dao, db, mock := mockDAO(t)
		mock.ExpectQuery("SELECT id, code, first_name, height, age, birthday FROM tb_people WHERE code = $1").
			WithArgs("P1").
			WillReturnRows(sqlmock.NewRows(personColumns).
				AddRow(int64(1), "P1", "Greg", 1.8, int64(34), time.Date(1990, time.June, 12, 15, 30, 0, 0, time.UTC)))

		found, err := dao.FetchByCode(ctx, "P1")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, int64(1), found.ID)
		assert.Equal(t, "Greg", found.FirstName)
		assert.Equal(t, int32(34), found.Age)
		assert.True(t, found.Birthday.Equal(birthday), "birthday should be truncated to its date, got %v", found.Birthday)
		require.NoError(t, mock.ExpectationsWereMet())
		assert.Zero(t, db.Stats().InUse, "connection should be released")
	})

	t.Run("fetch by code maps only the first row", func(t *testing.T) {
		dao, _, mock := mockDAO(t)
		mock.ExpectQuery("SELECT id, code, first_name, height, age, birthday FROM tb_people WHERE code = $1").
			WithArgs("P1").
			WillReturnRows(sqlmock.NewRows(personColumns).
				AddRow(int64(1), "P1", "Greg", 1.8, int64(34), nil).
				AddRow(int64(2), "P1", "Other", 1.6, int64(20), nil))

		found, err := dao.FetchByCode(ctx, "P1")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "Greg", found.FirstName)
	})

	t.Run("update binds code last", func(t *testing.T) {
		dao, _, mock := mockDAO(t)
		mock.ExpectExec("UPDATE tb_people SET first_name = $1, height = $2, age = $3, birthday = $4 WHERE code = $5").
			WithArgs("Greg", 1.8, int32(34), birthday, "P1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		n, err := dao.Update(ctx, greg)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("delete binds the code", func(t *testing.T) {
		dao, _, mock := mockDAO(t)
		mock.ExpectExec("DELETE FROM tb_people WHERE code = $1").
			WithArgs("P1").
			WillReturnResult(sqlmock.NewResult(0, 0))

		n, err := dao.Delete(ctx, greg)
		require.NoError(t, err)
		assert.Equal(t, int64(0), n)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not null violation -> parameter error", func(t *testing.T) {
		dao, db, mock := mockDAO(t)
		mock.ExpectExec("INSERT INTO tb_people (id, code, first_name, height, age, birthday) VALUES (nextval('sq_people'), $1, $2, $3, $4, $5)").
			WillReturnError(&pq.Error{Code: "23502", Message: `null value in column "first_name"`})

		_, err := dao.Create(ctx, greg)
		require.ErrorIs(t, err, ErrParameter)
		assert.Contains(t, err.Error(), "error registering person")
		assert.Zero(t, db.Stats().InUse, "connection should be released on failure")
	})

	t.Run("other failure -> storage error", func(t *testing.T) {
		dao, db, mock := mockDAO(t)
		mock.ExpectExec("UPDATE tb_people SET first_name = $1, height = $2, age = $3, birthday = $4 WHERE code = $5").
			WillReturnError(errors.New("relation does not exist"))

		_, err := dao.Update(ctx, greg)
		require.ErrorIs(t, err, ErrStorage)
		assert.Contains(t, err.Error(), "error updating entity: person")
		assert.Contains(t, err.Error(), "relation does not exist")
		assert.Zero(t, db.Stats().InUse, "connection should be released on failure")
	})

	t.Run("query failure -> storage error", func(t *testing.T) {
		dao, db, mock := mockDAO(t)
		mock.ExpectQuery("SELECT id, code, first_name, height, age, birthday FROM tb_people").
			WillReturnError(errors.New("permission denied"))

		_, err := dao.FetchAll(ctx)
		require.ErrorIs(t, err, ErrStorage)
		assert.Contains(t, err.Error(), "error retrieving all entities: person")
		assert.Zero(t, db.Stats().InUse, "connection should be released on failure")
	})

	t.Run("unknown result column -> mapping error", func(t *testing.T) {
		dao, db, mock := mockDAO(t)
		mock.ExpectQuery("SELECT id, code, first_name, height, age, birthday FROM tb_people").
			WillReturnRows(sqlmock.NewRows([]string{"id", "code", "nickname"}).AddRow(int64(1), "P1", "G"))

		_, err := dao.FetchAll(ctx)
		require.ErrorIs(t, err, ErrMapping)
		assert.Contains(t, err.Error(), "entity person has no mapping for column nickname")
		assert.Zero(t, db.Stats().InUse, "connection should be released on failure")
	})

	t.Run("incompatible value -> mapping error", func(t *testing.T) {
		dao, _, mock := mockDAO(t)
		mock.ExpectQuery("SELECT id, code, first_name, height, age, birthday FROM tb_people").
			WillReturnRows(sqlmock.NewRows(personColumns).AddRow("one", "P1", "Greg", 1.8, int64(34), nil))

		_, err := dao.FetchAll(ctx)
		require.ErrorIs(t, err, ErrMapping)
	})
}

func TestDAO_ConnectionFailure(t *testing.T) {
	dao := NewDAO[person](failingProvider{}, MetadataAccessor[person]{Meta: personMetadata()})
	ctx := context.Background()

	_, err := dao.FetchAll(ctx)
	require.ErrorIs(t, err, ErrConnection)
	assert.Contains(t, err.Error(), "connection refused")

	_, err = dao.Create(ctx, person{Code: "P1", FirstName: "Greg"})
	require.ErrorIs(t, err, ErrConnection)
}

////////////////////////////////////////////////////////////////////////////////

type failingProvider struct{}

func (failingProvider) Conn(context.Context) (*sql.Conn, error) {
	return nil, errors.New("dial tcp 127.0.0.1:5432: connection refused")
}

func (failingProvider) Dialect() Dialect {
	return Postgres
}
