package sqlp

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/eaugusto/vendas/queryp"
)

// DAO is the generic data access object for a Persistable entity type.
// All SQL is derived from the accessor's metadata once, at construction. Every operation runs a
// single statement on its own connection, released before returning.
type DAO[E Persistable] struct {
	provider Provider
	accessor Accessor[E]
	meta     *Metadata[E]
	entity   string
	stmts    Statements
	err      error // metadata problem, reported by every operation
	logger   *zap.Logger
}

// Option configures a DAO.
type Option func(*options)

type options struct {
	logger *zap.Logger
}

// WithLogger logs statements at debug, and metadata hazards at warn.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Logger returns the logger opts configure, a no-op one if none.
func Logger(opts ...Option) *zap.Logger {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o.logger
}

func NewDAO[E Persistable](provider Provider, accessor Accessor[E], opts ...Option) *DAO[E] {
	var e E
	dao := &DAO[E]{
		provider: provider,
		accessor: accessor,
		meta:     accessor.Metadata(),
		entity:   entityName(e),
		logger:   Logger(opts...).With(zap.String("entity", entityName(e))),
	}
	overrides, _ := accessor.(StatementOverrider)
	dao.stmts, dao.err = BuildStatements(dao.meta, provider.Dialect(), overrides)
	if dao.err != nil {
		dao.logger.Error("invalid entity metadata", zap.Error(dao.err))
		return dao
	}
	if dao.meta.Sequence == "" && !FollowsTableConvention(dao.meta.Table) {
		dao.logger.Warn(
			"table does not follow the tb_ naming convention, derived sequence name may not exist",
			zap.String("table", dao.meta.Table),
			zap.String("sequence", SequenceName(dao.meta.Table)),
		)
	}
	return dao
}

// Validate reports whether the entity's metadata is usable.
func (dao *DAO[E]) Validate() error {
	return dao.err
}

// Metadata returns the entity metadata in use.
func (dao *DAO[E]) Metadata() *Metadata[E] {
	return dao.meta
}

// Statement returns the SQL text used for kind.
func (dao *DAO[E]) Statement(kind StatementKind) (string, error) {
	if dao.err != nil {
		return "", dao.err
	}
	q, ok := dao.stmts.Get(kind)
	if !ok {
		return "", MappingError(dao.entity, fmt.Sprintf("unknown statement %v", kind), nil)
	}
	return q, nil
}

////////////////////////////////////////////////////////////////////////////////
// Operations

// Create inserts e, returning the number of rows inserted.
// The identifier is assigned by the database; e must not carry one.
func (dao *DAO[E]) Create(ctx context.Context, e E) (int64, error) {
	if dao.err != nil {
		return 0, dao.err
	}
	if id, ok := dao.meta.Column(IDColumn); ok && id.Get(&e) != nil {
		return 0, ParameterError(dao.entity, fmt.Sprintf("%s %s already has an identifier", dao.entity, e.EntityCode()), nil)
	}
	params, err := dao.accessor.CreateParams(&e)
	if err != nil {
		return 0, dao.bindingError(e, err)
	}
	return dao.exec(ctx, "error registering "+dao.entity, dao.stmts.Insert, params)
}

// FetchByCode returns the entity with the given code, or nil if there is none.
func (dao *DAO[E]) FetchByCode(ctx context.Context, code string) (*E, error) {
	if dao.err != nil {
		return nil, dao.err
	}
	if code == "" {
		return nil, ParameterError(dao.entity, fmt.Sprintf("searching %s needs a code", dao.entity), nil)
	}
	entities, err := dao.query(ctx, "error searching entity by code: "+dao.entity, 1, dao.stmts.SelectByCode, code)
	if err != nil || len(entities) == 0 {
		return nil, err
	}
	return &entities[0], nil
}

// FetchAll returns every entity, in result set order.
func (dao *DAO[E]) FetchAll(ctx context.Context) ([]E, error) {
	if dao.err != nil {
		return nil, dao.err
	}
	return dao.query(ctx, "error retrieving all entities: "+dao.entity, 0, dao.stmts.Select)
}

// Update writes e's non key columns, keyed by its code. Returns rows updated, 0 if the code
// doesn't exist.
func (dao *DAO[E]) Update(ctx context.Context, e E) (int64, error) {
	if dao.err != nil {
		return 0, dao.err
	}
	params, err := dao.accessor.UpdateParams(&e)
	if err != nil {
		return 0, dao.bindingError(e, err)
	}
	return dao.exec(ctx, "error updating entity: "+dao.entity, dao.stmts.Update, params)
}

// Delete removes e by its code, returning rows deleted.
func (dao *DAO[E]) Delete(ctx context.Context, e E) (int64, error) {
	if dao.err != nil {
		return 0, dao.err
	}
	return dao.exec(ctx, "error deleting entity: "+dao.entity, dao.stmts.Delete, []any{e.EntityCode()})
}

////////////////////////////////////////////////////////////////////////////////

func (dao *DAO[E]) exec(ctx context.Context, op, q string, params []any) (int64, error) {
	if want := queryp.CountPlaceholders(q); want != len(params) {
		return 0, ParameterError(dao.entity, fmt.Sprintf("%s: statement takes %d parameters, got %d", op, want, len(params)), nil)
	}
	conn, err := dao.conn(ctx)
	if err != nil {
		return 0, err
	}
	defer conn.Close()

	dao.logger.Debug("exec", zap.String("sql", q), zap.Int("params", len(params)))
	res, err := conn.ExecContext(ctx, q, params...)
	if err != nil {
		return 0, StorageError(dao.entity, op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, StorageError(dao.entity, op, err)
	}
	return n, nil
}

// query runs q, mapping up to limit rows (0 for all).
func (dao *DAO[E]) query(ctx context.Context, op string, limit int, q string, args ...any) ([]E, error) {
	conn, err := dao.conn(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	dao.logger.Debug("query", zap.String("sql", q), zap.Int("params", len(args)))
	rows, err := conn.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, StorageError(dao.entity, op, err)
	}
	defer rows.Close()

	scanner := NewMetadataScanner(rows, dao.meta)
	entities := []E{}
	for rows.Next() {
		e, err := scanner.Scan()
		if err != nil {
			return nil, err
		}
		entities = append(entities, e)
		if limit > 0 && len(entities) == limit {
			break
		}
	}
	if err := rows.Err(); err != nil {
		return nil, StorageError(dao.entity, op, err)
	}
	return entities, nil
}

func (dao *DAO[E]) conn(ctx context.Context) (*sql.Conn, error) {
	conn, err := dao.provider.Conn(ctx)
	if err != nil {
		if errors.Is(err, ErrConnection) {
			return nil, err
		}
		return nil, ConnectionError("failed to acquire database connection", err)
	}
	return conn, nil
}

func (dao *DAO[E]) bindingError(e E, err error) error {
	if errors.Is(err, ErrParameter) {
		return err
	}
	return ParameterError(dao.entity, fmt.Sprintf("failed to bind %s %s", dao.entity, e.EntityCode()), err)
}
