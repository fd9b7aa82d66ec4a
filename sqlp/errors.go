package sqlp

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	pkgerrors "github.com/pkg/errors"
)

// Kinds of failures the engine reports. Every error returned by this package wraps exactly one.
var (
	// ErrConnection means no usable connection could be acquired (missing configuration, or
	// the database is unreachable).
	ErrConnection = errors.New("connection error")
	// ErrParameter means a value could not be bound to a statement.
	ErrParameter = errors.New("parameter binding error")
	// ErrMapping means entity metadata is missing or inconsistent, or a row couldn't be mapped
	// back onto an entity.
	ErrMapping = errors.New("entity mapping error")
	// ErrStorage is any other failure executing a statement.
	ErrStorage = errors.New("storage error")
)

// Error carries the failure kind along with the entity and operation it happened in.
type Error struct {
	Kind   error  // one of the Err* sentinels
	Entity string // entity type name, if known
	Op     string // human readable operation, eg. "error registering Client"
	Err    error  // underlying cause, may be nil
}

func (e *Error) Error() string {
	msg := e.Op
	if msg == "" {
		msg = e.Kind.Error()
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches against the Kind sentinel, so errors.Is(err, ErrMapping) works.
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

// ConnectionError builds an ErrConnection.
func ConnectionError(msg string, cause error) error {
	return newError(ErrConnection, "", msg, cause)
}

// ParameterError builds an ErrParameter for the given entity.
func ParameterError(entity, msg string, cause error) error {
	return newError(ErrParameter, entity, msg, cause)
}

// MappingError builds an ErrMapping for the given entity.
func MappingError(entity, msg string, cause error) error {
	return newError(ErrMapping, entity, msg, cause)
}

// StorageError classifies cause as either a parameter or storage failure, see IsBindingFailure.
// Errors that already carry a kind are returned untouched.
func StorageError(entity, msg string, cause error) error {
	var e *Error
	if errors.As(cause, &e) {
		return cause
	}
	if IsBindingFailure(cause) {
		return newError(ErrParameter, entity, msg, cause)
	}
	return newError(ErrStorage, entity, msg, cause)
}

func newError(kind error, entity, msg string, cause error) error {
	if cause != nil {
		cause = pkgerrors.WithStack(cause)
	}
	return &Error{Kind: kind, Entity: entity, Op: msg, Err: cause}
}

////////////////////////////////////////////////////////////////////////////////

// IsBindingFailure reports whether a driver error means a bound value was rejected, as opposed
// to a general statement failure.
// Recognized: Postgres not null violations and data exceptions (SQLSTATE 23502 and class 22)
// from either lib/pq or pgx, SQLite not null and type mismatch constraints, and database/sql's
// own argument conversion failures.
func IsBindingFailure(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return isBindingState(string(pqErr.Code))
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return isBindingState(pgErr.Code)
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintNotNull || liteErr.Code == sqlite3.ErrMismatch
	}
	// database/sql doesn't export its conversion errors.
	msg := err.Error()
	return strings.HasPrefix(msg, "sql: converting argument") ||
		(strings.HasPrefix(msg, "sql: expected") && strings.Contains(msg, "arguments"))
}

func isBindingState(code string) bool {
	return code == "23502" || strings.HasPrefix(code, "22")
}
