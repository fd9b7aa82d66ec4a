package sqlp

// Persistable is what every entity exposes regardless of its shape: the caller assigned business
// code that identifies it, and a display name.
type Persistable interface {
	EntityCode() string
	EntityName() string
}

// Accessor supplies what the engine can't derive for an entity type: its metadata, and the
// ordered parameters for its insert and update statements.
// Accessors may also implement StatementOverrider to hand write statements.
type Accessor[E any] interface {
	Metadata() *Metadata[E]
	// CreateParams binds the insert statement. Identifiers come from the database, never here.
	CreateParams(e *E) ([]any, error)
	// UpdateParams binds the update statement, code last for the WHERE clause.
	UpdateParams(e *E) ([]any, error)
}

// MetadataAccessor is an Accessor binding parameters straight from metadata, in column order.
// Embed it in accessors that only need to customize part of the behavior.
type MetadataAccessor[E any] struct {
	Meta *Metadata[E]
}

func (a MetadataAccessor[E]) Metadata() *Metadata[E] {
	return a.Meta
}

func (a MetadataAccessor[E]) CreateParams(e *E) ([]any, error) {
	return InsertParams(a.Meta, e)
}

func (a MetadataAccessor[E]) UpdateParams(e *E) ([]any, error) {
	return UpdateParams(a.Meta, e)
}
