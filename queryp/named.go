package queryp

import (
	"strings"
)

// NamedQuery represents a SQL query with named parameters (`:name`).
// It defers the actually building of the final query and its' arguments until either
// `String()` or `Args()` is called, since order of the replacement matters in cases where the
// driver doesn't use positional arguments (like sqlite)
type NamedQuery struct {
	query         string
	params        map[string]any // Store named parameters
	placeholderer Placeholderer
	builtQuery    string
	builtArgs     *Args
}

func Named(query string) *NamedQuery {
	return &NamedQuery{
		query:  query,
		params: make(map[string]any),
	}
}

// WithPlaceholderer sets the Placeholderer for the NamedQuery.
func (n *NamedQuery) WithPlaceholderer(p Placeholderer) *NamedQuery {
	n.reset()
	n.placeholderer = p
	return n
}

// WithQuery sets the query string for the NamedQuery.
func (n *NamedQuery) WithQuery(q string) *NamedQuery {
	n.reset()
	n.query = q
	return n
}

// Params adds the given map of params to the NamedQuery.
func (n *NamedQuery) Params(m map[string]any) *NamedQuery {
	n.reset()
	for key, value := range m {
		n.params[key] = value
	}
	return n
}

// Param adds a single named parameter to the NamedQuery.
func (n *NamedQuery) Param(key string, v any) *NamedQuery {
	n.reset()
	n.params[key] = v
	return n
}

// String returns the final built query with all named parameters replaced.
func (n *NamedQuery) String() string {
	if n.builtArgs == nil {
		n.build()
	}
	return n.builtQuery
}

// Args returns the arguments for the query, with named parameters replaced by their placeholders.
func (n *NamedQuery) Args() []any {
	if n.builtArgs == nil {
		n.build()
	}
	return n.builtArgs.Args()
}

// Execute returns the query and arguments for the named query.
func (n *NamedQuery) Execute() (string, []any) {
	if n.builtArgs == nil {
		n.build()
	}
	return n.builtQuery, n.builtArgs.Args()
}

////////////////////////////////////////////////////////////////////////////////

func (n *NamedQuery) reset() {
	n.builtArgs = nil
	n.builtQuery = ""
}

// build constructs the final query string and arguments based on the named parameters.
// Order matters!
// Eg. for 'WHERE client_id = :client_id AND product_id = :product_id', client_id's arg must come
// first. Names are matched whole, so :client never shadows :client_id, and Postgres casts
// (`::date`) are left alone.
func (n *NamedQuery) build() {
	n.builtArgs = NewArgs().WithPlaceholderer(n.placeholderer)

	q := strings.Builder{}
	for i := 0; i < len(n.query); i++ {
		c := n.query[i]
		if c != ':' {
			q.WriteByte(c)
			continue
		}
		if i+1 < len(n.query) && n.query[i+1] == ':' {
			q.WriteString("::")
			i++
			continue
		}
		end := i + 1
		for end < len(n.query) && isNameByte(n.query[end]) {
			end++
		}
		v, ok := n.params[n.query[i+1:end]]
		if end == i+1 || !ok {
			q.WriteByte(c)
			continue
		}
		q.WriteString(n.builtArgs.Add(v))
		i = end - 1 // skip over the ":key" part
	}
	n.builtQuery = q.String()
}

func isNameByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
