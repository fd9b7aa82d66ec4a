package queryp

import (
	"fmt"
	"strconv"
)

// Args are a way to build placeholder arguments for queries in a composable way.
// Used directly by statement builders, and by the named argument query builders.
type Args struct {
	placeholderer Placeholderer
	args          []any
}

// Placeholderer renders the placeholder for the i-th (zero based) argument.
type Placeholderer func(i int) string

func NewArgs() *Args {
	return &Args{
		placeholderer: SqlitePlaceholderer, // Default to SQLite placeholder style
	}
}

func (a *Args) WithPlaceholderer(p Placeholderer) *Args {
	if p != nil {
		a.placeholderer = p
	}
	return a
}

// Add adds an argument and returns a placeholder for it.
func (a *Args) Add(arg any) string {
	a.args = append(a.args, arg)
	return a.placeholderer(len(a.args) - 1)
}

// Reserve returns a placeholder for an argument that gets bound elsewhere.
// Useful when rendering statement text once, and binding values per execution.
func (a *Args) Reserve() string {
	return a.Add(nil)
}

func (a *Args) Args() []any {
	return a.args
}

func (a *Args) Len() int {
	return len(a.args)
}

////////////////////////////////////////////////////////////////////////////////

var SqlitePlaceholderer = func(i int) string {
	return "?"
}

var PostgresPlaceholderer = func(i int) string {
	return fmt.Sprintf("$%d", i+1) // Postgres placeholders start at $1, so we add 1 to the index
}

////////////////////////////////////////////////////////////////////////////////

// CountPlaceholders returns how many arguments query expects.
// Both '?' and '$n' styles are understood; '$n' counts by the highest n referenced.
// Quoted strings and identifiers are skipped.
func CountPlaceholders(query string) int {
	questions, highest := 0, 0
	var quote byte
	for i := 0; i < len(query); i++ {
		c := query[i]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"':
			quote = c
		case '?':
			questions++
		case '$':
			j := i + 1
			for j < len(query) && query[j] >= '0' && query[j] <= '9' {
				j++
			}
			if j > i+1 {
				n, _ := strconv.Atoi(query[i+1 : j])
				highest = max(highest, n)
				i = j - 1
			}
		}
	}
	return questions + highest
}
