/**
 * @description
 * Parameterized construction of Caspio q.where clauses. The provider only
 * accepts a single clause string, so the guard here is building that string
 * from validated operands instead of letting callers concatenate raw input.
 */
package caspio

import (
	"fmt"
	"strconv"
	"strings"
)

// Filter is a single-field equality clause for a table query.
type Filter struct {
	clause string
}

// EqualString builds a `field='value'` clause. Embedded single quotes are
// doubled per SQL quoting rules and control characters are stripped, so a
// caller-supplied value cannot terminate the clause early.
func EqualString(field, value string) *Filter {
	sanitized := strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, value)
	sanitized = strings.ReplaceAll(sanitized, "'", "''")
	return &Filter{clause: fmt.Sprintf("%s='%s'", field, sanitized)}
}

// EqualNumber builds a `field=n` clause for an integer identifier.
func EqualNumber(field string, n int64) *Filter {
	return &Filter{clause: fmt.Sprintf("%s=%s", field, strconv.FormatInt(n, 10))}
}

// Or combines two filters into a `(a OR b)` clause.
func (f *Filter) Or(other *Filter) *Filter {
	return &Filter{clause: fmt.Sprintf("(%s OR %s)", f.clause, other.clause)}
}

// String renders the clause for the q.where query parameter.
func (f *Filter) String() string {
	return f.clause
}
