package repo

import (
	"fmt"
	"strings"
)

// Filter renders a single SQL predicate. String receives the target
// column and the 1-based index of the first placeholder the predicate
// may use; Value returns the arguments it consumes, in order.
type Filter interface {
	String(column string, argIdx int) string
	Value() []any
}

type comparison struct {
	op    string
	value any
}

func (f comparison) String(column string, argIdx int) string {
	return fmt.Sprintf("%s %s $%d", column, f.op, argIdx)
}

func (f comparison) Value() []any { return []any{f.value} }

func Eq(value any) Filter    { return comparison{op: "=", value: value} }
func NotEq(value any) Filter { return comparison{op: "<>", value: value} }
func Gt(value any) Filter    { return comparison{op: ">", value: value} }
func Gte(value any) Filter   { return comparison{op: ">=", value: value} }
func Lt(value any) Filter    { return comparison{op: "<", value: value} }
func Lte(value any) Filter   { return comparison{op: "<=", value: value} }

type ilike struct {
	pattern string
}

func (f ilike) String(column string, argIdx int) string {
	return fmt.Sprintf("%s ILIKE $%d", column, argIdx)
}

func (f ilike) Value() []any { return []any{f.pattern} }

// ILike matches case-insensitively against the given pattern. Callers
// supply their own wildcards.
func ILike(pattern string) Filter { return ilike{pattern: pattern} }

type in struct {
	values []any
}

func (f in) String(column string, argIdx int) string {
	if len(f.values) == 0 {
		// IN over an empty set matches nothing.
		return "FALSE"
	}
	placeholders := make([]string, len(f.values))
	for i := range f.values {
		placeholders[i] = fmt.Sprintf("$%d", argIdx+i)
	}
	return fmt.Sprintf("%s IN (%s)", column, strings.Join(placeholders, ", "))
}

func (f in) Value() []any { return f.values }

func In(values ...any) Filter { return in{values: values} }

type isNull struct{}

func (isNull) String(column string, _ int) string { return column + " IS NULL" }
func (isNull) Value() []any                       { return nil }

func IsNull() Filter { return isNull{} }

type notNull struct{}

func (notNull) String(column string, _ int) string { return column + " IS NOT NULL" }
func (notNull) Value() []any                       { return nil }

func NotNull() Filter { return notNull{} }

// SortBy renders an ORDER BY clause from domain-level fields through a
// field -> column map. Unknown fields are skipped.
type SortBy[T comparable] struct {
	Fields    []T
	Ascending bool
}

func (s SortBy[T]) ToSQL(fieldMap map[T]string) string {
	if len(s.Fields) == 0 {
		return ""
	}
	columns := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		column, ok := fieldMap[f]
		if !ok {
			continue
		}
		columns = append(columns, column)
	}
	if len(columns) == 0 {
		return ""
	}
	dir := "ASC"
	if !s.Ascending {
		dir = "DESC"
	}
	return fmt.Sprintf("ORDER BY %s %s", strings.Join(columns, ", "), dir)
}
