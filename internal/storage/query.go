package storage

import (
	"strconv"
	"strings"
)

// selectBuilder assembles a parameterised SELECT with AND-ed predicates.
type selectBuilder struct {
	columns string
	table   string
	where   []string
	args    []any
	orderBy string
	limit   int
}

func newSelect(columns, table string) *selectBuilder {
	return &selectBuilder{columns: columns, table: table}
}

// arg registers v as the next positional parameter and returns its placeholder.
func (b *selectBuilder) arg(v any) string {
	b.args = append(b.args, v)
	return "$" + strconv.Itoa(len(b.args))
}

func (b *selectBuilder) eq(column string, v any) *selectBuilder {
	b.where = append(b.where, column+" = "+b.arg(v))
	return b
}

func (b *selectBuilder) gte(column string, v any) *selectBuilder {
	b.where = append(b.where, column+" >= "+b.arg(v))
	return b
}

func (b *selectBuilder) lte(column string, v any) *selectBuilder {
	b.where = append(b.where, column+" <= "+b.arg(v))
	return b
}

// ilike adds a case-insensitive substring match of text against column.
func (b *selectBuilder) ilike(column, text string) *selectBuilder {
	b.where = append(b.where, column+" ILIKE "+b.arg(containsPattern(text)))
	return b
}

// anyILike matches text as a case-insensitive substring of any of columns.
func (b *selectBuilder) anyILike(columns []string, text string) *selectBuilder {
	p := b.arg(containsPattern(text))
	parts := make([]string, len(columns))
	for i, c := range columns {
		parts[i] = c + " ILIKE " + p
	}
	b.where = append(b.where, "("+strings.Join(parts, " OR ")+")")
	return b
}

func (b *selectBuilder) order(expr string) *selectBuilder {
	b.orderBy = expr
	return b
}

func (b *selectBuilder) limitTo(n int) *selectBuilder {
	b.limit = n
	return b
}

func (b *selectBuilder) build() (string, []any) {
	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(b.columns)
	sb.WriteString(" FROM ")
	sb.WriteString(b.table)
	if len(b.where) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(b.where, " AND "))
	}
	if b.orderBy != "" {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(b.orderBy)
	}
	if b.limit > 0 {
		sb.WriteString(" LIMIT ")
		sb.WriteString(b.arg(b.limit))
	}
	return sb.String(), b.args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern turns text into an ILIKE pattern matching it literally anywhere.
func containsPattern(text string) string {
	return "%" + likeEscaper.Replace(text) + "%"
}
