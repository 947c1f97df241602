// Package readmodel assembles denormalized response shapes out of the
// normalized tables: reference-by-ID columns are resolved into nested
// objects at read time, one data-access function per shape. Resolution is
// null-safe throughout; a dangling reference becomes a JSON null, never a
// query error.
package readmodel

import (
	"fmt"
	"strings"
)

// Cardinality selects how a resolved reference is shaped in the output.
type Cardinality string

const (
	// One collapses the joined row to a single nested object, or null
	// when unmatched. It is never surfaced as a one-element array.
	One Cardinality = "one"

	// Many aggregates matching rows into a JSON array, empty (not null)
	// when nothing matches. Element order follows the OrderBy column.
	Many Cardinality = "many"
)

// Col maps a column of the foreign table to a key in the composed object.
// An empty Key reuses the column name.
type Col struct {
	Name string
	Key  string
}

func (c Col) key() string {
	if c.Key != "" {
		return c.Key
	}
	return c.Name
}

// JoinSpec describes one reference-resolution step. For cardinality One the
// parent's LocalField points at the foreign table's ForeignField; for Many
// the relationship is reversed and the foreign table's ForeignField points
// back at the parent's LocalField. Nested specs resolve transitively inside
// the composed object, so a product's category item can carry its category
// in the same pass.
type JoinSpec struct {
	LocalField   string
	ForeignTable string
	ForeignField string
	ResultField  string
	Columns      []Col
	Nested       []JoinSpec
	Cardinality  Cardinality
	OrderBy      string // Many only; defaults to ForeignField
}

// Compose renders the join specs against the root table alias. It returns
// one select expression per spec (aliased to the spec's ResultField) and
// the LEFT JOIN clauses to append to the FROM clause. Many specs render as
// correlated subqueries and contribute no outer joins.
func Compose(rootAlias string, specs []JoinSpec) (selects []string, joins []string) {
	c := &composer{}
	for _, s := range specs {
		switch s.Cardinality {
		case Many:
			selects = append(selects, c.many(rootAlias, s)+" AS "+quoteIdent(s.ResultField))
		default:
			expr, j := c.one(rootAlias, s)
			selects = append(selects, expr+" AS "+quoteIdent(s.ResultField))
			joins = append(joins, j...)
		}
	}
	return selects, joins
}

type composer struct {
	n int
}

func (c *composer) alias() string {
	c.n++
	return fmt.Sprintf("j%d", c.n)
}

// one renders a single-object resolution: LEFT JOIN plus a CASE expression
// that yields NULL when the reference does not match.
func (c *composer) one(parent string, s JoinSpec) (string, []string) {
	a := c.alias()
	joins := []string{fmt.Sprintf(
		"LEFT JOIN %s %s ON %s.%s = %s.%s",
		s.ForeignTable, a, a, s.ForeignField, parent, s.LocalField,
	)}

	pairs := make([]string, 0, len(s.Columns)+len(s.Nested))
	for _, col := range s.Columns {
		pairs = append(pairs, fmt.Sprintf("'%s', %s.%s", col.key(), a, col.Name))
	}
	for _, nested := range s.Nested {
		expr, nestedJoins := c.one(a, nested)
		joins = append(joins, nestedJoins...)
		pairs = append(pairs, fmt.Sprintf("'%s', %s", nested.ResultField, expr))
	}

	expr := fmt.Sprintf(
		"CASE WHEN %s.%s IS NULL THEN NULL ELSE jsonb_build_object(%s) END",
		a, s.ForeignField, strings.Join(pairs, ", "),
	)
	return expr, joins
}

// many renders an array resolution as a correlated subquery so pagination
// on the root query stays row-per-root-entity.
func (c *composer) many(parent string, s JoinSpec) string {
	a := c.alias()

	pairs := make([]string, 0, len(s.Columns)+len(s.Nested))
	for _, col := range s.Columns {
		pairs = append(pairs, fmt.Sprintf("'%s', %s.%s", col.key(), a, col.Name))
	}

	var innerJoins []string
	for _, nested := range s.Nested {
		expr, joins := c.one(a, nested)
		innerJoins = append(innerJoins, joins...)
		pairs = append(pairs, fmt.Sprintf("'%s', %s", nested.ResultField, expr))
	}

	orderBy := s.OrderBy
	if orderBy == "" {
		orderBy = s.ForeignField
	}

	var joinClause string
	if len(innerJoins) > 0 {
		joinClause = " " + strings.Join(innerJoins, " ")
	}

	return fmt.Sprintf(
		"COALESCE((SELECT jsonb_agg(jsonb_build_object(%s) ORDER BY %s.%s) FROM %s %s%s WHERE %s.%s = %s.%s), '[]'::jsonb)",
		strings.Join(pairs, ", "), a, orderBy,
		s.ForeignTable, a, joinClause,
		a, s.ForeignField, parent, s.LocalField,
	)
}

// optionListExpr resolves an ordered uuid[] column of variation-option
// references into a JSON array of option objects with their variation,
// preserving the stored order. Missing options are silently dropped; the
// caller compares lengths when incompleteness matters.
func optionListExpr(parent, arrayCol string) string {
	return fmt.Sprintf(
		"COALESCE((SELECT jsonb_agg(jsonb_build_object("+
			"'id', vo.id, 'value', vo.value, "+
			"'variation', CASE WHEN v.id IS NULL THEN NULL ELSE jsonb_build_object('id', v.id, 'name', v.name) END"+
			") ORDER BY u.ord) "+
			"FROM unnest(%s.%s) WITH ORDINALITY AS u(opt_id, ord) "+
			"JOIN variation_options vo ON vo.id = u.opt_id "+
			"LEFT JOIN variations v ON v.id = vo.variation_id), '[]'::jsonb)",
		parent, arrayCol,
	)
}

// quoteIdent quotes a result column alias.
func quoteIdent(s string) string {
	return `"` + s + `"`
}
