// Package query turns flat listing query parameters into SQL filter, sort
// and pagination instructions. Field names are resolved through a
// per-listing Definition so only exposed columns ever reach the SQL text;
// values always travel as bound arguments.
package query

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Reserved parameter names that are never treated as generic filters.
const (
	paramPage        = "page"
	paramPageSize    = "pageSize"
	paramSort        = "sort"
	paramFields      = "fields"
	paramPrice       = "price"
	paramBrand       = "brand"
	paramTotalRating = "totalRating"
	paramProductName = "productName"
)

// Sort tokens with special behaviour.
const (
	sortCreationTime = "ctime"
	sortSales        = "sales"
	sortPopularity   = "pop" // recognised but inert; kept for client compatibility
)

// salesThreshold is the minimum sold count implied by sort=sales.
const salesThreshold = 10

// comparator tokens accepted in "field[op]" keys.
var comparators = map[string]string{
	"gte": ">=",
	"gt":  ">",
	"lte": "<=",
	"lt":  "<",
}

// Definition describes what one listing endpoint exposes to the normalizer.
type Definition struct {
	// Columns maps an exposed parameter/field name to its SQL column.
	// Parameters naming anything else are ignored.
	Columns map[string]string

	// DefaultPageSize is used when the pageSize parameter is absent.
	DefaultPageSize int

	// MaxPageSize caps pageSize. Zero means 100.
	MaxPageSize int
}

// Cond is a single WHERE condition. Expr contains at most one "?"
// placeholder; Arg is its bound value. Constant conditions have no "?".
type Cond struct {
	Expr string
	Arg  any
}

// SortKey is one ORDER BY key.
type SortKey struct {
	Column string
	Desc   bool
}

// Options is the normalized form of a listing request.
type Options struct {
	Conds    []Cond
	Sort     []SortKey
	Fields   []string
	Page     int
	PageSize int
}

// Skip returns the number of rows to skip: (page-1) x pageSize.
func (o Options) Skip() int {
	return (o.Page - 1) * o.PageSize
}

// Parse normalizes the given query parameters against a listing definition.
// Unknown fields, malformed bounds and out-of-range rating thresholds are
// ignored rather than rejected, matching the permissive client contract.
func Parse(values url.Values, def Definition) Options {
	opts := Options{Page: 1, PageSize: def.DefaultPageSize}
	if opts.PageSize <= 0 {
		opts.PageSize = 10
	}
	maxSize := def.MaxPageSize
	if maxSize <= 0 {
		maxSize = 100
	}

	if p, err := strconv.Atoi(values.Get(paramPage)); err == nil && p > 0 {
		opts.Page = p
	}
	if ps, err := strconv.Atoi(values.Get(paramPageSize)); err == nil && ps > 0 {
		opts.PageSize = ps
	}
	if opts.PageSize > maxSize {
		opts.PageSize = maxSize
	}

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := values.Get(key)
		if value == "" {
			continue
		}

		switch key {
		case paramPage, paramPageSize:
			// handled above
		case paramSort:
			opts.applySort(value, def)
		case paramFields:
			opts.applyFields(value, def)
		case paramPrice:
			opts.applyPriceRange(value, def)
		case paramBrand:
			opts.applyBrandSet(value, def)
		case paramTotalRating:
			opts.applyRatingThreshold(value, def)
		case paramProductName:
			opts.applyNameSearch(value, def)
		default:
			opts.applyGeneric(key, value, def)
		}
	}

	return opts
}

// applySort handles the sort parameter. ctime sorts newest first, sales is
// a filter side-effect (sold count at or above the threshold), pop is a
// documented no-op. Anything else is a comma list of exposed fields where a
// leading '-' means descending, applied as a multi-key tie-break in order.
func (o *Options) applySort(value string, def Definition) {
	switch value {
	case sortCreationTime:
		if col, ok := def.Columns["ctime"]; ok {
			o.Sort = append(o.Sort, SortKey{Column: col, Desc: true})
		}
	case sortSales:
		if col, ok := def.Columns["sold"]; ok {
			o.Conds = append(o.Conds, Cond{Expr: fmt.Sprintf("%s >= %d", col, salesThreshold)})
		}
	case sortPopularity:
		// inert by contract
	default:
		for _, field := range strings.Split(value, ",") {
			field = strings.TrimSpace(field)
			desc := strings.HasPrefix(field, "-")
			field = strings.TrimPrefix(field, "-")
			if col, ok := def.Columns[field]; ok {
				o.Sort = append(o.Sort, SortKey{Column: col, Desc: desc})
			}
		}
	}
}

// applyFields records the requested projection. Fields name JSON keys of
// the response shape, so they are not resolved through Columns; Project
// applies them after composition.
func (o *Options) applyFields(value string, _ Definition) {
	for _, field := range strings.Split(value, ",") {
		if field = strings.TrimSpace(field); field != "" {
			o.Fields = append(o.Fields, field)
		}
	}
}

// applyPriceRange handles "min,max" where both bounds are optional and
// non-numeric bounds are ignored.
func (o *Options) applyPriceRange(value string, def Definition) {
	col, ok := def.Columns[paramPrice]
	if !ok {
		return
	}
	parts := strings.SplitN(value, ",", 2)
	if min, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64); err == nil {
		o.Conds = append(o.Conds, Cond{Expr: col + " >= ?", Arg: min})
	}
	if len(parts) == 2 {
		if max, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64); err == nil {
			o.Conds = append(o.Conds, Cond{Expr: col + " <= ?", Arg: max})
		}
	}
}

// applyBrandSet handles a comma-separated brand ID list as set membership.
// Malformed IDs are dropped from the set.
func (o *Options) applyBrandSet(value string, def Definition) {
	col, ok := def.Columns[paramBrand]
	if !ok {
		return
	}
	var ids []uuid.UUID
	for _, raw := range strings.Split(value, ",") {
		if id, err := uuid.Parse(strings.TrimSpace(raw)); err == nil {
			ids = append(ids, id)
		}
	}
	if len(ids) > 0 {
		o.Conds = append(o.Conds, Cond{Expr: col + " = ANY(?)", Arg: ids})
	}
}

// applyRatingThreshold handles totalRating: exact match at 5, at-least
// semantics strictly between 1 and 5, ignored otherwise.
func (o *Options) applyRatingThreshold(value string, def Definition) {
	col, ok := def.Columns[paramTotalRating]
	if !ok {
		return
	}
	threshold, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return
	}
	switch {
	case threshold == 5:
		o.Conds = append(o.Conds, Cond{Expr: col + " = ?", Arg: threshold})
	case threshold > 1 && threshold < 5:
		o.Conds = append(o.Conds, Cond{Expr: col + " >= ?", Arg: threshold})
	}
}

// applyNameSearch handles productName as a case-insensitive substring match.
func (o *Options) applyNameSearch(value string, def Definition) {
	col, ok := def.Columns[paramProductName]
	if !ok {
		return
	}
	o.Conds = append(o.Conds, Cond{Expr: col + " ILIKE ?", Arg: "%" + escapeLike(value) + "%"})
}

// applyGeneric passes an exposed field through as an equality filter, or as
// a range filter when the key carries a comparator suffix: "field[gte]".
func (o *Options) applyGeneric(key, value string, def Definition) {
	field, op := key, "="
	if i := strings.IndexByte(key, '['); i > 0 && strings.HasSuffix(key, "]") {
		if sqlOp, ok := comparators[key[i+1:len(key)-1]]; ok {
			field, op = key[:i], sqlOp
		} else {
			return
		}
	}
	if col, ok := def.Columns[field]; ok {
		o.Conds = append(o.Conds, Cond{Expr: col + " " + op + " ?", Arg: value})
	}
}

// escapeLike escapes LIKE metacharacters in a user-supplied search term.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}

// WhereClause renders the conditions as a WHERE clause with pgx positional
// placeholders starting at next. It returns the clause (empty when there
// are no conditions), the bound arguments and the next free placeholder
// index. extra conditions (already-rendered constant exprs such as scoping
// by user) can be prepended by the caller.
func (o Options) WhereClause(next int) (string, []any, int) {
	if len(o.Conds) == 0 {
		return "", nil, next
	}
	exprs := make([]string, 0, len(o.Conds))
	args := make([]any, 0, len(o.Conds))
	for _, c := range o.Conds {
		if c.Arg == nil {
			exprs = append(exprs, c.Expr)
			continue
		}
		exprs = append(exprs, strings.Replace(c.Expr, "?", fmt.Sprintf("$%d", next), 1))
		args = append(args, c.Arg)
		next++
	}
	return "WHERE " + strings.Join(exprs, " AND "), args, next
}

// OrderByClause renders the sort keys, falling back to the given default
// when no sort was requested.
func (o Options) OrderByClause(fallback string) string {
	if len(o.Sort) == 0 {
		if fallback == "" {
			return ""
		}
		return "ORDER BY " + fallback
	}
	keys := make([]string, len(o.Sort))
	for i, k := range o.Sort {
		dir := "ASC"
		if k.Desc {
			dir = "DESC"
		}
		keys[i] = k.Column + " " + dir
	}
	return "ORDER BY " + strings.Join(keys, ", ")
}

// LimitOffset renders pagination as LIMIT/OFFSET bound arguments.
func (o Options) LimitOffset(next int) (string, []any, int) {
	clause := fmt.Sprintf("LIMIT $%d OFFSET $%d", next, next+1)
	return clause, []any{o.PageSize, o.Skip()}, next + 2
}

// Project reduces v to the requested fields. Without a projection v is
// returned untouched. Slices are projected element-wise; elements reduce to
// maps keyed by their JSON field names.
func (o Options) Project(v any) any {
	if len(o.Fields) == 0 {
		return v
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return v
	}

	var list []map[string]any
	if err := json.Unmarshal(raw, &list); err == nil {
		out := make([]map[string]any, len(list))
		for i, item := range list {
			out[i] = pick(item, o.Fields)
		}
		return out
	}

	var single map[string]any
	if err := json.Unmarshal(raw, &single); err == nil {
		return pick(single, o.Fields)
	}
	return v
}

func pick(m map[string]any, fields []string) map[string]any {
	out := make(map[string]any, len(fields))
	for _, f := range fields {
		if v, ok := m[f]; ok {
			out[f] = v
		}
	}
	return out
}
