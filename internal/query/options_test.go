package query

import (
	"net/url"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productDef() Definition {
	return Definition{
		Columns: map[string]string{
			"price":       "p.price",
			"brand":       "p.brand_id",
			"totalRating": "p.total_rating",
			"productName": "p.name",
			"sold":        "p.sold",
			"ctime":       "p.created_at",
			"name":        "p.name",
		},
		DefaultPageSize: 10,
		MaxPageSize:     50,
	}
}

func TestParse_Pagination(t *testing.T) {
	tests := []struct {
		name         string
		values       url.Values
		wantPage     int
		wantPageSize int
		wantSkip     int
	}{
		{"defaults", url.Values{}, 1, 10, 0},
		{"explicit page", url.Values{"page": {"3"}}, 3, 10, 20},
		{"explicit page size", url.Values{"page": {"2"}, "pageSize": {"25"}}, 2, 25, 25},
		{"page size capped at maximum", url.Values{"pageSize": {"500"}}, 1, 50, 0},
		{"non-numeric page ignored", url.Values{"page": {"abc"}}, 1, 10, 0},
		{"zero page ignored", url.Values{"page": {"0"}}, 1, 10, 0},
		{"negative page size ignored", url.Values{"pageSize": {"-5"}}, 1, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := Parse(tt.values, productDef())
			assert.Equal(t, tt.wantPage, opts.Page)
			assert.Equal(t, tt.wantPageSize, opts.PageSize)
			assert.Equal(t, tt.wantSkip, opts.Skip())
		})
	}
}

func TestParse_Sort(t *testing.T) {
	def := productDef()

	t.Run("ctime sorts newest first", func(t *testing.T) {
		opts := Parse(url.Values{"sort": {"ctime"}}, def)
		require.Len(t, opts.Sort, 1)
		assert.Equal(t, SortKey{Column: "p.created_at", Desc: true}, opts.Sort[0])
	})

	t.Run("sales becomes a sold-count filter, not a sort", func(t *testing.T) {
		opts := Parse(url.Values{"sort": {"sales"}}, def)
		assert.Empty(t, opts.Sort)
		require.Len(t, opts.Conds, 1)
		assert.Equal(t, "p.sold >= 10", opts.Conds[0].Expr)
		assert.Nil(t, opts.Conds[0].Arg)
	})

	t.Run("pop is inert", func(t *testing.T) {
		opts := Parse(url.Values{"sort": {"pop"}}, def)
		assert.Empty(t, opts.Sort)
		assert.Empty(t, opts.Conds)
	})

	t.Run("field list with descending prefix", func(t *testing.T) {
		opts := Parse(url.Values{"sort": {"-price,name"}}, def)
		require.Len(t, opts.Sort, 2)
		assert.Equal(t, SortKey{Column: "p.price", Desc: true}, opts.Sort[0])
		assert.Equal(t, SortKey{Column: "p.name", Desc: false}, opts.Sort[1])
	})

	t.Run("unexposed sort field ignored", func(t *testing.T) {
		opts := Parse(url.Values{"sort": {"secret_column"}}, def)
		assert.Empty(t, opts.Sort)
	})
}

func TestParse_PriceRange(t *testing.T) {
	def := productDef()

	t.Run("both bounds", func(t *testing.T) {
		opts := Parse(url.Values{"price": {"100,500"}}, def)
		require.Len(t, opts.Conds, 2)
		assert.Equal(t, Cond{Expr: "p.price >= ?", Arg: 100.0}, opts.Conds[0])
		assert.Equal(t, Cond{Expr: "p.price <= ?", Arg: 500.0}, opts.Conds[1])
	})

	t.Run("lower bound only", func(t *testing.T) {
		opts := Parse(url.Values{"price": {"100"}}, def)
		require.Len(t, opts.Conds, 1)
		assert.Equal(t, Cond{Expr: "p.price >= ?", Arg: 100.0}, opts.Conds[0])
	})

	t.Run("upper bound only", func(t *testing.T) {
		opts := Parse(url.Values{"price": {",500"}}, def)
		require.Len(t, opts.Conds, 1)
		assert.Equal(t, Cond{Expr: "p.price <= ?", Arg: 500.0}, opts.Conds[0])
	})

	t.Run("non-numeric bounds ignored", func(t *testing.T) {
		opts := Parse(url.Values{"price": {"cheap,expensive"}}, def)
		assert.Empty(t, opts.Conds)
	})
}

func TestParse_BrandSet(t *testing.T) {
	def := productDef()
	b1, b2 := uuid.New(), uuid.New()

	t.Run("comma list becomes set membership", func(t *testing.T) {
		opts := Parse(url.Values{"brand": {b1.String() + "," + b2.String()}}, def)
		require.Len(t, opts.Conds, 1)
		assert.Equal(t, "p.brand_id = ANY(?)", opts.Conds[0].Expr)
		assert.Equal(t, []uuid.UUID{b1, b2}, opts.Conds[0].Arg)
	})

	t.Run("malformed ids dropped from the set", func(t *testing.T) {
		opts := Parse(url.Values{"brand": {"not-a-uuid," + b1.String()}}, def)
		require.Len(t, opts.Conds, 1)
		assert.Equal(t, []uuid.UUID{b1}, opts.Conds[0].Arg)
	})

	t.Run("all ids malformed drops the condition", func(t *testing.T) {
		opts := Parse(url.Values{"brand": {"nope,also-nope"}}, def)
		assert.Empty(t, opts.Conds)
	})
}

func TestParse_RatingThreshold(t *testing.T) {
	def := productDef()

	tests := []struct {
		name     string
		value    string
		wantExpr string
	}{
		{"exact match at five", "5", "p.total_rating = ?"},
		{"at-least between one and five", "3.5", "p.total_rating >= ?"},
		{"one is ignored", "1", ""},
		{"above five is ignored", "6", ""},
		{"non-numeric is ignored", "high", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := Parse(url.Values{"totalRating": {tt.value}}, def)
			if tt.wantExpr == "" {
				assert.Empty(t, opts.Conds)
				return
			}
			require.Len(t, opts.Conds, 1)
			assert.Equal(t, tt.wantExpr, opts.Conds[0].Expr)
		})
	}
}

func TestParse_NameSearch(t *testing.T) {
	opts := Parse(url.Values{"productName": {"50%_off"}}, productDef())
	require.Len(t, opts.Conds, 1)
	assert.Equal(t, "p.name ILIKE ?", opts.Conds[0].Expr)
	assert.Equal(t, `%50\%\_off%`, opts.Conds[0].Arg)
}

func TestParse_GenericFilters(t *testing.T) {
	def := productDef()

	t.Run("equality on an exposed field", func(t *testing.T) {
		opts := Parse(url.Values{"name": {"Classic Tee"}}, def)
		require.Len(t, opts.Conds, 1)
		assert.Equal(t, Cond{Expr: "p.name = ?", Arg: "Classic Tee"}, opts.Conds[0])
	})

	t.Run("comparator suffix", func(t *testing.T) {
		opts := Parse(url.Values{"sold[gte]": {"5"}}, def)
		require.Len(t, opts.Conds, 1)
		assert.Equal(t, Cond{Expr: "p.sold >= ?", Arg: "5"}, opts.Conds[0])
	})

	t.Run("unknown comparator ignored", func(t *testing.T) {
		opts := Parse(url.Values{"sold[within]": {"5"}}, def)
		assert.Empty(t, opts.Conds)
	})

	t.Run("unexposed field ignored", func(t *testing.T) {
		opts := Parse(url.Values{"passwordHash": {"x"}}, def)
		assert.Empty(t, opts.Conds)
	})
}

func TestParse_Fields(t *testing.T) {
	opts := Parse(url.Values{"fields": {"name, price, "}}, productDef())
	assert.Equal(t, []string{"name", "price"}, opts.Fields)
}

func TestOptions_WhereClause(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		clause, args, next := Options{}.WhereClause(1)
		assert.Empty(t, clause)
		assert.Empty(t, args)
		assert.Equal(t, 1, next)
	})

	t.Run("numbers placeholders from the starting index", func(t *testing.T) {
		opts := Options{Conds: []Cond{
			{Expr: "p.price >= ?", Arg: 100.0},
			{Expr: "p.sold >= 10"},
			{Expr: "p.price <= ?", Arg: 500.0},
		}}
		clause, args, next := opts.WhereClause(3)
		assert.Equal(t, "WHERE p.price >= $3 AND p.sold >= 10 AND p.price <= $4", clause)
		assert.Equal(t, []any{100.0, 500.0}, args)
		assert.Equal(t, 5, next)
	})
}

func TestOptions_OrderByClause(t *testing.T) {
	t.Run("fallback when no sort requested", func(t *testing.T) {
		assert.Equal(t, "ORDER BY p.created_at DESC", Options{}.OrderByClause("p.created_at DESC"))
		assert.Empty(t, Options{}.OrderByClause(""))
	})

	t.Run("multi-key sort", func(t *testing.T) {
		opts := Options{Sort: []SortKey{
			{Column: "p.price", Desc: true},
			{Column: "p.name"},
		}}
		assert.Equal(t, "ORDER BY p.price DESC, p.name ASC", opts.OrderByClause("p.created_at DESC"))
	})
}

func TestOptions_LimitOffset(t *testing.T) {
	opts := Options{Page: 3, PageSize: 10}
	clause, args, next := opts.LimitOffset(5)
	assert.Equal(t, "LIMIT $5 OFFSET $6", clause)
	assert.Equal(t, []any{10, 20}, args)
	assert.Equal(t, 7, next)
}

func TestOptions_Project(t *testing.T) {
	type row struct {
		Name  string  `json:"name"`
		Price float64 `json:"price"`
		Sold  int     `json:"sold"`
	}

	t.Run("no projection returns the value untouched", func(t *testing.T) {
		rows := []row{{Name: "Tee", Price: 20, Sold: 3}}
		assert.Equal(t, any(rows), Options{}.Project(rows))
	})

	t.Run("slice projects element-wise by JSON name", func(t *testing.T) {
		opts := Options{Fields: []string{"name", "price"}}
		got := opts.Project([]row{{Name: "Tee", Price: 20, Sold: 3}})
		assert.Equal(t, []map[string]any{{"name": "Tee", "price": 20.0}}, got)
	})

	t.Run("single value projects to a map", func(t *testing.T) {
		opts := Options{Fields: []string{"name"}}
		got := opts.Project(row{Name: "Tee", Price: 20})
		assert.Equal(t, map[string]any{"name": "Tee"}, got)
	})

	t.Run("unknown fields are simply absent", func(t *testing.T) {
		opts := Options{Fields: []string{"name", "weight"}}
		got := opts.Project(row{Name: "Tee"})
		assert.Equal(t, map[string]any{"name": "Tee"}, got)
	})
}
