package readmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompose_One(t *testing.T) {
	selects, joins := Compose("p", []JoinSpec{{
		LocalField:   "brand_id",
		ForeignTable: "brands",
		ForeignField: "id",
		ResultField:  "brand",
		Columns:      []Col{{Name: "id"}, {Name: "name"}},
		Cardinality:  One,
	}})

	require.Len(t, selects, 1)
	assert.Equal(t,
		`CASE WHEN j1.id IS NULL THEN NULL ELSE jsonb_build_object('id', j1.id, 'name', j1.name) END AS "brand"`,
		selects[0],
	)
	require.Len(t, joins, 1)
	assert.Equal(t, "LEFT JOIN brands j1 ON j1.id = p.brand_id", joins[0])
}

func TestCompose_OneWithNested(t *testing.T) {
	selects, joins := Compose("p", []JoinSpec{{
		LocalField:   "category_item_id",
		ForeignTable: "category_items",
		ForeignField: "id",
		ResultField:  "categoryItem",
		Columns:      []Col{{Name: "name"}},
		Cardinality:  One,
		Nested: []JoinSpec{{
			LocalField:   "category_id",
			ForeignTable: "categories",
			ForeignField: "id",
			ResultField:  "category",
			Columns:      []Col{{Name: "name"}},
			Cardinality:  One,
		}},
	}})

	require.Len(t, joins, 2)
	assert.Equal(t, "LEFT JOIN category_items j1 ON j1.id = p.category_item_id", joins[0])
	// the nested join hangs off the outer join's alias, not the root
	assert.Equal(t, "LEFT JOIN categories j2 ON j2.id = j1.category_id", joins[1])

	require.Len(t, selects, 1)
	assert.Contains(t, selects[0], "'category', CASE WHEN j2.id IS NULL THEN NULL")
	assert.Contains(t, selects[0], `AS "categoryItem"`)
}

func TestCompose_Many(t *testing.T) {
	selects, joins := Compose("p", []JoinSpec{{
		LocalField:   "id",
		ForeignTable: "ratings",
		ForeignField: "product_id",
		ResultField:  "ratings",
		Columns:      []Col{{Name: "star"}, {Name: "comment"}},
		Cardinality:  Many,
	}})

	assert.Empty(t, joins, "many resolutions are correlated subqueries")
	require.Len(t, selects, 1)

	expr := selects[0]
	assert.Contains(t, expr, "COALESCE((SELECT jsonb_agg(jsonb_build_object('star', j1.star, 'comment', j1.comment)")
	assert.Contains(t, expr, "ORDER BY j1.product_id")
	assert.Contains(t, expr, "FROM ratings j1")
	assert.Contains(t, expr, "WHERE j1.product_id = p.id), '[]'::jsonb)")
	assert.Contains(t, expr, `AS "ratings"`)
}

func TestCompose_ManyWithOrderBy(t *testing.T) {
	selects, _ := Compose("b", []JoinSpec{{
		LocalField:   "id",
		ForeignTable: "blog_reactions",
		ForeignField: "blog_id",
		ResultField:  "reactions",
		Columns:      []Col{{Name: "kind"}},
		Cardinality:  Many,
		OrderBy:      "created_at",
	}})

	require.Len(t, selects, 1)
	assert.Contains(t, selects[0], "ORDER BY j1.created_at")
}

func TestCompose_ColumnKeyAlias(t *testing.T) {
	selects, _ := Compose("u", []JoinSpec{{
		LocalField:   "avatar_id",
		ForeignTable: "media",
		ForeignField: "id",
		ResultField:  "avatar",
		Columns:      []Col{{Name: "object_url", Key: "url"}},
		Cardinality:  One,
	}})

	require.Len(t, selects, 1)
	assert.Contains(t, selects[0], "'url', j1.object_url")
	assert.NotContains(t, selects[0], "'object_url'")
}

func TestCompose_AliasesStayUniqueAcrossSpecs(t *testing.T) {
	_, joins := Compose("p", []JoinSpec{
		{
			LocalField: "brand_id", ForeignTable: "brands", ForeignField: "id",
			ResultField: "brand", Columns: []Col{{Name: "name"}}, Cardinality: One,
		},
		{
			LocalField: "category_item_id", ForeignTable: "category_items", ForeignField: "id",
			ResultField: "categoryItem", Columns: []Col{{Name: "name"}}, Cardinality: One,
		},
	})

	require.Len(t, joins, 2)
	assert.Contains(t, joins[0], " j1 ")
	assert.Contains(t, joins[1], " j2 ")
}

func TestOptionListExpr(t *testing.T) {
	expr := optionListExpr("cl", "variation_option_ids")

	assert.Contains(t, expr, "unnest(cl.variation_option_ids) WITH ORDINALITY")
	assert.Contains(t, expr, "ORDER BY u.ord", "stored option order must be preserved")
	assert.Contains(t, expr, "JOIN variation_options vo ON vo.id = u.opt_id")
	assert.Contains(t, expr, "'[]'::jsonb")
}
