package criteria

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromURLValues_ParsesFiltersSortAndPagination(t *testing.T) {
	values, err := url.ParseQuery("status[eq]=failed&usuario_id[ne]=3&codigo[lk]=abc&sort=-created_at&limit=20&offset=40&ignored=1&bad[zz]=2")
	require.NoError(t, err)

	c := NewCriteriaBuilder().FromURLValues(values).Build()

	assert.Equal(t, []Filter{
		{Field: "codigo", Operator: OpLike, Value: "abc"},
		{Field: "status", Operator: OpEqual, Value: "failed"},
		{Field: "usuario_id", Operator: OpNotEqual, Value: "3"},
	}, c.Filters.Items)
	assert.Equal(t, Order{Field: "created_at", OrderType: DESC}, c.Order)
	require.NotNil(t, c.Limit)
	require.NotNil(t, c.Offset)
	assert.Equal(t, 20, *c.Limit)
	assert.Equal(t, 40, *c.Offset)
}

func TestFromURLValues_InvalidPaginationIsIgnored(t *testing.T) {
	values := url.Values{"limit": {"x"}, "offset": {"5"}}

	c := NewCriteriaBuilder().FromURLValues(values).Build()

	assert.Nil(t, c.Limit)
	assert.Nil(t, c.Offset)
	assert.True(t, c.Filters.IsEmpty())
	assert.True(t, c.Order.IsEmpty())
}

func TestFromURLValues_NegativeOffsetDefaultsToZero(t *testing.T) {
	c := NewCriteriaBuilder().FromURLValues(url.Values{"limit": {"5"}, "offset": {"-1"}}).Build()

	require.NotNil(t, c.Offset)
	assert.Equal(t, 0, *c.Offset)
}

func TestOperator_QuerySuffix(t *testing.T) {
	assert.Equal(t, "eq", OpEqual.QuerySuffix())
	assert.Equal(t, "lk", OpLike.QuerySuffix())
	assert.Equal(t, "notnull", OpIsNotNull.QuerySuffix())
	assert.Equal(t, "eq", Operator("??").QuerySuffix())
}

func TestBuilder_WhereOrderPaginate(t *testing.T) {
	c := NewCriteriaBuilder().
		Where("empresa_id", OpEqual, int64(7)).
		OrderBy("created_at", ASC).
		Paginate(10, 0).
		Build()

	assert.Len(t, c.Filters.Items, 1)
	assert.Equal(t, "created_at", c.Order.Field)
	assert.Equal(t, 10, *c.Limit)
}
