package pgdb

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DRSN-tech/home-store/internal/repository/pgdb/converter"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestOrderRepo_ListByUserGroupsItems(t *testing.T) {
	mock := newMock(t)
	repo := NewOrderRepo(mock, &converter.OrderConverterImpl{})
	now := time.Now()

	cols := []string{
		"id", "user_id", "status", "is_paid", "created_at",
		"item_id", "name", "price", "quantity", "product_id", "slug", "image",
	}
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY o.created_at DESC, o.id DESC, oi.id")).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows(cols).
			AddRow(int64(2), int64(1), "В обработке", false, now,
				ptr(int64(20)), ptr("Диван"), ptr(int64(5000)), ptr(1), ptr(int64(1)), ptr("sofa"), ptr("goods/sofa.jpg")).
			AddRow(int64(2), int64(1), "В обработке", false, now,
				ptr(int64(21)), ptr("Стул"), ptr(int64(1000)), ptr(3), nil, nil, nil).
			AddRow(int64(1), int64(1), "Доставлен", true, now.Add(-time.Hour),
				nil, nil, nil, nil, nil, nil, nil))

	orders, err := repo.ListByUser(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, orders, 2)

	assert.Equal(t, int64(2), orders[0].ID)
	require.Len(t, orders[0].Items, 2)
	assert.Equal(t, "sofa", orders[0].Items[0].Product.Slug)
	assert.Equal(t, int64(0), orders[0].Items[1].Product.ID)
	assert.Equal(t, int64(8000), orders[0].TotalPrice())

	assert.Equal(t, int64(1), orders[1].ID)
	assert.Empty(t, orders[1].Items)
	assert.True(t, orders[1].IsPaid)
}
