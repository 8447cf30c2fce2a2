package pgdb

import (
	"testing"

	"github.com/DRSN-tech/home-store/internal/repository/pgdb/converter"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})

	return mock
}

var productCols = []string{
	"id", "name", "slug", "description", "image", "price", "discount", "quantity", "category_id", "category_name",
}

func productRow(id int64, slug string, price int64, discount string) []any {
	return []any{id, slug, slug, "", "goods/" + slug + ".jpg", price, discount, 1, int64(1), "Диваны"}
}

func newProductRepoWithMock(t *testing.T) (*ProductRepo, pgxmock.PgxPoolIface) {
	mock := newMock(t)
	return NewProductRepo(mock, &converter.ProductConverterImpl{}), mock
}
