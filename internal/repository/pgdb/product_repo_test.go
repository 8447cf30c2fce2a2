package pgdb

import (
	"context"
	"regexp"
	"testing"

	"github.com/DRSN-tech/home-store/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/home-store/internal/usecase"
	"github.com/DRSN-tech/home-store/pkg/e"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRepo_CountWithFilter(t *testing.T) {
	repo, mock := newProductRepoWithMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE cat.slug = $1 AND pr.discount > 0")).
		WithArgs("sofas").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(2))

	count, err := repo.Count(context.Background(), usecase.ProductFilter{CategorySlug: "sofas", OnSale: true})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestProductRepo_ListOrderAndPaging(t *testing.T) {
	repo, mock := newProductRepoWithMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY pr.price DESC, pr.id") + `\s+` + regexp.QuoteMeta("LIMIT $2 OFFSET $3")).
		WithArgs("sofas", 3, 3).
		WillReturnRows(pgxmock.NewRows(productCols).
			AddRow(productRow(3, "sofa-3", 9000, "0")...).
			AddRow(productRow(5, "sofa-5", 7000, "12.50")...))

	items, err := repo.List(context.Background(), usecase.ProductFilter{CategorySlug: "sofas"}, usecase.OrderPriceDesc, 3, 3)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, int64(3), items[0].ID)
	assert.False(t, items[0].OnSale())
	assert.Equal(t, "12.5", items[1].Discount.String())
	assert.Equal(t, "Диваны", items[1].CategoryName)
}

func TestProductRepo_ListWithoutFilter(t *testing.T) {
	repo, mock := newProductRepoWithMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY pr.id") + `\s+` + regexp.QuoteMeta("LIMIT $1 OFFSET $2")).
		WithArgs(3, 0).
		WillReturnRows(pgxmock.NewRows(productCols))

	items, err := repo.List(context.Background(), usecase.ProductFilter{}, usecase.OrderDefault, 3, 0)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestProductRepo_ListRejectsUnknownOrder(t *testing.T) {
	repo, _ := newProductRepoWithMock(t)

	_, err := repo.List(context.Background(), usecase.ProductFilter{}, usecase.ProductOrder("id; DROP TABLE products"), 3, 0)
	assert.ErrorIs(t, err, e.ErrInvalidSort)
}

func TestProductRepo_GetBySlug(t *testing.T) {
	repo, mock := newProductRepoWithMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE pr.slug = $1")).
		WithArgs("sofa-1").
		WillReturnRows(pgxmock.NewRows(productCols).AddRow(productRow(1, "sofa-1", 5000, "0")...))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE pr.slug = $1")).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	product, err := repo.GetBySlug(context.Background(), "sofa-1")
	require.NoError(t, err)
	assert.Equal(t, "sofa-1", product.Slug)
	assert.Equal(t, int64(5000), product.SellPrice())

	_, err = repo.GetBySlug(context.Background(), "missing")
	assert.ErrorIs(t, err, e.ErrNotFound)
	assert.Contains(t, err.Error(), `ProductRepo.GetBySlug: slug "missing"`)
}

func TestCategoryRepo_List(t *testing.T) {
	mock := newMock(t)
	repo := NewCategoryRepo(mock, &converter.CategoryConverterImpl{})

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, slug FROM categories")).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "slug"}).
			AddRow(int64(1), "Все товары", "all").
			AddRow(int64(2), "Диваны", "sofas"))

	categories, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "sofas", categories[1].Slug)
}
