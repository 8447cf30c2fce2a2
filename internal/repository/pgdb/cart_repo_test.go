package pgdb

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DRSN-tech/home-store/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/home-store/internal/usecase"
	"github.com/DRSN-tech/home-store/pkg/e"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCartRepoWithMock(t *testing.T) (*CartRepo, pgxmock.PgxPoolIface) {
	mock := newMock(t)
	conv := &converter.CartConverterImpl{Products: &converter.ProductConverterImpl{}}
	return NewCartRepo(mock, conv), mock
}

func TestCartRepo_GetBySessionKeyLoadsItems(t *testing.T) {
	repo, mock := newCartRepoWithMock(t)
	key := "anon"

	mock.ExpectQuery(regexp.QuoteMeta("FROM carts WHERE session_key = $1")).
		WithArgs(key).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "session_key", "created_at"}).
			AddRow(int64(4), nil, &key, time.Now()))

	itemCols := append([]string{"id", "cart_id", "quantity"}, productCols...)
	mock.ExpectQuery(regexp.QuoteMeta("FROM cart_items ci")).
		WithArgs(int64(4)).
		WillReturnRows(pgxmock.NewRows(itemCols).
			AddRow(append([]any{int64(10), int64(4), 2}, productRow(1, "sofa-1", 5000, "10")...)...).
			AddRow(append([]any{int64(11), int64(4), 1}, productRow(2, "sofa-2", 3000, "0")...)...))

	cart, err := repo.GetBySessionKey(context.Background(), key)
	require.NoError(t, err)
	assert.Nil(t, cart.UserID)
	require.NotNil(t, cart.SessionKey)
	assert.Equal(t, key, *cart.SessionKey)
	require.Len(t, cart.Items, 2)
	assert.Equal(t, int64(4500*2+3000), cart.TotalPrice())
}

func TestCartRepo_GetByUserIDNotFound(t *testing.T) {
	repo, mock := newCartRepoWithMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM carts WHERE user_id = $1")).
		WithArgs(int64(9)).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByUserID(context.Background(), 9)
	assert.ErrorIs(t, err, e.ErrNotFound)
}

func TestCartRepo_CreateForUser(t *testing.T) {
	repo, mock := newCartRepoWithMock(t)
	userID := int64(3)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO carts (user_id, session_key)")).
		WithArgs(&userID, (*string)(nil)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "session_key", "created_at"}).
			AddRow(int64(1), &userID, nil, time.Now()))

	cart, err := repo.Create(context.Background(), usecase.CartOwner{UserID: userID})
	require.NoError(t, err)
	require.NotNil(t, cart.UserID)
	assert.Equal(t, userID, *cart.UserID)
	assert.Nil(t, cart.SessionKey)
	assert.Empty(t, cart.Items)
}

func TestCartRepo_CreateConflictReadsExistingCart(t *testing.T) {
	repo, mock := newCartRepoWithMock(t)
	userID := int64(3)

	mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT DO NOTHING")).
		WithArgs(&userID, (*string)(nil)).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery(regexp.QuoteMeta("FROM carts WHERE user_id = $1")).
		WithArgs(userID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "session_key", "created_at"}).
			AddRow(int64(8), &userID, nil, time.Now()))
	mock.ExpectQuery(regexp.QuoteMeta("FROM cart_items ci")).
		WithArgs(int64(8)).
		WillReturnRows(pgxmock.NewRows(append([]string{"id", "cart_id", "quantity"}, productCols...)))

	cart, err := repo.Create(context.Background(), usecase.CartOwner{UserID: userID})
	require.NoError(t, err)
	assert.Equal(t, int64(8), cart.ID)
	require.NotNil(t, cart.UserID)
	assert.Equal(t, userID, *cart.UserID)
}

func TestCartRepo_CreateError(t *testing.T) {
	repo, mock := newCartRepoWithMock(t)
	key := "anon"

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO carts (user_id, session_key)")).
		WithArgs((*int64)(nil), &key).
		WillReturnError(assert.AnError)

	_, err := repo.Create(context.Background(), usecase.CartOwner{SessionKey: key})
	assert.ErrorIs(t, err, assert.AnError)
}

func TestCartRepo_DeleteByUserID(t *testing.T) {
	repo, mock := newCartRepoWithMock(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM carts WHERE user_id = $1")).
		WithArgs(int64(3)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	// Отсутствие корзины у пользователя не ошибка.
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM carts WHERE user_id = $1")).
		WithArgs(int64(4)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM carts WHERE user_id = $1")).
		WithArgs(int64(5)).
		WillReturnError(assert.AnError)

	require.NoError(t, repo.DeleteByUserID(context.Background(), 3))
	require.NoError(t, repo.DeleteByUserID(context.Background(), 4))
	assert.ErrorIs(t, repo.DeleteByUserID(context.Background(), 5), assert.AnError)
}

func TestCartRepo_AssignToUser(t *testing.T) {
	repo, mock := newCartRepoWithMock(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE carts SET user_id = $1, session_key = NULL WHERE id = $2")).
		WithArgs(int64(3), int64(4)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE carts SET user_id = $1, session_key = NULL WHERE id = $2")).
		WithArgs(int64(3), int64(5)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	require.NoError(t, repo.AssignToUser(context.Background(), 4, 3))
	assert.ErrorIs(t, repo.AssignToUser(context.Background(), 5, 3), e.ErrNotFound)
}

func TestCartRepo_AddAndRemoveItem(t *testing.T) {
	repo, mock := newCartRepoWithMock(t)

	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (cart_id, product_id)")).
		WithArgs(int64(4), int64(1), 1).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM cart_items WHERE id = $1 AND cart_id = $2")).
		WithArgs(int64(10), int64(4)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	require.NoError(t, repo.AddItem(context.Background(), 4, 1, 1))
	assert.ErrorIs(t, repo.AddItem(context.Background(), 4, 1, 0), e.ErrInvalidQuantity)
	assert.ErrorIs(t, repo.RemoveItem(context.Background(), 4, 10), e.ErrNotFound)
}
