package pgdb

import (
	"context"
	"fmt"

	"github.com/DRSN-tech/home-store/internal/domain"
	"github.com/DRSN-tech/home-store/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/home-store/internal/usecase"
	"github.com/DRSN-tech/home-store/pkg/e"
	"github.com/DRSN-tech/home-store/pkg/tr"
	"github.com/jimlawless/whereami"
)

// CartRepo реализует репозиторий корзин поверх PostgreSQL.
// Для каждого владельца существует не более одной корзины (уникальные индексы user_id и session_key).
type CartRepo struct {
	db   tr.Querier
	conv converter.CartConverter
}

func NewCartRepo(db tr.Querier, conv converter.CartConverter) *CartRepo {
	return &CartRepo{db: db, conv: conv}
}

func (c *CartRepo) GetBySessionKey(ctx context.Context, sessionKey string) (*domain.Cart, error) {
	return c.getOne(ctx, "session_key", sessionKey)
}

func (c *CartRepo) GetByUserID(ctx context.Context, userID int64) (*domain.Cart, error) {
	return c.getOne(ctx, "user_id", userID)
}

// Create создаёт пустую корзину владельца. Корзина, уже вставленная
// параллельным запросом, перечитывается вместо ошибки уникальности.
func (c *CartRepo) Create(ctx context.Context, owner usecase.CartOwner) (*domain.Cart, error) {
	var (
		userID     *int64
		sessionKey *string
	)
	if owner.IsUser() {
		userID = &owner.UserID
	} else {
		sessionKey = &owner.SessionKey
	}

	query := `
		INSERT INTO carts (user_id, session_key)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
		RETURNING id, user_id, session_key, created_at;
	`

	var model converter.CartModel
	if err := tr.Conn(ctx, c.db).QueryRow(ctx, query, userID, sessionKey).
		Scan(&model.ID, &model.UserID, &model.SessionKey, &model.CreatedAt); err != nil {
		if !noRows(err) {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		if owner.IsUser() {
			return c.GetByUserID(ctx, owner.UserID)
		}
		return c.GetBySessionKey(ctx, owner.SessionKey)
	}

	return c.conv.ToEntity(&model, nil), nil
}

// DeleteByUserID удаляет корзину пользователя вместе с позициями.
func (c *CartRepo) DeleteByUserID(ctx context.Context, userID int64) error {
	if _, err := tr.Conn(ctx, c.db).Exec(ctx, `DELETE FROM carts WHERE user_id = $1`, userID); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// AssignToUser передаёт корзину пользователю и отвязывает её от сессии.
func (c *CartRepo) AssignToUser(ctx context.Context, cartID int64, userID int64) error {
	query := `UPDATE carts SET user_id = $1, session_key = NULL WHERE id = $2`

	tag, err := tr.Conn(ctx, c.db).Exec(ctx, query, userID, cartID)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	if tag.RowsAffected() == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrNotFound)
	}

	return nil
}

// AddItem добавляет товар в корзину; повторное добавление увеличивает количество.
func (c *CartRepo) AddItem(ctx context.Context, cartID int64, productID int64, quantity int) error {
	if quantity <= 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrInvalidQuantity)
	}

	query := `
		INSERT INTO cart_items (cart_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (cart_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity;
	`

	if _, err := tr.Conn(ctx, c.db).Exec(ctx, query, cartID, productID, quantity); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// RemoveItem удаляет позицию, только если она принадлежит корзине cartID.
func (c *CartRepo) RemoveItem(ctx context.Context, cartID int64, itemID int64) error {
	tag, err := tr.Conn(ctx, c.db).Exec(ctx, `DELETE FROM cart_items WHERE id = $1 AND cart_id = $2`, itemID, cartID)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	if tag.RowsAffected() == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrNotFound)
	}

	return nil
}

// getOne загружает корзину по колонке владельца и её позиции.
// column подставляется только из констант этого файла.
func (c *CartRepo) getOne(ctx context.Context, column string, value any) (*domain.Cart, error) {
	conn := tr.Conn(ctx, c.db)
	query := fmt.Sprintf(`SELECT id, user_id, session_key, created_at FROM carts WHERE %s = $1`, column)

	var model converter.CartModel
	if err := conn.QueryRow(ctx, query, value).
		Scan(&model.ID, &model.UserID, &model.SessionKey, &model.CreatedAt); err != nil {
		if noRows(err) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrNotFound)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	itemsQuery := fmt.Sprintf(`
		SELECT ci.id, ci.cart_id, ci.quantity, %s
		FROM cart_items ci
		JOIN products pr ON ci.product_id = pr.id
		JOIN categories cat ON pr.category_id = cat.id
		WHERE ci.cart_id = $1
		ORDER BY ci.id
	`, productColumns)

	rows, err := conn.Query(ctx, itemsQuery, model.ID)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	var items []converter.CartItemModel
	for rows.Next() {
		var item converter.CartItemModel
		dest := append([]any{&item.ID, &item.CartID, &item.Quantity}, productDest(&item.Product)...)
		if err := rows.Scan(dest...); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return c.conv.ToEntity(&model, items), nil
}
