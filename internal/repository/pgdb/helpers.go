package pgdb

import (
	"errors"

	"github.com/DRSN-tech/home-store/internal/repository/pgdb/converter"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolationCode = "23505"

// productColumns — поля товара с названием категории; запрос должен соединять products pr и categories cat.
const productColumns = `pr.id, pr.name, pr.slug, pr.description, pr.image, pr.price, pr.discount::text,
	pr.quantity, pr.category_id, cat.name`

// postgresDuplicate сообщает, нарушено ли ограничение уникальности.
func postgresDuplicate(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

func noRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// productDest возвращает адреса полей модели в порядке productColumns.
func productDest(m *converter.ProductModel) []any {
	return []any{
		&m.ID, &m.Name, &m.Slug, &m.Description, &m.Image, &m.Price, &m.Discount,
		&m.Quantity, &m.CategoryID, &m.CategoryName,
	}
}
