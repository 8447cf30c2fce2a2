package pgdb

import (
	"context"
	"fmt"
	"strings"

	"github.com/DRSN-tech/home-store/internal/domain"
	"github.com/DRSN-tech/home-store/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/home-store/internal/usecase"
	"github.com/DRSN-tech/home-store/pkg/e"
	"github.com/DRSN-tech/home-store/pkg/tr"
	"github.com/jimlawless/whereami"
)

// orderClauses сопоставляет разрешённые сортировки фиксированным выражениям ORDER BY.
var orderClauses = map[usecase.ProductOrder]string{
	usecase.OrderDefault:   "pr.id",
	usecase.OrderPriceAsc:  "pr.price, pr.id",
	usecase.OrderPriceDesc: "pr.price DESC, pr.id",
	usecase.OrderNameAsc:   "pr.name, pr.id",
	usecase.OrderNameDesc:  "pr.name DESC, pr.id",
}

// ProductRepo реализует репозиторий товаров поверх PostgreSQL.
type ProductRepo struct {
	db   tr.Querier
	conv converter.ProductConverter
}

func NewProductRepo(db tr.Querier, conv converter.ProductConverter) *ProductRepo {
	return &ProductRepo{
		db:   db,
		conv: conv,
	}
}

// Count возвращает число товаров, подходящих под фильтр.
func (p *ProductRepo) Count(ctx context.Context, filter usecase.ProductFilter) (int, error) {
	where, args := productWhere(filter)
	query := `
		SELECT COUNT(*)
		FROM products pr
		JOIN categories cat ON pr.category_id = cat.id
	` + where

	var count int
	if err := tr.Conn(ctx, p.db).QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	return count, nil
}

// List возвращает срез товаров по фильтру в заданном порядке.
func (p *ProductRepo) List(
	ctx context.Context,
	filter usecase.ProductFilter,
	order usecase.ProductOrder,
	limit, offset int,
) ([]domain.Product, error) {
	orderBy, ok := orderClauses[order]
	if !ok {
		return nil, e.Wrap(whereami.WhereAmI(), e.ErrInvalidSort)
	}

	where, args := productWhere(filter)
	args = append(args, limit, offset)
	query := fmt.Sprintf(`
		SELECT %s
		FROM products pr
		JOIN categories cat ON pr.category_id = cat.id
		%s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, productColumns, where, orderBy, len(args)-1, len(args))

	rows, err := tr.Conn(ctx, p.db).Query(ctx, query, args...)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	models := make([]converter.ProductModel, 0, limit)
	for rows.Next() {
		var model converter.ProductModel
		if err := rows.Scan(productDest(&model)...); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		models = append(models, model)
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToArrEntity(models), nil
}

// GetBySlug возвращает товар по slug или e.ErrNotFound.
func (p *ProductRepo) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	const op = "ProductRepo.GetBySlug"

	query := fmt.Sprintf(`
		SELECT %s
		FROM products pr
		JOIN categories cat ON pr.category_id = cat.id
		WHERE pr.slug = $1
	`, productColumns)

	var model converter.ProductModel
	if err := tr.Conn(ctx, p.db).QueryRow(ctx, query, slug).Scan(productDest(&model)...); err != nil {
		if noRows(err) {
			return nil, e.Wrap(op, fmt.Errorf("slug %q: %w", slug, e.ErrNotFound))
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&model), nil
}

// productWhere строит условие WHERE; значения передаются только параметрами.
func productWhere(filter usecase.ProductFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)

	if filter.CategorySlug != "" {
		args = append(args, filter.CategorySlug)
		conds = append(conds, fmt.Sprintf("cat.slug = $%d", len(args)))
	}
	if filter.OnSale {
		conds = append(conds, "pr.discount > 0")
	}

	if len(conds) == 0 {
		return "", args
	}

	return "WHERE " + strings.Join(conds, " AND "), args
}
