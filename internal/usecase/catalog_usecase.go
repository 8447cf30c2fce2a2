package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/DRSN-tech/home-store/internal/domain"
	"github.com/DRSN-tech/home-store/pkg/e"
	"github.com/DRSN-tech/home-store/pkg/logger"
)

// ProductsPerPage — размер страницы каталога.
const ProductsPerPage = 3

// CatalogUseCase реализует просмотр каталога и карточки товара.
type CatalogUseCase struct {
	productRepo  ProductRepository
	categoryRepo CategoryRepository
	imagesInfra  ImagesInfra
	logger       logger.Logger
}

func NewCatalogUC(
	productRepo ProductRepository,
	categoryRepo CategoryRepository,
	imagesInfra ImagesInfra,
	logger logger.Logger,
) *CatalogUseCase {
	return &CatalogUseCase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		imagesInfra:  imagesInfra,
		logger:       logger,
	}
}

// ListProducts возвращает страницу каталога категории (или всех товаров)
// с учётом фильтра по скидке и сортировки.
func (c *CatalogUseCase) ListProducts(ctx context.Context, req *ListProductsReq) (*ProductsPage, error) {
	const op = "CatalogUseCase.ListProducts"

	order, err := ParseProductOrder(req.OrderBy)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	number, err := parsePageNumber(req.Page)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	filter := ProductFilter{OnSale: OnSaleRequested(req.OnSale)}
	if req.CategorySlug != AllCategoriesSlug {
		filter.CategorySlug = req.CategorySlug

		// Пустая категория — 404, независимо от фильтра по скидке
		total, err := c.productRepo.Count(ctx, ProductFilter{CategorySlug: req.CategorySlug})
		if err != nil {
			return nil, e.Wrap(op, err)
		}
		if total == 0 {
			return nil, e.Wrap(op, e.ErrNotFound)
		}
	}

	count, err := c.productRepo.Count(ctx, filter)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	numPages := numPagesFor(count)
	if number > numPages {
		return nil, e.Wrap(op, e.ErrInvalidPage)
	}

	items, err := c.productRepo.List(ctx, filter, order, ProductsPerPage, (number-1)*ProductsPerPage)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	c.imagesInfra.ResolveURLs(ctx, items)

	return &ProductsPage{
		Items:    items,
		Number:   number,
		NumPages: numPages,
		Count:    count,
	}, nil
}

// GetProduct возвращает товар по slug.
func (c *CatalogUseCase) GetProduct(ctx context.Context, slug string) (*domain.Product, error) {
	const op = "CatalogUseCase.GetProduct"

	product, err := c.productRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	products := []domain.Product{*product}
	c.imagesInfra.ResolveURLs(ctx, products)

	return &products[0], nil
}

// ListCategories возвращает все категории для навигации.
func (c *CatalogUseCase) ListCategories(ctx context.Context) ([]domain.Category, error) {
	const op = "CatalogUseCase.ListCategories"

	categories, err := c.categoryRepo.List(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return categories, nil
}

// ParseProductOrder проверяет значение order_buy по списку разрешённых полей.
func ParseProductOrder(raw string) (ProductOrder, error) {
	const op = "ParseProductOrder"

	switch order := ProductOrder(strings.TrimSpace(raw)); order {
	case "", OrderDefault:
		return OrderDefault, nil
	case OrderPriceAsc, OrderPriceDesc, OrderNameAsc, OrderNameDesc:
		return order, nil
	default:
		return "", e.Wrap(op, fmt.Errorf("%q: %w", raw, e.ErrInvalidSort))
	}
}

// OnSaleRequested — включён ли фильтр товаров со скидкой. Пробелы считаются пустым значением.
func OnSaleRequested(raw string) bool {
	return strings.TrimSpace(raw) != ""
}

// parsePageNumber разбирает номер страницы; пустое значение — первая страница.
func parsePageNumber(raw string) (int, error) {
	const op = "parsePageNumber"

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 1, nil
	}

	number, err := strconv.Atoi(raw)
	if err != nil || number < 1 {
		return 0, e.Wrap(op, fmt.Errorf("%q: %w", raw, e.ErrInvalidPage))
	}

	return number, nil
}

// numPagesFor возвращает число страниц. Пустой список всё равно занимает одну страницу.
func numPagesFor(count int) int {
	if count == 0 {
		return 1
	}
	return (count + ProductsPerPage - 1) / ProductsPerPage
}
