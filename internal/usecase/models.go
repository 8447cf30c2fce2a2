package usecase

import (
	"time"

	"github.com/DRSN-tech/home-store/internal/domain"
)

// AllCategoriesSlug — селектор каталога, выбирающий все товары.
const AllCategoriesSlug = "all"

// CATALOG USECASE

// ListProductsReq — запрос страницы каталога. Значения берутся из query-параметров как есть.
type ListProductsReq struct {
	CategorySlug string
	Page         string // page
	OnSale       string // on_sale
	OrderBy      string // order_buy
}

// ProductsPage — страница каталога.
type ProductsPage struct {
	Items    []domain.Product
	Number   int // номер страницы, с единицы
	NumPages int
	Count    int // всего товаров после фильтрации
}

func (p *ProductsPage) HasPrev() bool { return p.Number > 1 }
func (p *ProductsPage) HasNext() bool { return p.Number < p.NumPages }

// PageNumbers возвращает номера всех страниц для пагинатора.
func (p *ProductsPage) PageNumbers() []int {
	nums := make([]int, p.NumPages)
	for i := range nums {
		nums[i] = i + 1
	}
	return nums
}

// ProductFilter — условия выборки товаров.
type ProductFilter struct {
	CategorySlug string // пусто — все категории
	OnSale       bool
}

// ProductOrder — допустимый порядок сортировки каталога.
type ProductOrder string

const (
	OrderDefault   ProductOrder = "default"
	OrderPriceAsc  ProductOrder = "price"
	OrderPriceDesc ProductOrder = "-price"
	OrderNameAsc   ProductOrder = "name"
	OrderNameDesc  ProductOrder = "-name"
)

// USER USECASE

// LoginReq — данные формы входа.
type LoginReq struct {
	Username string
	Password string
}

// RegisterReq — данные формы регистрации.
type RegisterReq struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Password1 string
	Password2 string
}

// UpdateProfileReq — данные формы профиля.
type UpdateProfileReq struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
}

// CART USECASE

// CartOwner определяет владельца корзины: пользователя или анонимную сессию.
type CartOwner struct {
	UserID     int64
	SessionKey string
}

func (o CartOwner) IsUser() bool  { return o.UserID != 0 }
func (o CartOwner) IsEmpty() bool { return o.UserID == 0 && o.SessionKey == "" }

// OUTBOX

type OutboxStatus string

const (
	Pending    OutboxStatus = "pending"
	Processing OutboxStatus = "processing"
	Processed  OutboxStatus = "processed"
)

type OutboxEventType string

const (
	UserRegistered OutboxEventType = "user.registered"
	UserLoggedIn   OutboxEventType = "user.logged_in"
	CartMigrated   OutboxEventType = "cart.migrated"
)

// OutboxEvent — событие, записываемое в одной транзакции с изменением данных
// и пересылаемое в Kafka фоновым воркером.
type OutboxEvent struct {
	ID          int64
	EventID     string
	EventType   OutboxEventType
	AggregateID int64
	Payload     []byte
	Status      OutboxStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// INFRASTRUCTURE

// WriteRawMessageReq — сообщение для публикации в брокер.
type WriteRawMessageReq struct {
	Key       int64
	EventType OutboxEventType
	Payload   []byte
}

// MAPPERS

func NewWriteRawMessageReq(key int64, eventType OutboxEventType, payload []byte) *WriteRawMessageReq {
	return &WriteRawMessageReq{
		Key:       key,
		EventType: eventType,
		Payload:   payload,
	}
}

func NewListProductsReq(categorySlug, page, onSale, orderBy string) *ListProductsReq {
	return &ListProductsReq{
		CategorySlug: categorySlug,
		Page:         page,
		OnSale:       onSale,
		OrderBy:      orderBy,
	}
}
