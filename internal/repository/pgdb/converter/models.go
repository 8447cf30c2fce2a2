package converter

import "time"

// CategoryModel представляет запись таблицы categories в PostgreSQL.
type CategoryModel struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
	Slug string `db:"slug"`
}

// ProductModel представляет запись таблицы products вместе с названием категории.
type ProductModel struct {
	ID           int64  `db:"id"`
	Name         string `db:"name"`
	Slug         string `db:"slug"`
	Description  string `db:"description"`
	Image        string `db:"image"`
	Price        int64  `db:"price"`
	Discount     string `db:"discount"` // numeric, читается как text
	Quantity     int    `db:"quantity"`
	CategoryID   int64  `db:"category_id"`
	CategoryName string `db:"category_name"`
}

// UserModel представляет запись таблицы users в PostgreSQL.
type UserModel struct {
	ID           int64     `db:"id"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	FirstName    string    `db:"first_name"`
	LastName     string    `db:"last_name"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}

// CartModel представляет запись таблицы carts в PostgreSQL.
type CartModel struct {
	ID         int64     `db:"id"`
	UserID     *int64    `db:"user_id"`
	SessionKey *string   `db:"session_key"`
	CreatedAt  time.Time `db:"created_at"`
}

// CartItemModel — позиция корзины, соединённая с товаром.
type CartItemModel struct {
	ID       int64 `db:"id"`
	CartID   int64 `db:"cart_id"`
	Quantity int   `db:"quantity"`
	Product  ProductModel
}

// OrderModel представляет запись таблицы orders в PostgreSQL.
type OrderModel struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	Status    string    `db:"status"`
	IsPaid    bool      `db:"is_paid"`
	CreatedAt time.Time `db:"created_at"`
}

// OrderItemModel — позиция заказа; товар может быть уже удалён из каталога.
type OrderItemModel struct {
	ID          int64   `db:"id"`
	OrderID     int64   `db:"order_id"`
	Name        string  `db:"name"`
	Price       int64   `db:"price"`
	Quantity    int     `db:"quantity"`
	ProductID   *int64  `db:"product_id"`
	ProductSlug *string `db:"product_slug"`
	Image       *string `db:"image"`
}

// OutboxEventModel представляет запись таблицы outbox_events в PostgreSQL.
type OutboxEventModel struct {
	ID          int64      `db:"id"`
	EventID     string     `db:"event_id"`
	EventType   string     `db:"event_type"`
	AggregateID int64      `db:"aggregate_id"`
	Payload     []byte     `db:"payload"`
	Status      string     `db:"status"`
	CreatedAt   time.Time  `db:"created_at"`
	ProcessedAt *time.Time `db:"processed_at"`
}
