package usecase

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/DRSN-tech/home-store/internal/domain"
	"github.com/DRSN-tech/home-store/pkg/e"
)

// fakeTx выполняет функцию без реальной транзакции.
type fakeTx struct {
	calls int
}

func (f *fakeTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type stubImages struct{}

func (stubImages) ResolveURLs(_ context.Context, products []domain.Product) {
	for i := range products {
		if products[i].Image != "" {
			products[i].ImageURL = "/media/" + products[i].Image
		}
	}
}

type memCategoryRepo struct {
	categories []domain.Category
}

func (m *memCategoryRepo) List(context.Context) ([]domain.Category, error) {
	return m.categories, nil
}

type memProductRepo struct {
	products []domain.Product
}

func (m *memProductRepo) filter(filter ProductFilter) []domain.Product {
	var out []domain.Product
	for _, p := range m.products {
		if filter.CategorySlug != "" && p.CategoryName != filter.CategorySlug {
			continue
		}
		if filter.OnSale && !p.OnSale() {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (m *memProductRepo) Count(_ context.Context, filter ProductFilter) (int, error) {
	return len(m.filter(filter)), nil
}

func (m *memProductRepo) List(_ context.Context, filter ProductFilter, order ProductOrder, limit, offset int) ([]domain.Product, error) {
	items := m.filter(filter)
	sort.SliceStable(items, func(i, j int) bool {
		switch order {
		case OrderPriceAsc:
			return items[i].Price < items[j].Price
		case OrderPriceDesc:
			return items[i].Price > items[j].Price
		case OrderNameAsc:
			return items[i].Name < items[j].Name
		case OrderNameDesc:
			return items[i].Name > items[j].Name
		default:
			return items[i].ID < items[j].ID
		}
	})

	if offset >= len(items) {
		return []domain.Product{}, nil
	}
	end := min(offset+limit, len(items))
	return items[offset:end], nil
}

func (m *memProductRepo) GetBySlug(_ context.Context, slug string) (*domain.Product, error) {
	for _, p := range m.products {
		if p.Slug == slug {
			return &p, nil
		}
	}
	return nil, e.ErrNotFound
}

func (m *memProductRepo) byID(id int64) domain.Product {
	for _, p := range m.products {
		if p.ID == id {
			return p
		}
	}
	return domain.Product{ID: id}
}

type memCartRepo struct {
	mu       sync.Mutex
	nextID   int64
	carts    map[int64]*domain.Cart
	products *memProductRepo
}

func newMemCartRepo(products *memProductRepo) *memCartRepo {
	return &memCartRepo{carts: map[int64]*domain.Cart{}, products: products}
}

func (m *memCartRepo) seed(owner CartOwner, productIDs ...int64) *domain.Cart {
	cart, _ := m.Create(context.Background(), owner)
	for _, id := range productIDs {
		_ = m.AddItem(context.Background(), cart.ID, id, 1)
	}
	return m.carts[cart.ID]
}

func (m *memCartRepo) copyCart(c *domain.Cart) *domain.Cart {
	cp := *c
	cp.Items = append([]domain.CartItem(nil), c.Items...)
	return &cp
}

func (m *memCartRepo) GetBySessionKey(_ context.Context, sessionKey string) (*domain.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.carts {
		if c.SessionKey != nil && *c.SessionKey == sessionKey {
			return m.copyCart(c), nil
		}
	}
	return nil, e.ErrNotFound
}

func (m *memCartRepo) GetByUserID(_ context.Context, userID int64) (*domain.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.carts {
		if c.UserID != nil && *c.UserID == userID {
			return m.copyCart(c), nil
		}
	}
	return nil, e.ErrNotFound
}

func (m *memCartRepo) userCarts(userID int64) []*domain.Cart {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Cart
	for _, c := range m.carts {
		if c.UserID != nil && *c.UserID == userID {
			out = append(out, c)
		}
	}
	return out
}

func (m *memCartRepo) Create(_ context.Context, owner CartOwner) (*domain.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.carts {
		if (owner.IsUser() && c.UserID != nil && *c.UserID == owner.UserID) ||
			(!owner.IsUser() && c.SessionKey != nil && *c.SessionKey == owner.SessionKey) {
			return m.copyCart(c), nil
		}
	}
	m.nextID++
	cart := &domain.Cart{ID: m.nextID, CreatedAt: time.Now()}
	if owner.IsUser() {
		id := owner.UserID
		cart.UserID = &id
	} else {
		key := owner.SessionKey
		cart.SessionKey = &key
	}
	m.carts[cart.ID] = cart
	return m.copyCart(cart), nil
}

// staleCartRepo не видит корзину владельца при первом чтении, как будто её
// вставил параллельный запрос, ещё не зафиксированный на момент чтения.
type staleCartRepo struct {
	*memCartRepo
	missed bool
}

func (s *staleCartRepo) GetByUserID(ctx context.Context, userID int64) (*domain.Cart, error) {
	if !s.missed {
		s.missed = true
		return nil, e.ErrNotFound
	}
	return s.memCartRepo.GetByUserID(ctx, userID)
}

func (m *memCartRepo) DeleteByUserID(_ context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, c := range m.carts {
		if c.UserID != nil && *c.UserID == userID {
			delete(m.carts, id)
		}
	}
	return nil
}

func (m *memCartRepo) AssignToUser(_ context.Context, cartID int64, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.carts[cartID]
	if !ok {
		return e.ErrNotFound
	}
	c.UserID = &userID
	c.SessionKey = nil
	return nil
}

func (m *memCartRepo) AddItem(_ context.Context, cartID int64, productID int64, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.carts[cartID]
	if !ok {
		return e.ErrNotFound
	}
	for i := range c.Items {
		if c.Items[i].Product.ID == productID {
			c.Items[i].Quantity += quantity
			return nil
		}
	}
	m.nextID++
	c.Items = append(c.Items, domain.CartItem{
		ID:       m.nextID,
		CartID:   cartID,
		Product:  m.products.byID(productID),
		Quantity: quantity,
	})
	return nil
}

func (m *memCartRepo) RemoveItem(_ context.Context, cartID int64, itemID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.carts[cartID]
	if !ok {
		return e.ErrNotFound
	}
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return nil
		}
	}
	return e.ErrNotFound
}

type memUserRepo struct {
	nextID int64
	users  map[int64]domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[int64]domain.User{}}
}

func (m *memUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range m.users {
		if strings.EqualFold(u.Username, user.Username) {
			return nil, e.ErrUsernameTaken
		}
	}
	m.nextID++
	created := *user
	created.ID = m.nextID
	created.CreatedAt = time.Now()
	m.users[created.ID] = created
	return &created, nil
}

func (m *memUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, e.ErrNotFound
	}
	return &u, nil
}

func (m *memUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, e.ErrNotFound
}

func (m *memUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range m.users {
		if u.ID != user.ID && strings.EqualFold(u.Username, user.Username) {
			return nil, e.ErrUsernameTaken
		}
	}
	m.users[user.ID] = *user
	updated := *user
	return &updated, nil
}

type memOrderRepo struct {
	orders map[int64][]domain.Order
	calls  int
}

func (m *memOrderRepo) ListByUser(_ context.Context, userID int64) ([]domain.Order, error) {
	m.calls++
	orders := append([]domain.Order(nil), m.orders[userID]...)
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID > orders[j].ID })
	return orders, nil
}

type cacheEntry struct {
	orders  []domain.Order
	expires time.Time
}

// memOrdersCache — кэш с управляемыми часами.
type memOrdersCache struct {
	ttl     time.Duration
	now     time.Time
	entries map[int64]cacheEntry
	failGet error
}

func newMemOrdersCache(ttl time.Duration) *memOrdersCache {
	return &memOrdersCache{ttl: ttl, now: time.Now(), entries: map[int64]cacheEntry{}}
}

func (m *memOrdersCache) advance(d time.Duration) { m.now = m.now.Add(d) }

func (m *memOrdersCache) GetOrders(_ context.Context, userID int64) ([]domain.Order, bool, error) {
	if m.failGet != nil {
		return nil, false, m.failGet
	}
	entry, ok := m.entries[userID]
	if !ok || !m.now.Before(entry.expires) {
		return nil, false, nil
	}
	return entry.orders, true, nil
}

func (m *memOrdersCache) SetOrders(_ context.Context, userID int64, orders []domain.Order) error {
	m.entries[userID] = cacheEntry{orders: orders, expires: m.now.Add(m.ttl)}
	return nil
}

type memOutbox struct {
	events []*OutboxEvent
}

func (m *memOutbox) Create(_ context.Context, event *OutboxEvent) (*OutboxEvent, error) {
	event.ID = int64(len(m.events) + 1)
	m.events = append(m.events, event)
	return event, nil
}

func (m *memOutbox) GetAndMarkAsProcessing(context.Context, int) ([]*OutboxEvent, error) {
	return nil, nil
}

func (m *memOutbox) MarkAsProcessed(context.Context, int64) error { return nil }

func (m *memOutbox) MarkAsPending(context.Context, int64) error { return nil }
