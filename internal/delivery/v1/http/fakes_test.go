package http

import (
	"context"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/DRSN-tech/home-store/internal/cfg"
	"github.com/DRSN-tech/home-store/internal/domain"
	"github.com/DRSN-tech/home-store/internal/usecase"
	"github.com/DRSN-tech/home-store/pkg/e"
	"github.com/DRSN-tech/home-store/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	page     *usecase.ProductsPage
	err      error
	lastReq  *usecase.ListProductsReq
	products map[string]*domain.Product
}

func (f *fakeCatalog) ListProducts(_ context.Context, req *usecase.ListProductsReq) (*usecase.ProductsPage, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.page, nil
}

func (f *fakeCatalog) GetProduct(_ context.Context, slug string) (*domain.Product, error) {
	p, ok := f.products[slug]
	if !ok {
		return nil, e.Wrap("fakeCatalog.GetProduct", e.ErrNotFound)
	}
	return p, nil
}

func (f *fakeCatalog) ListCategories(context.Context) ([]domain.Category, error) {
	return []domain.Category{
		{ID: 1, Name: "Все товары", Slug: "all"},
		{ID: 2, Name: "Диваны", Slug: "sofas"},
	}, nil
}

type fakeUserUC struct {
	users     map[string]*domain.User
	passwords map[string]string
	orders    []domain.Order
	nextID    int64
}

func newFakeUserUC() *fakeUserUC {
	return &fakeUserUC{
		users: map[string]*domain.User{
			"alice": {ID: 7, Username: "alice", Email: "alice@example.com", FirstName: "Алиса"},
		},
		passwords: map[string]string{"alice": "wonderland"},
		orders: []domain.Order{{
			ID:        11,
			UserID:    7,
			Status:    "В обработке",
			CreatedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
			Items:     []domain.OrderItem{{ID: 1, Name: "Диван Комфорт", Price: 1250000, Quantity: 1}},
		}},
		nextID: 100,
	}
}

func (f *fakeUserUC) Login(_ context.Context, req *usecase.LoginReq) (*domain.User, error) {
	if pw, ok := f.passwords[req.Username]; !ok || pw != req.Password {
		return nil, e.Wrap("fakeUserUC.Login", e.ErrInvalidCredentials)
	}
	return f.users[req.Username], nil
}

func (f *fakeUserUC) Register(_ context.Context, req *usecase.RegisterReq) (*domain.User, error) {
	if req.Password1 != req.Password2 {
		return nil, e.Wrap("fakeUserUC.Register", e.ErrPasswordMismatch)
	}
	if _, ok := f.users[req.Username]; ok {
		return nil, e.Wrap("fakeUserUC.Register", e.ErrUsernameTaken)
	}

	f.nextID++
	u := &domain.User{ID: f.nextID, Username: req.Username, Email: req.Email}
	f.users[u.Username] = u
	f.passwords[u.Username] = req.Password1
	return u, nil
}

func (f *fakeUserUC) byID(id int64) *domain.User {
	for _, u := range f.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func (f *fakeUserUC) GetProfile(_ context.Context, userID int64) (*domain.User, error) {
	if u := f.byID(userID); u != nil {
		return u, nil
	}
	return nil, e.ErrNotFound
}

func (f *fakeUserUC) UpdateProfile(_ context.Context, userID int64, req *usecase.UpdateProfileReq) (*domain.User, error) {
	if !strings.Contains(req.Email, "@") {
		return nil, e.Wrap("fakeUserUC.UpdateProfile", e.ErrInvalidEmail)
	}
	for _, other := range f.users {
		if other.ID != userID && other.Username == req.Username {
			return nil, e.Wrap("fakeUserUC.UpdateProfile", e.ErrUsernameTaken)
		}
	}
	u := f.byID(userID)
	if u == nil {
		return nil, e.ErrNotFound
	}
	u.Username, u.Email, u.FirstName, u.LastName = req.Username, req.Email, req.FirstName, req.LastName
	return u, nil
}

func (f *fakeUserUC) ListOrders(_ context.Context, userID int64) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

type migration struct {
	sessionKey string
	userID     int64
}

type fakeCartUC struct {
	mu         sync.Mutex
	migrations []migration
	added      []usecase.CartOwner
	removed    []int64
	cart       *domain.Cart
}

func (f *fakeCartUC) MigrateSessionCart(_ context.Context, sessionKey string, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.migrations = append(f.migrations, migration{sessionKey: sessionKey, userID: userID})
	return nil
}

func (f *fakeCartUC) GetCart(_ context.Context, owner usecase.CartOwner) (*domain.Cart, error) {
	if f.cart != nil {
		return f.cart, nil
	}
	return &domain.Cart{UserID: &owner.UserID}, nil
}

func (f *fakeCartUC) AddProduct(_ context.Context, owner usecase.CartOwner, slug string) (*domain.Cart, error) {
	if owner.IsEmpty() {
		return nil, e.ErrNoCartOwner
	}
	if slug == "missing" {
		return nil, e.Wrap("fakeCartUC.AddProduct", e.ErrNotFound)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.added = append(f.added, owner)
	return &domain.Cart{}, nil
}

func (f *fakeCartUC) RemoveItem(_ context.Context, owner usecase.CartOwner, itemID int64) error {
	if owner.IsEmpty() {
		return e.ErrNoCartOwner
	}
	f.removed = append(f.removed, itemID)
	return nil
}

type testEnv struct {
	srv     *httptest.Server
	client  *http.Client
	catalog *fakeCatalog
	users   *fakeUserUC
	carts   *fakeCartUC
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	renderer, err := NewRenderer()
	require.NoError(t, err)

	sm := NewSessionManager(&cfg.SessionCfg{
		Secret: "0123456789abcdef0123456789abcdef",
		MaxAge: 3600,
	})

	env := &testEnv{
		catalog: &fakeCatalog{
			page: &usecase.ProductsPage{Number: 1, NumPages: 1},
			products: map[string]*domain.Product{
				"sofa-comfort": {ID: 3, Name: "Диван Комфорт", Slug: "sofa-comfort", Price: 1250000},
			},
		},
		users: newFakeUserUC(),
		carts: &fakeCartUC{},
	}

	mux := chi.NewRouter()
	NewRouter(mux, sm, renderer, logger.Discard()).Init(env.catalog, env.users, env.carts)
	env.srv = httptest.NewServer(mux)
	t.Cleanup(env.srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	env.client = &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	return env
}
