package http

import (
	"net/http"

	"github.com/DRSN-tech/home-store/internal/usecase"
	"github.com/DRSN-tech/home-store/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Router struct {
	router   *chi.Mux
	sm       *SessionManager
	renderer *Renderer
	logger   logger.Logger
}

func NewRouter(router *chi.Mux, sm *SessionManager, renderer *Renderer, logger logger.Logger) *Router {
	return &Router{router: router, sm: sm, renderer: renderer, logger: logger}
}

func (r *Router) Init(catalogUC usecase.CatalogUC, userUC usecase.UserUC, cartUC usecase.CartUC) {
	r.router.Use(middleware.RequestID)
	r.router.Use(middleware.RealIP)
	r.router.Use(accessLog(r.logger))
	r.router.Use(middleware.Recoverer)

	resp := newResponder(r.sm, r.renderer, r.logger)

	r.router.NotFound(func(w http.ResponseWriter, req *http.Request) {
		resp.fail(w, req, errNotFoundRoute)
	})

	registerMainRoutes(r.router, NewMainHandler(resp))
	registerCatalogRoutes(r.router, NewCatalogHandler(resp, catalogUC))
	cartH := NewCartHandler(resp, cartUC)
	registerUserRoutes(r.router, NewUserHandler(resp, userUC, cartUC), cartH, r.sm)
	registerCartRoutes(r.router, cartH)
}

func registerMainRoutes(router chi.Router, h *MainHandler) {
	router.Get("/", h.index)
	router.Get("/about/", h.about)
}

func registerCatalogRoutes(router chi.Router, h *CatalogHandler) {
	router.Route("/catalog", func(cat chi.Router) {
		cat.Get("/product/{product_slug}/", h.product)
		cat.Get("/{category_slug}/", h.catalog)
	})
}

func registerUserRoutes(router chi.Router, h *UserHandler, cartH *CartHandler, sm *SessionManager) {
	router.Route("/users", func(users chi.Router) {
		users.Get("/login/", h.loginPage)
		users.Post("/login/", h.login)
		users.Get("/registration/", h.registrationPage)
		users.Post("/registration/", h.registration)

		users.Group(func(auth chi.Router) {
			auth.Use(requireAuth(sm))
			auth.Get("/logout/", h.logout)
			auth.Get("/profile/", h.profilePage)
			auth.Post("/profile/", h.updateProfile)
			auth.Get("/users-cart/", cartH.cart)
		})
	})
}

func registerCartRoutes(router chi.Router, h *CartHandler) {
	router.Route("/cart", func(cart chi.Router) {
		cart.Post("/add/{product_slug}/", h.add)
		cart.Post("/remove/{item_id}/", h.remove)
	})
}
