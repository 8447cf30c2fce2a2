package http

import (
	"net/http"
	"strconv"

	"github.com/DRSN-tech/home-store/internal/usecase"
	"github.com/DRSN-tech/home-store/pkg/e"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

const catalogPath = "/catalog/all/"

type CartHandler struct {
	*responder
	cartUC usecase.CartUC
}

func NewCartHandler(resp *responder, cartUC usecase.CartUC) *CartHandler {
	return &CartHandler{responder: resp, cartUC: cartUC}
}

// cart отдаёт корзину вошедшего пользователя.
func (h *CartHandler) cart(w http.ResponseWriter, r *http.Request) {
	owner := usecase.CartOwner{UserID: h.sm.UserID(h.sm.Get(r))}

	cart, err := h.cartUC.GetCart(r.Context(), owner)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.page(w, r, http.StatusOK, "cart", "Home - Корзина", map[string]any{
		"Cart": cart,
	})
}

// add кладёт товар в корзину. Анонимному посетителю при этом выдаётся ключ сессии.
func (h *CartHandler) add(w http.ResponseWriter, r *http.Request) {
	sess := h.sm.Get(r)
	if h.sm.UserID(sess) == 0 {
		h.sm.EnsureSessionKey(sess)
	}

	_, err := h.cartUC.AddProduct(r.Context(), h.sm.Owner(sess), chi.URLParam(r, "product_slug"))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.sm.AddFlash(sess, FlashSuccess, "Товар добавлен в корзину")
	h.redirect(w, r, sess, refererPath(r, catalogPath))
}

func (h *CartHandler) remove(w http.ResponseWriter, r *http.Request) {
	itemID, err := strconv.ParseInt(chi.URLParam(r, "item_id"), 10, 64)
	if err != nil || itemID <= 0 {
		h.fail(w, r, e.Wrap(whereami.WhereAmI(), e.ErrNotFound))
		return
	}

	sess := h.sm.Get(r)
	if err := h.cartUC.RemoveItem(r.Context(), h.sm.Owner(sess), itemID); err != nil {
		h.fail(w, r, err)
		return
	}

	h.sm.AddFlash(sess, FlashInfo, "Товар удалён из корзины")
	h.redirect(w, r, sess, refererPath(r, catalogPath))
}
