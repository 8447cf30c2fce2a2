package http

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/DRSN-tech/home-store/internal/usecase"
	"github.com/go-chi/chi/v5"
)

type CatalogHandler struct {
	*responder
	catalogUC usecase.CatalogUC
}

func NewCatalogHandler(resp *responder, catalogUC usecase.CatalogUC) *CatalogHandler {
	return &CatalogHandler{responder: resp, catalogUC: catalogUC}
}

type pageLink struct {
	Number int
	URL    string
	Active bool
}

// catalog отдаёт страницу каталога категории. Параметры: page, on_sale, order_buy.
func (h *CatalogHandler) catalog(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "category_slug")
	q := r.URL.Query()

	page := q.Get("page")
	if page == "" {
		page = "1"
	}

	req := usecase.NewListProductsReq(slug, page, q.Get("on_sale"), q.Get("order_buy"))
	res, err := h.catalogUC.ListProducts(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	categories, err := h.catalogUC.ListCategories(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	links := make([]pageLink, 0, res.NumPages)
	for _, n := range res.PageNumbers() {
		links = append(links, pageLink{Number: n, URL: pageURL(r.URL, n), Active: n == res.Number})
	}

	data := map[string]any{
		"Page":       res,
		"Slug":       slug,
		"Categories": categories,
		"OnSale":     usecase.OnSaleRequested(q.Get("on_sale")),
		"OrderBy":    q.Get("order_buy"),
		"PageLinks":  links,
		"PrevURL":    "",
		"NextURL":    "",
	}
	if res.HasPrev() {
		data["PrevURL"] = pageURL(r.URL, res.Number-1)
	}
	if res.HasNext() {
		data["NextURL"] = pageURL(r.URL, res.Number+1)
	}

	h.page(w, r, http.StatusOK, "catalog", "Home - Каталог", data)
}

func (h *CatalogHandler) product(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalogUC.GetProduct(r.Context(), chi.URLParam(r, "product_slug"))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.page(w, r, http.StatusOK, "product", product.Name, map[string]any{
		"Product": product,
	})
}

// pageURL возвращает ссылку на страницу n с сохранением остальных параметров запроса.
func pageURL(u *url.URL, n int) string {
	q := u.Query()
	q.Set("page", strconv.Itoa(n))
	return u.Path + "?" + q.Encode()
}
