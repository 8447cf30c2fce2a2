package http

import "net/http"

type MainHandler struct {
	*responder
}

func NewMainHandler(resp *responder) *MainHandler {
	return &MainHandler{responder: resp}
}

func (h *MainHandler) index(w http.ResponseWriter, r *http.Request) {
	h.page(w, r, http.StatusOK, "index", "Главная", map[string]any{
		"Content": "Магазин мебели HOME",
	})
}

func (h *MainHandler) about(w http.ResponseWriter, r *http.Request) {
	h.page(w, r, http.StatusOK, "about", "Home - О нас", map[string]any{
		"Content": "О нас",
		"Text":    "Текст о том, какой это шикарный, современный магазин!",
	})
}
