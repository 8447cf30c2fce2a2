package http

import (
	"net/http"

	"github.com/DRSN-tech/home-store/pkg/logger"
	"github.com/gorilla/sessions"
)

// responder собирает общий для всех страниц контекст: пользователя, сообщения и сессию.
type responder struct {
	sm       *SessionManager
	renderer *Renderer
	logger   logger.Logger
}

func newResponder(sm *SessionManager, renderer *Renderer, logger logger.Logger) *responder {
	return &responder{sm: sm, renderer: renderer, logger: logger}
}

// page отрисовывает страницу name. Накопленные flash-сообщения показываются и удаляются из сессии.
func (h *responder) page(w http.ResponseWriter, r *http.Request, status int, name, title string, data map[string]any) {
	if data == nil {
		data = make(map[string]any)
	}

	sess := h.sm.Get(r)
	data["Title"] = title
	data["User"] = h.sm.Username(sess)
	data["Messages"] = h.sm.Flashes(sess)

	if err := h.sm.Save(w, r, sess); err != nil {
		h.logger.Errorf(err, "save session")
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.renderer.Render(w, name, data); err != nil {
		h.logger.Errorf(err, "render %s", name)
	}
}

// fail отрисовывает страницу ошибки со статусом, соответствующим err.
func (h *responder) fail(w http.ResponseWriter, r *http.Request, err error) {
	code, msg := ToHTTPResponse(err)
	if code >= http.StatusInternalServerError {
		h.logger.Errorf(err, "%s %s", r.Method, r.URL.Path)
	} else {
		h.logger.Debugf("%s %s: %v", r.Method, r.URL.Path, err)
	}

	h.page(w, r, code, "error", "Home - Ошибка", map[string]any{
		"Code":    code,
		"Message": msg,
	})
}

// redirect сохраняет сессию и перенаправляет на to.
func (h *responder) redirect(w http.ResponseWriter, r *http.Request, sess *sessions.Session, to string) {
	if err := h.sm.Save(w, r, sess); err != nil {
		h.fail(w, r, err)
		return
	}
	http.Redirect(w, r, to, http.StatusFound)
}
