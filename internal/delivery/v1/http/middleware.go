package http

import (
	"net/http"
	"net/url"
	"time"

	"github.com/DRSN-tech/home-store/pkg/logger"
	"github.com/go-chi/chi/v5/middleware"
)

const loginPath = "/users/login/"

// accessLog пишет по одной строке на каждый обработанный запрос.
func accessLog(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			log.With(
				"request_id", middleware.GetReqID(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
			).Infof("%s %s status=%d bytes=%d duration=%s",
				r.Method, r.URL.Path, ww.Status(), ww.BytesWritten(), time.Since(start))
		})
	}
}

// requireAuth перенаправляет анонимных посетителей на страницу входа с параметром next.
func requireAuth(sm *SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if sm.UserID(sm.Get(r)) == 0 {
				http.Redirect(w, r, loginPath+"?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
