package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/DRSN-tech/home-store/internal/domain"
	"github.com/DRSN-tech/home-store/internal/usecase"
	"github.com/DRSN-tech/home-store/pkg/e"
	"github.com/gorilla/sessions"
	"github.com/jimlawless/whereami"
)

const (
	profilePath = "/users/profile/"
	logoutPath  = "/users/logout/"
)

type UserHandler struct {
	*responder
	userUC usecase.UserUC
	cartUC usecase.CartUC
}

func NewUserHandler(resp *responder, userUC usecase.UserUC, cartUC usecase.CartUC) *UserHandler {
	return &UserHandler{responder: resp, userUC: userUC, cartUC: cartUC}
}

func (h *UserHandler) loginPage(w http.ResponseWriter, r *http.Request) {
	h.renderLogin(w, r, "", r.URL.Query().Get("next"))
}

func (h *UserHandler) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.fail(w, r, e.Wrap(whereami.WhereAmI(), e.ErrStatusBadRequest))
		return
	}

	req := &usecase.LoginReq{
		Username: r.PostForm.Get("username"),
		Password: r.PostForm.Get("password"),
	}
	next := r.PostForm.Get("next")

	user, err := h.userUC.Login(r.Context(), req)
	if err != nil {
		if !isFormError(err) {
			h.fail(w, r, err)
			return
		}
		h.sm.AddFlash(h.sm.Get(r), FlashError, formErrorText(err))
		h.renderLogin(w, r, req.Username, next)
		return
	}

	sess := h.signIn(r, user)
	h.sm.AddFlash(sess, FlashSuccess, fmt.Sprintf("%s, Вы вошли в аккаунт", user.Username))

	h.redirect(w, r, sess, loginRedirect(next))
}

func (h *UserHandler) registrationPage(w http.ResponseWriter, r *http.Request) {
	h.renderRegistration(w, r, &usecase.RegisterReq{})
}

func (h *UserHandler) registration(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.fail(w, r, e.Wrap(whereami.WhereAmI(), e.ErrStatusBadRequest))
		return
	}

	req := &usecase.RegisterReq{
		Username:  r.PostForm.Get("username"),
		Email:     r.PostForm.Get("email"),
		FirstName: r.PostForm.Get("first_name"),
		LastName:  r.PostForm.Get("last_name"),
		Password1: r.PostForm.Get("password1"),
		Password2: r.PostForm.Get("password2"),
	}

	user, err := h.userUC.Register(r.Context(), req)
	if err != nil {
		if !isFormError(err) {
			h.fail(w, r, err)
			return
		}
		h.sm.AddFlash(h.sm.Get(r), FlashError, formErrorText(err))
		h.renderRegistration(w, r, req)
		return
	}

	sess := h.signIn(r, user)
	h.sm.AddFlash(sess, FlashSuccess, fmt.Sprintf("%s, Вы успешно зарегистрированы и вошли в аккаунт", user.Username))
	h.redirect(w, r, sess, profilePath)
}

func (h *UserHandler) logout(w http.ResponseWriter, r *http.Request) {
	sess := h.sm.Get(r)
	username := h.sm.Username(sess)

	h.sm.Logout(sess)
	h.sm.AddFlash(sess, FlashSuccess, fmt.Sprintf("%s, Вы вышли из аккаунта", username))
	h.redirect(w, r, sess, "/")
}

func (h *UserHandler) profilePage(w http.ResponseWriter, r *http.Request) {
	sess := h.sm.Get(r)

	user, err := h.userUC.GetProfile(r.Context(), h.sm.UserID(sess))
	if errors.Is(err, e.ErrNotFound) {
		// пользователь удалён, а cookie осталась
		h.sm.Logout(sess)
		h.redirect(w, r, sess, loginPath)
		return
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.renderProfile(w, r, &usecase.UpdateProfileReq{
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	})
}

func (h *UserHandler) updateProfile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.fail(w, r, e.Wrap(whereami.WhereAmI(), e.ErrStatusBadRequest))
		return
	}

	sess := h.sm.Get(r)
	req := &usecase.UpdateProfileReq{
		Username:  r.PostForm.Get("username"),
		Email:     r.PostForm.Get("email"),
		FirstName: r.PostForm.Get("first_name"),
		LastName:  r.PostForm.Get("last_name"),
	}

	user, err := h.userUC.UpdateProfile(r.Context(), h.sm.UserID(sess), req)
	if err != nil {
		if !isFormError(err) {
			h.fail(w, r, err)
			return
		}
		h.sm.AddFlash(sess, FlashError, "Произошла ошибка")
		h.sm.AddFlash(sess, FlashError, formErrorText(err))
		h.renderProfile(w, r, req)
		return
	}

	h.sm.SetUsername(sess, user.Username)
	h.sm.AddFlash(sess, FlashSuccess, "Профайл успешно обновлен")
	h.redirect(w, r, sess, profilePath)
}

// signIn связывает сессию с пользователем и переносит на него корзину прежней сессии.
// Ошибка переноса не мешает входу.
func (h *UserHandler) signIn(r *http.Request, user *domain.User) *sessions.Session {
	sess := h.sm.Get(r)
	sessionKey := h.sm.SessionKey(sess)

	h.sm.Login(sess, user)

	if err := h.cartUC.MigrateSessionCart(r.Context(), sessionKey, user.ID); err != nil {
		h.logger.Errorf(err, "migrate cart of session to user %d", user.ID)
	}

	return sess
}

func (h *UserHandler) renderLogin(w http.ResponseWriter, r *http.Request, username, next string) {
	h.page(w, r, http.StatusOK, "login", "Home - Авторизация", map[string]any{
		"Username": username,
		"Next":     next,
	})
}

func (h *UserHandler) renderRegistration(w http.ResponseWriter, r *http.Request, form *usecase.RegisterReq) {
	h.page(w, r, http.StatusOK, "registration", "Home - Регистрация", map[string]any{
		"Form": form,
	})
}

func (h *UserHandler) renderProfile(w http.ResponseWriter, r *http.Request, form *usecase.UpdateProfileReq) {
	orders, err := h.userUC.ListOrders(r.Context(), h.sm.UserID(h.sm.Get(r)))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.page(w, r, http.StatusOK, "profile", "Home - Кабинет", map[string]any{
		"Form":   form,
		"Orders": orders,
	})
}
