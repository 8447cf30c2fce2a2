package http

import (
	"errors"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/DRSN-tech/home-store/pkg/e"
)

// ToHTTPResponse сопоставляет ошибку со статусом ответа и текстом для страницы ошибки.
func ToHTTPResponse(err error) (int, string) {
	switch {
	case errors.Is(err, e.ErrNotFound):
		return http.StatusNotFound, "Страница не найдена"
	case errors.Is(err, e.ErrInvalidPage):
		return http.StatusNotFound, e.ErrInvalidPage.Error()
	case errors.Is(err, e.ErrInvalidSort):
		return http.StatusBadRequest, "Недопустимый порядок сортировки"
	case errors.Is(err, e.ErrStatusBadRequest),
		errors.Is(err, e.ErrInvalidQuantity),
		errors.Is(err, e.ErrNoCartOwner):
		return http.StatusBadRequest, "Некорректный запрос"
	case errors.Is(err, e.ErrMissingFields),
		errors.Is(err, e.ErrInvalidEmail),
		errors.Is(err, e.ErrPasswordMismatch),
		errors.Is(err, e.ErrPasswordTooShort),
		errors.Is(err, e.ErrUsernameTaken):
		return http.StatusBadRequest, formErrorText(err)
	case errors.Is(err, e.ErrInvalidCredentials):
		return http.StatusUnauthorized, formErrorText(err)
	default:
		return http.StatusInternalServerError, "Внутренняя ошибка сервера"
	}
}

// formErrorText возвращает сообщение об ошибке формы для пользователя.
func formErrorText(err error) string {
	switch {
	case errors.Is(err, e.ErrMissingFields):
		return "Заполните все обязательные поля"
	case errors.Is(err, e.ErrInvalidEmail):
		return "Введите правильный адрес электронной почты"
	case errors.Is(err, e.ErrPasswordMismatch):
		return "Пароли не совпадают"
	case errors.Is(err, e.ErrPasswordTooShort):
		return "Пароль должен содержать не менее 8 символов"
	case errors.Is(err, e.ErrUsernameTaken):
		return "Пользователь с таким именем уже существует"
	case errors.Is(err, e.ErrInvalidCredentials):
		return "Неверное имя пользователя или пароль"
	default:
		return "Произошла ошибка"
	}
}

// isFormError сообщает, можно ли показать ошибку пользователю рядом с формой.
func isFormError(err error) bool {
	return errors.Is(err, e.ErrMissingFields) ||
		errors.Is(err, e.ErrInvalidEmail) ||
		errors.Is(err, e.ErrPasswordMismatch) ||
		errors.Is(err, e.ErrPasswordTooShort) ||
		errors.Is(err, e.ErrUsernameTaken) ||
		errors.Is(err, e.ErrInvalidCredentials)
}

// safeRedirect возвращает next, только если это путь на этом же сайте.
func safeRedirect(next, fallback string) string {
	if next == "" || !strings.HasPrefix(next, "/") ||
		strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return fallback
	}

	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return fallback
	}
	return next
}

// loginRedirect — куда вернуть пользователя после входа. Страница выхода
// не годится ни с каким query или фрагментом.
func loginRedirect(next string) string {
	to := safeRedirect(next, "/")

	u, err := url.Parse(to)
	if err != nil || isLogoutPath(u.Path) {
		return "/"
	}
	return to
}

func isLogoutPath(p string) bool {
	return strings.TrimSuffix(path.Clean(p), "/") == strings.TrimSuffix(logoutPath, "/")
}

// refererPath извлекает путь из заголовка Referer, если он указывает на этот же хост.
func refererPath(r *http.Request, fallback string) string {
	ref := r.Referer()
	if ref == "" {
		return fallback
	}

	u, err := url.Parse(ref)
	if err != nil || (u.Host != "" && u.Host != r.Host) {
		return fallback
	}
	return safeRedirect(u.RequestURI(), fallback)
}

var errNotFoundRoute = e.Wrap("route", e.ErrNotFound)
