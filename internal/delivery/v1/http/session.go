package http

import (
	"encoding/gob"
	"net/http"

	"github.com/DRSN-tech/home-store/internal/cfg"
	"github.com/DRSN-tech/home-store/internal/domain"
	"github.com/DRSN-tech/home-store/internal/usecase"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const (
	sessionName = "home_session"

	sessionKeyValue = "session_key"
	userIDValue     = "user_id"
	usernameValue   = "username"
)

// Уровни flash-сообщений, совпадают с CSS-классами шаблонов.
const (
	FlashSuccess = "success"
	FlashError   = "danger"
	FlashInfo    = "info"
)

// Flash — одноразовое сообщение, показываемое на следующей отрисованной странице.
type Flash struct {
	Level string
	Text  string
}

func init() {
	gob.Register(Flash{})
}

// SessionManager хранит сессию в подписанной cookie.
type SessionManager struct {
	store *sessions.CookieStore
}

func NewSessionManager(cfg *cfg.SessionCfg) *SessionManager {
	store := sessions.NewCookieStore([]byte(cfg.Secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   cfg.MaxAge,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	store.MaxAge(cfg.MaxAge)

	return &SessionManager{store: store}
}

// Get возвращает сессию запроса. Повторные вызовы в рамках запроса отдают тот же объект.
// Для повреждённой или чужой cookie store возвращает новую пустую сессию вместе с ошибкой,
// которую можно игнорировать.
func (m *SessionManager) Get(r *http.Request) *sessions.Session {
	s, _ := m.store.Get(r, sessionName)
	return s
}

func (m *SessionManager) Save(w http.ResponseWriter, r *http.Request, s *sessions.Session) error {
	return s.Save(r, w)
}

// SessionKey возвращает ключ анонимной сессии или пустую строку.
func (m *SessionManager) SessionKey(s *sessions.Session) string {
	key, _ := s.Values[sessionKeyValue].(string)
	return key
}

// EnsureSessionKey создаёт ключ сессии при первом обращении к корзине.
func (m *SessionManager) EnsureSessionKey(s *sessions.Session) string {
	if key := m.SessionKey(s); key != "" {
		return key
	}

	key := uuid.NewString()
	s.Values[sessionKeyValue] = key
	return key
}

// UserID возвращает идентификатор вошедшего пользователя или 0.
func (m *SessionManager) UserID(s *sessions.Session) int64 {
	id, _ := s.Values[userIDValue].(int64)
	return id
}

func (m *SessionManager) Username(s *sessions.Session) string {
	name, _ := s.Values[usernameValue].(string)
	return name
}

// Owner определяет владельца корзины для текущей сессии.
func (m *SessionManager) Owner(s *sessions.Session) usecase.CartOwner {
	if id := m.UserID(s); id != 0 {
		return usecase.CartOwner{UserID: id}
	}
	return usecase.CartOwner{SessionKey: m.SessionKey(s)}
}

// Login связывает сессию с пользователем и выдаёт новый ключ сессии.
// Прежний ключ вызывающий должен прочитать до Login, чтобы перенести корзину.
func (m *SessionManager) Login(s *sessions.Session, user *domain.User) {
	s.Values[sessionKeyValue] = uuid.NewString()
	s.Values[userIDValue] = user.ID
	s.Values[usernameValue] = user.Username
}

// SetUsername обновляет имя пользователя, показываемое в шапке.
func (m *SessionManager) SetUsername(s *sessions.Session, username string) {
	s.Values[usernameValue] = username
}

// Logout удаляет из сессии всё, кроме ещё не показанных сообщений.
func (m *SessionManager) Logout(s *sessions.Session) {
	for k := range s.Values {
		if k == flashesKey {
			continue
		}
		delete(s.Values, k)
	}
}

const flashesKey = "_flash"

func (m *SessionManager) AddFlash(s *sessions.Session, level, text string) {
	s.AddFlash(Flash{Level: level, Text: text})
}

// Flashes извлекает и удаляет накопленные сообщения. Сессию после вызова нужно сохранить.
func (m *SessionManager) Flashes(s *sessions.Session) []Flash {
	raw := s.Flashes()
	flashes := make([]Flash, 0, len(raw))
	for _, f := range raw {
		if flash, ok := f.(Flash); ok {
			flashes = append(flashes, flash)
		}
	}
	return flashes
}
