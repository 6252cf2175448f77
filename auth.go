package clinicfolio

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const (
	// SessionCookieName is the exact cookie carrying the session token.
	SessionCookieName = "session"
	sessionCookieAge  = 86400 // seconds, matches the 24h session TTL

	userContextKey = "admin_user"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (a *App) handleLogin(c echo.Context) error {
	if !a.loginLimiter.Allow(c.RealIP()) {
		return Fail(c, http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return Fail(c, http.StatusBadRequest, "Invalid request body")
	}
	user, err := a.Store.GetAdminUserByUsername(strings.TrimSpace(req.Username))
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return FailInternal(c, err)
		}
		return Fail(c, http.StatusUnauthorized, "Invalid username or password")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return Fail(c, http.StatusUnauthorized, "Invalid username or password")
	}
	token, err := a.Store.CreateSession(user.ID, a.Config.SessionTTL)
	if err != nil {
		return FailInternal(c, err)
	}
	c.SetCookie(a.sessionCookie(token, sessionCookieAge))
	log.Info().Str("username", user.Username).Msg("admin login")
	return OKMessage(c, user, "Logged in")
}

func (a *App) handleLogout(c echo.Context) error {
	if cookie, err := c.Cookie(SessionCookieName); err == nil {
		if err := a.Store.DeleteSession(cookie.Value); err != nil {
			return FailInternal(c, err)
		}
	}
	c.SetCookie(a.sessionCookie("", -1))
	return OKMessage(c, nil, "Logged out")
}

func (a *App) handleMe(c echo.Context) error {
	user, ok := c.Get(userContextKey).(AdminUser)
	if !ok {
		return Fail(c, http.StatusUnauthorized, "Unauthorized")
	}
	return OK(c, user)
}

// requireSession wraps admin handlers. A missing cookie is a plain 401; a
// cookie that does not resolve to a live session gets the same status with a
// slightly more specific message. Store lookup errors are treated the same
// as "no session" so nothing about the failure leaks to the client.
func (a *App) requireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(SessionCookieName)
		if err != nil || strings.TrimSpace(cookie.Value) == "" {
			return Fail(c, http.StatusUnauthorized, "Unauthorized")
		}
		sess, err := a.Store.GetSession(cookie.Value)
		if err != nil {
			if !errors.Is(err, ErrNoSession) {
				log.Error().Err(err).Msg("session lookup failed")
			}
			return Fail(c, http.StatusUnauthorized, "Invalid or expired session")
		}
		user, err := a.Store.GetAdminUser(sess.UserID)
		if err != nil {
			return Fail(c, http.StatusUnauthorized, "Invalid or expired session")
		}
		c.Set(userContextKey, user)
		return next(c)
	}
}

var errWrongPassword = errors.New("wrong password")

// compareAndRehash verifies the current password and stores a hash of the
// new one.
func compareAndRehash(store *Store, user AdminUser, currentPassword, newPassword string) error {
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
		return errWrongPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return store.UpdateAdminPassword(user.ID, string(hash))
}

func (a *App) sessionCookie(token string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   a.Config.CookieSecure,
	}
}
