package helpers

import (
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/supabase-community/gotrue-go/types"
)

const (
	SessionName       = "admin-session"
	sessionAccessKey  = "access_token"
	sessionRefreshKey = "refresh_token"
	sessionEmailKey   = "email"
	sessionMaxAge     = 3600 * 24 * 30
)

func NewSessionStore(secret string, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

func SaveAdminSession(store sessions.Store, r *http.Request, w http.ResponseWriter, tokens *types.TokenResponse) error {
	session, _ := store.Get(r, SessionName)
	session.Values[sessionAccessKey] = tokens.AccessToken
	session.Values[sessionRefreshKey] = tokens.RefreshToken
	session.Values[sessionEmailKey] = tokens.User.Email
	return session.Save(r, w)
}

func ClearAdminSession(store sessions.Store, r *http.Request, w http.ResponseWriter) error {
	session, _ := store.Get(r, SessionName)
	session.Values = map[interface{}]interface{}{}
	session.Options.MaxAge = -1
	return session.Save(r, w)
}

// AdminSessionTokens returns the stored access and refresh tokens, empty
// when there is no valid session cookie.
func AdminSessionTokens(store sessions.Store, r *http.Request) (access, refresh string) {
	session, err := store.Get(r, SessionName)
	if err != nil {
		return "", ""
	}
	access, _ = session.Values[sessionAccessKey].(string)
	refresh, _ = session.Values[sessionRefreshKey].(string)
	return access, refresh
}
