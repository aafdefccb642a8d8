package goresto

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/dgrijalva/jwt-go"
)

const (
	sessionCookie = "session"
	flashCookie   = "flash"
	sessionTTL    = 7 * 24 * time.Hour
)

type contextKey string

const userContextKey = contextKey("user")

// Sessions binds requests to authenticated users via a signed cookie.
// The cookie value is an HS256 token carrying the user id; the user record
// itself is resolved fresh on every request.
type Sessions struct {
	signingKey []byte
	users      Repository
}

func NewSessions(signingKey []byte, users Repository) *Sessions {
	return &Sessions{signingKey: signingKey, users: users}
}

func (s *Sessions) Start(w http.ResponseWriter, user *User) error {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{
		Issuer:    "goresto",
		Subject:   string(user.ID),
		IssuedAt:  time.Now().Unix(),
		ExpiresAt: time.Now().Add(sessionTTL).Unix(),
	})

	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    signed,
		Path:     "/",
		HttpOnly: true,
		MaxAge:   int(sessionTTL / time.Second),
	})
	return nil
}

func (s *Sessions) End(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

// CurrentUser resolves the caller's identity from the session cookie.
// Missing, expired or tampered tokens all read as "not logged in".
func (s *Sessions) CurrentUser(r *http.Request) (*User, bool) {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return nil, false
	}

	claims := &jwt.StandardClaims{}
	token, err := jwt.ParseWithClaims(c.Value, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil || !token.Valid {
		return nil, false
	}

	user, err := s.users.FindByID(ID(claims.Subject))
	if err != nil {
		return nil, false
	}
	return user, true
}

// RequireUser guards protected handlers: unauthenticated requests are
// redirected to /login, otherwise the resolved user rides the request context.
func (s *Sessions) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := s.CurrentUser(r)
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userContextKey, user)))
	})
}

func userFromContext(ctx context.Context) *User {
	u, _ := ctx.Value(userContextKey).(*User)
	return u
}

func setFlash(w http.ResponseWriter, message string) {
	http.SetCookie(w, &http.Cookie{Name: flashCookie, Value: url.QueryEscape(message), Path: "/"})
}

func popFlash(w http.ResponseWriter, r *http.Request) string {
	c, err := r.Cookie(flashCookie)
	if err != nil {
		return ""
	}
	http.SetCookie(w, &http.Cookie{Name: flashCookie, Value: "", Path: "/", MaxAge: -1})
	message, _ := url.QueryUnescape(c.Value)
	return message
}
