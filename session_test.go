package goresto

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func registeredUser(t *testing.T, users Repository) *User {
	t.Helper()

	svc := service{users: users, restaurants: NewRestaurantRepository()}
	user, err := svc.RegisterNewUser(registerUserRequest{"alice", "pw1"})
	assert.Nil(t, err)
	return user
}

func sessionCookieFrom(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == sessionCookie {
			return c
		}
	}
	return nil
}

func TestSessions_StartThenCurrentUser(t *testing.T) {
	users := NewUserRepository()
	user := registeredUser(t, users)
	sessions := NewSessions([]byte("test-key"), users)

	w := httptest.NewRecorder()
	assert.Nil(t, sessions.Start(w, user))

	cookie := sessionCookieFrom(w)
	assert.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(cookie)

	got, ok := sessions.CurrentUser(r)
	assert.True(t, ok)
	assert.Equal(t, user.ID, got.ID)
}

func TestSessions_CurrentUserWithoutCookie(t *testing.T) {
	sessions := NewSessions([]byte("test-key"), NewUserRepository())

	got, ok := sessions.CurrentUser(httptest.NewRequest(http.MethodGet, "/", nil))

	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestSessions_RejectsTamperedToken(t *testing.T) {
	users := NewUserRepository()
	user := registeredUser(t, users)
	sessions := NewSessions([]byte("test-key"), users)

	w := httptest.NewRecorder()
	_ = sessions.Start(w, user)
	cookie := sessionCookieFrom(w)
	cookie.Value += "x"

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(cookie)

	_, ok := sessions.CurrentUser(r)
	assert.False(t, ok)
}

func TestSessions_RejectsTokenSignedWithOtherKey(t *testing.T) {
	users := NewUserRepository()
	user := registeredUser(t, users)

	w := httptest.NewRecorder()
	_ = NewSessions([]byte("other-key"), users).Start(w, user)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(sessionCookieFrom(w))

	_, ok := NewSessions([]byte("test-key"), users).CurrentUser(r)
	assert.False(t, ok)
}

func TestSessions_EndClearsCookie(t *testing.T) {
	sessions := NewSessions([]byte("test-key"), NewUserRepository())

	w := httptest.NewRecorder()
	sessions.End(w)

	cookie := sessionCookieFrom(w)
	assert.NotNil(t, cookie)
	assert.Equal(t, "", cookie.Value)
	assert.Equal(t, -1, cookie.MaxAge)
}

func TestRequireUser_RedirectsAnonymousToLogin(t *testing.T) {
	sessions := NewSessions([]byte("test-key"), NewUserRepository())

	called := false
	handler := sessions.RequireUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/restaurants", nil))

	assert.False(t, called)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestRequireUser_PutsUserInContext(t *testing.T) {
	users := NewUserRepository()
	user := registeredUser(t, users)
	sessions := NewSessions([]byte("test-key"), users)

	w := httptest.NewRecorder()
	_ = sessions.Start(w, user)

	r := httptest.NewRequest(http.MethodGet, "/restaurants", nil)
	r.AddCookie(sessionCookieFrom(w))

	var got *User
	handler := sessions.RequireUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = userFromContext(r.Context())
	}))
	handler.ServeHTTP(httptest.NewRecorder(), r)

	assert.NotNil(t, got)
	assert.Equal(t, user.ID, got.ID)
}
