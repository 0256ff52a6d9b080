package auth

import (
	repo "Seismo/internal/repo"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	users map[string]string
	ids   map[string]int
}

func newMemRepo() *memRepo {
	return &memRepo{users: map[string]string{}, ids: map[string]int{}}
}

func (m *memRepo) CreateUser(_ context.Context, login, _, password string) (int, error) {
	if _, ok := m.users[login]; ok {
		return 0, errors.New("duplicate login")
	}
	m.users[login] = password
	m.ids[login] = len(m.ids) + 1
	return m.ids[login], nil
}

func (m *memRepo) GetByLogin(_ context.Context, login string) (int, string, error) {
	hash, ok := m.users[login]
	if !ok {
		return 0, "", repo.ErrNotFound
	}
	return m.ids[login], hash, nil
}

func newEnv() *Env {
	return &Env{JWTKey: []byte("test-key"), Repo: newMemRepo()}
}

func post(h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
	return w
}

func TestRegisterAndLogin(t *testing.T) {
	env := newEnv()

	w := post(env.RegisterHandler, `{"login":"ana","email":"ana@example.com","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, w.Result().Cookies(), 1)

	w = post(env.RegisterHandler, `{"login":"ana","email":"ana@example.com","password":"secret1"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = post(env.LoginHandler, `{"login":"ana","password":"secret1"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, cookieName, w.Result().Cookies()[0].Name)

	w = post(env.LoginHandler, `{"login":"ana","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = post(env.LoginHandler, `{"login":"nobody","password":"secret1"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegister_Validation(t *testing.T) {
	env := newEnv()

	assert.Equal(t, http.StatusBadRequest, post(env.RegisterHandler, `{`).Code)
	assert.Equal(t, http.StatusBadRequest, post(env.RegisterHandler, `{"login":"a","email":"a@b.c"}`).Code)
	assert.Equal(t, http.StatusBadRequest, post(env.RegisterHandler, `{"login":"a","email":"a@b.c","password":"123"}`).Code)
}

func TestAuthMiddleware(t *testing.T) {
	env := newEnv()
	reg := post(env.RegisterHandler, `{"login":"ana","email":"ana@example.com","password":"secret1"}`)
	cookie := reg.Result().Cookies()[0]

	var gotID int
	protected := env.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = UserID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	w := httptest.NewRecorder()
	protected.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: "garbage"})
	w = httptest.NewRecorder()
	protected.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	other := &Env{JWTKey: []byte("other-key"), Repo: env.Repo}
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	other.AuthMiddleware(protected).ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	protected.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, 1, gotID)
}

func TestIPRateLimiter(t *testing.T) {
	limiter := NewIPRateLimiter(0.001, 2)
	h := limiter.LimitMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	do := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, do("10.0.0.1:1000"))
	assert.Equal(t, http.StatusOK, do("10.0.0.1:1001"))
	assert.Equal(t, http.StatusTooManyRequests, do("10.0.0.1:1002"))
	assert.Equal(t, http.StatusOK, do("10.0.0.2:1000"))
}
