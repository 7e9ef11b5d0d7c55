// Package moduletest builds the collaborators module tests share: an
// in-memory sqlite customer store, the token service and both guards.
package moduletest

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/dmitrymomot/intellicall/pkg/auth"
	"github.com/dmitrymomot/intellicall/pkg/cookie"
	svcauth "github.com/dmitrymomot/intellicall/svc/auth"
	"github.com/dmitrymomot/intellicall/svc/customer"
)

const (
	JWTSecret    = "module-test-jwt-secret-with-enough-bytes"
	CookieSecret = "module-test-cookie-secret-32-characters!"
)

// Now is the fixed clock used by every Env.
var Now = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

var seq atomic.Int64

type Env struct {
	DB        *gorm.DB
	Repo      customer.Repository
	Customers *customer.Service
	Tokens    *svcauth.Service
	Session   *svcauth.Session
	Cookies   *cookie.Manager
	APIGuard  *svcauth.Guard
	PageGuard *svcauth.Guard
	Logger    *slog.Logger
}

func New(t *testing.T) *Env {
	t.Helper()

	dsn := fmt.Sprintf("file:moduletest-%d?mode=memory&cache=shared", seq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Discard,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&customer.Customer{}))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	tokens, err := svcauth.New([]byte(JWTSecret))
	require.NoError(t, err)
	cookies, err := cookie.New([]string{CookieSecret})
	require.NoError(t, err)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	session := svcauth.NewSession(cookies)
	clock := svcauth.WithClock(func() time.Time { return Now })
	repo := customer.NewRepository(db)

	return &Env{
		DB:        db,
		Repo:      repo,
		Customers: customer.NewService(repo, auth.NewPasswordHasher(auth.WithBcryptCost(4))),
		Tokens:    tokens,
		Session:   session,
		Cookies:   cookies,
		APIGuard:  svcauth.APIGuard(tokens, session, clock, svcauth.WithLogger(log)),
		PageGuard: svcauth.PageGuard(tokens, session, clock, svcauth.WithLogger(log)),
		Logger:    log,
	}
}

// Register creates a customer and fails the test on error.
func (e *Env) Register(t *testing.T, name, email string, password *string) customer.Profile {
	t.Helper()
	p, err := e.Customers.Register(t.Context(), customer.RegisterInput{Name: name, Email: email, Password: password})
	require.NoError(t, err)
	return p
}

// Token issues a valid token for p at Now.
func (e *Env) Token(t *testing.T, p customer.Profile) string {
	t.Helper()
	token, err := e.Tokens.Issue(svcauth.Claim{SubjectID: p.ID, Email: p.Email}, Now)
	require.NoError(t, err)
	return token
}

// Serve runs r through h and returns the recorded response.
func Serve(h http.Handler, r *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

// SessionCookie returns the token cookie value set on w, if any.
func SessionCookie(w *httptest.ResponseRecorder) (*http.Cookie, bool) {
	for _, c := range w.Result().Cookies() {
		if c.Name == svcauth.DefaultCookieName {
			return c, true
		}
	}
	return nil, false
}
