package httpserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/catalogo-poli/shop/internal/config"
	authmw "github.com/catalogo-poli/shop/internal/middleware/auth"
	"github.com/catalogo-poli/shop/internal/models"
	"github.com/catalogo-poli/shop/internal/repo"
	"github.com/catalogo-poli/shop/internal/service"
	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var (
	testSecret = []byte("test-jwt-secret")
	dbCounter  atomic.Int64
)

type testEnv struct {
	t    *testing.T
	e    *echo.Echo
	repo *repo.GormRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:http%d?mode=memory&cache=shared", dbCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, config.Migrate(db))
	t.Cleanup(func() { sqlDB.Close() })

	gormRepo := &repo.GormRepo{DB: db}
	authSvc := &service.AuthService{Repo: gormRepo, JWTSecret: testSecret}

	e := echo.New()
	Register(e, &Deps{
		AuthHandler:    &AuthHTTP{Svc: authSvc},
		CartHandler:    &CartHTTP{Svc: &service.CartService{Repo: gormRepo}, Checkout: &service.CheckoutService{Repo: gormRepo}},
		ProductHandler: &ProductHTTP{Svc: &service.CatalogService{Repo: gormRepo}},
		AuthMW:         authmw.New(authSvc),
	})

	return &testEnv{t: t, e: e, repo: gormRepo}
}

func (env *testEnv) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	env.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) register(email, role string) {
	env.t.Helper()
	rec := env.do(http.MethodPost, "/auth/register", map[string]string{
		"full_name":  "Test User",
		"email":      email,
		"password":   "pw123",
		"password_2": "pw123",
		"role":       role,
	}, "")
	require.Equal(env.t, http.StatusCreated, rec.Code, rec.Body.String())
}

func (env *testEnv) login(email string) string {
	env.t.Helper()
	rec := env.do(http.MethodPost, "/auth/login", map[string]string{
		"username": email,
		"password": "pw123",
	}, "")
	require.Equal(env.t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(env.t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(env.t, resp.Token)
	return resp.Token
}

func (env *testEnv) createArticle(name string, price float64, stock int) *models.Article {
	env.t.Helper()
	article := models.Article{Name: name, Category: "Deportes", Price: price, Stock: stock}
	require.NoError(env.t, env.repo.DB.Create(&article).Error)
	return &article
}
