package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/tubarao/storefront/internal/models"
	"github.com/tubarao/storefront/internal/repo"
	"github.com/tubarao/storefront/internal/service"
)

type testEnv struct {
	T         *testing.T
	E         *echo.Echo
	DB        *gorm.DB
	Auth      *AuthHTTP
	Catalog   *CatalogHTTP
	Cart      *CartHTTP
	Favorites *FavoritesHTTP
	AuthSvc   *service.AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Product{},
		&models.Category{},
		&models.User{},
		&models.RefreshToken{},
		&models.Favorite{},
	))

	gormRepo := &repo.GormRepo{DB: db}
	authSvc := &service.AuthService{
		Repo:          gormRepo,
		JWTSecret:     []byte("test-jwt-secret"),
		RefreshSecret: []byte("test-refresh-secret"),
	}
	catalogSvc := &service.CatalogService{Repo: gormRepo}
	favoritesSvc := &service.FavoritesService{Repo: gormRepo}
	cartSvc := &service.CartService{}

	return &testEnv{
		T:       t,
		E:       echo.New(),
		DB:      db,
		AuthSvc: authSvc,
		Auth: &AuthHTTP{
			Svc:       authSvc,
			Favorites: favoritesSvc,
		},
		Catalog: &CatalogHTTP{Svc: catalogSvc},
		Cart: &CartHTTP{
			Svc:     cartSvc,
			Catalog: catalogSvc,
		},
		Favorites: &FavoritesHTTP{Svc: favoritesSvc},
	}
}

func (env *testEnv) doJSONRequest(method, path string, body any, cookies ...*http.Cookie) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

func (env *testEnv) seedProduct(p models.Product) models.Product {
	require.NoError(env.T, env.DB.Create(&p).Error)
	return p
}

func (env *testEnv) register(email, password, name string) *service.Session {
	body := map[string]string{
		"email":            email,
		"password":         password,
		"confirm_password": password,
		"name":             name,
	}
	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/register", body)
	require.NoError(env.T, env.Auth.Register(c))
	require.Equal(env.T, http.StatusCreated, rec.Code)

	sess := sessionFromCookies(env, rec)
	require.NotNil(env.T, sess)
	return sess
}

func sessionFromCookies(env *testEnv, rec *httptest.ResponseRecorder) *service.Session {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == accessCookie {
			sess, err := env.AuthSvc.SessionFromAccess(ck.Value)
			require.NoError(env.T, err)
			return sess
		}
	}
	return nil
}
