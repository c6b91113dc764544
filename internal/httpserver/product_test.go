package httpserver

import (
	"net/http"
	"testing"

	"github.com/catalogo-poli/shop/internal/models"
	"github.com/catalogo-poli/shop/internal/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_RequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/productos/catalogo", nil, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing bearer token")
}

func TestCatalog_ListsArticles(t *testing.T) {
	env := newTestEnv(t)
	env.register("ana@example.com", "")
	token := env.login("ana@example.com")
	env.createArticle("Balón", 25.5, 10)
	env.createArticle("Raqueta", 99.9, 4)

	rec := env.do(http.MethodGet, "/productos/catalogo", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Balón")
	assert.Contains(t, body, "Raqueta")
}

func TestCreateArticle_ShopperForbidden(t *testing.T) {
	env := newTestEnv(t)
	env.register("ana@example.com", "")
	token := env.login("ana@example.com")

	rec := env.do(http.MethodPost, "/productos/agregar-articulo", transport.CreateArticleRequest{
		Name: "Balón", Category: "Deportes", Price: 25.5, Stock: 10,
	}, token)

	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "admin access required")
}

func TestCreateArticle_Admin(t *testing.T) {
	env := newTestEnv(t)
	env.register("admin@example.com", "admin")
	token := env.login("admin@example.com")

	rec := env.do(http.MethodPost, "/productos/agregar-articulo", transport.CreateArticleRequest{
		Name: "Balón", Category: "Deportes", Price: 25.5, Stock: 10,
	}, token)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "Artículo agregado correctamente")
	assert.Contains(t, rec.Body.String(), "Balón")
}

func TestArticleDetail(t *testing.T) {
	env := newTestEnv(t)
	env.register("ana@example.com", "")
	token := env.login("ana@example.com")
	article := env.createArticle("Balón", 25.5, 10)

	rec := env.do(http.MethodGet, "/productos/detalle-articulo/"+article.ID, nil, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"articulo"`)
	assert.Contains(t, rec.Body.String(), "Balón")

	rec = env.do(http.MethodGet, "/productos/detalle-articulo/missing", nil, token)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Artículo no encontrado")

	rec = env.do(http.MethodGet, "/productos/detalle-articulo/"+article.ID, nil, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateArticles_Batch(t *testing.T) {
	env := newTestEnv(t)
	env.register("admin@example.com", "admin")
	token := env.login("admin@example.com")

	rec := env.do(http.MethodPost, "/productos/agregar-multiples-articulos", []transport.CreateArticleRequest{
		{Name: "Balón", Category: "Deportes", Price: 25.5, Stock: 10},
		{Name: "Raqueta", Category: "Deportes", Price: 99.9, Stock: 4},
	}, token)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "Artículos agregados correctamente")

	var count int64
	require.NoError(t, env.repo.DB.Model(&models.Article{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestCreateArticles_AllOrNothing(t *testing.T) {
	env := newTestEnv(t)
	env.register("admin@example.com", "admin")
	token := env.login("admin@example.com")

	rec := env.do(http.MethodPost, "/productos/agregar-multiples-articulos", []transport.CreateArticleRequest{
		{Name: "Balón", Category: "Deportes", Price: 25.5, Stock: 10},
		{Name: "", Category: "Deportes", Price: 99.9, Stock: 4},
	}, token)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var count int64
	require.NoError(t, env.repo.DB.Model(&models.Article{}).Count(&count).Error)
	assert.Zero(t, count, "a bad entry must reject the whole batch")
}

func TestCreateArticles_ShopperForbidden(t *testing.T) {
	env := newTestEnv(t)
	env.register("ana@example.com", "")
	token := env.login("ana@example.com")

	rec := env.do(http.MethodPost, "/productos/agregar-multiples-articulos", []transport.CreateArticleRequest{
		{Name: "Balón", Category: "Deportes", Price: 25.5, Stock: 10},
	}, token)

	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUpdateArticle_Admin(t *testing.T) {
	env := newTestEnv(t)
	env.register("admin@example.com", "admin")
	token := env.login("admin@example.com")
	article := env.createArticle("Balón", 25.5, 10)

	price := 19.9
	rec := env.do(http.MethodPut, "/productos/actualizar/"+article.ID, transport.UpdateArticleRequest{
		Price: &price,
	}, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "Artículo actualizado correctamente")

	rec = env.do(http.MethodPut, "/productos/actualizar/missing", transport.UpdateArticleRequest{
		Price: &price,
	}, token)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(http.MethodPut, "/productos/actualizar/"+article.ID, transport.UpdateArticleRequest{}, token)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Debes enviar al menos un campo")
}

func TestDeleteArticle_Admin(t *testing.T) {
	env := newTestEnv(t)
	env.register("admin@example.com", "admin")
	token := env.login("admin@example.com")
	article := env.createArticle("Balón", 25.5, 10)

	rec := env.do(http.MethodDelete, "/productos/eliminar/"+article.ID, nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Artículo eliminado correctamente")

	rec = env.do(http.MethodDelete, "/productos/eliminar/"+article.ID, nil, token)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSearch_SQLFallback(t *testing.T) {
	env := newTestEnv(t)
	env.register("ana@example.com", "")
	token := env.login("ana@example.com")
	env.createArticle("Balón de fútbol", 25.5, 10)
	env.createArticle("Raqueta", 99.9, 4)

	rec := env.do(http.MethodGet, "/productos/buscar?query=Bal", nil, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "Balón de fútbol")
	assert.NotContains(t, rec.Body.String(), "Raqueta")

	rec = env.do(http.MethodGet, "/productos/buscar?query=zzz", nil, token)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "No se encontraron artículos")

	rec = env.do(http.MethodGet, "/productos/buscar", nil, token)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdvancedSearch_Filters(t *testing.T) {
	env := newTestEnv(t)
	env.register("ana@example.com", "")
	token := env.login("ana@example.com")
	env.createArticle("Balón", 25.5, 10)
	env.createArticle("Raqueta", 99.9, 4)

	maxPrice := 50.0
	rec := env.do(http.MethodPost, "/productos/busqueda-avanzada", transport.AdvancedSearchRequest{
		MaxPrice: &maxPrice,
	}, token)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "Balón")
	assert.NotContains(t, rec.Body.String(), "Raqueta")
}
