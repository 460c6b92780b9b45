package httpserver

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tubarao/storefront/internal/models"
	"github.com/tubarao/storefront/internal/transport"
)

func TestToggleFavoriteWithoutSession(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/favorites/toggle", map[string]any{
		"product_id": 1,
	})
	require.NoError(t, env.Favorites.Toggle(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "sign_in_required", errorMessage(t, rec))

	// nothing was written
	var count int64
	require.NoError(t, env.DB.Model(&models.Favorite{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestToggleFavoriteRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	shirt := env.seedProduct(models.Product{Name: "Camiseta", Price: 50})
	sess := env.register("ana@example.com", "secret123", "Ana")

	toggle := func() transport.ToggleFavoriteResponse {
		rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/favorites/toggle", map[string]any{
			"product_id": shirt.ID,
		})
		c.Set(sessionKey, sess)
		require.NoError(t, env.Favorites.Toggle(c))
		require.Equal(t, http.StatusOK, rec.Code)

		var resp transport.ToggleFavoriteResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		return resp
	}

	resp := toggle()
	assert.True(t, resp.Favorited)

	rec, c := env.doJSONRequest(http.MethodGet, "/api/v1/favorites", nil)
	c.Set(sessionKey, sess)
	require.NoError(t, env.Favorites.GetFavorites(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var list transport.FavoritesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Equal(t, []uint{shirt.ID}, list.ProductIDs)

	// second toggle removes it again
	resp = toggle()
	assert.False(t, resp.Favorited)

	rec, c = env.doJSONRequest(http.MethodGet, "/api/v1/favorites", nil)
	c.Set(sessionKey, sess)
	require.NoError(t, env.Favorites.GetFavorites(c))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Empty(t, list.ProductIDs)
}

func TestToggleFavoriteRequiresProductID(t *testing.T) {
	env := newTestEnv(t)
	sess := env.register("ana@example.com", "secret123", "Ana")

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/favorites/toggle", map[string]any{})
	c.Set(sessionKey, sess)
	require.NoError(t, env.Favorites.Toggle(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
