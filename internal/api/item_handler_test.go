package api_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/mediahub/mediahub-api/internal/domain"
	"github.com/mediahub/mediahub-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItems_CRUD(t *testing.T) {
	env := newTestEnv(t)
	token := env.tokenFor(t, bob)

	rr := env.do(t, http.MethodPost, "/api/items", map[string]string{"name": " Second "}, token)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	body := decodeBody(t, rr)
	assert.Equal(t, "New item added.", body["message"])
	assert.Equal(t, float64(2), body["item_id"])

	rr = env.do(t, http.MethodGet, "/api/items/2", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Second", decodeBody(t, rr)["name"])

	rr = env.do(t, http.MethodPut, "/api/items/2", map[string]string{"name": "Renamed"}, token)
	require.Equal(t, http.StatusOK, rr.Code)
	body = decodeBody(t, rr)
	assert.Equal(t, "Item updated.", body["message"])
	assert.Equal(t, "Renamed", body["item"].(map[string]interface{})["name"])

	rr = env.do(t, http.MethodGet, "/api/items", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	var list []interface{}
	require.NoError(t, jsonUnmarshal(rr, &list))
	assert.Len(t, list, 2)
}

func TestItems_DeleteTwice(t *testing.T) {
	env := newTestEnv(t)
	token := env.tokenFor(t, alice)

	rr := env.do(t, http.MethodDelete, "/api/items/1", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Item deleted.", decodeBody(t, rr)["message"])

	rr = env.do(t, http.MethodDelete, "/api/items/1", nil, token)
	require.Equal(t, http.StatusNotFound, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, "Not Found", body["message"])
	assert.Equal(t, "1", body["item_id"])
}

func TestItems_Validation(t *testing.T) {
	env := newTestEnv(t)
	token := env.tokenFor(t, alice)

	for _, name := range []string{"", "   "} {
		rr := env.do(t, http.MethodPost, "/api/items", map[string]string{"name": name}, token)
		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "required", fieldRules(t, decodeBody(t, rr))["name"])
	}
	assert.Zero(t, env.items.TotalCalls())
}

func TestItems_WritesRequireAuthentication(t *testing.T) {
	env := newTestEnv(t)

	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
		path := "/api/items"
		if method != http.MethodPost {
			path = "/api/items/1"
		}
		rr := env.do(t, method, path, map[string]string{"name": "x"}, "")
		assert.Equal(t, http.StatusUnauthorized, rr.Code, method)
	}
	assert.Zero(t, env.items.TotalCalls())
}

func TestItems_DataAccessFailureIsHidden(t *testing.T) {
	env := newTestEnv(t)
	env.items.ListFn = func(ctx context.Context) ([]domain.Item, error) {
		return nil, store.NewStoreError(store.EntityItem, "list",
			errors.New(`pq: password authentication failed for user "mediahub"`))
	}

	rr := env.do(t, http.MethodGet, "/api/items", nil, "")

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "Internal server error", decodeBody(t, rr)["message"])
	assert.NotContains(t, rr.Body.String(), "password")
}

func TestItems_PanicIsRecovered(t *testing.T) {
	env := newTestEnv(t)
	env.items.ListFn = func(ctx context.Context) ([]domain.Item, error) {
		panic("unexpected nil map")
	}

	rr := env.do(t, http.MethodGet, "/api/items", nil, "")

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "Internal server error", decodeBody(t, rr)["message"])
	assert.NotContains(t, rr.Body.String(), "nil map")
}
