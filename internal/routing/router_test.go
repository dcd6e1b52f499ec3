package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap_StaticFastPath(t *testing.T) {
	m := NewMap()
	require.NoError(t, m.Add("GET", "/health", "health-handler"))

	h, params, err := m.Lookup("GET", "/health")
	require.NoError(t, err)
	assert.Equal(t, "health-handler", h)
	assert.Nil(t, params)
}

func TestMap_ParamCapture(t *testing.T) {
	m := NewMap()
	require.NoError(t, m.Add("GET", "/users/{id}/posts/{postID}", "post-handler"))

	h, params, err := m.Lookup("GET", "/users/42/posts/7")
	require.NoError(t, err)
	assert.Equal(t, "post-handler", h)
	assert.Equal(t, "42", params["id"])
	assert.Equal(t, "7", params["postID"])
}

func TestMap_StaticWinsOverParam(t *testing.T) {
	m := NewMap()
	require.NoError(t, m.Add("GET", "/users/{id}", "by-id"))
	require.NoError(t, m.Add("GET", "/users/me", "current-user"))

	h, params, err := m.Lookup("GET", "/users/me")
	require.NoError(t, err)
	assert.Equal(t, "current-user", h)
	assert.Nil(t, params)

	h, params, err = m.Lookup("GET", "/users/99")
	require.NoError(t, err)
	assert.Equal(t, "by-id", h)
	assert.Equal(t, "99", params["id"])
}

func TestMap_ConflictingParamNames(t *testing.T) {
	m := NewMap()
	require.NoError(t, m.Add("GET", "/items/{id}", "a"))
	err := m.Add("GET", "/items/{name}", "b")
	assert.ErrorIs(t, err, ErrRouteConflict)
}

func TestMap_DuplicateRoute(t *testing.T) {
	m := NewMap()
	require.NoError(t, m.Add("GET", "/x", "a"))
	err := m.Add("GET", "/x", "b")
	assert.ErrorIs(t, err, ErrRouteConflict)
}

func TestMap_NotFound(t *testing.T) {
	m := NewMap()
	require.NoError(t, m.Add("GET", "/x", "a"))
	_, _, err := m.Lookup("GET", "/y")
	assert.ErrorIs(t, err, ErrRouteNotFound)
}

func TestMap_MethodNotAllowedWhenPathMatchesOtherMethod(t *testing.T) {
	m := NewMap()
	require.NoError(t, m.Add("GET", "/x", "a"))
	_, _, err := m.Lookup("POST", "/x")
	assert.ErrorIs(t, err, ErrMethodNotAllowed)
}

func TestMap_MethodNotAllowed_DynamicRoute(t *testing.T) {
	m := NewMap()
	require.NoError(t, m.Add("GET", "/widgets/{id}", "get-widget"))
	_, _, err := m.Lookup("DELETE", "/widgets/42")
	assert.ErrorIs(t, err, ErrMethodNotAllowed)
}

func TestMap_MethodsAreIndependent(t *testing.T) {
	m := NewMap()
	require.NoError(t, m.Add("GET", "/widgets/{id}", "get-widget"))
	require.NoError(t, m.Add("DELETE", "/widgets/{id}", "delete-widget"))

	h, params, err := m.Lookup("DELETE", "/widgets/3")
	require.NoError(t, err)
	assert.Equal(t, "delete-widget", h)
	assert.Equal(t, "3", params["id"])
}
