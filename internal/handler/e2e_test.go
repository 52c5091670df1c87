package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/stockroom/stockroom-go/internal/crypto"
	"github.com/stockroom/stockroom-go/internal/repository"
	"github.com/stockroom/stockroom-go/internal/service"
)

func e2eTokenOptions() crypto.TokenOptions {
	return crypto.TokenOptions{
		Secret:   "e2e-test-secret",
		TTL:      time.Hour,
		Audience: "stockroom-api",
		Issuer:   "stockroom",
	}
}

// newTestServer wires the full application over a fresh in-memory
// database, exactly as the composition root does.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	require.NoError(t, err)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { db.Close() })
	require.NoError(t, repository.CreateSchema(context.Background(), db))

	tokens := e2eTokenOptions()
	userRepo := repository.NewUserRepository(db)
	itemRepo := repository.NewItemRepository(db)

	router := NewRouter(
		NewAuthHandler(service.NewAuthService(userRepo, tokens)),
		NewUserHandler(service.NewUserService(userRepo)),
		NewItemHandler(service.NewItemService(itemRepo)),
		tokens,
	)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func TestEndToEndScenario(t *testing.T) {
	srv := newTestServer(t)

	// Register a user.
	resp, body := doJSON(t, http.MethodPost, srv.URL+"/users", "", map[string]any{
		"name":     "A",
		"email":    "a@x.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, float64(1), body["id"])
	assert.Equal(t, "A", body["name"])
	assert.Equal(t, "a@x.com", body["email"])
	assert.NotContains(t, body, "password")
	assert.NotContains(t, body, "passwordHash")

	// Sign in with the same credentials.
	resp, body = doJSON(t, http.MethodPost, srv.URL+"/auth", "", map[string]any{
		"email":    "a@x.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["id"])
	assert.Equal(t, "A", body["name"])
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)

	// Create an item with the bearer token; owner comes from the token.
	resp, body = doJSON(t, http.MethodPost, srv.URL+"/items", token, map[string]any{
		"name":        "Chair",
		"description": "Wooden chair",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, float64(1), body["id"])
	assert.Equal(t, "Chair", body["name"])
	assert.Equal(t, "Wooden chair", body["description"])
	assert.Equal(t, float64(1), body["userId"])

	// Reading the item requires no auth.
	resp, body = doJSON(t, http.MethodGet, srv.URL+"/items/1", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Chair", body["name"])

	// Delete it with the bearer token.
	resp, body = doJSON(t, http.MethodDelete, srv.URL+"/items/1", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Item deleted", body["message"])

	// And it is gone.
	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/items/1", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSignInFailuresShareMessage(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/users", "", map[string]any{
		"name": "A", "email": "a@x.com", "password": "secret123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, unknown := doJSON(t, http.MethodPost, srv.URL+"/auth", "", map[string]any{
		"email": "ghost@x.com", "password": "secret123",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, wrongPass := doJSON(t, http.MethodPost, srv.URL+"/auth", "", map[string]any{
		"email": "a@x.com", "password": "wrong-password",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	assert.Equal(t, unknown["message"], wrongPass["message"])
}

func TestGuardedRoutesRejectMissingToken(t *testing.T) {
	srv := newTestServer(t)

	for _, tc := range []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/items"},
		{http.MethodPatch, "/items/1"},
		{http.MethodDelete, "/items/1"},
		{http.MethodGet, "/users/1"},
		{http.MethodPatch, "/users/1"},
		{http.MethodDelete, "/users/1"},
	} {
		resp, body := doJSON(t, tc.method, srv.URL+tc.path, "", map[string]any{})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "%s %s", tc.method, tc.path)
		assert.Equal(t, "token not found", body["message"], "%s %s", tc.method, tc.path)
	}
}

func TestPublicReadsNeedNoToken(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doJSON(t, http.MethodGet, srv.URL+"/items", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestErrorEnvelopeShape(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/items/999", "", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	assert.Equal(t, float64(http.StatusNotFound), body["status"])
	assert.Equal(t, "item not found", body["message"])
	assert.Equal(t, "/items/999", body["path"])

	ts, _ := body["timestamp"].(string)
	_, err := time.Parse(time.RFC3339, ts)
	assert.NoError(t, err, "timestamp must be RFC3339")
}

func TestValidationFailureReturnsFieldMessages(t *testing.T) {
	srv := newTestServer(t)

	// Description below the minimum length.
	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/users", "", map[string]any{
		"name": "A", "email": "not-an-email", "password": "secret123",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/users", "", map[string]any{
		"email": "a@x.com", "password": "secret123",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Validation messages come back as an object keyed by field.
	msg, ok := body["message"].(map[string]any)
	require.True(t, ok, "message should be a field-keyed object, got %T", body["message"])
	assert.Contains(t, msg, "name")
}

func TestUserEndpoints(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/users", "", map[string]any{
		"name": "A", "email": "a@x.com", "password": "secret123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/auth", "", map[string]any{
		"email": "a@x.com", "password": "secret123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token := body["token"].(string)

	// Profile embeds the user's items.
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/items", token, map[string]any{
		"name": "Chair", "description": "Wooden chair",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body = doJSON(t, http.MethodGet, srv.URL+"/users/1", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "A", body["name"])
	items, ok := body["Items"].([]any)
	require.True(t, ok, "Items should be embedded")
	assert.Len(t, items, 1)

	// Rename, then the new name sticks.
	resp, body = doJSON(t, http.MethodPatch, srv.URL+"/users/1", token, map[string]any{
		"name": "Renamed",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Renamed", body["name"])

	// Delete the account.
	resp, body = doJSON(t, http.MethodDelete, srv.URL+"/users/1", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "User deleted", body["message"])

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/users/1", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestItemUpdateAndMissingRoutes(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/users", "", map[string]any{
		"name": "A", "email": "a@x.com", "password": "secret123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/auth", "", map[string]any{
		"email": "a@x.com", "password": "secret123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token := body["token"].(string)

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/items", token, map[string]any{
		"name": "Chair", "description": "Wooden chair",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Partial update changes only the supplied field.
	resp, body = doJSON(t, http.MethodPatch, srv.URL+"/items/1", token, map[string]any{
		"description": "Oak chair",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Chair", body["name"])
	assert.Equal(t, "Oak chair", body["description"])

	// Updating a missing item is a 404.
	resp, _ = doJSON(t, http.MethodPatch, srv.URL+"/items/999", token, map[string]any{
		"name": "Ghost",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Unknown routes produce the envelope too.
	resp, body = doJSON(t, http.MethodGet, srv.URL+"/nope", "", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "route not found", body["message"])
}
