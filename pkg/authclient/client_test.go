package authclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/health_account/internal/models"
)

func TestClient_Validate(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/authentication/validate", r.URL.Path)
		assert.Equal(t, "tok", r.URL.Query().Get("access_token"))
		_ = json.NewEncoder(w).Encode(models.TokenPayload{Sub: "johndoe", UserID: 7, Status: models.StatusBlacklisted})
	}))
	defer srv.Close()

	p, err := NewClient(srv.URL+"/").Validate(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, int64(7), p.UserID)
	assert.Equal(t, models.StatusBlacklisted, p.Status)
}

func TestClient_Refresh(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer rt", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(models.Tokens{AccessToken: "a", RefreshToken: "r", TokenType: "Bearer"})
	}))
	defer srv.Close()

	tk, err := NewClient(srv.URL).Refresh(context.Background(), "rt")
	require.NoError(t, err)
	assert.Equal(t, "a", tk.AccessToken)
	assert.Equal(t, "r", tk.RefreshToken)
}

func TestClient_ErrorDetail(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail":["Token is invalid or expired"]}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Refresh(context.Background(), "rt")
	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusBadRequest))
	assert.Contains(t, err.Error(), "Token is invalid or expired")
}

func TestClient_Unreachable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url).Validate(context.Background(), "tok")
	require.Error(t, err)
	assert.False(t, IsStatus(err, http.StatusNotFound))
}
