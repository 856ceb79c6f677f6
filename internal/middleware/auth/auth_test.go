package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/health_account/internal/apperr"
	"github.com/Skotchmaster/health_account/internal/models"
	"github.com/Skotchmaster/health_account/internal/service"
)

type fakeAuth struct {
	gotToken string
	gotType  models.TokenType
	err      error
	adminErr error
}

func (f *fakeAuth) Authenticate(_ context.Context, token string, expected models.TokenType) (*service.Principal, error) {
	f.gotToken, f.gotType = token, expected
	if f.err != nil {
		return nil, f.err
	}
	return &service.Principal{User: &models.User{ID: 7, Username: "johndoe"}, Token: token}, nil
}

func (f *fakeAuth) RequireAdmin(context.Context, *service.Principal) error { return f.adminErr }

func TestBearerToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{name: "ok", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "lowercase scheme", header: "bearer tok", want: "tok"},
		{name: "missing", header: "", wantErr: apperr.ErrInvalidAuthCode},
		{name: "scheme only", header: "Bearer ", wantErr: apperr.ErrInvalidAuthCode},
		{name: "basic", header: "Basic dXNlcjpwdw==", wantErr: apperr.ErrInvalidAuthScheme},
		{name: "bare token", header: "abc.def.ghi", wantErr: apperr.ErrInvalidAuthScheme},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := BearerToken(tt.header)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func newContext(header string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func okHandler(c echo.Context) error {
	p, ok := Principal(c)
	if !ok {
		return echo.ErrInternalServerError
	}
	return c.String(http.StatusOK, p.User.Username)
}

func TestRequireAccess_SetsPrincipal(t *testing.T) {
	fa := &fakeAuth{}
	m := New(fa)
	c, rec := newContext("Bearer tok")

	require.NoError(t, m.RequireAccess(okHandler)(c))
	assert.Equal(t, "johndoe", rec.Body.String())
	assert.Equal(t, "tok", fa.gotToken)
	assert.Equal(t, models.TokenAccess, fa.gotType)
	assert.Equal(t, int64(7), c.Get("user_id"))
}

func TestRequireRefresh_PassesExpectedType(t *testing.T) {
	fa := &fakeAuth{}
	c, _ := newContext("Bearer tok")

	require.NoError(t, New(fa).RequireRefresh(okHandler)(c))
	assert.Equal(t, models.TokenRefresh, fa.gotType)
}

func TestRequireAccess_Rejects(t *testing.T) {
	fa := &fakeAuth{err: apperr.ErrInvalidToken}
	m := New(fa)

	c, _ := newContext("")
	assert.ErrorIs(t, m.RequireAccess(okHandler)(c), apperr.ErrInvalidAuthCode)
	assert.Empty(t, fa.gotToken, "no verification without a bearer")

	c, _ = newContext("Token abc")
	assert.ErrorIs(t, m.RequireAccess(okHandler)(c), apperr.ErrInvalidAuthScheme)

	c, _ = newContext("Bearer abc")
	assert.ErrorIs(t, m.RequireAccess(okHandler)(c), apperr.ErrInvalidToken)
}

func TestAdminOnly(t *testing.T) {
	fa := &fakeAuth{adminErr: apperr.ErrForbidden}
	m := New(fa)
	h := m.RequireAccess(m.AdminOnly(okHandler))

	c, _ := newContext("Bearer tok")
	assert.ErrorIs(t, h(c), apperr.ErrForbidden)

	fa.adminErr = nil
	c, rec := newContext("Bearer tok")
	require.NoError(t, h(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	c, _ = newContext("Bearer tok")
	assert.ErrorIs(t, m.AdminOnly(okHandler)(c), apperr.ErrUnauthorized)
}
