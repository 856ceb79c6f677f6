package httpserver

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	authmw "github.com/Skotchmaster/health_account/internal/middleware/auth"
)

type Deps struct {
	Auth     *AuthHTTP
	Accounts *AccountsHTTP
	Doctors  *DoctorsHTTP
	Tokens   *authmw.TokenMiddleware
	// Ready reports whether the backing stores answer.
	Ready func(ctx context.Context) error
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready != nil {
			if err := d.Ready(c.Request().Context()); err != nil {
				return c.NoContent(http.StatusServiceUnavailable)
			}
		}
		return c.NoContent(http.StatusOK)
	})

	api := e.Group("/api")
	mw := d.Tokens

	authn := api.Group("/authentication")
	authn.POST("/signup", d.Auth.SignUp)
	authn.POST("/signin", d.Auth.SignIn)
	authn.GET("/validate", d.Auth.Validate)
	authn.PUT("/signout", d.Auth.SignOut, mw.RequireRefresh)
	authn.POST("/access", d.Auth.Access, mw.RequireRefresh)
	authn.POST("/refresh", d.Auth.Refresh, mw.RequireRefresh)
	authn.GET("/blacklist", d.Auth.ListBlacklist, mw.RequireAccess, mw.AdminOnly)
	authn.DELETE("/blacklist/:jti", d.Auth.Unblacklist, mw.RequireAccess, mw.AdminOnly)

	accounts := api.Group("/accounts", mw.RequireAccess)
	accounts.GET("/me", d.Accounts.Me)
	accounts.PUT("/update", d.Accounts.UpdateMe)
	accounts.GET("", d.Accounts.List, mw.AdminOnly)
	accounts.POST("", d.Accounts.Create, mw.AdminOnly)
	accounts.PUT("/:id", d.Accounts.Update, mw.AdminOnly)
	accounts.DELETE("/:id", d.Accounts.Delete, mw.AdminOnly)

	doctors := api.Group("/doctors", mw.RequireAccess)
	doctors.GET("", d.Doctors.List)
	doctors.GET("/:id", d.Doctors.Get)
}
