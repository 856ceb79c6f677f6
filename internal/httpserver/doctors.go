package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/health_account/internal/service"
	"github.com/Skotchmaster/health_account/internal/transport"
)

type DoctorsHTTP struct {
	Users *service.UserService
}

func (h *DoctorsHTTP) List(c echo.Context) error {
	page, err := pageFromQuery(c)
	if err != nil {
		return err
	}
	accs, err := h.Users.ListDoctors(c.Request().Context(), c.QueryParam("nameFilter"), page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.NewAccountList(accs))
}

func (h *DoctorsHTTP) Get(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	acc, err := h.Users.GetDoctor(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.NewAccountResponse(*acc))
}
