package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/health_account/internal/service"
	"github.com/Skotchmaster/health_account/internal/transport"
)

type AccountsHTTP struct {
	Users *service.UserService
}

func (h *AccountsHTTP) Me(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	acc, err := h.Users.GetAccount(c.Request().Context(), p.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.NewAccountResponse(*acc))
}

func (h *AccountsHTTP) UpdateMe(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req transport.UpdateMeRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	acc, err := h.Users.UpdateUser(c.Request().Context(), p.User.ID, service.UserUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.NewAccountResponse(*acc))
}

func (h *AccountsHTTP) List(c echo.Context) error {
	page, err := pageFromQuery(c)
	if err != nil {
		return err
	}
	accs, err := h.Users.GetAllUsers(c.Request().Context(), true, page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.NewAccountList(accs))
}

func (h *AccountsHTTP) Create(c echo.Context) error {
	var req transport.CreateUserRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	acc, err := h.Users.AddUser(c.Request().Context(), service.NewUser{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
		Password:  req.Password,
		Roles:     req.Roles,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, transport.NewAccountResponse(*acc))
}

func (h *AccountsHTTP) Update(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var req transport.UpdateUserRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	acc, err := h.Users.UpdateUser(c.Request().Context(), id, service.UserUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
		Password:  req.Password,
		Roles:     req.Roles,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.NewAccountResponse(*acc))
}

func (h *AccountsHTTP) Delete(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if _, err := h.Users.DeleteUser(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.StatusResponse{Status: "ok"})
}
