package httpserver

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/health_account/internal/apperr"
	authmw "github.com/Skotchmaster/health_account/internal/middleware/auth"
	"github.com/Skotchmaster/health_account/internal/repo"
	"github.com/Skotchmaster/health_account/internal/service"
	"github.com/Skotchmaster/health_account/internal/util"
)

// pageFromQuery reads from/count, or page/size when page is given.
func pageFromQuery(c echo.Context) (repo.Page, error) {
	var from, count, page, size int
	err := echo.QueryParamsBinder(c).
		Int("from", &from).
		Int("count", &count).
		Int("page", &page).
		Int("size", &size).
		BindError()
	if err != nil {
		return repo.Page{}, apperr.Validation("invalid pagination parameters")
	}

	var offset, limit int
	if c.QueryParam("page") != "" {
		offset, limit = util.Calculate(page, size)
	} else {
		offset, limit = util.Window(from, count)
	}
	return repo.Page{Offset: offset, Limit: limit}, nil
}

func idParam(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validation("invalid id")
	}
	return id, nil
}

func principal(c echo.Context) (*service.Principal, error) {
	p, ok := authmw.Principal(c)
	if !ok {
		return nil, apperr.ErrUnauthorized
	}
	return p, nil
}

func bind(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return apperr.Validation("invalid body")
	}
	return nil
}
