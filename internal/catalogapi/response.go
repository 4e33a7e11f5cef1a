package catalogapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/nexcat/catalog/internal/webserver"
)

// GetDB returns the request-scoped database handle.
func GetDB(c echo.Context) *gorm.DB {
	return actx.DB().WithContext(c.Request().Context())
}

func parseIDParam(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

func created(c echo.Context, location string, data interface{}) error {
	c.Response().Header().Set(echo.HeaderLocation, location)
	return c.JSON(http.StatusCreated, data)
}

func noContent(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}

func fail(c echo.Context, status int, code, message string, detail interface{}) error {
	return c.JSON(status, webserver.RestError{Code: code, Message: message, Detail: detail})
}

func handleValidationError(c echo.Context, err error) error {
	return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Request validation failed", err.Error())
}
