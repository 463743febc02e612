package webapi

import (
	"errors"
	"fmt"
	"github.com/gissleh/tawngbu"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"log/slog"
	"net/http"
)

const headerProfileID = "X-Profile-ID"

func Setup(addr string) (*echo.Echo, <-chan error) {
	e := SetupWithoutListener()

	errCh := make(chan error)
	go func() {
		defer close(errCh)

		err := e.Start(addr)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	return e, errCh
}

// SetupWithoutListener configures an echo instance for callers that drive it themselves,
// such as the lambda proxy or tests.
func SetupWithoutListener() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  []string{"*"},
		AllowHeaders:  []string{echo.HeaderContentType, headerProfileID},
		ExposeHeaders: []string{headerProfileID, echo.HeaderXRequestID},
	}))
	e.Use(middleware.Gzip())
	e.HTTPErrorHandler = wrapError

	return e
}

func wrapError(err error, c echo.Context) {
	var httpErr *echo.HTTPError
	var bindingErr *echo.BindingError
	var persistErr *tawngbu.PersistenceError

	switch {
	case errors.As(err, &bindingErr):
		_ = c.JSON(bindingErr.Code, map[string]string{"error": fmt.Sprint(bindingErr.Message)})
	case errors.As(err, &httpErr):
		_ = c.JSON(httpErr.Code, map[string]string{"error": fmt.Sprint(httpErr.Message)})
	case errors.Is(err, tawngbu.ErrReadOnly):
		_ = c.JSON(http.StatusBadGateway, map[string]string{"error": err.Error()})
	case errors.Is(err, tawngbu.ErrEntryNotFound):
		_ = c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, tawngbu.ErrEmptyQuery), errors.Is(err, tawngbu.ErrUnknownDirection), errors.Is(err, tawngbu.ErrInvalidProfile):
		_ = c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.As(err, &persistErr):
		_ = c.JSON(http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
	default:
		slog.Error("Unhandled error", "path", c.Path(), "error", err)
		_ = c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}

// profileID reads the caller's profile. Requests without the header act as the single
// local user, which is the empty profile.
func profileID(c echo.Context) (string, error) {
	id := c.Request().Header.Get(headerProfileID)
	if id == "" {
		return "", nil
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", tawngbu.ErrInvalidProfile
	}

	c.Response().Header().Set(headerProfileID, id)
	return id, nil
}
