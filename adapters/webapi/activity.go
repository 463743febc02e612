package webapi

import (
	"errors"
	"github.com/gissleh/tawngbu"
	"github.com/gissleh/tawngbu/service"
	"github.com/labstack/echo/v4"
	"net/http"
	"net/url"
)

func Activity(group *echo.Group, svc *service.Service) {
	group.GET("/activity", func(c echo.Context) error {
		profile, err := profileID(c)
		if err != nil {
			return err
		}

		activity, err := svc.Activity(c.Request().Context(), profile)
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, activity)
	})

	group.GET("/favorites", func(c echo.Context) error {
		profile, err := profileID(c)
		if err != nil {
			return err
		}

		favorites, err := svc.Favorites(c.Request().Context(), profile)
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, map[string]any{
			"favorites": favorites,
		})
	})

	group.POST("/favorites/:word", func(c echo.Context) error {
		word, profile, err := wordAndProfile(c)
		if err != nil {
			return err
		}

		favorite, activity, err := svc.ToggleFavorite(c.Request().Context(), profile, word)
		if err != nil && !isWriteFailure(err) {
			return err
		}

		return c.JSON(http.StatusOK, map[string]any{
			"word":      word,
			"favorite":  favorite,
			"activity":  activity,
			"persisted": err == nil,
		})
	})

	group.POST("/recent/:word", func(c echo.Context) error {
		word, profile, err := wordAndProfile(c)
		if err != nil {
			return err
		}

		activity, err := svc.AddRecentSearch(c.Request().Context(), profile, word)
		if err != nil && !isWriteFailure(err) {
			return err
		}

		return c.JSON(http.StatusOK, map[string]any{
			"activity":  activity,
			"persisted": err == nil,
		})
	})
}

func wordAndProfile(c echo.Context) (string, string, error) {
	word, err := url.PathUnescape(c.Param("word"))
	if err != nil {
		return "", "", echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if word == "" {
		return "", "", tawngbu.ErrEmptyQuery
	}

	profile, err := profileID(c)
	if err != nil {
		return "", "", err
	}

	return word, profile, nil
}

// isWriteFailure is true for persistence errors that happened after the mutation was
// applied in memory, where the response can still carry the new state.
func isWriteFailure(err error) bool {
	var persistErr *tawngbu.PersistenceError
	return errors.As(err, &persistErr) && persistErr.Op != "read" && persistErr.Op != "decode"
}
