package webapi

import (
	"errors"
	"github.com/gissleh/tawngbu"
	"github.com/gissleh/tawngbu/service"
	"github.com/labstack/echo/v4"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

func Dictionary(group *echo.Group, svc *service.Service) {
	group.GET("/search/:direction/:query", func(c echo.Context) error {
		query, err := url.PathUnescape(c.Param("query"))
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		direction, err := tawngbu.ParseDirection(c.Param("direction"))
		if err != nil {
			return err
		}
		profile, err := profileID(c)
		if err != nil {
			return err
		}

		seq := int64(0)
		if raw := c.QueryParam("seq"); raw != "" {
			seq, err = strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "seq must be an integer")
			}
		}

		start := time.Now()
		res, err := svc.Search(c.Request().Context(), profile, query, direction)
		if err != nil {
			return err
		}
		svc.Log().Debug("Search executed", "query", res.Query, "direction", direction, "results", len(res.Results), "duration", time.Since(start))

		return c.JSON(http.StatusOK, map[string]any{
			"query":     res.Query,
			"direction": res.Direction,
			"exact":     res.Exact,
			"results":   res.Results,
			"seq":       seq,
		})
	})

	group.GET("/entries/:word", func(c echo.Context) error {
		word, err := url.PathUnescape(c.Param("word"))
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}

		entry, err := svc.Entry(word)
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, map[string]any{
			"entry": entry,
		})
	})

	group.GET("/wotd", func(c echo.Context) error {
		view, err := svc.WordOfTheDay(c.Request().Context())
		var persistErr *tawngbu.PersistenceError
		if err != nil && (view == nil || !errors.As(err, &persistErr)) {
			return err
		}

		return c.JSON(http.StatusOK, map[string]any{
			"wotd":      view,
			"persisted": err == nil,
		})
	})

	group.GET("/stats", func(c echo.Context) error {
		return c.JSON(http.StatusOK, svc.Stats())
	})
}
