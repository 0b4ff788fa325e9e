// Package catalog serves the normalized listings, episodes and streams of every source as JSON.
package catalog

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"github.com/samber/lo"
	"github.com/streambox/streambox/log"
	"github.com/streambox/streambox/source"
)

// Prefix is the route group of the catalog endpoints.
const Prefix = "/catalog"

type sourceInfo struct {
	ID    string        `json:"id"`
	Name  string        `json:"name"`
	Modes []source.Mode `json:"modes"`
}

type listResponse struct {
	Source string         `json:"source"`
	Mode   string         `json:"mode"`
	Page   int            `json:"page"`
	Items  []*source.Item `json:"items"`
}

type streamsResponse struct {
	Streams []*source.Stream `json:"streams"`
	Default int              `json:"default"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Mount registers the catalog routes. order lists the source ids in display order.
func Mount(router fiber.Router, sources map[string]source.Source, order []string) {
	group := router.Group(Prefix)

	group.Get("/sources", createSourcesHandler(sources, order))
	group.Get("/:source/list", createListHandler(sources))
	group.Get("/:source/episodes/:id", createEpisodesHandler(sources))
	group.Get("/:source/streams/:id", createStreamsHandler(sources))
}

func createSourcesHandler(sources map[string]source.Source, order []string) fiber.Handler {
	infos := lo.FilterMap(order, func(id string, _ int) (sourceInfo, bool) {
		src, ok := sources[id]
		if !ok {
			return sourceInfo{}, false
		}
		return sourceInfo{ID: src.ID(), Name: src.Name(), Modes: src.Modes()}, true
	})

	return func(c fiber.Ctx) error {
		return c.JSON(infos)
	}
}

func createListHandler(sources map[string]source.Source) fiber.Handler {
	return func(c fiber.Ctx) error {
		src, ok := sources[c.Params("source")]
		if !ok {
			return sendError(c, fiber.StatusNotFound, "unknown source")
		}

		mode := c.Query("mode", src.Modes()[0].ID)
		page, err := strconv.Atoi(c.Query("page", "1"))
		if err != nil || page < 1 {
			return sendError(c, fiber.StatusBadRequest, "invalid page")
		}

		items, err := src.ListContent(c.Context(), source.Query{Mode: mode, Page: page, Text: c.Query("q")})
		if err != nil {
			return sendSourceError(c, err)
		}

		return c.JSON(listResponse{Source: src.ID(), Mode: mode, Page: page, Items: items})
	}
}

func createEpisodesHandler(sources map[string]source.Source) fiber.Handler {
	return func(c fiber.Ctx) error {
		src, ok := sources[c.Params("source")]
		if !ok {
			return sendError(c, fiber.StatusNotFound, "unknown source")
		}

		episodes, err := src.ListEpisodes(c.Context(), c.Params("id"))
		if err != nil {
			return sendSourceError(c, err)
		}

		return c.JSON(episodes)
	}
}

// createStreamsHandler rebuilds the episode from its key, ordinal, season and number query parameters.
func createStreamsHandler(sources map[string]source.Source) fiber.Handler {
	return func(c fiber.Ctx) error {
		src, ok := sources[c.Params("source")]
		if !ok {
			return sendError(c, fiber.StatusNotFound, "unknown source")
		}

		episode := &source.Episode{Key: c.Query("key")}
		episode.Ordinal, _ = strconv.Atoi(c.Query("ordinal"))
		episode.Season, _ = strconv.Atoi(c.Query("season"))
		episode.Number, _ = strconv.Atoi(c.Query("number"))

		streams, err := src.ResolveStreams(c.Context(), c.Params("id"), episode)
		if err != nil {
			return sendSourceError(c, err)
		}

		return c.JSON(streamsResponse{
			Streams: streams,
			Default: source.SelectStream(streams, c.Query("quality")),
		})
	}
}

// sendSourceError maps adapter errors: empty results are 404, unknown modes 400, anything else 502.
func sendSourceError(c fiber.Ctx, err error) error {
	var (
		transport   *source.TransportError
		application *source.ApplicationError
	)

	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, source.ErrEmpty):
		status = fiber.StatusNotFound
	case errors.Is(err, source.ErrUnknownMode):
		status = fiber.StatusBadRequest
	case errors.As(err, &transport), errors.As(err, &application):
		status = fiber.StatusBadGateway
	}

	if status >= fiber.StatusInternalServerError {
		log.Warnf("catalog %s: %v", c.Path(), err)
	}
	return sendError(c, status, err.Error())
}

func sendError(c fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(errorResponse{Error: msg})
}
