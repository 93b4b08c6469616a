package http

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/odmap/backend/internal/domain"
	"github.com/odmap/backend/internal/service"
)

// HealthChecker is implemented by sources that can report reachability
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Handler contains all HTTP handlers
type Handler struct {
	renderSvc *service.RenderService
	health    HealthChecker
}

// NewHandler creates a new handler; health may be nil
func NewHandler(renderSvc *service.RenderService, health HealthChecker) *Handler {
	return &Handler{
		renderSvc: renderSvc,
		health:    health,
	}
}

// HealthCheck returns service health status
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	source := "ok"
	if h.health != nil {
		if err := h.health.Health(c.UserContext()); err != nil {
			log.Printf("Source health check failed: %v", err)
			source = "unreachable"
		}
	}

	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "odmap-backend",
		"version": "1.0.0",
		"source":  source,
	})
}

// GetDays lists the selectable days and modes
func (h *Handler) GetDays(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    h.renderSvc.Days(),
		"modes":   domain.Modes,
	})
}

// GetRender returns the map, histogram and summary for one selection
func (h *Handler) GetRender(c *fiber.Ctx) error {
	q, err := parseQuery(c)
	if err != nil {
		return err
	}

	out, err := h.renderSvc.Render(c.UserContext(), q)
	if err != nil {
		return toFiberError(err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    out,
	})
}

// GetHistogram returns the per-minute chart series for one selection
func (h *Handler) GetHistogram(c *fiber.Ctx) error {
	q, err := parseQuery(c)
	if err != nil {
		return err
	}

	hist, err := h.renderSvc.Histogram(c.UserContext(), q)
	if err != nil {
		return toFiberError(err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    hist.Series(),
		"total":   hist.Total(),
	})
}

// parseQuery reads day, hour, mode and raw from the query string.
// day defaults to 1, hour to 0 and mode to Origin.
func parseQuery(c *fiber.Ctx) (domain.Query, error) {
	mode, err := domain.ParseMode(c.Query("mode", string(domain.ModeOrigin)))
	if err != nil {
		return domain.Query{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	day, err := queryInt(c, "day", 1)
	if err != nil {
		return domain.Query{}, err
	}
	hour, err := queryInt(c, "hour", 0)
	if err != nil {
		return domain.Query{}, err
	}

	q := domain.Query{
		Day:     day,
		Hour:    hour,
		Mode:    mode,
		ShowRaw: c.QueryBool("raw", false),
	}
	if err := q.Validate(); err != nil {
		return domain.Query{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return q, nil
}

// queryInt reads an integer parameter; absent means def, anything else must be a number
func queryInt(c *fiber.Ctx, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("%s must be an integer, got %q", key, raw))
	}
	return n, nil
}

func toFiberError(err error) error {
	var srcErr *service.SourceError
	switch {
	case errors.Is(err, domain.ErrInvalidDay),
		errors.Is(err, domain.ErrInvalidHour),
		errors.Is(err, domain.ErrInvalidMode):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.As(err, &srcErr):
		log.Printf("Record source error: %v", err)
		return fiber.NewError(fiber.StatusBadGateway, "Failed to load trip data")
	case errors.Is(err, domain.ErrBadTimestamp):
		log.Printf("Malformed trip data: %v", err)
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	default:
		log.Printf("Render error: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to render selection")
	}
}
