package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/smazurov/statusled/internal/api/models"
	"github.com/smazurov/statusled/internal/events"
	"github.com/smazurov/statusled/internal/led"
)

// registerColorRoutes registers the direct color control endpoint.
func (s *Server) registerColorRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "set-color",
		Method:      http.MethodGet,
		Path:        "/set_color",
		Summary:     "Set color",
		Description: "Show a color on the whole strip. Unknown or missing colors are rejected without touching the strip.",
		Tags:        []string{"led"},
		Errors:      []int{400, 500, 503},
	}, func(_ context.Context, input *models.SetColorInput) (*models.SetColorResponse, error) {
		if input.Color == "" {
			return nil, huma.Error400BadRequest("missing color parameter")
		}
		c, err := led.ParseColor(input.Color)
		if err != nil {
			return nil, huma.Error400BadRequest("unknown color", err)
		}

		prev, shown, err := s.options.Driver.Swap(c)
		if err != nil {
			s.logger.Error("Failed to set color", "color", c, "error", err)
			if errors.Is(err, led.ErrNotInitialized) {
				return nil, huma.Error503ServiceUnavailable("LED driver not initialized", err)
			}
			return nil, huma.Error500InternalServerError("failed to write color", err)
		}

		previous := ""
		if shown {
			previous = prev.String()
		}
		if previous != c.String() {
			s.eventBus.Publish(events.ColorChangedEvent{
				Color:     c.String(),
				Previous:  previous,
				Origin:    "api",
				Timestamp: time.Now().Format(time.RFC3339),
			})
		}

		rgb := c.RGB()
		return &models.SetColorResponse{
			Body: models.SetColorData{
				Status: "ok",
				Color:  c.String(),
				RGB:    []int{int(rgb.R), int(rgb.G), int(rgb.B)},
			},
		}, nil
	})
}
