package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/smazurov/statusled/internal/api/models"
	"github.com/smazurov/statusled/internal/monitor"
)

// registerStatusRoutes exposes the last monitor cycle.
func (s *Server) registerStatusRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "get-status",
		Method:      http.MethodGet,
		Path:        "/api/status",
		Summary:     "Status",
		Description: "Last resolved status with the signals that produced it",
		Tags:        []string{"status"},
		Errors:      []int{503},
	}, func(_ context.Context, _ *struct{}) (*models.StatusResponse, error) {
		snap, ok := s.options.Status.Last()
		if !ok {
			return nil, huma.Error503ServiceUnavailable("no status resolved yet")
		}
		res := snap.Resolution
		return &models.StatusResponse{
			Body: models.StatusData{
				Color:     res.Color.String(),
				Rule:      res.Rule,
				Degraded:  res.Degraded,
				Stale:     res.Stale,
				Signals:   monitor.SignalStates(snap.Signals),
				Timestamp: res.At.Format(time.RFC3339),
			},
		}, nil
	})
}
