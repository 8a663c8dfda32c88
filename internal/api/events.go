package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/sse"
	"github.com/smazurov/statusled/internal/events"
)

// registerSSERoutes registers the native Huma SSE endpoint.
func (s *Server) registerSSERoutes() {
	sse.Register(s.api, huma.Operation{
		OperationID: "events-stream",
		Method:      http.MethodGet,
		Path:        "/api/events",
		Summary:     "Server-Sent Events Stream",
		Description: "Real-time stream of color changes and resolved statuses",
		Tags:        []string{"events"},
	}, map[string]any{
		"color-changed":   events.ColorChangedEvent{},
		"status-resolved": events.StatusResolvedEvent{},
	}, func(ctx context.Context, _ *struct{}, send sse.Sender) {
		eventCh := make(chan any, 10)

		unsubscribers := []func(){
			events.SubscribeToChannel[events.ColorChangedEvent](s.eventBus, eventCh),
			events.SubscribeToChannel[events.StatusResolvedEvent](s.eventBus, eventCh),
		}
		defer func() {
			for _, unsub := range unsubscribers {
				unsub()
			}
		}()

		// The current color is sent first so clients need no separate request.
		if s.options.Driver != nil {
			if c, ok := s.options.Driver.Current(); ok {
				if err := send.Data(events.ColorChangedEvent{Color: c.String(), Origin: "snapshot"}); err != nil {
					return
				}
			}
		}

		for {
			select {
			case <-ctx.Done():
				return
			case event := <-eventCh:
				if err := send.Data(event); err != nil {
					return
				}
			}
		}
	})
}
