package homeassistant

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/smazurov/statusled/internal/status"
)

// Source names reported in signals.
const (
	SourceCore       = "core"
	SourceOS         = "os"
	SourceSupervisor = "supervisor"
	SourceAddons     = "addons"
	SourceDevices    = "devices"
)

// UpdateSource reports whether one Supervisor component has an update pending.
type UpdateSource struct {
	name  string
	fetch func(ctx context.Context) ([]string, error)
}

// Name returns the source name.
func (s *UpdateSource) Name() string { return s.name }

// Check queries the component. A failed query yields an unknown signal.
func (s *UpdateSource) Check(ctx context.Context) status.Signal {
	pending, err := s.fetch(ctx)
	if err != nil {
		return status.Unknown(s.name, status.UpdatePending, err)
	}
	return status.Signal{
		Source:  s.name,
		Kind:    status.UpdatePending,
		Known:   true,
		Active:  len(pending) > 0,
		Details: pending,
	}
}

// UpdateSources returns the core, OS, supervisor and add-on update sources.
func UpdateSources(c *Client) []*UpdateSource {
	version := func(label string, get func(context.Context) (*VersionInfo, error)) func(context.Context) ([]string, error) {
		return func(ctx context.Context) ([]string, error) {
			info, err := get(ctx)
			if err != nil {
				return nil, err
			}
			if !info.UpdateAvailable {
				return nil, nil
			}
			return []string{fmt.Sprintf("%s: %s -> %s", label, orUnknown(info.Version), orUnknown(info.VersionLatest))}, nil
		}
	}

	return []*UpdateSource{
		{name: SourceCore, fetch: version("Core", c.CoreInfo)},
		{name: SourceOS, fetch: version("OS", c.OSInfo)},
		{name: SourceSupervisor, fetch: version("Supervisor", c.SupervisorInfo)},
		{name: SourceAddons, fetch: func(ctx context.Context) ([]string, error) {
			addons, err := c.Addons(ctx)
			if err != nil {
				return nil, err
			}
			var pending []string
			for _, a := range addons {
				if a.UpdateAvailable {
					pending = append(pending, "Add-on: "+a.DisplayName())
				}
			}
			return pending, nil
		}},
	}
}

// DeviceSource reports unavailable entities matching the configured patterns.
type DeviceSource struct {
	client  *Client
	matcher *Matcher
	domains []string
}

// NewDeviceSource creates a device connectivity source. Only entities whose
// domain is listed in domains are considered; an empty list admits all domains.
func NewDeviceSource(c *Client, patterns, domains []string) (*DeviceSource, error) {
	matcher, err := NewMatcher(patterns)
	if err != nil {
		return nil, err
	}
	if matcher.Empty() {
		return nil, ErrNoPatterns
	}
	normalized := make([]string, 0, len(domains))
	for _, d := range domains {
		if d = strings.ToLower(strings.TrimSpace(d)); d != "" {
			normalized = append(normalized, d)
		}
	}
	return &DeviceSource{client: c, matcher: matcher, domains: normalized}, nil
}

// Name returns the source name.
func (s *DeviceSource) Name() string { return SourceDevices }

// Check lists entity states and reports matching entities in the unavailable state.
func (s *DeviceSource) Check(ctx context.Context) status.Signal {
	states, err := s.client.States(ctx)
	if err != nil {
		return status.Unknown(SourceDevices, status.DeviceUnavailable, err)
	}

	unavailable := s.Unavailable(states)
	return status.Signal{
		Source:  SourceDevices,
		Kind:    status.DeviceUnavailable,
		Known:   true,
		Active:  len(unavailable) > 0,
		Details: unavailable,
	}
}

// Unavailable returns the names of monitored entities that are unavailable.
func (s *DeviceSource) Unavailable(states []Entity) []string {
	var names []string
	for _, e := range states {
		if len(s.domains) > 0 && !slices.Contains(s.domains, strings.ToLower(e.Domain())) {
			continue
		}
		if !s.matcher.Match(e.ID) {
			continue
		}
		if e.State == StateUnavailable {
			names = append(names, e.Name())
		}
	}
	return names
}

func orUnknown(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
