// Package models holds the request and response bodies of the HTTP API.
package models

import "github.com/smazurov/statusled/internal/events"

// Health models
type HealthData struct {
	Status      string `json:"status" example:"ok" doc:"Service status, always ok"`
	Initialized bool   `json:"initialized" doc:"Whether the LED driver completed initialization"`
	Color       string `json:"color" example:"green" doc:"Color currently shown, empty before the first write"`
}

type HealthResponse struct {
	Body HealthData
}

// Set color models
type SetColorInput struct {
	Color string `query:"color" example:"red" doc:"Color name (green, amber, red, blue, white, off) or status alias (ok, updates, warning, error, zigbee, starting, test)"`
}

type SetColorData struct {
	Status string `json:"status" example:"ok" doc:"Result"`
	Color  string `json:"color" example:"red" doc:"Applied color"`
	RGB    []int  `json:"rgb" example:"[255,0,0]" doc:"Applied RGB triple"`
}

type SetColorResponse struct {
	Body SetColorData
}

// Status models
type StatusData struct {
	Color     string               `json:"color" example:"amber" doc:"Resolved color"`
	Rule      string               `json:"rule" example:"update-pending" doc:"Rule that decided the color"`
	Degraded  bool                 `json:"degraded" doc:"Whether any source failed in the last cycle"`
	Stale     bool                 `json:"stale" doc:"Whether every source failed and the color was carried over"`
	Signals   []events.SignalState `json:"signals" doc:"Signals of the last cycle"`
	Timestamp string               `json:"timestamp" example:"2025-01-27T10:30:00Z" doc:"When the last cycle resolved"`
}

type StatusResponse struct {
	Body StatusData
}

// Version models
type VersionData struct {
	Version   string `json:"version" example:"1.2.0" doc:"Application version"`
	GitCommit string `json:"git_commit" example:"a1b2c3d" doc:"Git commit hash"`
	BuildDate string `json:"build_date" example:"2025-01-27T10:30:00Z" doc:"Build timestamp"`
	GoVersion string `json:"go_version" example:"go1.24.0" doc:"Go toolchain version"`
	Platform  string `json:"platform" example:"linux/arm64" doc:"Target platform"`
	Hardware  bool   `json:"hardware" doc:"Whether the binary was built with ws281x hardware support"`
}

type VersionResponse struct {
	Body VersionData
}
