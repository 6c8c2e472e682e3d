package models

import "time"

// Connectivity is the reachability of the remote station API.
type Connectivity string

const (
	Connecting   Connectivity = "connecting"
	Connected    Connectivity = "connected"
	Disconnected Connectivity = "disconnected"
)

// ConnectivityState is a point-in-time view of the connectivity status.
type ConnectivityState struct {
	Status      Connectivity `json:"status"`
	LastProbeAt time.Time    `json:"lastProbeAt,omitempty"`
	LastError   string       `json:"lastError,omitempty"`
}
