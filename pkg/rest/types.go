package rest

import "time"

// Status is the control API view of the running acquisition.
type Status struct {
	State        string    `json:"state"`
	RunID        string    `json:"runId"`
	StartedAt    time.Time `json:"startedAt"`
	Cycles       int       `json:"cycles"`
	IntervalSec  int       `json:"intervalSec"`
	AffinityHint string    `json:"affinityHint,omitempty"`
	Blocklist    []string  `json:"blocklist"`
	LastOutcome  *Outcome  `json:"lastOutcome,omitempty"`
}

type Outcome struct {
	Kind    string    `json:"kind"`
	Keyword string    `json:"keyword,omitempty"`
	Title   string    `json:"title,omitempty"`
	Total   string    `json:"total,omitempty"`
	At      time.Time `json:"at"`
}

type Event struct {
	At      time.Time `json:"at"`
	Stage   string    `json:"stage"`
	Message string    `json:"message"`
}

type Events struct {
	Events []Event `json:"events"`
}

// Error is the body produced by reply.Error.
type Error struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

type ErrorCode string
