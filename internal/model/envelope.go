package model

// AgentResponse is the envelope returned by the agent-style endpoints
// (/api/ingest, /api/categorize, /api/plan, /api/suggest-next-steps).
type AgentResponse struct {
	Success        bool    `json:"success"`
	Data           any     `json:"data,omitempty"`
	Error          string  `json:"error,omitempty"`
	ProcessingTime float64 `json:"processing_time"`
}
