package dto

// HealthResponse reports liveness of the service and its store connection.
// Initialized reflects whether the one-time schema bootstrap succeeded.
type HealthResponse struct {
	Status      string `json:"status"`
	Database    string `json:"database"`
	Initialized bool   `json:"initialized"`
	Error       string `json:"error,omitempty"`
}
