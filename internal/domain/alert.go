package domain

// Alert types, which drive styling.
const (
	AlertInfo    = "info"
	AlertWarning = "warning"
	AlertDanger  = "danger"
)

// Alert priorities.
const (
	PriorityMedium   = "medium"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

// Alert is a derived advisory shown on the dashboard. Alerts are recomputed on
// every load and never persisted.
type Alert struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Message  string `json:"message"`
	Priority string `json:"priority"`
}
