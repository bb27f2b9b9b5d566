package models

// TimingInfo reports where time was spent during a search.
type TimingInfo struct {
	TotalMs      int64 `json:"total_ms"`
	NavigationMs int64 `json:"navigation_ms,omitempty"`
	ExtractionMs int64 `json:"extraction_ms,omitempty"`
}

// SearchResponse is the API payload for the search endpoints.
type SearchResponse struct {
	Success bool         `json:"success"`
	Kind    string       `json:"kind,omitempty"`
	Columns []string     `json:"columns,omitempty"`
	Rows    []Row        `json:"rows,omitempty"`
	Count   int          `json:"count"`
	Timing  TimingInfo   `json:"timing"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

// OptionInfo is one dropdown choice in API responses.
type OptionInfo struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// LocationsResponse is the payload for GET /api/v1/locations.
type LocationsResponse struct {
	Success bool         `json:"success"`
	Options []OptionInfo `json:"options,omitempty"`
	Count   int          `json:"count"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

// FieldInfo describes one discovered form field in API responses.
type FieldInfo struct {
	ID      string       `json:"id"`
	Name    string       `json:"name,omitempty"`
	Type    string       `json:"type"`
	Options []OptionInfo `json:"options,omitempty"`
}

// FormInfoResponse is the payload for GET /api/v1/form/:kind.
type FormInfoResponse struct {
	Success     bool         `json:"success"`
	Kind        string       `json:"kind,omitempty"`
	Fields      []FieldInfo  `json:"fields,omitempty"`
	SubmitFunc  string       `json:"submit_func,omitempty"`
	SubmitLabel string       `json:"submit_label,omitempty"`
	Fingerprint string       `json:"fingerprint,omitempty"`
	Error       *ErrorDetail `json:"error,omitempty"`
}

// HealthResponse is the payload for GET /api/v1/health.
type HealthResponse struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
	Version string `json:"version"`
}
