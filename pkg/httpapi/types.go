package httpapi

// EvaluateResponse is the JSON shape returned by POST /evaluate.
type EvaluateResponse struct {
	Allowed       bool    `json:"allowed"`
	PolicyVersion string  `json:"policy_version"`
	Error         *string `json:"error,omitempty"`
}

// ReloadResponse is the JSON shape returned by POST /reload.
type ReloadResponse struct {
	Success       bool    `json:"success"`
	Message       *string `json:"message,omitempty"`
	SizeBytes     *int    `json:"size_bytes,omitempty"`
	PolicyVersion *string `json:"policy_version,omitempty"`
	Error         *string `json:"error,omitempty"`
}

// MetricsResponse is the JSON shape returned by GET /metrics.
type MetricsResponse struct {
	MemoryKB     uint64  `json:"memory_kb"`
	MemoryMB     float64 `json:"memory_mb"`
	TargetMB     int     `json:"target_mb"`
	WithinTarget bool    `json:"within_target"`
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }
