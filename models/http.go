package models

// ErrorResponse is the JSON error body returned by every endpoint:
// {"error": "..."} with an optional details object (used by the quota
// pre-check to report the exact byte numbers).
type ErrorResponse struct {
	Error   string        `json:"error"`
	Details *QuotaDetails `json:"details,omitempty"`
}

// QuotaDetails accompanies a "Storage quota exceeded" rejection.
type QuotaDetails struct {
	Used     int64 `json:"used"`
	Assigned int64 `json:"assigned"`
	Required int64 `json:"required"`
}

// SuccessResponse is the minimal positive acknowledgement body.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// RefreshRequest carries the refresh token presented to the refresh
// endpoint.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}
