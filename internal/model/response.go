package model

// ErrorResponse keeps the {"detail": ...} contract the frontend reads.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

type HealthResponse struct {
	Status string `json:"status" example:"healthy"`
}

type RootResponse struct {
	Status  string `json:"status" example:"online"`
	Service string `json:"service" example:"KiddoLand API"`
	Version string `json:"version" example:"1.0.0"`
}
