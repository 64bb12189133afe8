package models

import "time"

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type CartResponse struct {
	Success bool        `json:"success"`
	Data    CartSummary `json:"data"`
}

type LineItemResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Data    LineItem `json:"data"`
}

type HealthResponse struct {
	Status    string    `json:"status" example:"OK"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    float64   `json:"uptime" example:"12.5"`
}

type ServiceInfo struct {
	Message       string            `json:"message"`
	Version       string            `json:"version"`
	Description   string            `json:"description"`
	Documentation string            `json:"documentation"`
	Endpoints     map[string]string `json:"endpoints"`
}

type RouteNotFoundResponse struct {
	Success         bool              `json:"success"`
	Error           string            `json:"error"`
	Message         string            `json:"message"`
	AvailableRoutes map[string]string `json:"availableRoutes"`
}
