package handler

import (
	"github.com/google/uuid"

	"carte/internal/domain"
	"carte/internal/menu"
)

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// ParseMenuRequest is the single-photo extraction body.
type ParseMenuRequest struct {
	ImageBase64       string `json:"imageBase64" binding:"required" example:"data:image/jpeg;base64,/9j/4AAQSkZJRg..."`
	PreferredLanguage string `json:"preferredLanguage" example:"Spanish"`
}

// ParseBatchRequest is the multi-page extraction body.
type ParseBatchRequest struct {
	Images            []string `json:"images" binding:"required"`
	PreferredLanguage string   `json:"preferredLanguage" example:"German"`
}

// WildcardRequestBody is the curated selection body.
type WildcardRequestBody struct {
	Menu              *domain.ParsedMenu         `json:"menu"`
	PartySize         int                        `json:"partySize" example:"3"`
	HungerLevel       string                     `json:"hungerLevel" example:"hungry" enums:"light,moderate,hungry,feast"`
	Adventurous       bool                       `json:"adventurous" example:"true"`
	PreferredLanguage string                     `json:"preferredLanguage" example:"English"`
	CurrentCart       map[string]domain.CartLine `json:"currentCart,omitempty"`
}

// OrderRequest carries a cart and the menu it was built from.
type OrderRequest struct {
	Menu *domain.ParsedMenu         `json:"menu"`
	Cart map[string]domain.CartLine `json:"cart"`
}

// TranslateScanRequest names the new target language of an archived scan.
type TranslateScanRequest struct {
	PreferredLanguage string `json:"preferredLanguage" binding:"required" example:"French"`
}

// --- Response Types ---

// MenuResponse is the extraction result.
type MenuResponse struct {
	Menu   *domain.ParsedMenu `json:"menu"`
	ScanID *uuid.UUID         `json:"scanId,omitempty" swaggertype:"string" example:"550e8400-e29b-41d4-a716-446655440000"`
}

// HealthResponse represents the liveness response.
type HealthResponse struct {
	Status       string `json:"status" example:"ok"`
	HasAPIKey    bool   `json:"hasApiKey" example:"true"`
	APIKeyLength int    `json:"apiKeyLength" example:"108"`
	Environment  string `json:"environment" example:"production"`
	Timestamp    string `json:"timestamp" example:"2025-01-15T10:30:00.000Z"`
}

// ReadinessResponse reports each dependency of the readiness probe.
type ReadinessResponse struct {
	Status string            `json:"status" example:"ok"`
	Checks map[string]string `json:"checks"`
}

// LanguagesResponse lists the selectable target languages.
type LanguagesResponse struct {
	Default   string                `json:"default" example:"English"`
	Languages []menu.LanguageOption `json:"languages"`
}

// ResolvedLanguage is a resolved language parameter.
type ResolvedLanguage struct {
	Language    string `json:"language" example:"Chinese Simplified"`
	DisplayName string `json:"displayName" example:"Simplified Chinese (中文简体)"`
}

// --- Generic Response Wrappers ---

// Response wraps a successful response with data.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}
