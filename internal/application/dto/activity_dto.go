package dto

import "time"

// ActivityResponse representación de un registro de auditoría en respuestas.
type ActivityResponse struct {
	ID          string         `json:"id"`
	UserID      *string        `json:"user_id,omitempty"`
	Type        string         `json:"activity_type"`
	EntityType  string         `json:"entity_type"`
	EntityID    *string        `json:"entity_id,omitempty"`
	Description string         `json:"description"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// ActivityListResponse página del feed de auditoría.
type ActivityListResponse struct {
	Items []ActivityResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
