package dto

// Límites de paginación por tipo de listado.
const (
	MaxPageLimit         = 100
	MaxActivityPageLimit = 500 // el feed de auditoría admite páginas más grandes
)

// PageRequest paginación para listados (skip/limit).
type PageRequest struct {
	Skip  int `query:"skip"`
	Limit int `query:"limit"`
}

// Clamp aplica valores por defecto y el tope máximo dado.
func (p *PageRequest) Clamp(max int) {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > max {
		p.Limit = max
	}
	if p.Skip < 0 {
		p.Skip = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Skip  int `json:"skip"`
	Limit int `json:"limit"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
