package domain

import (
	"net/url"
	"strings"
	"time"
)

// Status possíveis de um anúncio
var AdStatuses = []string{"active", "paused", "archived"}

// Ad é uma peça criativa da biblioteca de anúncios de um tenant
type Ad struct {
	AdID        string    `json:"ad_id"`
	BusinessID  string    `json:"business_id"`
	Title       string    `json:"title"`
	Status      string    `json:"status"`
	CreativeURL *string   `json:"creative_url,omitempty"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Validate normaliza e valida os campos obrigatórios de um anúncio novo
func (a *Ad) Validate() error {
	a.Title = strings.TrimSpace(a.Title)
	if a.Title == "" {
		return NewValidationError("title", "título é obrigatório")
	}

	if strings.TrimSpace(a.BusinessID) == "" {
		return NewValidationError("business_id", "business_id é obrigatório")
	}

	if a.Status == "" {
		a.Status = "active"
	}
	if !containsString(AdStatuses, a.Status) {
		return NewValidationError("status", "status deve ser um de: active, paused, archived")
	}

	if a.CreativeURL != nil {
		trimmed := strings.TrimSpace(*a.CreativeURL)
		if trimmed == "" {
			a.CreativeURL = nil
		} else if err := validateURL(trimmed); err != nil {
			return NewValidationError("creative_url", "URL do criativo inválida")
		} else {
			a.CreativeURL = &trimmed
		}
	}

	a.Tags = normalizeTags(a.Tags)
	return nil
}

// AdPatch é a atualização parcial de um anúncio; campos nil não são alterados
type AdPatch struct {
	Title       *string  `json:"title,omitempty"`
	Status      *string  `json:"status,omitempty"`
	CreativeURL *string  `json:"creative_url,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// Validate valida os campos presentes no patch
func (p *AdPatch) Validate() error {
	if p.Title == nil && p.Status == nil && p.CreativeURL == nil && p.Tags == nil {
		return NewValidationError("", "nada para atualizar")
	}

	if p.Title != nil {
		trimmed := strings.TrimSpace(*p.Title)
		if trimmed == "" {
			return NewValidationError("title", "título não pode ficar em branco")
		}
		p.Title = &trimmed
	}

	if p.Status != nil && !containsString(AdStatuses, *p.Status) {
		return NewValidationError("status", "status deve ser um de: active, paused, archived")
	}

	if p.CreativeURL != nil {
		trimmed := strings.TrimSpace(*p.CreativeURL)
		if trimmed != "" {
			if err := validateURL(trimmed); err != nil {
				return NewValidationError("creative_url", "URL do criativo inválida")
			}
			p.CreativeURL = &trimmed
		}
	}

	if p.Tags != nil {
		p.Tags = normalizeTags(p.Tags)
	}

	return nil
}

func validateURL(raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return NewValidationError("url", "esquema inválido")
	}
	return nil
}
