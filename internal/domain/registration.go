package domain

import (
	"strings"
	"time"
)

// Registration é um evento de marketing observado (lead/conversão) com as
// medidas de gasto e engajamento associadas. O motor de métricas só lê
// esta entidade; escrita acontece apenas pela camada de repositório.
type Registration struct {
	RegistrationID string         `json:"registration_id"`
	BusinessID     string         `json:"business_id"`
	CampaignID     string         `json:"campaign_id"`
	AdID           *string        `json:"ad_id,omitempty"`
	UserID         *string        `json:"user_id,omitempty"`
	Source         string         `json:"source"`
	Cost           float64        `json:"cost"`
	Spent          *float64       `json:"spent,omitempty"`
	Messages       *int64         `json:"messages,omitempty"`
	Reach          *int64         `json:"reach,omitempty"`
	Impressions    *int64         `json:"impressions,omitempty"`
	Clicks         *int64         `json:"clicks,omitempty"`
	Timestamp      time.Time      `json:"timestamp"`
	Meta           map[string]any `json:"meta"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// Validate normaliza e valida os campos de um registro novo
func (r *Registration) Validate() error {
	r.CampaignID = strings.TrimSpace(r.CampaignID)
	if r.CampaignID == "" {
		return NewValidationError("campaign_id", "campaign_id é obrigatório")
	}

	if strings.TrimSpace(r.BusinessID) == "" {
		return NewValidationError("business_id", "business_id é obrigatório")
	}

	if strings.TrimSpace(r.Source) == "" {
		return NewValidationError("source", "source é obrigatório")
	}

	if r.Timestamp.IsZero() {
		return NewValidationError("timestamp", "timestamp é obrigatório")
	}
	// Timestamps sem fuso são tratados como UTC
	r.Timestamp = r.Timestamp.UTC()

	if r.Cost < 0 {
		return NewValidationError("cost", "cost deve ser não-negativo")
	}
	if r.Spent != nil && *r.Spent < 0 {
		return NewValidationError("spent", "spent deve ser não-negativo")
	}

	if err := validateMeasures(r.Messages, r.Reach, r.Impressions, r.Clicks); err != nil {
		return err
	}

	if r.Meta == nil {
		r.Meta = map[string]any{}
	}

	return nil
}

// RegistrationPatch é a atualização parcial de um registro
type RegistrationPatch struct {
	AdID        *string        `json:"ad_id,omitempty"`
	UserID      *string        `json:"user_id,omitempty"`
	Source      *string        `json:"source,omitempty"`
	Cost        *float64       `json:"cost,omitempty"`
	Spent       *float64       `json:"spent,omitempty"`
	Messages    *int64         `json:"messages,omitempty"`
	Reach       *int64         `json:"reach,omitempty"`
	Impressions *int64         `json:"impressions,omitempty"`
	Clicks      *int64         `json:"clicks,omitempty"`
	Timestamp   *time.Time     `json:"timestamp,omitempty"`
	Meta        map[string]any `json:"meta,omitempty"`
}

// Validate valida os campos presentes no patch
func (p *RegistrationPatch) Validate() error {
	if p.AdID == nil && p.UserID == nil && p.Source == nil && p.Cost == nil &&
		p.Spent == nil && p.Messages == nil && p.Reach == nil &&
		p.Impressions == nil && p.Clicks == nil && p.Timestamp == nil && p.Meta == nil {
		return NewValidationError("", "nada para atualizar")
	}

	if p.Source != nil && strings.TrimSpace(*p.Source) == "" {
		return NewValidationError("source", "source não pode ficar em branco")
	}

	if p.Cost != nil && *p.Cost < 0 {
		return NewValidationError("cost", "cost deve ser não-negativo")
	}
	if p.Spent != nil && *p.Spent < 0 {
		return NewValidationError("spent", "spent deve ser não-negativo")
	}

	return validateMeasures(p.Messages, p.Reach, p.Impressions, p.Clicks)
}

func validateMeasures(messages, reach, impressions, clicks *int64) error {
	fields := map[string]*int64{
		"messages":    messages,
		"reach":       reach,
		"impressions": impressions,
		"clicks":      clicks,
	}
	for name, value := range fields {
		if value != nil && *value < 0 {
			return NewValidationError(name, name+" deve ser não-negativo")
		}
	}
	return nil
}
