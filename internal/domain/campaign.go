package domain

import (
	"strings"
	"time"
)

// Status possíveis de uma campanha (ciclo draft -> active -> paused/completed)
var CampaignStatuses = []string{"draft", "active", "paused", "completed"}

// Targeting agrupa os parâmetros de segmentação de uma campanha
type Targeting struct {
	Locations   []string   `json:"locations"`
	Interests   []string   `json:"interests"`
	Devices     []string   `json:"devices"`
	BudgetDaily *float64   `json:"budget_daily,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
}

// Validate verifica orçamento e janela de veiculação
func (t *Targeting) Validate() error {
	if t.BudgetDaily != nil && *t.BudgetDaily < 0 {
		return NewValidationError("targeting.budget_daily", "orçamento diário deve ser não-negativo")
	}

	if t.StartDate != nil && t.EndDate != nil && t.StartDate.After(*t.EndDate) {
		return NewValidationError("targeting", "data final deve ser posterior à data inicial")
	}

	return nil
}

// Campaign agrupa anúncios sob parâmetros de segmentação e um status de ciclo de vida
type Campaign struct {
	CampaignID   string    `json:"campaign_id"`
	BusinessID   string    `json:"business_id"`
	Name         string    `json:"name"`
	Status       string    `json:"status"`
	AdIDs        []string  `json:"ad_ids"`
	Targeting    Targeting `json:"targeting"`
	BusinessType string    `json:"business_type"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Validate normaliza e valida os campos obrigatórios de uma campanha nova
func (c *Campaign) Validate() error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return NewValidationError("name", "nome da campanha é obrigatório")
	}

	if strings.TrimSpace(c.BusinessID) == "" {
		return NewValidationError("business_id", "business_id é obrigatório")
	}

	if c.Status == "" {
		c.Status = "draft"
	}
	if !containsString(CampaignStatuses, c.Status) {
		return NewValidationError("status", "status deve ser um de: draft, active, paused, completed")
	}

	if c.BusinessType == "" {
		c.BusinessType = "wedding_decor"
	}

	if c.AdIDs == nil {
		c.AdIDs = []string{}
	}

	return c.Targeting.Validate()
}

// CampaignPatch é a atualização parcial de uma campanha
type CampaignPatch struct {
	Name         *string    `json:"name,omitempty"`
	Status       *string    `json:"status,omitempty"`
	AdIDs        []string   `json:"ad_ids,omitempty"`
	Targeting    *Targeting `json:"targeting,omitempty"`
	BusinessType *string    `json:"business_type,omitempty"`
}

// Validate valida os campos presentes no patch
func (p *CampaignPatch) Validate() error {
	if p.Name == nil && p.Status == nil && p.AdIDs == nil && p.Targeting == nil && p.BusinessType == nil {
		return NewValidationError("", "nada para atualizar")
	}

	if p.Name != nil {
		trimmed := strings.TrimSpace(*p.Name)
		if trimmed == "" {
			return NewValidationError("name", "nome não pode ficar em branco")
		}
		p.Name = &trimmed
	}

	if p.Status != nil && !containsString(CampaignStatuses, *p.Status) {
		return NewValidationError("status", "status deve ser um de: draft, active, paused, completed")
	}

	if p.BusinessType != nil && strings.TrimSpace(*p.BusinessType) == "" {
		return NewValidationError("business_type", "business_type não pode ficar em branco")
	}

	if p.Targeting != nil {
		return p.Targeting.Validate()
	}

	return nil
}
