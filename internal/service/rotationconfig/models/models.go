package models

import (
	"time"

	"github.com/m04kA/SMC-DepartureService/internal/domain"
)

// UpdateConfigRequest запрос на частичное обновление политики ротации
// Все поля опциональны - обновляются только переданные значения
type UpdateConfigRequest struct {
	AdminID            string  `json:"-"`
	IsEnabled          *bool   `json:"isEnabled,omitempty"`
	Mode               *string `json:"mode,omitempty"`
	SkipWithinDays     *int    `json:"skipWithinDays,omitempty"`
	PrioritizeFullMoon *bool   `json:"prioritizeFullMoon,omitempty"`
}

// ConfigResponse ответ с политикой ротации и результатом последнего запуска
type ConfigResponse struct {
	IsEnabled          bool                   `json:"isEnabled"`
	Mode               string                 `json:"mode"`
	SkipWithinDays     int                    `json:"skipWithinDays"`
	PrioritizeFullMoon bool                   `json:"prioritizeFullMoon"`
	LastRunAt          *time.Time             `json:"lastRunAt,omitempty"`
	LastRunResult      *domain.RotationResult `json:"lastRunResult,omitempty"`
	UpdatedAt          time.Time              `json:"updatedAt"`
}

// FromDomainConfig конвертирует domain модель в DTO
func FromDomainConfig(c *domain.RotationConfig) *ConfigResponse {
	if c == nil {
		return nil
	}

	return &ConfigResponse{
		IsEnabled:          c.IsEnabled,
		Mode:               string(c.Mode),
		SkipWithinDays:     c.SkipWithinDays,
		PrioritizeFullMoon: c.PrioritizeFullMoon,
		LastRunAt:          c.LastRunAt,
		LastRunResult:      c.LastRunResult,
		UpdatedAt:          c.UpdatedAt,
	}
}

// ApplyToConfig применяет обновления к существующей конфигурации
// Обновляются только непустые (not nil) поля из request
func (r *UpdateConfigRequest) ApplyToConfig(cfg *domain.RotationConfig) {
	if r.IsEnabled != nil {
		cfg.IsEnabled = *r.IsEnabled
	}
	if r.Mode != nil {
		cfg.Mode = domain.RotationMode(*r.Mode)
	}
	if r.SkipWithinDays != nil {
		cfg.SkipWithinDays = *r.SkipWithinDays
	}
	if r.PrioritizeFullMoon != nil {
		cfg.PrioritizeFullMoon = *r.PrioritizeFullMoon
	}
}
