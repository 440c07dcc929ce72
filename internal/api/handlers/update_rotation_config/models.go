package update_rotation_config

import (
	"github.com/m04kA/SMC-DepartureService/internal/service/rotationconfig/models"
)

// UpdateRotationConfigRequest HTTP request model
// Все поля опциональны
type UpdateRotationConfigRequest struct {
	IsEnabled          *bool   `json:"isEnabled,omitempty"`
	Mode               *string `json:"mode,omitempty"`
	SkipWithinDays     *int    `json:"skipWithinDays,omitempty"`
	PrioritizeFullMoon *bool   `json:"prioritizeFullMoon,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateRotationConfigRequest) ToServiceRequest(adminID string) *models.UpdateConfigRequest {
	return &models.UpdateConfigRequest{
		AdminID:            adminID,
		IsEnabled:          r.IsEnabled,
		Mode:               r.Mode,
		SkipWithinDays:     r.SkipWithinDays,
		PrioritizeFullMoon: r.PrioritizeFullMoon,
	}
}
