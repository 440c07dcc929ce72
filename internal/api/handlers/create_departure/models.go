package create_departure

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-DepartureService/internal/domain"
	"github.com/m04kA/SMC-DepartureService/internal/service/departures/models"
)

// CreateDepartureRequest HTTP request model
type CreateDepartureRequest struct {
	RouteID             string  `json:"routeId"`
	ArrivalDate         string  `json:"arrivalDate"` // "2025-10-15"
	StartDate           string  `json:"startDate"`
	SummitDate          *string `json:"summitDate,omitempty"`
	EndDate             string  `json:"endDate"`
	Price               float64 `json:"price"`
	Currency            string  `json:"currency"`
	MinParticipants     int     `json:"minParticipants"`
	MaxParticipants     int     `json:"maxParticipants"`
	IsFullMoon          bool    `json:"isFullMoon"`
	IsGuaranteed        bool    `json:"isGuaranteed"`
	ExcludeFromRotation bool    `json:"excludeFromRotation"`
	InternalNotes       *string `json:"internalNotes,omitempty"`
	PublicNotes         *string `json:"publicNotes,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса (с парсингом дат)
func (r *CreateDepartureRequest) ToServiceRequest(adminID string) (*models.CreateDepartureRequest, error) {
	arrival, err := parseDate("arrivalDate", r.ArrivalDate)
	if err != nil {
		return nil, err
	}
	start, err := parseDate("startDate", r.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate("endDate", r.EndDate)
	if err != nil {
		return nil, err
	}

	var summit *time.Time
	if r.SummitDate != nil {
		t, err := parseDate("summitDate", *r.SummitDate)
		if err != nil {
			return nil, err
		}
		summit = &t
	}

	return &models.CreateDepartureRequest{
		AdminID:             adminID,
		RouteID:             r.RouteID,
		ArrivalDate:         arrival,
		StartDate:           start,
		SummitDate:          summit,
		EndDate:             end,
		Price:               r.Price,
		Currency:            r.Currency,
		MinParticipants:     r.MinParticipants,
		MaxParticipants:     r.MaxParticipants,
		IsFullMoon:          r.IsFullMoon,
		IsGuaranteed:        r.IsGuaranteed,
		ExcludeFromRotation: r.ExcludeFromRotation,
		InternalNotes:       r.InternalNotes,
		PublicNotes:         r.PublicNotes,
	}, nil
}

func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(domain.DateFormat, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", field, err)
	}
	return t, nil
}
