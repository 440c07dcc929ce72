package list_route_departures

import (
	"github.com/m04kA/SMC-DepartureService/internal/service/departures/models"
)

// PublicDeparture выезд для публичного сайта (без внутренних заметок и служебных флагов)
type PublicDeparture struct {
	ID             string  `json:"id"`
	ArrivalDate    string  `json:"arrivalDate"`
	StartDate      string  `json:"startDate"`
	SummitDate     *string `json:"summitDate,omitempty"`
	EndDate        string  `json:"endDate"`
	Price          float64 `json:"price"`
	Currency       string  `json:"currency"`
	RemainingSpots int     `json:"remainingSpots"`
	IsSoldOut      bool    `json:"isSoldOut"`
	IsFullMoon     bool    `json:"isFullMoon"`
	IsGuaranteed   bool    `json:"isGuaranteed"`
	IsFeatured     bool    `json:"isFeatured"`
	Status         string  `json:"status"`
	PublicNotes    *string `json:"publicNotes,omitempty"`
}

// PublicDepartureList ответ со списком выездов маршрута
type PublicDepartureList struct {
	RouteID    string             `json:"routeId"`
	Departures []*PublicDeparture `json:"departures"`
	Total      int                `json:"total"`
}

// FromServiceResponse убирает из ответа сервиса внутренние поля
func FromServiceResponse(resp *models.DepartureListResponse) *PublicDepartureList {
	out := &PublicDepartureList{
		RouteID:    resp.RouteID,
		Departures: make([]*PublicDeparture, 0, len(resp.Departures)),
		Total:      resp.Total,
	}

	for _, d := range resp.Departures {
		out.Departures = append(out.Departures, &PublicDeparture{
			ID:             d.ID,
			ArrivalDate:    d.ArrivalDate,
			StartDate:      d.StartDate,
			SummitDate:     d.SummitDate,
			EndDate:        d.EndDate,
			Price:          d.Price,
			Currency:       d.Currency,
			RemainingSpots: d.RemainingSpots,
			IsSoldOut:      d.IsSoldOut,
			IsFullMoon:     d.IsFullMoon,
			IsGuaranteed:   d.IsGuaranteed,
			IsFeatured:     d.IsFeatured,
			Status:         d.Status,
			PublicNotes:    d.PublicNotes,
		})
	}

	return out
}
