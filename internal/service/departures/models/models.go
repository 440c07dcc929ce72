package models

import (
	"time"

	"github.com/m04kA/SMC-DepartureService/internal/domain"
)

// Request модели

// CreateDepartureRequest запрос на создание выезда
type CreateDepartureRequest struct {
	AdminID             string
	RouteID             string
	ArrivalDate         time.Time
	StartDate           time.Time
	SummitDate          *time.Time
	EndDate             time.Time
	Price               float64
	Currency            string
	MinParticipants     int
	MaxParticipants     int
	IsFullMoon          bool
	IsGuaranteed        bool
	ExcludeFromRotation bool
	InternalNotes       *string
	PublicNotes         *string
}

// ToDomain конвертирует запрос в domain модель (без ID и статуса)
func (r *CreateDepartureRequest) ToDomain() *domain.Departure {
	return &domain.Departure{
		RouteID:             r.RouteID,
		ArrivalDate:         r.ArrivalDate,
		StartDate:           r.StartDate,
		SummitDate:          r.SummitDate,
		EndDate:             r.EndDate,
		Year:                r.StartDate.Year(),
		Month:               int(r.StartDate.Month()),
		Price:               r.Price,
		Currency:            r.Currency,
		MinParticipants:     r.MinParticipants,
		MaxParticipants:     r.MaxParticipants,
		IsFullMoon:          r.IsFullMoon,
		IsGuaranteed:        r.IsGuaranteed,
		ExcludeFromRotation: r.ExcludeFromRotation,
		InternalNotes:       r.InternalNotes,
		PublicNotes:         r.PublicNotes,
	}
}

// Response модели

// DepartureResponse ответ с данными выезда и заполненностью
type DepartureResponse struct {
	ID                  string     `json:"id"`
	RouteID             string     `json:"routeId"`
	ArrivalDate         string     `json:"arrivalDate"` // "2025-10-15"
	StartDate           string     `json:"startDate"`
	SummitDate          *string    `json:"summitDate,omitempty"`
	EndDate             string     `json:"endDate"`
	Year                int        `json:"year"`
	Month               int        `json:"month"`
	Price               float64    `json:"price"`
	Currency            string     `json:"currency"`
	MinParticipants     int        `json:"minParticipants"`
	MaxParticipants     int        `json:"maxParticipants"`
	OccupiedSpots       int        `json:"occupiedSpots"`
	RemainingSpots      int        `json:"remainingSpots"`
	OccupancyRate       float64    `json:"occupancyRate"`
	IsSoldOut           bool       `json:"isSoldOut"`
	IsFullMoon          bool       `json:"isFullMoon"`
	IsGuaranteed        bool       `json:"isGuaranteed"`
	IsFeatured          bool       `json:"isFeatured"`
	IsManuallyFeatured  bool       `json:"isManuallyFeatured"`
	ExcludeFromRotation bool       `json:"excludeFromRotation"`
	Status              string     `json:"status"`
	InternalNotes       *string    `json:"internalNotes,omitempty"`
	PublicNotes         *string    `json:"publicNotes,omitempty"`
	CancellationReason  *string    `json:"cancellationReason,omitempty"`
	CancelledAt         *time.Time `json:"cancelledAt,omitempty"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

// DepartureListResponse список выездов маршрута
type DepartureListResponse struct {
	RouteID    string               `json:"routeId"`
	Departures []*DepartureResponse `json:"departures"`
	Total      int                  `json:"total"`
}

// QueueItem позиция выезда в очереди на показ
type QueueItem struct {
	Position int `json:"position"`
	*DepartureResponse
}

// FeaturedQueueResponse упорядоченная очередь кандидатов маршрута
type FeaturedQueueResponse struct {
	RouteID    string       `json:"routeId"`
	RouteTitle string       `json:"routeTitle"`
	Mode       string       `json:"mode"`
	Items      []*QueueItem `json:"items"`
}

// FromDomainDeparture конвертирует domain модель в DTO
func FromDomainDeparture(d *domain.Departure, occupied int) *DepartureResponse {
	if d == nil {
		return nil
	}

	availability := domain.NewAvailability(d, occupied)

	resp := &DepartureResponse{
		ID:                  d.ID,
		RouteID:             d.RouteID,
		ArrivalDate:         d.ArrivalDate.Format(domain.DateFormat),
		StartDate:           d.StartDate.Format(domain.DateFormat),
		EndDate:             d.EndDate.Format(domain.DateFormat),
		Year:                d.Year,
		Month:               d.Month,
		Price:               d.Price,
		Currency:            d.Currency,
		MinParticipants:     d.MinParticipants,
		MaxParticipants:     availability.TotalSpots,
		OccupiedSpots:       availability.OccupiedSpots,
		RemainingSpots:      availability.RemainingSpots,
		OccupancyRate:       availability.OccupancyRate(),
		IsSoldOut:           availability.IsFull(),
		IsFullMoon:          d.IsFullMoon,
		IsGuaranteed:        d.IsGuaranteed,
		IsFeatured:          d.IsFeatured,
		IsManuallyFeatured:  d.IsManuallyFeatured,
		ExcludeFromRotation: d.ExcludeFromRotation,
		Status:              string(d.Status),
		InternalNotes:       d.InternalNotes,
		PublicNotes:         d.PublicNotes,
		CancellationReason:  d.CancellationReason,
		CancelledAt:         d.CancelledAt,
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
	}

	if d.SummitDate != nil {
		summit := d.SummitDate.Format(domain.DateFormat)
		resp.SummitDate = &summit
	}

	return resp
}

// FromDomainDepartureList конвертирует список выездов маршрута в DTO
func FromDomainDepartureList(routeID string, departures []*domain.Departure, occupied map[string]int) *DepartureListResponse {
	items := make([]*DepartureResponse, 0, len(departures))
	for _, d := range departures {
		items = append(items, FromDomainDeparture(d, occupied[d.ID]))
	}

	return &DepartureListResponse{
		RouteID:    routeID,
		Departures: items,
		Total:      len(items),
	}
}
