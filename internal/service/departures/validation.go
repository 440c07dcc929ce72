package departures

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-DepartureService/internal/domain"
	"github.com/m04kA/SMC-DepartureService/internal/service/departures/models"
)

// validateCreateRequest проверяет поля нового выезда
func validateCreateRequest(req *models.CreateDepartureRequest) error {
	if strings.TrimSpace(req.RouteID) == "" {
		return fmt.Errorf("%w: routeId is required", ErrInvalidInput)
	}

	if req.ArrivalDate.IsZero() || req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fmt.Errorf("%w: arrivalDate, startDate and endDate are required", ErrInvalidInput)
	}

	if req.MinParticipants < 1 {
		return fmt.Errorf("%w: minParticipants must be at least 1", ErrInvalidInput)
	}

	if req.MaxParticipants < req.MinParticipants {
		return fmt.Errorf("%w: maxParticipants must not be less than minParticipants", ErrInvalidInput)
	}

	if req.MaxParticipants > domain.MaxParticipantsLimit {
		return fmt.Errorf("%w: maxParticipants must not exceed %d", ErrInvalidInput, domain.MaxParticipantsLimit)
	}

	if req.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}

	if len(strings.TrimSpace(req.Currency)) != 3 {
		return fmt.Errorf("%w: currency must be a 3-letter code", ErrInvalidInput)
	}

	if req.InternalNotes != nil && len(*req.InternalNotes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: internalNotes too long (max %d)", ErrInvalidInput, domain.MaxNotesLength)
	}

	if req.PublicNotes != nil && len(*req.PublicNotes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: publicNotes too long (max %d)", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateCancelReason проверяет причину отмены
func validateCancelReason(reason string) error {
	if strings.TrimSpace(reason) == "" {
		return fmt.Errorf("%w: cancellation reason is required", ErrInvalidInput)
	}
	if len(reason) > domain.MaxCancelReasonLen {
		return fmt.Errorf("%w: cancellation reason too long (max %d)", ErrInvalidInput, domain.MaxCancelReasonLen)
	}
	return nil
}
