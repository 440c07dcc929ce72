package booking

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-DepartureService/internal/domain"
	"github.com/m04kA/SMC-DepartureService/pkg/dbmetrics"
	"github.com/m04kA/SMC-DepartureService/pkg/psqlbuilder"
)

// Repository репозиторий бронирований (только чтение)
// Бронирования принадлежат системе бронирования, сервис их не изменяет
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// capacityStatuses статусы бронирований, занимающие места, в виде строк для pq.Array
func capacityStatuses() []string {
	statuses := make([]string, len(domain.CapacityStatuses))
	for i, s := range domain.CapacityStatuses {
		statuses[i] = string(s)
	}
	return statuses
}

// buildSumOccupiedQuery строит запрос суммы путешественников по выездам
// Учитываются только бронирования в статусах DEPOSIT_PAID, CONFIRMED, COMPLETED
func buildSumOccupiedQuery(departureIDs []string) (string, []interface{}, error) {
	return psqlbuilder.Select(
		"departure_id",
		"COALESCE(SUM(total_climbers), 0)",
	).
		From("bookings").
		Where("departure_id = ANY(?)", pq.Array(departureIDs)).
		Where("status = ANY(?)", pq.Array(capacityStatuses())).
		GroupBy("departure_id").
		ToSql()
}

// SumOccupiedSpots возвращает количество занятых мест для каждого выезда
// Выезды без подходящих бронирований в результат не попадают (0 мест)
func (r *Repository) SumOccupiedSpots(ctx context.Context, departureIDs []string) (map[string]int, error) {
	occupied := make(map[string]int, len(departureIDs))
	if len(departureIDs) == 0 {
		return occupied, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildSumOccupiedQuery(departureIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: SumOccupiedSpots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: SumOccupiedSpots - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			departureID string
			total       int
		)
		if err := rows.Scan(&departureID, &total); err != nil {
			return nil, fmt.Errorf("%w: SumOccupiedSpots - scan row: %v", ErrScanRow, err)
		}
		occupied[departureID] = total
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: SumOccupiedSpots - rows error: %v", ErrScanRow, err)
	}

	return occupied, nil
}

// GetByDepartureID получает все бронирования выезда (включая отмененные)
func (r *Repository) GetByDepartureID(ctx context.Context, departureID string) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"departure_id",
		"lead_name",
		"lead_email",
		"lead_phone",
		"total_climbers",
		"status",
		"created_at",
		"updated_at",
	).
		From("bookings").
		Where(squirrel.Eq{"departure_id": departureID}).
		OrderBy("created_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByDepartureID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDepartureID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		var (
			booking              domain.Booking
			createdAt, updatedAt sql.NullTime
		)

		if err := rows.Scan(
			&booking.ID,
			&booking.DepartureID,
			&booking.LeadName,
			&booking.LeadEmail,
			&booking.LeadPhone,
			&booking.TotalClimbers,
			&booking.Status,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: GetByDepartureID - scan row: %v", ErrScanRow, err)
		}

		booking.CreatedAt = createdAt.Time
		booking.UpdatedAt = updatedAt.Time
		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByDepartureID - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
