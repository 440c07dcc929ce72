package departure

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

const table = "departures"

var columns = []string{
	"id",
	"route_id",
	"arrival_date",
	"start_date",
	"summit_date",
	"end_date",
	"year",
	"month",
	"price",
	"currency",
	"min_participants",
	"max_participants",
	"is_full_moon",
	"is_guaranteed",
	"is_featured",
	"is_manually_featured",
	"exclude_from_rotation",
	"status",
	"internal_notes",
	"public_notes",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с выездами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория выездов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый выезд
// ID генерируется на стороне сервиса
func (r *Repository) Create(ctx context.Context, d *domain.Departure) (*domain.Departure, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"id",
			"route_id",
			"arrival_date",
			"start_date",
			"summit_date",
			"end_date",
			"year",
			"month",
			"price",
			"currency",
			"min_participants",
			"max_participants",
			"is_full_moon",
			"is_guaranteed",
			"is_featured",
			"is_manually_featured",
			"exclude_from_rotation",
			"status",
			"internal_notes",
			"public_notes",
		).
		Values(
			d.ID,
			d.RouteID,
			d.ArrivalDate,
			d.StartDate,
			d.SummitDate,
			d.EndDate,
			d.Year,
			d.Month,
			d.Price,
			d.Currency,
			d.MinParticipants,
			d.MaxParticipants,
			d.IsFullMoon,
			d.IsGuaranteed,
			d.IsFeatured,
			d.IsManuallyFeatured,
			d.ExcludeFromRotation,
			d.Status,
			d.InternalNotes,
			d.PublicNotes,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	d.CreatedAt = createdAt.Time
	d.UpdatedAt = updatedAt.Time

	return d, nil
}

// GetByID получает выезд по ID
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Departure, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	d, err := scanDeparture(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrDepartureNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan departure: %v", ErrScanRow, err)
	}

	return d, nil
}

// buildListActiveQuery выбирает нетерминальные выезды и терминальные, у которых остался is_featured
func buildListActiveQuery() (string, []interface{}, error) {
	return psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Or{
			squirrel.Expr("NOT (status = ANY(?))", pq.Array(terminalStatuses())),
			squirrel.Eq{"is_featured": true},
		}).
		OrderBy("route_id ASC", "arrival_date ASC", "id ASC").
		ToSql()
}

// ListActive получает все нетерминальные выезды всех маршрутов
// Терминальные выезды с is_featured = true тоже попадают в выборку, чтобы ротация сняла с них флаг
func (r *Repository) ListActive(ctx context.Context) ([]*domain.Departure, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildListActiveQuery()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanDepartures(rows)
}

// ListByRoute получает выезды маршрута, отсортированные по дате заезда
// includeTerminal = false исключает завершенные и отмененные выезды
func (r *Repository) ListByRoute(ctx context.Context, routeID string, includeTerminal bool) ([]*domain.Departure, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"route_id": routeID}).
		OrderBy("arrival_date ASC", "id ASC")

	if !includeTerminal {
		selectBuilder = selectBuilder.Where("NOT (status = ANY(?))", pq.Array(terminalStatuses()))
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByRoute - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByRoute - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanDepartures(rows)
}

// UpdateStatus обновляет статус выезда
func (r *Repository) UpdateStatus(ctx context.Context, id string, status domain.DepartureStatus) error {
	return r.update(ctx, "UpdateStatus", id, map[string]interface{}{
		"status": status,
	})
}

// SetFeatured выставляет или снимает флаг is_featured
// Флаг is_manually_featured не затрагивается
func (r *Repository) SetFeatured(ctx context.Context, id string, featured bool) error {
	return r.update(ctx, "SetFeatured", id, map[string]interface{}{
		"is_featured": featured,
	})
}

// SetManualPin закрепляет или открепляет выезд оператором
// is_featured следует за is_manually_featured
func (r *Repository) SetManualPin(ctx context.Context, id string, pinned bool) error {
	return r.update(ctx, "SetManualPin", id, map[string]interface{}{
		"is_manually_featured": pinned,
		"is_featured":          pinned,
	})
}

// ClearRoutePins снимает закрепление и флаг is_featured со всех выездов маршрута, кроме exceptID
// Возвращает количество измененных выездов
func (r *Repository) ClearRoutePins(ctx context.Context, routeID string, exceptID string) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("is_manually_featured", false).
		Set("is_featured", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"route_id": routeID}).
		Where(squirrel.NotEq{"id": exceptID}).
		Where(squirrel.Or{
			squirrel.Eq{"is_manually_featured": true},
			squirrel.Eq{"is_featured": true},
		}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: ClearRoutePins - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: ClearRoutePins - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: ClearRoutePins - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// Cancel отменяет выезд с указанием причины
// Отмененный выезд теряет флаги is_featured и is_manually_featured
func (r *Repository) Cancel(ctx context.Context, id string, reason string) error {
	return r.update(ctx, "Cancel", id, map[string]interface{}{
		"status":               domain.DepartureCancelled,
		"cancellation_reason":  reason,
		"cancelled_at":         squirrel.Expr("NOW()"),
		"is_featured":          false,
		"is_manually_featured": false,
	})
}

// update обновляет поля одной строки по первичному ключу
func (r *Repository) update(ctx context.Context, op string, id string, fields map[string]interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		SetMap(fields).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrDepartureNotFound
	}

	return nil
}

func terminalStatuses() []string {
	statuses := make([]string, len(domain.TerminalDepartureStatuses))
	for i, s := range domain.TerminalDepartureStatuses {
		statuses[i] = string(s)
	}
	return statuses
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDeparture(row rowScanner) (*domain.Departure, error) {
	var (
		d                    domain.Departure
		summitDate           sql.NullTime
		cancelledAt          sql.NullTime
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&d.ID,
		&d.RouteID,
		&d.ArrivalDate,
		&d.StartDate,
		&summitDate,
		&d.EndDate,
		&d.Year,
		&d.Month,
		&d.Price,
		&d.Currency,
		&d.MinParticipants,
		&d.MaxParticipants,
		&d.IsFullMoon,
		&d.IsGuaranteed,
		&d.IsFeatured,
		&d.IsManuallyFeatured,
		&d.ExcludeFromRotation,
		&d.Status,
		&d.InternalNotes,
		&d.PublicNotes,
		&d.CancellationReason,
		&cancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if summitDate.Valid {
		t := summitDate.Time
		d.SummitDate = &t
	}
	if cancelledAt.Valid {
		t := cancelledAt.Time
		d.CancelledAt = &t
	}
	d.CreatedAt = createdAt.Time
	d.UpdatedAt = updatedAt.Time

	return &d, nil
}

// scanDepartures сканирует результаты запроса в слайс выездов
func scanDepartures(rows *sql.Rows) ([]*domain.Departure, error) {
	departures := make([]*domain.Departure, 0)

	for rows.Next() {
		d, err := scanDeparture(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanDepartures - scan row: %v", ErrScanRow, err)
		}
		departures = append(departures, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanDepartures - rows error: %v", ErrScanRow, err)
	}

	return departures, nil
}
