package route

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-DepartureService/internal/domain"
	"github.com/m04kA/SMC-DepartureService/pkg/dbmetrics"
	"github.com/m04kA/SMC-DepartureService/pkg/psqlbuilder"
)

// Repository репозиторий маршрутов (только чтение)
type Repository struct {
	db dbmetrics.DBExecutor
}

func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает маршрут по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Route, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "title", "duration_days").
		From("routes").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var route domain.Route
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&route.ID,
		&route.Title,
		&route.DurationDays,
	)

	if err == sql.ErrNoRows {
		return nil, ErrRouteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan route: %v", ErrScanRow, err)
	}

	return &route, nil
}
