package rotationconfig

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-DepartureService/internal/domain"
	"github.com/m04kA/SMC-DepartureService/pkg/dbmetrics"
	"github.com/m04kA/SMC-DepartureService/pkg/psqlbuilder"
)

const table = "rotation_config"

// Repository репозиторий конфигурации ротации
// Таблица содержит единственную строку с id = domain.RotationConfigID
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигурации ротации
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает конфигурацию ротации
func (r *Repository) Get(ctx context.Context) (*domain.RotationConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"is_enabled",
		"mode",
		"skip_within_days",
		"prioritize_full_moon",
		"last_run_at",
		"last_run_result",
		"created_at",
		"updated_at",
	).
		From(table).
		Where(squirrel.Eq{"id": domain.RotationConfigID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var (
		cfg                  domain.RotationConfig
		lastRunAt            sql.NullTime
		lastRunResult        []byte
		createdAt, updatedAt sql.NullTime
	)

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.IsEnabled,
		&cfg.Mode,
		&cfg.SkipWithinDays,
		&cfg.PrioritizeFullMoon,
		&lastRunAt,
		&lastRunResult,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan config: %v", ErrScanRow, err)
	}

	if lastRunAt.Valid {
		t := lastRunAt.Time
		cfg.LastRunAt = &t
	}

	// Поврежденный снимок не должен ломать чтение политики
	if len(lastRunResult) > 0 {
		var result domain.RotationResult
		if err := json.Unmarshal(lastRunResult, &result); err == nil {
			cfg.LastRunResult = &result
		}
	}

	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	return &cfg, nil
}

// CreateDefault создает строку конфигурации, если её ещё нет, и возвращает актуальное состояние
// Конкурентные вызовы безопасны: вставка идемпотентна (ON CONFLICT DO NOTHING)
func (r *Repository) CreateDefault(ctx context.Context, cfg *domain.RotationConfig) (*domain.RotationConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"id",
			"is_enabled",
			"mode",
			"skip_within_days",
			"prioritize_full_moon",
		).
		Values(
			domain.RotationConfigID,
			cfg.IsEnabled,
			cfg.Mode,
			cfg.SkipWithinDays,
			cfg.PrioritizeFullMoon,
		).
		Suffix("ON CONFLICT (id) DO NOTHING").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateDefault - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: CreateDefault - execute insert: %v", ErrExecQuery, err)
	}

	return r.Get(ctx)
}

// UpdatePolicy сохраняет поля политики ротации (не трогая снимок последнего запуска)
func (r *Repository) UpdatePolicy(ctx context.Context, cfg *domain.RotationConfig) (*domain.RotationConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("is_enabled", cfg.IsEnabled).
		Set("mode", cfg.Mode).
		Set("skip_within_days", cfg.SkipWithinDays).
		Set("prioritize_full_moon", cfg.PrioritizeFullMoon).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": domain.RotationConfigID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpdatePolicy - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: UpdatePolicy - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdatePolicy - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return nil, ErrConfigNotFound
	}

	return r.Get(ctx)
}

// SaveRunResult сохраняет время и снимок результата последнего запуска ротации
func (r *Repository) SaveRunResult(ctx context.Context, result *domain.RotationResult) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	snapshot, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("%w: SaveRunResult: %v", ErrEncodeResult, err)
	}

	query, args, err := psqlbuilder.Update(table).
		Set("last_run_at", result.RanAt).
		Set("last_run_result", string(snapshot)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": domain.RotationConfigID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SaveRunResult - build update query: %v", ErrBuildQuery, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SaveRunResult - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SaveRunResult - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrConfigNotFound
	}

	return nil
}
