package rotationconfig

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DepartureService/internal/domain"
	configRepo "github.com/m04kA/SMC-DepartureService/internal/infra/storage/rotationconfig"
	"github.com/m04kA/SMC-DepartureService/internal/service/rotationconfig/models"
)

// Service сервис для работы с политикой ротации выездов
type Service struct {
	configRepo ConfigRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса конфигурации ротации
func NewService(configRepo ConfigRepository, logger Logger) *Service {
	return &Service{
		configRepo: configRepo,
		logger:     logger,
	}
}

// Load возвращает конфигурацию ротации, создавая её со значениями по умолчанию при отсутствии
// Отсутствие строки не считается ошибкой
func (s *Service) Load(ctx context.Context) (*domain.RotationConfig, error) {
	cfg, err := s.configRepo.Get(ctx)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, configRepo.ErrConfigNotFound) {
		s.logger.Error("Load: repository error: %v", err)
		return nil, fmt.Errorf("%w: Load - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Load: rotation config not found, creating defaults")

	cfg, err = s.configRepo.CreateDefault(ctx, domain.DefaultRotationConfig())
	if err != nil {
		s.logger.Error("Load: failed to create default config: %v", err)
		return nil, fmt.Errorf("%w: Load - create default config: %v", ErrInternal, err)
	}

	return cfg, nil
}

// Get возвращает конфигурацию ротации вместе со снимком последнего запуска
func (s *Service) Get(ctx context.Context) (*models.ConfigResponse, error) {
	cfg, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return models.FromDomainConfig(cfg), nil
}

// Update частично обновляет политику ротации
// Обновляются только переданные (not nil) поля
func (s *Service) Update(ctx context.Context, req *models.UpdateConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("Update: updating rotation config by admin=%s", req.AdminID)

	// 1. Получаем текущую конфигурацию (создаём при отсутствии)
	cfg, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}

	// 2. Применяем обновления к копии и валидируем
	updated := *cfg
	req.ApplyToConfig(&updated)

	if err := validateConfig(&updated); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	// 3. Сохраняем
	saved, err := s.configRepo.UpdatePolicy(ctx, &updated)
	if err != nil {
		s.logger.Error("Update: repository error: %v", err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: rotation config updated (enabled=%t, mode=%s, skipWithinDays=%d, prioritizeFullMoon=%t)",
		saved.IsEnabled, saved.Mode, saved.SkipWithinDays, saved.PrioritizeFullMoon)
	return models.FromDomainConfig(saved), nil
}

// validateConfig валидирует поля политики ротации
func validateConfig(cfg *domain.RotationConfig) error {
	if !cfg.Mode.IsValid() {
		return fmt.Errorf("%w: mode must be %s or %s", ErrInvalidInput,
			domain.RotationNextUpcoming, domain.RotationManualOnly)
	}

	if cfg.SkipWithinDays < domain.MinSkipWithinDays || cfg.SkipWithinDays > domain.MaxSkipWithinDays {
		return fmt.Errorf("%w: skipWithinDays must be between %d and %d", ErrInvalidInput,
			domain.MinSkipWithinDays, domain.MaxSkipWithinDays)
	}

	return nil
}
