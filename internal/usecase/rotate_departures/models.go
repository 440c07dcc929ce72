package rotate_departures

import "github.com/m04kA/SMC-DepartureService/internal/domain"

// Request модель запроса на запуск ротации
type Request struct {
	Trigger domain.RotationTrigger // cron учитывает isEnabled, manual запускается всегда
	AdminID string                 // ID администратора (только для manual)
}

// Response результат запуска ротации
type Response struct {
	domain.RotationResult
}
