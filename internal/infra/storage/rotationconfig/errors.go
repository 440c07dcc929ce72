package rotationconfig

import "errors"

var (
	// ErrConfigNotFound возвращается, когда строка конфигурации ротации отсутствует
	ErrConfigNotFound = errors.New("rotationconfig.repository: config not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("rotationconfig.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("rotationconfig.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("rotationconfig.repository: failed to scan row")

	// ErrEncodeResult возвращается, когда снимок результата не удалось сериализовать
	ErrEncodeResult = errors.New("rotationconfig.repository: failed to encode run result")
)
